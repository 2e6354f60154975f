package main

import (
	"fmt"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"starwarsApi/models"
)

// favoritePaths maps URL segments to kinds. people is the only plural segment.
var favoritePaths = []struct {
	segment string
	kind    models.Kind
}{
	{"people", models.KindCharacter},
	{"planet", models.KindPlanet},
	{"vehicle", models.KindVehicle},
}

func (api *Api) favoriteRoutes(router fiber.Router) {
	router.Get("/users/favorites", api.Tokens.JwtRequired, api.GetFavorites)

	for _, p := range favoritePaths {
		router.Post("/favorite/"+p.segment+"/:id", api.Tokens.JwtRequired, api.AddFavorite(p.kind))
		router.Delete("/favorite/"+p.segment+"/:id", api.Tokens.JwtRequired, api.DeleteFavorite(p.kind))
	}
}

func (api *Api) GetFavorites(c *fiber.Ctx) error {
	f, err := api.Store.ListFavorites(c.UserContext(), identity(c))

	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(ListResponse{
		Msg:    MsgOk,
		Result: []interface{}{f.Characters, f.Planets, f.Vehicles},
	})
}

func (api *Api) AddFavorite(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)

		if err != nil {
			return err
		}

		if err := api.Store.AddFavorite(c.UserContext(), identity(c), kind, id); err != nil {
			return err
		}

		return c.Status(http.StatusOK).JSON(MessageResponse{Msg: fmt.Sprintf("Favorite %s added", kind)})
	}
}

func (api *Api) DeleteFavorite(kind models.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := paramID(c)

		if err != nil {
			return err
		}

		if err := api.Store.RemoveFavorite(c.UserContext(), identity(c), kind, id); err != nil {
			return err
		}

		return c.Status(http.StatusOK).JSON(MessageResponse{Msg: fmt.Sprintf("Favorite %s deleted", kind)})
	}
}
