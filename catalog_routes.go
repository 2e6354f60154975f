package main

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"starwarsApi/models"
	"starwarsApi/store"
)

const searchResultLimit = 100

func (api *Api) catalogRoutes(router fiber.Router) {
	router.Get("/users", api.ListUsers)

	router.Get("/people", listCatalog[models.Character](api))
	router.Get("/people/:id", getCatalog[models.Character](api))
	router.Get("/planets", listCatalog[models.Planet](api))
	router.Get("/planets/:id", getCatalog[models.Planet](api))
	router.Get("/vehicles", listCatalog[models.Vehicle](api))
	router.Get("/vehicles/:id", getCatalog[models.Vehicle](api))

	router.Get("/search", api.SearchCatalog)
}

func (api *Api) ListUsers(c *fiber.Ctx) error {
	users, err := api.Store.ListUsers(c.UserContext())

	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(ListResponse{Msg: MsgOk, Result: users})
}

func listCatalog[T models.Catalog](api *Api) fiber.Handler {
	kind := models.KindOf[T]()

	return func(c *fiber.Ctx) error {
		var rows []T

		key := catalogListKey(kind)

		if api.Cache.Get(c.UserContext(), key, &rows) {
			return c.Status(http.StatusOK).JSON(ListResponse{Msg: MsgOk, Result: rows})
		}

		rows, err := store.ListAll[T](c.UserContext(), api.Store)

		if err != nil {
			return err
		}

		api.Cache.Set(c.UserContext(), key, rows)

		return c.Status(http.StatusOK).JSON(ListResponse{Msg: MsgOk, Result: rows})
	}
}

func getCatalog[T models.Catalog](api *Api) fiber.Handler {
	kind := models.KindOf[T]()

	return func(c *fiber.Ctx) error {
		id, err := paramID(c)

		if err != nil {
			return err
		}

		var row T

		key := catalogItemKey(kind, id)

		if api.Cache.Get(c.UserContext(), key, &row) {
			return c.Status(http.StatusOK).JSON(row)
		}

		found, err := store.GetOne[T](c.UserContext(), api.Store, id)

		if err != nil {
			return err
		}

		api.Cache.Set(c.UserContext(), key, found)

		return c.Status(http.StatusOK).JSON(found)
	}
}

func (api *Api) SearchCatalog(c *fiber.Ctx) error {
	if api.Search == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(ErrSearchDisabled)
	}

	q := c.Query("q")

	if q == "" {
		return fiber.NewError(http.StatusBadRequest, "Missing search query.")
	}

	docs, err := api.Search.Search(q, searchResultLimit)

	if errors.Is(err, ErrInvalidSearchQuery) {
		return fiber.NewError(http.StatusBadRequest, "Invalid search query.")
	} else if err != nil {
		return err
	}

	if len(docs) == 0 {
		return c.Status(http.StatusNotFound).JSON(MessageResponse{Msg: "Empty"})
	}

	return c.Status(http.StatusOK).JSON(ListResponse{Msg: MsgOk, Result: docs})
}

// paramID parses the :id route parameter. Anything but a non-negative integer is
// treated as an unknown route.
func paramID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")

	if err != nil || id < 0 {
		return 0, fiber.ErrNotFound
	}

	return uint(id), nil
}
