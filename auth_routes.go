package main

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
)

func (api *Api) authRoutes(router fiber.Router) {
	router.Post("/login", api.doLogin)
	router.Post("/signup", api.doSignup)
}

func (api *Api) doLogin(c *fiber.Ctx) error {
	var r LoginRequest

	if err := c.BodyParser(&r); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrInvalidRequestBody)
	}

	if r.Email == "" || r.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrMissingCredentials)
	}

	u, err := api.Store.Login(c.UserContext(), r.Email, r.Password)

	if err != nil {
		return err
	}

	token, err := api.Tokens.IssueToken(u.Email)

	if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(TokenResponse{AccessToken: token})
}

func (api *Api) doSignup(c *fiber.Ctx) error {
	var r SignupRequest

	if err := c.BodyParser(&r); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrInvalidRequestBody)
	}

	if r.Email == "" || r.Password == "" {
		return c.Status(http.StatusBadRequest).JSON(ErrMissingCredentials)
	}

	u, err := api.Store.Signup(c.UserContext(), r.Email, r.Password, r.Name)

	if err != nil {
		return err
	}

	token, err := api.Tokens.IssueToken(u.Email)

	if err != nil {
		return err
	}

	api.Log.Info().Uint("user_id", u.ID).Msg("user signed up")

	return c.Status(http.StatusOK).JSON(TokenResponse{AccessToken: token})
}
