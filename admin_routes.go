package main

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
)

var ErrRebuildRunning = fiber.Map{"msg": "Search index rebuild is already running. Please wait."}

func (api *Api) adminRoutes(router fiber.Router) {
	router.Post("/admin/rebuild_search_index", api.EnforceAdminSecret, api.RebuildSearchIndex)
	router.Get("/admin/rebuild_search_index/status", api.EnforceAdminSecret, api.RebuildSearchIndexStatus)
}

// EnforceAdminSecret only lets requests through that present the configured
// admin secret as a bearer token. An empty secret locks the admin routes.
func (api *Api) EnforceAdminSecret(c *fiber.Ctx) error {
	authorizationHeader := c.Get("Authorization")

	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return c.Status(http.StatusUnauthorized).
			JSON(ErrMissingBearerToken)
	}

	authorizationHeader = strings.TrimPrefix(authorizationHeader, "Bearer ")
	secret := api.Config.AdminSecret

	if secret == "" || subtle.ConstantTimeCompare([]byte(authorizationHeader), []byte(secret)) != 1 {
		return c.Status(http.StatusUnauthorized).JSON(ErrInvalidBearerToken)
	}

	return c.Next()
}

func (api *Api) RebuildSearchIndex(c *fiber.Ctx) error {
	if api.Search == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(ErrSearchDisabled)
	}

	err := api.Search.RebuildAsync(c.UserContext())

	if errors.Is(err, ErrAlreadyRebuilding) {
		return c.Status(http.StatusBadRequest).JSON(ErrRebuildRunning)
	} else if err != nil {
		return err
	}

	return c.Status(http.StatusOK).JSON(MessageResponse{Msg: MsgOk})
}

func (api *Api) RebuildSearchIndexStatus(c *fiber.Ctx) error {
	if api.Search == nil {
		return c.Status(http.StatusServiceUnavailable).JSON(ErrSearchDisabled)
	}

	batch, running, err := api.Search.Status(c.UserContext())

	if err != nil {
		return err
	}

	if !running {
		return c.SendStatus(http.StatusNoContent)
	}

	return c.Status(http.StatusOK).JSON(fiber.Map{"batch": batch})
}
