package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"starwarsApi/store"
)

// Api carries every dependency the handlers need. Cache and Search are nil when
// redis is disabled.
type Api struct {
	Config *Config
	Store  *store.Store
	Tokens *TokenIssuer
	Cache  *CatalogCache
	Search *SearchIndex
	Log    zerolog.Logger
}

func NewApp(api *Api) *fiber.App {
	app := fiber.New(fiber.Config{
		JSONEncoder:  sonic.Marshal,
		JSONDecoder:  sonic.Unmarshal,
		ErrorHandler: api.errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{AllowOrigins: api.Config.Cors.AllowOrigins}))

	api.sitemapRoutes(app)
	api.authRoutes(app)
	api.catalogRoutes(app)
	api.favoriteRoutes(app)
	api.adminRoutes(app)

	return app
}

func (api *Api) errorHandler(c *fiber.Ctx, err error) error {
	var se *store.Error

	if errors.As(err, &se) {
		return c.Status(statusFor(se.Code)).JSON(MessageResponse{Msg: se.Message})
	}

	var fe *fiber.Error

	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(MessageResponse{Msg: fe.Message})
	}

	api.Log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("request failed")

	return c.Status(http.StatusInternalServerError).JSON(ErrInternalServerError)
}

func statusFor(code store.Code) int {
	switch code {
	case store.CodeNotFound:
		return http.StatusNotFound
	case store.CodeUnauthorized:
		return http.StatusUnauthorized
	case store.CodeConflict:
		return http.StatusBadRequest
	}

	return http.StatusInternalServerError
}

func main() {
	if err := newRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
