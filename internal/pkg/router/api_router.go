package router

import (
	"strconv"
	"time"

	apiv1 "github.com/Coinsnap/Bitcoin-Donation/internal/api/v1"
	"github.com/Coinsnap/Bitcoin-Donation/internal/pkg/constants"
	"github.com/Coinsnap/Bitcoin-Donation/internal/pkg/env"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/storage/redis"
)

type ApiRouter struct {
}

func (h ApiRouter) InstallRouter(app *fiber.App) {
	// Rate limit the whole API group. The limiter state lives in Redis so
	// limits hold across instances.
	store := redis.New(redis.Config{
		Host: env.GetEnv("CACHE_HOST", "localhost"),
		Port: mustParsePort(env.GetEnv("CACHE_PORT", "6379")),
	})

	api := app.Group(constants.APIRoute, limiter.New(limiter.Config{
		Max:        120,
		Expiration: 1 * time.Minute,
		Storage:    store,
	}))
	api.Get("/", func(ctx *fiber.Ctx) error {
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Hello from api",
		})
	})

	// API v1 routes
	v1 := api.Group("/v1")
	apiServer := apiv1.NewAPIServer()
	apiv1.RegisterHandlers(v1, apiServer)

	// Operator endpoints
	admin := v1.Group("/admin", basicauth.New(basicauth.Config{
		Users: map[string]string{
			env.GetEnv("ADMIN_USER", "admin"): env.GetEnv("ADMIN_PASSWORD", "test"),
		},
	}))
	apiv1.RegisterAdminHandlers(admin, apiServer)
}

func NewApiRouter() *ApiRouter {
	return &ApiRouter{}
}

func mustParsePort(raw string) int {
	port, err := strconv.Atoi(raw)
	if err != nil || port <= 0 {
		return 6379
	}
	return port
}
