package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/gift-registry/internal/api/http/handlers"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health *handlers.HealthHandler
	Gifts  *handlers.GiftsHandler
	Users  *handlers.UsersHandler
	Cart   *handlers.CartHandler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	gifts := app.Group("/gifts")
	gifts.Get("/", cfg.Gifts.List)
	gifts.Post("/", cfg.Gifts.Create)
	gifts.Get("/:id", cfg.Gifts.Get)
	gifts.Put("/:id", cfg.Gifts.Update)
	gifts.Delete("/:id", cfg.Gifts.Delete)
	gifts.Post("/:id/purchase", cfg.Gifts.Purchase)
	gifts.Post("/:id/unpurchase", cfg.Gifts.Unpurchase)

	users := app.Group("/users")
	users.Get("/", cfg.Users.List)
	users.Post("/register", cfg.Users.Register)
	users.Post("/login", cfg.Users.Login)
	users.Post("/forgot-password", cfg.Users.ForgotPassword)
	users.Post("/reset-password", cfg.Users.ResetPassword)
	users.Get("/:id", cfg.Users.Get)
	users.Put("/:id", cfg.Users.Update)

	cart := app.Group("/cart")
	cart.Get("/", cfg.Cart.List)
	cart.Post("/check", cfg.Cart.Check)
	cart.Post("/others", cfg.Cart.Others)
	cart.Post("/", cfg.Cart.Add)
	cart.Delete("/", cfg.Cart.Remove)
}
