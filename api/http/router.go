package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/WalkerBel92/evaluation/api/http/handlers"
)

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, users *handlers.UserHandler, health *handlers.HealthHandler, writeLimiter fiber.Handler) {
	// Health and readiness endpoints for probes/monitoring
	app.Get("/health", health.Health)
	app.Get("/ready", health.Ready)

	g := app.Group("/users")
	g.Post("/", writeLimiter, users.Register)
	g.Get("/", users.List)
	g.Get("/:id", users.GetByID)
	g.Patch("/:id", writeLimiter, users.Update)
	g.Delete("/:id", writeLimiter, users.Delete)
}
