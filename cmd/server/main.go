// @title         users-service API
// @version       1.0
// @description   Servicio de registro y administración de usuarios con emisión de token JWT al registrarse.
// @schemes       http
// @host          localhost:8080
package main

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v2"

	// internal imports
	apphttp "github.com/WalkerBel92/evaluation/api/http"
	"github.com/WalkerBel92/evaluation/api/http/handlers"
	"github.com/WalkerBel92/evaluation/pkg/config"
	"github.com/WalkerBel92/evaluation/pkg/health"
	healthpg "github.com/WalkerBel92/evaluation/pkg/health/checkers"
	"github.com/WalkerBel92/evaluation/pkg/repository/memory"
	pgrepo "github.com/WalkerBel92/evaluation/pkg/repository/postgres"
	"github.com/WalkerBel92/evaluation/pkg/security/jwt"
	"github.com/WalkerBel92/evaluation/pkg/storage/postgres"
	"github.com/WalkerBel92/evaluation/pkg/user"
)

func main() {
	app := fiber.New()

	// Load configuration from env/.env
	cfg := config.Load()

	// Pick the user store: PostgreSQL when DATABASE_URL is set, otherwise
	// an in-memory store (local development only).
	var (
		userRepo user.Repository
		checkers []health.Checker
	)
	if cfg.DatabaseURL != "" {
		pool, err := postgres.Connect(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("postgres connect: %v", err)
		}
		defer pool.Close()

		repo, err := pgrepo.NewUserRepository(pool)
		if err != nil {
			log.Fatalf("init user repo: %v", err)
		}
		userRepo = repo
		checkers = append(checkers, healthpg.NewPostgresChecker(pool))
	} else {
		log.Printf("DATABASE_URL not set, falling back to in-memory store")
		userRepo = memory.NewUserRepository()
	}

	// Token generator
	tokens := jwt.NewGenerator(cfg.JWTSecret, cfg.JWTTTL)

	userUC := user.NewService(userRepo, tokens)
	userHandler := handlers.NewUserHandler(userUC)

	// Health service: compose checkers
	readiness := health.NewService(checkers...)
	healthHandler := handlers.NewHealthHandler(readiness)

	// Middleware and routes
	app.Use(apphttp.CorsMiddleware())
	apphttp.Register(app, userHandler, healthHandler, apphttp.RateLimitWrite())

	// Start server
	port := cfg.Port
	log.Printf("HTTP server listening on :%s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
