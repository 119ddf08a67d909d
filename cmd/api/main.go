package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sentinelwatch/sentinel-backend/internal/admin"
	"github.com/sentinelwatch/sentinel-backend/internal/analysis"
	"github.com/sentinelwatch/sentinel-backend/internal/config"
	"github.com/sentinelwatch/sentinel-backend/internal/contact"
	apphttp "github.com/sentinelwatch/sentinel-backend/internal/http"
	"github.com/sentinelwatch/sentinel-backend/internal/router"
	"github.com/sentinelwatch/sentinel-backend/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	// Default to the in-memory store; switch to Postgres when a
	// DATABASE_URL is configured (see migrations/migrations.sql).
	var st store.Store = store.NewMemStore()
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("error creating pgx pool: %v", err)
		}
		defer pool.Close()
		if err := pool.Ping(context.Background()); err != nil {
			log.Fatalf("error pinging database: %v", err)
		}
		st = store.NewPGStore(pool)
		log.Println("Using Postgres store")
	} else {
		log.Println("Using in-memory store (records are lost on restart)")
	}

	app := newApp(cfg, st)

	log.Println("Listening on port", cfg.Port)
	log.Fatal(app.Listen(":" + cfg.Port))
}

func newApp(cfg config.Config, st store.Store) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			message := "Internal server error"

			var fiberErr *fiber.Error
			if errors.As(err, &fiberErr) {
				code = fiberErr.Code
				message = fiberErr.Message
			}

			return c.Status(code).JSON(fiber.Map{"message": message})
		},
	})

	app.Use(router.CorsMiddleware(cfg.CORSOrigin))
	app.Use(requestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/api/health", func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})

	secret := []byte(cfg.JWTSecret)
	gen := analysis.NewGenerator(cfg.AnalysisSeed)

	r := &router.Router{
		AuthHandler:     &apphttp.AuthHandler{Store: st, Secret: secret},
		AnalysisHandler: analysis.NewHandler(st, gen),
		ContactHandler:  contact.NewHandler(st),
		AdminHandler:    admin.NewHandler(st),
		AuthMW:          apphttp.NewAuthMiddleware(st, secret),
		AdminMW:         admin.RequireAPIKey(cfg.AdminAPIKey),
		AuthLimiter:     router.RateLimitAuth(cfg.RateLimitAuth),
		AnalyzeLimiter:  router.RateLimitAnalyze(cfg.RateLimitAnalyze),
	}
	r.RegisterRoutes(app)

	return app
}

func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		log.Printf("%s %s %d %s", c.Method(), c.Path(), status, time.Since(start))
		return err
	}
}
