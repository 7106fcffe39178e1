package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urbanwell/backend/internal/config"
	"github.com/urbanwell/backend/internal/delivery/http"
	"github.com/urbanwell/backend/internal/engine"
	"github.com/urbanwell/backend/internal/engine/nasa"
	"github.com/urbanwell/backend/internal/repository/memory"
	"github.com/urbanwell/backend/internal/repository/postgres"
	"github.com/urbanwell/backend/internal/service"
)

func main() {
	cfg := config.Load()

	// Data-source mode is resolved once from credential presence and never
	// mutated afterwards
	mode := engine.ResolveMode(cfg.EarthdataUsername, cfg.EarthdataPassword)
	if mode == engine.ModeLive {
		log.Println("NASA Earthdata credentials found, live vendor calls enabled")
	} else {
		log.Println("Warning: NASA credentials not configured, using simulated data")
	}

	// Database connection
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var dataRepo service.DataRepository
	if cfg.DatabaseURL != "" {
		pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Printf("Warning: Could not connect to database: %v", err)
		} else {
			defer pool.Close()
			pgRepo := postgres.NewPostgresRepository(pool)
			if err := pgRepo.InitSchema(ctx); err != nil {
				log.Fatalf("Failed to initialize schema: %v", err)
			}
			if err := pgRepo.SeedLocations(ctx); err != nil {
				log.Printf("Warning: Failed to seed locations: %v", err)
			}
			dataRepo = pgRepo
			log.Println("Connected to PostgreSQL")
		}
	}
	if dataRepo == nil {
		log.Println("Running with in-memory storage only")
		dataRepo = memory.NewMemoryRepository()
	}

	// Dependency Injection: engine and services
	client := nasa.NewClient(nasa.Config{
		Username: cfg.EarthdataUsername,
		Password: cfg.EarthdataPassword,
		APIKey:   cfg.NASAAPIKey,
	})
	eng := engine.New(mode, client)
	dashboardSvc := service.NewDashboardService(eng, dataRepo)

	// Fiber App
	app := fiber.New(fiber.Config{
		AppName:      "UrbanWell API v2.0",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorHandler: customErrorHandler,
	})

	// Middleware
	app.Use(recover.New())
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path} (${latency})\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin,Content-Type,Accept,Authorization",
	}))

	// Routes
	http.SetupRoutes(app, dashboardSvc, dataRepo, cfg)

	// Graceful shutdown
	go func() {
		port := cfg.Port
		if port == "" {
			port = "8080"
		}
		log.Printf("Server starting on :%s (data source: %s)", port, mode)
		if err := app.Listen(":" + port); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	if err := app.ShutdownWithTimeout(5 * time.Second); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}
	log.Println("Server exited gracefully")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal Server Error"

	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
