package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/urbanwell/backend/internal/config"
	"github.com/urbanwell/backend/internal/service"
)

// SetupRoutes configures all HTTP routes
func SetupRoutes(app *fiber.App, dashboardSvc *service.DashboardService, repo service.DataRepository, cfg *config.Config) {
	handler := NewHandler(dashboardSvc, repo, cfg)

	// Status surface
	app.Get("/", handler.Home)
	app.Get("/health", handler.HealthCheck)
	app.Get("/api/status", handler.APIStatus)

	// API v1 routes
	api := app.Group("/api/v1")
	{
		api.Get("/locations", handler.GetLocations)
		api.Post("/locations", handler.CreateLocation)

		api.Get("/dashboard/:id", handler.GetDashboard)
		api.Get("/historical/:id", handler.GetHistorical)
		api.Get("/alerts/:id", handler.GetAlerts)
	}
}
