package http

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/urbanwell/backend/internal/config"
	"github.com/urbanwell/backend/internal/domain"
	"github.com/urbanwell/backend/internal/engine"
	"github.com/urbanwell/backend/internal/service"
	"github.com/urbanwell/backend/pkg/utils"
)

var validate = validator.New()

// Handler contains all HTTP handlers
type Handler struct {
	dashboardSvc *service.DashboardService
	repo         service.DataRepository
	cfg          *config.Config
}

// NewHandler creates a new handler
func NewHandler(dashboardSvc *service.DashboardService, repo service.DataRepository, cfg *config.Config) *Handler {
	return &Handler{
		dashboardSvc: dashboardSvc,
		repo:         repo,
		cfg:          cfg,
	}
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "urbanwell-backend",
		"version": "2.0.0",
	})
}

// Home returns the platform banner with credential configuration status
func (h *Handler) Home(c *fiber.Ctx) error {
	setOrMissing := func(v string) string {
		if v != "" {
			return "Set"
		}
		return "Missing"
	}

	return c.JSON(fiber.Map{
		"message":             "UrbanWell API - Urban Wellbeing Intelligence Platform",
		"version":             "2.0.0 - NASA API Integrated",
		"nasa_authentication": h.dashboardSvc.Mode() == engine.ModeLive,
		"nasa_config_status": fiber.Map{
			"earthdata_username": setOrMissing(h.cfg.EarthdataUsername),
			"earthdata_password": setOrMissing(h.cfg.EarthdataPassword),
			"api_key":            setOrMissing(h.cfg.NASAAPIKey),
		},
		"endpoints": fiber.Map{
			"locations":  "/api/v1/locations",
			"dashboard":  "/api/v1/dashboard/{location_id}",
			"historical": "/api/v1/historical/{location_id}",
			"alerts":     "/api/v1/alerts/{location_id}",
			"api_status": "/api/status",
		},
	})
}

// APIStatus reports data-source mode and storage status
func (h *Handler) APIStatus(c *fiber.Ctx) error {
	ctx := c.Context()

	total, err := h.repo.CountLocations(ctx)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to read location count")
	}

	dbStatus := "Connected"
	if err := h.repo.Health(ctx); err != nil {
		dbStatus = "Unavailable"
	}

	apiKey := "Not Set"
	if h.cfg.NASAAPIKey != "" {
		apiKey = "Set"
	}

	return c.JSON(fiber.Map{
		"nasa_api_status": fiber.Map{
			"authenticated":      h.dashboardSvc.Mode() == engine.ModeLive,
			"mode":               h.dashboardSvc.Mode().String(),
			"earthdata_username": utils.MaskSecret(h.cfg.EarthdataUsername, 3),
			"api_key":            apiKey,
			"available_endpoints": []string{
				"TEMPO - Air Quality Monitoring",
				"OMI/Aura - NO2 Measurements",
				"GRACE/GRACE-FO - Groundwater Storage",
				"MODIS - Vegetation Indices",
				"Landsat - High Resolution Imagery",
			},
		},
		"database_status": dbStatus,
		"total_locations": total,
	})
}

// GetLocations returns all monitored locations ordered by name
func (h *Handler) GetLocations(c *fiber.Ctx) error {
	locations, err := h.repo.ListLocations(c.Context())
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch locations")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    locations,
		"count":   len(locations),
	})
}

// createLocationRequest is the POST /locations payload. Latitude and
// longitude are pointers so a zero coordinate still passes `required`.
type createLocationRequest struct {
	Name       string   `json:"name" validate:"required"`
	Latitude   *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude  *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Population *int64   `json:"population"`
	Area       *float64 `json:"area"`
}

// CreateLocation registers a new monitored location
func (h *Handler) CreateLocation(c *fiber.Ctx) error {
	var req createLocationRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	if err := validate.Struct(req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Missing or invalid fields: name, latitude, longitude")
	}

	id, err := h.repo.CreateLocation(c.Context(), domain.Location{
		Name:       req.Name,
		Latitude:   *req.Latitude,
		Longitude:  *req.Longitude,
		Population: req.Population,
		Area:       req.Area,
	})
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to create location")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Location added successfully",
		"id":      id,
	})
}

// GetDashboard runs the full fetch-persist-reduce pipeline for one location
func (h *Handler) GetDashboard(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid location id")
	}

	data, err := h.dashboardSvc.GetDashboardData(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, domain.ErrLocationNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Location not found")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to retrieve dashboard data")
	}

	return c.JSON(data)
}

// GetHistorical returns observation history per domain for trend views
func (h *Handler) GetHistorical(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid location id")
	}

	days := c.QueryInt("days", 7)
	if days < 1 || days > 90 {
		days = 7
	}

	data, err := h.dashboardSvc.GetHistorical(c.Context(), int64(id), days)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch historical data")
	}

	return c.JSON(data)
}

// GetAlerts returns current threshold advisories for one location
func (h *Handler) GetAlerts(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid location id")
	}

	alerts, err := h.dashboardSvc.GetAlerts(c.Context(), int64(id))
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to evaluate alerts")
	}

	return c.JSON(alerts)
}
