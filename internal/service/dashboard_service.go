package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/urbanwell/backend/internal/domain"
	"github.com/urbanwell/backend/internal/engine"
)

// DashboardService runs the fetch -> persist -> reduce pipeline for a
// location and serves alert and trend queries from the stored observations.
type DashboardService struct {
	engine *engine.Engine
	repo   DataRepository
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(eng *engine.Engine, repo DataRepository) *DashboardService {
	return &DashboardService{
		engine: eng,
		repo:   repo,
	}
}

// GetDashboardData acquires one observation per domain, persists all three
// plus an audit entry as a single batch, and reduces them into the wellbeing
// index. Fetches never fail (vendor outages resolve to simulation); a
// persistence failure aborts the whole query.
func (s *DashboardService) GetDashboardData(ctx context.Context, locationID int64) (domain.DashboardData, error) {
	loc, err := s.repo.GetLocation(ctx, locationID)
	if err != nil {
		return domain.DashboardData{}, err
	}

	log.Printf("dashboard: fetching data for %s (%.4f, %.4f)", loc.Name, loc.Latitude, loc.Longitude)

	now := time.Now().UTC()
	air := s.engine.FetchAirQuality(ctx, loc.Latitude, loc.Longitude, now)
	water := s.engine.FetchWaterData(ctx, loc.Latitude, loc.Longitude, now)
	veg := s.engine.FetchVegetation(ctx, loc.Latitude, loc.Longitude, now)

	air.LocationID = locationID
	water.LocationID = locationID
	veg.LocationID = locationID

	apiLog := domain.APILog{
		Endpoint:       "dashboard",
		Latitude:       loc.Latitude,
		Longitude:      loc.Longitude,
		ResponseStatus: "success",
		Timestamp:      now,
	}

	if err := s.repo.SaveDashboardBatch(ctx, air, water, veg, apiLog); err != nil {
		return domain.DashboardData{}, fmt.Errorf("dashboard: failed to persist observations: %w", err)
	}

	return domain.DashboardData{
		Location:       loc,
		AirQuality:     air,
		WaterSecurity:  water,
		Vegetation:     veg,
		WellbeingIndex: engine.ComputeWellbeing(&air, &water, &veg),
		LiveData:       s.engine.Mode() == engine.ModeLive,
		LastUpdated:    now,
	}, nil
}

// GetAlerts evaluates threshold advisories against the latest stored
// observations. A location with no stored data yields an empty sequence.
func (s *DashboardService) GetAlerts(ctx context.Context, locationID int64) ([]domain.AlertRecord, error) {
	latestAir, err := s.repo.LatestAirQuality(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("alerts: failed to read latest air quality: %w", err)
	}

	latestWater, err := s.repo.LatestWaterData(ctx, locationID)
	if err != nil {
		return nil, fmt.Errorf("alerts: failed to read latest water data: %w", err)
	}

	return engine.EvaluateAlerts(latestAir, latestWater), nil
}

// GetHistorical returns up to limit rows per domain, most recent first
func (s *DashboardService) GetHistorical(ctx context.Context, locationID int64, limit int) (domain.HistoricalData, error) {
	air, err := s.repo.AirQualityHistory(ctx, locationID, limit)
	if err != nil {
		return domain.HistoricalData{}, fmt.Errorf("historical: failed to read air quality: %w", err)
	}

	water, err := s.repo.WaterHistory(ctx, locationID, limit)
	if err != nil {
		return domain.HistoricalData{}, fmt.Errorf("historical: failed to read water data: %w", err)
	}

	veg, err := s.repo.VegetationHistory(ctx, locationID, limit)
	if err != nil {
		return domain.HistoricalData{}, fmt.Errorf("historical: failed to read vegetation: %w", err)
	}

	dataSource := "Simulation"
	if s.engine.Mode() == engine.ModeLive {
		dataSource = "NASA APIs"
	}

	return domain.HistoricalData{
		AirQuality:    air,
		WaterSecurity: water,
		Vegetation:    veg,
		DataSource:    dataSource,
	}, nil
}

// Mode exposes the engine's resolved data-source mode for status endpoints
func (s *DashboardService) Mode() engine.Mode {
	return s.engine.Mode()
}
