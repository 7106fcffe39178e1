package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanwell/backend/internal/domain"
	"github.com/urbanwell/backend/internal/engine"
	"github.com/urbanwell/backend/internal/repository/memory"
)

// faultyRepo simulates a store that accepts reads but rejects the dashboard
// write batch, standing in for a mid-batch persistence fault.
type faultyRepo struct {
	*memory.MemoryRepository
}

var errWriteRejected = errors.New("write rejected")

func (r *faultyRepo) SaveDashboardBatch(ctx context.Context, air domain.AirQuality, water domain.WaterData, veg domain.Vegetation, apiLog domain.APILog) error {
	return errWriteRejected
}

func newSimulatedService(repo DataRepository) *DashboardService {
	return NewDashboardService(engine.New(engine.ModeSimulated, nil), repo)
}

func registerLocation(t *testing.T, repo DataRepository) int64 {
	t.Helper()
	id, err := repo.CreateLocation(context.Background(), domain.Location{
		Name: "New Delhi", Latitude: 28.6139, Longitude: 77.2090,
	})
	require.NoError(t, err)
	return id
}

func TestGetDashboardData_PersistsAndReduces(t *testing.T) {
	repo := memory.NewMemoryRepository()
	svc := newSimulatedService(repo)
	id := registerLocation(t, repo)

	data, err := svc.GetDashboardData(context.Background(), id)
	require.NoError(t, err)

	assert.Equal(t, id, data.Location.ID)
	assert.False(t, data.LiveData)
	assert.GreaterOrEqual(t, data.WellbeingIndex, 0.0)
	assert.LessOrEqual(t, data.WellbeingIndex, 100.0)
	assert.Equal(t, domain.SourceSimulation, data.AirQuality.Source)

	// Exactly one observation row per domain was persisted
	air, err := repo.AirQualityHistory(context.Background(), id, 10)
	require.NoError(t, err)
	assert.Len(t, air, 1)

	water, err := repo.WaterHistory(context.Background(), id, 10)
	require.NoError(t, err)
	assert.Len(t, water, 1)

	veg, err := repo.VegetationHistory(context.Background(), id, 10)
	require.NoError(t, err)
	assert.Len(t, veg, 1)
}

func TestGetDashboardData_UnknownLocation(t *testing.T) {
	svc := newSimulatedService(memory.NewMemoryRepository())

	_, err := svc.GetDashboardData(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestGetDashboardData_PersistenceFailureAbortsQuery(t *testing.T) {
	inner := memory.NewMemoryRepository()
	repo := &faultyRepo{MemoryRepository: inner}
	svc := newSimulatedService(repo)
	id := registerLocation(t, repo)

	_, err := svc.GetDashboardData(context.Background(), id)
	require.Error(t, err)
	assert.ErrorIs(t, err, errWriteRejected)

	// The rejected batch must not leave partial rows behind
	air, err := inner.AirQualityHistory(context.Background(), id, 10)
	require.NoError(t, err)
	assert.Empty(t, air)
}

func TestGetAlerts_FromLatestStoredObservations(t *testing.T) {
	repo := memory.NewMemoryRepository()
	svc := newSimulatedService(repo)
	id := registerLocation(t, repo)

	ts := time.Now().UTC()
	err := repo.SaveDashboardBatch(context.Background(),
		domain.AirQuality{LocationID: id, Timestamp: ts, AQI: 160, Source: domain.SourceSimulation},
		domain.WaterData{LocationID: id, Timestamp: ts, FloodRisk: domain.FloodRiskHigh, GroundwaterLevel: -16, Source: domain.SourceSimulation},
		domain.Vegetation{LocationID: id, Timestamp: ts, GreenCoverage: 30, Source: domain.SourceSimulation},
		domain.APILog{Endpoint: "dashboard", Timestamp: ts},
	)
	require.NoError(t, err)

	alerts, err := svc.GetAlerts(context.Background(), id)
	require.NoError(t, err)
	require.Len(t, alerts, 3)
	assert.Equal(t, domain.AlertAirQuality, alerts[0].Type)
	assert.Equal(t, domain.AlertFloodRisk, alerts[1].Type)
	assert.Equal(t, domain.AlertWaterStress, alerts[2].Type)
}

func TestGetAlerts_NoStoredDataYieldsEmptySequence(t *testing.T) {
	repo := memory.NewMemoryRepository()
	svc := newSimulatedService(repo)
	id := registerLocation(t, repo)

	alerts, err := svc.GetAlerts(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, alerts)
}

func TestGetHistorical_ReportsDataSource(t *testing.T) {
	repo := memory.NewMemoryRepository()
	svc := newSimulatedService(repo)
	id := registerLocation(t, repo)

	data, err := svc.GetHistorical(context.Background(), id, 7)
	require.NoError(t, err)
	assert.Equal(t, "Simulation", data.DataSource)
	assert.Empty(t, data.AirQuality)
}
