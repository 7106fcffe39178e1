package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanwell/backend/internal/domain"
)

func seedBatches(t *testing.T, repo *MemoryRepository, locationID int64, n int) time.Time {
	t.Helper()

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		ts := base.Add(time.Duration(i) * time.Hour)
		err := repo.SaveDashboardBatch(context.Background(),
			domain.AirQuality{LocationID: locationID, Timestamp: ts, AQI: 60 + i, Source: domain.SourceSimulation},
			domain.WaterData{LocationID: locationID, Timestamp: ts, GroundwaterLevel: float64(i), FloodRisk: domain.FloodRiskLow, Source: domain.SourceSimulation},
			domain.Vegetation{LocationID: locationID, Timestamp: ts, GreenCoverage: 30, Source: domain.SourceSimulation},
			domain.APILog{Endpoint: "dashboard", Timestamp: ts, ResponseStatus: "success"},
		)
		require.NoError(t, err)
	}
	return base
}

func TestCreateAndGetLocation(t *testing.T) {
	repo := NewMemoryRepository()

	id, err := repo.CreateLocation(context.Background(), domain.Location{
		Name: "Mumbai", Latitude: 19.0760, Longitude: 72.8777,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), id)

	loc, err := repo.GetLocation(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "Mumbai", loc.Name)
	assert.False(t, loc.CreatedAt.IsZero())
}

func TestGetLocation_NotFound(t *testing.T) {
	repo := NewMemoryRepository()

	_, err := repo.GetLocation(context.Background(), 42)
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestListLocations_OrderedByName(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	for _, name := range []string{"Kolkata", "Bangalore", "Chennai"} {
		_, err := repo.CreateLocation(ctx, domain.Location{Name: name})
		require.NoError(t, err)
	}

	locations, err := repo.ListLocations(ctx)
	require.NoError(t, err)
	require.Len(t, locations, 3)
	assert.Equal(t, "Bangalore", locations[0].Name)
	assert.Equal(t, "Chennai", locations[1].Name)
	assert.Equal(t, "Kolkata", locations[2].Name)
}

func TestHistory_LimitAndOrdering(t *testing.T) {
	repo := NewMemoryRepository()
	seedBatches(t, repo, 1, 10)

	history, err := repo.AirQualityHistory(context.Background(), 1, 7)
	require.NoError(t, err)
	require.Len(t, history, 7, "history must truncate at the limit")

	for i := 1; i < len(history); i++ {
		assert.True(t, history[i].Timestamp.Before(history[i-1].Timestamp),
			"history must be ordered most recent first")
	}
}

func TestLatestObservations(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	// No stored data yet
	air, err := repo.LatestAirQuality(ctx, 1)
	require.NoError(t, err)
	assert.Nil(t, air)

	seedBatches(t, repo, 1, 3)

	air, err = repo.LatestAirQuality(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, air)
	assert.Equal(t, 62, air.AQI, "latest row carries the newest timestamp")

	water, err := repo.LatestWaterData(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, water)
	assert.Equal(t, 2.0, water.GroundwaterLevel)
}

func TestSaveDashboardBatch_IsolatedPerLocation(t *testing.T) {
	repo := NewMemoryRepository()
	ctx := context.Background()

	seedBatches(t, repo, 1, 2)

	other, err := repo.AirQualityHistory(ctx, 2, 10)
	require.NoError(t, err)
	assert.Empty(t, other)

	count, err := repo.CountLocations(ctx)
	require.NoError(t, err)
	assert.Zero(t, count, "observations do not create locations")
}
