package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/urbanwell/backend/internal/domain"
)

// MemoryRepository is a concurrency-safe in-memory implementation of
// domain.DataRepository, used when no database is configured and in tests.
type MemoryRepository struct {
	mu sync.RWMutex

	locations map[int64]domain.Location
	air       map[int64][]domain.AirQuality
	water     map[int64][]domain.WaterData
	veg       map[int64][]domain.Vegetation
	apiLogs   []domain.APILog

	nextLocationID int64
	nextRowID      int64
}

// NewMemoryRepository creates an empty in-memory repository
func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		locations:      make(map[int64]domain.Location),
		air:            make(map[int64][]domain.AirQuality),
		water:          make(map[int64][]domain.WaterData),
		veg:            make(map[int64][]domain.Vegetation),
		nextLocationID: 1,
		nextRowID:      1,
	}
}

// CreateLocation registers a new location and returns its id
func (r *MemoryRepository) CreateLocation(ctx context.Context, loc domain.Location) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	loc.ID = r.nextLocationID
	r.nextLocationID++
	if loc.CreatedAt.IsZero() {
		loc.CreatedAt = time.Now().UTC()
	}
	r.locations[loc.ID] = loc
	return loc.ID, nil
}

// GetLocation returns one location or domain.ErrLocationNotFound
func (r *MemoryRepository) GetLocation(ctx context.Context, id int64) (domain.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	loc, ok := r.locations[id]
	if !ok {
		return domain.Location{}, domain.ErrLocationNotFound
	}
	return loc, nil
}

// ListLocations returns all locations ordered by name
func (r *MemoryRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	results := make([]domain.Location, 0, len(r.locations))
	for _, loc := range r.locations {
		results = append(results, loc)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Name < results[j].Name
	})
	return results, nil
}

// SaveDashboardBatch appends all four rows under one lock so the batch is
// atomic with respect to concurrent readers and writers
func (r *MemoryRepository) SaveDashboardBatch(ctx context.Context, air domain.AirQuality, water domain.WaterData, veg domain.Vegetation, apiLog domain.APILog) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	air.ID = r.nextRowID
	r.nextRowID++
	r.air[air.LocationID] = append(r.air[air.LocationID], air)

	water.ID = r.nextRowID
	r.nextRowID++
	r.water[water.LocationID] = append(r.water[water.LocationID], water)

	veg.ID = r.nextRowID
	r.nextRowID++
	r.veg[veg.LocationID] = append(r.veg[veg.LocationID], veg)

	apiLog.ID = r.nextRowID
	r.nextRowID++
	r.apiLogs = append(r.apiLogs, apiLog)

	return nil
}

// LatestAirQuality returns the most recent air observation, or nil
func (r *MemoryRepository) LatestAirQuality(ctx context.Context, locationID int64) (*domain.AirQuality, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.air[locationID]
	if len(rows) == 0 {
		return nil, nil
	}
	latest := rows[0]
	for _, row := range rows[1:] {
		if row.Timestamp.After(latest.Timestamp) {
			latest = row
		}
	}
	return &latest, nil
}

// LatestWaterData returns the most recent water observation, or nil
func (r *MemoryRepository) LatestWaterData(ctx context.Context, locationID int64) (*domain.WaterData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := r.water[locationID]
	if len(rows) == 0 {
		return nil, nil
	}
	latest := rows[0]
	for _, row := range rows[1:] {
		if row.Timestamp.After(latest.Timestamp) {
			latest = row
		}
	}
	return &latest, nil
}

// AirQualityHistory returns up to limit observations, most recent first
func (r *MemoryRepository) AirQualityHistory(ctx context.Context, locationID int64, limit int) ([]domain.AirQuality, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := append([]domain.AirQuality(nil), r.air[locationID]...)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// WaterHistory returns up to limit observations, most recent first
func (r *MemoryRepository) WaterHistory(ctx context.Context, locationID int64, limit int) ([]domain.WaterData, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := append([]domain.WaterData(nil), r.water[locationID]...)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// VegetationHistory returns up to limit observations, most recent first
func (r *MemoryRepository) VegetationHistory(ctx context.Context, locationID int64, limit int) ([]domain.Vegetation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rows := append([]domain.Vegetation(nil), r.veg[locationID]...)
	sort.Slice(rows, func(i, j int) bool {
		return rows[i].Timestamp.After(rows[j].Timestamp)
	})
	if limit > 0 && len(rows) > limit {
		rows = rows[:limit]
	}
	return rows, nil
}

// CountLocations returns the number of registered locations
func (r *MemoryRepository) CountLocations(ctx context.Context) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.locations), nil
}

// Health always succeeds for the in-memory repository
func (r *MemoryRepository) Health(ctx context.Context) error {
	return nil
}
