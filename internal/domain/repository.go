package domain

import (
	"context"
	"errors"
)

// ErrLocationNotFound is returned when a location id is unknown.
// Callers distinguish it from internal failures with errors.Is.
var ErrLocationNotFound = errors.New("location not found")

// DataRepository defines the interface for data persistence
// This follows the Dependency Inversion Principle - domain defines the interface
type DataRepository interface {
	// CreateLocation registers a new monitored location and returns its id
	CreateLocation(ctx context.Context, loc Location) (int64, error)

	// GetLocation returns one location or ErrLocationNotFound
	GetLocation(ctx context.Context, id int64) (Location, error)

	// ListLocations returns all locations ordered by name
	ListLocations(ctx context.Context) ([]Location, error)

	// SaveDashboardBatch appends the three observations plus one audit log
	// entry as a single durable batch. Either all four rows persist or none.
	SaveDashboardBatch(ctx context.Context, air AirQuality, water WaterData, veg Vegetation, apiLog APILog) error

	// LatestAirQuality returns the most recent air observation, or nil when
	// none has been stored for the location
	LatestAirQuality(ctx context.Context, locationID int64) (*AirQuality, error)

	// LatestWaterData returns the most recent water observation, or nil
	LatestWaterData(ctx context.Context, locationID int64) (*WaterData, error)

	// AirQualityHistory returns up to limit observations, most recent first
	AirQualityHistory(ctx context.Context, locationID int64, limit int) ([]AirQuality, error)

	// WaterHistory returns up to limit observations, most recent first
	WaterHistory(ctx context.Context, locationID int64, limit int) ([]WaterData, error)

	// VegetationHistory returns up to limit observations, most recent first
	VegetationHistory(ctx context.Context, locationID int64, limit int) ([]Vegetation, error)

	// CountLocations returns the number of registered locations
	CountLocations(ctx context.Context) (int, error)

	// Health checks storage connectivity
	Health(ctx context.Context) error
}
