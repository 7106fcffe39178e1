package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/urbanwell/backend/internal/domain"
)

// PostgresRepository implements domain.DataRepository
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// InitSchema creates the observation tables when they do not exist yet
func (r *PostgresRepository) InitSchema(ctx context.Context) error {
	schema := `
	CREATE TABLE IF NOT EXISTS locations (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL,
		latitude DOUBLE PRECISION NOT NULL,
		longitude DOUBLE PRECISION NOT NULL,
		population BIGINT,
		area DOUBLE PRECISION,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);

	CREATE TABLE IF NOT EXISTS air_quality (
		id BIGSERIAL PRIMARY KEY,
		location_id BIGINT REFERENCES locations (id),
		timestamp TIMESTAMPTZ NOT NULL,
		no2 DOUBLE PRECISION,
		o3 DOUBLE PRECISION,
		pm25 DOUBLE PRECISION,
		so2 DOUBLE PRECISION,
		aqi INTEGER,
		data_source TEXT NOT NULL DEFAULT 'SIMULATION'
	);

	CREATE TABLE IF NOT EXISTS water_data (
		id BIGSERIAL PRIMARY KEY,
		location_id BIGINT REFERENCES locations (id),
		timestamp TIMESTAMPTZ NOT NULL,
		groundwater_level DOUBLE PRECISION,
		precipitation DOUBLE PRECISION,
		flood_risk TEXT,
		data_source TEXT NOT NULL DEFAULT 'SIMULATION'
	);

	CREATE TABLE IF NOT EXISTS vegetation (
		id BIGSERIAL PRIMARY KEY,
		location_id BIGINT REFERENCES locations (id),
		timestamp TIMESTAMPTZ NOT NULL,
		ndvi DOUBLE PRECISION,
		evi DOUBLE PRECISION,
		green_coverage DOUBLE PRECISION,
		temperature DOUBLE PRECISION,
		data_source TEXT NOT NULL DEFAULT 'SIMULATION'
	);

	CREATE TABLE IF NOT EXISTS api_logs (
		id BIGSERIAL PRIMARY KEY,
		endpoint TEXT,
		latitude DOUBLE PRECISION,
		longitude DOUBLE PRECISION,
		response_status TEXT,
		timestamp TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);
	`

	if _, err := r.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("postgres: failed to create schema: %w", err)
	}
	return nil
}

// SeedLocations inserts the default monitored cities when the locations
// table is empty
func (r *PostgresRepository) SeedLocations(ctx context.Context) error {
	count, err := r.CountLocations(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	seed := []struct {
		name       string
		lat, lon   float64
		population int64
		area       float64
	}{
		{"New Delhi", 28.6139, 77.2090, 32000000, 1484.0},
		{"Mumbai", 19.0760, 72.8777, 21000000, 603.0},
		{"Bangalore", 12.9716, 77.5946, 13000000, 741.0},
		{"Chennai", 13.0827, 80.2707, 11000000, 426.0},
		{"Kolkata", 22.5726, 88.3639, 15000000, 1886.0},
		{"Hyderabad", 17.3850, 78.4867, 10500000, 650.0},
	}

	for _, s := range seed {
		_, err := r.pool.Exec(ctx, `
			INSERT INTO locations (name, latitude, longitude, population, area)
			VALUES ($1, $2, $3, $4, $5)
		`, s.name, s.lat, s.lon, s.population, s.area)
		if err != nil {
			return fmt.Errorf("postgres: failed to seed location %s: %w", s.name, err)
		}
	}
	return nil
}

// CreateLocation registers a new location and returns its id
func (r *PostgresRepository) CreateLocation(ctx context.Context, loc domain.Location) (int64, error) {
	query := `
		INSERT INTO locations (name, latitude, longitude, population, area)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id int64
	err := r.pool.QueryRow(ctx, query,
		loc.Name, loc.Latitude, loc.Longitude, loc.Population, loc.Area,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("postgres: failed to create location: %w", err)
	}
	return id, nil
}

// GetLocation returns one location or domain.ErrLocationNotFound
func (r *PostgresRepository) GetLocation(ctx context.Context, id int64) (domain.Location, error) {
	query := `
		SELECT id, name, latitude, longitude, population, area, created_at
		FROM locations
		WHERE id = $1
	`

	var loc domain.Location
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.Population, &loc.Area, &loc.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Location{}, domain.ErrLocationNotFound
	}
	if err != nil {
		return domain.Location{}, fmt.Errorf("postgres: failed to get location: %w", err)
	}
	return loc, nil
}

// ListLocations returns all locations ordered by name
func (r *PostgresRepository) ListLocations(ctx context.Context) ([]domain.Location, error) {
	query := `
		SELECT id, name, latitude, longitude, population, area, created_at
		FROM locations
		ORDER BY name
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query locations: %w", err)
	}
	defer rows.Close()

	var results []domain.Location
	for rows.Next() {
		var loc domain.Location
		err := rows.Scan(&loc.ID, &loc.Name, &loc.Latitude, &loc.Longitude, &loc.Population, &loc.Area, &loc.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan location row: %w", err)
		}
		results = append(results, loc)
	}
	return results, nil
}

// SaveDashboardBatch appends the three observations plus one audit entry in a
// single transaction. A failed insert rolls back the whole batch so readers
// never see a torn write.
func (r *PostgresRepository) SaveDashboardBatch(ctx context.Context, air domain.AirQuality, water domain.WaterData, veg domain.Vegetation, apiLog domain.APILog) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin batch: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO air_quality (location_id, timestamp, no2, o3, pm25, so2, aqi, data_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, air.LocationID, air.Timestamp, air.NO2, air.O3, air.PM25, air.SO2, air.AQI, air.Source)
	if err != nil {
		return fmt.Errorf("postgres: failed to save air quality data: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO water_data (location_id, timestamp, groundwater_level, precipitation, flood_risk, data_source)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, water.LocationID, water.Timestamp, water.GroundwaterLevel, water.Precipitation, water.FloodRisk, water.Source)
	if err != nil {
		return fmt.Errorf("postgres: failed to save water data: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO vegetation (location_id, timestamp, ndvi, evi, green_coverage, temperature, data_source)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, veg.LocationID, veg.Timestamp, veg.NDVI, veg.EVI, veg.GreenCoverage, veg.Temperature, veg.Source)
	if err != nil {
		return fmt.Errorf("postgres: failed to save vegetation data: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO api_logs (endpoint, latitude, longitude, response_status, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`, apiLog.Endpoint, apiLog.Latitude, apiLog.Longitude, apiLog.ResponseStatus, apiLog.Timestamp)
	if err != nil {
		return fmt.Errorf("postgres: failed to save api log: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("postgres: failed to commit batch: %w", err)
	}
	return nil
}

// LatestAirQuality returns the most recent air observation, or nil
func (r *PostgresRepository) LatestAirQuality(ctx context.Context, locationID int64) (*domain.AirQuality, error) {
	query := `
		SELECT id, location_id, timestamp, no2, o3, pm25, so2, aqi, data_source
		FROM air_quality
		WHERE location_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var a domain.AirQuality
	err := r.pool.QueryRow(ctx, query, locationID).Scan(
		&a.ID, &a.LocationID, &a.Timestamp, &a.NO2, &a.O3, &a.PM25, &a.SO2, &a.AQI, &a.Source,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to get latest air quality: %w", err)
	}
	return &a, nil
}

// LatestWaterData returns the most recent water observation, or nil
func (r *PostgresRepository) LatestWaterData(ctx context.Context, locationID int64) (*domain.WaterData, error) {
	query := `
		SELECT id, location_id, timestamp, groundwater_level, precipitation, flood_risk, data_source
		FROM water_data
		WHERE location_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var w domain.WaterData
	err := r.pool.QueryRow(ctx, query, locationID).Scan(
		&w.ID, &w.LocationID, &w.Timestamp, &w.GroundwaterLevel, &w.Precipitation, &w.FloodRisk, &w.Source,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to get latest water data: %w", err)
	}
	return &w, nil
}

// AirQualityHistory retrieves air observations, most recent first
func (r *PostgresRepository) AirQualityHistory(ctx context.Context, locationID int64, limit int) ([]domain.AirQuality, error) {
	query := `
		SELECT id, location_id, timestamp, no2, o3, pm25, so2, aqi, data_source
		FROM air_quality
		WHERE location_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, locationID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query air quality history: %w", err)
	}
	defer rows.Close()

	var results []domain.AirQuality
	for rows.Next() {
		var a domain.AirQuality
		err := rows.Scan(&a.ID, &a.LocationID, &a.Timestamp, &a.NO2, &a.O3, &a.PM25, &a.SO2, &a.AQI, &a.Source)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan air quality row: %w", err)
		}
		results = append(results, a)
	}
	return results, nil
}

// WaterHistory retrieves water observations, most recent first
func (r *PostgresRepository) WaterHistory(ctx context.Context, locationID int64, limit int) ([]domain.WaterData, error) {
	query := `
		SELECT id, location_id, timestamp, groundwater_level, precipitation, flood_risk, data_source
		FROM water_data
		WHERE location_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, locationID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query water history: %w", err)
	}
	defer rows.Close()

	var results []domain.WaterData
	for rows.Next() {
		var w domain.WaterData
		err := rows.Scan(&w.ID, &w.LocationID, &w.Timestamp, &w.GroundwaterLevel, &w.Precipitation, &w.FloodRisk, &w.Source)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan water row: %w", err)
		}
		results = append(results, w)
	}
	return results, nil
}

// VegetationHistory retrieves vegetation observations, most recent first
func (r *PostgresRepository) VegetationHistory(ctx context.Context, locationID int64, limit int) ([]domain.Vegetation, error) {
	query := `
		SELECT id, location_id, timestamp, ndvi, evi, green_coverage, temperature, data_source
		FROM vegetation
		WHERE location_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := r.pool.Query(ctx, query, locationID, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to query vegetation history: %w", err)
	}
	defer rows.Close()

	var results []domain.Vegetation
	for rows.Next() {
		var v domain.Vegetation
		err := rows.Scan(&v.ID, &v.LocationID, &v.Timestamp, &v.NDVI, &v.EVI, &v.GreenCoverage, &v.Temperature, &v.Source)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan vegetation row: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

// CountLocations returns the number of registered locations
func (r *PostgresRepository) CountLocations(ctx context.Context) (int, error) {
	var count int
	if err := r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM locations`).Scan(&count); err != nil {
		return 0, fmt.Errorf("postgres: failed to count locations: %w", err)
	}
	return count, nil
}

// Health checks database connectivity
func (r *PostgresRepository) Health(ctx context.Context) error {
	if err := r.pool.Ping(ctx); err != nil {
		return fmt.Errorf("postgres: health check failed: %w", err)
	}
	return nil
}
