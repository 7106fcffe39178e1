package domain

import "time"

// Data source tags recorded with every observation. SourceSimulation marks
// synthetic values; the NASA tags mark values derived from a live vendor call.
const (
	SourceSimulation       = "SIMULATION"
	SourceAirVendor        = "NASA_TEMPO_OMI"
	SourceWaterVendor      = "NASA_GRACE_GPM"
	SourceVegetationVendor = "NASA_MODIS_LANDSAT"
)

// FloodRisk levels reported with water observations
const (
	FloodRiskLow    = "Low"
	FloodRiskMedium = "Medium"
	FloodRiskHigh   = "High"
)

// AirQuality is one air-quality observation for a location
type AirQuality struct {
	ID         int64     `json:"id,omitempty"`
	LocationID int64     `json:"location_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	NO2        float64   `json:"no2"`
	O3         float64   `json:"o3"`
	PM25       float64   `json:"pm25"`
	SO2        float64   `json:"so2"`
	AQI        int       `json:"aqi"`
	Source     string    `json:"data_source"`
}

// WaterData is one water-security observation for a location
type WaterData struct {
	ID               int64     `json:"id,omitempty"`
	LocationID       int64     `json:"location_id,omitempty"`
	Timestamp        time.Time `json:"timestamp"`
	GroundwaterLevel float64   `json:"groundwater_level"`
	Precipitation    float64   `json:"precipitation"`
	FloodRisk        string    `json:"flood_risk"`
	Source           string    `json:"data_source"`
}

// Vegetation is one vegetation-health observation for a location
type Vegetation struct {
	ID            int64     `json:"id,omitempty"`
	LocationID    int64     `json:"location_id,omitempty"`
	Timestamp     time.Time `json:"timestamp"`
	NDVI          float64   `json:"ndvi"`
	EVI           float64   `json:"evi"`
	GreenCoverage float64   `json:"green_coverage"`
	Temperature   float64   `json:"temperature"`
	Source        string    `json:"data_source"`
}

// APILog is one append-only audit entry for a dashboard query
type APILog struct {
	ID             int64     `json:"id,omitempty"`
	Endpoint       string    `json:"endpoint"`
	Latitude       float64   `json:"latitude"`
	Longitude      float64   `json:"longitude"`
	ResponseStatus string    `json:"response_status"`
	Timestamp      time.Time `json:"timestamp"`
}
