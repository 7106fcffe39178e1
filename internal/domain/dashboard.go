package domain

import "time"

// DashboardData aggregates one full fetch-persist-reduce cycle for a location
type DashboardData struct {
	Location       Location   `json:"location"`
	AirQuality     AirQuality `json:"air_quality"`
	WaterSecurity  WaterData  `json:"water_security"`
	Vegetation     Vegetation `json:"vegetation"`
	WellbeingIndex float64    `json:"wellbeing_index"`
	LiveData       bool       `json:"nasa_api_status"`
	LastUpdated    time.Time  `json:"last_updated"`
}

// HistoricalData holds per-domain observation history for trend views
type HistoricalData struct {
	AirQuality    []AirQuality `json:"air_quality"`
	WaterSecurity []WaterData  `json:"water_security"`
	Vegetation    []Vegetation `json:"vegetation"`
	DataSource    string       `json:"data_source"`
}
