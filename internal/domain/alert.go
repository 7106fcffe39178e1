package domain

import "time"

// Alert types and severities
const (
	AlertAirQuality  = "air_quality"
	AlertFloodRisk   = "flood_risk"
	AlertWaterStress = "water_stress"

	SeverityWarning = "warning"
	SeverityDanger  = "danger"
)

// AlertRecord is a threshold-triggered advisory derived from the latest
// stored observations. Alerts are recomputed per query and never persisted.
type AlertRecord struct {
	Type      string    `json:"type"`
	Severity  string    `json:"severity"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
