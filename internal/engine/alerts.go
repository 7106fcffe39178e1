package engine

import (
	"fmt"

	"github.com/urbanwell/backend/internal/domain"
)

// Alert thresholds
const (
	aqiAlertThreshold    = 100
	aqiDangerThreshold   = 150
	groundwaterThreshold = -15.0
)

// EvaluateAlerts inspects the latest stored observations and emits
// threshold-triggered advisories in a fixed order: air quality, flood risk,
// water stress. A nil observation skips its domain's checks. Each alert
// carries the timestamp of the observation that triggered it.
func EvaluateAlerts(latestAir *domain.AirQuality, latestWater *domain.WaterData) []domain.AlertRecord {
	alerts := []domain.AlertRecord{}

	if latestAir != nil && latestAir.AQI > aqiAlertThreshold {
		severity := domain.SeverityWarning
		if latestAir.AQI >= aqiDangerThreshold {
			severity = domain.SeverityDanger
		}
		alerts = append(alerts, domain.AlertRecord{
			Type:      domain.AlertAirQuality,
			Severity:  severity,
			Message:   fmt.Sprintf("Poor air quality detected. AQI: %d (%s)", latestAir.AQI, latestAir.Source),
			Timestamp: latestAir.Timestamp,
		})
	}

	if latestWater != nil {
		if latestWater.FloodRisk == domain.FloodRiskHigh {
			alerts = append(alerts, domain.AlertRecord{
				Type:      domain.AlertFloodRisk,
				Severity:  domain.SeverityDanger,
				Message:   fmt.Sprintf("High flood risk detected (%s)", latestWater.Source),
				Timestamp: latestWater.Timestamp,
			})
		}

		if latestWater.GroundwaterLevel < groundwaterThreshold {
			alerts = append(alerts, domain.AlertRecord{
				Type:      domain.AlertWaterStress,
				Severity:  domain.SeverityWarning,
				Message:   fmt.Sprintf("Severe groundwater depletion: %.1fcm", latestWater.GroundwaterLevel),
				Timestamp: latestWater.Timestamp,
			})
		}
	}

	return alerts
}
