package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urbanwell/backend/internal/domain"
)

func TestEvaluateAlerts_FixedCheckOrder(t *testing.T) {
	ts := time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC)

	air := &domain.AirQuality{AQI: 160, Source: domain.SourceAirVendor, Timestamp: ts}
	water := &domain.WaterData{
		FloodRisk:        domain.FloodRiskHigh,
		GroundwaterLevel: -16,
		Source:           domain.SourceWaterVendor,
		Timestamp:        ts,
	}

	alerts := EvaluateAlerts(air, water)
	require.Len(t, alerts, 3)

	assert.Equal(t, domain.AlertAirQuality, alerts[0].Type)
	assert.Equal(t, domain.SeverityDanger, alerts[0].Severity)

	assert.Equal(t, domain.AlertFloodRisk, alerts[1].Type)
	assert.Equal(t, domain.SeverityDanger, alerts[1].Severity)

	assert.Equal(t, domain.AlertWaterStress, alerts[2].Type)
	assert.Equal(t, domain.SeverityWarning, alerts[2].Severity)
}

func TestEvaluateAlerts_AirSeverityBoundary(t *testing.T) {
	ts := time.Now().UTC()

	// aqi just above the alert threshold but below the danger cutoff
	warning := EvaluateAlerts(&domain.AirQuality{AQI: 101, Source: domain.SourceSimulation, Timestamp: ts}, nil)
	require.Len(t, warning, 1)
	assert.Equal(t, domain.SeverityWarning, warning[0].Severity)

	// aqi exactly at the danger cutoff
	danger := EvaluateAlerts(&domain.AirQuality{AQI: 150, Source: domain.SourceSimulation, Timestamp: ts}, nil)
	require.Len(t, danger, 1)
	assert.Equal(t, domain.SeverityDanger, danger[0].Severity)

	// aqi at the alert threshold does not fire
	none := EvaluateAlerts(&domain.AirQuality{AQI: 100, Source: domain.SourceSimulation, Timestamp: ts}, nil)
	assert.Empty(t, none)
}

func TestEvaluateAlerts_MessagesCarrySourceAndLevel(t *testing.T) {
	ts := time.Now().UTC()

	air := &domain.AirQuality{AQI: 120, Source: domain.SourceAirVendor, Timestamp: ts}
	water := &domain.WaterData{GroundwaterLevel: -17.24, FloodRisk: domain.FloodRiskLow, Timestamp: ts}

	alerts := EvaluateAlerts(air, water)
	require.Len(t, alerts, 2)

	assert.Contains(t, alerts[0].Message, "AQI: 120")
	assert.Contains(t, alerts[0].Message, domain.SourceAirVendor)
	// groundwater level rendered to one decimal place
	assert.Contains(t, alerts[1].Message, "-17.2cm")
	assert.Equal(t, ts, alerts[1].Timestamp)
}

func TestEvaluateAlerts_MissingObservationsSkipChecks(t *testing.T) {
	assert.Empty(t, EvaluateAlerts(nil, nil))

	// Water-only input still evaluates water checks
	water := &domain.WaterData{FloodRisk: domain.FloodRiskHigh, GroundwaterLevel: 5, Timestamp: time.Now().UTC()}
	alerts := EvaluateAlerts(nil, water)
	require.Len(t, alerts, 1)
	assert.Equal(t, domain.AlertFloodRisk, alerts[0].Type)
}
