package engine

import (
	"math"

	"github.com/urbanwell/backend/internal/domain"
	"github.com/urbanwell/backend/pkg/utils"
)

// Wellbeing index weights and the neutral score substituted for a missing
// domain. Fixed design constants, not configurable.
const (
	airWeight   = 0.4
	waterWeight = 0.3
	greenWeight = 0.3

	neutralScore = 50.0
)

// ComputeWellbeing reduces the three latest observations into one composite
// score in [0,100]. A nil observation contributes the neutral score. The air
// and water terms are unbounded before combination (aqi above 100 drives the
// air score negative, extreme groundwater swings the water score past 100),
// so the result is clamped.
func ComputeWellbeing(air *domain.AirQuality, water *domain.WaterData, veg *domain.Vegetation) float64 {
	airScore := neutralScore
	if air != nil {
		airScore = math.Max(0, 100-float64(air.AQI))
	}

	waterScore := neutralScore
	if water != nil {
		waterScore = 50 + water.GroundwaterLevel*2
	}

	greenScore := neutralScore
	if veg != nil {
		greenScore = veg.GreenCoverage
	}

	index := airScore*airWeight + waterScore*waterWeight + greenScore*greenWeight
	return utils.RoundTo(utils.Clamp(index, 0, 100), 2)
}
