package engine

import (
	"math/rand"
	"time"

	"github.com/urbanwell/backend/internal/domain"
	"github.com/urbanwell/backend/pkg/utils"
)

// Value generators shared by simulation and live-payload derivation. Mapping
// real vendor payloads to metrics is a documented placeholder: a live fetch
// draws from the same closed ranges and differs only in its source tag.

func randomInRange(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

func randomIntInRange(lo, hi int) int {
	return lo + rand.Intn(hi-lo+1)
}

var floodRiskLevels = []string{
	domain.FloodRiskLow,
	domain.FloodRiskMedium,
	domain.FloodRiskHigh,
}

// generateAirQuality draws an air observation: no2 [10,50], o3 [20,80],
// pm25 [5,35], so2 [1,15], aqi integer [50,150]
func generateAirQuality(ts time.Time, source string) domain.AirQuality {
	return domain.AirQuality{
		Timestamp: ts,
		NO2:       utils.RoundTo(randomInRange(10, 50), 2),
		O3:        utils.RoundTo(randomInRange(20, 80), 2),
		PM25:      utils.RoundTo(randomInRange(5, 35), 2),
		SO2:       utils.RoundTo(randomInRange(1, 15), 2),
		AQI:       randomIntInRange(50, 150),
		Source:    source,
	}
}

// generateWaterData draws a water observation: groundwater [-20,20],
// precipitation [0,15], flood risk one of Low/Medium/High
func generateWaterData(ts time.Time, source string) domain.WaterData {
	return domain.WaterData{
		Timestamp:        ts,
		GroundwaterLevel: utils.RoundTo(randomInRange(-20, 20), 2),
		Precipitation:    utils.RoundTo(randomInRange(0, 15), 2),
		FloodRisk:        floodRiskLevels[rand.Intn(len(floodRiskLevels))],
		Source:           source,
	}
}

// generateVegetation draws a vegetation observation: ndvi [0.2,0.8],
// evi [0.1,0.6], green coverage [15,65], temperature [20,35]
func generateVegetation(ts time.Time, source string) domain.Vegetation {
	return domain.Vegetation{
		Timestamp:     ts,
		NDVI:          utils.RoundTo(randomInRange(0.2, 0.8), 3),
		EVI:           utils.RoundTo(randomInRange(0.1, 0.6), 3),
		GreenCoverage: utils.RoundTo(randomInRange(15, 65), 2),
		Temperature:   utils.RoundTo(randomInRange(20, 35), 2),
		Source:        source,
	}
}
