package engine

import (
	"context"
	"time"

	"github.com/urbanwell/backend/internal/domain"
	"github.com/urbanwell/backend/internal/engine/nasa"
)

// Domain acquisition profiles. Dataset short names and bounding-box widths
// follow the vendor catalogs: OMI NO2 for air, GRACE groundwater storage for
// water, MODIS vegetation indices for vegetation.
var (
	airProfile = profile{
		name:           "air_quality",
		assetsEndpoint: nasa.AssetsEndpoint,
		assetsDim:      0.10,
		datasetName:    "OMNO2d",
		bboxHalfWidth:  0.1,
		openDataURL:    "https://data.nasa.gov/api/views/air-quality/rows.json",
		sourceTag:      domain.SourceAirVendor,
	}
	waterProfile = profile{
		name:           "water_security",
		assetsEndpoint: nasa.ImageryEndpoint,
		datasetName:    "TELLUS_GRAC_L3_GWS_RL06_LND_v04",
		bboxHalfWidth:  0.5,
		sourceTag:      domain.SourceWaterVendor,
	}
	vegetationProfile = profile{
		name:           "vegetation",
		assetsEndpoint: nasa.AssetsEndpoint,
		assetsDim:      0.10,
		datasetName:    "MOD13Q1",
		bboxHalfWidth:  0.1,
		sourceTag:      domain.SourceVegetationVendor,
	}
)

// Engine acquires the three environmental signal sets for a coordinate,
// consulting its mode (resolved once at startup) on every fetch.
type Engine struct {
	mode       Mode
	air        fetcher[domain.AirQuality]
	water      fetcher[domain.WaterData]
	vegetation fetcher[domain.Vegetation]
}

// New builds an engine around a resolved mode and a shared vendor client
func New(mode Mode, client *nasa.Client) *Engine {
	return &Engine{
		mode:       mode,
		air:        fetcher[domain.AirQuality]{mode: mode, client: client, profile: airProfile, generate: generateAirQuality},
		water:      fetcher[domain.WaterData]{mode: mode, client: client, profile: waterProfile, generate: generateWaterData},
		vegetation: fetcher[domain.Vegetation]{mode: mode, client: client, profile: vegetationProfile, generate: generateVegetation},
	}
}

// Mode returns the engine's data-source mode
func (e *Engine) Mode() Mode {
	return e.mode
}

// FetchAirQuality acquires one air-quality observation
func (e *Engine) FetchAirQuality(ctx context.Context, lat, lon float64, date time.Time) domain.AirQuality {
	return e.air.Fetch(ctx, lat, lon, date)
}

// FetchWaterData acquires one water-security observation
func (e *Engine) FetchWaterData(ctx context.Context, lat, lon float64, date time.Time) domain.WaterData {
	return e.water.Fetch(ctx, lat, lon, date)
}

// FetchVegetation acquires one vegetation-health observation
func (e *Engine) FetchVegetation(ctx context.Context, lat, lon float64, date time.Time) domain.Vegetation {
	return e.vegetation.Fetch(ctx, lat, lon, date)
}
