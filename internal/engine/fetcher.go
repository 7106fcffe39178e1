package engine

import (
	"context"
	"log"
	"time"

	"github.com/urbanwell/backend/internal/domain"
	"github.com/urbanwell/backend/internal/engine/nasa"
)

// pathOutcome is the typed result of one vendor path attempt. Fallback is
// explicit control flow: a miss or an error moves to the next path, never up
// to the caller.
type pathOutcome int

const (
	pathHit pathOutcome = iota
	pathMiss
	pathError
)

// profile parameterizes the acquisition state machine for one environmental
// domain: which imagery endpoint path A hits, which dataset path B searches
// and with what bounding-box half-width, the optional open-data URL for
// path C, and the source tag stamped on live observations.
type profile struct {
	name           string
	assetsEndpoint string
	assetsDim      float64
	datasetName    string
	bboxHalfWidth  float64
	openDataURL    string
	sourceTag      string
}

// fetcher acquires observations for one domain. The three domains share this
// state machine and differ only in their profile and value generator.
type fetcher[T any] struct {
	mode     Mode
	client   *nasa.Client
	profile  profile
	generate func(ts time.Time, source string) T
}

// Fetch runs the prioritized vendor path sequence A -> B -> C for the
// coordinate and date. The first path that yields a result wins. It never
// returns an error: exhaustion of all paths resolves to a simulated
// observation.
func (f *fetcher[T]) Fetch(ctx context.Context, lat, lon float64, date time.Time) T {
	now := time.Now().UTC()
	if f.mode != ModeLive {
		return f.simulate(now)
	}

	day := date.Format("2006-01-02")

	if f.tryAssets(ctx, lat, lon, day) == pathHit {
		log.Printf("engine: %s: retrieved vendor imagery for %.4f, %.4f", f.profile.name, lat, lon)
		return f.generate(now, f.profile.sourceTag)
	}

	if f.tryGranuleSearch(ctx, lat, lon, day) == pathHit {
		log.Printf("engine: %s: found %s granules for %.4f, %.4f", f.profile.name, f.profile.datasetName, lat, lon)
		return f.generate(now, f.profile.sourceTag)
	}

	if f.tryOpenData(ctx) == pathHit {
		log.Printf("engine: %s: retrieved open data for %.4f, %.4f", f.profile.name, lat, lon)
		return f.generate(now, f.profile.sourceTag)
	}

	log.Printf("engine: %s: all vendor paths exhausted, falling back to simulation", f.profile.name)
	return f.simulate(now)
}

func (f *fetcher[T]) simulate(ts time.Time) T {
	return f.generate(ts, domain.SourceSimulation)
}

// tryAssets attempts path A, the generic imagery endpoint. Requires the
// optional API key; skipped when it is not configured.
func (f *fetcher[T]) tryAssets(ctx context.Context, lat, lon float64, day string) pathOutcome {
	if !f.client.HasAPIKey() {
		return pathMiss
	}
	if err := f.client.QueryAssets(ctx, f.profile.assetsEndpoint, lat, lon, day, f.profile.assetsDim); err != nil {
		log.Printf("engine: %s: assets path failed: %v", f.profile.name, err)
		return pathError
	}
	return pathHit
}

// tryGranuleSearch attempts path B, the dataset-specific granule search
func (f *fetcher[T]) tryGranuleSearch(ctx context.Context, lat, lon float64, day string) pathOutcome {
	count, err := f.client.SearchGranules(ctx, f.profile.datasetName, lat, lon, f.profile.bboxHalfWidth, day)
	if err != nil {
		log.Printf("engine: %s: granule search failed: %v", f.profile.name, err)
		return pathError
	}
	if count == 0 {
		return pathMiss
	}
	return pathHit
}

// tryOpenData attempts path C, the domain-specific open-data query. Domains
// without an alternative endpoint miss immediately.
func (f *fetcher[T]) tryOpenData(ctx context.Context) pathOutcome {
	if f.profile.openDataURL == "" {
		return pathMiss
	}
	if err := f.client.QueryOpenData(ctx, f.profile.openDataURL); err != nil {
		log.Printf("engine: %s: open data path failed: %v", f.profile.name, err)
		return pathError
	}
	return pathHit
}
