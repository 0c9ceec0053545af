package enrichment

import (
	"context"
	"fmt"
	"math"

	"openkey/internal/model"

	"github.com/paulmach/orb"
	"github.com/sirupsen/logrus"
)

// costPerRequest is the Nearby Search list price in USD.
const costPerRequest = 0.032

// PlaceSearcher is the lookup the Enricher needs from a places backend
type PlaceSearcher interface {
	Nearby(ctx context.Context, center orb.Point, placeType string) ([]model.NearbyPlace, error)
}

// Options tune an enrichment run
type Options struct {
	// Force re-fetches projects that already carry surroundings.
	Force bool
	// Save, when set, receives the whole catalog after each enriched project
	// so an interrupted run keeps its progress.
	Save func(projects []model.Project) error
}

// Summary reports what an enrichment run did
type Summary struct {
	Total            int     `json:"total"`
	Enriched         int     `json:"enriched"`
	Skipped          int     `json:"skipped"`
	Errors           int     `json:"errors"`
	APICalls         int     `json:"api_calls"`
	EstimatedCostUSD float64 `json:"estimated_cost_usd"`
}

// EstimateCost prices a number of Nearby Search calls, rounded to cents
func EstimateCost(calls int) float64 {
	return math.Round(float64(calls)*costPerRequest*100) / 100
}

// Enricher fills in project surroundings
type Enricher struct {
	places PlaceSearcher
	logger *logrus.Logger
}

// NewEnricher creates a new enricher
func NewEnricher(places PlaceSearcher, logger *logrus.Logger) *Enricher {
	return &Enricher{places: places, logger: logger}
}

// EnrichCatalog returns a copy of projects with surroundings attached. A
// failed category is left empty; a project is counted as an error only when
// every category failed, and it then keeps its previous surroundings.
// A cancelled context or a failing Save stops the run.
func (e *Enricher) EnrichCatalog(ctx context.Context, projects []model.Project, opts Options) ([]model.Project, *Summary, error) {
	out := make([]model.Project, len(projects))
	copy(out, projects)
	summary := &Summary{Total: len(projects)}

	for i := range out {
		p := &out[i]
		log := e.logger.WithFields(logrus.Fields{
			"project_id": p.ID,
			"progress":   fmt.Sprintf("%d/%d", i+1, len(out)),
		})

		if p.Nearby != nil && !opts.Force {
			log.Debug("Skipping project, already enriched")
			summary.Skipped++
			continue
		}

		nearby, calls, failed := e.fetchNearby(ctx, p.Point(), log)
		summary.APICalls += calls
		summary.EstimatedCostUSD = EstimateCost(summary.APICalls)
		if err := ctx.Err(); err != nil {
			return out, summary, err
		}
		if failed == len(Categories) {
			log.Warn("Every lookup failed, keeping project unchanged")
			summary.Errors++
			continue
		}

		p.Nearby = nearby
		p.GeocodePrecision = "exact"
		summary.Enriched++
		log.WithField("places", nearby.Total()).Info("Project enriched")

		if opts.Save != nil {
			if err := opts.Save(out); err != nil {
				return out, summary, fmt.Errorf("save progress: %w", err)
			}
		}
	}

	return out, summary, nil
}

func (e *Enricher) fetchNearby(ctx context.Context, center orb.Point, log *logrus.Entry) (*model.Nearby, int, int) {
	nearby := &model.Nearby{}
	calls, failed := 0, 0

	for _, cat := range Categories {
		if ctx.Err() != nil {
			break
		}
		calls++
		places, err := e.places.Nearby(ctx, center, cat.PlaceType)
		if err != nil {
			log.WithError(err).WithField("category", cat.Key).Warn("Nearby lookup failed")
			failed++
			places = nil
		}
		if places == nil {
			places = []model.NearbyPlace{}
		}
		*cat.field(nearby) = places
	}
	return nearby, calls, failed
}
