package service

import (
	"sort"

	"openkey/internal/model"
	"openkey/internal/scoring"
)

// Ranker scores a catalog against an intent and orders it
type Ranker struct {
	workers int
}

// NewRanker creates a ranker that scores with up to workers goroutines
func NewRanker(workers int) *Ranker {
	return &Ranker{workers: workers}
}

// Rank scores every project, attaches a rationale, and sorts by score
// descending. Equal scores keep catalog order.
func (r *Ranker) Rank(projects []model.Project, intent *model.UserIntent) []model.SearchResult {
	results := ParMap(projects, r.workers, func(p model.Project) model.SearchResult {
		res := scoring.ScoreProject(p, *intent)
		return model.SearchResult{
			ID:            p.ID,
			Name:          p.Name,
			Developer:     p.Developer,
			Thumbnail:     p.ThumbnailURL,
			PriceAED:      p.PriceAED,
			HandoverMonth: p.HandoverMonth,
			Score:         res.Score,
			Rationale:     scoring.Rationale(res.Subs, intent.Keywords),
			Subs:          res.Subs,
		}
	})

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}
