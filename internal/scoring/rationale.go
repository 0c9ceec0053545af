package scoring

import (
	"fmt"
	"sort"
	"strings"

	"openkey/internal/model"
)

type labelled struct {
	label string
	score int
}

// Rationale explains a score by naming the two strongest dimensions and the
// weakest one. Ties keep the order budget, size, location, timeline,
// intent match, amenities.
func Rationale(subs model.Subscores, keywords []string) string {
	pairs := []labelled{
		{"budget", subs.Price},
		{"size", subs.Size},
		{"location", subs.Location},
		{"timeline", subs.Timeline},
		{"intent match", subs.Semantic},
		{"amenities", subs.Amenities},
	}

	sort.SliceStable(pairs, func(i, j int) bool {
		return pairs[i].score > pairs[j].score
	})

	top := []string{pairs[0].label, pairs[1].label}
	worst := pairs[len(pairs)-1].label

	if len(keywords) > 2 {
		keywords = keywords[:2]
	}
	aligns := strings.Join(keywords, " + ")
	if aligns == "" {
		aligns = "your prompt"
	}

	return fmt.Sprintf("Strong fit on %s; aligns with %s. Trade-off: %s.", strings.Join(top, " & "), aligns, worst)
}
