package scoring

import "openkey/internal/model"

// TransparencyScore is the share of the document checklist a project has published.
func TransparencyScore(docs model.Docs) int {
	checklist := docs.Checklist()
	available := 0
	for _, ok := range checklist {
		if ok {
			available++
		}
	}
	return round(float64(available) / float64(len(checklist)) * 100)
}
