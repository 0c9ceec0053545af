package scoring

import "openkey/internal/model"

// Blend weights. Every input is an already-rounded integer and every
// intermediate composite is rounded again before it is used, so results are
// reproducible to the integer.
const (
	weightSemantic  = 0.7
	weightAmenities = 0.3

	weightQFit         = 0.55
	weightQRes         = 0.35
	weightTransparency = 0.10
)

// Result is the composite score of one project plus the subscores behind it.
type Result struct {
	Score int             `json:"score"`
	Subs  model.Subscores `json:"subs"`
}

// ScoreProject rates a project against an intent.
func ScoreProject(p model.Project, intent model.UserIntent) Result {
	subs := model.Subscores{
		Price:        PriceScore(intent.BudgetMin, intent.BudgetMax, p.PriceAED),
		Size:         SizeScore(intent.SizeMin, intent.SizeMax, p.SizeSqm),
		Location:     LocationScore(intent.PreferredAreas, p.Point()),
		Timeline:     TimelineScore(intent.PreferredHandoverMonth, p.HandoverMonth),
		Semantic:     Pct(SemanticSimilarity(intent.RawText, p.Description())),
		Amenities:    AmenityMatchScore(intent.AmenitiesRequested, p.Amenities),
		Transparency: TransparencyScore(p.Docs),
	}
	return Combine(subs)
}

// Combine derives qfit, qres and the final score from the seven primary
// subscores.
func Combine(subs model.Subscores) Result {
	subs.QFit = round(float64(subs.Price+subs.Size+subs.Location+subs.Timeline) / 4)
	subs.QRes = round(weightSemantic*float64(subs.Semantic) + weightAmenities*float64(subs.Amenities))

	score := round(weightQFit*float64(subs.QFit) +
		weightQRes*float64(subs.QRes) +
		weightTransparency*float64(subs.Transparency))

	return Result{Score: score, Subs: subs}
}
