package scoring

import (
	"math"

	"openkey/internal/model"

	"github.com/paulmach/orb"
)

// Neutral priors used when the user left a dimension unconstrained.
const (
	NeutralScore         = 70
	NeutralLocationScore = 80
)

// Location ramp: full marks inside nearKm, nothing beyond farKm.
const (
	nearKm = 1.0
	farKm  = 25.0
)

// pointsPerMonth reaches zero at a 24 month gap.
const pointsPerMonth = 4.17

// PriceScore rates a price against an optional budget. Overshooting the
// budget is punished much harder than undershooting it: the score hits zero
// 10% above max but only 50% below min.
func PriceScore(budgetMin, budgetMax *float64, price float64) int {
	if price == 0 {
		return 0
	}
	if budgetMin == nil && budgetMax == nil {
		return NeutralScore
	}

	lo := 0.0
	if budgetMin != nil {
		lo = *budgetMin
	}
	hi := lo * 2 // only a minimum was given
	if budgetMax != nil {
		hi = *budgetMax
	}

	if price >= lo && price <= hi {
		return 100
	}

	if price < lo {
		floor := lo * 0.5
		return clampScore(round(100 * ((price - floor) / (lo - floor))))
	}

	ceiling := hi * 1.10
	if ceiling <= hi {
		return 0
	}
	return clampScore(round(100 * (1 - (price-hi)/(ceiling-hi))))
}

// SizeScore rates a size against an optional range. The penalty is the
// distance to the nearer bound relative to the band width, on both sides.
func SizeScore(sizeMin, sizeMax *float64, size float64) int {
	if size == 0 {
		return 0
	}
	if sizeMin == nil && sizeMax == nil {
		return NeutralScore
	}

	lo := 0.0
	if sizeMin != nil {
		lo = *sizeMin
	}
	hi := lo + 100
	if sizeMax != nil {
		hi = *sizeMax
	}

	if size >= lo && size <= hi {
		return 100
	}

	band := math.Max(1, hi-lo)
	delta := size - hi
	if size < lo {
		delta = lo - size
	}
	penalty := math.Min(1, delta/band)
	return round(100 * (1 - penalty))
}

// LocationScore rates how close loc is to the nearest preferred area.
func LocationScore(areas []model.Area, loc orb.Point) int {
	if len(areas) == 0 {
		return NeutralLocationScore
	}

	closest := math.Inf(1)
	for _, a := range areas {
		if d := KmDistance(a.Point(), loc); d < closest {
			closest = d
		}
	}

	if closest <= nearKm {
		return 100
	}
	if closest >= farKm {
		return 0
	}
	return round(100 * (1 - (closest-nearKm)/(farKm-nearKm)))
}

// TimelineScore rates a handover month against the preferred one.
func TimelineScore(preferred *string, handover string) int {
	if handover == "" {
		return 0
	}
	if preferred == nil || *preferred == "" {
		return NeutralScore
	}

	months := MonthDiff(*preferred, handover)
	return clampScore(round(100 - pointsPerMonth*float64(months)))
}

func clampScore(s int) int {
	if s < 0 {
		return 0
	}
	if s > 100 {
		return 100
	}
	return s
}
