package scoring

import (
	"math"
	"strings"
)

// SemanticSimilarity estimates how related two texts are from the overlap of
// their word sets: |A∩B| / sqrt(|A|·|B|), capped at 1. It is symmetric and
// returns 0 when either side has no words.
func SemanticSimilarity(a, b string) float64 {
	setA := tokenSet(a)
	setB := tokenSet(b)

	intersection := 0
	for tok := range setA {
		if _, ok := setB[tok]; ok {
			intersection++
		}
	}

	denominator := math.Sqrt(float64(len(setA) * len(setB)))
	if denominator == 0 {
		denominator = 1
	}
	return math.Min(1, float64(intersection)/denominator)
}

// tokenSet lower-cases s and splits it on every run of characters outside
// [a-z0-9].
func tokenSet(s string) map[string]struct{} {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !(r >= 'a' && r <= 'z' || r >= '0' && r <= '9')
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}
