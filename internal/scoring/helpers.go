package scoring

import (
	"math"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// earthRadiusKm is the mean Earth radius used for haversine distances.
const earthRadiusKm = 6371.0

// round rounds half away from negative infinity, matching the
// half-up rounding the scores were calibrated with.
func round(x float64) int {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return 0
	}
	return int(math.Floor(x + 0.5))
}

// Clamp01 clamps n into [0, 1].
func Clamp01(n float64) float64 {
	return math.Max(0, math.Min(1, n))
}

// Pct converts a 0-1 fraction into a rounded 0-100 percentage.
func Pct(x float64) int {
	return round(Clamp01(x) * 100)
}

// LinearScore maps current within [min, max] onto 0-100.
func LinearScore(current, min, max float64) int {
	if min == max {
		return 100
	}
	return round(Clamp01((current-min)/(max-min)) * 100)
}

// MonthDiff returns the absolute number of months between two "YYYY-MM" labels.
func MonthDiff(a, b string) int {
	ay, am := parseMonth(a)
	by, bm := parseMonth(b)
	d := (ay-by)*12 + (am - bm)
	if d < 0 {
		return -d
	}
	return d
}

func parseMonth(s string) (year, month int) {
	parts := strings.SplitN(strings.TrimSpace(s), "-", 2)
	year, _ = strconv.Atoi(parts[0])
	if len(parts) > 1 {
		month, _ = strconv.Atoi(parts[1])
	}
	return year, month
}

// KmDistance returns the great-circle distance in kilometres between two
// points given as (lon, lat).
func KmDistance(a, b orb.Point) float64 {
	toRad := func(deg float64) float64 { return deg * math.Pi / 180 }

	dLat := toRad(b.Lat() - a.Lat())
	dLon := toRad(b.Lon() - a.Lon())
	lat1 := toRad(a.Lat())
	lat2 := toRad(b.Lat())

	h := math.Pow(math.Sin(dLat/2), 2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Pow(math.Sin(dLon/2), 2)

	return 2 * earthRadiusKm * math.Asin(math.Sqrt(h))
}
