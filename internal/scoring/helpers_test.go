package scoring

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestMonthDiff(t *testing.T) {
	tests := []struct {
		name string
		a, b string
		want int
	}{
		{"same month", "2027-06", "2027-06", 0},
		{"across year boundary", "2026-11", "2027-02", 3},
		{"order does not matter", "2027-02", "2026-11", 3},
		{"two years", "2025-06", "2027-06", 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MonthDiff(tt.a, tt.b))
		})
	}
}

func TestKmDistance(t *testing.T) {
	marina := orb.Point{55.139, 25.08}
	palm := orb.Point{55.138, 25.112}

	assert.Equal(t, 0.0, KmDistance(marina, marina))
	assert.InDelta(t, 3.56, KmDistance(marina, palm), 0.01)
	assert.InDelta(t, KmDistance(marina, palm), KmDistance(palm, marina), 1e-9)
}

func TestRound(t *testing.T) {
	assert.Equal(t, 68, round(67.5))
	assert.Equal(t, 67, round(67.49))
	assert.Equal(t, 0, round(-0.08))
	assert.Equal(t, 0, round(-0.5))
}

func TestLinearScore(t *testing.T) {
	assert.Equal(t, 100, LinearScore(5, 3, 3))
	assert.Equal(t, 50, LinearScore(5, 0, 10))
	assert.Equal(t, 0, LinearScore(-5, 0, 10))
	assert.Equal(t, 100, LinearScore(15, 0, 10))
}

func TestPct(t *testing.T) {
	assert.Equal(t, 71, Pct(0.7071))
	assert.Equal(t, 100, Pct(1.4))
	assert.Equal(t, 0, Pct(-0.2))
}
