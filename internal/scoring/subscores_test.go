package scoring

import (
	"testing"

	"openkey/internal/model"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func ptr[T any](v T) *T { return &v }

func TestPriceScore(t *testing.T) {
	tests := []struct {
		name     string
		min, max *float64
		price    float64
		want     int
	}{
		{"missing price", ptr(1e6), ptr(2e6), 0, 0},
		{"no budget", nil, nil, 1500000, 70},
		{"at min", ptr(1e6), ptr(2e6), 1e6, 100},
		{"at max", ptr(1e6), ptr(2e6), 2e6, 100},
		{"in band", ptr(1e6), ptr(2e6), 1.5e6, 100},
		{"halfway down the floor ramp", ptr(1e6), ptr(2e6), 750000, 50},
		{"below floor", ptr(1e6), ptr(2e6), 400000, 0},
		{"5 percent over", ptr(1e6), ptr(2e6), 2.1e6, 50},
		{"beyond cap", ptr(1e6), ptr(2e6), 2.3e6, 0},
		{"max only", nil, ptr(2.5e6), 2e6, 100},
		{"min only doubles into max", ptr(1e6), nil, 1.9e6, 100},
		{"min only overshoot", ptr(1e6), nil, 2.5e6, 0},
		{"zero max", nil, ptr(0.0), 1e6, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PriceScore(tt.min, tt.max, tt.price))
		})
	}
}

func TestPriceScore_Monotonic(t *testing.T) {
	min, max := ptr(1e6), ptr(2e6)

	prev := -1
	for price := 300000.0; price <= 1e6; price += 25000 {
		s := PriceScore(min, max, price)
		assert.GreaterOrEqual(t, s, prev, "price %v", price)
		prev = s
	}

	prev = 101
	for price := 2e6; price <= 2.4e6; price += 10000 {
		s := PriceScore(min, max, price)
		assert.LessOrEqual(t, s, prev, "price %v", price)
		prev = s
	}
}

func TestPriceScore_OvershootHurtsMore(t *testing.T) {
	min, max := ptr(1e6), ptr(2e6)

	over := PriceScore(min, max, 1.05*2e6)
	under := PriceScore(min, max, 0.95*1e6)

	assert.Less(t, over, under)
}

func TestSizeScore(t *testing.T) {
	tests := []struct {
		name     string
		min, max *float64
		size     float64
		want     int
	}{
		{"missing size", ptr(100.0), ptr(150.0), 0, 0},
		{"no bounds", nil, nil, 120, 70},
		{"in range", ptr(100.0), ptr(150.0), 120, 100},
		{"below", ptr(100.0), ptr(150.0), 80, 60},
		{"above", ptr(100.0), ptr(150.0), 170, 60},
		{"far outside", ptr(100.0), ptr(150.0), 400, 0},
		{"min only", ptr(100.0), nil, 250, 50},
		{"max only", nil, ptr(100.0), 150, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SizeScore(tt.min, tt.max, tt.size))
		})
	}
}

func TestSizeScore_Symmetric(t *testing.T) {
	min, max := ptr(90.0), ptr(140.0)
	for _, d := range []float64{1, 7, 13, 25, 49, 50, 80} {
		assert.Equal(t, SizeScore(min, max, 90-d), SizeScore(min, max, 140+d), "deviation %v", d)
	}
}

func TestLocationScore(t *testing.T) {
	marina := model.Area{Lat: 25.08, Lon: 55.139, Name: "Dubai Marina"}
	abuDhabi := orb.Point{54.3773, 24.4539}

	t.Run("no preference", func(t *testing.T) {
		assert.Equal(t, 80, LocationScore(nil, abuDhabi))
		assert.Equal(t, 80, LocationScore([]model.Area{}, abuDhabi))
	})

	t.Run("on the anchor", func(t *testing.T) {
		assert.Equal(t, 100, LocationScore([]model.Area{marina}, marina.Point()))
	})

	t.Run("beyond 25km", func(t *testing.T) {
		assert.Equal(t, 0, LocationScore([]model.Area{marina}, abuDhabi))
	})

	t.Run("nearest anchor wins", func(t *testing.T) {
		abu := model.Area{Lat: 24.4539, Lon: 54.3773, Name: "Abu Dhabi"}
		assert.Equal(t, 100, LocationScore([]model.Area{abu, marina}, marina.Point()))
	})

	t.Run("partial credit in between", func(t *testing.T) {
		downtown := orb.Point{55.274, 25.197}
		s := LocationScore([]model.Area{marina}, downtown)
		assert.Greater(t, s, 0)
		assert.Less(t, s, 100)
	})
}

func TestTimelineScore(t *testing.T) {
	assert.Equal(t, 70, TimelineScore(nil, "2027-06"))
	assert.Equal(t, 100, TimelineScore(ptr("2027-06"), "2027-06"))
	assert.Equal(t, 75, TimelineScore(ptr("2027-06"), "2027-12"))
	assert.Equal(t, 50, TimelineScore(ptr("2027-06"), "2028-06"))
	assert.Equal(t, 0, TimelineScore(ptr("2025-06"), "2027-06"))
	assert.Equal(t, 0, TimelineScore(ptr("2020-01"), "2027-06"))
	assert.Equal(t, 0, TimelineScore(ptr("2027-06"), ""))
}

func TestAmenityMatchScore(t *testing.T) {
	assert.Equal(t, 70, AmenityMatchScore(nil, []string{"pool"}))
	assert.Equal(t, 50, AmenityMatchScore([]string{"pool", "gym"}, []string{"pool"}))
	assert.Equal(t, 100, AmenityMatchScore([]string{"pool", "gym"}, []string{"gym", "pool", "parking", "sauna"}))
	assert.Equal(t, 0, AmenityMatchScore([]string{"tennis"}, nil))
	assert.Equal(t, 33, AmenityMatchScore([]string{"pool", "gym", "tennis"}, []string{"pool"}))
}

func TestTransparencyScore(t *testing.T) {
	assert.Equal(t, 100, TransparencyScore(model.Docs{FloorPlans: true, PaymentSchedule: true, ServiceCharges: true, Approvals: true, MasterPlan: true}))
	assert.Equal(t, 80, TransparencyScore(model.Docs{FloorPlans: true, PaymentSchedule: true, Approvals: true, MasterPlan: true}))
	assert.Equal(t, 0, TransparencyScore(model.Docs{}))
}
