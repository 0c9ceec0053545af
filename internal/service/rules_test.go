package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func areaNamesOf(t *testing.T, text string) []string {
	t.Helper()
	var names []string
	for _, a := range ParseRules(text).PreferredAreas {
		names = append(names, a.Name)
	}
	return names
}

func TestParseRules_Budget(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMin *float64
		wantMax *float64
	}{
		{"under with suffix", "2BR near marina under 2.5M", nil, ptr(2500000.0)},
		{"aed range", "AED 1.8M - AED 2.5M in JLT", ptr(1800000.0), ptr(2500000.0)},
		{"suffix on upper bound only", "2-3M sea view penthouse", ptr(2000000.0), ptr(3000000.0)},
		{"between", "between 3M and 4.5M AED", ptr(3000000.0), ptr(4500000.0)},
		{"at least", "villa from AED 1,200,000", ptr(1200000.0), nil},
		{"around", "around 2M", ptr(1800000.0), ptr(2200000.0)},
		{"bare figure is a maximum", "2,500,000 AED apartment", nil, ptr(2500000.0)},
		{"thousands", "studio up to 950k", nil, ptr(950000.0)},
		{"small numbers are not money", "3 bedrooms under 5 minutes from the metro", nil, nil},
		{"years are not money", "handover in 2027", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRules(tt.text)
			assert.Equal(t, tt.wantMin, got.BudgetMin)
			assert.Equal(t, tt.wantMax, got.BudgetMax)
		})
	}
}

func TestParseRules_Size(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantMin *float64
		wantMax *float64
	}{
		{"range", "120-150 sqm under 2.5m", ptr(120.0), ptr(150.0)},
		{"single is a minimum", "at least 250 sqm", ptr(250.0), nil},
		{"m2", "around 150m2", ptr(150.0), nil},
		{"maximum", "under 90 sqm", nil, ptr(90.0)},
		{"square feet", "1,500 sqft townhouse", ptr(139.0), nil},
		{"none", "anything near the beach", nil, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseRules(tt.text)
			assert.Equal(t, tt.wantMin, got.SizeMin)
			assert.Equal(t, tt.wantMax, got.SizeMax)
		})
	}

	// the size figure must not leak into the budget
	got := ParseRules("120-150 sqm under 2.5m")
	assert.Nil(t, got.BudgetMin)
	assert.Equal(t, ptr(2500000.0), got.BudgetMax)
}

func TestParseRules_Handover(t *testing.T) {
	tests := []struct {
		text string
		want *string
	}{
		{"handover 2026-09", ptr("2026-09")},
		{"ready Q2 2026", ptr("2026-04")},
		{"early 2027", ptr("2027-01")},
		{"mid-2028", ptr("2028-06")},
		{"late 2027", ptr("2027-10")},
		{"end of 2027", ptr("2027-12")},
		{"by March 2028", ptr("2028-03")},
		{"ready by 2026", ptr("2026-06")},
		{"no date at all", nil},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseRules(tt.text).PreferredHandoverMonth)
		})
	}
}

func TestParseRules_Areas(t *testing.T) {
	assert.Equal(t, []string{"Dubai Marina"}, areaNamesOf(t, "2BR near marina under 2.5M"))
	assert.Equal(t, []string{"Dubai Hills Estate"}, areaNamesOf(t, "villa in Dubai Hills"))
	assert.Equal(t, []string{"JLT", "Business Bay"}, areaNamesOf(t, "JLT or Business Bay"))
	assert.Equal(t, []string{"JBR"}, areaNamesOf(t, "Jumeirah Beach Residence or JBR"))
	assert.Equal(t, []string{"Palm Jumeirah", "Dubai (city-wide)"}, areaNamesOf(t, "palm jumeirah, otherwise anywhere in dubai"))
	assert.Equal(t, []string{"Downtown Dubai"}, areaNamesOf(t, "downtown loft"))
	assert.Empty(t, areaNamesOf(t, "somewhere quiet"))
}

func TestParseRules_FullQuery(t *testing.T) {
	got := ParseRules("Family-friendly villa in Dubai Hills between 3M and 4.5M AED, at least 250 sqm, handover Q4 2027, pool and gym")

	require.NotNil(t, got.BudgetMin)
	assert.Equal(t, 3000000.0, *got.BudgetMin)
	assert.Equal(t, 4500000.0, *got.BudgetMax)
	assert.Equal(t, 250.0, *got.SizeMin)
	assert.Nil(t, got.SizeMax)
	assert.Equal(t, "2027-10", *got.PreferredHandoverMonth)
	require.Len(t, got.PreferredAreas, 1)
	assert.Equal(t, "Dubai Hills Estate", got.PreferredAreas[0].Name)
	assert.Equal(t, []string{"pool", "gym", "kids_area", "school_nearby", "park_nearby"}, got.AmenitiesRequested)
	assert.Equal(t, []string{"family", "villa"}, got.Keywords)
	assert.False(t, got.InvestmentFocused)
}

func TestParseRules_Investment(t *testing.T) {
	got := ParseRules("High ROI studio with strong rental yield in DIFC")

	assert.True(t, got.InvestmentFocused)
	assert.Equal(t, []string{"investment"}, got.Keywords)
	require.Len(t, got.PreferredAreas, 1)
	assert.Equal(t, "DIFC", got.PreferredAreas[0].Name)
}

func TestParseRules_Neutral(t *testing.T) {
	got := ParseRules("show me something nice")

	assert.Equal(t, "show me something nice", got.RawText)
	assert.Nil(t, got.BudgetMin)
	assert.Nil(t, got.BudgetMax)
	assert.Nil(t, got.SizeMin)
	assert.Nil(t, got.SizeMax)
	assert.Nil(t, got.PreferredHandoverMonth)
	assert.NotNil(t, got.PreferredAreas)
	assert.Empty(t, got.PreferredAreas)
	assert.Empty(t, got.Keywords)
	assert.Empty(t, got.AmenitiesRequested)
}

func TestLookupArea(t *testing.T) {
	a, ok := LookupArea("  Jumeirah Lake Towers ")
	require.True(t, ok)
	assert.Equal(t, "JLT", a.Name)
	assert.Equal(t, 25.072, a.Lat)

	_, ok = LookupArea("Al Barsha")
	assert.False(t, ok)

	_, ok = LookupArea("marina")
	assert.False(t, ok, "shorthand is only for free text")
}

func TestParseRules_MixedQueries(t *testing.T) {
	got := ParseRules("Apartment from AED 1,200,000 in JLT or Business Bay, ready by 2026")
	assert.Equal(t, ptr(1200000.0), got.BudgetMin)
	assert.Nil(t, got.BudgetMax)
	assert.Equal(t, ptr("2026-06"), got.PreferredHandoverMonth)
	assert.Equal(t, []string{"apartment"}, got.Keywords)
	assert.Equal(t, []string{"JLT", "Business Bay"}, areaNamesOf(t, got.RawText))

	got = ParseRules("2-3M sea view penthouse in Palm Jumeirah mid 2028")
	assert.Equal(t, ptr(2000000.0), got.BudgetMin)
	assert.Equal(t, ptr(3000000.0), got.BudgetMax)
	assert.Equal(t, ptr("2028-06"), got.PreferredHandoverMonth)
	assert.Equal(t, []string{"sea view", "penthouse"}, got.Keywords)
	assert.Equal(t, []string{"Palm Jumeirah"}, areaNamesOf(t, got.RawText))
}
