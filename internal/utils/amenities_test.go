package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAmenity(t *testing.T) {
	tests := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"pool", "pool", true},
		{"  Swimming Pool ", "pool", true},
		{"beach access", "beach_access", true},
		{"Golf", "golf_course", true},
		{"co-working", "co_working", true},
		{"helipad", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := NormalizeAmenity(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeAmenities(t *testing.T) {
	got := NormalizeAmenities([]string{"Gym", "fitness", "helipad", "pool", "parks"})
	assert.Equal(t, []string{"gym", "pool", "park_nearby"}, got)
	assert.Empty(t, NormalizeAmenities(nil))
}

func TestDetectAmenities(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"tokens and spaced forms", "Need a pool, gym and beach access", []string{"pool", "gym", "beach_access"}},
		{"aliases", "pet friendly flat near the metro with parks nearby", []string{"pet_friendly", "metro", "park_nearby"}},
		{"nothing", "just somewhere nice", []string{}},
		{"alias needs word boundary", "carpet upgrades", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectAmenities(tt.text))
		})
	}
}

func TestDetectAmenities_Capped(t *testing.T) {
	text := "pool gym beach access parking kids area concierge sauna tennis pet friendly co working metro"
	assert.Len(t, DetectAmenities(text), MaxAmenities)
}

func TestContainsWord(t *testing.T) {
	assert.True(t, ContainsWord("near a park", "park"))
	assert.False(t, ContainsWord("parking only", "park"))
	assert.True(t, ContainsWord("parking, park", "park"))
	assert.False(t, ContainsWord("", "park"))
}

func TestIndexWord(t *testing.T) {
	assert.Equal(t, 11, IndexWord("villa near jlt", "jlt"))
	assert.Equal(t, -1, IndexWord("jltx", "jlt"))
	assert.Equal(t, -1, IndexWord("anything", ""))
}
