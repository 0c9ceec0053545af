package scoring

import (
	"testing"

	"openkey/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestRationale_StableOrdering(t *testing.T) {
	subs := model.Subscores{Price: 90, Size: 90, Location: 50, Timeline: 50, Semantic: 80, Amenities: 20}

	got := Rationale(subs, nil)

	assert.Equal(t, "Strong fit on budget & size; aligns with your prompt. Trade-off: amenities.", got)
}

func TestRationale_Keywords(t *testing.T) {
	subs := model.Subscores{Price: 10, Size: 40, Location: 100, Timeline: 70, Semantic: 30, Amenities: 95}

	got := Rationale(subs, []string{"family", "quiet", "golf"})

	assert.Equal(t, "Strong fit on location & amenities; aligns with family + quiet. Trade-off: budget.", got)
}

func TestRationale_AllEqual(t *testing.T) {
	subs := model.Subscores{Price: 70, Size: 70, Location: 70, Timeline: 70, Semantic: 70, Amenities: 70}

	got := Rationale(subs, []string{"luxury"})

	assert.Equal(t, "Strong fit on budget & size; aligns with luxury. Trade-off: amenities.", got)
}

func TestRationale_Deterministic(t *testing.T) {
	subs := model.Subscores{Price: 55, Size: 55, Location: 55, Timeline: 20, Semantic: 55, Amenities: 20}
	first := Rationale(subs, []string{"sea view"})
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, Rationale(subs, []string{"sea view"}))
	}
	assert.Equal(t, "Strong fit on budget & size; aligns with sea view. Trade-off: amenities.", first)
}
