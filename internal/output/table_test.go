package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"openkey/internal/enrichment"
	"openkey/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThousands(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{2450000, "2,450,000"},
		{12345678.6, "12,345,679"},
		{-1500, "-1,500"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Thousands(tt.in))
	}
}

func TestResults(t *testing.T) {
	var buf bytes.Buffer
	err := Results(&buf, []model.SearchResult{
		{ID: "p14", Name: "Marina Vista", Developer: "Emaar", PriceAED: 2300000, HandoverMonth: "2027-03", Score: 66, Rationale: "Within budget + 0.9 km from Dubai Marina"},
		{ID: "p5", Name: "Harbour Lights", Developer: "Select", PriceAED: 1950000, HandoverMonth: "2026-12", Score: 65, Rationale: "Within budget"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "p14")
	assert.Contains(t, out, "Marina Vista")
	assert.Contains(t, out, "2,300,000")
	assert.Contains(t, out, "66")
	assert.Less(t, strings.Index(out, "p14"), strings.Index(out, "p5"))
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	err := Summary(&buf, &enrichment.Summary{Total: 15, Enriched: 3, Skipped: 12, APICalls: 27, EstimatedCostUSD: 0.86})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Skipped (already enriched)")
	assert.Contains(t, out, "$0.86")
}

func TestJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, map[string]int{"score": 66}))

	var got map[string]int
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, 66, got["score"])
	assert.Contains(t, buf.String(), "\n  ")
}
