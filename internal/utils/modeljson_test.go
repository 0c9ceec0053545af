package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type extraction struct {
	BudgetMax *float64 `json:"budgetMax"`
	Areas     []string `json:"areas"`
}

func TestDecodeModelJSON(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantMax   float64
		wantAreas int
	}{
		{
			name:      "plain object",
			input:     `{"budgetMax": 2500000, "areas": ["dubai marina"]}`,
			wantMax:   2500000,
			wantAreas: 1,
		},
		{
			name:      "fenced block",
			input:     "```json\n{\"budgetMax\": 1800000, \"areas\": []}\n```",
			wantMax:   1800000,
			wantAreas: 0,
		},
		{
			name:      "chatter around the object",
			input:     `Sure! Here is the extraction: {"budgetMax": 3000000, "areas": ["jbr", "jlt"]} Let me know.`,
			wantMax:   3000000,
			wantAreas: 2,
		},
		{
			name:      "trailing comma and bare keys",
			input:     `{budgetMax: 900000, areas: ["difc",],}`,
			wantMax:   900000,
			wantAreas: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got extraction
			require.NoError(t, DecodeModelJSON(tt.input, &got))
			require.NotNil(t, got.BudgetMax)
			assert.Equal(t, tt.wantMax, *got.BudgetMax)
			assert.Len(t, got.Areas, tt.wantAreas)
		})
	}
}

func TestDecodeModelJSON_Errors(t *testing.T) {
	var got extraction
	assert.ErrorIs(t, DecodeModelJSON("", &got), ErrNoJSON)
	assert.ErrorIs(t, DecodeModelJSON("I could not find anything useful", &got), ErrNoJSON)
}

func TestFirstObject(t *testing.T) {
	assert.Equal(t, `{"a": {"b": 2}}`, FirstObject(`x {"a": {"b": 2}} y {"c": 3}`))
	assert.Equal(t, `{"text": "Hello {world}"}`, FirstObject(`{"text": "Hello {world}"}`))
	assert.Equal(t, `{"q": "say \"}\""}`, FirstObject(`{"q": "say \"}\""}`))
	assert.Empty(t, FirstObject(`{"open": true`))
	assert.Empty(t, FirstObject("no braces"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 5))
	assert.Equal(t, "ab...", Truncate("abcdef", 2))
}
