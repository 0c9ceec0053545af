package model

import "github.com/paulmach/orb"

// UserIntent is the structured form of a natural-language property query.
// A nil bound means the user did not constrain that dimension, which is not
// the same as a bound of zero.
type UserIntent struct {
	RawText                string   `json:"rawText"`
	BudgetMin              *float64 `json:"budgetMin,omitempty"`
	BudgetMax              *float64 `json:"budgetMax,omitempty"`
	SizeMin                *float64 `json:"sizeMin,omitempty"`
	SizeMax                *float64 `json:"sizeMax,omitempty"`
	PreferredAreas         []Area   `json:"preferredAreas"`
	PreferredHandoverMonth *string  `json:"preferredHandoverMonth,omitempty"`
	Keywords               []string `json:"keywords"`
	AmenitiesRequested     []string `json:"amenitiesRequested"`
	InvestmentFocused      bool     `json:"investmentFocused,omitempty"`
}

// NeutralIntent returns an intent that constrains nothing.
func NeutralIntent(text string) *UserIntent {
	return &UserIntent{
		RawText:            text,
		PreferredAreas:     []Area{},
		Keywords:           []string{},
		AmenitiesRequested: []string{},
	}
}

// Area is a named anchor point the user wants to live near.
type Area struct {
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name"`
}

// Point returns the area as an orb point (lon, lat).
func (a Area) Point() orb.Point {
	return orb.Point{a.Lon, a.Lat}
}
