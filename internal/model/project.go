package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/paulmach/orb"
)

// Project is an off-plan development in the catalog. Projects are loaded once
// and never mutated by scoring.
type Project struct {
	ID               string    `json:"id" yaml:"id" db:"id"`
	Name             string    `json:"name" yaml:"name" db:"name"`
	Developer        string    `json:"developer" yaml:"developer" db:"developer"`
	Lat              float64   `json:"lat" yaml:"lat" db:"lat"`
	Lon              float64   `json:"lon" yaml:"lon" db:"lon"`
	PriceAED         float64   `json:"price_aed" yaml:"price_aed" db:"price_aed"`
	SizeSqm          float64   `json:"size_sqm" yaml:"size_sqm" db:"size_sqm"`
	HandoverMonth    string    `json:"handover_month" yaml:"handover_month" db:"handover_month"`
	Amenities        JSONArray `json:"amenities" yaml:"amenities" db:"amenities"`
	KeyHighlights    string    `json:"key_highlights" yaml:"key_highlights" db:"key_highlights"`
	ShortDesc        string    `json:"short_desc" yaml:"short_desc" db:"short_desc"`
	ThumbnailURL     string    `json:"thumbnail_url" yaml:"thumbnail_url" db:"thumbnail_url"`
	Docs             Docs      `json:"docs" yaml:"docs" db:"docs"`
	Nearby           *Nearby   `json:"nearby,omitempty" yaml:"nearby,omitempty" db:"nearby"`
	GeocodePrecision string    `json:"geocode_precision,omitempty" yaml:"geocode_precision,omitempty" db:"geocode_precision"`
}

// Point returns the project location as an orb point (lon, lat).
func (p Project) Point() orb.Point {
	return orb.Point{p.Lon, p.Lat}
}

// Description is the free text used for semantic matching.
func (p Project) Description() string {
	return p.ShortDesc + " " + p.KeyHighlights
}

// Docs flags which documents the developer has published.
type Docs struct {
	FloorPlans      bool `json:"floor_plans" yaml:"floor_plans"`
	PaymentSchedule bool `json:"payment_schedule" yaml:"payment_schedule"`
	ServiceCharges  bool `json:"service_charges" yaml:"service_charges"`
	Approvals       bool `json:"approvals" yaml:"approvals"`
	MasterPlan      bool `json:"master_plan" yaml:"master_plan"`
}

// Checklist returns the document flags in a fixed order.
func (d Docs) Checklist() []bool {
	return []bool{d.FloorPlans, d.PaymentSchedule, d.ServiceCharges, d.Approvals, d.MasterPlan}
}

// Value implements driver.Valuer interface
func (d Docs) Value() (driver.Value, error) {
	return json.Marshal(d)
}

// Scan implements sql.Scanner interface
func (d *Docs) Scan(value interface{}) error {
	return scanJSON(value, d)
}

// NearbyPlace is a point of interest found around a project.
type NearbyPlace struct {
	Name       string   `json:"name" yaml:"name"`
	Type       string   `json:"type,omitempty" yaml:"type,omitempty"`
	DistanceKm float64  `json:"distance_km" yaml:"distance_km"`
	Rating     *float64 `json:"rating,omitempty" yaml:"rating,omitempty"`
	Address    string   `json:"address,omitempty" yaml:"address,omitempty"`
	Line       string   `json:"line,omitempty" yaml:"line,omitempty"`
	Count      int      `json:"count,omitempty" yaml:"count,omitempty"`
}

// Nearby holds precomputed surroundings. Scoring does not read it.
type Nearby struct {
	Parks       []NearbyPlace `json:"parks" yaml:"parks,omitempty"`
	Schools     []NearbyPlace `json:"schools" yaml:"schools,omitempty"`
	Transit     []NearbyPlace `json:"transit" yaml:"transit,omitempty"`
	Hospitals   []NearbyPlace `json:"hospitals" yaml:"hospitals,omitempty"`
	Shopping    []NearbyPlace `json:"shopping" yaml:"shopping,omitempty"`
	Restaurants []NearbyPlace `json:"restaurants" yaml:"restaurants,omitempty"`
	Gyms        []NearbyPlace `json:"gyms" yaml:"gyms,omitempty"`
	GolfCourses []NearbyPlace `json:"golf_courses,omitempty" yaml:"golf_courses,omitempty"`
	Beaches     []NearbyPlace `json:"beaches,omitempty" yaml:"beaches,omitempty"`
}

// Total counts places across every category.
func (n *Nearby) Total() int {
	if n == nil {
		return 0
	}
	return len(n.Parks) + len(n.Schools) + len(n.Transit) + len(n.Hospitals) +
		len(n.Shopping) + len(n.Restaurants) + len(n.Gyms) + len(n.GolfCourses) + len(n.Beaches)
}

// Value implements driver.Valuer interface
func (n *Nearby) Value() (driver.Value, error) {
	if n == nil {
		return nil, nil
	}
	return json.Marshal(n)
}

// Scan implements sql.Scanner interface
func (n *Nearby) Scan(value interface{}) error {
	return scanJSON(value, n)
}

// JSONArray represents a JSON array field
type JSONArray []string

// Value implements driver.Valuer interface
func (j JSONArray) Value() (driver.Value, error) {
	if j == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(j)
}

// Scan implements sql.Scanner interface
func (j *JSONArray) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	return scanJSON(value, j)
}

// Contains reports whether v is in the array.
func (j JSONArray) Contains(v string) bool {
	for _, s := range j {
		if s == v {
			return true
		}
	}
	return false
}

func scanJSON(value interface{}, dst interface{}) error {
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return fmt.Errorf("unsupported JSON column type %T", value)
	}
}
