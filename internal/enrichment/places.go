// Package enrichment precomputes the surroundings of catalog projects from
// the Google Places Nearby Search API.
package enrichment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"openkey/internal/config"
	"openkey/internal/httputil"
	"openkey/internal/model"
	"openkey/internal/scoring"
	"openkey/internal/utils"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ErrPlacesDisabled is returned when no Google Maps API key is configured.
var ErrPlacesDisabled = errors.New("places client is not enabled (missing GOOGLE_MAPS_API_KEY)")

// Category ties a Nearby field to the Places type it is filled from.
type Category struct {
	Key       string
	PlaceType string
	field     func(*model.Nearby) *[]model.NearbyPlace
}

// Categories lists every surroundings category in fetch order. Beaches have
// no Places type of their own and come back as natural features.
var Categories = []Category{
	{"parks", "park", func(n *model.Nearby) *[]model.NearbyPlace { return &n.Parks }},
	{"schools", "school", func(n *model.Nearby) *[]model.NearbyPlace { return &n.Schools }},
	{"transit", "transit_station", func(n *model.Nearby) *[]model.NearbyPlace { return &n.Transit }},
	{"hospitals", "hospital", func(n *model.Nearby) *[]model.NearbyPlace { return &n.Hospitals }},
	{"shopping", "shopping_mall", func(n *model.Nearby) *[]model.NearbyPlace { return &n.Shopping }},
	{"restaurants", "restaurant", func(n *model.Nearby) *[]model.NearbyPlace { return &n.Restaurants }},
	{"gyms", "gym", func(n *model.Nearby) *[]model.NearbyPlace { return &n.Gyms }},
	{"golf_courses", "golf_course", func(n *model.Nearby) *[]model.NearbyPlace { return &n.GolfCourses }},
	{"beaches", "natural_feature", func(n *model.Nearby) *[]model.NearbyPlace { return &n.Beaches }},
}

// PlacesClient queries the Places Nearby Search endpoint
type PlacesClient struct {
	config     *config.PlacesConfig
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     *logrus.Logger
}

// NewPlacesClient creates a new Places client. Requests are spaced by
// cfg.RequestGap.
func NewPlacesClient(cfg *config.PlacesConfig, logger *logrus.Logger) *PlacesClient {
	limit := rate.Inf
	if cfg.RequestGap > 0 {
		limit = rate.Every(cfg.RequestGap)
	}
	return &PlacesClient{
		config:     cfg,
		httpClient: httputil.NewClient(cfg.Timeout),
		limiter:    rate.NewLimiter(limit, 1),
		logger:     logger,
	}
}

// IsEnabled returns whether an API key is configured
func (c *PlacesClient) IsEnabled() bool {
	return c.config.APIKey != ""
}

type nearbySearchResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
	Results      []struct {
		Name     string   `json:"name"`
		Vicinity string   `json:"vicinity"`
		Rating   *float64 `json:"rating"`
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"results"`
}

// Nearby returns the closest places of placeType around center, nearest
// first, at most PerCategory of them. Places without coordinates or outside
// the search radius are dropped. ZERO_RESULTS is an empty answer, any other
// non-OK status is an error.
func (c *PlacesClient) Nearby(ctx context.Context, center orb.Point, placeType string) ([]model.NearbyPlace, error) {
	if !c.IsEnabled() {
		return nil, ErrPlacesDisabled
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("location", strconv.FormatFloat(center.Lat(), 'f', -1, 64)+","+strconv.FormatFloat(center.Lon(), 'f', -1, 64))
	q.Set("radius", strconv.Itoa(c.config.RadiusMeters))
	q.Set("type", placeType)
	q.Set("key", c.config.APIKey)
	endpoint := strings.TrimRight(c.config.BaseURL, "/") + "/nearbysearch/json?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := httputil.DoWithRetry(ctx, c.httpClient, req, c.config.MaxRetries)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places request failed with status %d: %s", resp.StatusCode, utils.Truncate(string(body), 200))
	}

	var result nearbySearchResponse
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("unmarshal response: %w", err)
	}

	switch result.Status {
	case "OK", "ZERO_RESULTS":
	default:
		return nil, fmt.Errorf("places status %s: %s", result.Status, result.ErrorMessage)
	}

	bound := geo.NewBoundAroundPoint(center, float64(c.config.RadiusMeters))
	places := make([]model.NearbyPlace, 0, len(result.Results))
	for _, r := range result.Results {
		loc := r.Geometry.Location
		if loc.Lat == 0 || loc.Lng == 0 {
			continue
		}
		p := orb.Point{loc.Lng, loc.Lat}
		if !bound.Contains(p) {
			continue
		}

		name := r.Name
		if name == "" {
			name = "Unknown"
		}
		places = append(places, model.NearbyPlace{
			Name:       name,
			Type:       placeType,
			DistanceKm: math.Round(scoring.KmDistance(center, p)*100) / 100,
			Rating:     r.Rating,
			Address:    r.Vicinity,
		})
	}

	sort.SliceStable(places, func(i, j int) bool { return places[i].DistanceKm < places[j].DistanceKm })
	if limit := c.config.PerCategory; limit > 0 && len(places) > limit {
		places = places[:limit]
	}

	c.logger.WithFields(logrus.Fields{
		"type":     placeType,
		"returned": len(result.Results),
		"kept":     len(places),
	}).Debug("Nearby places fetched")
	return places, nil
}
