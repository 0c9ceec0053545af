package service

import (
	"sort"
	"strings"

	"openkey/internal/model"
	"openkey/internal/utils"
)

// AreaCoordinates maps known Dubai area names, lower case, to their anchor
// point. Several spellings share one anchor.
var AreaCoordinates = map[string]model.Area{
	"dubai":     {Lat: 25.2048, Lon: 55.2708, Name: "Dubai (city-wide)"},
	"abu dhabi": {Lat: 24.4539, Lon: 54.3773, Name: "Abu Dhabi (city-wide)"},
	"sharjah":   {Lat: 25.3463, Lon: 55.4209, Name: "Sharjah (city-wide)"},

	"dubai marina":             {Lat: 25.08, Lon: 55.139, Name: "Dubai Marina"},
	"palm jumeirah":            {Lat: 25.112, Lon: 55.138, Name: "Palm Jumeirah"},
	"downtown dubai":           {Lat: 25.197, Lon: 55.274, Name: "Downtown Dubai"},
	"business bay":             {Lat: 25.187, Lon: 55.265, Name: "Business Bay"},
	"jbr":                      {Lat: 25.076, Lon: 55.134, Name: "JBR"},
	"jumeirah beach residence": {Lat: 25.076, Lon: 55.134, Name: "JBR"},
	"dubai hills":              {Lat: 25.042, Lon: 55.171, Name: "Dubai Hills Estate"},
	"dubai hills estate":       {Lat: 25.042, Lon: 55.171, Name: "Dubai Hills Estate"},
	"city walk":                {Lat: 25.205, Lon: 55.265, Name: "City Walk"},
	"difc":                     {Lat: 25.214, Lon: 55.281, Name: "DIFC"},
	"jumeirah lake towers":     {Lat: 25.072, Lon: 55.145, Name: "JLT"},
	"jlt":                      {Lat: 25.072, Lon: 55.145, Name: "JLT"},
}

// areaShorthand resolves colloquial names the rule-based parser accepts in
// free text. They are not valid model output.
var areaShorthand = map[string]string{
	"downtown":       "downtown dubai",
	"marina":         "dubai marina",
	"the palm":       "palm jumeirah",
	"palm":           "palm jumeirah",
	"jumeirah beach": "jbr",
}

// LookupArea resolves an area name to its anchor.
func LookupArea(name string) (model.Area, bool) {
	a, ok := AreaCoordinates[strings.ToLower(strings.TrimSpace(name))]
	return a, ok
}

// areaNames lists every recognised name, longest first, so that
// "dubai marina" wins over "dubai".
var areaNames = func() []string {
	names := make([]string, 0, len(AreaCoordinates)+len(areaShorthand))
	for n := range AreaCoordinates {
		names = append(names, n)
	}
	for n := range areaShorthand {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}()

// findAreas returns the areas mentioned in lower-cased text, ordered by
// first mention and de-duplicated by display name.
func findAreas(text string) []model.Area {
	type hit struct {
		pos  int
		area model.Area
	}

	var hits []hit
	for _, name := range areaNames {
		pos := utils.IndexWord(text, name)
		if pos < 0 {
			continue
		}
		key := name
		if full, ok := areaShorthand[name]; ok {
			key = full
		}
		hits = append(hits, hit{pos: pos, area: AreaCoordinates[key]})

		// blank every occurrence so shorter names inside it cannot match
		for p := pos; p >= 0; p = utils.IndexWord(text, name) {
			text = text[:p] + strings.Repeat(" ", len(name)) + text[p+len(name):]
		}
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	areas := make([]model.Area, 0, len(hits))
	seen := make(map[string]bool, len(hits))
	for _, h := range hits {
		if seen[h.area.Name] {
			continue
		}
		seen[h.area.Name] = true
		areas = append(areas, h.area)
	}
	return areas
}
