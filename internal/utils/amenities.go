package utils

import (
	"sort"
	"strings"
)

// MaxAmenities caps how many amenities are taken from one prompt.
const MaxAmenities = 8

// Amenities is the controlled amenity vocabulary shared by the catalog and
// intent extraction.
var Amenities = []string{
	"pool", "gym", "beach_access", "parking", "kids_area", "concierge",
	"sauna", "tennis", "pet_friendly", "co_working", "metro", "tram",
	"school_nearby", "park_nearby", "marina_access", "golf_course", "cinema",
}

// amenityAliases maps free-text phrasings onto vocabulary tokens.
var amenityAliases = map[string]string{
	"swimming pool":     "pool",
	"swimming":          "pool",
	"fitness":           "gym",
	"gymnasium":         "gym",
	"beach":             "beach_access",
	"beachfront":        "beach_access",
	"private beach":     "beach_access",
	"car park":          "parking",
	"covered parking":   "parking",
	"playground":        "kids_area",
	"kids play":         "kids_area",
	"children":          "kids_area",
	"tennis court":      "tennis",
	"pets":              "pet_friendly",
	"pet":               "pet_friendly",
	"dog":               "pet_friendly",
	"coworking":         "co_working",
	"co-working":        "co_working",
	"school":            "school_nearby",
	"schools":           "school_nearby",
	"park":              "park_nearby",
	"parks":             "park_nearby",
	"golf":              "golf_course",
	"metro station":     "metro",
	"24/7 concierge":    "concierge",
	"movie theatre":     "cinema",
	"movie theater":     "cinema",
	"steam room":        "sauna",
	"tram station":      "tram",
	"near the metro":    "metro",
	"walk to school":    "school_nearby",
	"family playground": "kids_area",
}

var amenitySet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Amenities))
	for _, a := range Amenities {
		m[a] = struct{}{}
	}
	return m
}()

// NormalizeAmenity maps a free-text amenity name onto the vocabulary.
// The second return value is false when the term is not recognised.
func NormalizeAmenity(term string) (string, bool) {
	t := strings.ToLower(strings.TrimSpace(term))
	t = strings.Join(strings.Fields(t), " ")

	if _, ok := amenitySet[t]; ok {
		return t, true
	}
	if _, ok := amenitySet[strings.ReplaceAll(t, " ", "_")]; ok {
		return strings.ReplaceAll(t, " ", "_"), true
	}
	if a, ok := amenityAliases[t]; ok {
		return a, true
	}
	return "", false
}

// NormalizeAmenities normalises terms, dropping unknown ones and
// duplicates while keeping first-seen order.
func NormalizeAmenities(terms []string) []string {
	out := make([]string, 0, len(terms))
	seen := make(map[string]bool, len(terms))
	for _, term := range terms {
		a, ok := NormalizeAmenity(term)
		if !ok || seen[a] {
			continue
		}
		seen[a] = true
		out = append(out, a)
		if len(out) == MaxAmenities {
			break
		}
	}
	return out
}

// DetectAmenities finds vocabulary amenities mentioned in free text, either
// by token ("beach_access"), spaced form ("beach access") or alias. Results
// follow vocabulary order and are capped at MaxAmenities.
func DetectAmenities(text string) []string {
	lower := strings.ToLower(text)
	found := make(map[string]bool)

	for _, a := range Amenities {
		if strings.Contains(lower, a) || strings.Contains(lower, strings.ReplaceAll(a, "_", " ")) {
			found[a] = true
		}
	}

	phrases := make([]string, 0, len(amenityAliases))
	for p := range amenityAliases {
		phrases = append(phrases, p)
	}
	sort.Strings(phrases)
	for _, p := range phrases {
		if ContainsWord(lower, p) {
			found[amenityAliases[p]] = true
		}
	}

	out := make([]string, 0, len(found))
	for _, a := range Amenities {
		if found[a] {
			out = append(out, a)
		}
		if len(out) == MaxAmenities {
			break
		}
	}
	return out
}

// ContainsWord reports whether phrase occurs in text bounded by non-letters
// on both sides. Both arguments are expected to be lower case.
func ContainsWord(text, phrase string) bool {
	return IndexWord(text, phrase) >= 0
}

// IndexWord returns the byte offset of the first letter-bounded occurrence
// of phrase in text, or -1.
func IndexWord(text, phrase string) int {
	if phrase == "" {
		return -1
	}
	for from := 0; ; {
		i := strings.Index(text[from:], phrase)
		if i < 0 {
			return -1
		}
		start := from + i
		end := start + len(phrase)
		if (start == 0 || !isLetter(text[start-1])) && (end == len(text) || !isLetter(text[end])) {
			return start
		}
		from = start + 1
	}
}

func isLetter(b byte) bool {
	return b >= 'a' && b <= 'z'
}
