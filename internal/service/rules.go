package service

import (
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"openkey/internal/model"
	"openkey/internal/utils"
)

// amountPattern captures a figure and an optional magnitude suffix.
const amountPattern = `(\d[\d,]*(?:\.\d+)?)\s*(million|mn|m|k|thousand)?\b`

// minMoneyFigure is the smallest bare figure read as AED when it carries
// neither currency nor suffix.
const minMoneyFigure = 10000

var (
	budgetBetween = regexp.MustCompile(`between\s+(aed\s*)?` + amountPattern + `\s*(?:aed\s*)?and\s+(aed\s*)?` + amountPattern)
	budgetRange   = regexp.MustCompile(`(aed\s*)?` + amountPattern + `\s*(?:aed\s*)?(?:-|–|to)\s*(aed\s*)?` + amountPattern + `(\s*aed)?`)
	budgetAround  = regexp.MustCompile(`(?:around|approximately|approx\.?|about|roughly|~)\s*(aed\s*)?` + amountPattern + `(\s*aed)?`)
	budgetMax     = regexp.MustCompile(`(?:under|below|max(?:imum)?|up\s+to|less\s+than|no\s+more\s+than|within|budget(?:\s+of)?(?:\s+is)?)\s*:?\s*(aed\s*)?` + amountPattern + `(\s*aed)?`)
	budgetMin     = regexp.MustCompile(`(?:at\s+least|from|min(?:imum)?|over|above|more\s+than|starting\s+(?:at|from))\s*(aed\s*)?` + amountPattern + `(\s*aed)?`)
	budgetBare    = regexp.MustCompile(`(aed\s*)?` + amountPattern + `(\s*aed)?`)
)

const sizeUnit = `(sqm|sqft|sq\.?\s*ft|sq\.?\s*feet|sq\.?\s*m(?:et(?:er|re)s?)?|square\s+(?:feet|foot|met(?:er|re)s?)|m2|m²)`

var (
	sizeRange  = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*(?:-|–|to)\s*(\d[\d,]*(?:\.\d+)?)\s*` + sizeUnit)
	sizeMax    = regexp.MustCompile(`(?:under|below|max(?:imum)?|up\s+to|at\s+most|less\s+than)\s*(\d[\d,]*(?:\.\d+)?)\s*` + sizeUnit)
	sizeSingle = regexp.MustCompile(`(\d[\d,]*(?:\.\d+)?)\s*\+?\s*` + sizeUnit)
)

var (
	handoverExact   = regexp.MustCompile(`\b(20\d{2})-(0[1-9]|1[0-2])\b`)
	handoverQuarter = regexp.MustCompile(`\bq([1-4])\s*[-/]?\s*(20\d{2})\b`)
	handoverPhase   = regexp.MustCompile(`\b(early|beginning\s+of|start\s+of|mid|middle\s+of|late|end\s+of)\s*-?\s*(20\d{2})\b`)
	handoverMonth   = regexp.MustCompile(`\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sept?(?:ember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\s+(20\d{2})\b`)
	handoverYear    = regexp.MustCompile(`\b(?:handover|ready|completion|completing|delivery|move\s+in)\s+(?:in\s+|by\s+)?(20\d{2})\b`)
)

var phaseMonths = map[string]int{
	"early": 1, "beginning of": 1, "start of": 1,
	"mid": 6, "middle of": 6,
	"late": 10, "end of": 12,
}

var monthPrefixes = []string{"jan", "feb", "mar", "apr", "may", "jun", "jul", "aug", "sep", "oct", "nov", "dec"}

// keywordPhrases maps lifestyle phrasings onto canonical keywords.
var keywordPhrases = map[string]string{
	"family":          "family",
	"families":        "family",
	"quiet":           "quiet",
	"peaceful":        "quiet",
	"calm":            "quiet",
	"tranquil":        "quiet",
	"luxury":          "luxury",
	"luxurious":       "luxury",
	"premium":         "luxury",
	"high-end":        "luxury",
	"investment":      "investment",
	"invest":          "investment",
	"investor":        "investment",
	"roi":             "investment",
	"rental yield":    "investment",
	"rental income":   "investment",
	"yield":           "investment",
	"beachfront":      "beachfront",
	"beach front":     "beachfront",
	"sea view":        "sea view",
	"sea views":       "sea view",
	"ocean view":      "sea view",
	"waterfront":      "waterfront",
	"golf":            "golf",
	"nature":          "nature",
	"green":           "nature",
	"greenery":        "nature",
	"urban":           "urban",
	"city life":       "urban",
	"modern":          "modern",
	"contemporary":    "modern",
	"spacious":        "spacious",
	"villa":           "villa",
	"villas":          "villa",
	"townhouse":       "townhouse",
	"townhouses":      "townhouse",
	"penthouse":       "penthouse",
	"apartment":       "apartment",
	"apartments":      "apartment",
	"off-plan":        "off-plan",
	"off plan":        "off-plan",
	"family friendly": "family",
}

var familyAmenities = []string{"kids_area", "school_nearby", "park_nearby"}

// ParseRules extracts an intent from text with regular expressions and the
// fixed area, amenity and keyword vocabularies. It never fails; text it
// cannot read leaves the matching fields unconstrained.
func ParseRules(text string) *model.UserIntent {
	intent := model.NeutralIntent(text)
	lower := strings.ToLower(text)

	// sizes and dates are removed first so their figures are not read as money
	work := lower
	intent.SizeMin, intent.SizeMax, work = extractSize(work)
	intent.PreferredHandoverMonth, work = extractHandover(work)
	intent.BudgetMin, intent.BudgetMax = extractBudget(work)

	intent.PreferredAreas = findAreas(lower)
	intent.Keywords = findKeywords(lower)
	intent.AmenitiesRequested = findAmenities(lower)
	for _, k := range intent.Keywords {
		if k == "investment" {
			intent.InvestmentFocused = true
		}
	}

	return intent
}

func extractBudget(text string) (lo, hi *float64) {
	if m := firstMoney(budgetBetween, text, func(m []string) bool {
		return moneyLike(m[1:4]) || moneyLike(m[4:7])
	}); m != nil {
		return orderedPair(m[2], m[3], m[5], m[6])
	}

	if m := firstMoney(budgetRange, text, func(m []string) bool {
		return m[7] != "" || moneyLike(m[1:4]) || moneyLike(m[4:7])
	}); m != nil {
		return orderedPair(m[2], m[3], m[5], m[6])
	}

	single := func(m []string) bool { return m[4] != "" || moneyLike(m[1:4]) }

	if m := firstMoney(budgetAround, text, single); m != nil {
		v := amount(m[2], m[3])
		return ptr(math.Round(v * 0.9)), ptr(math.Round(v * 1.1))
	}
	if m := firstMoney(budgetMax, text, single); m != nil {
		return nil, ptr(amount(m[2], m[3]))
	}
	if m := firstMoney(budgetMin, text, single); m != nil {
		return ptr(amount(m[2], m[3])), nil
	}
	if m := firstMoney(budgetBare, text, single); m != nil {
		return nil, ptr(amount(m[2], m[3]))
	}
	return nil, nil
}

func firstMoney(re *regexp.Regexp, text string, accept func([]string) bool) []string {
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		if accept(m) {
			return m
		}
	}
	return nil
}

// moneyLike takes a (currency, figure, suffix) triple.
func moneyLike(g []string) bool {
	if g[0] != "" || g[2] != "" {
		return true
	}
	return amount(g[1], "") >= minMoneyFigure
}

// orderedPair reads a range where a suffix on the upper figure also applies
// to a bare lower one ("2-3M").
func orderedPair(loNum, loSuffix, hiNum, hiSuffix string) (*float64, *float64) {
	if loSuffix == "" {
		loSuffix = hiSuffix
	}
	lo, hi := amount(loNum, loSuffix), amount(hiNum, hiSuffix)
	if lo > hi {
		lo, hi = hi, lo
	}
	return ptr(lo), ptr(hi)
}

func amount(num, suffix string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(num, ",", ""), 64)
	if err != nil {
		return 0
	}
	switch suffix {
	case "million", "mn", "m":
		v *= 1_000_000
	case "k", "thousand":
		v *= 1_000
	}
	return v
}

func extractSize(text string) (lo, hi *float64, rest string) {
	if loc := sizeRange.FindStringSubmatchIndex(text); loc != nil {
		unit := text[loc[6]:loc[7]]
		a, b := sqm(text[loc[2]:loc[3]], unit), sqm(text[loc[4]:loc[5]], unit)
		if a > b {
			a, b = b, a
		}
		return ptr(a), ptr(b), blank(text, loc[0], loc[1])
	}
	if loc := sizeMax.FindStringSubmatchIndex(text); loc != nil {
		v := sqm(text[loc[2]:loc[3]], text[loc[4]:loc[5]])
		return nil, ptr(v), blank(text, loc[0], loc[1])
	}
	if loc := sizeSingle.FindStringSubmatchIndex(text); loc != nil {
		v := sqm(text[loc[2]:loc[3]], text[loc[4]:loc[5]])
		return ptr(v), nil, blank(text, loc[0], loc[1])
	}
	return nil, nil, text
}

// sqm converts a figure in unit to whole square metres.
func sqm(num, unit string) float64 {
	v := amount(num, "")
	if strings.Contains(unit, "f") {
		v /= 10.7639
	}
	return math.Round(v)
}

func extractHandover(text string) (*string, string) {
	if loc := handoverExact.FindStringSubmatchIndex(text); loc != nil {
		return ptr(text[loc[0]:loc[1]]), blank(text, loc[0], loc[1])
	}
	if loc := handoverQuarter.FindStringSubmatchIndex(text); loc != nil {
		q, _ := strconv.Atoi(text[loc[2]:loc[3]])
		return monthLabel(text[loc[4]:loc[5]], (q-1)*3+1), blank(text, loc[0], loc[1])
	}
	if loc := handoverPhase.FindStringSubmatchIndex(text); loc != nil {
		phase := strings.Join(strings.Fields(text[loc[2]:loc[3]]), " ")
		return monthLabel(text[loc[4]:loc[5]], phaseMonths[phase]), blank(text, loc[0], loc[1])
	}
	if loc := handoverMonth.FindStringSubmatchIndex(text); loc != nil {
		name := text[loc[2]:loc[3]]
		month := 0
		for i, p := range monthPrefixes {
			if strings.HasPrefix(name, p) {
				month = i + 1
				break
			}
		}
		return monthLabel(text[loc[4]:loc[5]], month), blank(text, loc[0], loc[1])
	}
	if loc := handoverYear.FindStringSubmatchIndex(text); loc != nil {
		return monthLabel(text[loc[2]:loc[3]], 6), blank(text, loc[0], loc[1])
	}
	return nil, text
}

func monthLabel(year string, month int) *string {
	return ptr(fmt.Sprintf("%s-%02d", year, month))
}

func findKeywords(text string) []string {
	first := make(map[string]int)
	for phrase, kw := range keywordPhrases {
		pos := utils.IndexWord(text, phrase)
		if pos < 0 {
			continue
		}
		if prev, ok := first[kw]; !ok || pos < prev {
			first[kw] = pos
		}
	}

	keywords := make([]string, 0, len(first))
	for kw := range first {
		keywords = append(keywords, kw)
	}
	sort.Slice(keywords, func(i, j int) bool {
		if first[keywords[i]] != first[keywords[j]] {
			return first[keywords[i]] < first[keywords[j]]
		}
		return keywords[i] < keywords[j]
	})
	return keywords
}

func findAmenities(text string) []string {
	found := utils.DetectAmenities(text)
	if utils.ContainsWord(text, "family friendly") || utils.ContainsWord(text, "family-friendly") {
		found = utils.NormalizeAmenities(append(found, familyAmenities...))
	}
	return found
}

func blank(s string, start, end int) string {
	return s[:start] + strings.Repeat(" ", end-start) + s[end:]
}

func ptr[T any](v T) *T { return &v }
