package scoring

// AmenityMatchScore is the share of requested amenities the project offers.
// Extra amenities the user did not ask for neither help nor hurt.
func AmenityMatchScore(requested, available []string) int {
	if len(requested) == 0 {
		return NeutralScore
	}

	have := make(map[string]struct{}, len(available))
	for _, a := range available {
		have[a] = struct{}{}
	}

	matches := 0
	for _, r := range requested {
		if _, ok := have[r]; ok {
			matches++
		}
	}
	return round(float64(matches) / float64(len(requested)) * 100)
}
