package validate

import "github.com/agext/levenshtein"

// Suggest returns the known column closest to name by edit distance, when
// that distance is small enough relative to the name's length to be a
// plausible typo. The threshold is max(1, len(name)/4), so "age_grup"
// suggests "age_group" (distance 1) while "zzz" suggests nothing.
//
// Ties resolve to the lexicographically smallest candidate so suggestions
// are deterministic.
func Suggest(name string, columns []string) (string, bool) {
	if name == "" || len(columns) == 0 {
		return "", false
	}

	threshold := len(name) / 4
	if threshold < 1 {
		threshold = 1
	}

	best := ""
	bestDist := threshold + 1
	for _, col := range columns {
		d := levenshtein.Distance(name, col, nil)
		if d < bestDist || (d == bestDist && best != "" && col < best) {
			best = col
			bestDist = d
		}
	}

	if bestDist > threshold {
		return "", false
	}
	return best, true
}
