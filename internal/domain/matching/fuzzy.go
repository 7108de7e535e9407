package matching

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// MaxEditDistance is the largest Levenshtein distance at which two free-text
// labels still count as the same label.
const MaxEditDistance = 2

// IsSimilar reports whether two labels match case-insensitively within
// MaxEditDistance edits. Empty labels never match.
func IsSimilar(a, b string) bool {
	a = normalizeLabel(a)
	b = normalizeLabel(b)
	if a == "" || b == "" {
		return false
	}
	if a == b {
		return true
	}
	return levenshtein.ComputeDistance(a, b) <= MaxEditDistance
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func anySimilar(candidates []string, target string) bool {
	for _, c := range candidates {
		if IsSimilar(c, target) {
			return true
		}
	}
	return false
}

// countMatched counts the entries of from that fuzzy-match any entry of against.
func countMatched(from, against []string) int {
	if len(from) == 0 || len(against) == 0 {
		return 0
	}
	n := 0
	for _, s := range from {
		if anySimilar(against, s) {
			n++
		}
	}
	return n
}
