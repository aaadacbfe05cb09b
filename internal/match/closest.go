package match

import (
	"strings"
)

// DefaultMinScore is the similarity a known label needs to be suggested.
const DefaultMinScore = 0.6

// Closest returns the label in known most similar to target, ignoring case
// and the separators '-', '_' and '.'. Ties go to the label listed first.
// ok is false when no label reaches minScore or target itself is known.
func Closest(target string, known []string, minScore float64) (best string, ok bool) {
	norm := normalize(target)
	bestScore := minScore

	for _, k := range known {
		if k == target {
			return "", false
		}

		score := Similarity(norm, normalize(k))
		if score >= bestScore && (!ok || score > bestScore) {
			best, bestScore, ok = k, score, true
		}
	}

	return best, ok
}

func normalize(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range strings.ToLower(s) {
		switch r {
		case '-', '_', '.':
			continue
		}

		b.WriteRune(r)
	}

	return b.String()
}
