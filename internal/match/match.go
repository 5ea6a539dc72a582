package match

import (
	"strings"
	"unicode"
)

// MinScore is the similarity a candidate needs to be suggested.
const MinScore = 0.6

// NormalizeIdent normalizes an identifier for fuzzy matching, so that
// "HomeDir", "homeDir" and "home_dir" compare equal.
func NormalizeIdent(s string) string {
	var b strings.Builder

	b.Grow(len(s))

	for _, r := range s {
		if r == '_' || r == '-' || r == ' ' {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return b.String()
}

// Levenshtein computes the edit distance between two strings, counted in
// runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) > len(rb) {
		ra, rb = rb, ra
	}

	// two rows of the matrix, indexed by the shorter string
	prev := make([]int, len(ra)+1)
	curr := make([]int, len(ra)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(rb); j++ {
		curr[0] = j

		for i := 1; i <= len(ra); i++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}

			curr[i] = min(prev[i]+1, curr[i-1]+1, prev[i-1]+cost)
		}

		prev, curr = curr, prev
	}

	return prev[len(ra)]
}

// Score returns the similarity of two identifiers between 0 and 1 after
// normalization. 1 means equal.
func Score(a, b string) float64 {
	na, nb := NormalizeIdent(a), NormalizeIdent(b)

	longest := max(len([]rune(na)), len([]rune(nb)))
	if longest == 0 {
		return 1
	}

	return 1 - float64(Levenshtein(na, nb))/float64(longest)
}

// Closest returns the candidate most similar to name. Ties go to the
// earlier candidate. ok is false when no candidate reaches MinScore.
func Closest(name string, candidates []string) (best string, ok bool) {
	bestScore := -1.0

	for _, c := range candidates {
		if s := Score(name, c); s > bestScore {
			best, bestScore = c, s
		}
	}

	return best, bestScore >= MinScore
}

// Hint formats a "did you mean" suggestion, or returns "" when nothing is
// close enough.
func Hint(name string, candidates []string) string {
	best, ok := Closest(name, candidates)
	if !ok {
		return ""
	}

	return "did you mean " + best + "?"
}
