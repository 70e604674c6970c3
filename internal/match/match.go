// Package match scores free-text guesses against the accepted names of a
// country. Guesses and names are normalized (case, diacritics, punctuation)
// before comparison, and similarity is a normalized edit-distance ratio.
package match

import (
	"strings"
	"unicode"

	"github.com/agnivade/levenshtein"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Threshold is the minimum similarity ratio for a guess to be accepted
const Threshold = 0.65

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases s, folds diacritics to their base letters, drops
// punctuation and collapses runs of whitespace to single spaces.
func Normalize(s string) string {
	folded, _, err := transform.String(stripMarks, s)
	if err != nil {
		// fall back to the raw string; comparison still works, just stricter
		folded = s
	}

	var b strings.Builder
	b.Grow(len(folded))
	space := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if space && b.Len() > 0 {
				b.WriteByte(' ')
			}
			space = false
			b.WriteRune(r)
		case unicode.IsSpace(r):
			space = true
		}
		// punctuation is dropped without leaving a gap, so "d'ivoire"
		// and "divoire" normalize identically
	}
	return b.String()
}

// Ratio returns the similarity of two already-normalized strings in [0, 1]
func Ratio(a, b string) float64 {
	if a == b {
		return 1.0
	}
	longest := len([]rune(a))
	if l := len([]rune(b)); l > longest {
		longest = l
	}
	if longest == 0 {
		return 1.0
	}
	dist := levenshtein.ComputeDistance(a, b)
	return 1.0 - float64(dist)/float64(longest)
}

// Similarity returns the best ratio between the guess and any accepted name
func Similarity(guess string, names []string) float64 {
	g := Normalize(guess)
	best := 0.0
	for _, name := range names {
		if r := Ratio(g, Normalize(name)); r > best {
			best = r
		}
	}
	return best
}

// Evaluate reports the best similarity ratio and whether it clears Threshold
func Evaluate(guess string, names []string) (float64, bool) {
	score := Similarity(guess, names)
	return score, score >= Threshold
}
