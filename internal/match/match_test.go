package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "lowercases",
			input:    "France",
			expected: "france",
		},
		{
			name:     "strips diacritics",
			input:    "Côte d'Ivoire",
			expected: "cote divoire",
		},
		{
			name:     "collapses whitespace",
			input:    "  United   States  ",
			expected: "united states",
		},
		{
			name:     "drops punctuation",
			input:    "Guinea-Bissau",
			expected: "guineabissau",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Normalize(tt.input))
		})
	}
}

func TestSimilarity_ExactMatchIgnoresCase(t *testing.T) {
	score := Similarity("france", []string{"France"})
	assert.Equal(t, 1.0, score)
}

func TestEvaluate_AcceptsExactMatch(t *testing.T) {
	score, ok := Evaluate("France", []string{"France"})
	assert.True(t, ok)
	assert.Equal(t, 1.0, score)
}

func TestEvaluate_RejectsUnrelatedGuess(t *testing.T) {
	score, ok := Evaluate("xyz", []string{"France"})
	assert.False(t, ok)
	assert.Less(t, score, Threshold)
}

func TestEvaluate_AcceptsDiacriticFreeGuess(t *testing.T) {
	names := []string{"Ivory Coast", "Côte d'Ivoire"}

	score, ok := Evaluate("cote divoire", names)
	assert.True(t, ok, "normalized guess should clear the threshold")
	assert.Equal(t, 1.0, score)
}

func TestEvaluate_UsesBestAcceptedName(t *testing.T) {
	names := []string{"Ivory Coast", "Côte d'Ivoire"}

	// close to the first name, far from the second
	score, ok := Evaluate("ivory coast", names)
	assert.True(t, ok)
	assert.Equal(t, 1.0, score)
}

func TestEvaluate_NearMissAccepted(t *testing.T) {
	// one dropped letter should still clear 0.65
	score, ok := Evaluate("Germny", []string{"Germany"})
	assert.True(t, ok)
	assert.Greater(t, score, 0.8)
}

func TestRatio_EmptyStrings(t *testing.T) {
	assert.Equal(t, 1.0, Ratio("", ""))
	assert.Equal(t, 0.0, Ratio("", "france"))
}
