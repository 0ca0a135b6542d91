package ai

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const reactContent = "React hooks let you use state in functional components. " +
	"This pattern replaced class lifecycle methods. " +
	"Many developers prefer hooks now."

func TestInferSummaryPicksSalientSentences(t *testing.T) {
	got := inferSummary("Intro to React Hooks", reactContent)

	assert.Equal(t,
		"Many developers prefer hooks now. React hooks let you use state in functional components.",
		got)

	// Not just the document opening.
	assert.NotEqual(t, "React hooks let you use state in functional components.", got)
	assert.True(t, strings.HasSuffix(got, "."))
}

func TestInferSummaryDeterministic(t *testing.T) {
	first := inferSummary("Intro to React Hooks", reactContent)
	second := inferSummary("Intro to React Hooks", reactContent)
	assert.Equal(t, first, second)
}

func TestInferSummaryNoSentenceCandidates(t *testing.T) {
	// Fragments too short to qualify as sentences.
	got := inferSummary("Shopping", "milk. eggs. bread.")
	assert.Equal(t, "milk. eggs. bread.", got)

	long := strings.Repeat("word ", 60) // no sentence punctuation
	got = inferSummary("Notes", long)
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, len(got), 153)
}

func TestInferSummaryMultibyteContentStaysValidUTF8(t *testing.T) {
	// Spaceless CJK text with no sentence punctuation forces the truncation
	// path; the cut must land on a rune boundary.
	got := inferSummary("ノート", "a"+strings.Repeat("知", 250))
	assert.True(t, utf8.ValidString(got))
	assert.True(t, strings.HasSuffix(got, "..."))
	assert.LessOrEqual(t, utf8.RuneCountInString(got), 153)

	// Short multibyte content comes back whole.
	got = inferSummary("ノート", strings.Repeat("知", 15))
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("知", 15), got)
}

func TestInferSummaryEmptyContentFallsBackToTitle(t *testing.T) {
	assert.Equal(t, "Quick thought", inferSummary("Quick thought", ""))
	assert.Equal(t, "Quick thought", inferSummary("Quick thought", "   "))
}

func TestInferTags(t *testing.T) {
	tags := inferTags("Intro to React Hooks", reactContent)
	require.NotEmpty(t, tags)
	assert.Contains(t, tags, "web-development")
	assert.LessOrEqual(t, len(tags), maxHeuristicTags)

	// Nothing recognizable gets the generic fallback.
	assert.Equal(t, []string{"general"}, inferTags("Hmm", "zzz qqq"))
}

func TestInferCategory(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		content string
		want    string
	}{
		{"tech", "Intro to React Hooks", reactContent, "Technology"},
		{"personal", "Last night", "Dinner with family, feeling grateful", "Personal"},
		{"business", "Q3", "Our startup revenue doubled this quarter", "Business"},
		{"fallback", "Hmm", "zzz qqq", "Personal"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, inferCategory(tt.title, tt.content))
		})
	}
}

func TestMatchCategory(t *testing.T) {
	got, ok := matchCategory("technology")
	require.True(t, ok)
	assert.Equal(t, "Technology", got)

	got, ok = matchCategory("  Learning ")
	require.True(t, ok)
	assert.Equal(t, "Learning", got)

	_, ok = matchCategory("Sports")
	assert.False(t, ok)

	_, ok = matchCategory("")
	assert.False(t, ok)
}
