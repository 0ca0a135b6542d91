package ai

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type extractTarget struct {
	Summary string   `json:"summary"`
	Tags    []string `json:"tags"`
}

func TestExtractJSONDirect(t *testing.T) {
	out, err := extractJSON[extractTarget](`  {"summary":"s","tags":["a"]}  `)
	require.NoError(t, err)
	assert.Equal(t, "s", out.Summary)
	assert.Equal(t, []string{"a"}, out.Tags)
}

func TestExtractJSONFencedBlock(t *testing.T) {
	raw := "```json\n{\"summary\":\"fenced\",\"tags\":[]}\n```"
	out, err := extractJSON[extractTarget](raw)
	require.NoError(t, err)
	assert.Equal(t, "fenced", out.Summary)
}

func TestExtractJSONFencedWithoutLanguageTag(t *testing.T) {
	raw := "```\n{\"summary\":\"plain\"}\n```"
	out, err := extractJSON[extractTarget](raw)
	require.NoError(t, err)
	assert.Equal(t, "plain", out.Summary)
}

func TestExtractJSONBraceSpanInsideProse(t *testing.T) {
	raw := `Sure! Here is the metadata you asked for:
{"summary":"embedded","tags":["x","y"]}
Hope that helps.`
	out, err := extractJSON[extractTarget](raw)
	require.NoError(t, err)
	assert.Equal(t, "embedded", out.Summary)
	assert.Equal(t, []string{"x", "y"}, out.Tags)
}

func TestExtractJSONFailureReturnsParseError(t *testing.T) {
	long := "this is not json at all " + strings.Repeat("x", 500)
	_, err := extractJSON[extractTarget](long)
	require.Error(t, err)

	parseErr, ok := err.(*ParseError)
	require.True(t, ok)
	// Excerpt is capped so logs stay readable; the cap includes the ellipsis.
	assert.LessOrEqual(t, len([]rune(parseErr.Excerpt)), 200)
	assert.True(t, strings.HasSuffix(parseErr.Excerpt, "..."))
	assert.True(t, strings.HasPrefix(parseErr.Excerpt, "this is not json"))
}
