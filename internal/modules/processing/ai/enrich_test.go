package ai

import (
	"errors"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashbox/core/internal/config"
)

func testAIConfig() *config.FullConfig {
	cfg := config.DefaultFullConfig()
	cfg.AI.Providers = []config.AIProvider{{
		ID:           "p1",
		Name:         "Test",
		Type:         "OpenAI",
		APIKey:       "sk-test",
		DefaultModel: "gpt-4o-mini",
		Enabled:      true,
	}}
	return &cfg
}

func newTestService(call callFunc) *Service {
	return &Service{
		governor: NewGovernor(),
		getCfg:   func() (*config.FullConfig, error) { return testAIConfig(), nil },
		call:     call,
	}
}

var tagShape = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

func assertCompleteMetadata(t *testing.T, meta ItemMetadata) {
	t.Helper()
	assert.NotEmpty(t, meta.Summary)
	require.NotEmpty(t, meta.Tags)
	assert.LessOrEqual(t, len(meta.Tags), 5)
	for _, tag := range meta.Tags {
		assert.Regexp(t, tagShape, tag)
	}
	assert.Contains(t, CategoryNames(), meta.Category)
}

func TestGenerateMetadataFromModel(t *testing.T) {
	svc := newTestService(func(_ *config.AIProvider, _ config.AIConfig, _, _ string) (string, error) {
		return `{"summary":"Hooks replaced class lifecycles in React.","tags":["React","web dev"],"category":"Technology"}`, nil
	})

	meta, err := svc.GenerateMetadata("Intro to React Hooks", "note", reactContent)
	require.NoError(t, err)
	assert.True(t, meta.FromModel)
	assert.Equal(t, "Hooks replaced class lifecycles in React.", meta.Summary)
	assert.Equal(t, []string{"react", "web-dev"}, meta.Tags)
	assert.Equal(t, "Technology", meta.Category)
	assertCompleteMetadata(t, meta)
}

func TestGenerateMetadataFencedModelOutput(t *testing.T) {
	svc := newTestService(func(_ *config.AIProvider, _ config.AIConfig, _, _ string) (string, error) {
		return "```json\n{\"summary\":\"A fenced but valid answer about hooks.\",\"tags\":[\"react\"],\"category\":\"Technology\"}\n```", nil
	})

	meta, err := svc.GenerateMetadata("Intro to React Hooks", "note", reactContent)
	require.NoError(t, err)
	assert.True(t, meta.FromModel)
	assert.Equal(t, "A fenced but valid answer about hooks.", meta.Summary)
}

func TestGenerateMetadataUpstreamErrorFallsBack(t *testing.T) {
	svc := newTestService(func(_ *config.AIProvider, _ config.AIConfig, _, _ string) (string, error) {
		return "", errors.New("connection refused")
	})

	meta, err := svc.GenerateMetadata("Intro to React Hooks", "note", reactContent)
	require.Error(t, err)
	assert.False(t, meta.FromModel)
	assertCompleteMetadata(t, meta)
	assert.Contains(t, meta.Tags, "web-development")
	assert.Equal(t, "Technology", meta.Category)
}

func TestGenerateMetadataUnparseableOutputFallsBack(t *testing.T) {
	svc := newTestService(func(_ *config.AIProvider, _ config.AIConfig, _, _ string) (string, error) {
		return "I'm sorry, I cannot produce structured output today.", nil
	})

	meta, err := svc.GenerateMetadata("Intro to React Hooks", "note", reactContent)
	require.Error(t, err)
	assert.IsType(t, &ParseError{}, err)
	assert.False(t, meta.FromModel)
	assertCompleteMetadata(t, meta)
}

func TestGenerateMetadataNoProviderFallsBack(t *testing.T) {
	svc := newTestService(nil)
	svc.getCfg = func() (*config.FullConfig, error) {
		cfg := config.DefaultFullConfig()
		return &cfg, nil // no providers configured
	}

	meta, err := svc.GenerateMetadata("Intro to React Hooks", "note", reactContent)
	require.Error(t, err)
	assert.IsType(t, &ConfigError{}, err)
	assertCompleteMetadata(t, meta)
}

func TestGenerateMetadataQuotaStartsCooldown(t *testing.T) {
	calls := 0
	svc := newTestService(func(_ *config.AIProvider, _ config.AIConfig, _, _ string) (string, error) {
		calls++
		return "", errors.New("429 too many requests")
	})

	meta, err := svc.GenerateMetadata("Intro to React Hooks", "note", reactContent)
	require.Error(t, err)
	assert.IsType(t, &QuotaError{}, err)
	assertCompleteMetadata(t, meta)

	// Cooldown is active: the next attempt never reaches the provider.
	_, err = svc.GenerateMetadata("Intro to React Hooks", "note", reactContent)
	require.Error(t, err)
	assert.IsType(t, &QuotaError{}, err)
	assert.Equal(t, 1, calls)
}

func TestRepairMetadataSubstitutesBadFields(t *testing.T) {
	meta := repairMetadata(enrichOutput{
		Summary:  "short",                       // under the 10-char floor
		Tags:     []string{"General", "", "AI"}, // low-value and empty entries
		Category: "Sports",                      // outside the closed set
	}, "Intro to React Hooks", reactContent)

	assert.True(t, meta.FromModel)
	assert.GreaterOrEqual(t, len(meta.Summary), 10)
	assert.Equal(t, []string{"ai"}, meta.Tags)
	assert.Equal(t, "Technology", meta.Category)
}

func TestNormalizeTags(t *testing.T) {
	got := normalizeTags([]string{"Web Dev", "web-dev", "MISC", "a_b", "one", "two", "three", "four"})
	assert.Equal(t, []string{"web-dev", "a-b", "one", "two", "three"}, got)
	assert.Empty(t, normalizeTags([]string{"general", "  ", "misc"}))
}
