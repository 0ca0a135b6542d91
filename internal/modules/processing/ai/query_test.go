package ai

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashbox/core/internal/config"
	"github.com/stashbox/core/internal/models"
)

func stashItems() []models.ItemModel {
	mk := func(id, title, summary string, typ models.ItemType) models.ItemModel {
		item := models.ItemModel{
			Title:   title,
			Type:    typ,
			Summary: summary,
			Content: summary,
		}
		item.ID = id
		return item
	}
	return []models.ItemModel{
		mk("i1", "Intro to React Hooks", "Hooks replaced class lifecycles.", models.ItemNote),
		mk("i2", "Postgres indexing guide", "B-tree indexes and when to use them.", models.ItemLink),
		mk("i3", "Standup takeaway", "Ship the migration before Friday.", models.ItemInsight),
	}
}

func newQueryService(call callFunc, items []models.ItemModel) *Service {
	svc := newTestService(call)
	svc.fetchItems = func(string) ([]models.ItemModel, error) { return items, nil }
	return svc
}

func TestAnswerQuestionResolvesCitations(t *testing.T) {
	svc := newQueryService(func(_ *config.AIProvider, _ config.AIConfig, _, prompt string) (string, error) {
		// Items are numbered from 1 in the prompt.
		assert.Contains(t, prompt, `[1] "Intro to React Hooks"`)
		assert.Contains(t, prompt, `[3] "Standup takeaway"`)
		return "See [1] and [3] and [1] again.", nil
	}, stashItems())

	answer, err := svc.AnswerQuestion("u1", "what did I save about react?")
	require.NoError(t, err)
	assert.Equal(t, "See [1] and [3] and [1] again.", answer.Text)

	// Deduped in first-mention order.
	require.Len(t, answer.Sources, 2)
	assert.Equal(t, "i1", answer.Sources[0].ID)
	assert.Equal(t, "i3", answer.Sources[1].ID)
}

func TestAnswerQuestionDiscardsOutOfRangeCitations(t *testing.T) {
	svc := newQueryService(func(_ *config.AIProvider, _ config.AIConfig, _, _ string) (string, error) {
		return "Item [9] covers this, also [0] and [2].", nil
	}, stashItems())

	answer, err := svc.AnswerQuestion("u1", "anything on databases?")
	require.NoError(t, err)
	require.Len(t, answer.Sources, 1)
	assert.Equal(t, "i2", answer.Sources[0].ID)
}

func TestAnswerQuestionNoCitationsFallsBackToNewest(t *testing.T) {
	svc := newQueryService(func(_ *config.AIProvider, _ config.AIConfig, _, _ string) (string, error) {
		return "Nothing in your stash covers that.", nil
	}, stashItems())

	answer, err := svc.AnswerQuestion("u1", "do I have notes on sailing?")
	require.NoError(t, err)
	require.Len(t, answer.Sources, 2)
	assert.Equal(t, "i1", answer.Sources[0].ID)
	assert.Equal(t, "i2", answer.Sources[1].ID)
}

func TestAnswerQuestionEmptyStash(t *testing.T) {
	called := false
	svc := newQueryService(func(_ *config.AIProvider, _ config.AIConfig, _, _ string) (string, error) {
		called = true
		return "", nil
	}, nil)

	answer, err := svc.AnswerQuestion("u1", "anything?")
	require.NoError(t, err)
	assert.False(t, called, "empty stash never reaches the model")
	assert.Contains(t, answer.Text, "empty")
	assert.Empty(t, answer.Sources)
}

func TestAnswerQuestionUpstreamQuota(t *testing.T) {
	svc := newQueryService(func(_ *config.AIProvider, _ config.AIConfig, _, _ string) (string, error) {
		return "", errors.New("rate limit exceeded")
	}, stashItems())

	_, err := svc.AnswerQuestion("u1", "q")
	require.Error(t, err)
	assert.IsType(t, &QuotaError{}, err)
}

func TestBuildContextBlockTruncatesLongBodies(t *testing.T) {
	items := stashItems()
	items[0].Summary = strings.Repeat("a", 400)

	block := buildContextBlock(items)
	lines := strings.Split(block, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasSuffix(lines[0], "..."))
	assert.Less(t, len(lines[0]), 280)
}

func TestResolveSourcesIgnoresNonNumericBrackets(t *testing.T) {
	sources := resolveSources("Checklist: [x] done, [ ] pending, see [2].", stashItems())
	require.Len(t, sources, 1)
	assert.Equal(t, "i2", sources[0].ID)
}
