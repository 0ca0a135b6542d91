package ai

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/stashbox/core/internal/models"
)

const (
	maxContextItems   = 25
	contextExcerptLen = 180
)

var citationPattern = regexp.MustCompile(`\[(\d+)\]`)

// queryItems loads the newest items for a user, capped at maxContextItems.
func (s *Service) queryItems(userID string) ([]models.ItemModel, error) {
	var items []models.ItemModel
	err := s.db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(maxContextItems).
		Find(&items).Error
	return items, err
}

// AnswerQuestion answers a natural-language question over the user's stash.
// The newest items are numbered 1..n into the prompt context; bracketed
// citations in the model's answer are resolved back to item sources. Unlike
// enrichment there is no offline fallback, so config/quota/upstream errors
// surface to the caller.
func (s *Service) AnswerQuestion(userID, question string) (*Answer, error) {
	cfg, err := s.getCfg()
	if err != nil {
		return nil, err
	}
	if !cfg.AI.EnableAsk {
		return nil, &ConfigError{Reason: "ask disabled"}
	}
	provider := selectProvider(cfg.AI, cfg.AI.AskModel)
	if provider == nil {
		return nil, &ConfigError{Reason: "no enabled provider"}
	}

	items, err := s.fetchItems(userID)
	if err != nil {
		return nil, err
	}

	if len(items) == 0 {
		return &Answer{
			Text:    "Your stash is empty. Save a few items first, then ask me about them.",
			Sources: []ConversationSource{},
		}, nil
	}

	if err := s.governor.Admit(); err != nil {
		return nil, err
	}

	systemPrompt, prompt := buildAskPrompt(buildContextBlock(items), question)
	raw, err := s.call(provider, cfg.AI, systemPrompt, prompt)
	if err != nil {
		classified := classifyUpstreamError(err)
		if _, exhausted := classified.(*QuotaError); exhausted {
			s.governor.MarkExhausted()
		}
		return nil, classified
	}

	answer := strings.TrimSpace(raw)
	sources := resolveSources(answer, items)
	if len(sources) == 0 {
		// No usable citations; surface the freshest items as context hints.
		for i := 0; i < len(items) && i < 2; i++ {
			sources = append(sources, sourceFromItem(items[i]))
		}
	}

	return &Answer{Text: answer, Sources: sources}, nil
}

// buildContextBlock renders items as numbered prompt lines. Numbering is
// 1-based to match how models naturally cite.
func buildContextBlock(items []models.ItemModel) string {
	var b strings.Builder
	for i, item := range items {
		body := item.Summary
		if body == "" {
			body = collapseWhitespace(item.Content)
		}
		fmt.Fprintf(&b, "[%d] %q (%s): %s\n",
			i+1, item.Title, item.Type, truncateText(body, contextExcerptLen))
	}
	return strings.TrimRight(b.String(), "\n")
}

// resolveSources maps bracketed citations in the answer to item sources.
// Citations are deduplicated in first-mention order; numbers outside 1..n
// are discarded.
func resolveSources(answer string, items []models.ItemModel) []ConversationSource {
	var sources []ConversationSource
	seen := map[int]bool{}
	for _, m := range citationPattern.FindAllStringSubmatch(answer, -1) {
		n, err := strconv.Atoi(m[1])
		if err != nil || n < 1 || n > len(items) {
			continue
		}
		idx := n - 1
		if seen[idx] {
			continue
		}
		seen[idx] = true
		sources = append(sources, sourceFromItem(items[idx]))
	}
	return sources
}

func sourceFromItem(item models.ItemModel) ConversationSource {
	return ConversationSource{
		ID:      item.ID,
		Title:   item.Title,
		Type:    string(item.Type),
		Summary: item.Summary,
	}
}
