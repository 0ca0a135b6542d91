package ai

import (
	"errors"
	"strings"

	"go.uber.org/zap"
)

// GenerateMetadata produces summary, tags and category for an item. It is
// total: the model path is attempted when a provider is configured and
// admission passes, and any failure along the way (no provider, quota,
// upstream error, unparseable output) drops to the heuristics. The returned
// metadata is always complete and the error, when non-nil, only explains why
// the model path was skipped.
func (s *Service) GenerateMetadata(title, itemType, content string) (ItemMetadata, error) {
	meta, err := s.modelMetadata(title, itemType, content)
	if err == nil {
		return meta, nil
	}

	if s.logger != nil {
		fields := []zap.Field{zap.String("title", title), zap.Error(err)}
		var cfgErr *ConfigError
		var quotaErr *QuotaError
		if errors.As(err, &cfgErr) || errors.As(err, &quotaErr) {
			s.logger.Warn("enrichment fell back to heuristics", fields...)
		} else {
			s.logger.Error("enrichment fell back to heuristics", fields...)
		}
	}
	return heuristicMetadata(title, content), err
}

func (s *Service) modelMetadata(title, itemType, content string) (ItemMetadata, error) {
	cfg, err := s.getCfg()
	if err != nil {
		return ItemMetadata{}, err
	}
	if !cfg.AI.EnableEnrich {
		return ItemMetadata{}, &ConfigError{Reason: "enrichment disabled"}
	}
	provider := selectProvider(cfg.AI, cfg.AI.EnrichModel)
	if provider == nil {
		return ItemMetadata{}, &ConfigError{Reason: "no enabled provider"}
	}

	if err := s.governor.Admit(); err != nil {
		return ItemMetadata{}, err
	}

	systemPrompt, prompt := buildEnrichPrompt(title, itemType, content)
	raw, err := s.call(provider, cfg.AI, systemPrompt, prompt)
	if err != nil {
		classified := classifyUpstreamError(err)
		if _, exhausted := classified.(*QuotaError); exhausted {
			s.governor.MarkExhausted()
		}
		return ItemMetadata{}, classified
	}

	out, err := extractJSON[enrichOutput](raw)
	if err != nil {
		return ItemMetadata{}, err
	}
	return repairMetadata(out, title, content), nil
}

// repairMetadata normalizes model output into valid metadata, substituting
// heuristic values for fields that come back empty or out of contract.
func repairMetadata(out enrichOutput, title, content string) ItemMetadata {
	meta := ItemMetadata{FromModel: true}

	meta.Summary = strings.TrimSpace(out.Summary)
	if len(meta.Summary) < 10 {
		meta.Summary = inferSummary(title, content)
	}

	meta.Tags = normalizeTags(out.Tags)
	if len(meta.Tags) == 0 {
		meta.Tags = inferTags(title, content)
	}

	if name, ok := matchCategory(out.Category); ok {
		meta.Category = name
	} else {
		meta.Category = inferCategory(title, content)
	}

	return meta
}

func heuristicMetadata(title, content string) ItemMetadata {
	return ItemMetadata{
		Summary:  inferSummary(title, content),
		Tags:     inferTags(title, content),
		Category: inferCategory(title, content),
	}
}

// Tags the model tends to emit that carry no retrieval value.
var uselessTags = map[string]bool{
	"general": true, "misc": true, "miscellaneous": true, "other": true,
	"notes": true, "note": true, "stuff": true, "things": true,
	"content": true, "article": true, "links": true, "link": true,
	"interesting": true, "useful": true, "info": true, "information": true,
	"new": true, "good": true,
}

// normalizeTags lowercases, hyphenates and dedupes model-produced tags,
// dropping empty and low-value ones, capped at 5.
func normalizeTags(raw []string) []string {
	seen := map[string]bool{}
	var tags []string
	for _, t := range raw {
		tag := strings.ToLower(strings.TrimSpace(t))
		tag = strings.ReplaceAll(tag, " ", "-")
		tag = strings.ReplaceAll(tag, "_", "-")
		tag = strings.Trim(tag, "-")
		if tag == "" || uselessTags[tag] || seen[tag] {
			continue
		}
		seen[tag] = true
		tags = append(tags, tag)
		if len(tags) == 5 {
			break
		}
	}
	return tags
}
