package ai

import (
	"encoding/json"
	"strings"
)

// extractJSON recovers a JSON document of type T from raw model output.
// Models routinely wrap structured output in prose or markdown fences despite
// instructions, so three tiers are tried in order: the full trimmed text, the
// interior of the first fenced code block, then the span from the first '{'
// to the last '}'.
func extractJSON[T any](raw string) (T, error) {
	var out T
	trimmed := strings.TrimSpace(raw)

	if err := json.Unmarshal([]byte(trimmed), &out); err == nil {
		return out, nil
	}

	if inner, ok := fencedBlock(trimmed); ok {
		if err := json.Unmarshal([]byte(inner), &out); err == nil {
			return out, nil
		}
	}

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start >= 0 && end > start {
		if err := json.Unmarshal([]byte(trimmed[start:end+1]), &out); err == nil {
			return out, nil
		}
	}

	var zero T
	return zero, &ParseError{Excerpt: excerpt(trimmed)}
}

// excerptLimit caps ParseError excerpts, ellipsis included.
const excerptLimit = 200

func excerpt(s string) string {
	runes := []rune(s)
	if len(runes) <= excerptLimit {
		return s
	}
	return string(runes[:excerptLimit-3]) + "..."
}

// fencedBlock returns the interior of the first triple-backtick block,
// dropping an optional language tag on the opening line.
func fencedBlock(s string) (string, bool) {
	open := strings.Index(s, "```")
	if open < 0 {
		return "", false
	}
	rest := s[open+3:]
	if nl := strings.IndexByte(rest, '\n'); nl >= 0 {
		tag := strings.TrimSpace(rest[:nl])
		if tag == "" || (len(tag) <= 10 && !strings.ContainsAny(tag, "{}")) {
			rest = rest[nl+1:]
		}
	}
	if closing := strings.Index(rest, "```"); closing >= 0 {
		rest = rest[:closing]
	}
	return strings.TrimSpace(rest), true
}
