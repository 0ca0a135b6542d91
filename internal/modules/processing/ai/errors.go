package ai

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// ConfigError means the model collaborator cannot be used until an operator
// fixes the provider configuration (missing key, no enabled provider, ...).
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "ai provider not configured: " + e.Reason
}

// QuotaError means the call was rejected by admission control or by an
// upstream rate limit. It carries a wait-time hint.
type QuotaError struct {
	RetryAfter time.Duration
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("ai quota exceeded, retry in %ds", e.WaitSeconds())
}

// WaitSeconds returns the hint as whole seconds, rounded up.
func (e *QuotaError) WaitSeconds() int {
	return int(math.Ceil(e.RetryAfter.Seconds()))
}

// ParseError means structured extraction failed on all tiers.
type ParseError struct {
	Excerpt string
}

func (e *ParseError) Error() string {
	return "unparseable model response: " + e.Excerpt
}

// classifyUpstreamError maps a raw provider error onto the typed taxonomy.
// Providers do not share an error shape, so this matches on message text:
// rate/quota signals become QuotaError, credential/config signals become
// ConfigError, everything else passes through unchanged.
func classifyUpstreamError(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "quota"),
		strings.Contains(msg, "rate limit"),
		strings.Contains(msg, "rate_limit"),
		strings.Contains(msg, "too many requests"),
		strings.Contains(msg, "429"):
		return &QuotaError{RetryAfter: cooldownPeriod}
	case strings.Contains(msg, "api key"),
		strings.Contains(msg, "api_key"),
		strings.Contains(msg, "unauthorized"),
		strings.Contains(msg, "authentication"),
		strings.Contains(msg, "401"),
		strings.Contains(msg, "403"),
		strings.Contains(msg, "model_not_found"),
		strings.Contains(msg, "not configured"):
		return &ConfigError{Reason: err.Error()}
	default:
		return err
	}
}
