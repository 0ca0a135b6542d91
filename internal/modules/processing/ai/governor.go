package ai

import (
	"sync"
	"time"
)

const (
	admitCeiling   = 10
	admitWindow    = time.Minute
	cooldownPeriod = time.Minute
)

// Governor is the client-side admission gate in front of the model API. It
// tracks call timestamps in a trailing 60-second window, and a cooldown
// deadline set when the upstream itself signals quota exhaustion. State is
// per process only; multiple processes each keep their own view.
type Governor struct {
	mu             sync.Mutex
	calls          []time.Time
	exhaustedUntil time.Time
	now            func() time.Time // injectable for tests
}

func NewGovernor() *Governor {
	return &Governor{now: time.Now}
}

// Admit checks whether a model call may proceed right now. On success the
// call is recorded; on rejection a QuotaError with a wait hint is returned.
func (g *Governor) Admit() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	if now.Before(g.exhaustedUntil) {
		return &QuotaError{RetryAfter: g.exhaustedUntil.Sub(now)}
	}

	cutoff := now.Add(-admitWindow)
	kept := g.calls[:0]
	for _, t := range g.calls {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}
	g.calls = kept

	if len(g.calls) >= admitCeiling {
		// Wait hint: time until the oldest call leaves the window.
		return &QuotaError{RetryAfter: g.calls[0].Sub(cutoff)}
	}

	g.calls = append(g.calls, now)
	return nil
}

// MarkExhausted starts a 60-second cooldown during which every admission
// attempt is rejected regardless of window occupancy. Called when the
// upstream returns a quota-rejection signal.
func (g *Governor) MarkExhausted() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.exhaustedUntil = g.now().Add(cooldownPeriod)
}
