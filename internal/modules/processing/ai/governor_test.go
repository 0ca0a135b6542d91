package ai

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGovernor(start time.Time) (*Governor, *time.Time) {
	clock := start
	g := NewGovernor()
	g.now = func() time.Time { return clock }
	return g, &clock
}

func TestGovernorAdmitsUpToCeiling(t *testing.T) {
	g, _ := newTestGovernor(time.Unix(1000, 0))

	for i := 0; i < admitCeiling; i++ {
		require.NoError(t, g.Admit(), "call %d should be admitted", i+1)
	}

	err := g.Admit()
	require.Error(t, err)
	quotaErr, ok := err.(*QuotaError)
	require.True(t, ok, "rejection should be a QuotaError")
	assert.Greater(t, quotaErr.WaitSeconds(), 0)
	assert.LessOrEqual(t, quotaErr.WaitSeconds(), 60)
}

func TestGovernorWindowSlides(t *testing.T) {
	g, clock := newTestGovernor(time.Unix(1000, 0))

	for i := 0; i < admitCeiling; i++ {
		require.NoError(t, g.Admit())
	}
	require.Error(t, g.Admit())

	// Once the oldest call leaves the trailing window, one slot frees up.
	*clock = clock.Add(admitWindow + time.Second)
	assert.NoError(t, g.Admit())
}

func TestGovernorCooldownBlocksEverything(t *testing.T) {
	g, clock := newTestGovernor(time.Unix(1000, 0))

	require.NoError(t, g.Admit())
	g.MarkExhausted()

	err := g.Admit()
	require.Error(t, err)
	first, ok := err.(*QuotaError)
	require.True(t, ok)
	assert.Equal(t, 60, first.WaitSeconds())

	// Wait hints shrink as the cooldown deadline approaches.
	*clock = clock.Add(20 * time.Second)
	err = g.Admit()
	require.Error(t, err)
	second := err.(*QuotaError)
	assert.Less(t, second.WaitSeconds(), first.WaitSeconds())

	*clock = clock.Add(41 * time.Second)
	assert.NoError(t, g.Admit(), "cooldown expired, admission resumes")
}

func TestGovernorCooldownOverridesFreeWindow(t *testing.T) {
	g, _ := newTestGovernor(time.Unix(1000, 0))

	// Window is empty but the upstream said stop.
	g.MarkExhausted()
	err := g.Admit()
	require.Error(t, err)
	assert.IsType(t, &QuotaError{}, err)
}
