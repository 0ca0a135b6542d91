package configs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashbox/core/internal/config"
)

func TestLoadSkipsDBWhenAlreadyCached(t *testing.T) {
	cfg := config.DefaultFullConfig()
	// nil db: any query here would panic, so this passes only if load
	// re-checks the cache after taking the write lock.
	s := &Service{cfg: &cfg}

	got, err := s.load()
	require.NoError(t, err)
	assert.Same(t, &cfg, got)
}

func TestGetReturnsCachedConfig(t *testing.T) {
	cfg := config.DefaultFullConfig()
	s := &Service{cfg: &cfg}

	got, err := s.Get()
	require.NoError(t, err)
	assert.Same(t, &cfg, got)
}
