package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stashbox/core/internal/models"
)

func TestParseItemType(t *testing.T) {
	tests := []struct {
		in      string
		want    models.ItemType
		wantErr bool
	}{
		{"", models.ItemNote, false},
		{"note", models.ItemNote, false},
		{"link", models.ItemLink, false},
		{"insight", models.ItemInsight, false},
		{" note ", models.ItemNote, false},
		{"bookmark", "", true},
		{"NOTE", "", true},
	}
	for _, tt := range tests {
		got, err := parseItemType(tt.in)
		if tt.wantErr {
			require.ErrorIs(t, err, ErrInvalidType, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got)
	}
}
