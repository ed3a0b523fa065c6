package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/season-manager/internal/season"
)

func TestMemoryStoreEmpty(t *testing.T) {
	_, err := NewMemoryStore(0, 0).Load()
	assert.ErrorIs(t, err, season.ErrSnapshotNotFound)
}

func TestMemoryStoreRetention(t *testing.T) {
	s := NewMemoryStore(3, 0)

	for day := 0; day < 5; day++ {
		require.NoError(t, s.Save(season.Snapshot{Enabled: true, Day: day}))
	}

	history := s.History()
	require.Len(t, history, 3)
	assert.Equal(t, 2, history[0].Snapshot.Day)
	assert.Equal(t, 4, history[2].Snapshot.Day)

	latest, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, 4, latest.Day)
}
