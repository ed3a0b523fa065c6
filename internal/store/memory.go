package store

import (
	"sync"
	"time"

	"github.com/i474232898/season-manager/internal/season"
)

// Entry is one saved snapshot.
type Entry struct {
	Snapshot season.Snapshot
	SavedAt  time.Time
}

// MemoryStore is a concurrency-safe in-memory snapshot store. It keeps a
// bounded history of saves; Load returns the most recent one. Nothing
// survives a restart.
type MemoryStore struct {
	mu sync.RWMutex

	history []Entry

	// retention configuration
	maxHistory int           // max number of saved snapshots
	maxAge     time.Duration // optional max age for snapshots
}

// NewMemoryStore creates a new MemoryStore with optional limits.
// If maxHistory is <= 0, it is treated as unlimited.
func NewMemoryStore(maxHistory int, maxAge time.Duration) *MemoryStore {
	return &MemoryStore{
		maxHistory: maxHistory,
		maxAge:     maxAge,
	}
}

// Save appends a snapshot and enforces retention.
func (s *MemoryStore) Save(snap season.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history = append(s.history, Entry{Snapshot: snap, SavedAt: time.Now().UTC()})

	// Enforce retention by count.
	if s.maxHistory > 0 && len(s.history) > s.maxHistory {
		over := len(s.history) - s.maxHistory
		s.history = s.history[over:]
	}

	// Enforce retention by age; the newest entry always stays.
	if s.maxAge > 0 {
		cutoff := time.Now().Add(-s.maxAge)
		i := 0
		for ; i < len(s.history)-1; i++ {
			if !s.history[i].SavedAt.Before(cutoff) {
				break
			}
		}
		s.history = s.history[i:]
	}
	return nil
}

// Load returns the most recent snapshot.
func (s *MemoryStore) Load() (season.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if len(s.history) == 0 {
		return season.Snapshot{}, season.ErrSnapshotNotFound
	}
	return s.history[len(s.history)-1].Snapshot, nil
}

// History returns the retained saves, oldest first.
func (s *MemoryStore) History() []Entry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Entry, len(s.history))
	copy(out, s.history)
	return out
}
