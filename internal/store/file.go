package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/i474232898/season-manager/internal/season"
)

// FileOptions configures a FileStore.
type FileOptions struct {
	Format Format

	// MaxFailures consecutive write failures open the breaker; further saves
	// fail fast until RetryAfter has passed.
	MaxFailures uint32
	RetryAfter  time.Duration

	Logger *zap.Logger
}

// FileStore keeps the snapshot in a small plain-text file. It has a single
// writer; the mutex only guards against the checkpoint job racing a toggle.
type FileStore struct {
	mu     sync.Mutex
	path   string
	format Format
	cb     *gobreaker.CircuitBreaker
	logger *zap.Logger
}

// NewFileStore creates a FileStore for path.
func NewFileStore(path string, opts FileOptions) *FileStore {
	if opts.MaxFailures == 0 {
		opts.MaxFailures = 3
	}
	if opts.RetryAfter <= 0 {
		opts.RetryAfter = time.Minute
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	maxFailures := opts.MaxFailures
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "snapshot:" + filepath.Base(path),
		MaxRequests: 1,
		Timeout:     opts.RetryAfter,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= maxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("snapshot breaker state changed",
				zap.String("breaker", name),
				zap.Stringer("from", from),
				zap.Stringer("to", to),
			)
		},
	})

	return &FileStore{
		path:   path,
		format: opts.Format,
		cb:     cb,
		logger: logger,
	}
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads and decodes the snapshot file.
func (s *FileStore) Load() (season.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return season.Snapshot{}, fmt.Errorf("%w: %s", season.ErrSnapshotNotFound, s.path)
		}
		return season.Snapshot{}, fmt.Errorf("%w: %v", season.ErrSnapshotNotFound, err)
	}

	snap, err := Decode(string(data))
	if err != nil {
		return season.Snapshot{}, fmt.Errorf("%s: %w", s.path, err)
	}
	return snap, nil
}

// Save overwrites the snapshot file through a temp file and rename.
func (s *FileStore) Save(snap season.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	payload := Encode(snap, s.format)
	_, err := s.cb.Execute(func() (interface{}, error) {
		return nil, s.write(payload)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: breaker open: %v", season.ErrPersistenceWrite, err)
		}
		return fmt.Errorf("%w: %v", season.ErrPersistenceWrite, err)
	}

	s.logger.Debug("season snapshot written", zap.String("path", s.path), zap.String("snapshot", payload))
	return nil
}

func (s *FileStore) write(payload string) error {
	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(payload); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
