package season

import (
	"errors"
	"fmt"
	"sync"

	"go.uber.org/zap"
)

// Service owns the season state: it seeds it from the snapshot store,
// applies environment samples behind the load gate and persists toggles.
type Service struct {
	mu sync.RWMutex

	store      SnapshotStore
	classifier *Classifier
	gate       LoadGate
	logger     *zap.Logger

	state State
}

// NewService creates a Service in the Uninitialized phase with an unknown day.
func NewService(store SnapshotStore, classifier *Classifier, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:      store,
		classifier: classifier,
		logger:     logger,
		state:      State{Day: UnknownDay, Hemisphere: North},
	}
}

// Seed loads the persisted snapshot so queries answer sensibly before the
// first live sample. A missing or malformed snapshot falls back to disabled
// with an unknown day. The classifier memo is not primed.
func (s *Service) Seed() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap, err := s.store.Load()
	if err != nil {
		if errors.Is(err, ErrSnapshotNotFound) {
			s.logger.Info("no season snapshot; starting disabled")
		} else {
			s.logger.Warn("unusable season snapshot; starting disabled", zap.Error(err))
		}
		s.state = State{Day: UnknownDay, Hemisphere: North, Phase: Seeded}
		return s.state
	}

	st := State{
		Day:        snap.Day,
		Hemisphere: snap.Hemisphere,
		Enabled:    snap.Enabled,
		Phase:      Seeded,
	}
	if !ValidDay(st.Day) {
		st.Day = UnknownDay
	}

	switch {
	case snap.HasIndicators:
		st.Indicators = snap.Indicators
	case st.Enabled && st.DayKnown():
		st.Indicators = s.classifier.Policy().Classify(st.Day, st.Hemisphere)
	}

	s.logger.Info("season state seeded from snapshot",
		zap.Bool("enabled", st.Enabled),
		zap.Int("cached_day", st.Day),
		zap.Stringer("hemisphere", st.Hemisphere),
		zap.Stringer("seasons", st.Indicators),
	)
	s.state = st
	return s.state
}

// OnEnvironmentUpdate applies a day/hemisphere sample. It is refused until
// the load gate has been opened.
func (s *Service) OnEnvironmentUpdate(day int, h Hemisphere) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.applyLocked(day, h)
}

// NotifyEnvironment is the host command: trusted opens the load gate before
// the sample is applied.
func (s *Service) NotifyEnvironment(day int, h Hemisphere, trusted bool) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if trusted {
		s.gate.Open()
	}
	return s.applyLocked(day, h)
}

// HandleHostEvent applies a sample taken while the host reported event.
// Samples from events the gate does not admit are dropped; applied reports
// whether the sample was used.
func (s *Service) HandleHostEvent(event HostEvent, day int, latitude float64) (st State, applied bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.gate.Admit(event) {
		s.logger.Debug("host event ignored", zap.Stringer("event", event))
		return s.state, false, nil
	}
	st, err = s.applyLocked(day, HemisphereFromLatitude(latitude))
	return st, err == nil, err
}

func (s *Service) applyLocked(day int, h Hemisphere) (State, error) {
	if !s.gate.IsOpen() {
		return s.state, ErrUntrustedInput
	}
	if err := checkDay(day); err != nil {
		s.logger.Warn("environment sample rejected", zap.Error(err))
		return s.state, err
	}

	s.state.Day = day
	s.state.Hemisphere = h
	s.state.Phase = Live

	if err := s.reclassifyLocked(); err != nil {
		return s.state, err
	}
	return s.state, nil
}

// reclassifyLocked refreshes the cached indicators when enabled. Disabled
// state keeps the cache; Effective hides it.
func (s *Service) reclassifyLocked() error {
	if !s.state.Enabled || !s.state.DayKnown() {
		return nil
	}
	in, err := s.classifier.Classify(s.state.Day, s.state.Hemisphere, true)
	if err != nil {
		return err
	}
	s.state.Indicators = in
	return nil
}

// Toggle flips the enabled flag, reclassifies with the last known day and
// persists the result. A persistence error leaves the in-memory state valid.
func (s *Service) Toggle() (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state.Enabled = !s.state.Enabled
	s.logger.Info("season manager toggled", zap.Bool("enabled", s.state.Enabled))

	if err := s.reclassifyLocked(); err != nil {
		s.logger.Warn("reclassification after toggle failed", zap.Error(err))
	}
	return s.state, s.saveLocked()
}

// Checkpoint persists the current state.
func (s *Service) Checkpoint() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.saveLocked()
}

// Shutdown persists the state one last time before the host goes away.
func (s *Service) Shutdown() error {
	err := s.Checkpoint()
	if err == nil {
		s.logger.Info("season snapshot saved on shutdown")
	}
	return err
}

func (s *Service) saveLocked() error {
	snap := Snapshot{
		Enabled:       s.state.Enabled,
		Day:           s.state.Day,
		Hemisphere:    s.state.Hemisphere,
		Indicators:    s.state.Effective(),
		HasIndicators: true,
	}
	if err := s.store.Save(snap); err != nil {
		if !errors.Is(err, ErrPersistenceWrite) {
			err = fmt.Errorf("%w: %v", ErrPersistenceWrite, err)
		}
		s.logger.Error("season snapshot not saved", zap.Error(err))
		return err
	}
	return nil
}

// State returns a copy of the current state.
func (s *Service) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state
}

// Indicators returns what consumers should see: all zero when disabled.
func (s *Service) Indicators() Indicators {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.state.Effective()
}

// Query returns the 0/1 value of one season.
func (s *Service) Query(season Season) int {
	return s.Indicators().Weight(season)
}

func (s *Service) Winter() int { return s.Query(Winter) }
func (s *Service) Spring() int { return s.Query(Spring) }
func (s *Service) Summer() int { return s.Query(Summer) }
func (s *Service) Fall() int   { return s.Query(Fall) }

// TrustedInput reports whether the load gate is open.
func (s *Service) TrustedInput() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.gate.IsOpen()
}

// Recomputations exposes the classifier counter.
func (s *Service) Recomputations() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.classifier.Recomputations()
}
