package scheduler

import (
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type countingCheckpointer struct {
	calls atomic.Int32
	err   error
}

func (c *countingCheckpointer) Checkpoint() error {
	c.calls.Add(1)
	return c.err
}

func TestSchedulerCheckpoints(t *testing.T) {
	target := &countingCheckpointer{}
	s := New(50*time.Millisecond, target, zap.NewNop())

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return target.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerKeepsRunningAfterFailure(t *testing.T) {
	target := &countingCheckpointer{err: errors.New("read-only file system")}
	s := New(50*time.Millisecond, target, nil)

	require.NoError(t, s.Start())
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return target.calls.Load() >= 2
	}, 2*time.Second, 10*time.Millisecond)
}

func TestSchedulerDisabled(t *testing.T) {
	target := &countingCheckpointer{}
	s := New(0, target, nil)

	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, target.calls.Load())
}
