package cron

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int32
	err   error
}

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls.Add(1)
	return r.err
}

func TestScheduler_RefreshesOnSchedule(t *testing.T) {
	keys := &countingRefresher{}
	s := NewScheduler(keys)
	require.NoError(t, s.Start("@every 1s"))
	defer s.Stop()

	assert.Eventually(t, func() bool { return keys.calls.Load() >= 1 }, 3*time.Second, 50*time.Millisecond)
}

func TestScheduler_InvalidSpec(t *testing.T) {
	s := NewScheduler(&countingRefresher{})
	assert.Error(t, s.Start("every now and then"))
}

func TestScheduler_RefreshFailureIsLogged(t *testing.T) {
	keys := &countingRefresher{err: errors.New("unavailable")}
	s := NewScheduler(keys)
	require.NoError(t, s.Start("@every 1s"))
	defer s.Stop()

	assert.Eventually(t, func() bool { return keys.calls.Load() >= 2 }, 4*time.Second, 50*time.Millisecond)
}

func TestScheduler_WithoutKeys(t *testing.T) {
	s := NewScheduler(nil)
	require.NoError(t, s.Start("not a spec"))
	assert.Empty(t, s.cron.Entries())
	s.Stop()
}
