package autosave

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingSaver struct {
	ticks int64
}

func (s *countingSaver) AutoSave(ctx context.Context) {
	atomic.AddInt64(&s.ticks, 1)
}

func (s *countingSaver) count() int64 {
	return atomic.LoadInt64(&s.ticks)
}

func TestScheduler_Ticks(t *testing.T) {
	saver := &countingSaver{}
	s := NewScheduler(1*time.Second, saver)

	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(2500 * time.Millisecond)
	assert.GreaterOrEqual(t, saver.count(), int64(2))
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	saver := &countingSaver{}
	s := NewScheduler(1*time.Second, saver)

	require.NoError(t, s.Start())
	require.NoError(t, s.Start())
	s.Stop()
}

func TestScheduler_KeepsTickingAfterRearm(t *testing.T) {
	saver := &countingSaver{}
	s := NewScheduler(1*time.Second, saver)

	require.NoError(t, s.Start())
	defer s.Stop()

	time.Sleep(1600 * time.Millisecond)
	before := saver.count()
	assert.GreaterOrEqual(t, before, int64(1))

	s.Rearm()
	time.Sleep(2 * time.Second)
	assert.Greater(t, saver.count(), before)
}

func TestScheduler_RearmBeforeStart(t *testing.T) {
	s := NewScheduler(1*time.Second, &countingSaver{})
	s.Rearm() // no-op, must not panic
	s.Stop()
}

func TestScheduler_StopDisarms(t *testing.T) {
	saver := &countingSaver{}
	s := NewScheduler(1*time.Second, saver)

	require.NoError(t, s.Start())
	s.Stop()

	before := saver.count()
	time.Sleep(1500 * time.Millisecond)
	assert.Equal(t, before, saver.count())
}
