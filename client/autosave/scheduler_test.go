package autosave

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestScheduler_FiresAfterDelay(t *testing.T) {
	s := NewScheduler()
	fired := make(chan struct{})

	s.Schedule(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("timer never fired")
	}
}

func TestScheduler_ReschedulingReplacesPendingRun(t *testing.T) {
	s := NewScheduler()
	var fires int32

	for i := 0; i < 5; i++ {
		s.Schedule(30*time.Millisecond, func() { atomic.AddInt32(&fires, 1) })
		time.Sleep(5 * time.Millisecond)
	}

	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), atomic.LoadInt32(&fires), "only the last scheduled run should fire")
}

func TestScheduler_CancelDiscardsPendingRun(t *testing.T) {
	s := NewScheduler()
	var fires int32

	s.Schedule(20*time.Millisecond, func() { atomic.AddInt32(&fires, 1) })
	s.Cancel()

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fires))
}

func TestScheduler_CancelDoesNotStopFutureScheduling(t *testing.T) {
	s := NewScheduler()
	fired := make(chan struct{})

	s.Schedule(10*time.Millisecond, func() {})
	s.Cancel()
	s.Schedule(10*time.Millisecond, func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(500 * time.Millisecond):
		t.Fatal("scheduling after Cancel should still work")
	}
}

func TestScheduler_StopRefusesFurtherRuns(t *testing.T) {
	s := NewScheduler()
	var fires int32

	s.Schedule(20*time.Millisecond, func() { atomic.AddInt32(&fires, 1) })
	s.Stop()
	s.Schedule(10*time.Millisecond, func() { atomic.AddInt32(&fires, 1) })

	time.Sleep(60 * time.Millisecond)
	assert.Zero(t, atomic.LoadInt32(&fires))
}
