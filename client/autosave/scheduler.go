package autosave

import (
	"sync"
	"time"
)

// Scheduler owns a single cancellable timer for one concern. Scheduling
// replaces any armed timer, so only the last call within the window
// fires (trailing-edge debounce).
type Scheduler struct {
	mu         sync.Mutex
	timer      *time.Timer
	generation uint64
	stopped    bool
}

// NewScheduler creates an idle scheduler
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Schedule arms the timer to run fn after delay, cancelling any
// previously armed run. A fire that was already in the timer queue when
// it got replaced is discarded.
func (s *Scheduler) Schedule(delay time.Duration, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped {
		return
	}

	if s.timer != nil {
		s.timer.Stop()
	}

	s.generation++
	gen := s.generation
	s.timer = time.AfterFunc(delay, func() {
		s.mu.Lock()
		stale := s.stopped || gen != s.generation
		s.mu.Unlock()
		if stale {
			return
		}
		fn()
	})
}

// Cancel discards any armed run without stopping the scheduler
func (s *Scheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}

// Stop cancels any armed run and refuses future scheduling
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	s.generation++
}
