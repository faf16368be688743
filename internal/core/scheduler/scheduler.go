// Package scheduler runs fixed-timestep frame passes against the wall clock.
package scheduler

import "time"

// Scheduler keeps a simulated-time cursor one interval per pass behind the
// wall clock. Each Run catches the cursor up, so a stalled host gets several
// passes back to back instead of skipped frames.
type Scheduler struct {
	clock    Clock
	interval time.Duration
	cursor   time.Time
	frame    uint64
}

// New creates a scheduler running fps passes per second. The first Run
// performs one pass immediately.
func New(clock Clock, fps int) *Scheduler {
	interval := time.Second / time.Duration(fps)
	return &Scheduler{
		clock:    clock,
		interval: interval,
		cursor:   clock.Now().Add(-interval),
	}
}

// Interval returns the simulated time covered by one pass.
func (s *Scheduler) Interval() time.Duration {
	return s.interval
}

// Frame returns the number of passes run so far, which is also the frame
// number of the next pass.
func (s *Scheduler) Frame() uint64 {
	return s.frame
}

// Run calls pass once for every whole interval the cursor is behind the
// clock and returns how many passes ran.
func (s *Scheduler) Run(pass func(frame uint64)) int {
	now := s.clock.Now()
	n := 0
	for now.Sub(s.cursor) >= s.interval {
		s.cursor = s.cursor.Add(s.interval)
		pass(s.frame)
		s.frame++
		n++
	}
	return n
}
