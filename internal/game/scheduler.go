package game

import (
	"errors"
	"time"
)

// ErrInvalidPeriod is returned when a task is registered with a period <= 0.
var ErrInvalidPeriod = errors.New("game: task period must be positive")

// Task is a periodic callback registered on a Scheduler.
type Task struct {
	seq       uint64
	period    time.Duration
	next      time.Time
	fn        func(at time.Time)
	cancelled bool
}

// Cancel stops the task. A cancelled task is never invoked again, even if it
// was already due in the Advance call that is currently running.
func (t *Task) Cancel() {
	t.cancelled = true
}

// Cancelled reports whether Cancel was called.
func (t *Task) Cancelled() bool {
	return t.cancelled
}

// Scheduler runs periodic tasks against a clock supplied by the caller.
//
// It never starts goroutines. The owner calls Advance with the current time
// and every callback that has come due runs inline, one at a time, in order
// of its scheduled time. Callbacks due at the same instant run in
// registration order. Each callback receives its scheduled time, not the
// time Advance was called with, so catching up after a stall replays ticks
// exactly as if they had run on time.
type Scheduler struct {
	tasks []*Task
	seq   uint64
}

// NewScheduler creates a scheduler with no tasks.
func NewScheduler() *Scheduler {
	return &Scheduler{}
}

// Every registers fn to run every period, first at start+period.
func (s *Scheduler) Every(start time.Time, period time.Duration, fn func(at time.Time)) (*Task, error) {
	if period <= 0 {
		return nil, ErrInvalidPeriod
	}
	s.seq++
	t := &Task{
		seq:    s.seq,
		period: period,
		next:   start.Add(period),
		fn:     fn,
	}
	s.tasks = append(s.tasks, t)
	return t, nil
}

// CancelAll cancels every registered task.
func (s *Scheduler) CancelAll() {
	for _, t := range s.tasks {
		t.Cancel()
	}
	s.tasks = nil
}

// Active returns the number of tasks that have not been cancelled.
func (s *Scheduler) Active() int {
	n := 0
	for _, t := range s.tasks {
		if !t.cancelled {
			n++
		}
	}
	return n
}

// Advance runs every callback due at or before now and returns how many ran.
func (s *Scheduler) Advance(now time.Time) int {
	ran := 0
	for {
		t := s.nextDue(now)
		if t == nil {
			break
		}
		at := t.next
		t.next = t.next.Add(t.period)
		t.fn(at)
		ran++
	}
	s.compact()
	return ran
}

// nextDue picks the earliest live task due by now, ties by registration.
func (s *Scheduler) nextDue(now time.Time) *Task {
	var best *Task
	for _, t := range s.tasks {
		if t.cancelled || t.next.After(now) {
			continue
		}
		if best == nil || t.next.Before(best.next) || (t.next.Equal(best.next) && t.seq < best.seq) {
			best = t
		}
	}
	return best
}

func (s *Scheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.cancelled {
			live = append(live, t)
		}
	}
	for i := len(live); i < len(s.tasks); i++ {
		s.tasks[i] = nil
	}
	s.tasks = live
}
