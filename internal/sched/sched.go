// Package sched provides cancellable scheduled tasks.
//
// A task fires once after its start delay and then, when repeat is
// positive, every repeat interval until cancelled. The menu manager uses it
// for held-direction scrolling; callbacks should only post events and must
// not touch menu state directly.
package sched

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Task is a handle to a scheduled callback.
type Task interface {
	// ID returns the unique task identifier.
	ID() string

	// Cancel stops future firings. Cancelling twice is a no-op.
	Cancel()

	// Active reports whether the task may still fire.
	Active() bool
}

// Scheduler arms tasks.
type Scheduler interface {
	// Schedule runs fn after start, then every repeat if repeat > 0.
	Schedule(start, repeat time.Duration, fn func()) Task
}

// TimerScheduler runs tasks on runtime timers. Callbacks execute on a
// timer goroutine.
type TimerScheduler struct{}

// NewTimerScheduler creates a scheduler backed by time.AfterFunc.
func NewTimerScheduler() *TimerScheduler {
	return &TimerScheduler{}
}

// Schedule implements Scheduler.
func (s *TimerScheduler) Schedule(start, repeat time.Duration, fn func()) Task {
	t := &timerTask{id: uuid.NewString(), repeat: repeat, fn: fn, active: true}
	t.mu.Lock()
	t.timer = time.AfterFunc(start, func() { t.fire(t.seq) })
	t.mu.Unlock()
	return t
}

type timerTask struct {
	id     string
	repeat time.Duration
	fn     func()

	mu     sync.Mutex
	timer  *time.Timer
	seq    uint64 // invalidates callbacks already in flight after Cancel
	active bool
}

func (t *timerTask) ID() string { return t.id }

func (t *timerTask) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.active
}

func (t *timerTask) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.active {
		return
	}
	t.active = false
	t.seq++
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *timerTask) fire(seq uint64) {
	t.mu.Lock()
	if !t.active || t.seq != seq {
		t.mu.Unlock()
		return
	}
	if t.repeat > 0 {
		t.timer = time.AfterFunc(t.repeat, func() { t.fire(seq) })
	} else {
		t.active = false
	}
	t.mu.Unlock()

	t.fn()
}

// ManualScheduler is a deterministic clock. Tasks fire only from Advance,
// on the calling goroutine.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

// NewManualScheduler creates a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// Schedule implements Scheduler.
func (s *ManualScheduler) Schedule(start, repeat time.Duration, fn func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &manualTask{
		id:     uuid.NewString(),
		due:    s.now + start,
		repeat: repeat,
		fn:     fn,
		owner:  s,
	}
	t.active = true
	s.tasks = append(s.tasks, t)
	return t
}

// Now returns the elapsed virtual time.
func (s *ManualScheduler) Now() time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.now
}

// Pending returns the number of active tasks.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, t := range s.tasks {
		if t.active {
			n++
		}
	}
	return n
}

// Advance moves the clock forward by d, firing due tasks in time order.
// It returns the number of callbacks run.
func (s *ManualScheduler) Advance(d time.Duration) int {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	fired := 0
	for {
		s.mu.Lock()
		next := s.nextDue(target)
		if next == nil {
			s.now = target
			s.mu.Unlock()
			return fired
		}
		s.now = next.due
		if next.repeat > 0 {
			next.due += next.repeat
		} else {
			next.active = false
		}
		fn := next.fn
		s.compact()
		s.mu.Unlock()

		fn()
		fired++
	}
}

// nextDue returns the earliest active task due at or before target.
func (s *ManualScheduler) nextDue(target time.Duration) *manualTask {
	var due []*manualTask
	for _, t := range s.tasks {
		if t.active && t.due <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].due < due[j].due })
	return due[0]
}

func (s *ManualScheduler) compact() {
	live := s.tasks[:0]
	for _, t := range s.tasks {
		if t.active {
			live = append(live, t)
		}
	}
	s.tasks = live
}

type manualTask struct {
	id     string
	due    time.Duration
	repeat time.Duration
	fn     func()
	active bool
	owner  *ManualScheduler
}

func (t *manualTask) ID() string { return t.id }

func (t *manualTask) Active() bool {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	return t.active
}

func (t *manualTask) Cancel() {
	t.owner.mu.Lock()
	defer t.owner.mu.Unlock()
	t.active = false
}
