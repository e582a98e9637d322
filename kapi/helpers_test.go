package kapi

import (
	"time"
)

type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(ms float64) {
	c.now = c.now.Add(msToDuration(ms))
}

// manualScheduler only runs callbacks when fire is called.
type manualScheduler struct {
	next    Handle
	pending map[Handle]func()
	delays  []time.Duration
}

func newManualScheduler() *manualScheduler {
	return &manualScheduler{pending: make(map[Handle]func())}
}

func (s *manualScheduler) Schedule(fn func(), delay time.Duration) Handle {
	s.next++
	s.pending[s.next] = fn
	s.delays = append(s.delays, delay)
	return s.next
}

func (s *manualScheduler) Cancel(h Handle) {
	delete(s.pending, h)
}

// fire runs every pending callback once and reports whether there was any.
func (s *manualScheduler) fire() bool {
	if len(s.pending) == 0 {
		return false
	}
	due := s.pending
	s.pending = make(map[Handle]func())
	for _, fn := range due {
		fn()
	}
	return true
}

func (s *manualScheduler) outstanding() int {
	return len(s.pending)
}

func newTestKapi() (*Kapi, *fakeClock, *manualScheduler) {
	clock := newFakeClock()
	sched := newManualScheduler()
	k := New(func(o *Options) {
		o.Scheduler = sched
		o.Clock = clock
	})
	return k, clock, sched
}

// linearActor has x going 0 -> 100 over the first second.
func linearActor() *Actor {
	return NewActor().
		Keyframe(0, State{"x": 0.0}, nil).
		Keyframe(1000, State{"x": 100.0}, nil)
}

func x(a *Actor) any {
	return a.Get()["x"]
}
