package kapi

import (
	"context"
	"errors"
	"sync"
	"time"
)

// ErrLoopClosed is returned by Loop.Do once Run has returned.
var ErrLoopClosed = errors.New("kapi: loop closed")

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

// A Scheduler runs callbacks after a delay. The engine keeps at most one
// callback outstanding and cancels it before every play state change. The
// delay is advisory: the engine derives animation time from its Clock, not
// from counting callbacks.
type Scheduler interface {
	Schedule(fn func(), delay time.Duration) Handle
	Cancel(h Handle)
}

// A Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

// Now implements Clock.
func (SystemClock) Now() time.Time { return time.Now() }

// Loop is a single-goroutine executor. Scheduled callbacks and posted
// functions all run on the goroutine calling Run, so an engine driven by a
// Loop needs no locking as long as every other caller goes through Do or
// Post.
type Loop struct {
	tasks  chan func()
	closed chan struct{}
	once   sync.Once

	mu     sync.Mutex
	next   Handle
	timers map[Handle]*time.Timer
}

// NewLoop creates a Loop. Nothing runs until Run is called.
func NewLoop() *Loop {
	l := new(Loop)
	l.tasks = make(chan func(), 64)
	l.closed = make(chan struct{})
	l.timers = make(map[Handle]*time.Timer)
	return l
}

// Now implements Clock.
func (l *Loop) Now() time.Time { return time.Now() }

// Schedule implements Scheduler.
func (l *Loop) Schedule(fn func(), delay time.Duration) Handle {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.next++
	h := l.next
	l.timers[h] = time.AfterFunc(delay, func() {
		l.Post(func() {
			// Cancel may have run between the timer firing and now.
			l.mu.Lock()
			_, live := l.timers[h]
			delete(l.timers, h)
			l.mu.Unlock()
			if live {
				fn()
			}
		})
	})
	return h
}

// Cancel implements Scheduler.
func (l *Loop) Cancel(h Handle) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if t, ok := l.timers[h]; ok {
		t.Stop()
		delete(l.timers, h)
	}
}

// Post queues fn to run on the loop goroutine. Work posted after Run has
// returned is dropped.
func (l *Loop) Post(fn func()) {
	select {
	case l.tasks <- fn:
	case <-l.closed:
	}
}

// Do runs fn on the loop goroutine and waits for it to return. It must not
// be called from the loop goroutine itself.
func (l *Loop) Do(ctx context.Context, fn func()) error {
	done := make(chan struct{})
	select {
	case l.tasks <- func() { defer close(done); fn() }:
	case <-l.closed:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case <-done:
		return nil
	case <-l.closed:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run executes queued work until ctx is done, then cancels every pending
// timer.
func (l *Loop) Run(ctx context.Context) error {
	defer l.once.Do(func() { close(l.closed) })
	defer l.stopTimers()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case fn := <-l.tasks:
			fn()
		}
	}
}

func (l *Loop) stopTimers() {
	l.mu.Lock()
	defer l.mu.Unlock()
	for h, t := range l.timers {
		t.Stop()
		delete(l.timers, h)
	}
}
