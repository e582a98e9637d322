package kapi

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runLoop(t *testing.T) (*Loop, context.CancelFunc, <-chan error) {
	t.Helper()
	loop := NewLoop()
	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- loop.Run(ctx) }()
	t.Cleanup(cancel)
	return loop, cancel, errc
}

func TestLoopRunsScheduledCallbacks(t *testing.T) {
	loop, _, _ := runLoop(t)
	done := make(chan struct{})

	loop.Schedule(func() { close(done) }, time.Millisecond)

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled callback never ran")
	}
}

func TestLoopCancel(t *testing.T) {
	loop, _, _ := runLoop(t)
	var ran atomic.Bool

	h := loop.Schedule(func() { ran.Store(true) }, 20*time.Millisecond)
	loop.Cancel(h)
	time.Sleep(60 * time.Millisecond)

	require.NoError(t, loop.Do(context.Background(), func() {}))
	assert.False(t, ran.Load())
}

func TestLoopDo(t *testing.T) {
	loop, _, _ := runLoop(t)
	var n int

	for i := 0; i < 10; i++ {
		require.NoError(t, loop.Do(context.Background(), func() { n++ }))
	}
	assert.Equal(t, 10, n)
}

func TestLoopClosed(t *testing.T) {
	loop, cancel, errc := runLoop(t)
	cancel()

	select {
	case err := <-errc:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.ErrorIs(t, loop.Do(context.Background(), func() {}), ErrLoopClosed)
	loop.Post(func() {})
}

func TestKapiOnLoop(t *testing.T) {
	k := New()
	loop, ok := k.Loop()
	require.True(t, ok)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go func() { _ = loop.Run(ctx) }()

	a := NewActor().
		Keyframe(0, State{"x": 0.0}, nil).
		Keyframe(50, State{"x": 1.0}, nil)
	done := make(chan struct{})
	require.NoError(t, loop.Do(context.Background(), func() {
		k.On(EventAnimationComplete, func(*Kapi, any) { close(done) })
		k.AddActor(a).Play(1)
	}))

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("animation never completed")
	}

	var state State
	require.NoError(t, loop.Do(context.Background(), func() { state = a.Get() }))
	assert.Equal(t, 1.0, state["x"])
}
