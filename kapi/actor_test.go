package kapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateStateHitsAuthoredValues(t *testing.T) {
	a := NewActor().
		Keyframe(0, State{"x": 0.0}, nil).
		Keyframe(1000, State{"x": 100.0}, nil).
		Keyframe(2500, State{"x": 40.0}, nil)

	for ms, want := range map[float64]float64{0: 0, 1000: 100, 2500: 40} {
		a.UpdateState(ms)
		assert.Equal(t, want, x(a), "millisecond %v", ms)
	}
}

func TestUpdateStateInterpolatesLinearly(t *testing.T) {
	a := NewActor().
		Keyframe(0, State{"x": 0.0}, nil).
		Keyframe(1000, State{"x": 100.0}, nil).
		Keyframe(2500, State{"x": 40.0}, nil)

	a.UpdateState(250)
	assert.InDelta(t, 25.0, x(a), 1e-9)
	a.UpdateState(1750)
	assert.InDelta(t, 70.0, x(a), 1e-9)
}

func TestUpdateStateClampsToEnd(t *testing.T) {
	a := linearActor().Keyframe(1500, State{"y": "#ff0000"}, nil)

	a.UpdateState(1500)
	atEnd := a.Get()
	a.UpdateState(99999)
	assert.Equal(t, atEnd, a.Get())
}

func TestUpdateStateBeforeStartIsNoop(t *testing.T) {
	a := NewActor().Keyframe(500, State{"x": 10.0}, nil)
	a.Set(State{"x": -1.0})

	a.UpdateState(100)
	assert.Equal(t, -1.0, x(a))

	a.UpdateState(500)
	assert.Equal(t, 10.0, x(a))
}

func TestUpdateStateForwardFills(t *testing.T) {
	a := linearActor().Keyframe(500, State{"y": 7.0}, nil)

	a.UpdateState(250)
	state := a.Get()
	assert.InDelta(t, 25.0, state["x"], 1e-9)
	assert.NotContains(t, state, "y")

	a.UpdateState(750)
	state = a.Get()
	assert.InDelta(t, 75.0, state["x"], 1e-9)
	assert.Equal(t, 7.0, state["y"])
}

func TestEasingBelongsToDestination(t *testing.T) {
	a := NewActor().
		Keyframe(0, State{"x": 0.0}, Ease("easeInQuad")).
		Keyframe(1000, State{"x": 100.0}, nil)
	a.UpdateState(500)
	assert.InDelta(t, 50.0, x(a), 1e-9)

	b := NewActor().
		Keyframe(0, State{"x": 0.0}, nil).
		Keyframe(1000, State{"x": 100.0}, Ease("easeInQuad"))
	b.UpdateState(500)
	assert.InDelta(t, 25.0, x(b), 1e-9)
}

func TestEaseMapDefaultsToLinear(t *testing.T) {
	a := NewActor().
		Keyframe(0, State{"x": 0.0, "y": 0.0}, nil).
		Keyframe(1000, State{"x": 100.0, "y": 100.0}, EaseMap{"x": "easeInQuad"})

	p, ok := a.KeyframeProperty("y", 1)
	require.True(t, ok)
	assert.Equal(t, "linear", p.Easing)

	a.UpdateState(500)
	state := a.Get()
	assert.InDelta(t, 25.0, state["x"], 1e-9)
	assert.InDelta(t, 50.0, state["y"], 1e-9)
}

func TestInterpolatesColours(t *testing.T) {
	a := NewActor().
		Keyframe(0, State{"color": "#000000"}, nil).
		Keyframe(1000, State{"color": "#ffffff"}, nil)
	a.UpdateState(500)
	assert.Equal(t, "#808080", a.Get()["color"])
}

func TestKeyframeReplacesSameMillisecond(t *testing.T) {
	a := linearActor().Keyframe(1000, State{"x": 5.0}, nil)

	n, ok := a.TrackLength("x")
	require.True(t, ok)
	assert.Equal(t, 2, n)
	a.UpdateState(1000)
	assert.Equal(t, 5.0, x(a))
}

func TestKeyframeRejectsNegativeTime(t *testing.T) {
	a := NewActor().Keyframe(-1, State{"x": 1.0}, nil)
	assert.Empty(t, a.TrackNames())
}

func TestKeyframePropertyLookup(t *testing.T) {
	a := linearActor()

	p, ok := a.KeyframeProperty("x", 1)
	require.True(t, ok)
	assert.Equal(t, 1000.0, p.Millisecond)
	assert.Same(t, a, p.Actor())

	_, ok = a.KeyframeProperty("x", 2)
	assert.False(t, ok)
	_, ok = a.KeyframeProperty("x", -1)
	assert.False(t, ok)
	_, ok = a.KeyframeProperty("nope", 0)
	assert.False(t, ok)
}

func TestNextFollowsTrackOrder(t *testing.T) {
	a := linearActor().Keyframe(500, State{"x": 20.0}, nil)

	first, _ := a.KeyframeProperty("x", 0)
	next, ok := first.Next()
	require.True(t, ok)
	assert.Equal(t, 500.0, next.Millisecond)

	last, _ := a.KeyframeProperty("x", 2)
	_, ok = last.Next()
	assert.False(t, ok)
}

func TestModifyKeyframeProperty(t *testing.T) {
	a := NewActor().
		Keyframe(0, State{"x": 0.0}, nil).
		Keyframe(1000, State{"x": 100.0}, nil).
		Keyframe(2000, State{"x": 200.0}, nil)

	ms := 1500.0
	a.ModifyKeyframeProperty("x", 0, KeyframePropertyPatch{Millisecond: &ms, Value: 150.0})

	assert.Equal(t, 1000.0, a.Start())
	p, _ := a.KeyframeProperty("x", 1)
	assert.Equal(t, 1500.0, p.Millisecond)
	assert.Equal(t, 150.0, p.Value)

	a.UpdateState(1250)
	assert.InDelta(t, 125.0, x(a), 1e-9)
}

func TestModifyKeyframePropertyMissIsNoop(t *testing.T) {
	a := linearActor()
	before := a.ExportTimeline()
	easeName := "easeInQuad"

	a.ModifyKeyframeProperty("x", 5, KeyframePropertyPatch{Easing: &easeName})
	a.ModifyKeyframeProperty("nope", 0, KeyframePropertyPatch{Easing: &easeName})
	assert.Equal(t, before, a.ExportTimeline())
}

func TestModifyWithLeavesUnsetFields(t *testing.T) {
	p := newKeyframeProperty(nil, 10, "x", 1.0, "")
	assert.Equal(t, "linear", p.Easing)

	e := "easeOutSine"
	p.ModifyWith(KeyframePropertyPatch{Easing: &e})
	assert.Equal(t, 10.0, p.Millisecond)
	assert.Equal(t, 1.0, p.Value)
	assert.Equal(t, "easeOutSine", p.Easing)
}

func TestTrackIntrospection(t *testing.T) {
	a := linearActor().Keyframe(500, State{"y": 1.0}, nil)

	assert.Equal(t, []string{"x", "y"}, a.TrackNames())
	n, ok := a.TrackLength("y")
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	_, ok = a.TrackLength("z")
	assert.False(t, ok)
}

func TestStartEndLength(t *testing.T) {
	a := NewActor()
	assert.Equal(t, 0.0, a.Start())
	assert.Equal(t, 0.0, a.End())

	a.Keyframe(200, State{"x": 1.0}, nil).Keyframe(1200, State{"y": 1.0}, nil)
	assert.Equal(t, 200.0, a.Start())
	assert.Equal(t, 1200.0, a.End())
	assert.Equal(t, a.End()-a.Start(), a.Length())

	start, ok := a.TrackStart("y")
	assert.True(t, ok)
	assert.Equal(t, 1200.0, start)
	d, ok := a.TrackDuration("x")
	assert.True(t, ok)
	assert.Equal(t, 0.0, d)
	_, ok = a.TrackEnd("z")
	assert.False(t, ok)
}

func TestCopyProperties(t *testing.T) {
	a := NewActor().
		Keyframe(0, State{"x": 5.0}, Ease("easeOutCubic")).
		Keyframe(500, State{"y": 1.0}, nil)

	a.CopyProperties(3000, 0)

	assert.True(t, a.HasKeyframeAt(3000, "x"))
	assert.False(t, a.HasKeyframeAt(3000, "y"))
	p, ok := a.KeyframeProperty("x", 1)
	require.True(t, ok)
	assert.Equal(t, 5.0, p.Value)
	assert.Equal(t, "easeOutCubic", p.Easing)

	before := a.ExportTimeline()
	a.CopyProperties(4000, 123)
	assert.Equal(t, before, a.ExportTimeline())
}

func TestWait(t *testing.T) {
	a := linearActor()

	a.Wait(2000)
	assert.Equal(t, 2000.0, a.End())
	a.UpdateState(1500)
	assert.Equal(t, 100.0, x(a))

	before := a.ExportTimeline()
	a.Wait(1000)
	assert.Equal(t, before, a.ExportTimeline())
}

func TestWaitHoldsForwardFilledTracks(t *testing.T) {
	a := NewActor().
		Keyframe(0, State{"x": 0.0, "y": 3.0}, nil).
		Keyframe(1000, State{"x": 100.0}, nil)

	a.Wait(2000)
	assert.True(t, a.HasKeyframeAt(2000, "y"))
	a.UpdateState(1500)
	assert.Equal(t, 100.0, a.Get()["x"])
	assert.Equal(t, 3.0, a.Get()["y"])
}

func TestHasKeyframeAt(t *testing.T) {
	a := linearActor().Keyframe(500, State{"y": 1.0}, nil)

	assert.True(t, a.HasKeyframeAt(500))
	assert.True(t, a.HasKeyframeAt(500, "y"))
	assert.False(t, a.HasKeyframeAt(500, "x"))
	assert.False(t, a.HasKeyframeAt(500, "z"))
	assert.False(t, a.HasKeyframeAt(750))
}

func TestModifyKeyframe(t *testing.T) {
	a := NewActor().
		Keyframe(0, State{"x": 10.0, "y": 20.0}, nil).
		Keyframe(1000, State{"x": 20.0, "y": 40.0}, nil)

	a.ModifyKeyframe(1000, State{"y": 150.0}, EaseMap{"x": "easeInQuad"})

	px, _ := a.KeyframeProperty("x", 1)
	py, _ := a.KeyframeProperty("y", 1)
	assert.Equal(t, 20.0, px.Value)
	assert.Equal(t, "easeInQuad", px.Easing)
	assert.Equal(t, 150.0, py.Value)
	assert.Equal(t, "linear", py.Easing)

	a.UpdateState(1000)
	assert.Equal(t, 150.0, a.Get()["y"])
}

func TestRemoveKeyframe(t *testing.T) {
	a := linearActor().Keyframe(500, State{"x": 90.0}, nil)

	a.RemoveKeyframe(500)
	n, _ := a.TrackLength("x")
	assert.Equal(t, 2, n)
	a.UpdateState(500)
	assert.InDelta(t, 50.0, x(a), 1e-9)

	a.RemoveKeyframe(1000)
	assert.Equal(t, 0.0, a.End())
	assert.Equal(t, []string{"x"}, a.TrackNames())
}

func TestRemoveAllKeyframeProperties(t *testing.T) {
	a := linearActor().Keyframe(500, State{"y": 1.0}, nil)

	a.RemoveAllKeyframeProperties()
	assert.Empty(t, a.TrackNames())
	assert.Equal(t, 0.0, a.End())
	assert.Equal(t, 0, a.cache.len())
}

func TestCacheRebuildIsIdempotent(t *testing.T) {
	a := linearActor().
		Keyframe(500, State{"y": 1.0}, nil).
		Keyframe(1500, State{"z": "a"}, nil)

	a.invalidateCache()
	first := a.cache
	a.invalidateCache()
	second := a.cache

	require.Equal(t, first.index, second.index)
	require.Equal(t, len(first.snapshots), len(second.snapshots))
	for i := range first.snapshots {
		require.Equal(t, len(first.snapshots[i]), len(second.snapshots[i]))
		for j := range first.snapshots[i] {
			assert.Same(t, first.snapshots[i][j], second.snapshots[i][j])
		}
	}
}

func TestCacheIndex(t *testing.T) {
	a := linearActor().Keyframe(500, State{"y": 1.0}, nil)

	assert.Equal(t, []float64{0, 500, 1000}, a.cache.index)
	// y has nothing at 0, and x carries forward into 500.
	assert.Len(t, a.cache.snapshots[0], 1)
	assert.Len(t, a.cache.snapshots[1], 2)
	assert.Equal(t, 0.0, a.cache.snapshots[1][0].Millisecond)
}

func TestActorDataAndContext(t *testing.T) {
	a := NewActor(func(o *ActorOptions) { o.Context = "ctx" })
	a.Data["label"] = "hero"

	assert.Equal(t, "ctx", a.Context())
	a.SetContext(42)
	assert.Equal(t, 42, a.Context())
	assert.Equal(t, "hero", a.Data["label"])
	assert.NotEqual(t, a.ID(), NewActor().ID())
}

func TestCustomInterpolator(t *testing.T) {
	a := NewActor(func(o *ActorOptions) {
		o.Interpolator = func(from, to any, t float64, easingName string) any { return easingName }
	})
	a.Keyframe(0, State{"x": 0.0}, nil).Keyframe(100, State{"x": 1.0}, Ease("custom"))
	a.UpdateState(50)
	assert.Equal(t, "custom", x(a))
}
