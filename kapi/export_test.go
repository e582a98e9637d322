package kapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActorTimelineRoundTrip(t *testing.T) {
	a := NewActor().
		Keyframe(0, State{"x": 0.0, "color": "#000000"}, nil).
		Keyframe(1000, State{"x": 100.0}, Ease("easeInQuad")).
		Keyframe(2000, State{"color": "#ffffff"}, nil)

	exported := a.ExportTimeline()
	assert.Equal(t, 0.0, exported.Start)
	assert.Equal(t, 2000.0, exported.End)
	assert.Equal(t, []string{"color", "x"}, exported.TrackNames)
	require.Len(t, exported.PropertyTracks["x"], 2)
	assert.Equal(t, "easeInQuad", exported.PropertyTracks["x"][1].Easing)

	b := NewActor()
	require.NoError(t, b.ImportTimeline(exported))
	assert.Equal(t, a.TrackNames(), b.TrackNames())

	for _, ms := range []float64{0, 500, 1000, 1500, 2000} {
		a.UpdateState(ms)
		b.UpdateState(ms)
		assert.Equal(t, a.Get(), b.Get(), "millisecond %v", ms)
	}

	pa, _ := a.KeyframeProperty("x", 0)
	pb, _ := b.KeyframeProperty("x", 0)
	assert.NotEqual(t, pa.ID, pb.ID)
}

func TestImportReplacesExistingKeyframes(t *testing.T) {
	a := NewActor().Keyframe(0, State{"y": 1.0}, nil)
	require.NoError(t, a.ImportTimeline(linearActor().ExportTimeline()))

	assert.Equal(t, []string{"x"}, a.TrackNames())
	assert.Equal(t, 1000.0, a.End())
}

func TestImportKeepsUndeclaredTracks(t *testing.T) {
	a := NewActor()
	err := a.ImportTimeline(ActorTimeline{
		TrackNames: []string{"y"},
		PropertyTracks: map[string][]KeyframePropertyData{
			"y": {{Millisecond: 0, Value: 1.0}},
			"b": {{Millisecond: 500, Value: 2.0}},
			"a": {{Millisecond: 250, Value: 3.0, Easing: "easeOutSine"}},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"y", "a", "b"}, a.TrackNames())

	p, ok := a.KeyframeProperty("a", 0)
	require.True(t, ok)
	assert.Equal(t, "a", p.Name)
	assert.Equal(t, "easeOutSine", p.Easing)
	q, _ := a.KeyframeProperty("b", 0)
	assert.Equal(t, "linear", q.Easing)
}

func TestValidateRejectsMalformedTimelines(t *testing.T) {
	tests := []struct {
		name string
		in   ActorTimeline
	}{
		{
			name: "misnamed property",
			in: ActorTimeline{PropertyTracks: map[string][]KeyframePropertyData{
				"x": {{Name: "y", Millisecond: 0}},
			}},
		},
		{
			name: "negative millisecond",
			in: ActorTimeline{PropertyTracks: map[string][]KeyframePropertyData{
				"x": {{Name: "x", Millisecond: -10}},
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := linearActor()
			err := a.ImportTimeline(tt.in)
			assert.ErrorIs(t, err, ErrInvalidTimeline)
			assert.Equal(t, 1000.0, a.End())
		})
	}
}

func TestKapiTimelineThroughJSON(t *testing.T) {
	k, _, _ := newTestKapi()
	a := linearActor()
	b := NewActor().Keyframe(500, State{"y": 5.0}, nil).Keyframe(1500, State{"y": 15.0}, nil)
	k.AddActor(a).AddActor(b)

	exported := k.ExportTimeline()
	assert.Equal(t, 1500.0, exported.Duration)
	require.Len(t, exported.Actors, 2)

	raw, err := json.Marshal(exported)
	require.NoError(t, err)
	var decoded Timeline
	require.NoError(t, json.Unmarshal(raw, &decoded))

	other, _, _ := newTestKapi()
	err = other.ImportTimeline(decoded, func(id string) Animatable {
		return NewActor(func(o *ActorOptions) { o.Context = id })
	})
	require.NoError(t, err)
	assert.Equal(t, 2, other.ActorCount())
	assert.Equal(t, 1500.0, other.AnimationLength())

	k.Update(1000)
	other.Update(1000)
	for _, x := range other.Actors() {
		source, ok := k.Actor(x.base().Context().(string))
		require.True(t, ok)
		assert.Equal(t, source.Get(), x.Get())
	}
}

func TestKapiImportIsAllOrNothing(t *testing.T) {
	k, _, _ := newTestKapi()
	err := k.ImportTimeline(Timeline{Actors: map[string]ActorTimeline{
		"good": linearActor().ExportTimeline(),
		"bad": {PropertyTracks: map[string][]KeyframePropertyData{
			"x": {{Millisecond: -1}},
		}},
	}}, func(string) Animatable { return NewActor() })

	assert.ErrorIs(t, err, ErrInvalidTimeline)
	assert.Zero(t, k.ActorCount())
}
