package kapi

import (
	"math"
	"sort"

	"github.com/google/uuid"

	"github.com/Ts0n/rekapi/easing"
)

// Animatable is what the loop engine drives: anything built on an Actor.
// Renderer-specific actors embed *Actor and add their own drawing capability.
type Animatable interface {
	ID() string
	Start() float64
	End() float64
	UpdateState(millisecond float64) *Actor
	Get() State
	Stop() *Actor
	base() *Actor
}

// ActorOptions configures an Actor.
type ActorOptions struct {
	// Context is handed to Update. When nil, the engine's context is used
	// once the actor is added.
	Context any
	// Setup runs when the actor is added to an engine.
	Setup func(a *Actor)
	// Update runs after every state update with the actor's context and
	// freshly resolved state.
	Update func(context any, state State)
	// Teardown runs when the actor is removed from an engine.
	Teardown func(a *Actor)
	// Interpolator defaults to easing.Interpolate.
	Interpolator Interpolator
}

// An Actor owns a set of property tracks and the cache derived from them,
// and resolves its state for any millisecond of the timeline.
type Actor struct {
	// Data holds arbitrary user annotations.
	Data map[string]any

	id         string
	tracks     map[string]*track
	trackOrder []string
	props      map[string]*KeyframeProperty
	cache      timelineCache

	state   State
	context any
	fps     float64
	kapi    *Kapi
	tweens  []*propertyTween

	setup        func(a *Actor)
	update       func(context any, state State)
	teardown     func(a *Actor)
	interpolator Interpolator
}

// NewActor creates an Actor with no keyframes.
func NewActor(optFns ...func(o *ActorOptions)) *Actor {
	opts := ActorOptions{
		Interpolator: easing.Interpolate,
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	a := new(Actor)
	a.id = uuid.NewString()
	a.Data = make(map[string]any)
	a.tracks = make(map[string]*track)
	a.props = make(map[string]*KeyframeProperty)
	a.state = make(State)
	a.context = opts.Context
	a.setup = opts.Setup
	a.update = opts.Update
	a.teardown = opts.Teardown
	a.interpolator = opts.Interpolator
	if a.interpolator == nil {
		a.interpolator = easing.Interpolate
	}
	return a
}

func (a *Actor) base() *Actor { return a }

// ID returns the process-unique id of the actor.
func (a *Actor) ID() string { return a.id }

// Kapi returns the engine the actor is attached to.
func (a *Actor) Kapi() (*Kapi, bool) { return a.kapi, a.kapi != nil }

// FPS returns the frame rate inherited from the engine, or 0 when detached.
func (a *Actor) FPS() float64 { return a.fps }

// Context returns the actor's rendering context.
func (a *Actor) Context() any { return a.context }

// SetContext replaces the actor's rendering context.
func (a *Actor) SetContext(context any) *Actor {
	a.context = context
	return a
}

// Get returns a copy of the last resolved state.
func (a *Actor) Get() State { return a.state.Clone() }

// Set merges values into the current state.
func (a *Actor) Set(values State) *Actor {
	for k, v := range values {
		a.state[k] = v
	}
	return a
}

func (a *Actor) interpolate(from, to any, t float64, easingName string) any {
	return a.interpolator(from, to, t, easingName)
}

func (a *Actor) track(name string) *track {
	t, ok := a.tracks[name]
	if !ok {
		t = &track{name: name}
		a.tracks[name] = t
		a.trackOrder = append(a.trackOrder, name)
	}
	return t
}

// timelineChanged refreshes everything derived from the tracks.
func (a *Actor) timelineChanged() {
	if a.kapi != nil {
		a.kapi.recalculateAnimationLength()
	}
	a.invalidateCache()
}

func validMillisecond(ms float64) bool {
	return ms >= 0 && !math.IsNaN(ms) && !math.IsInf(ms, 0)
}

// Keyframe sets the given property values at when. A property already keyed
// at exactly when is replaced. A nil easing means linear for every property.
func (a *Actor) Keyframe(when float64, state State, e Easing) *Actor {
	if !validMillisecond(when) {
		Logger().Warn("keyframe rejected", "actor", a.id, "millisecond", when)
		return a
	}

	names := make([]string, 0, len(state))
	for name := range state {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		t := a.track(name)
		if i, ok := t.at(when); ok {
			old := t.remove(i)
			delete(a.props, old.ID)
		}
		p := newKeyframeProperty(a, when, name, state[name], easingFor(e, name))
		t.props = append(t.props, p)
		a.props[p.ID] = p
		t.sort()
	}

	a.timelineChanged()
	return a
}

// KeyframeProperty returns the property at position index of the named
// track.
func (a *Actor) KeyframeProperty(trackName string, index int) (*KeyframeProperty, bool) {
	t, ok := a.tracks[trackName]
	if !ok || index < 0 || index >= len(t.props) {
		return nil, false
	}
	return t.props[index], true
}

// ModifyKeyframeProperty patches the property at position index of the named
// track. A missed lookup leaves the actor untouched.
func (a *Actor) ModifyKeyframeProperty(trackName string, index int, patch KeyframePropertyPatch) *Actor {
	p, ok := a.KeyframeProperty(trackName, index)
	if !ok {
		Logger().Debug("keyframe property not found", "actor", a.id, "track", trackName, "index", index)
		return a
	}
	if patch.Millisecond != nil && !validMillisecond(*patch.Millisecond) {
		Logger().Warn("keyframe property patch rejected", "actor", a.id, "millisecond", *patch.Millisecond)
		return a
	}
	p.ModifyWith(patch)
	a.tracks[trackName].sort()
	a.timelineChanged()
	return a
}

// TrackNames lists the actor's property tracks in creation order.
func (a *Actor) TrackNames() []string {
	out := make([]string, len(a.trackOrder))
	copy(out, a.trackOrder)
	return out
}

// TrackLength returns the number of keyframe properties in the named track.
func (a *Actor) TrackLength(name string) (int, bool) {
	t, ok := a.tracks[name]
	if !ok {
		return 0, false
	}
	return len(t.props), true
}

// CopyProperties re-keys, at to, every property keyed exactly at from.
// Tracks without a keyframe at from are skipped.
func (a *Actor) CopyProperties(to, from float64) *Actor {
	values := make(State)
	easings := make(EaseMap)
	for _, name := range a.trackOrder {
		t := a.tracks[name]
		if i, ok := t.at(from); ok {
			values[name] = t.props[i].Value
			easings[name] = t.props[i].Easing
		}
	}
	if len(values) == 0 {
		return a
	}
	return a.Keyframe(to, values, easings)
}

// Wait holds the actor's final state until the given millisecond.
func (a *Actor) Wait(until float64) *Actor {
	end := a.End()
	if until <= end {
		return a
	}

	values := make(State)
	easings := make(EaseMap)
	for _, name := range a.trackOrder {
		if p, ok := a.tracks[name].latest(end); ok {
			values[name] = p.Value
			easings[name] = p.Easing
		}
	}

	a.RemoveKeyframe(end)
	a.Keyframe(end, values, easings)
	a.Keyframe(until, values, easings)
	return a
}

// HasKeyframeAt reports whether any track, or the named track, is keyed
// exactly at when.
func (a *Actor) HasKeyframeAt(when float64, trackName ...string) bool {
	names := a.trackOrder
	if len(trackName) > 0 {
		names = trackName
	}
	for _, name := range names {
		t, ok := a.tracks[name]
		if !ok {
			continue
		}
		if _, ok := t.at(when); ok {
			return true
		}
	}
	return false
}

// ModifyKeyframe patches the value and easing of the properties keyed
// exactly at when. Tracks absent from both values and easings, or without a
// keyframe at when, are untouched.
func (a *Actor) ModifyKeyframe(when float64, values State, easings EaseMap) *Actor {
	modified := 0
	for _, name := range a.trackOrder {
		t := a.tracks[name]
		i, ok := t.at(when)
		if !ok {
			continue
		}
		var patch KeyframePropertyPatch
		if v, ok := values[name]; ok {
			patch.Value = v
		}
		if e, ok := easings[name]; ok {
			patch.Easing = &e
		}
		t.props[i].ModifyWith(patch)
		modified++
	}
	if modified == 0 {
		Logger().Debug("no keyframe to modify", "actor", a.id, "millisecond", when)
	}
	return a
}

// RemoveKeyframe drops every property keyed exactly at when. Emptied tracks
// are kept.
func (a *Actor) RemoveKeyframe(when float64) *Actor {
	for _, name := range a.trackOrder {
		t := a.tracks[name]
		if i, ok := t.at(when); ok {
			p := t.remove(i)
			delete(a.props, p.ID)
		}
	}
	a.timelineChanged()
	return a
}

// RemoveAllKeyframeProperties deletes every track and keyframe property.
func (a *Actor) RemoveAllKeyframeProperties() *Actor {
	for _, t := range a.tracks {
		for _, p := range t.props {
			p.index = -1
		}
	}
	a.tracks = make(map[string]*track)
	a.trackOrder = nil
	a.props = make(map[string]*KeyframeProperty)
	return a.RemoveKeyframe(0)
}

// Start returns the earliest keyframe millisecond over all tracks, or 0 when
// the actor has no keyframes.
func (a *Actor) Start() float64 {
	start := math.Inf(1)
	for _, t := range a.tracks {
		if p, ok := t.first(); ok && p.Millisecond < start {
			start = p.Millisecond
		}
	}
	if math.IsInf(start, 1) {
		return 0
	}
	return start
}

// End returns the latest keyframe millisecond over all tracks, or 0 when the
// actor has no keyframes.
func (a *Actor) End() float64 {
	var end float64
	for _, t := range a.tracks {
		if p, ok := t.last(); ok && p.Millisecond > end {
			end = p.Millisecond
		}
	}
	return end
}

// Length returns End() - Start().
func (a *Actor) Length() float64 {
	return a.End() - a.Start()
}

// TrackStart returns the first keyframe millisecond of the named track.
func (a *Actor) TrackStart(name string) (float64, bool) {
	t, ok := a.tracks[name]
	if !ok {
		return 0, false
	}
	if p, ok := t.first(); ok {
		return p.Millisecond, true
	}
	return 0, true
}

// TrackEnd returns the last keyframe millisecond of the named track.
func (a *Actor) TrackEnd(name string) (float64, bool) {
	t, ok := a.tracks[name]
	if !ok {
		return 0, false
	}
	if p, ok := t.last(); ok {
		return p.Millisecond, true
	}
	return 0, true
}

// TrackDuration returns TrackEnd(name) - TrackStart(name).
func (a *Actor) TrackDuration(name string) (float64, bool) {
	start, ok := a.TrackStart(name)
	if !ok {
		return 0, false
	}
	end, _ := a.TrackEnd(name)
	return end - start, true
}

// UpdateState resolves the actor's state at millisecond. Times past the end
// freeze on the final state; times before the start leave the state as it
// was.
func (a *Actor) UpdateState(millisecond float64) *Actor {
	if math.IsNaN(millisecond) {
		return a
	}
	start, end := a.Start(), a.End()
	millisecond = math.Min(end, millisecond)
	if millisecond < start {
		return a
	}

	snapshot, ok := a.cache.lookup(millisecond)
	if !ok {
		return a
	}
	resolved := make(State, len(snapshot))
	for _, p := range snapshot {
		resolved[p.Name] = p.ValueAt(millisecond)
	}
	return a.Set(resolved)
}
