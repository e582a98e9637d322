package kapi

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalidTimeline is returned when imported timeline data is malformed.
var ErrInvalidTimeline = errors.New("kapi: invalid timeline")

// ActorTimeline is the reference-free export of an Actor's tracks.
type ActorTimeline struct {
	Start          float64                           `json:"start" yaml:"start"`
	End            float64                           `json:"end" yaml:"end"`
	TrackNames     []string                          `json:"trackNames" yaml:"trackNames"`
	PropertyTracks map[string][]KeyframePropertyData `json:"propertyTracks" yaml:"propertyTracks"`
}

// Timeline is the reference-free export of every actor of a Kapi.
type Timeline struct {
	Duration float64                  `json:"duration" yaml:"duration"`
	Actors   map[string]ActorTimeline `json:"actors" yaml:"actors"`
}

// ExportTimeline snapshots the actor's tracks.
func (a *Actor) ExportTimeline() ActorTimeline {
	out := ActorTimeline{
		Start:          a.Start(),
		End:            a.End(),
		TrackNames:     a.TrackNames(),
		PropertyTracks: make(map[string][]KeyframePropertyData, len(a.trackOrder)),
	}
	for _, name := range a.trackOrder {
		props := a.tracks[name].props
		data := make([]KeyframePropertyData, 0, len(props))
		for _, p := range props {
			data = append(data, p.Export())
		}
		out.PropertyTracks[name] = data
	}
	return out
}

// ExportTimeline snapshots every attached actor.
func (k *Kapi) ExportTimeline() Timeline {
	out := Timeline{
		Duration: k.animationLength,
		Actors:   make(map[string]ActorTimeline, len(k.actors)),
	}
	for id, x := range k.actors {
		out.Actors[id] = x.base().ExportTimeline()
	}
	return out
}

// Validate checks that every property sits on a track of its own name at a
// non-negative millisecond.
func (t ActorTimeline) Validate() error {
	for name, props := range t.PropertyTracks {
		for i, p := range props {
			if p.Name != "" && p.Name != name {
				return fmt.Errorf("%w: track %q entry %d is named %q", ErrInvalidTimeline, name, i, p.Name)
			}
			if !validMillisecond(p.Millisecond) {
				return fmt.Errorf("%w: track %q entry %d at millisecond %v", ErrInvalidTimeline, name, i, p.Millisecond)
			}
		}
	}
	return nil
}

// trackNames returns the declared track order followed by any undeclared
// tracks, sorted.
func (t ActorTimeline) trackNames() []string {
	seen := make(map[string]bool, len(t.PropertyTracks))
	var names []string
	for _, name := range t.TrackNames {
		if _, ok := t.PropertyTracks[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range t.PropertyTracks {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

// ImportTimeline replaces the actor's keyframes with the exported data.
// Imported properties get fresh ids. Start and End are derived, not read.
func (a *Actor) ImportTimeline(t ActorTimeline) error {
	if err := t.Validate(); err != nil {
		return err
	}

	a.RemoveAllKeyframeProperties()
	for _, name := range t.trackNames() {
		tr := a.track(name)
		for _, data := range t.PropertyTracks[name] {
			if i, ok := tr.at(data.Millisecond); ok {
				old := tr.remove(i)
				delete(a.props, old.ID)
			}
			p := newKeyframeProperty(a, data.Millisecond, name, data.Value, data.Easing)
			tr.props = append(tr.props, p)
			a.props[p.ID] = p
		}
		tr.sort()
	}
	a.timelineChanged()
	return nil
}

// ImportTimeline adds one actor per exported actor, built by newActor from
// the exported id. Nothing is added if any actor's data is invalid.
func (k *Kapi) ImportTimeline(t Timeline, newActor func(id string) Animatable) error {
	ids := make([]string, 0, len(t.Actors))
	for id, at := range t.Actors {
		if err := at.Validate(); err != nil {
			return fmt.Errorf("actor %q: %w", id, err)
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		x := newActor(id)
		if err := x.base().ImportTimeline(t.Actors[id]); err != nil {
			return fmt.Errorf("actor %q: %w", id, err)
		}
		k.AddActor(x)
	}
	return nil
}
