package kapi

import (
	"github.com/google/uuid"

	"github.com/Ts0n/rekapi/easing"
)

// A KeyframeProperty is one named value of an Actor at one millisecond. The
// easing describes how the property arrives at this value from its
// predecessor, so interpolation always uses the destination's easing.
type KeyframeProperty struct {
	ID          string
	Millisecond float64
	Name        string
	Value       any
	Easing      string

	actor *Actor
	// position in the owning track, refreshed on every cache rebuild
	index int
}

// KeyframePropertyPatch lists the fields ModifyWith overrides. Nil fields are
// left unchanged.
type KeyframePropertyPatch struct {
	Millisecond *float64
	Easing      *string
	Value       any
}

// KeyframePropertyData is the reference-free export of a KeyframeProperty.
type KeyframePropertyData struct {
	ID          string  `json:"id" yaml:"id"`
	Millisecond float64 `json:"millisecond" yaml:"millisecond"`
	Name        string  `json:"name" yaml:"name"`
	Value       any     `json:"value" yaml:"value"`
	Easing      string  `json:"easing" yaml:"easing"`
}

func newKeyframeProperty(actor *Actor, millisecond float64, name string, value any, easingName string) *KeyframeProperty {
	p := new(KeyframeProperty)
	p.ID = uuid.NewString()
	p.actor = actor
	p.Millisecond = millisecond
	p.Name = name
	p.Value = value
	p.Easing = easingName
	if p.Easing == "" {
		p.Easing = easing.Linear
	}
	p.index = -1
	return p
}

// Actor returns the owning actor.
func (p *KeyframeProperty) Actor() *Actor {
	return p.actor
}

// ModifyWith overrides the patched fields. It does not re-sort the owning
// track or rebuild its cache; Actor.ModifyKeyframeProperty does both.
func (p *KeyframeProperty) ModifyWith(patch KeyframePropertyPatch) {
	if patch.Millisecond != nil {
		p.Millisecond = *patch.Millisecond
	}
	if patch.Easing != nil {
		p.Easing = *patch.Easing
	}
	if patch.Value != nil {
		p.Value = patch.Value
	}
}

// Next returns the chronologically next property of the same track.
func (p *KeyframeProperty) Next() (*KeyframeProperty, bool) {
	if p.actor == nil || p.index < 0 {
		return nil, false
	}
	t, ok := p.actor.tracks[p.Name]
	if !ok || p.index >= len(t.props) || t.props[p.index] != p {
		return nil, false
	}
	if p.index+1 >= len(t.props) {
		return nil, false
	}
	return t.props[p.index+1], true
}

// ValueAt returns the value of this property's track at millisecond, which
// must not precede p.Millisecond. Past the last keyframe the value holds.
func (p *KeyframeProperty) ValueAt(millisecond float64) any {
	next, ok := p.Next()
	if !ok || millisecond == p.Millisecond {
		return p.Value
	}
	delta := next.Millisecond - p.Millisecond
	if delta == 0 {
		return next.Value
	}
	position := (millisecond - p.Millisecond) / delta
	return p.actor.interpolate(p.Value, next.Value, position, next.Easing)
}

// Export returns a reference-free copy of the property's fields.
func (p *KeyframeProperty) Export() KeyframePropertyData {
	return KeyframePropertyData{
		ID:          p.ID,
		Millisecond: p.Millisecond,
		Name:        p.Name,
		Value:       p.Value,
		Easing:      p.Easing,
	}
}
