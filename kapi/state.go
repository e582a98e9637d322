package kapi

import (
	"github.com/Ts0n/rekapi/easing"
)

// State is a bag of named property values, e.g. {"x": 10, "color": "#f00"}.
type State map[string]any

// Clone returns a shallow copy of s.
func (s State) Clone() State {
	out := make(State, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}

// Easing picks the easing formula for each property of a keyframe.
type Easing interface {
	For(property string) string
}

// Ease applies one easing to every property of a keyframe.
type Ease string

// For implements Easing.
func (e Ease) For(string) string {
	if e == "" {
		return easing.Linear
	}
	return string(e)
}

// EaseMap assigns an easing per property. Missing properties are linear.
type EaseMap map[string]string

// For implements Easing.
func (m EaseMap) For(property string) string {
	if e, ok := m[property]; ok && e != "" {
		return e
	}
	return easing.Linear
}

func easingFor(e Easing, property string) string {
	if e == nil {
		return easing.Linear
	}
	return e.For(property)
}

// Interpolator computes the value between from and to at position t, eased
// by the named easing. It must be pure.
type Interpolator func(from, to any, t float64, easingName string) any
