// Package render holds what every renderer built on kapi shares: a draw order
// over the engine's actors and the per-update draw pass.
package render

import (
	"sort"

	"github.com/Ts0n/rekapi/kapi"
)

// An OrderFunc ranks an actor for drawing. Lower ranks draw first.
type OrderFunc func(x kapi.Animatable) float64

// Layers keeps the draw order of the actors a renderer can draw. Actors are
// drawn in the order they were added unless moved or an OrderFunc is set.
type Layers struct {
	accept  func(x kapi.Animatable) bool
	order   []string
	actors  map[string]kapi.Animatable
	orderFn OrderFunc
}

// NewLayers creates an empty draw order holding only actors accepted by
// accept. A nil accept takes every actor.
func NewLayers(accept func(x kapi.Animatable) bool) *Layers {
	l := new(Layers)
	l.accept = accept
	l.actors = make(map[string]kapi.Animatable)
	return l
}

// Add puts x on the top layer. It reports false when x is not drawable here
// or already present.
func (l *Layers) Add(x kapi.Animatable) bool {
	if l.accept != nil && !l.accept(x) {
		return false
	}
	if _, ok := l.actors[x.ID()]; ok {
		return false
	}
	l.actors[x.ID()] = x
	l.order = append(l.order, x.ID())
	return true
}

// Remove drops x from the draw order.
func (l *Layers) Remove(x kapi.Animatable) bool {
	i, ok := l.Layer(x.ID())
	if !ok {
		return false
	}
	l.order = append(l.order[:i], l.order[i+1:]...)
	delete(l.actors, x.ID())
	return true
}

// Len returns the number of drawable actors.
func (l *Layers) Len() int { return len(l.order) }

// IDs returns actor ids bottom layer first, ignoring any OrderFunc.
func (l *Layers) IDs() []string {
	out := make([]string, len(l.order))
	copy(out, l.order)
	return out
}

// Layer returns the position of the actor in the draw order.
func (l *Layers) Layer(id string) (int, bool) {
	for i, x := range l.order {
		if x == id {
			return i, true
		}
	}
	return -1, false
}

// MoveToLayer moves x to position layer, shifting the actors above it up.
// Out of range layers and unknown actors are refused.
func (l *Layers) MoveToLayer(x kapi.Animatable, layer int) bool {
	if layer < 0 || layer >= len(l.order) {
		return false
	}
	i, ok := l.Layer(x.ID())
	if !ok {
		return false
	}
	id := l.order[i]
	l.order = append(l.order[:i], l.order[i+1:]...)
	l.order = append(l.order[:layer], append([]string{id}, l.order[layer:]...)...)
	return true
}

// SetOrderFunc makes fn decide the draw order. Layers set by MoveToLayer are
// kept but ignored until UnsetOrderFunc.
func (l *Layers) SetOrderFunc(fn OrderFunc) { l.orderFn = fn }

// UnsetOrderFunc restores the layer order.
func (l *Layers) UnsetOrderFunc() { l.orderFn = nil }

// Ordered returns the actors in draw order.
func (l *Layers) Ordered() []kapi.Animatable {
	out := make([]kapi.Animatable, 0, len(l.order))
	for _, id := range l.order {
		out = append(out, l.actors[id])
	}
	if l.orderFn != nil {
		sort.SliceStable(out, func(i, j int) bool {
			return l.orderFn(out[i]) < l.orderFn(out[j])
		})
	}
	return out
}
