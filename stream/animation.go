package stream

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Ts0n/rekapi/easing"
	"github.com/Ts0n/rekapi/kapi"
)

// A Painter renders an actor's state onto a Frame.
type Painter interface {
	Paint(f *Frame, s kapi.State)
}

// PainterFunc adapts a plain function to Painter.
type PainterFunc func(f *Frame, s kapi.State)

// Paint implements Painter.
func (fn PainterFunc) Paint(f *Frame, s kapi.State) { fn(f, s) }

// A Strip is an actor the Streamer paints onto the led strip.
type Strip struct {
	*kapi.Actor
	Painter Painter
}

// NewStrip creates a Strip painted by p.
func NewStrip(p Painter, optFns ...func(o *kapi.ActorOptions)) *Strip {
	s := new(Strip)
	s.Actor = kapi.NewActor(optFns...)
	s.Painter = p
	return s
}

func stateFloat(s kapi.State, key string, fallback float64) float64 {
	if v, ok := easing.ToFloat(s[key]); ok {
		return v
	}
	return fallback
}

func stateColour(s kapi.State, key string) (colorful.Color, bool) {
	switch v := s[key].(type) {
	case string:
		return easing.ParseColour(v)
	case colorful.Color:
		return v, true
	}
	return colorful.Color{}, false
}
