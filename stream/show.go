package stream

import (
	"fmt"

	"github.com/Ts0n/rekapi/kapi"
)

var painters = map[string]func(a ActorConfig) (Painter, error){
	"solid":   func(ActorConfig) (Painter, error) { return Solid{}, nil },
	"segment": func(ActorConfig) (Painter, error) { return Segment{}, nil },
	"streak":  func(ActorConfig) (Painter, error) { return Streak{}, nil },
	"gradient": func(a ActorConfig) (Painter, error) {
		return NewGradientTrail(a.Gradient), nil
	},
	"twinkle": func(a ActorConfig) (Painter, error) {
		particles := a.Particles
		if particles <= 0 {
			particles = 60
		}
		return NewTwinkle(particles, a.Seed), nil
	},
	"stripes": func(a ActorConfig) (Painter, error) {
		palette, err := ParsePalette(a.Palette)
		if err != nil {
			return nil, err
		}
		return NewInfinityStripe(palette), nil
	},
}

// NewPainter builds the Painter named by a.Painter.
func NewPainter(a ActorConfig) (Painter, error) {
	build, ok := painters[a.Painter]
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownPainter, a.Painter)
	}
	return build(a)
}

// NewShowStrip builds the Strip described by a, with its keyframes set.
func NewShowStrip(a ActorConfig) (*Strip, error) {
	p, err := NewPainter(a)
	if err != nil {
		return nil, err
	}
	strip := NewStrip(p)
	strip.Data["name"] = a.Name
	for _, kf := range a.Keyframes {
		strip.Keyframe(kf.At, kapi.State(kf.State), keyframeEasing(kf))
	}
	return strip, nil
}

func keyframeEasing(kf KeyframeConfig) kapi.Easing {
	if len(kf.Easings) == 0 {
		return kapi.Ease(kf.Easing)
	}
	m := make(kapi.EaseMap, len(kf.State))
	for name := range kf.State {
		if e, ok := kf.Easings[name]; ok {
			m[name] = e
		} else if kf.Easing != "" {
			m[name] = kf.Easing
		}
	}
	return m
}

// BuildShow adds one Strip per configured actor to k, in order. Nothing is
// added when any actor is invalid.
func BuildShow(k *kapi.Kapi, show ShowConfig) ([]*Strip, error) {
	strips := make([]*Strip, 0, len(show.Actors))
	for i, a := range show.Actors {
		strip, err := NewShowStrip(a)
		if err != nil {
			return nil, fmt.Errorf("show.actors[%d]: %w", i, err)
		}
		strips = append(strips, strip)
	}

	for _, strip := range strips {
		k.AddActor(strip)
	}
	return strips, nil
}
