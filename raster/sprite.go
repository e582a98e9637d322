package raster

import (
	"image/color"

	"github.com/Ts0n/rekapi/easing"
	"github.com/Ts0n/rekapi/kapi"
)

// A DrawFunc paints one actor's state onto the canvas.
type DrawFunc func(c *Canvas, s kapi.State)

// A Sprite is an actor the Renderer can draw.
type Sprite struct {
	*kapi.Actor
	Draw DrawFunc
}

// NewSprite creates a Sprite drawn by draw.
func NewSprite(draw DrawFunc, optFns ...func(o *kapi.ActorOptions)) *Sprite {
	s := new(Sprite)
	s.Actor = kapi.NewActor(optFns...)
	s.Draw = draw
	return s
}

// Rect draws the state's x, y, width and height as a filled rectangle in
// its color.
func Rect(c *Canvas, s kapi.State) {
	c.FillRect(number(s, "x", 0), number(s, "y", 0),
		number(s, "width", 0), number(s, "height", 0),
		colour(s, "color", color.Black))
}

// Circle draws the state's x, y and radius as a filled circle in its color.
func Circle(c *Canvas, s kapi.State) {
	c.FillCircle(number(s, "x", 0), number(s, "y", 0),
		number(s, "radius", 0), colour(s, "color", color.Black))
}

func number(s kapi.State, key string, fallback float64) float64 {
	if v, ok := easing.ToFloat(s[key]); ok {
		return v
	}
	return fallback
}

func colour(s kapi.State, key string, fallback color.Color) color.Color {
	switch v := s[key].(type) {
	case string:
		if c, ok := easing.ParseColour(v); ok {
			return c
		}
	case color.Color:
		return v
	}
	return fallback
}
