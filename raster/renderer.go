package raster

import (
	"image/color"

	"github.com/Ts0n/rekapi/kapi"
	"github.com/Ts0n/rekapi/render"
)

// Renderer draws the Sprites of a Kapi onto a Canvas after every update.
type Renderer struct {
	// ClearOnUpdate wipes the canvas to Background before each draw pass.
	ClearOnUpdate bool
	Background    color.Color

	canvas *Canvas
	layers *render.Layers
	detach func()
}

// NewRenderer attaches a Renderer for canvas to k.
func NewRenderer(k *kapi.Kapi, canvas *Canvas) *Renderer {
	r := new(Renderer)
	r.ClearOnUpdate = true
	r.Background = color.Transparent
	r.canvas = canvas
	r.layers = render.NewLayers(func(x kapi.Animatable) bool {
		_, ok := x.(*Sprite)
		return ok
	})
	r.detach = render.Attach(k, r.layers, r.draw)
	return r
}

// Canvas returns the canvas drawn on.
func (r *Renderer) Canvas() *Canvas { return r.canvas }

// Layers returns the draw order, for MoveToLayer and SetOrderFunc.
func (r *Renderer) Layers() *render.Layers { return r.layers }

// Close detaches the Renderer from its Kapi.
func (r *Renderer) Close() {
	r.detach()
}

func (r *Renderer) draw(ordered []kapi.Animatable) {
	if r.ClearOnUpdate {
		r.canvas.Clear(r.Background)
	}
	for _, x := range ordered {
		s := x.(*Sprite)
		if s.Draw != nil {
			s.Draw(r.canvas, s.Get())
		}
	}
	kapi.Logger().Debug("canvas drawn", "sprites", len(ordered))
}
