package stream

import (
	"math"

	"github.com/Ts0n/rekapi/kapi"
)

// A GradientTrail is a Painter that lays a gradient along the led strip.
//
// State keys: offset shifts the gradient along the strip in pixels, trail is
// the gradient's length in pixels (default: the whole strip), chroma and
// luminance set the HCL colour (default 1 and 0.05).
type GradientTrail struct {
	gradient GradientTable
}

// NewGradientTrail creates an instance of a GradientTrail object.
func NewGradientTrail(gradient GradientTable) *GradientTrail {
	g := new(GradientTrail)
	g.gradient = gradient
	if len(g.gradient) == 0 {
		g.gradient = DefaultGradient
	}

	return g
}

// Paint implements Painter.
func (g *GradientTrail) Paint(f *Frame, s kapi.State) {
	numPixels := f.Len()
	trailLength := stateFloat(s, "trail", float64(numPixels))
	if trailLength <= 0 {
		return
	}
	offset := stateFloat(s, "offset", 0)
	chroma := stateFloat(s, "chroma", 1.0)
	luminance := stateFloat(s, "luminance", 0.05)

	for i := 0; i < numPixels; i++ {
		t := math.Mod(float64(i+numPixels)-offset, trailLength) / trailLength
		if t < 0 {
			t++
		}
		f.SetPixel(i, g.gradient.Color(t, chroma, luminance))
	}
}
