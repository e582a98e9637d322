package stream

import (
	"math"

	"github.com/Ts0n/rekapi/kapi"
)

// Segment is a Painter that lights a run of pixels: state keys start and
// length (in pixels, rounded to the nearest pixel) and color.
type Segment struct{}

// Paint implements Painter.
func (Segment) Paint(f *Frame, s kapi.State) {
	c, ok := stateColour(s, "color")
	if !ok {
		return
	}
	start := stateFloat(s, "start", 0)
	length := stateFloat(s, "length", 0)
	if length <= 0 {
		return
	}
	f.FillRange(int(math.Round(start)), int(math.Round(start+length)), c)
}

// Solid is a Painter that fills the whole strip with state key color.
type Solid struct{}

// Paint implements Painter.
func (Solid) Paint(f *Frame, s kapi.State) {
	if c, ok := stateColour(s, "color"); ok {
		f.Fill(c)
	}
}
