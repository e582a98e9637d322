package stream

import (
	"math"

	"github.com/fogleman/ease"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Ts0n/rekapi/kapi"
)

// Streak is a Painter for a bright head dragging a fading tail.
//
// State keys: head is the head's pixel position, length the tail length in
// pixels (negative trails ahead of the head, for streaks moving down the
// strip), color the head colour.
type Streak struct{}

// Paint implements Painter.
func (Streak) Paint(f *Frame, s kapi.State) {
	colour, ok := stateColour(s, "color")
	if !ok {
		return
	}
	head := stateFloat(s, "head", 0)
	length := stateFloat(s, "length", 10)
	if length == 0 {
		return
	}
	direction := 1.0
	if length < 0 {
		direction = -1
		length = -length
	}

	black := colorful.Color{}
	steps := int(math.Ceil(length))
	for i := 0; i <= steps; i++ {
		gain := ease.InQuad(1 - math.Min(float64(i)/length, 1))
		if gain <= 0 {
			continue
		}
		pixel := int(math.Round(head - direction*float64(i)))
		if pixel < 0 || pixel >= f.Len() {
			continue
		}
		f.SetPixel(pixel, black.BlendRgb(colour, gain).Clamped())
	}
}
