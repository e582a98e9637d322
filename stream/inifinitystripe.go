package stream

import (
	"fmt"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Ts0n/rekapi/easing"
	"github.com/Ts0n/rekapi/kapi"
)

// An InfinityStripe is a Painter that repeats a palette of equal stripes
// along the strip.
//
// State keys: offset scrolls the stripes in pixels, width is the width of a
// stripe in pixels (default 20).
type InfinityStripe struct {
	colours []colorful.Color
}

// NewInfinityStripe creates an instance of an InfinityStripe object. An
// empty palette paints nothing.
func NewInfinityStripe(colours []colorful.Color) *InfinityStripe {
	s := new(InfinityStripe)
	s.colours = colours
	return s
}

// ParsePalette parses colour strings into a palette.
func ParsePalette(names []string) ([]colorful.Color, error) {
	out := make([]colorful.Color, 0, len(names))
	for _, name := range names {
		c, ok := easing.ParseColour(name)
		if !ok {
			return nil, fmt.Errorf("%w: bad colour %q", ErrInvalidConfig, name)
		}
		out = append(out, c)
	}
	return out, nil
}

// Paint implements Painter.
func (s *InfinityStripe) Paint(f *Frame, st kapi.State) {
	if len(s.colours) == 0 {
		return
	}
	width := stateFloat(st, "width", 20)
	if width <= 0 {
		return
	}
	offset := stateFloat(st, "offset", 0)
	n := float64(len(s.colours))

	for i := 0; i < f.Len(); i++ {
		stripe := math.Floor((float64(i) - offset) / width)
		index := math.Mod(stripe, n)
		if index < 0 {
			index += n
		}
		f.SetPixel(i, s.colours[int(index)])
	}
}
