package stream

import (
	"encoding/binary"
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// DefaultPixels is the length of the strip on the ledrx device.
const DefaultPixels = 500

// MaxPixels is the longest frame the binary format can carry.
const MaxPixels = math.MaxUint16

// Frame represents a frame of RGB pixels to display on an ledrx device.
type Frame struct {
	pixels []colorful.Color
}

// NewFrame creates a black Frame of n pixels.
func NewFrame(n int) *Frame {
	if n < 0 {
		n = 0
	}
	if n > MaxPixels {
		n = MaxPixels
	}
	f := new(Frame)
	f.pixels = make([]colorful.Color, n)
	return f
}

// Len returns the number of pixels.
func (f *Frame) Len() int { return len(f.pixels) }

// Pixel returns pixel i, or black when i is out of range.
func (f *Frame) Pixel(i int) colorful.Color {
	if i < 0 || i >= len(f.pixels) {
		return colorful.Color{}
	}
	return f.pixels[i]
}

// SetPixel sets pixel i. Out of range pixels are ignored.
func (f *Frame) SetPixel(i int, c colorful.Color) {
	if i < 0 || i >= len(f.pixels) {
		return
	}
	f.pixels[i] = c
}

// FillRange sets pixels from (inclusive) to to (exclusive), clipped to the
// frame.
func (f *Frame) FillRange(from, to int, c colorful.Color) {
	if from < 0 {
		from = 0
	}
	if to > len(f.pixels) {
		to = len(f.pixels)
	}
	for i := from; i < to; i++ {
		f.pixels[i] = c
	}
}

// Fill sets every pixel to c.
func (f *Frame) Fill(c colorful.Color) {
	f.FillRange(0, len(f.pixels), c)
}

// Clear blacks out the frame.
func (f *Frame) Clear() {
	f.Fill(colorful.Color{})
}

// Copy returns an independent copy of the frame.
func (f *Frame) Copy() *Frame {
	out := NewFrame(len(f.pixels))
	copy(out.pixels, f.pixels)
	return out
}

// InterpolateFrame merges two frames in HCL space. The result has f's length;
// pixels f2 lacks blend towards black.
func (f *Frame) InterpolateFrame(f2 *Frame, transitionPoint float64) *Frame {
	out := NewFrame(len(f.pixels))
	for i := range f.pixels {
		out.pixels[i] = f.pixels[i].BlendHcl(f2.Pixel(i), transitionPoint).Clamped()
	}

	return out
}

// MarshalBinary converts a Frame into binary data: a little-endian uint16
// pixel count followed by one RGB triplet per pixel.
func (f *Frame) MarshalBinary() (data []byte, err error) {
	data = make([]byte, 2, (len(f.pixels)*3)+2)
	binary.LittleEndian.PutUint16(data, uint16(len(f.pixels)))
	for _, p := range f.pixels {
		r, g, b := p.Clamped().RGB255()
		data = append(data, r, g, b)
	}

	return data, nil
}
