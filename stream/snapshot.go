package stream

import (
	"image/color"
	"io"

	"github.com/Ts0n/rekapi/raster"
)

// SnapshotScale is the size in image pixels of one led in a snapshot.
const SnapshotScale = 8

// Snapshot writes the current frame as a PNG strip of round leds on black.
func (s *Streamer) Snapshot(w io.Writer) error {
	return frameImage(s.frame).EncodePNG(w)
}

func frameImage(f *Frame) *raster.Canvas {
	c := raster.NewCanvas(f.Len()*SnapshotScale, SnapshotScale)
	c.Clear(color.Black)
	half := float64(SnapshotScale) / 2
	for i := 0; i < f.Len(); i++ {
		c.FillCircle(float64(i*SnapshotScale)+half, half, half*0.8, f.Pixel(i).Clamped())
	}
	return c
}
