// Package raster renders kapi actors onto an in-memory 2D canvas.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/vector"
)

// kappa places cubic Bézier control points for a quarter circle.
const kappa = 0.5522847498

// Canvas is an RGBA image with shape filling helpers.
type Canvas struct {
	img *image.RGBA
	z   *vector.Rasterizer
}

// NewCanvas creates a transparent canvas.
func NewCanvas(width, height int) *Canvas {
	c := new(Canvas)
	c.img = image.NewRGBA(image.Rect(0, 0, width, height))
	c.z = vector.NewRasterizer(width, height)
	return c
}

// Width returns the width of the canvas in pixels.
func (c *Canvas) Width() int { return c.img.Bounds().Dx() }

// Height returns the height of the canvas in pixels.
func (c *Canvas) Height() int { return c.img.Bounds().Dy() }

// Image returns the backing image. It changes as the canvas is drawn on.
func (c *Canvas) Image() *image.RGBA { return c.img }

// Clear fills the whole canvas with col, replacing what was there.
func (c *Canvas) Clear(col color.Color) {
	draw.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{}, draw.Src)
}

// FillRect fills the rectangle with top-left corner (x, y).
func (c *Canvas) FillRect(x, y, w, h float64, col color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	c.begin()
	c.z.MoveTo(float32(x), float32(y))
	c.z.LineTo(float32(x+w), float32(y))
	c.z.LineTo(float32(x+w), float32(y+h))
	c.z.LineTo(float32(x), float32(y+h))
	c.z.ClosePath()
	c.fill(col)
}

// FillCircle fills the circle centred on (cx, cy), anti-aliased.
func (c *Canvas) FillCircle(cx, cy, r float64, col color.Color) {
	if r <= 0 {
		return
	}
	k := r * kappa
	c.begin()
	c.z.MoveTo(float32(cx+r), float32(cy))
	c.z.CubeTo(float32(cx+r), float32(cy+k), float32(cx+k), float32(cy+r), float32(cx), float32(cy+r))
	c.z.CubeTo(float32(cx-k), float32(cy+r), float32(cx-r), float32(cy+k), float32(cx-r), float32(cy))
	c.z.CubeTo(float32(cx-r), float32(cy-k), float32(cx-k), float32(cy-r), float32(cx), float32(cy-r))
	c.z.CubeTo(float32(cx+k), float32(cy-r), float32(cx+r), float32(cy-k), float32(cx+r), float32(cy))
	c.z.ClosePath()
	c.fill(col)
}

func (c *Canvas) begin() {
	c.z.Reset(c.Width(), c.Height())
	c.z.DrawOp = draw.Over
}

func (c *Canvas) fill(col color.Color) {
	c.z.Draw(c.img, c.img.Bounds(), image.NewUniform(col), image.Point{})
}

// Scaled returns a copy of the canvas enlarged by factor with hard pixel
// edges.
func (c *Canvas) Scaled(factor int) *image.RGBA {
	if factor <= 1 {
		out := image.NewRGBA(c.img.Bounds())
		draw.Draw(out, out.Bounds(), c.img, image.Point{}, draw.Src)
		return out
	}
	out := image.NewRGBA(image.Rect(0, 0, c.Width()*factor, c.Height()*factor))
	xdraw.NearestNeighbor.Scale(out, out.Bounds(), c.img, c.img.Bounds(), xdraw.Src, nil)
	return out
}

// EncodePNG writes the canvas as PNG to w.
func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.img)
}
