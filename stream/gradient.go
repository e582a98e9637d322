package stream

import (
	"github.com/lucasb-eyer/go-colorful"
)

// GradientStop places a hue at a position between 0 and 1.
type GradientStop struct {
	Hue float64 `yaml:"hue"`
	Pos float64 `yaml:"pos"`
}

// GradientTable stores a look-up table of colours interpolated by hue.
type GradientTable []GradientStop

// DefaultGradient runs once round the colour wheel.
var DefaultGradient = GradientTable{
	{0.0, 0.0},
	{6.0, 0.04},   // Pink
	{87.0, 0.14},  // Red
	{88.0, 0.28},  // Orange
	{98.0, 0.42},  // Yellow
	{180.0, 0.56}, // Green
	{190.0, 0.70}, // Turquoise
	{320.0, 0.84}, // Blue
	{328.0, 0.91}, // Violet
	{360.0, 1.0},  // Pink wrap
}

// Color gets a colour at the specified point on the look-up table, with
// chroma c and luminance l.
func (g GradientTable) Color(t, c, l float64) colorful.Color {
	if len(g) == 0 {
		return colorful.Color{}
	}
	for i := 0; i < len(g)-1; i++ {
		c1 := g[i]
		c2 := g[i+1]
		if c1.Pos <= t && t <= c2.Pos {
			if c2.Pos == c1.Pos {
				return colorful.Hcl(c1.Hue, c, l).Clamped()
			}
			h := (((t - c1.Pos) / (c2.Pos - c1.Pos)) * (c2.Hue - c1.Hue)) + c1.Hue
			return colorful.Hcl(h, c, l).Clamped()
		}
	}

	// Before the first stop or at (or past) the last one.
	if t < g[0].Pos {
		return colorful.Hcl(g[0].Hue, c, l).Clamped()
	}
	return colorful.Hcl(g[len(g)-1].Hue, c, l).Clamped()
}
