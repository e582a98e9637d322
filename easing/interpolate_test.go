package easing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInterpolateNumbers(t *testing.T) {
	assert.InDelta(t, 50.0, Interpolate(0, 100, 0.5, Linear), 1e-9)
	assert.InDelta(t, 25.0, Interpolate(0.0, 100.0, 0.5, "easeInQuad"), 1e-9)
	assert.InDelta(t, -10.0, Interpolate(int64(-20), float32(0), 0.5, Linear), 1e-9)
}

func TestInterpolateHexColour(t *testing.T) {
	assert.Equal(t, "#808080", Interpolate("#000000", "#ffffff", 0.5, Linear))
	assert.Equal(t, "#ff0000", Interpolate("#f00", "#00f", 0, Linear))
	assert.Equal(t, "#0000ff", Interpolate("#f00", "#00f", 1, Linear))
}

func TestInterpolateRGBColour(t *testing.T) {
	assert.Equal(t, "rgb(128,128,128)", Interpolate("rgb(0, 0, 0)", "#ffffff", 0.5, Linear))
}

func TestInterpolateTokens(t *testing.T) {
	assert.Equal(t, "15px 30px", Interpolate("10px 20px", "20px 40px", 0.5, Linear))
	assert.Equal(t, "rotate(45deg)", Interpolate("rotate(0deg)", "rotate(90deg)", 0.5, Linear))
}

func TestInterpolateSteps(t *testing.T) {
	assert.Equal(t, true, Interpolate(true, false, 0.5, Linear))
	assert.Equal(t, false, Interpolate(true, false, 1, Linear))
	assert.Equal(t, "a", Interpolate("a", "b", 0.99, Linear))
	assert.Equal(t, "1 2", Interpolate("1 2", "3", 0.5, Linear))
}

func TestInterpolateState(t *testing.T) {
	out := InterpolateState(
		map[string]any{"x": 0, "y": 10, "only": "kept"},
		map[string]any{"x": 100, "y": 20},
		0.5, Linear)
	assert.InDelta(t, 50.0, out["x"], 1e-9)
	assert.InDelta(t, 15.0, out["y"], 1e-9)
	assert.Equal(t, "kept", out["only"])
}

func TestParseColour(t *testing.T) {
	c, ok := ParseColour("rgb(255,0,0)")
	assert.True(t, ok)
	assert.InDelta(t, 1.0, c.R, 1e-9)

	_, ok = ParseColour("rgb(300,0,0)")
	assert.False(t, ok)
	_, ok = ParseColour("red")
	assert.False(t, ok)
}
