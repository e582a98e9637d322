package easing

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	numberToken = regexp.MustCompile(`-?\d*\.?\d+(?:[eE][-+]?\d+)?`)
	rgbColour   = regexp.MustCompile(`^rgb\(\s*(\d{1,3})\s*,\s*(\d{1,3})\s*,\s*(\d{1,3})\s*\)$`)
	hexColour   = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
)

// Interpolate computes the value between from and to at position t using the
// named easing. t is not clamped, so overshooting easings may leave [from, to].
func Interpolate(from, to any, t float64, name string) any {
	eased := Get(name)(t)

	if a, ok := ToFloat(from); ok {
		if b, ok := ToFloat(to); ok {
			return lerp(a, b, eased)
		}
		return step(from, to, eased)
	}

	fs, ok1 := from.(string)
	ts, ok2 := to.(string)
	if !ok1 || !ok2 {
		return step(from, to, eased)
	}

	if c, ok := interpolateColour(fs, ts, eased); ok {
		return c
	}
	if s, ok := interpolateTokens(fs, ts, eased); ok {
		return s
	}
	return step(from, to, eased)
}

// InterpolateState interpolates every key present in both maps. Keys only in
// from are carried over unchanged.
func InterpolateState(from, to map[string]any, t float64, name string) map[string]any {
	out := make(map[string]any, len(from))
	for k, v := range from {
		if target, ok := to[k]; ok {
			out[k] = Interpolate(v, target, t, name)
		} else {
			out[k] = v
		}
	}
	return out
}

func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

func step(from, to any, t float64) any {
	if t >= 1 {
		return to
	}
	return from
}

// ToFloat converts any Go integer or float to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	}
	return 0, false
}

// ParseColour reads "#rgb", "#rrggbb" and "rgb(r, g, b)" strings.
func ParseColour(s string) (colorful.Color, bool) {
	s = strings.TrimSpace(s)
	if hexColour.MatchString(s) {
		c, err := colorful.Hex(s)
		if err != nil {
			return colorful.Color{}, false
		}
		return c, true
	}
	m := rgbColour.FindStringSubmatch(s)
	if m == nil {
		return colorful.Color{}, false
	}
	var rgb [3]float64
	for i := range rgb {
		n, err := strconv.Atoi(m[i+1])
		if err != nil || n > 255 {
			return colorful.Color{}, false
		}
		rgb[i] = float64(n) / 255
	}
	return colorful.Color{R: rgb[0], G: rgb[1], B: rgb[2]}, true
}

func interpolateColour(from, to string, t float64) (string, bool) {
	a, ok := ParseColour(from)
	if !ok {
		return "", false
	}
	b, ok := ParseColour(to)
	if !ok {
		return "", false
	}
	c := a.BlendRgb(b, t).Clamped()
	if strings.HasPrefix(strings.TrimSpace(from), "#") {
		return c.Hex(), true
	}
	r, g, bl := c.RGB255()
	return fmt.Sprintf("rgb(%d,%d,%d)", r, g, bl), true
}

func interpolateTokens(from, to string, t float64) (string, bool) {
	fromIdx := numberToken.FindAllStringIndex(from, -1)
	toVals := numberToken.FindAllString(to, -1)
	if len(fromIdx) == 0 || len(fromIdx) != len(toVals) {
		return "", false
	}

	var b strings.Builder
	last := 0
	for i, loc := range fromIdx {
		a, err := strconv.ParseFloat(from[loc[0]:loc[1]], 64)
		if err != nil {
			return "", false
		}
		z, err := strconv.ParseFloat(toVals[i], 64)
		if err != nil {
			return "", false
		}
		b.WriteString(from[last:loc[0]])
		b.WriteString(formatNumber(lerp(a, z, t)))
		last = loc[1]
	}
	b.WriteString(from[last:])
	return b.String(), true
}

func formatNumber(v float64) string {
	// Trim float noise such as 14.999999999999998.
	v = math.Round(v*1e6) / 1e6
	return strconv.FormatFloat(v, 'f', -1, 64)
}
