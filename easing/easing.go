// Package easing maps easing names to curves and interpolates keyframe
// values between two points in time.
package easing

import (
	"sort"
	"sync"

	"github.com/fogleman/ease"
	tween "github.com/tanema/gween/ease"
)

// Linear is the name of the default easing.
const Linear = "linear"

// A Func maps a normalised position in [0, 1] to an eased position.
type Func func(t float64) float64

var (
	mu    sync.RWMutex
	funcs = map[string]Func{}
)

func init() {
	builtin := map[string]Func{
		Linear:    ease.Linear,
		"bounce":  ease.OutBounce,
		"elastic": ease.OutElastic,

		"easeInQuad":    ease.InQuad,
		"easeOutQuad":   ease.OutQuad,
		"easeInOutQuad": ease.InOutQuad,

		"easeInCubic":    ease.InCubic,
		"easeOutCubic":   ease.OutCubic,
		"easeInOutCubic": ease.InOutCubic,

		"easeInQuart":    ease.InQuart,
		"easeOutQuart":   ease.OutQuart,
		"easeInOutQuart": ease.InOutQuart,

		"easeInQuint":    ease.InQuint,
		"easeOutQuint":   ease.OutQuint,
		"easeInOutQuint": ease.InOutQuint,

		"easeInSine":    ease.InSine,
		"easeOutSine":   ease.OutSine,
		"easeInOutSine": ease.InOutSine,

		"easeInExpo":    ease.InExpo,
		"easeOutExpo":   ease.OutExpo,
		"easeInOutExpo": ease.InOutExpo,

		"easeInCirc":    ease.InCirc,
		"easeOutCirc":   ease.OutCirc,
		"easeInOutCirc": ease.InOutCirc,

		"easeInBack":    ease.InBack,
		"easeOutBack":   ease.OutBack,
		"easeInOutBack": ease.InOutBack,

		"easeInElastic":    ease.InElastic,
		"easeOutElastic":   ease.OutElastic,
		"easeInOutElastic": ease.InOutElastic,

		"easeInBounce":    ease.InBounce,
		"easeOutBounce":   ease.OutBounce,
		"easeInOutBounce": ease.InOutBounce,
	}
	for name, fn := range builtin {
		funcs[name] = fn
	}

	// fogleman/ease has no out-in family.
	outIn := map[string]tween.TweenFunc{
		"easeOutInQuad":   tween.OutInQuad,
		"easeOutInCubic":  tween.OutInCubic,
		"easeOutInQuart":  tween.OutInQuart,
		"easeOutInQuint":  tween.OutInQuint,
		"easeOutInSine":   tween.OutInSine,
		"easeOutInExpo":   tween.OutInExpo,
		"easeOutInCirc":   tween.OutInCirc,
		"easeOutInBounce": tween.OutInBounce,
	}
	for name, fn := range outIn {
		funcs[name] = FromTween(fn)
	}
}

// FromTween adapts a gween easing to a Func.
func FromTween(fn tween.TweenFunc) Func {
	return func(t float64) float64 {
		return float64(fn(float32(t), 0, 1, 1))
	}
}

// Register adds or replaces a named easing.
func Register(name string, fn Func) {
	mu.Lock()
	defer mu.Unlock()
	funcs[name] = fn
}

// RegisterTween adds or replaces a named easing backed by a gween curve.
func RegisterTween(name string, fn tween.TweenFunc) {
	Register(name, FromTween(fn))
}

// Lookup returns the easing registered under name.
func Lookup(name string) (Func, bool) {
	mu.RLock()
	defer mu.RUnlock()
	fn, ok := funcs[name]
	return fn, ok
}

// Get returns the easing registered under name, or the linear easing when
// the name is empty or unknown.
func Get(name string) Func {
	if fn, ok := Lookup(name); ok {
		return fn
	}
	return ease.Linear
}

// Names lists every registered easing, sorted.
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(funcs))
	for name := range funcs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Table samples the named easing into a look-up table that rises over the
// first half and falls back over the second.
func Table(name string, length int) []float64 {
	fn := Get(name)
	lut := make([]float64, length)
	if length < 2 {
		return lut
	}
	increment := 1.0 / float64(length/2)
	for i, j := 0, length-1; i < length/2; i, j = i+1, j-1 {
		value := fn(float64(i) * increment)
		lut[i] = value
		lut[j] = value
	}
	return lut
}
