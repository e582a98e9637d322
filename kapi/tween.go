package kapi

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/Ts0n/rekapi/easing"
)

// propertyTween is an ad-hoc transition layered over the timeline state.
type propertyTween struct {
	property string
	tween    *gween.Tween
}

// Tween animates a numeric property from its current value to to over d,
// independently of the keyframe timeline. The tween is advanced by the
// engine on every tick and overrides the timeline value until it finishes.
// Stop halts it where it is.
func (a *Actor) Tween(property string, to float64, d time.Duration, fn ease.TweenFunc) *Actor {
	if fn == nil {
		fn = ease.Linear
	}
	from, ok := easing.ToFloat(a.state[property])
	if !ok {
		from = to
	}

	tw := &propertyTween{
		property: property,
		tween:    gween.New(float32(from), float32(to), float32(d.Seconds()), fn),
	}
	for i, existing := range a.tweens {
		if existing.property == property {
			a.tweens[i] = tw
			return a
		}
	}
	a.tweens = append(a.tweens, tw)
	return a
}

// Tweening reports whether any ad-hoc tween is still running.
func (a *Actor) Tweening() bool {
	return len(a.tweens) > 0
}

// advanceTweens moves every running tween forward by dt and writes its value
// into the state. Finished tweens are dropped after their final write.
func (a *Actor) advanceTweens(dt time.Duration) {
	if len(a.tweens) == 0 {
		return
	}
	running := a.tweens[:0]
	for _, tw := range a.tweens {
		value, finished := tw.tween.Update(float32(dt.Seconds()))
		a.state[tw.property] = float64(value)
		if !finished {
			running = append(running, tw)
		}
	}
	a.tweens = running
}

// Stop halts every in-flight tween owned by the actor.
func (a *Actor) Stop() *Actor {
	a.tweens = nil
	return a
}
