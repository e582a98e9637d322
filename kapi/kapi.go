package kapi

import (
	"math"
	"time"
)

// Infinite makes Play loop until paused or stopped.
const Infinite = -1

// PlayState is the state of the engine's play state machine.
type PlayState int

const (
	Stopped PlayState = iota
	Paused
	Playing
)

func (s PlayState) String() string {
	switch s {
	case Stopped:
		return "stopped"
	case Paused:
		return "paused"
	case Playing:
		return "playing"
	default:
		return "unknown"
	}
}

// Config holds the engine's tunables.
type Config struct {
	// FPS is the number of ticks per second requested from the Scheduler.
	FPS float64
	// Context is inherited by actors that have none when they are added.
	Context any
}

// DefaultConfig runs at 60 frames per second with no context.
var DefaultConfig = Config{
	FPS: 60,
}

// Options configures a Kapi.
type Options struct {
	Config Config

	// Scheduler drives the tick loop. Defaults to a Loop, which must then be
	// run by the caller; see Kapi.Loop.
	Scheduler Scheduler

	// Clock defaults to the Scheduler when it implements Clock, else to
	// SystemClock.
	Clock Clock
}

// Kapi owns a set of actors and maps wall-clock time onto their timelines.
// It is not safe for concurrent use: all calls, including scheduled ticks,
// must happen on one goroutine.
type Kapi struct {
	config    Config
	scheduler Scheduler
	clock     Clock

	actors map[string]Animatable
	order  []string
	events registry

	playState       PlayState
	timesToIterate  int
	animationLength float64
	lastUpdated     float64

	pending   Handle
	loopStart time.Time
	pausedAt  time.Time
	lastTick  time.Time
}

// New creates a stopped engine with no actors.
func New(optFns ...func(o *Options)) *Kapi {
	opts := Options{
		Config: DefaultConfig,
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Config.FPS <= 0 {
		opts.Config.FPS = DefaultConfig.FPS
	}
	if opts.Scheduler == nil {
		opts.Scheduler = NewLoop()
	}
	if opts.Clock == nil {
		if c, ok := opts.Scheduler.(Clock); ok {
			opts.Clock = c
		} else {
			opts.Clock = SystemClock{}
		}
	}

	return &Kapi{
		config:         opts.Config,
		scheduler:      opts.Scheduler,
		clock:          opts.Clock,
		actors:         make(map[string]Animatable),
		playState:      Stopped,
		timesToIterate: Infinite,
	}
}

// Loop returns the engine's scheduler when it is a Loop.
func (k *Kapi) Loop() (*Loop, bool) {
	l, ok := k.scheduler.(*Loop)
	return l, ok
}

// Context returns the context inherited by actors.
func (k *Kapi) Context() any { return k.config.Context }

// AddActor attaches an actor. Adding an actor twice has no effect.
func (k *Kapi) AddActor(x Animatable) *Kapi {
	a := x.base()
	if _, ok := k.actors[a.id]; ok {
		return k
	}

	if a.context == nil {
		a.context = k.config.Context
	}
	a.kapi = k
	a.fps = k.config.FPS
	k.actors[a.id] = x
	k.order = append(k.order, a.id)

	if a.setup != nil {
		a.setup(a)
	}
	k.recalculateAnimationLength()
	Logger().Info("actor added", "actor", a.id, "animation_length", k.animationLength)
	k.Trigger(EventAddActor, x)
	return k
}

// RemoveActor detaches an actor. The actor itself is left intact and may be
// added again.
func (k *Kapi) RemoveActor(x Animatable) *Kapi {
	a := x.base()
	if _, ok := k.actors[a.id]; !ok {
		Logger().Debug("actor not attached", "actor", a.id)
		return k
	}

	delete(k.actors, a.id)
	for i, id := range k.order {
		if id == a.id {
			k.order = append(k.order[:i], k.order[i+1:]...)
			break
		}
	}
	a.kapi = nil

	if a.teardown != nil {
		a.teardown(a)
	}
	k.recalculateAnimationLength()
	Logger().Info("actor removed", "actor", a.id, "animation_length", k.animationLength)
	k.Trigger(EventRemoveActor, x)
	return k
}

// Actor looks up an attached actor by id.
func (k *Kapi) Actor(id string) (Animatable, bool) {
	x, ok := k.actors[id]
	return x, ok
}

// ActorIDs lists attached actors in the order they were added.
func (k *Kapi) ActorIDs() []string {
	out := make([]string, len(k.order))
	copy(out, k.order)
	return out
}

// Actors lists attached actors in the order they were added.
func (k *Kapi) Actors() []Animatable {
	out := make([]Animatable, 0, len(k.order))
	for _, id := range k.order {
		out = append(out, k.actors[id])
	}
	return out
}

// ActorCount returns the number of attached actors.
func (k *Kapi) ActorCount() int { return len(k.actors) }

func (k *Kapi) recalculateAnimationLength() {
	var length float64
	for _, x := range k.actors {
		if end := x.End(); end > length {
			length = end
		}
	}
	k.animationLength = length
}

// AnimationLength returns the latest end over all actors, in milliseconds.
func (k *Kapi) AnimationLength() float64 { return k.animationLength }

// LastUpdatedMillisecond returns the timeline position of the last update.
func (k *Kapi) LastUpdatedMillisecond() float64 { return k.lastUpdated }

// LastPositionUpdated returns the last updated position as a fraction of
// the animation length, or 0 for an empty animation.
func (k *Kapi) LastPositionUpdated() float64 {
	if k.animationLength == 0 {
		return 0
	}
	return k.lastUpdated / k.animationLength
}

// FPS returns the tick rate.
func (k *Kapi) FPS() float64 { return k.config.FPS }

// SetFPS changes the tick rate from the next scheduled tick on.
func (k *Kapi) SetFPS(fps float64) *Kapi {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		Logger().Warn("framerate rejected", "fps", fps)
		return k
	}
	k.config.FPS = fps
	for _, x := range k.actors {
		x.base().fps = fps
	}
	return k
}

// PlayState returns the current play state.
func (k *Kapi) PlayState() PlayState { return k.playState }

// IsPlaying reports whether the engine is playing.
func (k *Kapi) IsPlaying() bool { return k.playState == Playing }

// Play starts or resumes the animation. iterations limits how many times it
// loops; Infinite, or any value below 1, loops forever. Resuming from
// Paused keeps the position the animation was paused at.
func (k *Kapi) Play(iterations int) *Kapi {
	k.cancel()

	now := k.clock.Now()
	if k.playState == Paused {
		k.loopStart = k.loopStart.Add(now.Sub(k.pausedAt))
	} else {
		k.loopStart = now
	}
	if iterations < 1 {
		iterations = Infinite
	}
	k.timesToIterate = iterations
	k.lastTick = now
	k.playState = Playing
	k.schedule()

	Logger().Info("play", "iterations", iterations, "animation_length", k.animationLength)
	k.Trigger(EventPlayStateChange, nil)
	k.Trigger(EventPlay, nil)
	return k
}

// PlayFrom plays the animation starting at millisecond.
func (k *Kapi) PlayFrom(millisecond float64, iterations int) *Kapi {
	k.Play(iterations)
	k.loopStart = k.clock.Now().Add(-msToDuration(millisecond))
	return k
}

// PlayFromCurrent plays from the last updated position.
func (k *Kapi) PlayFromCurrent(iterations int) *Kapi {
	return k.PlayFrom(k.lastUpdated, iterations)
}

// Pause freezes the animation at its current position.
func (k *Kapi) Pause() *Kapi {
	if k.playState == Paused {
		return k
	}
	k.cancel()
	now := k.clock.Now()
	if k.playState == Stopped {
		k.loopStart = now.Add(-msToDuration(k.lastUpdated))
	}
	k.playState = Paused
	k.pausedAt = now

	Logger().Info("pause", "millisecond", k.lastUpdated)
	k.Trigger(EventPlayStateChange, nil)
	k.Trigger(EventPause, nil)
	return k
}

// Stop halts the animation and every actor's in-flight tweens.
func (k *Kapi) Stop() *Kapi {
	k.cancel()
	k.playState = Stopped
	for _, x := range k.Actors() {
		x.Stop()
	}

	Logger().Info("stop", "millisecond", k.lastUpdated)
	k.Trigger(EventPlayStateChange, nil)
	k.Trigger(EventStop, nil)
	return k
}

// Update resolves every actor at millisecond and runs their update hooks,
// bracketed by EventBeforeUpdate and EventAfterUpdate.
func (k *Kapi) Update(millisecond float64) *Kapi {
	k.update(millisecond, 0)
	return k
}

// UpdateCurrent re-resolves every actor at the last updated position.
func (k *Kapi) UpdateCurrent() *Kapi {
	return k.Update(k.lastUpdated)
}

func (k *Kapi) update(millisecond float64, dt time.Duration) {
	k.Trigger(EventBeforeUpdate, nil)
	// Hooks may add or remove actors mid-pass.
	for _, id := range k.ActorIDs() {
		x, ok := k.actors[id]
		if !ok {
			continue
		}
		a := x.base()
		a.UpdateState(millisecond)
		a.advanceTweens(dt)
		if a.update != nil {
			a.update(a.context, a.Get())
		}
	}
	k.lastUpdated = millisecond
	k.Trigger(EventAfterUpdate, nil)
}

// loopPosition maps time elapsed since the loop started onto the timeline.
// An empty animation is complete straight away.
func (k *Kapi) loopPosition(elapsed float64) (position float64, complete bool) {
	if k.animationLength <= 0 {
		return 0, true
	}
	iteration := math.Floor(elapsed / k.animationLength)
	if k.timesToIterate != Infinite && iteration >= float64(k.timesToIterate) {
		return k.animationLength, true
	}
	return math.Mod(elapsed, k.animationLength), false
}

func (k *Kapi) tick() {
	k.pending = 0
	if k.playState != Playing {
		return
	}

	now := k.clock.Now()
	dt := now.Sub(k.lastTick)
	k.lastTick = now

	position, complete := k.loopPosition(durationToMs(now.Sub(k.loopStart)))
	k.update(position, dt)

	// A handler may have paused, stopped or restarted the engine.
	if k.playState != Playing || k.pending != 0 {
		return
	}
	if complete {
		k.Stop()
		k.Trigger(EventAnimationComplete, nil)
		return
	}
	k.schedule()
}

func (k *Kapi) schedule() {
	delay := time.Duration(float64(time.Second) / k.config.FPS)
	k.pending = k.scheduler.Schedule(k.tick, delay)
}

func (k *Kapi) cancel() {
	if k.pending != 0 {
		k.scheduler.Cancel(k.pending)
		k.pending = 0
	}
}

func msToDuration(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

func durationToMs(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
