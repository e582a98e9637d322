// Package kapi is a keyframe animation engine.
//
// An [Actor] holds sparse keyframes: named property values placed at
// milliseconds on a timeline, each with an easing. Keyframes are stored per
// property in tracks, and the actor keeps a cache with one snapshot per
// keyed millisecond so that any point in time resolves to a complete state:
// properties without a keyframe at that exact time carry forward from their
// latest earlier keyframe.
//
//	a := kapi.NewActor()
//	a.Keyframe(0, kapi.State{"x": 0, "color": "#ff0000"}, nil).
//		Keyframe(1000, kapi.State{"x": 100}, kapi.Ease("easeOutQuad")).
//		Keyframe(2000, kapi.State{"color": "#0000ff"}, nil)
//	a.UpdateState(500)
//	a.Get()["x"] // 75, easeOutQuad halfway between 0 and 100
//
// A [Kapi] owns actors and plays them: it maps wall-clock time onto the
// timeline, loops a fixed number of times or forever, and reports lifecycle
// events. Time advances only through the injected [Scheduler]; the default
// is a [Loop], which runs every tick on the goroutine that calls Run.
//
//	k := kapi.New()
//	k.AddActor(a)
//	k.On(kapi.EventAfterUpdate, func(k *kapi.Kapi, _ any) { draw(a.Get()) })
//	loop, _ := k.Loop()
//	loop.Post(func() { k.Play(3) })
//	loop.Run(ctx)
//
// Renderers build on [Animatable]: they embed *Actor in their own actor type
// and hook the engine's events to draw.
package kapi
