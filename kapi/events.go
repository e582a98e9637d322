package kapi

// Event names a lifecycle notification of the engine.
type Event int

const (
	EventAnimationComplete Event = iota
	EventPlayStateChange
	EventPlay
	EventPause
	EventStop
	EventBeforeUpdate
	EventAfterUpdate
	EventAddActor
	EventRemoveActor
	// EventBeforeDraw and EventAfterDraw are fired by renderers around the
	// draw pass that follows EventAfterUpdate.
	EventBeforeDraw
	EventAfterDraw

	eventCount
)

var eventNames = [eventCount]string{
	"animationComplete",
	"playStateChange",
	"play",
	"pause",
	"stop",
	"beforeUpdate",
	"afterUpdate",
	"addActor",
	"removeActor",
	"beforeDraw",
	"afterDraw",
}

func (e Event) String() string {
	if e < 0 || e >= eventCount {
		return "unknown"
	}
	return eventNames[e]
}

// ParseEvent returns the Event with the given name.
func ParseEvent(name string) (Event, bool) {
	for i, n := range eventNames {
		if n == name {
			return Event(i), true
		}
	}
	return 0, false
}

// A Handler receives the engine that fired the event and event-specific
// data: the Animatable for EventAddActor and EventRemoveActor, nil otherwise.
type Handler func(k *Kapi, data any)

// HandlerID identifies a registered handler for Off.
type HandlerID uint64

type subscription struct {
	id      HandlerID
	handler Handler
}

type registry struct {
	nextID   HandlerID
	handlers [eventCount][]subscription
}

func (r *registry) on(e Event, h Handler) HandlerID {
	r.nextID++
	r.handlers[e] = append(r.handlers[e], subscription{id: r.nextID, handler: h})
	return r.nextID
}

func (r *registry) off(e Event, ids []HandlerID) {
	if len(ids) == 0 {
		r.handlers[e] = nil
		return
	}
	kept := make([]subscription, 0, len(r.handlers[e]))
	for _, s := range r.handlers[e] {
		if !containsID(ids, s.id) {
			kept = append(kept, s)
		}
	}
	r.handlers[e] = kept
}

func containsID(ids []HandlerID, id HandlerID) bool {
	for _, x := range ids {
		if x == id {
			return true
		}
	}
	return false
}

// On registers h for e. Handlers run synchronously, in registration order.
// Registering or removing handlers from inside a handler is allowed but
// whether the change affects the dispatch in progress is unspecified.
func (k *Kapi) On(e Event, h Handler) HandlerID {
	if e < 0 || e >= eventCount || h == nil {
		return 0
	}
	return k.events.on(e, h)
}

// Off removes the handlers with the given ids from e, or every handler of e
// when no id is given.
func (k *Kapi) Off(e Event, ids ...HandlerID) *Kapi {
	if e < 0 || e >= eventCount {
		return k
	}
	k.events.off(e, ids)
	return k
}

// Trigger fires e with data. Renderers use it for the draw events.
func (k *Kapi) Trigger(e Event, data any) *Kapi {
	if e < 0 || e >= eventCount {
		return k
	}
	for _, s := range k.events.handlers[e] {
		s.handler(k, data)
	}
	return k
}
