package render

import (
	"github.com/Ts0n/rekapi/kapi"
)

// A DrawPass draws the given actors, bottom layer first.
type DrawPass func(ordered []kapi.Animatable)

// Attach keeps l in step with the actors of k and runs draw after every
// engine update, between EventBeforeDraw and EventAfterDraw. Actors already
// on k are picked up straight away. The returned func undoes the attachment.
func Attach(k *kapi.Kapi, l *Layers, draw DrawPass) (detach func()) {
	for _, x := range k.Actors() {
		l.Add(x)
	}

	added := k.On(kapi.EventAddActor, func(_ *kapi.Kapi, data any) {
		if x, ok := data.(kapi.Animatable); ok {
			l.Add(x)
		}
	})
	removed := k.On(kapi.EventRemoveActor, func(_ *kapi.Kapi, data any) {
		if x, ok := data.(kapi.Animatable); ok {
			l.Remove(x)
		}
	})
	updated := k.On(kapi.EventAfterUpdate, func(k *kapi.Kapi, _ any) {
		k.Trigger(kapi.EventBeforeDraw, nil)
		draw(l.Ordered())
		k.Trigger(kapi.EventAfterDraw, nil)
	})

	return func() {
		k.Off(kapi.EventAddActor, added)
		k.Off(kapi.EventRemoveActor, removed)
		k.Off(kapi.EventAfterUpdate, updated)
	}
}
