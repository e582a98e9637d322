package stream

import (
	"github.com/Ts0n/rekapi/kapi"
	"github.com/Ts0n/rekapi/render"
)

// Streamer that paints the Strips of a Kapi into a Frame after every update
// and streams it to an ledrx device.
type Streamer struct {
	// ClearOnUpdate blacks out the frame before each draw pass.
	ClearOnUpdate bool
	// Persistence keeps this share of the previous frame, leaving trails
	// behind moving strips. Zero disables it.
	Persistence float64

	publisher Publisher
	topic     string
	frame     *Frame
	layers    *render.Layers
	detach    func()
}

// NewStreamer creates an instance of a Streamer attached to k.
func NewStreamer(k *kapi.Kapi, publisher Publisher, topic string, numPixels int) *Streamer {
	s := new(Streamer)
	s.ClearOnUpdate = true
	s.publisher = publisher
	s.topic = topic
	s.frame = NewFrame(numPixels)
	s.layers = render.NewLayers(func(x kapi.Animatable) bool {
		_, ok := x.(*Strip)
		return ok
	})
	s.detach = render.Attach(k, s.layers, s.draw)
	return s
}

// Frame returns the last drawn frame.
func (s *Streamer) Frame() *Frame { return s.frame }

// Layers returns the draw order, for MoveToLayer and SetOrderFunc.
func (s *Streamer) Layers() *render.Layers { return s.layers }

// Close detaches the Streamer from its Kapi.
func (s *Streamer) Close() {
	s.detach()
}

func (s *Streamer) draw(ordered []kapi.Animatable) {
	var previous *Frame
	if s.Persistence > 0 {
		previous = s.frame.Copy()
	}
	if s.ClearOnUpdate {
		s.frame.Clear()
	}
	for _, x := range ordered {
		strip := x.(*Strip)
		if strip.Painter != nil {
			strip.Painter.Paint(s.frame, strip.Get())
		}
	}
	if previous != nil {
		s.frame = s.frame.InterpolateFrame(previous, s.Persistence)
	}

	_ = s.SendFrame()
}

// SendFrame sends the current frame as binary to the ledrx device.
func (s *Streamer) SendFrame() error {
	b, _ := s.frame.MarshalBinary()
	if err := s.publisher.Publish(s.topic, b); err != nil {
		kapi.Logger().Warn("frame not published", "topic", s.topic, "error", err)
		return err
	}
	return nil
}
