package stream

import (
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/Ts0n/rekapi/easing"
	"github.com/Ts0n/rekapi/kapi"
)

const (
	twinkleLutSize = 48
	// Luminance a particle peaks at while it scintillates.
	twinkleMaxLuminance = 0.6
)

// A Twinkle is a Painter that lights a fixed set of random particles.
//
// State keys: color for the particles (default #404040) and background for
// every other pixel (left untouched when unset). When phase is set, each
// particle brightens and fades once per unit of phase, starting at its own
// offset; keyframing phase from 0 to n gives n scintillations.
type Twinkle struct {
	numParticles int
	rnd          *rand.Rand
	lut          []float64

	size int
	// particle pixel -> offset into lut
	particles map[int]int
}

// NewTwinkle creates an instance of a Twinkle object. The same seed always
// picks the same particles.
func NewTwinkle(numParticles int, seed int64) *Twinkle {
	t := new(Twinkle)
	t.numParticles = numParticles
	t.rnd = rand.New(rand.NewSource(seed))
	t.lut = easing.Table("easeInOutQuad", twinkleLutSize)
	t.particles = make(map[int]int)

	return t
}

// Particles returns the number of distinct lit pixels.
func (t *Twinkle) Particles() int { return len(t.particles) }

func (t *Twinkle) scatter(numPixels int) {
	t.size = numPixels
	t.particles = make(map[int]int)
	if numPixels == 0 {
		return
	}
	for i := 0; i < t.numParticles; i++ {
		t.particles[t.rnd.Intn(numPixels)] = t.rnd.Intn(len(t.lut))
	}
}

// Paint implements Painter.
func (t *Twinkle) Paint(f *Frame, s kapi.State) {
	numPixels := f.Len()
	if numPixels != t.size {
		t.scatter(numPixels)
	}

	foreColour, ok := stateColour(s, "color")
	if !ok {
		foreColour, _ = colorful.Hex("#404040")
	}
	backColour, hasBack := stateColour(s, "background")
	_, pulsing := s["phase"]
	step := 0
	if pulsing {
		phase := stateFloat(s, "phase", 0)
		step = int((phase - math.Floor(phase)) * float64(len(t.lut)))
	}

	for i := 0; i < numPixels; i++ {
		if offset, ok := t.particles[i]; ok {
			if pulsing {
				f.SetPixel(i, t.scintillate(foreColour, t.lut[(offset+step)%len(t.lut)]))
			} else {
				f.SetPixel(i, foreColour)
			}
		} else if hasBack {
			f.SetPixel(i, backColour)
		}
	}
}

// scintillate raises the luminance of c towards twinkleMaxLuminance by gain.
func (t *Twinkle) scintillate(c colorful.Color, gain float64) colorful.Color {
	h, ch, l := c.Hcl()
	return colorful.Hcl(h, ch, l+(twinkleMaxLuminance-l)*gain).Clamped()
}
