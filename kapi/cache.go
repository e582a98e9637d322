package kapi

import (
	"sort"
)

// track is the ordered list of keyframe properties sharing one name.
type track struct {
	name  string
	props []*KeyframeProperty
}

func (t *track) sort() {
	sort.SliceStable(t.props, func(i, j int) bool {
		return t.props[i].Millisecond < t.props[j].Millisecond
	})
}

// at finds the property sitting exactly on millisecond.
func (t *track) at(millisecond float64) (int, bool) {
	for i, p := range t.props {
		if p.Millisecond == millisecond {
			return i, true
		}
	}
	return -1, false
}

// latest returns the property in effect at millisecond: an exact match, or
// else the last one before it.
func (t *track) latest(millisecond float64) (*KeyframeProperty, bool) {
	var found *KeyframeProperty
	for _, p := range t.props {
		if p.Millisecond > millisecond {
			break
		}
		found = p
		if p.Millisecond == millisecond {
			break
		}
	}
	return found, found != nil
}

func (t *track) remove(i int) *KeyframeProperty {
	p := t.props[i]
	t.props = append(t.props[:i], t.props[i+1:]...)
	p.index = -1
	return p
}

func (t *track) first() (*KeyframeProperty, bool) {
	if len(t.props) == 0 {
		return nil, false
	}
	return t.props[0], true
}

func (t *track) last() (*KeyframeProperty, bool) {
	if len(t.props) == 0 {
		return nil, false
	}
	return t.props[len(t.props)-1], true
}

// timelineCache holds, for every millisecond at which any track has a
// keyframe, the property each track is governed by at that time.
type timelineCache struct {
	index     []float64
	snapshots [][]*KeyframeProperty // aligned with index; nil-free
}

// lookup returns the snapshot of the greatest cached millisecond that does
// not exceed millisecond.
func (c *timelineCache) lookup(millisecond float64) ([]*KeyframeProperty, bool) {
	i := sort.Search(len(c.index), func(i int) bool {
		return c.index[i] > millisecond
	}) - 1
	if i < 0 {
		return nil, false
	}
	return c.snapshots[i], true
}

func (c *timelineCache) len() int {
	return len(c.index)
}

// invalidateCache rebuilds the cache from scratch and re-links every track.
// It is never patched incrementally.
func (a *Actor) invalidateCache() {
	buckets := make(map[float64]map[string]*KeyframeProperty)
	for _, name := range a.trackOrder {
		for _, p := range a.tracks[name].props {
			b, ok := buckets[p.Millisecond]
			if !ok {
				b = make(map[string]*KeyframeProperty)
				buckets[p.Millisecond] = b
			}
			b[name] = p
		}
	}

	c := timelineCache{
		index:     make([]float64, 0, len(buckets)),
		snapshots: make([][]*KeyframeProperty, 0, len(buckets)),
	}
	for ms := range buckets {
		c.index = append(c.index, ms)
	}
	sort.Float64s(c.index)

	for _, ms := range c.index {
		bucket := buckets[ms]
		snapshot := make([]*KeyframeProperty, 0, len(a.trackOrder))
		for _, name := range a.trackOrder {
			if p, ok := bucket[name]; ok {
				snapshot = append(snapshot, p)
				continue
			}
			if p, ok := a.tracks[name].latest(ms); ok {
				snapshot = append(snapshot, p)
			}
		}
		c.snapshots = append(c.snapshots, snapshot)
	}
	a.cache = c

	for _, name := range a.trackOrder {
		for i, p := range a.tracks[name].props {
			p.index = i
		}
	}
}
