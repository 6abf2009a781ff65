package audio

import (
	"sync"

	"github.com/gopxl/beep"
)

// Tap passes a stream through unchanged and keeps the most recent mono
// samples for analysis.
type Tap struct {
	streamer beep.Streamer

	mu   sync.Mutex
	ring []float64
	pos  int
	full bool
}

func NewTap(s beep.Streamer, size int) *Tap {
	return &Tap{streamer: s, ring: make([]float64, size)}
}

func (t *Tap) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = t.streamer.Stream(samples)
	t.mu.Lock()
	for _, s := range samples[:n] {
		t.ring[t.pos] = (s[0] + s[1]) / 2
		t.pos++
		if t.pos == len(t.ring) {
			t.pos = 0
			t.full = true
		}
	}
	t.mu.Unlock()
	return n, ok
}

func (t *Tap) Err() error { return t.streamer.Err() }

// Latest copies the newest len(dst) samples into dst, oldest first. Slots
// not yet written are zero.
func (t *Tap) Latest(dst []float64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	size := len(t.ring)
	for i := range dst {
		back := len(dst) - i
		if back > size || (!t.full && back > t.pos) {
			dst[i] = 0
			continue
		}
		dst[i] = t.ring[(t.pos-back+size)%size]
	}
}
