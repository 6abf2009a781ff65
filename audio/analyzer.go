package audio

import (
	"math"
	"sync"
)

const (
	WindowSize = 64
	BinCount   = WindowSize / 2

	minDecibels = -100.0
	maxDecibels = -30.0
	smoothing   = 0.8
)

// Sampler provides the most recent mono samples.
type Sampler interface {
	Latest(dst []float64)
}

// Analyzer computes a byte-scaled magnitude spectrum over the newest
// WindowSize samples: Blackman window, DFT, exponential smoothing over time,
// then a linear map of [-100, -30] dB onto [0, 255].
type Analyzer struct {
	source Sampler

	mu       sync.RWMutex
	window   [WindowSize]float64
	samples  [WindowSize]float64
	smoothed [BinCount]float64
	bins     [BinCount]uint8
}

// NewAnalyzer reads from source. A nil source yields a permanently silent
// spectrum.
func NewAnalyzer(source Sampler) *Analyzer {
	a := &Analyzer{source: source}
	const alpha = 0.16
	for i := range a.window {
		x := 2 * math.Pi * float64(i) / WindowSize
		a.window[i] = (1-alpha)/2 - 0.5*math.Cos(x) + alpha/2*math.Cos(2*x)
	}
	return a
}

// Update pulls a fresh window from the source and recomputes the bins.
func (a *Analyzer) Update() {
	if a.source == nil {
		return
	}
	a.source.Latest(a.samples[:])

	var bins [BinCount]uint8
	for k := range BinCount {
		var re, im float64
		for n, s := range a.samples {
			v := s * a.window[n]
			angle := -2 * math.Pi * float64(k*n) / WindowSize
			re += v * math.Cos(angle)
			im += v * math.Sin(angle)
		}
		mag := math.Hypot(re, im) / WindowSize
		a.smoothed[k] = smoothing*a.smoothed[k] + (1-smoothing)*mag
		bins[k] = toByte(a.smoothed[k])
	}

	a.mu.Lock()
	a.bins = bins
	a.mu.Unlock()
}

func toByte(mag float64) uint8 {
	if mag <= 0 {
		return 0
	}
	db := 20 * math.Log10(mag)
	v := math.Floor(255 / (maxDecibels - minDecibels) * (db - minDecibels))
	return uint8(max(0, min(255, v)))
}

// Bins returns a copy of the latest spectrum.
func (a *Analyzer) Bins() []uint8 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]uint8, BinCount)
	copy(out, a.bins[:])
	return out
}

// Intensity is the mean of the first n bins scaled to [0, 1]. The divisor
// is always n, so a short spectrum reads quieter rather than louder.
func Intensity(bins []uint8, n int) float64 {
	if n <= 0 {
		return 0
	}
	sum := 0
	for _, b := range bins[:min(n, len(bins))] {
		sum += int(b)
	}
	return float64(sum) / float64(n*255)
}
