// Package audio generates the background soundtrack and turns it into the
// frequency spectrum the visuals react to.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

const SampleRate = beep.SampleRate(44100)

const (
	droneGain     = 0.05
	pulsePeak     = 0.02
	pulseFloor    = 0.0001
	pulsePeriod   = 500 * time.Millisecond
	pulseAttack   = 50 * time.Millisecond
	pulseDecayEnd = 300 * time.Millisecond
)

type SynthConfig struct {
	DroneHz float64
	PulseHz float64
	// Volume is the master gain in [0, 1].
	Volume float64
}

// sine is an endless sine oscillator.
type sine struct {
	freq  float64
	gain  float64
	phase float64
	rate  beep.SampleRate
}

func (s *sine) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := s.gain * math.Sin(2*math.Pi*s.phase)
		samples[i][0] = v
		samples[i][1] = v
		s.phase += s.freq / float64(s.rate)
		s.phase -= math.Floor(s.phase)
	}
	return len(samples), true
}

func (s *sine) Err() error { return nil }

// pulse is an endless square wave whose gain is retriggered every period:
// an exponential rise to the peak, an exponential fall to the floor, then
// silence until the next trigger.
type pulse struct {
	freq     float64
	phase    float64
	position int
	period   int
	attack   int
	decayEnd int
	rate     beep.SampleRate
}

func newPulse(freq float64, rate beep.SampleRate) *pulse {
	return &pulse{
		freq:     freq,
		period:   rate.N(pulsePeriod),
		attack:   rate.N(pulseAttack),
		decayEnd: rate.N(pulseDecayEnd),
		rate:     rate,
	}
}

// gainAt returns the envelope gain n samples after a trigger.
func (p *pulse) gainAt(n int) float64 {
	switch {
	case n < p.attack:
		return pulseFloor * math.Pow(pulsePeak/pulseFloor, float64(n)/float64(p.attack))
	case n < p.decayEnd:
		t := float64(n-p.attack) / float64(p.decayEnd-p.attack)
		return pulsePeak * math.Pow(pulseFloor/pulsePeak, t)
	default:
		return 0
	}
}

func (p *pulse) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		v := 1.0
		if p.phase >= 0.5 {
			v = -1
		}
		v *= p.gainAt(p.position % p.period)
		samples[i][0] = v
		samples[i][1] = v
		p.phase += p.freq / float64(p.rate)
		p.phase -= math.Floor(p.phase)
		p.position++
	}
	return len(samples), true
}

func (p *pulse) Err() error { return nil }

// Synth is the soundtrack: a low drone under a rhythmic square pulse. It is
// safe to stream from an audio goroutine while the game toggles it.
type Synth struct {
	mu     sync.Mutex
	mixer  *beep.Mixer
	ctrl   *beep.Ctrl
	volume *effects.Volume
}

func NewSynth(cfg SynthConfig) *Synth {
	mixer := &beep.Mixer{}
	mixer.Add(
		&sine{freq: cfg.DroneHz, gain: droneGain, rate: SampleRate},
		newPulse(cfg.PulseHz, SampleRate),
	)
	ctrl := &beep.Ctrl{Streamer: mixer}
	s := &Synth{mixer: mixer, ctrl: ctrl, volume: &effects.Volume{Streamer: ctrl, Base: 2}}
	s.SetVolume(cfg.Volume)
	return s
}

func (s *Synth) Stream(samples [][2]float64) (n int, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.volume.Stream(samples)
}

func (s *Synth) Err() error { return nil }

// SetPaused silences the synth without losing oscillator phase.
func (s *Synth) SetPaused(paused bool) {
	s.mu.Lock()
	s.ctrl.Paused = paused
	s.mu.Unlock()
}

func (s *Synth) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Paused
}

// SetVolume sets the master gain. Zero or less mutes.
func (s *Synth) SetVolume(v float64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v <= 0 {
		s.volume.Silent = true
		return
	}
	s.volume.Silent = false
	s.volume.Volume = math.Log2(min(v, 1))
}
