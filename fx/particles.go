// Package fx holds the audio-reactive background: particle entities and
// the systems that move them.
package fx

import (
	"image/color"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/plus3/neonpulse/audio"
	"github.com/plus3/neonpulse/ecs"
)

const (
	ParticleCount = 60
	// frameRate converts per-frame particle speeds to per-second ones.
	frameRate = 60.0
)

type Particle struct {
	X, Y   float64
	VX, VY float64
	Size   float64
	Hue    float64
}

// Color is the particle's translucent fill: hsla(hue, 70%, 50%, 0.3).
func (p *Particle) Color() color.RGBA {
	c := colorful.Hsl(p.Hue, 0.7, 0.5)
	a := 0.3
	return color.RGBA{
		R: uint8(c.R * a * 255),
		G: uint8(c.G * a * 255),
		B: uint8(c.B * a * 255),
		A: uint8(a * 255),
	}
}

// Bounds is the screen area particles wrap around.
type Bounds struct {
	W, H float64
}

// Spectrum is the frame's audio spectrum and the intensities derived from
// it for each consumer.
type Spectrum struct {
	Bins []uint8
	// Board drives block glow, Sidebar the panel scale and All the
	// particle speed.
	Board, Sidebar, All float64
}

func (s *Spectrum) Set(bins []uint8) {
	s.Bins = bins
	s.Board = audio.Intensity(bins, 10)
	s.Sidebar = audio.Intensity(bins, 5)
	s.All = audio.Intensity(bins, len(bins))
}

// Glow is the extra blur radius for blocks.
func (s *Spectrum) Glow() float64 {
	return s.Board * 8
}

// PanelScale is the sidebar preview scale factor.
func (s *Spectrum) PanelScale() float64 {
	return 1 + s.Sidebar*0.1
}

func (s *Spectrum) ParticleSpeed() float64 {
	return 1 + s.All*20
}

func RegisterComponents(registry *ecs.ComponentRegistry) {
	ecs.RegisterComponent[Particle](registry)
}

// SpawnParticles scatters n particles over bounds.
func SpawnParticles(storage *ecs.Storage, n int, bounds Bounds, rng *rand.Rand) {
	for range n {
		storage.Spawn(Particle{
			X:    rng.Float64() * bounds.W,
			Y:    rng.Float64() * bounds.H,
			VX:   (rng.Float64() - 0.5) * 0.3,
			VY:   (rng.Float64() - 0.5) * 0.3,
			Size: rng.Float64()*1.5 + 0.5,
			Hue:  rng.Float64()*40 + 190,
		})
	}
}

type ParticleSystem struct {
	Particles ecs.Query[struct{ *Particle }]
	Bounds    ecs.Singleton[Bounds]
	Spectrum  ecs.Singleton[Spectrum]
}

func (s *ParticleSystem) Execute(frame *ecs.UpdateFrame) {
	bounds := s.Bounds.Get()
	if bounds.W <= 0 || bounds.H <= 0 {
		return
	}
	step := s.Spectrum.Get().ParticleSpeed() * frame.Seconds() * frameRate
	for p := range s.Particles.Values() {
		p.X = wrap(p.X+p.VX*step, bounds.W)
		p.Y = wrap(p.Y+p.VY*step, bounds.H)
	}
}

// wrap moves a coordinate that left [0, limit] to the opposite edge.
func wrap(v, limit float64) float64 {
	switch {
	case v < 0:
		return limit
	case v > limit:
		return 0
	}
	return v
}
