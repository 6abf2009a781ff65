package fx

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/plus3/neonpulse/ecs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorld(t *testing.T, bounds Bounds) (*ecs.Storage, *ecs.Scheduler) {
	t.Helper()
	registry := ecs.NewComponentRegistry()
	RegisterComponents(registry)
	storage := ecs.NewStorage(registry)
	ecs.NewSingleton(storage, bounds)
	ecs.NewSingleton(storage, Spectrum{})
	scheduler := ecs.NewScheduler(storage)
	scheduler.Register(&ParticleSystem{})
	return storage, scheduler
}

func TestSpawnParticles(t *testing.T) {
	bounds := Bounds{W: 800, H: 600}
	storage, _ := newWorld(t, bounds)
	SpawnParticles(storage, ParticleCount, bounds, rand.New(rand.NewPCG(1, 2)))

	q := ecs.NewQuery[struct{ *Particle }](storage)
	require.Equal(t, ParticleCount, q.Count())
	for p := range q.Values() {
		assert.True(t, p.X >= 0 && p.X <= bounds.W)
		assert.True(t, p.Y >= 0 && p.Y <= bounds.H)
		assert.True(t, p.Hue >= 190 && p.Hue <= 230)
		assert.True(t, p.Size >= 0.5 && p.Size <= 2)
		assert.LessOrEqual(t, p.VX, 0.15)
		assert.GreaterOrEqual(t, p.VX, -0.15)
	}
}

func TestParticleSpeedFollowsSpectrum(t *testing.T) {
	storage, scheduler := newWorld(t, Bounds{W: 100, H: 100})
	id := storage.Spawn(Particle{X: 50, Y: 50, VX: 0.1, VY: -0.1})

	frame := time.Second / 60
	scheduler.Once(frame)
	p := ecs.ReadComponent[Particle](storage, id)
	assert.InDelta(t, 50.1, p.X, 1e-6)
	assert.InDelta(t, 49.9, p.Y, 1e-6)

	var spectrum *Spectrum
	require.True(t, storage.ReadSingleton(&spectrum))
	spectrum.Set([]uint8{255, 255, 255, 255})
	assert.Equal(t, 21.0, spectrum.ParticleSpeed())

	scheduler.Once(frame)
	assert.InDelta(t, 52.2, p.X, 1e-6)
}

func TestParticlesWrap(t *testing.T) {
	storage, scheduler := newWorld(t, Bounds{W: 100, H: 80})
	left := storage.Spawn(Particle{X: 0.05, Y: 10, VX: -0.1})
	down := storage.Spawn(Particle{X: 10, Y: 79.95, VY: 0.1})

	scheduler.Once(time.Second / 60)
	assert.Equal(t, 100.0, ecs.ReadComponent[Particle](storage, left).X)
	assert.Equal(t, 0.0, ecs.ReadComponent[Particle](storage, down).Y)
}

func TestSpectrumIntensities(t *testing.T) {
	bins := make([]uint8, 32)
	for i := range 5 {
		bins[i] = 255
	}
	var s Spectrum
	s.Set(bins)
	assert.Equal(t, 1.0, s.Sidebar)
	assert.Equal(t, 0.5, s.Board)
	assert.InDelta(t, 5.0/32, s.All, 1e-12)
	assert.Equal(t, 4.0, s.Glow())
	assert.InDelta(t, 1.1, s.PanelScale(), 1e-12)
}

func TestParticleColor(t *testing.T) {
	p := Particle{Hue: 210}
	c := p.Color()
	assert.Equal(t, uint8(76), c.A)
	assert.Greater(t, c.B, c.G)
	assert.Greater(t, c.G, c.R)

	// Pure hues at 70% saturation, 50% lightness, premultiplied by 0.3.
	hue := Particle{Hue: 0}
	red := hue.Color()
	assert.InDelta(t, 65, int(red.R), 1)
	assert.InDelta(t, 11, int(red.G), 1)
	assert.InDelta(t, 11, int(red.B), 1)
	hue.Hue = 120
	green := hue.Color()
	assert.InDelta(t, 11, int(green.R), 1)
	assert.InDelta(t, 65, int(green.G), 1)
}
