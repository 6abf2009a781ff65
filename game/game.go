// Package game is the ebiten client: it polls devices into the ECS world,
// runs the shared play systems and renders the board, sidebars, particles
// and overlays.
package game

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/plus3/neonpulse/audio"
	"github.com/plus3/neonpulse/config"
	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/fx"
	"github.com/plus3/neonpulse/input"
	"github.com/plus3/neonpulse/logging"
	"github.com/plus3/neonpulse/mirror"
	"github.com/plus3/neonpulse/play"
	"github.com/plus3/neonpulse/view"
)

var logger = logging.New("game")

// DebugToggleKey shows and hides the debug overlay.
const DebugToggleKey = ebiten.KeyF3

// overlay is the optional debug UI drawn over the game.
type overlay interface {
	BeginFrame()
	EndFrame()
	Draw(screen *ebiten.Image)
	Layout(width, height int)
	Toggle()
}

type Options struct {
	Config config.Config
	// Hub receives snapshots for spectators; nil disables the mirror.
	Hub *mirror.Hub
	// Soundtrack defaults to a synth built from Config.Audio.
	Soundtrack *audio.Soundtrack
	// Debug attaches the ImGui overlay where it is available.
	Debug bool
}

type Game struct {
	storage *ecs.Storage
	update  *ecs.Scheduler
	render  *ecs.Scheduler

	screen *ecs.Singleton[Screen]
	raw    *ecs.Singleton[RawInput]
	bounds *ecs.Singleton[fx.Bounds]
	sound  *ecs.Singleton[Sound]

	poller  poller
	overlay overlay
	width   int
	height  int
}

func New(opts Options) (*Game, error) {
	cfg := opts.Config

	keymap, err := input.NewKeymap(cfg.Input.Keys, ParseKey)
	if err != nil {
		return nil, fmt.Errorf("key bindings: %w", err)
	}
	fonts, err := LoadFonts()
	if err != nil {
		return nil, err
	}

	soundtrack := opts.Soundtrack
	if soundtrack == nil {
		soundtrack = audio.NewSoundtrack(audio.SynthConfig{
			DroneHz: cfg.Audio.DroneHz,
			PulseHz: cfg.Audio.PulseHz,
			Volume:  cfg.Audio.Volume,
		})
	}

	var engineOpts []engine.Option
	particleSeed := uint64(time.Now().UnixNano())
	if cfg.Seed != 0 {
		engineOpts = append(engineOpts, engine.WithSeed(cfg.Seed))
		particleSeed = cfg.Seed
	}

	registry := ecs.NewComponentRegistry()
	fx.RegisterComponents(registry)
	registerDebugComponents(registry)
	storage := ecs.NewStorage(registry)

	g := &Game{
		storage: storage,
		update:  ecs.NewScheduler(storage),
		render:  ecs.NewScheduler(storage),
		width:   cfg.Window.Width,
		height:  cfg.Window.Height,
	}

	layout := view.New(g.width, g.height)
	bounds := fx.Bounds{W: float64(g.width), H: float64(g.height)}
	g.screen = ecs.NewSingleton(storage, Screen{Layout: layout, Fonts: fonts})
	g.raw = ecs.NewSingleton(storage, RawInput{})
	g.bounds = ecs.NewSingleton(storage, bounds)
	g.sound = ecs.NewSingleton(storage, Sound{Soundtrack: soundtrack, Enabled: cfg.Audio.Enabled})
	ecs.NewSingleton(storage, Capture{})
	ecs.NewSingleton(storage, fx.Spectrum{})
	ecs.NewSingleton(storage, newControls(
		input.NewKeyboard(keymap, cfg.Input.RepeatDelay(), cfg.Input.RepeatInterval()),
		cfg.Input.StickDeadZone,
	))

	fx.SpawnParticles(storage, fx.ParticleCount, bounds, rand.New(rand.NewPCG(particleSeed, 0)))

	g.update.Register(&InputSystem{})
	play.Register(storage, g.update, engine.New(engineOpts...))
	g.update.Register(&AudioSystem{})
	g.update.Register(&fx.ParticleSystem{})
	play.RegisterMirror(storage, g.update, opts.Hub)

	g.render.Register(&BackgroundSystem{})
	g.render.Register(&BoardSystem{})
	g.render.Register(&SidebarSystem{})
	g.render.Register(&OverlaySystem{})

	if opts.Debug {
		g.overlay = newOverlay(g, cfg.Window.Title)
	}
	return g, nil
}

// Storage exposes the ECS world to debugging tools.
func (g *Game) Storage() *ecs.Storage {
	return g.storage
}

func (g *Game) Update() error {
	g.poller.poll(g.raw.Get())

	if g.overlay != nil {
		if inpututil.IsKeyJustPressed(DebugToggleKey) {
			g.overlay.Toggle()
		}
		g.overlay.BeginFrame()
		defer g.overlay.EndFrame()
	}

	g.update.Once(time.Second / time.Duration(ebiten.TPS()))
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	s := g.screen.Get()
	s.Image = screen
	g.render.Once(0)
	s.Image = nil

	if g.overlay != nil {
		g.overlay.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height || g.screen.Get().Layout.Cell == 0 {
		g.width, g.height = outsideWidth, outsideHeight
		g.screen.Get().Layout = view.New(outsideWidth, outsideHeight)
		*g.bounds.Get() = fx.Bounds{W: float64(outsideWidth), H: float64(outsideHeight)}
	}
	if g.overlay != nil {
		g.overlay.Layout(outsideWidth, outsideHeight)
	}
	return outsideWidth, outsideHeight
}

// Close stops audio output.
func (g *Game) Close() error {
	if err := g.sound.Get().Soundtrack.Close(); err != nil {
		logger.Printf("closing soundtrack: %v", err)
		return err
	}
	return nil
}
