package ebiten_test

import (
	"time"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/ecs/debugui"
	debugui_ebiten "github.com/plus3/neonpulse/ecs/debugui/ebiten"
)

// Game implements ebiten.Game with the overlay drawn over the scene.
type Game struct {
	scheduler *ecs.Scheduler
	backend   *ecs.Singleton[debugui_ebiten.Backend]
	overlay   *ecs.Singleton[debugui.Overlay]
}

func (g *Game) Update() error {
	g.backend.Get().BeginFrame()
	g.scheduler.Once(time.Second / 60)
	g.backend.Get().EndFrame()
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Draw game content first.
	if g.overlay.Get().Visible {
		g.backend.Get().Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.backend.Get().Layout(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}

func Example() {
	backend := debugui_ebiten.NewBackend("Overlay Example", 1280, 720)

	registry := ecs.NewComponentRegistry()
	debugui.RegisterComponents(registry)
	storage := ecs.NewStorage(registry)

	ecs.NewSingleton(storage, backend)
	ecs.NewSingleton(storage, debugui.Overlay{Visible: true})

	storage.Spawn(debugui.Panel{
		Title: "Hello",
		Render: func() {
			imgui.Begin("Hello")
			imgui.Text("Hello from a panel entity")
			imgui.End()
		},
	})

	scheduler := ecs.NewScheduler(storage)
	stats := debugui.SpawnPerformancePanel(storage, 120)
	stats.Track("update", scheduler)
	scheduler.Register(&debugui.PanelSystem{})

	game := &Game{
		scheduler: scheduler,
		backend:   ecs.NewSingleton[debugui_ebiten.Backend](storage),
		overlay:   ecs.NewSingleton[debugui.Overlay](storage),
	}
	if err := ebiten.RunGame(game); err != nil {
		panic(err)
	}
}
