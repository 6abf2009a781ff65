//go:build !js

package game

import (
	"fmt"

	"github.com/AllenDang/cimgui-go/imgui"
	"github.com/AllenDang/cimgui-go/implot"
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/ecs/debugui"
	debugui_ebiten "github.com/plus3/neonpulse/ecs/debugui/ebiten"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/fx"
	"github.com/plus3/neonpulse/input"
	"github.com/plus3/neonpulse/play"
)

func registerDebugComponents(registry *ecs.ComponentRegistry) {
	debugui.RegisterComponents(registry)
}

type debugOverlay struct {
	Backend debugui_ebiten.Backend
	state   *ecs.Singleton[debugui.Overlay]
}

func (d *debugOverlay) Toggle() {
	d.state.Get().Toggle()
}

func (d *debugOverlay) BeginFrame() {
	d.Backend.BeginFrame()
}

func (d *debugOverlay) EndFrame() {
	d.Backend.EndFrame()
}

func (d *debugOverlay) Layout(width, height int) {
	d.Backend.Layout(width, height)
}

func (d *debugOverlay) Draw(screen *ebiten.Image) {
	if d.state.Get().Visible {
		d.Backend.Draw(screen)
	}
}

// newOverlay creates the ImGui backend and the debug panels, and adds the
// systems that forward ImGui's input capture to the game.
func newOverlay(g *Game, title string) overlay {
	d := &debugOverlay{
		Backend: debugui_ebiten.NewBackend(title, g.width, g.height),
		state:   ecs.NewSingleton(g.storage, debugui.Overlay{}),
	}

	stats := debugui.SpawnPerformancePanel(g.storage, 120)
	stats.Track("update", g.update)
	stats.Track("render", g.render)
	g.storage.Spawn(debugui.Panel{Title: "Engine", Render: engineInspector(g.storage)})
	g.storage.Spawn(debugui.Panel{Title: "Spectrum", Render: spectrumPlot(g.storage)})

	g.update.Register(&debugui.PanelSystem{})
	g.update.Register(&captureSystem{})
	logger.Printf("debug overlay ready, toggle with %s", DebugToggleKey)
	return d
}

// captureSystem copies ImGui's input capture into the game's Capture
// singleton so gameplay ignores clicks and keys aimed at panels.
type captureSystem struct {
	Overlay ecs.Singleton[debugui.Overlay]
	Capture ecs.Singleton[Capture]
}

func (s *captureSystem) Execute(frame *ecs.UpdateFrame) {
	o, c := s.Overlay.Get(), s.Capture.Get()
	c.Mouse, c.Keyboard = o.WantCaptureMouse, o.WantCaptureKeyboard
}

func engineInspector(storage *ecs.Storage) func() {
	session := ecs.NewSingleton[play.Session](storage)
	queue := ecs.NewSingleton[play.Queue](storage)
	return func() {
		s := session.Get()
		snap := &s.Snapshot

		imgui.SetNextWindowPosV(imgui.NewVec2(380, 10), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(300, 360), imgui.CondOnce)
		if !imgui.BeginV("Engine", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}

		imgui.Text(fmt.Sprintf("Phase: %s", snap.Phase))
		imgui.Text(fmt.Sprintf("Score: %d  Lines: %d  Level: %d", snap.Score, snap.Lines, snap.Level))
		imgui.Text(fmt.Sprintf("Combo: %d  Fall: %s", snap.Combo, s.Engine.FallInterval()))
		if snap.Active != nil {
			imgui.Text(fmt.Sprintf("Active: %s at (%d, %d) rot %d, ghost row %d",
				snap.Active.Kind, snap.Active.X, snap.Active.Y, snap.Active.Rotation, snap.GhostY))
		}
		imgui.Text(fmt.Sprintf("Next: %s  Held: %s  Can hold: %t", snap.Next, snap.Held, snap.CanHold))

		imgui.Separator()
		imgui.Text(fmt.Sprintf("Games: %d  Locks: %d  Max level: %d", s.Games, s.Locks, s.MaxLevel))
		for n, count := range s.Clears {
			imgui.BulletText(fmt.Sprintf("%d-line locks: %d", n, count))
		}
		if s.LastLock.Locked {
			imgui.Text(fmt.Sprintf("Last lock: %d rows, %d points, %d drop bonus",
				s.LastLock.Cleared, s.LastLock.Points, s.LastLock.DropBonus))
		}

		imgui.Separator()
		for i, c := range []input.Command{input.Pause, input.Reset, input.HardDrop, input.Hold} {
			if i > 0 {
				imgui.SameLine()
			}
			if imgui.Button(c.String()) {
				queue.Get().Push(c)
			}
		}

		if imgui.TreeNodeStr("Grid") {
			for _, row := range snap.Grid {
				line := make([]byte, 0, engine.Cols)
				for _, k := range row {
					if k == engine.None {
						line = append(line, '.')
					} else {
						line = append(line, k.String()[0])
					}
				}
				imgui.Text(string(line))
			}
			imgui.TreePop()
		}
		imgui.End()
	}
}

func spectrumPlot(storage *ecs.Storage) func() {
	spectrum := ecs.NewSingleton[fx.Spectrum](storage)
	var samples []float32
	return func() {
		s := spectrum.Get()
		samples = samples[:0]
		for _, b := range s.Bins {
			samples = append(samples, float32(b))
		}

		imgui.SetNextWindowPosV(imgui.NewVec2(380, 380), imgui.CondOnce, imgui.NewVec2(0, 0))
		imgui.SetNextWindowSizeV(imgui.NewVec2(300, 260), imgui.CondOnce)
		if !imgui.BeginV("Spectrum", nil, imgui.WindowFlagsNone) {
			imgui.End()
			return
		}
		imgui.Text(fmt.Sprintf("Board %.3f  Sidebar %.3f  All %.3f", s.Board, s.Sidebar, s.All))
		imgui.Text(fmt.Sprintf("Glow %.2f  Panel scale %.3f  Particle speed %.2f", s.Glow(), s.PanelScale(), s.ParticleSpeed()))
		if len(samples) > 0 && implot.BeginPlotV("Bins", imgui.NewVec2(-1, -1), 0) {
			implot.SetupAxesV("Bin", "Level", 0, 0)
			implot.SetupAxisLimitsV(implot.AxisY1, 0, 255, implot.CondAlways)
			implot.PlotLineFloatPtrInt("spectrum", &samples[0], int32(len(samples)))
			implot.EndPlot()
		}
		imgui.End()
	}
}
