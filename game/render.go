package game

import (
	"image/color"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/plus3/neonpulse/ecs"
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/fx"
	"github.com/plus3/neonpulse/input"
	"github.com/plus3/neonpulse/play"
	"github.com/plus3/neonpulse/view"
)

var (
	background = color.RGBA{0x05, 0x05, 0x05, 0xff}
	accent     = color.RGBA{0x00, 0xf0, 0xf0, 0xff}
	white      = color.RGBA{0xff, 0xff, 0xff, 0xff}
	dimText    = color.RGBA{0x88, 0x99, 0xaa, 0xff}
	panelFill  = color.NRGBA{0x10, 0x14, 0x1e, 0xb0}
	gridLine   = color.NRGBA{0xff, 0xff, 0xff, 0x0d}
	shade      = color.NRGBA{0x00, 0x00, 0x00, 0xc0}
)

const glowLayers = 3

func withAlpha(c color.RGBA, a float64) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: uint8(min(max(a, 0), 1) * 255)}
}

func grow(r input.Rect, d float64) input.Rect {
	return input.Rect{X: r.X - d, Y: r.Y - d, W: r.W + 2*d, H: r.H + 2*d}
}

func fillRect(dst *ebiten.Image, r input.Rect, clr color.Color) {
	vector.DrawFilledRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), clr, false)
}

func strokeRect(dst *ebiten.Image, r input.Rect, width float64, clr color.Color) {
	vector.StrokeRect(dst, float32(r.X), float32(r.Y), float32(r.W), float32(r.H), float32(width), clr, false)
}

// drawBlock draws one cell of kind k with a halo that widens with glow.
func drawBlock(dst *ebiten.Image, r input.Rect, k engine.Kind, glow float64) {
	g := k.Glow()
	base := float64(g.A) / 255
	for i := glowLayers; i >= 1; i-- {
		spread := (2 + glow) * float64(i) / glowLayers
		fillRect(dst, grow(r, spread), withAlpha(g, base*0.1))
	}
	inner := grow(r, -1)
	fillRect(dst, inner, k.Color())
	strokeRect(dst, inner, 1, withAlpha(white, 0.3))
}

// drawPreview centers the spawn orientation of k in r.
func drawPreview(dst *ebiten.Image, k engine.Kind, r input.Rect, cell, alpha float64) {
	shape := engine.BaseShape(k)
	if shape == nil {
		return
	}
	minR, minC, maxR, maxC := shape.Size(), shape.Size(), -1, -1
	for row, col := range shape.Cells() {
		minR, maxR = min(minR, row), max(maxR, row)
		minC, maxC = min(minC, col), max(maxC, col)
	}
	w := float64(maxC-minC+1) * cell
	h := float64(maxR-minR+1) * cell
	cx, cy := r.Center()
	x0, y0 := cx-w/2, cy-h/2
	c := withAlpha(k.Color(), alpha)
	for row, col := range shape.Cells() {
		cr := input.Rect{X: x0 + float64(col-minC)*cell, Y: y0 + float64(row-minR)*cell, W: cell, H: cell}
		fillRect(dst, grow(cr, -1), c)
	}
}

func drawPanel(dst *ebiten.Image, fonts *Fonts, r input.Rect, title string) {
	fillRect(dst, r, panelFill)
	strokeRect(dst, r, 1, withAlpha(accent, 0.5))
	if title != "" {
		fonts.Draw(dst, title, 14, r.X+12, r.Y+8, text.AlignStart, dimText)
	}
}

func drawButton(dst *ebiten.Image, fonts *Fonts, r input.Rect, label string, round bool) {
	cx, cy := r.Center()
	if round {
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r.W/2), withAlpha(accent, 0.15), true)
		vector.StrokeCircle(dst, float32(cx), float32(cy), float32(r.W/2), 2, accent, true)
	} else {
		fillRect(dst, r, withAlpha(accent, 0.15))
		strokeRect(dst, r, 2, accent)
	}
	fonts.Centered(dst, label, 16, cx, cy, white)
}

type BackgroundSystem struct {
	Screen    ecs.Singleton[Screen]
	Particles ecs.Query[struct{ *fx.Particle }]
}

func (s *BackgroundSystem) Execute(frame *ecs.UpdateFrame) {
	img := s.Screen.Get().Image
	if img == nil {
		return
	}
	img.Fill(background)
	for p := range s.Particles.Values() {
		vector.DrawFilledCircle(img, float32(p.X), float32(p.Y), float32(p.Size), p.Color(), true)
	}
}

type BoardSystem struct {
	Screen   ecs.Singleton[Screen]
	Session  ecs.Singleton[play.Session]
	Spectrum ecs.Singleton[fx.Spectrum]
}

func (s *BoardSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	img, l := screen.Image, screen.Layout
	if img == nil || l.Cell <= 0 {
		return
	}
	snap := &s.Session.Get().Snapshot
	glow := s.Spectrum.Get().Glow()

	b := l.Board
	fillRect(img, b, panelFill)
	cell := float32(l.Cell)
	for c := 1; c < engine.Cols; c++ {
		x := float32(b.X) + float32(c)*cell
		vector.StrokeLine(img, x, float32(b.Y), x, float32(b.Y+b.H), 1, gridLine, false)
	}
	for r := 1; r < engine.Rows; r++ {
		y := float32(b.Y) + float32(r)*cell
		vector.StrokeLine(img, float32(b.X), y, float32(b.X+b.W), y, 1, gridLine, false)
	}

	for r, row := range snap.Grid {
		for c, k := range row {
			if k != engine.None {
				drawBlock(img, l.CellRect(r, c), k, glow)
			}
		}
	}

	if ghost := snap.Ghost(); ghost != nil {
		outline := withAlpha(ghost.Kind.Color(), 0.2)
		for p := range ghost.Blocks() {
			if p.Y >= 0 {
				strokeRect(img, grow(l.CellRect(p.Y, p.X), -1), 2, outline)
			}
		}
	}
	if snap.Active != nil {
		for p := range snap.Active.Blocks() {
			if p.Y >= 0 {
				drawBlock(img, l.CellRect(p.Y, p.X), snap.Active.Kind, glow)
			}
		}
	}

	strokeRect(img, grow(b, 1), 2, accent)
}

// SidebarSystem draws the wide sidebars or the narrow header, plus the
// on-screen controls.
type SidebarSystem struct {
	Screen   ecs.Singleton[Screen]
	Session  ecs.Singleton[play.Session]
	Spectrum ecs.Singleton[fx.Spectrum]
}

func (s *SidebarSystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	img, l := screen.Image, screen.Layout
	if img == nil || l.Cell <= 0 {
		return
	}
	snap := &s.Session.Get().Snapshot
	if l.Narrow {
		drawHeader(img, screen.Fonts, l, snap)
	} else {
		drawSidebars(img, screen.Fonts, l, snap, s.Spectrum.Get().PanelScale())
	}
	for _, b := range l.Controls {
		label := b.Label
		if b.Command == input.Pause && snap.Phase == engine.Paused {
			label = "RETOMAR"
		}
		drawButton(img, screen.Fonts, b.Bounds, label, l.Narrow && b.Command == input.Rotate)
	}
}

func drawSidebars(dst *ebiten.Image, fonts *Fonts, l view.Layout, snap *engine.Snapshot, scale float64) {
	cell := float64(l.Cell) * 0.8 * scale

	hold := l.Hold.Scaled(scale)
	drawPanel(dst, fonts, hold, "HOLD")
	alpha := 1.0
	if !snap.CanHold {
		alpha = 0.4
	}
	drawPreview(dst, snap.Held, offsetTitle(hold), cell, alpha)

	level := l.Level.Scaled(scale)
	drawPanel(dst, fonts, level, "Level")
	fonts.Draw(dst, humanize.Comma(int64(snap.Level)), 24, level.X+level.W-12, level.Y+24, text.AlignEnd, accent)

	next := l.Next.Scaled(scale)
	drawPanel(dst, fonts, next, "PRÓXIMO")
	drawPreview(dst, snap.Next, offsetTitle(next), cell, 1)

	stats := l.Stats.Scaled(scale)
	drawPanel(dst, fonts, stats, "")
	fonts.Draw(dst, "Pontos", 14, stats.X+12, stats.Y+10, text.AlignStart, dimText)
	fonts.Draw(dst, humanize.Comma(int64(snap.Score)), 22, stats.X+12, stats.Y+28, text.AlignStart, white)
	fonts.Draw(dst, "Linhas", 14, stats.X+12, stats.Y+60, text.AlignStart, dimText)
	fonts.Draw(dst, humanize.Comma(int64(snap.Lines)), 22, stats.X+12, stats.Y+78, text.AlignStart, white)
}

// offsetTitle is the area of a panel below its title line.
func offsetTitle(r input.Rect) input.Rect {
	const title = 28
	return input.Rect{X: r.X, Y: r.Y + title, W: r.W, H: r.H - title}
}

func drawHeader(dst *ebiten.Image, fonts *Fonts, l view.Layout, snap *engine.Snapshot) {
	h := l.Header
	drawPanel(dst, fonts, h, "")
	fonts.Draw(dst, "Pontos", 12, h.X+10, h.Y+4, text.AlignStart, dimText)
	fonts.Draw(dst, humanize.Comma(int64(snap.Score)), 20, h.X+10, h.Y+20, text.AlignStart, white)
	fonts.Draw(dst, "Lv "+humanize.Comma(int64(snap.Level)), 14, l.Next.X-10, h.Y+16, text.AlignEnd, accent)
	drawPreview(dst, snap.Next, l.Next, l.Next.H/5, 1)
}

// OverlaySystem draws the start screen and the pause and game-over cards.
type OverlaySystem struct {
	Screen   ecs.Singleton[Screen]
	Session  ecs.Singleton[play.Session]
	Spectrum ecs.Singleton[fx.Spectrum]
}

func (s *OverlaySystem) Execute(frame *ecs.UpdateFrame) {
	screen := s.Screen.Get()
	img, l, fonts := screen.Image, screen.Layout, screen.Fonts
	if img == nil || l.Cell <= 0 {
		return
	}
	session := s.Session.Get()

	if !session.Started {
		full := input.Rect{W: float64(l.Width), H: float64(l.Height)}
		fillRect(img, full, shade)
		cx := full.W / 2
		titleSize := min(64, full.W/9)
		fonts.Centered(img, "NEON PULSE", titleSize, cx, full.H*0.35, accent)
		fonts.Centered(img, "Multi-Platform Arcade", 18, cx, full.H*0.35+titleSize*0.9, dimText)
		drawButton(img, fonts, l.StartButton(), "START SESSION", false)
		return
	}

	snap := &session.Snapshot
	b := l.Board
	cx := b.X + b.W/2
	switch snap.Phase {
	case engine.Paused:
		fillRect(img, b, shade)
		fonts.Centered(img, "PAUSADO", 32, cx, b.Y+b.H*0.4, accent)
		drawButton(img, fonts, l.OverlayButton(), "RETOMAR", false)
	case engine.GameOver:
		fillRect(img, b, shade)
		fonts.Centered(img, "FIM DE JOGO", 32, cx, b.Y+b.H*0.3, color.RGBA{0xf0, 0x30, 0x60, 0xff})
		fonts.Centered(img, "Score: "+humanize.Comma(int64(snap.Score)), 20, cx, b.Y+b.H*0.42, white)
		fonts.Centered(img, "Lines: "+humanize.Comma(int64(snap.Lines)), 20, cx, b.Y+b.H*0.5, white)
		drawButton(img, fonts, l.OverlayButton(), "RECOMEÇAR", false)
	}
}
