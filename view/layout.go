// Package view computes the screen layout shared by the graphical client's
// renderer and its pointer hit-testing.
package view

import (
	"github.com/plus3/neonpulse/engine"
	"github.com/plus3/neonpulse/input"
)

const (
	// NarrowWidth is the width below which the compact mobile layout is used.
	NarrowWidth = 768
	MaxCell     = 35

	gap          = 24.0
	holdWidth    = 160.0
	sideWidth    = 192.0
	panelHeight  = 150.0
	headerHeight = 48.0
	touchSize    = 56.0
	touchGap     = 8.0
	rotateSize   = 80.0
	edgeMargin   = 16.0
)

// CellSize is the board cell edge in pixels for a screen of the given size.
func CellSize(width, height int) int {
	maxH := float64(height) * 0.75
	if width < NarrowWidth {
		maxH = float64(height) * 0.55
	}
	maxW := float64(width) * 0.85
	return min(int(maxH)/engine.Rows, int(maxW)/engine.Cols, MaxCell)
}

type Layout struct {
	Width, Height int
	Narrow        bool
	Cell          int
	Board         input.Rect

	// Header holds score and next preview on narrow screens.
	Header input.Rect

	// Wide-screen sidebar panels.
	Hold  input.Rect
	Level input.Rect
	Next  input.Rect
	Stats input.Rect

	// Controls are the touch pad on narrow screens and the pause and reset
	// buttons on wide screens.
	Controls []input.Button
}

func New(width, height int) Layout {
	l := Layout{
		Width:  width,
		Height: height,
		Narrow: width < NarrowWidth,
		Cell:   CellSize(width, height),
	}
	boardW := float64(l.Cell * engine.Cols)
	boardH := float64(l.Cell * engine.Rows)
	w, h := float64(width), float64(height)

	if l.Narrow {
		padH := 2*touchSize + touchGap + 2*touchGap
		available := h - padH - 2*edgeMargin
		top := max(edgeMargin, (available-headerHeight-boardH)/2)
		l.Board = input.Rect{X: (w - boardW) / 2, Y: top + headerHeight, W: boardW, H: boardH}
		l.Header = input.Rect{X: l.Board.X, Y: top, W: boardW, H: headerHeight}
		l.Next = input.Rect{X: l.Header.X + l.Header.W - headerHeight, Y: top, W: headerHeight, H: headerHeight}
		l.Controls = touchPad(w, h)
		return l
	}

	total := holdWidth + gap + boardW + gap + sideWidth
	left := (w - total) / 2
	l.Board = input.Rect{X: left + holdWidth + gap, Y: (h - boardH) / 2, W: boardW, H: boardH}

	top := l.Board.Y + 40
	l.Hold = input.Rect{X: left, Y: top, W: holdWidth, H: panelHeight}
	l.Level = input.Rect{X: left, Y: top + panelHeight + gap, W: holdWidth, H: 64}

	right := l.Board.X + boardW + gap
	l.Next = input.Rect{X: right, Y: top, W: sideWidth, H: panelHeight}
	l.Stats = input.Rect{X: right, Y: top + panelHeight + gap, W: sideWidth, H: 110}
	buttonY := l.Stats.Y + l.Stats.H + gap
	half := (sideWidth - touchGap) / 2
	l.Controls = []input.Button{
		{Command: input.Pause, Label: "PAUSE", Bounds: input.Rect{X: right, Y: buttonY, W: half, H: 44}},
		{Command: input.Reset, Label: "RESET", Bounds: input.Rect{X: right + half + touchGap, Y: buttonY, W: half, H: 44}},
	}
	return l
}

// touchPad lays out the mobile controls: a 2x2 cluster bottom left and the
// rotate and hard-drop buttons stacked bottom right.
func touchPad(w, h float64) []input.Button {
	bottom := h - 2*edgeMargin
	padTop := bottom - 2*touchSize - touchGap
	cell := func(col, row float64) input.Rect {
		return input.Rect{
			X: edgeMargin + touchGap + col*(touchSize+touchGap),
			Y: padTop + row*(touchSize+touchGap),
			W: touchSize,
			H: touchSize,
		}
	}
	rightX := w - edgeMargin - touchGap - rotateSize
	dropY := bottom - touchSize
	return []input.Button{
		{Command: input.MoveLeft, Label: "<", Bounds: cell(0, 0)},
		{Command: input.MoveRight, Label: ">", Bounds: cell(1, 0)},
		{Command: input.Hold, Label: "HOLD", Bounds: cell(0, 1)},
		{Command: input.SoftDown, Label: "v", Bounds: cell(1, 1)},
		{Command: input.Rotate, Label: "ROT", Bounds: input.Rect{X: rightX, Y: dropY - touchGap*1.5 - rotateSize, W: rotateSize, H: rotateSize}},
		{Command: input.HardDrop, Label: "DROP", Bounds: input.Rect{X: rightX + (rotateSize-touchSize)/2, Y: dropY, W: touchSize, H: touchSize}},
	}
}

// CellRect is the screen rectangle of board cell (row, col).
func (l Layout) CellRect(row, col int) input.Rect {
	c := float64(l.Cell)
	return input.Rect{X: l.Board.X + float64(col)*c, Y: l.Board.Y + float64(row)*c, W: c, H: c}
}

// OverlayButton is the action button of the pause and game-over overlays.
func (l Layout) OverlayButton() input.Rect {
	w := min(220, l.Board.W-20)
	cx, _ := l.Board.Center()
	return input.Rect{X: cx - w/2, Y: l.Board.Y + l.Board.H*0.62, W: w, H: 48}
}

// StartButton is the "START SESSION" button of the start screen.
func (l Layout) StartButton() input.Rect {
	w := min(260, float64(l.Width)-40)
	return input.Rect{X: (float64(l.Width) - w) / 2, Y: float64(l.Height)*0.6 - 28, W: w, H: 56}
}
