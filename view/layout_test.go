package view

import (
	"testing"

	"github.com/plus3/neonpulse/input"
	"github.com/stretchr/testify/assert"
)

func TestCellSize(t *testing.T) {
	tests := []struct {
		name          string
		width, height int
		want          int
	}{
		{"desktop limited by height", 1280, 720, 27},
		{"phone portrait", 375, 667, 18},
		{"large screen capped", 1920, 1200, MaxCell},
		{"short window", 800, 300, 11},
		{"narrow and wide enough", 767, 1000, 27},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CellSize(tt.width, tt.height))
		})
	}
}

func overlaps(a, b input.Rect) bool {
	return a.X < b.X+b.W && b.X < a.X+a.W && a.Y < b.Y+b.H && b.Y < a.Y+a.H
}

func TestWideLayout(t *testing.T) {
	l := New(1280, 720)
	assert.False(t, l.Narrow)
	assert.Equal(t, 27, l.Cell)
	assert.Equal(t, 270.0, l.Board.W)
	assert.Equal(t, 540.0, l.Board.H)
	assert.Equal(t, 90.0, l.Board.Y)

	assert.Less(t, l.Hold.X+l.Hold.W, l.Board.X)
	assert.Greater(t, l.Next.X, l.Board.X+l.Board.W)
	assert.Zero(t, l.Header)

	cmds := []input.Command{}
	for _, b := range l.Controls {
		cmds = append(cmds, b.Command)
		assert.False(t, overlaps(b.Bounds, l.Board))
	}
	assert.Equal(t, []input.Command{input.Pause, input.Reset}, cmds)

	cell := l.CellRect(19, 9)
	assert.Equal(t, l.Board.X+l.Board.W, cell.X+cell.W)
	assert.Equal(t, l.Board.Y+l.Board.H, cell.Y+cell.H)
}

func TestNarrowLayout(t *testing.T) {
	l := New(375, 667)
	assert.True(t, l.Narrow)
	assert.Equal(t, l.Board.Y, l.Header.Y+l.Header.H, "header sits on the board")
	assert.True(t, l.Header.Contains(l.Next.Center()))

	want := []input.Command{input.MoveLeft, input.MoveRight, input.Hold, input.SoftDown, input.Rotate, input.HardDrop}
	var got []input.Command
	for i, b := range l.Controls {
		got = append(got, b.Command)
		assert.False(t, overlaps(b.Bounds, l.Board), "%s overlaps the board", b.Command)
		assert.LessOrEqual(t, b.Bounds.Y+b.Bounds.H, float64(l.Height))
		for _, other := range l.Controls[i+1:] {
			assert.False(t, overlaps(b.Bounds, other.Bounds), "%s overlaps %s", b.Command, other.Command)
		}
	}
	assert.Equal(t, want, got)

	x, y := l.Controls[4].Bounds.Center()
	c, ok := input.HitTest(l.Controls, x, y)
	assert.True(t, ok)
	assert.Equal(t, input.Rotate, c)
}

func TestOverlayButtons(t *testing.T) {
	for _, size := range [][2]int{{1280, 720}, {375, 667}} {
		l := New(size[0], size[1])
		ob := l.OverlayButton()
		assert.True(t, l.Board.Contains(ob.X, ob.Y))
		assert.True(t, l.Board.Contains(ob.X+ob.W-1, ob.Y+ob.H-1))

		sb := l.StartButton()
		assert.GreaterOrEqual(t, sb.X, 0.0)
		assert.LessOrEqual(t, sb.X+sb.W, float64(l.Width))
	}
}

func TestRectScaled(t *testing.T) {
	r := input.Rect{X: 10, Y: 10, W: 100, H: 50}.Scaled(1.1)
	assert.InDelta(t, 5.0, r.X, 1e-9)
	assert.InDelta(t, 110.0, r.W, 1e-9)
	cx, cy := r.Center()
	assert.InDelta(t, 60.0, cx, 1e-9)
	assert.InDelta(t, 35.0, cy, 1e-9)
}
