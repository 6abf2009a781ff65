package input

// Rect is an axis-aligned screen rectangle in pixels.
type Rect struct {
	X, Y, W, H float64
}

func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func (r Rect) Center() (float64, float64) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Scaled grows or shrinks r by f around its center.
func (r Rect) Scaled(f float64) Rect {
	cx, cy := r.Center()
	w, h := r.W*f, r.H*f
	return Rect{X: cx - w/2, Y: cy - h/2, W: w, H: h}
}

// Button is an on-screen control that fires Command when pressed.
type Button struct {
	Command Command
	Label   string
	Bounds  Rect
}

// HitTest returns the command of the first button containing (x, y).
func HitTest(buttons []Button, x, y float64) (Command, bool) {
	for _, b := range buttons {
		if b.Bounds.Contains(x, y) {
			return b.Command, true
		}
	}
	return None, false
}

// Touches maps new pointer presses to button commands. Presses that miss
// every button are dropped.
func Touches(buttons []Button, presses [][2]float64) []Command {
	var cmds []Command
	for _, p := range presses {
		if c, ok := HitTest(buttons, p[0], p[1]); ok {
			cmds = append(cmds, c)
		}
	}
	return cmds
}
