package engine

import (
	"fmt"
	"image/color"
	"iter"
)

// Kind identifies one of the seven tetromino types. The zero value is an
// empty cell.
type Kind uint8

const (
	None Kind = iota
	I
	J
	L
	O
	S
	T
	Z
)

// Kinds lists the playable kinds in draw order.
var Kinds = [...]Kind{I, J, L, O, S, T, Z}

var kindNames = [...]string{"", "I", "J", "L", "O", "S", "T", "Z"}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", k)
}

func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

func (k *Kind) UnmarshalText(text []byte) error {
	for i, name := range kindNames {
		if name == string(text) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("unknown piece kind %q", text)
}

var kindColors = [...]color.RGBA{
	None: {},
	I:    {0x00, 0xf0, 0xf0, 0xff},
	J:    {0x00, 0x00, 0xf0, 0xff},
	L:    {0xf0, 0xa0, 0x00, 0xff},
	O:    {0xf0, 0xf0, 0x00, 0xff},
	S:    {0x00, 0xf0, 0x00, 0xff},
	T:    {0xa0, 0x00, 0xf0, 0xff},
	Z:    {0xf0, 0x00, 0x00, 0xff},
}

// Color is the block color of the kind.
func (k Kind) Color() color.RGBA {
	if int(k) < len(kindColors) {
		return kindColors[k]
	}
	return color.RGBA{}
}

// Glow is the kind's color at 80% opacity. The value is not premultiplied.
func (k Kind) Glow() color.RGBA {
	c := k.Color()
	if k == None {
		return c
	}
	c.A = 204
	return c
}

// Shape is a square occupancy matrix indexed [row][col].
type Shape [][]bool

var baseShapes = [...]Shape{
	I: {
		{false, false, false, false},
		{true, true, true, true},
		{false, false, false, false},
		{false, false, false, false},
	},
	J: {
		{true, false, false},
		{true, true, true},
		{false, false, false},
	},
	L: {
		{false, false, true},
		{true, true, true},
		{false, false, false},
	},
	O: {
		{true, true},
		{true, true},
	},
	S: {
		{false, true, true},
		{true, true, false},
		{false, false, false},
	},
	T: {
		{false, true, false},
		{true, true, true},
		{false, false, false},
	},
	Z: {
		{true, true, false},
		{false, true, true},
		{false, false, false},
	},
}

// BaseShape returns a fresh copy of the spawn orientation of k.
func BaseShape(k Kind) Shape {
	if k == None || int(k) >= len(baseShapes) {
		return nil
	}
	return baseShapes[k].Clone()
}

func (s Shape) Size() int {
	return len(s)
}

func (s Shape) Clone() Shape {
	out := make(Shape, len(s))
	for r, row := range s {
		out[r] = append([]bool(nil), row...)
	}
	return out
}

// Rotated returns the shape turned a quarter turn clockwise.
func (s Shape) Rotated() Shape {
	n := len(s)
	out := make(Shape, n)
	for r := range n {
		out[r] = make([]bool, n)
		for c := range n {
			out[r][c] = s[n-1-c][r]
		}
	}
	return out
}

// Cells yields the (row, col) offsets of every occupied cell.
func (s Shape) Cells() iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for r, row := range s {
			for c, filled := range row {
				if filled && !yield(r, c) {
					return
				}
			}
		}
	}
}

// Point is a cell coordinate on the playfield.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Piece is a shape placed on the playfield. X and Y locate the top-left
// corner of its bounding box.
type Piece struct {
	Kind     Kind  `json:"kind"`
	Shape    Shape `json:"shape"`
	X        int   `json:"x"`
	Y        int   `json:"y"`
	Rotation int   `json:"rotation"`
}

// Blocks yields the absolute playfield coordinates of the piece's cells.
func (p Piece) Blocks() iter.Seq[Point] {
	return func(yield func(Point) bool) {
		for r, c := range p.Shape.Cells() {
			if !yield(Point{X: p.X + c, Y: p.Y + r}) {
				return
			}
		}
	}
}

func (p Piece) clone() *Piece {
	p.Shape = p.Shape.Clone()
	return &p
}
