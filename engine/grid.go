package engine

const (
	Rows = 20
	Cols = 10
)

// Spawn position of every new active piece.
const (
	SpawnX = Cols/2 - 1
	SpawnY = 0
)

// Grid is the playfield of locked cells. A cell holds the kind of the piece
// that locked there, or None.
type Grid [Rows][Cols]Kind

func (g *Grid) Filled(row int) bool {
	for _, cell := range g[row] {
		if cell == None {
			return false
		}
	}
	return true
}

// clearFull removes every full row, shifting the rows above it down and
// filling the top with empty rows. It returns the indices of the removed rows
// as they were before the shift.
func (g *Grid) clearFull() []int {
	var cleared []int
	write := Rows - 1
	for read := Rows - 1; read >= 0; read-- {
		if g.Filled(read) {
			cleared = append(cleared, read)
			continue
		}
		if write != read {
			g[write] = g[read]
		}
		write--
	}
	for ; write >= 0; write-- {
		g[write] = [Cols]Kind{}
	}
	for i, j := 0, len(cleared)-1; i < j; i, j = i+1, j-1 {
		cleared[i], cleared[j] = cleared[j], cleared[i]
	}
	return cleared
}

func (g *Grid) merge(p *Piece) {
	for b := range p.Blocks() {
		if b.Y >= 0 && b.Y < Rows && b.X >= 0 && b.X < Cols {
			g[b.Y][b.X] = p.Kind
		}
	}
}

// Collides reports whether shape placed at (x, y) leaves the playfield
// sideways or through the floor, or overlaps a locked cell. Cells above the
// top edge never collide.
func (g *Grid) Collides(shape Shape, x, y int) bool {
	for r, c := range shape.Cells() {
		gx, gy := x+c, y+r
		if gx < 0 || gx >= Cols || gy >= Rows {
			return true
		}
		if gy >= 0 && g[gy][gx] != None {
			return true
		}
	}
	return false
}

// Collides reports whether p moved by (dx, dy) would collide with g.
func Collides(p *Piece, g *Grid, dx, dy int) bool {
	return g.Collides(p.Shape, p.X+dx, p.Y+dy)
}
