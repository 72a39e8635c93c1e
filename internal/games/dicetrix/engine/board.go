package engine

// Cell represents a single cell of the board.
type Cell struct {
	Filled bool // Whether the cell holds a die
	Die    Die  // Valid only when Filled is true
}

// Placement pairs a die with the board position it occupies.
type Placement struct {
	Pos Pos
	Die Die
}

// Board is the authoritative occupancy grid.
// Cells are stored in row-major order from the ground up: index = y*W + x.
type Board struct {
	W     int
	H     int
	Cells []Cell
}

// NewBoard creates an empty board with the given dimensions.
func NewBoard(w, h int) *Board {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return &Board{
		W:     w,
		H:     h,
		Cells: make([]Cell, w*h),
	}
}

// Ground returns the lowest placeable row.
func (b *Board) Ground() int {
	return 0
}

// MaxRow returns the highest placeable row.
func (b *Board) MaxRow() int {
	return b.H - 1
}

func (b *Board) index(p Pos) int {
	return p.Y*b.W + p.X
}

// InBounds reports whether p lies inside the grid.
func (b *Board) InBounds(p Pos) bool {
	return p.X >= 0 && p.X < b.W && p.Y >= b.Ground() && p.Y <= b.MaxRow()
}

// IsEmpty reports whether the cell at (x, y) holds no die.
// Callers bounds-check first; cells outside the grid report false.
func (b *Board) IsEmpty(x, y int) bool {
	p := P(x, y)
	if !b.InBounds(p) {
		return false
	}
	return !b.Cells[b.index(p)].Filled
}

// Get returns the die at p and whether the cell is occupied.
func (b *Board) Get(p Pos) (Die, bool) {
	if !b.InBounds(p) {
		return Die{}, false
	}
	c := b.Cells[b.index(p)]
	return c.Die, c.Filled
}

// Lock writes a die into an empty cell.
// A failed lock leaves the grid untouched.
func (b *Board) Lock(p Pos, d Die) error {
	if !b.InBounds(p) {
		return ErrOutOfBounds
	}
	i := b.index(p)
	if b.Cells[i].Filled {
		return ErrCellOccupied
	}
	b.Cells[i] = Cell{Filled: true, Die: d}
	return nil
}

// Clear erases all listed cells and returns how many held a die.
// Empty or out-of-bounds positions are ignored.
func (b *Board) Clear(positions []Pos) int {
	cleared := 0
	for _, p := range positions {
		if !b.InBounds(p) {
			continue
		}
		i := b.index(p)
		if b.Cells[i].Filled {
			b.Cells[i] = Cell{}
			cleared++
		}
	}
	return cleared
}

// AddPieceAt bulk-writes placements without validation, overwriting
// whatever is there. Used to construct known board states.
func (b *Board) AddPieceAt(placements []Placement) {
	for _, pl := range placements {
		if b.InBounds(pl.Pos) {
			b.Cells[b.index(pl.Pos)] = Cell{Filled: true, Die: pl.Die}
		}
	}
}

// FilledCount returns the number of occupied cells.
func (b *Board) FilledCount() int {
	count := 0
	for _, c := range b.Cells {
		if c.Filled {
			count++
		}
	}
	return count
}

// Column returns the dice of column x from the ground up, skipping empty cells.
func (b *Board) Column(x int) []Die {
	var dice []Die
	for y := 0; y < b.H; y++ {
		if d, ok := b.Get(P(x, y)); ok {
			dice = append(dice, d)
		}
	}
	return dice
}

// Placements returns every occupied cell, ordered by row then column.
func (b *Board) Placements() []Placement {
	out := make([]Placement, 0)
	for y := 0; y < b.H; y++ {
		for x := 0; x < b.W; x++ {
			p := P(x, y)
			if d, ok := b.Get(p); ok {
				out = append(out, Placement{Pos: p, Die: d})
			}
		}
	}
	return out
}

// Snapshot returns a copy of the grid as rows indexed [y][x].
// Readers must treat it as stale after the next tick.
func (b *Board) Snapshot() [][]Cell {
	rows := make([][]Cell, b.H)
	for y := range rows {
		rows[y] = make([]Cell, b.W)
		copy(rows[y], b.Cells[y*b.W:(y+1)*b.W])
	}
	return rows
}

// Clone returns a deep copy of the board.
func (b *Board) Clone() *Board {
	cells := make([]Cell, len(b.Cells))
	copy(cells, b.Cells)
	return &Board{W: b.W, H: b.H, Cells: cells}
}

// Equal reports whether two boards have the same dimensions and contents.
func (b *Board) Equal(other *Board) bool {
	if b.W != other.W || b.H != other.H {
		return false
	}
	for i, c := range b.Cells {
		if c != other.Cells[i] {
			return false
		}
	}
	return true
}
