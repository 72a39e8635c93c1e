package engine

import "sort"

// PieceDie is a die carried by a piece at an offset from the anchor.
type PieceDie struct {
	Die    Die
	Offset Pos
}

// Piece is a falling group of dice sharing one anchor.
// Offsets are kept normalized so their minimum X and Y are >= 0.
type Piece struct {
	X     int
	Y     int
	Shape string
	Dice  []PieceDie
}

// NewPiece creates a piece at the given anchor. Offsets are normalized.
func NewPiece(x, y int, shape string, dice []PieceDie) *Piece {
	p := &Piece{X: x, Y: y, Shape: shape, Dice: dice}
	p.Normalize()
	return p
}

// Len returns the number of dice remaining in the piece.
func (p *Piece) Len() int {
	return len(p.Dice)
}

// Empty reports whether the piece has no dice left and must be discarded.
func (p *Piece) Empty() bool {
	return len(p.Dice) == 0
}

// Anchor returns the anchor position.
func (p *Piece) Anchor() Pos {
	return P(p.X, p.Y)
}

// Offsets returns a copy of the per-die offsets in die order.
func (p *Piece) Offsets() []Pos {
	out := make([]Pos, len(p.Dice))
	for i, pd := range p.Dice {
		out[i] = pd.Offset
	}
	return out
}

// Positions returns the absolute position of every die in die order.
func (p *Piece) Positions() []Pos {
	out := make([]Pos, len(p.Dice))
	for i, pd := range p.Dice {
		out[i] = P(p.X+pd.Offset.X, p.Y+pd.Offset.Y)
	}
	return out
}

// Bounds returns the bounding width and height of the offsets.
func (p *Piece) Bounds() (w, h int) {
	return offsetBounds(p.Offsets())
}

// Center returns the center of the bounding box relative to the anchor.
func (p *Piece) Center() (cx, cy float64) {
	w, h := p.Bounds()
	return float64(w) / 2, float64(h) / 2
}

// Normalize translates offsets so their minimum X and Y are zero, moving the
// anchor by the same amount so absolute positions are unchanged.
func (p *Piece) Normalize() {
	if len(p.Dice) == 0 {
		return
	}
	minX, minY := minOffset(p.Offsets())
	if minX == 0 && minY == 0 {
		return
	}
	for i := range p.Dice {
		p.Dice[i].Offset.X -= minX
		p.Dice[i].Offset.Y -= minY
	}
	p.X += minX
	p.Y += minY
}

// SetOffsets replaces the offsets in die order. Extra or missing entries are ignored.
func (p *Piece) SetOffsets(offsets []Pos) {
	for i := range p.Dice {
		if i < len(offsets) {
			p.Dice[i].Offset = offsets[i]
		}
	}
}

// RemoveIndices removes the dice at the given indices and returns the removed dice.
// Out-of-range and negative indices are dropped, duplicates are removed, and
// the survivors are applied in descending order so earlier removals never
// shift later ones. An empty valid set is a no-op.
func (p *Piece) RemoveIndices(indices []int) []PieceDie {
	valid := SanitizeIndices(indices, len(p.Dice))
	if len(valid) == 0 {
		return nil
	}
	removed := make([]PieceDie, 0, len(valid))
	for _, i := range valid {
		removed = append(removed, p.Dice[i])
		p.Dice = append(p.Dice[:i], p.Dice[i+1:]...)
	}
	return removed
}

// SanitizeIndices filters an index set against a collection of length n:
// negatives and out-of-range entries are dropped, duplicates collapsed,
// and the result sorted descending.
func SanitizeIndices(indices []int, n int) []int {
	seen := make(map[int]bool, len(indices))
	out := make([]int, 0, len(indices))
	for _, i := range indices {
		if i < 0 || i >= n || seen[i] {
			continue
		}
		seen[i] = true
		out = append(out, i)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// Clone returns a deep copy of the piece.
func (p *Piece) Clone() *Piece {
	dice := make([]PieceDie, len(p.Dice))
	copy(dice, p.Dice)
	return &Piece{X: p.X, Y: p.Y, Shape: p.Shape, Dice: dice}
}

func minOffset(offsets []Pos) (minX, minY int) {
	if len(offsets) == 0 {
		return 0, 0
	}
	minX, minY = offsets[0].X, offsets[0].Y
	for _, o := range offsets[1:] {
		minX = min(minX, o.X)
		minY = min(minY, o.Y)
	}
	return minX, minY
}

func offsetBounds(offsets []Pos) (w, h int) {
	if len(offsets) == 0 {
		return 0, 0
	}
	minX, minY := minOffset(offsets)
	maxX, maxY := offsets[0].X, offsets[0].Y
	for _, o := range offsets[1:] {
		maxX = max(maxX, o.X)
		maxY = max(maxY, o.Y)
	}
	return maxX - minX + 1, maxY - minY + 1
}

// NormalizeOffsets translates offsets so the minimum X and Y are zero.
func NormalizeOffsets(offsets []Pos) []Pos {
	minX, minY := minOffset(offsets)
	out := make([]Pos, len(offsets))
	for i, o := range offsets {
		out[i] = P(o.X-minX, o.Y-minY)
	}
	return out
}
