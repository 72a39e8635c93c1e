package engine

// Rotation is a quarter-turn direction.
type Rotation int

const (
	RotateCW  Rotation = 1
	RotateCCW Rotation = -1
)

// String returns the string representation of a rotation.
func (r Rotation) String() string {
	switch r {
	case RotateCW:
		return "cw"
	case RotateCCW:
		return "ccw"
	default:
		return "none"
	}
}

// WallKicks is the ordered list of anchor adjustments tried when a rotation
// does not fit at the current anchor.
var WallKicks = []Pos{
	{-1, 0}, {1, 0}, {-2, 0}, {2, 0},
	{0, 1}, {-1, 1}, {1, 1},
	{0, -1},
}

// CanPlace reports whether the piece fits with its anchor at (x, y).
// When offsets is nil the piece's current offsets are used.
// Cells above the top row are allowed (spawn area); cells below ground,
// outside the width, or on an occupied cell are not.
func CanPlace(b *Board, p *Piece, x, y int, offsets []Pos) bool {
	if offsets == nil {
		offsets = p.Offsets()
	}
	for _, o := range offsets {
		ax, ay := x+o.X, y+o.Y
		if ax < 0 || ax >= b.W {
			return false
		}
		if ay < b.Ground() {
			return false
		}
		if ay <= b.MaxRow() && !b.IsEmpty(ax, ay) {
			return false
		}
	}
	return true
}

// RotateOffsets rotates offsets a quarter turn about the origin and
// re-normalizes them so all coordinates are >= 0.
// With Y up, clockwise maps (x, y) to (y, -x).
func RotateOffsets(offsets []Pos, dir Rotation) []Pos {
	out := make([]Pos, len(offsets))
	for i, o := range offsets {
		if dir == RotateCCW {
			out[i] = P(-o.Y, o.X)
		} else {
			out[i] = P(o.Y, -o.X)
		}
	}
	return NormalizeOffsets(out)
}

// TryRotate rotates the piece in place if the rotated offsets fit at the
// current anchor or at one of the wall-kick adjustments.
// On failure the piece is unchanged and false is returned.
func TryRotate(b *Board, p *Piece, dir Rotation) bool {
	if p.Len() <= 1 {
		return p.Len() == 1
	}
	rotated := RotateOffsets(p.Offsets(), dir)
	if CanPlace(b, p, p.X, p.Y, rotated) {
		p.SetOffsets(rotated)
		return true
	}
	for _, k := range WallKicks {
		if CanPlace(b, p, p.X+k.X, p.Y+k.Y, rotated) {
			p.SetOffsets(rotated)
			p.X += k.X
			p.Y += k.Y
			return true
		}
	}
	return false
}

// TryMove shifts the piece anchor by (dx, dy) if the new position is valid.
func TryMove(b *Board, p *Piece, dx, dy int) bool {
	if p.Empty() {
		return false
	}
	if !CanPlace(b, p, p.X+dx, p.Y+dy, nil) {
		return false
	}
	p.X += dx
	p.Y += dy
	return true
}

// DropDistance returns how many FallStep rows the piece can descend as a
// rigid body before it is blocked.
func DropDistance(b *Board, p *Piece) int {
	if p.Empty() {
		return 0
	}
	dist := 0
	for CanPlace(b, p, p.X, p.Y+(dist+1)*FallStep, nil) {
		dist++
	}
	return dist
}
