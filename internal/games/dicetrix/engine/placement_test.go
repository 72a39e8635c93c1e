package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func piece(x, y int, offsets ...Pos) *Piece {
	dice := make([]PieceDie, len(offsets))
	for i, o := range offsets {
		dice[i] = PieceDie{Die: NewDie(i+1, 6, i%6+1), Offset: o}
	}
	return NewPiece(x, y, "test", dice)
}

func TestCanPlace(t *testing.T) {
	b := NewBoard(5, 5)
	b.AddPieceAt([]Placement{{Pos: P(2, 0), Die: NewDie(99, 6, 1)}})
	p := piece(0, 0, P(0, 0), P(1, 0))

	tests := []struct {
		name string
		x, y int
		want bool
	}{
		{"open floor", 0, 0, true},
		{"left wall", -1, 0, false},
		{"right wall", 4, 0, false},
		{"below ground", 0, -1, false},
		{"onto obstacle", 1, 0, false},
		{"above obstacle", 1, 1, true},
		{"above top row", 0, 7, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CanPlace(b, p, tt.x, tt.y, nil))
		})
	}
}

func TestCanPlaceHasNoSideEffects(t *testing.T) {
	b := NewBoard(5, 5)
	p := piece(1, 1, P(0, 0), P(0, 1))
	before := b.Clone()
	pb := p.Clone()

	CanPlace(b, p, 3, 3, []Pos{P(0, 0), P(1, 0)})

	assert.True(t, b.Equal(before))
	assert.Equal(t, pb, p)
}

func TestRotateOffsetsNormalizes(t *testing.T) {
	line := []Pos{P(0, 0), P(1, 0), P(2, 0)}

	cw := RotateOffsets(line, RotateCW)
	assert.ElementsMatch(t, []Pos{P(0, 0), P(0, 1), P(0, 2)}, cw)

	ccw := RotateOffsets(line, RotateCCW)
	assert.ElementsMatch(t, []Pos{P(0, 0), P(0, 1), P(0, 2)}, ccw)

	for _, o := range RotateOffsets([]Pos{P(0, 0), P(1, 0), P(0, 1)}, RotateCW) {
		assert.GreaterOrEqual(t, o.X, 0)
		assert.GreaterOrEqual(t, o.Y, 0)
	}
}

func TestRotateFourTimesIsIdentity(t *testing.T) {
	l := []Pos{P(0, 0), P(0, 1), P(0, 2), P(1, 0)}
	got := l
	for i := 0; i < 4; i++ {
		got = RotateOffsets(got, RotateCW)
	}
	assert.Equal(t, l, got)
}

func TestTryRotateWallKick(t *testing.T) {
	b := NewBoard(4, 6)
	// Vertical line against the right wall: rotating flat needs a kick left.
	p := piece(3, 1, P(0, 0), P(0, 1), P(0, 2))

	require.True(t, TryRotate(b, p, RotateCW))
	w, h := p.Bounds()
	assert.Equal(t, 3, w)
	assert.Equal(t, 1, h)
	assert.LessOrEqual(t, p.X+w, b.W)
}

func TestTryRotateRejectedLeavesPiece(t *testing.T) {
	b := NewBoard(1, 6)
	p := piece(0, 0, P(0, 0), P(0, 1))
	before := p.Clone()

	assert.False(t, TryRotate(b, p, RotateCW))
	assert.Equal(t, before, p)
}

func TestTryMove(t *testing.T) {
	b := NewBoard(4, 4)
	p := piece(0, 2, P(0, 0))

	assert.False(t, TryMove(b, p, -1, 0))
	assert.True(t, TryMove(b, p, 1, 0))
	assert.Equal(t, P(1, 2), p.Anchor())
	assert.True(t, TryMove(b, p, 0, FallStep))
	assert.Equal(t, P(1, 1), p.Anchor())
}

func TestDropDistance(t *testing.T) {
	b := NewBoard(4, 8)
	b.AddPieceAt([]Placement{{Pos: P(1, 2), Die: NewDie(50, 6, 1)}})

	assert.Equal(t, 7, DropDistance(b, piece(0, 7, P(0, 0))))
	assert.Equal(t, 4, DropDistance(b, piece(1, 7, P(0, 0))))
	assert.Equal(t, 2, DropDistance(b, piece(0, 5, P(0, 0), P(1, 0))))
}
