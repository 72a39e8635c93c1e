package engine

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleDieFallsToGround(t *testing.T) {
	b := NewBoard(10, 16)
	r := NewResolver(b, DefaultRules())
	p := NewPiece(5, 16, "single", []PieceDie{{Die: NewDie(1, 6, 6)}})

	p, res := r.Step(p)
	require.NotNil(t, p)
	assert.True(t, res.Moved)
	assert.Equal(t, P(5, 15), p.Anchor())

	for i := 0; i < 15; i++ {
		p, res = r.Step(p)
		require.NotNil(t, p, "tick %d", i)
		assert.Zero(t, res.Locked)
	}
	assert.Equal(t, P(5, 0), p.Anchor())
	assert.True(t, b.IsEmpty(5, 0))

	p, res = r.Step(p)
	assert.Nil(t, p)
	assert.True(t, res.Finalized)
	assert.Equal(t, 1, res.Locked)
	assert.False(t, b.IsEmpty(5, 0))
	d, ok := b.Get(P(5, 0))
	require.True(t, ok)
	assert.Equal(t, 6, d.Value)
}

func TestBlockedDieLocksWhileNeighborFalls(t *testing.T) {
	b := NewBoard(10, 16)
	b.AddPieceAt([]Placement{{Pos: P(4, 1), Die: NewDie(99, 8, 7)}})
	r := NewResolver(b, DefaultRules())
	p := NewPiece(4, 2, "domino", []PieceDie{
		{Die: NewDie(1, 6, 1), Offset: P(0, 0)},
		{Die: NewDie(2, 6, 2), Offset: P(1, 0)},
	})

	p, res := r.Step(p)

	require.NotNil(t, p)
	assert.Equal(t, 2, res.Before)
	assert.Equal(t, 1, res.Locked)
	assert.Equal(t, 1, res.Continuing)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, 2, p.Dice[0].Die.ID)
	assert.True(t, res.Moved)
	assert.Equal(t, P(5, 1), p.Anchor())

	d, ok := b.Get(P(4, 2))
	require.True(t, ok)
	assert.Equal(t, 1, d.ID)
}

func TestBottomUpLockingStacksWithinOneTick(t *testing.T) {
	b := NewBoard(10, 16)
	b.AddPieceAt([]Placement{{Pos: P(4, 1), Die: NewDie(99, 8, 7)}})
	r := NewResolver(b, DefaultRules())
	p := NewPiece(4, 2, "domino-v", []PieceDie{
		{Die: NewDie(1, 6, 1), Offset: P(0, 1)},
		{Die: NewDie(2, 6, 2), Offset: P(0, 0)},
	})

	p, res := r.Step(p)

	assert.Nil(t, p)
	assert.True(t, res.Finalized)
	assert.Equal(t, 2, res.Locked)
	require.Len(t, res.LockedAt, 2)
	assert.Equal(t, P(4, 2), res.LockedAt[0].Pos)
	assert.Equal(t, P(4, 3), res.LockedAt[1].Pos)
}

func TestBottomUpOrder(t *testing.T) {
	p := NewPiece(0, 0, "t", []PieceDie{
		{Die: NewDie(1, 6, 1), Offset: P(0, 1)},
		{Die: NewDie(2, 6, 1), Offset: P(1, 1)},
		{Die: NewDie(3, 6, 1), Offset: P(2, 1)},
		{Die: NewDie(4, 6, 1), Offset: P(1, 0)},
	})

	assert.Equal(t, []int{3, 0, 1, 2}, BottomUpOrder(p))
}

func TestLockedPlusContinuingEqualsBefore(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		rng := NewRNG(seed)
		b := NewBoard(8, 12)
		for i := 0; i < 20; i++ {
			pos := P(rng.Intn(b.W), rng.Intn(6))
			b.AddPieceAt([]Placement{{Pos: pos, Die: NewDie(1000+i, 20, rng.Roll(20))}})
		}

		gen, err := NewGenerator(DifficultyModeConfig{
			MaxPieceWidth: 4, MaxPieceHeight: 4, MaxDicePerPiece: 8,
			AllowedSides: []int{4, 6, 8},
		}, seed)
		require.NoError(t, err)

		r := NewResolver(b, DefaultRules())
		p := gen.Next().Piece
		spawn := SpawnAnchor(b, p)
		p.X, p.Y = spawn.X, spawn.Y

		for tick := 0; p != nil && tick < 50; tick++ {
			var res TickResult
			p, res = r.Step(p)
			assert.Equal(t, res.Before, res.Locked+res.Continuing, "seed %d tick %d", seed, tick)
			if res.Stalled {
				break
			}
		}
	}
}

func TestLockOntoScoresCascade(t *testing.T) {
	b := NewBoard(6, 6)
	b.AddPieceAt([]Placement{
		{Pos: P(2, 0), Die: NewDie(10, 6, 4)},
		{Pos: P(3, 0), Die: NewDie(11, 6, 4)},
	})
	r := NewResolver(b, DefaultRules())
	p := NewPiece(4, 0, "single", []PieceDie{{Die: NewDie(1, 6, 4)}})

	p, res := r.Step(p)

	assert.Nil(t, p)
	assert.Equal(t, 1, res.Cascade.Passes)
	// (3 × 4 + 3 × 6) × 1
	assert.Equal(t, 30, res.ScoreDelta)
	assert.Equal(t, 2, r.Multiplier)
	assert.Zero(t, b.FilledCount())
}

func TestLockCollisionKeepsDieFalling(t *testing.T) {
	b := NewBoard(1, 2)
	b.AddPieceAt([]Placement{
		{Pos: P(0, 0), Die: NewDie(10, 6, 1)},
		{Pos: P(0, 1), Die: NewDie(11, 6, 2)},
	})
	r := NewResolver(b, DefaultRules())
	p := NewPiece(0, 2, "single", []PieceDie{{Die: NewDie(1, 6, 3)}})

	p, res := r.Step(p)

	require.NotNil(t, p)
	assert.Zero(t, res.Locked)
	assert.Equal(t, 1, res.Continuing)
	assert.True(t, res.Stalled)
	require.Len(t, res.LockErrors, 1)

	var lockErr *LockError
	require.True(t, errors.As(res.LockErrors[0], &lockErr))
	assert.Equal(t, 1, lockErr.DieID)
	assert.ErrorIs(t, res.LockErrors[0], ErrCellOccupied)
}

func TestStepRecoversCorruptPiece(t *testing.T) {
	b := NewBoard(10, 16)
	r := NewResolver(b, DefaultRules())
	p := &Piece{X: 4, Y: 10, Dice: []PieceDie{
		{Die: NewDie(1, 6, 3), Offset: P(0, 0)},
		{Die: NewDie(1, 6, 5), Offset: P(1, 0)},                // duplicate id
		{Die: Die{ID: 2, Sides: 6, Value: 9}, Offset: P(0, 1)}, // impossible value
		{Die: NewDie(3, 6, 2), Offset: P(0, 0)},                // duplicate offset
	}}

	p, res := r.Step(p)

	require.NotNil(t, p)
	assert.Equal(t, 1, res.Recovery.DroppedInvalid)
	assert.Equal(t, 2, res.Recovery.DroppedDuplicates)
	assert.Equal(t, 1, res.Before)
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, P(4, 9), p.Anchor())
}

func TestStepResetsCorruptAnchor(t *testing.T) {
	b := NewBoard(10, 16)
	r := NewResolver(b, DefaultRules())
	p := &Piece{X: -40, Y: -3, Dice: []PieceDie{{Die: NewDie(1, 6, 3)}}}

	p, res := r.Step(p)

	require.NotNil(t, p)
	assert.True(t, res.Recovery.AnchorReset)
	assert.Equal(t, P(4, 15), p.Anchor())
}

func TestStepForceFinalizesWhenNothingValid(t *testing.T) {
	b := NewBoard(10, 16)
	r := NewResolver(b, DefaultRules())
	p := &Piece{X: 3, Y: 8, Dice: []PieceDie{
		{Die: Die{ID: 1, Sides: 0, Value: 1}},
		{Die: Die{ID: 2, Sides: 6, Value: 0}},
	}}

	p, res := r.Step(p)

	assert.Nil(t, p)
	assert.True(t, res.Finalized)
	assert.True(t, res.Recovery.ForceFinalized)
	assert.Zero(t, b.FilledCount())
}

func TestStepNilPiece(t *testing.T) {
	r := NewResolver(NewBoard(4, 4), DefaultRules())
	p, res := r.Step(nil)
	assert.Nil(t, p)
	assert.True(t, res.Finalized)
}
