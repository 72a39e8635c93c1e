package engine

import (
	"bytes"
	"errors"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testMode() DifficultyModeConfig {
	return DifficultyModeConfig{
		MaxPieceWidth: 3, MaxPieceHeight: 3, MaxDicePerPiece: 5,
		AllowedSides: []int{4, 6, 8},
	}
}

func newTestEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	cfg := DefaultConfig(testMode())
	cfg.Seed = 7
	e, err := New(cfg, opts...)
	require.NoError(t, err)
	return e
}

func TestNewRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig(testMode())
	cfg.Width = 0
	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrInvalidConfig)

	cfg = DefaultConfig(testMode())
	cfg.Mode.BoosterChance = 2
	_, err = New(cfg)
	assert.ErrorIs(t, err, ErrInvalidBoosterChance)
}

func TestFirstTickSpawns(t *testing.T) {
	e := newTestEngine(t)
	require.Nil(t, e.Active())
	queued := e.Next()
	require.NotNil(t, queued)

	res := e.Tick()

	assert.True(t, res.Spawned)
	active := e.Active()
	require.NotNil(t, active)
	assert.Equal(t, DefaultHeight, active.Y)
	assert.Equal(t, queued.Dice, active.Dice)
	assert.NotNil(t, e.Next())
	assert.Equal(t, 1, e.Stats().Pieces)
	assert.Equal(t, 1, e.Multiplier())
}

func TestActiveIsACopy(t *testing.T) {
	e := newTestEngine(t)
	e.Tick()

	a := e.Active()
	a.X = 99
	assert.NotEqual(t, 99, e.Active().X)
}

func TestMoveAndRotate(t *testing.T) {
	e := newTestEngine(t)
	assert.False(t, e.Move(1), "no piece yet")
	e.Tick()

	x := e.Active().X
	if e.Move(-1) {
		assert.Equal(t, x-1, e.Active().X)
	}
	for i := 0; i < DefaultWidth; i++ {
		e.Move(-1)
	}
	assert.Equal(t, 0, e.Active().X)
	assert.False(t, e.Move(-1))

	before := e.Active()
	if e.Rotate(RotateCW) {
		w1, h1 := before.Bounds()
		w2, h2 := e.Active().Bounds()
		assert.Equal(t, w1, h2)
		assert.Equal(t, h1, w2)
	}
}

func TestSoftDropAwardsPoints(t *testing.T) {
	e := newTestEngine(t)
	e.Tick()
	y := e.Active().Y

	require.True(t, e.SoftDrop())
	assert.Equal(t, y-1, e.Active().Y)
	assert.Equal(t, DefaultSoftDropPoints, e.Score())
}

func TestHardDropLocksOnEmptyBoard(t *testing.T) {
	e := newTestEngine(t)
	e.Tick()
	p := e.Active()

	res := e.HardDrop()

	// On an empty floor every die of the bottom row locks.
	assert.Positive(t, res.Locked)
	assert.Equal(t, res.Before, res.Locked+res.Continuing)
	assert.GreaterOrEqual(t, e.Score(), p.Y*DefaultHardDropPoints)
	if res.Cascade.Passes == 0 {
		for _, pl := range res.LockedAt {
			assert.False(t, e.IsEmpty(pl.Pos.X, pl.Pos.Y))
		}
	}
}

func TestHardDropPreviewMatchesLanding(t *testing.T) {
	e := newTestEngine(t)
	e.Tick()
	preview := e.DropPreview()
	require.NotEmpty(t, preview)

	res := e.HardDrop()

	landed := make(map[Pos]bool)
	for _, pl := range res.LockedAt {
		landed[pl.Pos] = true
	}
	for _, p := range preview {
		if p.Y == 0 {
			assert.True(t, landed[p], "expected lock at %s", p)
		}
	}
}

func TestGameEventuallyEnds(t *testing.T) {
	cfg := DefaultConfig(testMode())
	cfg.Rules.MatchThreshold = 1000
	e, err := New(cfg)
	require.NoError(t, err)

	for i := 0; i < 5000 && !e.GameOver(); i++ {
		if e.Active() != nil {
			e.HardDrop()
			continue
		}
		e.Tick()
	}

	require.True(t, e.GameOver())
	assert.Nil(t, e.Active())
	assert.True(t, e.Tick().GameOver)
	assert.True(t, e.HardDrop().GameOver)
	assert.False(t, e.Move(1))
	assert.ErrorIs(t, e.Spawn(), ErrGameOver)

	s := e.Stats()
	assert.Positive(t, s.Pieces)
	assert.Positive(t, s.DiceLocked)
}

func TestSpawnBlocked(t *testing.T) {
	cfg := DefaultConfig(testMode())
	cfg.Width, cfg.Height = 3, 2
	e, err := New(cfg)
	require.NoError(t, err)
	for x := 0; x < 3; x++ {
		for y := 0; y < 2; y++ {
			e.board.AddPieceAt([]Placement{{Pos: P(x, y), Die: NewDie(100+x*2+y, 20, x*2+y+1)}})
		}
	}

	err = e.Spawn()

	assert.True(t, errors.Is(err, ErrCannotEnterGrid))
	assert.True(t, e.GameOver())
}

func TestScoreAccumulatesCascade(t *testing.T) {
	cfg := DefaultConfig(DifficultyModeConfig{
		MaxPieceWidth: 1, MaxPieceHeight: 1, MaxDicePerPiece: 1, AllowedSides: []int{1},
	})
	cfg.Width, cfg.Height = 3, 4
	e, err := New(cfg)
	require.NoError(t, err)

	// Every die is a d1 showing 1: three singles in a row clear.
	for i := 0; i < 3; i++ {
		e.Tick()
		e.Move(i - 1)
		e.HardDrop()
	}

	s := e.Stats()
	assert.Equal(t, 3, s.Pieces)
	assert.Equal(t, 1, s.Groups)
	assert.Equal(t, 3, s.DiceCleared)
	assert.Equal(t, 1, s.BestMultiplier)
	assert.True(t, e.Board().Equal(NewBoard(3, 4)))
	// Three drops of 4 rows plus (3 × 1 + 3) × 1 for the clear.
	assert.Equal(t, 3*4*DefaultHardDropPoints+6, e.Score())
}

func TestWithLoggerReceivesEvents(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	logger.SetLevel(log.DebugLevel)
	e := newTestEngine(t, WithLogger(logger))

	e.Tick()

	assert.Contains(t, buf.String(), "spawn")
}

func TestBoardIsACopy(t *testing.T) {
	e := newTestEngine(t)
	b := e.Board()
	b.AddPieceAt([]Placement{{Pos: P(0, 0), Die: NewDie(1, 6, 1)}})
	assert.True(t, e.IsEmpty(0, 0))
	_, ok := e.Cell(P(0, 0))
	assert.False(t, ok)
	assert.Len(t, e.Snapshot(), DefaultHeight)
}
