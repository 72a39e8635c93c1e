package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is returned when a board write targets a cell outside the grid.
	ErrOutOfBounds = errors.New("engine: position out of bounds")

	// ErrCellOccupied is returned when a lock targets an occupied cell.
	ErrCellOccupied = errors.New("engine: cell already occupied")

	// ErrCannotEnterGrid signals that a new piece cannot be placed: game over.
	ErrCannotEnterGrid = errors.New("engine: piece cannot enter grid")

	// ErrGameOver is returned by operations attempted after game over.
	ErrGameOver = errors.New("engine: game over")

	// ErrInvalidBoosterChance rejects booster probabilities outside [0,1].
	ErrInvalidBoosterChance = errors.New("engine: booster chance must be within [0,1]")

	// ErrInvalidConfig rejects generator configs that cannot produce a die.
	ErrInvalidConfig = errors.New("engine: invalid difficulty mode config")
)

// LockError reports a single die that could not be written to the board.
// The die stays in the falling set and is re-evaluated next tick.
type LockError struct {
	DieID int
	Pos   Pos
	Err   error
}

func (e *LockError) Error() string {
	return fmt.Sprintf("engine: lock die %d at %s: %v", e.DieID, e.Pos, e.Err)
}

func (e *LockError) Unwrap() error {
	return e.Err
}
