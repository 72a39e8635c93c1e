package engine

import "sort"

// TickResult reports what one resolver pass did.
type TickResult struct {
	Before     int         // Dice in the piece when the tick started
	Locked     int         // Dice written to the board
	Continuing int         // Dice still in the piece
	Moved      bool        // Anchor moved down one step
	Finalized  bool        // Piece has no dice left
	Stalled    bool        // Dice remain but none could lock or move
	LockedAt   []Placement // Where each locked die landed
	LockErrors []error     // *LockError per failed write
	Cascade    CascadeResult
	ScoreDelta int
	Recovery   RecoveryReport
	Spawned    bool // A new piece entered this tick
	GameOver   bool
}

// Resolver runs the per-tick collision and locking pass against a board.
// It owns the cascade multiplier for the piece currently falling.
type Resolver struct {
	Board      *Board
	Rules      Rules
	Multiplier int
}

// NewResolver creates a resolver for the board with the multiplier at 1.
func NewResolver(b *Board, rules Rules) *Resolver {
	return &Resolver{Board: b, Rules: rules, Multiplier: 1}
}

// ResetMultiplier sets the cascade multiplier back to 1. Called on spawn.
func (r *Resolver) ResetMultiplier() {
	r.Multiplier = 1
}

// BottomUpOrder returns die indices ordered by absolute Y ascending, then X
// ascending. Lower dice lock first so they become obstacles for the dice
// above them within the same tick.
func BottomUpOrder(p *Piece) []int {
	pos := p.Positions()
	order := make([]int, len(pos))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		pa, pb := pos[order[a]], pos[order[b]]
		if pa.Y != pb.Y {
			return pa.Y < pb.Y
		}
		return pa.X < pb.X
	})
	return order
}

// blocked reports whether a die whose next position is cand must lock.
func (r *Resolver) blocked(cand Pos) bool {
	if cand.Y < r.Board.Ground() || cand.X < 0 || cand.X >= r.Board.W {
		return true
	}
	if cand.Y > r.Board.MaxRow() {
		return false
	}
	return !r.Board.IsEmpty(cand.X, cand.Y)
}

func (r *Resolver) clamp(p Pos) Pos {
	p.X = min(max(p.X, 0), r.Board.W-1)
	p.Y = min(max(p.Y, r.Board.Ground()), r.Board.MaxRow())
	return p
}

// Step advances the piece by one tick and returns the piece to keep falling,
// or nil when it has been fully resolved.
//
// Every die is tested in BottomUpOrder against the live board. A die whose
// next cell is below ground, outside the width, or occupied is locked at its
// (clamped) current cell; the rest keep falling. Locked dice leave the piece
// in one pass and the cascade runs once if anything locked. The anchor then
// drops one row when any die is still falling and the lowered piece fits the
// post-cascade board.
func (r *Resolver) Step(p *Piece) (*Piece, TickResult) {
	var res TickResult

	res.Recovery = RecoverPiece(r.Board, p)
	if p == nil || p.Empty() {
		res.Finalized = true
		return nil, res
	}
	res.Before = p.Len()

	var lockIdx []int
	falling := 0
	for _, i := range BottomUpOrder(p) {
		pd := p.Dice[i]
		cur := p.Anchor().AddPos(pd.Offset)
		if !r.blocked(cur.Add(0, FallStep)) {
			falling++
			continue
		}
		at := r.clamp(cur)
		if err := r.Board.Lock(at, pd.Die); err != nil {
			res.LockErrors = append(res.LockErrors, &LockError{DieID: pd.Die.ID, Pos: at, Err: err})
			continue
		}
		lockIdx = append(lockIdx, i)
		res.LockedAt = append(res.LockedAt, Placement{Pos: at, Die: pd.Die})
	}

	res.Locked = len(p.RemoveIndices(lockIdx))
	res.Continuing = p.Len()
	p.Normalize()

	if res.Locked > 0 {
		res.Cascade = RunCascade(r.Board, r.Rules, r.Multiplier)
		r.Multiplier = res.Cascade.Multiplier
		res.ScoreDelta = res.Cascade.Score
	}

	if p.Empty() {
		res.Finalized = true
		return nil, res
	}

	if falling > 0 && CanPlace(r.Board, p, p.X, p.Y+FallStep, nil) {
		p.Y += FallStep
		res.Moved = true
	}
	res.Stalled = res.Locked == 0 && !res.Moved

	after := RecoverPiece(r.Board, p)
	if after.Any() {
		res.Recovery = mergeRecovery(res.Recovery, after)
	}
	if p.Empty() {
		res.Finalized = true
		return nil, res
	}
	return p, res
}

func mergeRecovery(a, b RecoveryReport) RecoveryReport {
	return RecoveryReport{
		DroppedInvalid:    a.DroppedInvalid + b.DroppedInvalid,
		DroppedDuplicates: a.DroppedDuplicates + b.DroppedDuplicates,
		Renormalized:      a.Renormalized || b.Renormalized,
		AnchorReset:       a.AnchorReset || b.AnchorReset,
		ForceFinalized:    a.ForceFinalized || b.ForceFinalized,
	}
}
