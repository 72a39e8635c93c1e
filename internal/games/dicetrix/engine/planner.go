package engine

// Plan is a target orientation and column for the active piece.
type Plan struct {
	Turns int // Clockwise quarter turns to apply
	X     int // Target anchor column
	Value float64
}

// Planner weights used by Evaluate.
const (
	weightScore     = 1.0
	weightHeight    = -4.0
	weightHoles     = -6.0
	weightNeighbors = 2.0
)

// BestPlan searches every rotation and column for the active piece, plays
// each candidate out on a scratch board, and returns the best-valued one.
// Returns false if there is no active piece or nothing fits.
func BestPlan(e *Engine) (Plan, bool) {
	if e.active == nil || e.gameOver {
		return Plan{}, false
	}

	var best Plan
	found := false
	offsets := e.active.Offsets()
	for turns := 0; turns < 4; turns++ {
		if turns > 0 {
			offsets = RotateOffsets(offsets, RotateCW)
		}
		cand := e.active.Clone()
		cand.SetOffsets(offsets)
		w, _ := cand.Bounds()
		for x := 0; x+w <= e.board.W; x++ {
			if !CanPlace(e.board, cand, x, cand.Y, nil) {
				continue
			}
			trial := cand.Clone()
			trial.X = x
			v := e.simulate(trial)
			if !found || v > best.Value {
				best = Plan{Turns: turns, X: x, Value: v}
				found = true
			}
		}
		if e.active.Len() <= 1 {
			break
		}
	}
	return best, found
}

// simulate hard drops p on a copy of the board, resolves it fully and
// returns the resulting position's value.
func (e *Engine) simulate(p *Piece) float64 {
	b := e.board.Clone()
	r := NewResolver(b, e.cfg.Rules)
	r.Multiplier = e.resolver.Multiplier

	p.Y += DropDistance(b, p) * FallStep
	score := 0
	for i := 0; p != nil && i <= 2*(b.H+p.Len()); i++ {
		var res TickResult
		p, res = r.Step(p)
		score += res.ScoreDelta
		if res.Stalled {
			return -1e9
		}
	}
	return Evaluate(b, score)
}

// Evaluate scores a board after a placement that earned the given points.
func Evaluate(b *Board, score int) float64 {
	maxHeight, holes := 0, 0
	for x := 0; x < b.W; x++ {
		top := -1
		for y := b.MaxRow(); y >= b.Ground(); y-- {
			if !b.IsEmpty(x, y) {
				if top < 0 {
					top = y
				}
			} else if top >= 0 {
				holes++
			}
		}
		maxHeight = max(maxHeight, top+1)
	}

	neighbors := 0
	for _, pl := range b.Placements() {
		for _, d := range [2]Pos{{1, 0}, {0, 1}} {
			other, ok := b.Get(pl.Pos.AddPos(d))
			if ok && (other.Value == pl.Die.Value || other.IsWild() || pl.Die.IsWild()) {
				neighbors++
			}
		}
	}

	return weightScore*float64(score) +
		weightHeight*float64(maxHeight) +
		weightHoles*float64(holes) +
		weightNeighbors*float64(neighbors)
}

// ApplyPlan steers the active piece toward the plan and hard drops it.
// Rotation uses wall kicks, so the final column is approached by moving.
func (e *Engine) ApplyPlan(plan Plan) TickResult {
	for i := 0; i < plan.Turns; i++ {
		e.Rotate(RotateCW)
	}
	for e.active != nil && e.active.X != plan.X {
		dx := 1
		if plan.X < e.active.X {
			dx = -1
		}
		if !e.Move(dx) {
			break
		}
	}
	return e.HardDrop()
}

// AutoPlay runs the planner until the game ends or pieces have been placed.
// It returns the number of pieces placed.
func (e *Engine) AutoPlay(pieces int) int {
	placed := 0
	for placed < pieces && !e.gameOver {
		if e.active == nil {
			e.Tick()
			continue
		}
		plan, ok := BestPlan(e)
		if !ok {
			e.Tick()
			continue
		}
		e.ApplyPlan(plan)
		// Let any dice that were held up by uneven ground finish falling.
		for e.active != nil && !e.gameOver {
			e.Tick()
		}
		placed++
	}
	return placed
}
