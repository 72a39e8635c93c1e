package engine

// ScoredGroup is a match group together with the points it earned.
type ScoredGroup struct {
	Group      MatchGroup
	Pass       int // 1-based cascade pass
	Multiplier int // Multiplier applied to this group
	Score      int
}

// CascadeResult summarizes one run of the clear/gravity/detect loop.
type CascadeResult struct {
	Passes     int
	Groups     []ScoredGroup
	Cleared    int // Dice removed from the board
	Dropped    int // Dice moved by gravity
	Score      int
	Multiplier int // Multiplier to carry into the next scored group
	Truncated  bool
}

// MaxCascadePasses bounds the loop: every productive pass clears at least
// threshold cells.
func MaxCascadePasses(b *Board, rules Rules) int {
	return b.W*b.H/rules.threshold() + 1
}

// GroupScore scores a group against the board before it is cleared:
// (size × matchedNumber + Σ sides) × multiplier. Cells converted by a wild
// die count as group members in both terms.
func GroupScore(b *Board, g MatchGroup, multiplier int) int {
	cells := g.AllPositions()
	sides := 0
	for _, p := range cells {
		if d, ok := b.Get(p); ok {
			sides += d.Sides
		}
	}
	return (g.ClearedSize()*g.MatchedNumber + sides) * multiplier
}

// RunCascade detects, scores, clears and compacts until the board is stable.
// multiplier is the current per-piece multiplier (1 after a spawn); it grows
// by one after each scored group and the final value is returned for the
// caller to keep until the next spawn.
func RunCascade(b *Board, rules Rules, multiplier int) CascadeResult {
	if multiplier < 1 {
		multiplier = 1
	}
	res := CascadeResult{Multiplier: multiplier}
	limit := MaxCascadePasses(b, rules)

	for pass := 1; ; pass++ {
		groups := DetectMatches(b, rules)
		if len(groups) == 0 {
			break
		}
		if pass > limit {
			res.Truncated = true
			break
		}
		res.Passes = pass

		var toClear []Pos
		for _, g := range groups {
			score := GroupScore(b, g, res.Multiplier)
			res.Groups = append(res.Groups, ScoredGroup{
				Group:      g,
				Pass:       pass,
				Multiplier: res.Multiplier,
				Score:      score,
			})
			res.Score += score
			res.Multiplier++
			toClear = append(toClear, g.AllPositions()...)
		}

		res.Cleared += b.Clear(toClear)
		res.Dropped += ApplyGravity(b)
	}

	return res
}
