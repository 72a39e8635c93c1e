package engine

import (
	"sort"

	"github.com/kamstrup/intmap"
)

// DefaultMatchThreshold is the minimum group size that clears.
const DefaultMatchThreshold = 3

// Rules configures match detection.
type Rules struct {
	MatchThreshold int  // Minimum group size (default 3)
	WildAreaEffect bool // Matched wild dice also clear their 4-neighborhood
}

// DefaultRules returns the standard match rules.
func DefaultRules() Rules {
	return Rules{
		MatchThreshold: DefaultMatchThreshold,
		WildAreaEffect: true,
	}
}

func (r Rules) threshold() int {
	if r.MatchThreshold < 1 {
		return DefaultMatchThreshold
	}
	return r.MatchThreshold
}

// MatchGroup is a maximal 4-connected set of cells sharing a value.
// Wild dice join any adjacent group. Converted holds cells pulled in by the
// area effect of a matched wild die; they clear and score with the group but
// do not count toward the threshold. A converted cell is never part of
// another group.
type MatchGroup struct {
	Positions     []Pos
	Converted     []Pos
	MatchedNumber int // 0 for a group made only of wild dice
	WildOnly      bool
}

// Size returns the number of member cells.
func (g MatchGroup) Size() int {
	return len(g.Positions)
}

// ClearedSize counts members plus converted cells.
func (g MatchGroup) ClearedSize() int {
	return len(g.Positions) + len(g.Converted)
}

// AllPositions returns members followed by converted cells.
func (g MatchGroup) AllPositions() []Pos {
	out := make([]Pos, 0, len(g.Positions)+len(g.Converted))
	out = append(out, g.Positions...)
	return append(out, g.Converted...)
}

// DetectMatches scans the board for match groups at or above the threshold.
// Groups are ordered by matched number, then by their lowest position.
func DetectMatches(b *Board, rules Rules) []MatchGroup {
	threshold := rules.threshold()

	values := distinctValues(b)
	groups := make([]MatchGroup, 0)
	inGroup := intmap.New[int, struct{}](b.W * b.H)

	for _, n := range values {
		visited := intmap.New[int, struct{}](b.W * b.H)
		for y := b.Ground(); y <= b.MaxRow(); y++ {
			for x := 0; x < b.W; x++ {
				seed := P(x, y)
				d, ok := b.Get(seed)
				if !ok || d.IsWild() || d.Value != n {
					continue
				}
				if _, seen := visited.Get(b.index(seed)); seen {
					continue
				}
				members := floodMatch(b, seed, visited, func(d Die) bool {
					return d.IsWild() || d.Value == n
				})
				if len(members) < threshold {
					continue
				}
				for _, m := range members {
					inGroup.Put(b.index(m), struct{}{})
				}
				groups = append(groups, MatchGroup{Positions: members, MatchedNumber: n})
			}
		}
	}

	// Runs of wild dice that touch no reported group still clear on their own.
	visited := intmap.New[int, struct{}](b.W * b.H)
	for y := b.Ground(); y <= b.MaxRow(); y++ {
		for x := 0; x < b.W; x++ {
			seed := P(x, y)
			d, ok := b.Get(seed)
			if !ok || !d.IsWild() {
				continue
			}
			if _, seen := visited.Get(b.index(seed)); seen {
				continue
			}
			members := floodMatch(b, seed, visited, Die.IsWild)
			if len(members) < threshold || anyIn(b, members, inGroup) {
				continue
			}
			for _, m := range members {
				inGroup.Put(b.index(m), struct{}{})
			}
			groups = append(groups, MatchGroup{Positions: members, WildOnly: true})
		}
	}

	if rules.WildAreaEffect {
		// A converted cell belongs to exactly one group: the first that reaches it.
		for i := range groups {
			converted := wildNeighborhood(b, groups[i].Positions)
			kept := converted[:0]
			for _, p := range converted {
				if _, taken := inGroup.Get(b.index(p)); taken {
					continue
				}
				inGroup.Put(b.index(p), struct{}{})
				kept = append(kept, p)
			}
			groups[i].Converted = kept
		}
	}

	return groups
}

// floodMatch collects the 4-connected component containing seed over cells
// whose die satisfies match. Visited cells are recorded in visited.
func floodMatch(b *Board, seed Pos, visited *intmap.Map[int, struct{}], match func(Die) bool) []Pos {
	members := make([]Pos, 0, 4)
	queue := []Pos{seed}
	visited.Put(b.index(seed), struct{}{})

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		members = append(members, cur)

		for _, d := range neighbors4 {
			next := cur.AddPos(d)
			if !b.InBounds(next) {
				continue
			}
			if _, seen := visited.Get(b.index(next)); seen {
				continue
			}
			die, ok := b.Get(next)
			if !ok || !match(die) {
				continue
			}
			visited.Put(b.index(next), struct{}{})
			queue = append(queue, next)
		}
	}

	sortPositions(members)
	return members
}

// wildNeighborhood returns occupied 4-neighbors of the wild members of a group
// that are not members themselves.
func wildNeighborhood(b *Board, members []Pos) []Pos {
	member := make(map[Pos]bool, len(members))
	for _, m := range members {
		member[m] = true
	}

	var converted []Pos
	added := make(map[Pos]bool)
	for _, m := range members {
		d, _ := b.Get(m)
		if !d.IsWild() {
			continue
		}
		for _, delta := range neighbors4 {
			n := m.AddPos(delta)
			if member[n] || added[n] {
				continue
			}
			if _, ok := b.Get(n); !ok {
				continue
			}
			added[n] = true
			converted = append(converted, n)
		}
	}
	sortPositions(converted)
	return converted
}

func distinctValues(b *Board) []int {
	seen := make(map[int]bool)
	values := make([]int, 0)
	for _, c := range b.Cells {
		if !c.Filled || c.Die.IsWild() || seen[c.Die.Value] {
			continue
		}
		seen[c.Die.Value] = true
		values = append(values, c.Die.Value)
	}
	sort.Ints(values)
	return values
}

func anyIn(b *Board, positions []Pos, set *intmap.Map[int, struct{}]) bool {
	for _, p := range positions {
		if _, ok := set.Get(b.index(p)); ok {
			return true
		}
	}
	return false
}

// sortPositions orders positions bottom-left to top-right: Y ascending, then X.
func sortPositions(ps []Pos) {
	sort.SliceStable(ps, func(i, j int) bool {
		if ps[i].Y != ps[j].Y {
			return ps[i].Y < ps[j].Y
		}
		return ps[i].X < ps[j].X
	})
}
