package engine

import "github.com/kamstrup/intmap"

// RecoveryReport lists the repairs applied to a piece that failed its
// structural checks.
type RecoveryReport struct {
	DroppedInvalid    int  // Dice with impossible sides/value
	DroppedDuplicates int  // Dice repeating an id or an offset
	Renormalized      bool // Offsets were shifted back to >= 0
	AnchorReset       bool // Anchor was moved to the spawn position
	ForceFinalized    bool // No valid die remained
}

// Any reports whether any repair was made.
func (r RecoveryReport) Any() bool {
	return r.DroppedInvalid > 0 || r.DroppedDuplicates > 0 ||
		r.Renormalized || r.AnchorReset || r.ForceFinalized
}

// SpawnAnchor returns the anchor a piece enters the board from: centered
// horizontally, on the first row above the grid.
func SpawnAnchor(b *Board, p *Piece) Pos {
	w, _ := p.Bounds()
	x := (b.W - w) / 2
	if x < 0 {
		x = 0
	}
	return P(x, b.H)
}

// anchorValid reports whether the anchor could belong to a live piece.
// Anything below ground, off either side, or more than one piece height
// above the spawn row is treated as corrupt.
func anchorValid(b *Board, p *Piece) bool {
	w, h := p.Bounds()
	if p.X < 0 || p.X+w > b.W {
		return false
	}
	return p.Y >= b.Ground() && p.Y <= b.H+h
}

// RecoverPiece checks the piece's structural invariants and repairs what it
// can in place: invalid dice are dropped, repeated ids or offsets are
// dropped (first occurrence wins), offsets are re-normalized, and a corrupt
// anchor is reset to the spawn anchor. If no valid die remains the piece is
// emptied and the report is marked ForceFinalized.
func RecoverPiece(b *Board, p *Piece) RecoveryReport {
	var rep RecoveryReport
	if p == nil {
		rep.ForceFinalized = true
		return rep
	}

	ids := intmap.New[int, struct{}](len(p.Dice))
	offsets := make(map[Pos]bool, len(p.Dice))
	kept := p.Dice[:0]
	for _, pd := range p.Dice {
		if !pd.Die.Valid() {
			rep.DroppedInvalid++
			continue
		}
		if _, dup := ids.Get(pd.Die.ID); dup || offsets[pd.Offset] {
			rep.DroppedDuplicates++
			continue
		}
		ids.Put(pd.Die.ID, struct{}{})
		offsets[pd.Offset] = true
		kept = append(kept, pd)
	}
	p.Dice = kept

	if p.Empty() {
		rep.ForceFinalized = true
		return rep
	}

	if minX, minY := minOffset(p.Offsets()); minX != 0 || minY != 0 {
		p.Normalize()
		rep.Renormalized = true
	}

	if !anchorValid(b, p) {
		spawn := SpawnAnchor(b, p)
		p.X, p.Y = spawn.X, spawn.Y
		rep.AnchorReset = true
	}

	return rep
}
