// Package engine provides the Dicetrix simulation: the occupancy board, the
// placement validator, the per-die collision and locking resolver, the match
// and cascade engine and the procedural piece generator.
// This package is UI-agnostic and deterministic for a given seed.
package engine

import "fmt"

// Pos is a cell position or a piece offset.
// Origin is bottom-left, X increases to the right, Y increases upward.
type Pos struct {
	X int
	Y int
}

// P is a convenience constructor for Pos.
func P(x, y int) Pos {
	return Pos{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Pos) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns p offset by (dx, dy).
func (p Pos) Add(dx, dy int) Pos {
	return Pos{X: p.X + dx, Y: p.Y + dy}
}

// AddPos returns the sum of two positions.
func (p Pos) AddPos(o Pos) Pos {
	return Pos{X: p.X + o.X, Y: p.Y + o.Y}
}

// FallStep is the Y delta of one downward simulation step.
const FallStep = -1

// neighbors4 lists the 4-adjacency deltas.
var neighbors4 = [4]Pos{{1, 0}, {-1, 0}, {0, 1}, {0, -1}}

// Color is the color tag of a die, derived from its face count.
type Color uint8

const (
	ColorNone Color = iota
	ColorRed
	ColorBlue
	ColorGreen
	ColorYellow
	ColorPurple
	ColorOrange
	ColorBlack
)

// String returns the string representation of a color.
func (c Color) String() string {
	switch c {
	case ColorRed:
		return "red"
	case ColorBlue:
		return "blue"
	case ColorGreen:
		return "green"
	case ColorYellow:
		return "yellow"
	case ColorPurple:
		return "purple"
	case ColorOrange:
		return "orange"
	case ColorBlack:
		return "black"
	default:
		return "none"
	}
}

// ColorForSides returns the conventional color for a die with the given face count.
func ColorForSides(sides int) Color {
	switch sides {
	case 4:
		return ColorRed
	case 6:
		return ColorBlue
	case 8:
		return ColorGreen
	case 10:
		return ColorYellow
	case 12:
		return ColorPurple
	case 20:
		return ColorOrange
	default:
		return ColorNone
	}
}

// Booster is a cosmetic tag assigned at generation time.
type Booster uint8

const (
	BoosterNone Booster = iota
	BoosterRed
	BoosterOrange
	BoosterYellow
	BoosterGreen
	BoosterBlue
	BoosterPurple
	BoosterTeal
)

// BoosterPalette is the set of tags a booster roll picks from.
var BoosterPalette = []Booster{
	BoosterRed, BoosterOrange, BoosterYellow, BoosterGreen,
	BoosterBlue, BoosterPurple, BoosterTeal,
}

// String returns the string representation of a booster.
func (b Booster) String() string {
	switch b {
	case BoosterRed:
		return "red"
	case BoosterOrange:
		return "orange"
	case BoosterYellow:
		return "yellow"
	case BoosterGreen:
		return "green"
	case BoosterBlue:
		return "blue"
	case BoosterPurple:
		return "purple"
	case BoosterTeal:
		return "teal"
	default:
		return "none"
	}
}

// BlackDieSides is the face count of a black (wild) die.
const BlackDieSides = 20

// Die is a single numbered unit carried by a piece or a board cell.
type Die struct {
	ID      int
	Sides   int
	Value   int
	Color   Color
	Wild    bool
	Black   bool
	Booster Booster
}

// NewDie creates a regular die with the color for its face count.
func NewDie(id, sides, value int) Die {
	return Die{
		ID:    id,
		Sides: sides,
		Value: value,
		Color: ColorForSides(sides),
	}
}

// NewBlackDie creates a black wild die.
func NewBlackDie(id, value int) Die {
	return Die{
		ID:    id,
		Sides: BlackDieSides,
		Value: value,
		Color: ColorBlack,
		Wild:  true,
		Black: true,
	}
}

// IsWild reports whether the die matches any value.
func (d Die) IsWild() bool {
	return d.Wild || d.Black
}

// Valid reports whether the die fields are structurally sound.
func (d Die) Valid() bool {
	return d.Sides >= 1 && d.Value >= 1 && d.Value <= d.Sides
}

// String returns a short description of the die, e.g. "d6:4#12".
func (d Die) String() string {
	if d.IsWild() {
		return fmt.Sprintf("w%d:%d#%d", d.Sides, d.Value, d.ID)
	}
	return fmt.Sprintf("d%d:%d#%d", d.Sides, d.Value, d.ID)
}
