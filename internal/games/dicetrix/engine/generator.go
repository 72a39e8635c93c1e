package engine

import "fmt"

// Generator tuning.
const (
	MaxShapeAttempts = 50
	BlackDieChance   = 0.10
)

// DifficultyModeConfig bounds what the generator may produce.
type DifficultyModeConfig struct {
	MaxPieceWidth   int
	MaxPieceHeight  int
	MaxDicePerPiece int
	AllowedSides    []int   // Face counts to pick from, e.g. 4, 6, 8
	AllowBlackDice  bool    // Each die may become a black wild die
	UniformDice     bool    // One face count for the whole piece
	BoosterChance   float64 // Per-die probability of a booster tag, in [0,1]
}

// Validate checks that the config can produce a piece.
func (c DifficultyModeConfig) Validate() error {
	if !(c.BoosterChance >= 0 && c.BoosterChance <= 1) { // rejects NaN
		return fmt.Errorf("%w: got %v", ErrInvalidBoosterChance, c.BoosterChance)
	}
	if len(c.AllowedSides) == 0 {
		return fmt.Errorf("%w: no allowed face counts", ErrInvalidConfig)
	}
	for _, s := range c.AllowedSides {
		if s < 1 {
			return fmt.Errorf("%w: face count %d", ErrInvalidConfig, s)
		}
	}
	if c.MaxPieceWidth < 1 || c.MaxPieceHeight < 1 || c.MaxDicePerPiece < 1 {
		return fmt.Errorf("%w: piece bounds must be positive", ErrInvalidConfig)
	}
	return nil
}

// GenerationKind tags how a piece was produced.
type GenerationKind int

const (
	Generated GenerationKind = iota
	FellBackToSingleDie
)

// String returns the string representation of the kind.
func (k GenerationKind) String() string {
	if k == FellBackToSingleDie {
		return "fallback"
	}
	return "generated"
}

// Generation is the outcome of one generator call.
type Generation struct {
	Kind     GenerationKind
	Piece    *Piece
	Attempts int // Shape picks made before success or fallback
}

// Generator produces pieces from the shape catalog under a mode config.
type Generator struct {
	cfg       DifficultyModeConfig
	rng       *SimpleRNG
	shapes    []ShapeTemplate
	nextID    int
	connected func([]Pos) bool
}

// NewGenerator validates cfg and creates a generator seeded with seed.
func NewGenerator(cfg DifficultyModeConfig, seed uint64) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Generator{
		cfg:       cfg,
		rng:       NewRNG(seed),
		shapes:    FittingShapes(cfg.MaxPieceWidth, cfg.MaxPieceHeight, cfg.MaxDicePerPiece),
		nextID:    1,
		connected: IsConnected,
	}, nil
}

// Config returns the generator's mode config.
func (g *Generator) Config() DifficultyModeConfig {
	return g.cfg
}

// Next produces a new piece with its anchor at the origin. The caller moves
// it to the spawn anchor.
func (g *Generator) Next() Generation {
	if len(g.shapes) == 0 {
		return Generation{Kind: FellBackToSingleDie, Piece: g.build(ShapeCatalog[0])}
	}

	for attempt := 1; attempt <= MaxShapeAttempts; attempt++ {
		t := g.shapes[g.rng.Intn(len(g.shapes))]
		if !g.connected(t.Cells) {
			continue
		}
		return Generation{Kind: Generated, Piece: g.build(t), Attempts: attempt}
	}
	return Generation{
		Kind:     FellBackToSingleDie,
		Piece:    g.build(ShapeCatalog[0]),
		Attempts: MaxShapeAttempts,
	}
}

func (g *Generator) build(t ShapeTemplate) *Piece {
	uniform := 0
	if g.cfg.UniformDice {
		uniform = g.pickSides()
	}

	dice := make([]PieceDie, len(t.Cells))
	for i, off := range t.Cells {
		var d Die
		switch {
		case g.cfg.UniformDice:
			d = NewDie(g.id(), uniform, g.rng.Roll(uniform))
		case g.cfg.AllowBlackDice && g.rng.Float() < BlackDieChance:
			d = NewBlackDie(g.id(), g.rng.Roll(BlackDieSides))
		default:
			sides := g.pickSides()
			d = NewDie(g.id(), sides, g.rng.Roll(sides))
		}
		if g.cfg.BoosterChance > 0 && g.rng.Float() < g.cfg.BoosterChance {
			d.Booster = BoosterPalette[g.rng.Intn(len(BoosterPalette))]
		}
		dice[i] = PieceDie{Die: d, Offset: off}
	}
	return NewPiece(0, 0, t.Name, dice)
}

func (g *Generator) pickSides() int {
	return g.cfg.AllowedSides[g.rng.Intn(len(g.cfg.AllowedSides))]
}

func (g *Generator) id() int {
	id := g.nextID
	g.nextID++
	return id
}
