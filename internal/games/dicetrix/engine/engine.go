package engine

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
)

// Default board size and drop bonuses.
const (
	DefaultWidth          = 10
	DefaultHeight         = 16
	DefaultSoftDropPoints = 1
	DefaultHardDropPoints = 2
)

// Config holds everything needed to start a session.
type Config struct {
	Width          int
	Height         int
	Mode           DifficultyModeConfig
	Rules          Rules
	Seed           uint64
	SoftDropPoints int // Points per row of soft drop
	HardDropPoints int // Points per row of hard drop
}

// DefaultConfig returns a 10×16 session with the given generator bounds.
func DefaultConfig(mode DifficultyModeConfig) Config {
	return Config{
		Width:          DefaultWidth,
		Height:         DefaultHeight,
		Mode:           mode,
		Rules:          DefaultRules(),
		SoftDropPoints: DefaultSoftDropPoints,
		HardDropPoints: DefaultHardDropPoints,
	}
}

// Stats tracks run statistics.
type Stats struct {
	Pieces         int // Pieces spawned
	DiceLocked     int
	DiceCleared    int
	Groups         int // Match groups scored
	LongestCascade int // Most passes in one cascade
	BestMultiplier int // Highest multiplier applied to a group
	Fallbacks      int // Generator fell back to a single die
	Recoveries     int // Ticks that needed piece repair
	LockErrors     int
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for engine events.
func WithLogger(l *log.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// Engine is a single Dicetrix session: board, active piece, preview and score.
// It is not safe for concurrent use; callers drive it from one goroutine.
type Engine struct {
	cfg      Config
	board    *Board
	resolver *Resolver
	gen      *Generator
	logger   *log.Logger

	active   *Piece
	next     *Piece
	score    int
	gameOver bool
	stats    Stats
}

// New creates a session. The first piece spawns on the first Tick.
func New(cfg Config, opts ...Option) (*Engine, error) {
	if cfg.Width < 1 || cfg.Height < 1 {
		return nil, fmt.Errorf("%w: board %dx%d", ErrInvalidConfig, cfg.Width, cfg.Height)
	}
	gen, err := NewGenerator(cfg.Mode, cfg.Seed)
	if err != nil {
		return nil, err
	}

	board := NewBoard(cfg.Width, cfg.Height)
	e := &Engine{
		cfg:      cfg,
		board:    board,
		resolver: NewResolver(board, cfg.Rules),
		gen:      gen,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(e)
	}
	e.next = e.generate()
	return e, nil
}

func (e *Engine) generate() *Piece {
	g := e.gen.Next()
	if g.Kind == FellBackToSingleDie {
		e.stats.Fallbacks++
		e.logger.Warn("generator fell back to single die", "attempts", g.Attempts)
	}
	return g.Piece
}

// Spawn moves the queued piece onto the spawn row and queues a new one.
// Returns ErrCannotEnterGrid, and ends the game, when the piece cannot move
// one step below the spawn row.
func (e *Engine) Spawn() error {
	if e.gameOver {
		return ErrGameOver
	}
	p := e.next
	e.next = e.generate()

	spawn := SpawnAnchor(e.board, p)
	p.X, p.Y = spawn.X, spawn.Y
	if !CanPlace(e.board, p, p.X, p.Y+FallStep, nil) {
		e.endGame("spawn blocked")
		return ErrCannotEnterGrid
	}

	e.active = p
	e.resolver.ResetMultiplier()
	e.stats.Pieces++
	e.logger.Debug("spawn", "shape", p.Shape, "dice", p.Len(), "x", p.X)
	return nil
}

func (e *Engine) endGame(reason string) {
	e.gameOver = true
	e.active = nil
	e.logger.Info("game over", "reason", reason, "score", e.score, "pieces", e.stats.Pieces)
}

// Tick advances the simulation by one step: spawns a piece if none is
// falling, otherwise runs one resolver pass.
func (e *Engine) Tick() TickResult {
	if e.gameOver {
		return TickResult{GameOver: true}
	}
	if e.active == nil {
		err := e.Spawn()
		return TickResult{Spawned: err == nil, GameOver: e.gameOver}
	}
	return e.resolve()
}

func (e *Engine) resolve() TickResult {
	next, res := e.resolver.Step(e.active)
	e.active = next

	e.score += res.ScoreDelta
	e.stats.DiceLocked += res.Locked
	e.stats.DiceCleared += res.Cascade.Cleared
	e.stats.Groups += len(res.Cascade.Groups)
	e.stats.LongestCascade = max(e.stats.LongestCascade, res.Cascade.Passes)
	for _, g := range res.Cascade.Groups {
		e.stats.BestMultiplier = max(e.stats.BestMultiplier, g.Multiplier)
	}
	e.stats.LockErrors += len(res.LockErrors)

	if res.Recovery.Any() {
		e.stats.Recoveries++
		e.logger.Warn("piece recovered",
			"dropped_invalid", res.Recovery.DroppedInvalid,
			"dropped_duplicates", res.Recovery.DroppedDuplicates,
			"anchor_reset", res.Recovery.AnchorReset,
			"force_finalized", res.Recovery.ForceFinalized)
	}
	for _, err := range res.LockErrors {
		e.logger.Warn("lock failed", "err", err)
	}
	if res.Cascade.Passes > 0 {
		e.logger.Debug("cascade",
			"passes", res.Cascade.Passes,
			"groups", len(res.Cascade.Groups),
			"cleared", res.Cascade.Cleared,
			"score", res.Cascade.Score)
	}

	// A piece that can neither lock nor fall is wedged above the stack.
	if res.Stalled {
		e.endGame("piece stalled")
		res.GameOver = true
	}
	return res
}

// Move shifts the active piece horizontally. Returns false if rejected.
func (e *Engine) Move(dx int) bool {
	if e.gameOver || e.active == nil {
		return false
	}
	return TryMove(e.board, e.active, dx, 0)
}

// SoftDrop moves the active piece one row down and awards the soft drop bonus.
func (e *Engine) SoftDrop() bool {
	if e.gameOver || e.active == nil {
		return false
	}
	if !TryMove(e.board, e.active, 0, FallStep) {
		return false
	}
	e.score += e.cfg.SoftDropPoints
	return true
}

// Rotate rotates the active piece with wall kicks. Returns false if rejected.
func (e *Engine) Rotate(dir Rotation) bool {
	if e.gameOver || e.active == nil {
		return false
	}
	return TryRotate(e.board, e.active, dir)
}

// HardDrop snaps the active piece as far down as it fits, awards the hard
// drop bonus and forces a resolver tick.
func (e *Engine) HardDrop() TickResult {
	if e.gameOver {
		return TickResult{GameOver: true}
	}
	if e.active == nil {
		return e.Tick()
	}
	dist := DropDistance(e.board, e.active)
	e.active.Y += dist * FallStep
	e.score += dist * e.cfg.HardDropPoints
	return e.resolve()
}

// DropPreview returns where the active piece's dice would land if hard dropped.
func (e *Engine) DropPreview() []Pos {
	if e.active == nil {
		return nil
	}
	ghost := e.active.Clone()
	ghost.Y += DropDistance(e.board, ghost) * FallStep
	return ghost.Positions()
}

// Board returns a copy of the board.
func (e *Engine) Board() *Board {
	return e.board.Clone()
}

// IsEmpty reports whether the board cell at (x, y) is empty.
func (e *Engine) IsEmpty(x, y int) bool {
	return e.board.IsEmpty(x, y)
}

// Cell returns the die at p and whether the cell is occupied.
func (e *Engine) Cell(p Pos) (Die, bool) {
	return e.board.Get(p)
}

// Snapshot returns the board as rows indexed [y][x].
func (e *Engine) Snapshot() [][]Cell {
	return e.board.Snapshot()
}

// Active returns a copy of the falling piece, or nil.
func (e *Engine) Active() *Piece {
	if e.active == nil {
		return nil
	}
	return e.active.Clone()
}

// Falling reports whether a piece is currently in play.
func (e *Engine) Falling() bool {
	return e.active != nil
}

// Next returns a copy of the queued piece.
func (e *Engine) Next() *Piece {
	if e.next == nil {
		return nil
	}
	return e.next.Clone()
}

// Score returns the accumulated score.
func (e *Engine) Score() int {
	return e.score
}

// Multiplier returns the cascade multiplier for the next scored group.
func (e *Engine) Multiplier() int {
	return e.resolver.Multiplier
}

// GameOver reports whether the session has ended.
func (e *Engine) GameOver() bool {
	return e.gameOver
}

// Stats returns the run statistics.
func (e *Engine) Stats() Stats {
	return e.stats
}

// Config returns the session config.
func (e *Engine) Config() Config {
	return e.cfg
}
