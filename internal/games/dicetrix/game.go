// Package dicetrix adapts the dice engine to the platform Game interface.
// Each configured mode registers as its own game.
package dicetrix

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/config"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/core"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/games/dicetrix/engine"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/registry"
)

// cascadeFlashTicks is how long the cascade banner stays on screen.
const cascadeFlashTicks = 45

var logger = log.New(io.Discard)

// SetLogger sets the logger handed to every new engine.
func SetLogger(l *log.Logger) {
	if l != nil {
		logger = l
	}
}

// Game is one Dicetrix mode driven by the platform loop.
type Game struct {
	mode config.ModeConfig
	eng  *engine.Engine
	diff *config.DifficultyManager
	err  error

	tick        int
	fallCounter int

	// Last cascade, for the HUD banner
	lastCascade engine.CascadeResult
	flashTicks  int

	// Screen dimensions
	screenW int
	screenH int

	paused   bool
	tooSmall bool
}

// New creates a game for the given mode.
func New(mode config.ModeConfig) *Game {
	return &Game{mode: mode}
}

func init() {
	for _, m := range config.DefaultModes().Modes {
		registry.Register(m.ID, factory(m))
	}
}

func factory(m config.ModeConfig) registry.Factory {
	return func() registry.Game {
		return New(m)
	}
}

// RegisterModes registers every mode in f, replacing built-in modes that
// share an ID.
func RegisterModes(f config.ModesFile) {
	for _, m := range f.Modes {
		registry.Replace(m.ID, factory(m))
	}
}

// Create builds the registered mode id with a difficulty preset applied.
// An empty preset keeps the mode's own progression.
func Create(id string, preset config.DifficultyPreset) (*Game, error) {
	rg, err := registry.Create(id)
	if err != nil {
		return nil, err
	}
	g, ok := rg.(*Game)
	if !ok {
		return nil, fmt.Errorf("dicetrix: %q is not a dicetrix mode", id)
	}
	m := g.Mode()
	config.ApplyPreset(&m, preset)
	return New(m), nil
}

// EngineConfig converts a mode into an engine session config.
func EngineConfig(m config.ModeConfig, seed uint64) engine.Config {
	return engine.Config{
		Width:  m.Board.Width,
		Height: m.Board.Height,
		Mode: engine.DifficultyModeConfig{
			MaxPieceWidth:   m.Generator.MaxPieceWidth,
			MaxPieceHeight:  m.Generator.MaxPieceHeight,
			MaxDicePerPiece: m.Generator.MaxDicePerPiece,
			AllowedSides:    m.Generator.AllowedSides,
			AllowBlackDice:  m.Generator.AllowBlackDice,
			UniformDice:     m.Generator.UniformDice,
			BoosterChance:   m.Generator.BoosterChance,
		},
		Rules: engine.Rules{
			MatchThreshold: m.Gameplay.MatchThreshold,
			WildAreaEffect: m.Gameplay.WildAreaEffect,
		},
		Seed:           seed,
		SoftDropPoints: m.Gameplay.SoftDropPoints,
		HardDropPoints: m.Gameplay.HardDropPoints,
	}
}

// ID returns the mode identifier.
func (g *Game) ID() string {
	return g.mode.ID
}

// Title returns the display name.
func (g *Game) Title() string {
	if g.mode.Name == "" {
		return "Dicetrix"
	}
	return "Dicetrix (" + g.mode.Name + ")"
}

// Mode returns the mode this game was created with.
func (g *Game) Mode() config.ModeConfig {
	return g.mode
}

// Reset initializes/restarts the game.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.screenW = cfg.ScreenW
	g.screenH = cfg.ScreenH
	g.tick = 0
	g.fallCounter = 0
	g.paused = false
	g.lastCascade = engine.CascadeResult{}
	g.flashTicks = 0

	g.diff = config.NewDifficultyManager(g.mode.Difficulty)
	g.eng, g.err = engine.New(EngineConfig(g.mode, uint64(cfg.Seed)), engine.WithLogger(logger))
	if g.err != nil {
		logger.Error("engine setup failed", "mode", g.mode.ID, "err", g.err)
	}

	g.checkScreenSize()
}

// Resize updates the screen dimensions without restarting the run.
func (g *Game) Resize(w, h int) {
	g.screenW = w
	g.screenH = h
	g.checkScreenSize()
}

// checkScreenSize checks if the screen is large enough.
func (g *Game) checkScreenSize() {
	minW, minH := g.minSize()
	g.tooSmall = g.screenW < minW || g.screenH < minH
}

// Step advances the game by one tick.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	if g.flashTicks > 0 {
		g.flashTicks--
	}

	if g.tooSmall || g.eng == nil {
		return g.result(engine.TickResult{})
	}

	// Handle pause
	if in.Has(core.ActionPause) && !g.eng.GameOver() {
		g.paused = !g.paused
	}
	if g.paused || g.eng.GameOver() {
		return g.result(engine.TickResult{})
	}

	var acc engine.TickResult
	if !g.eng.Falling() {
		g.fallCounter = 0
		g.absorb(&acc, g.eng.Tick())
	}

	for i := 0; i < in.Count(core.ActionLeft); i++ {
		g.eng.Move(-1)
	}
	for i := 0; i < in.Count(core.ActionRight); i++ {
		g.eng.Move(1)
	}
	for i := 0; i < in.Count(core.ActionRotateCW); i++ {
		g.eng.Rotate(engine.RotateCW)
	}
	for i := 0; i < in.Count(core.ActionRotateCCW); i++ {
		g.eng.Rotate(engine.RotateCCW)
	}
	for i := 0; i < in.Count(core.ActionSoftDrop); i++ {
		if !g.eng.SoftDrop() {
			// Already resting on something: resolve now instead of waiting
			g.fallCounter = 0
			g.absorb(&acc, g.eng.Tick())
			break
		}
	}
	if in.Has(core.ActionHardDrop) && g.eng.Falling() {
		g.fallCounter = 0
		g.absorb(&acc, g.eng.HardDrop())
	}

	if g.eng.Falling() && !g.eng.GameOver() {
		g.fallCounter++
		if g.fallCounter >= g.FallInterval() {
			g.fallCounter = 0
			g.absorb(&acc, g.eng.Tick())
		}
	}

	return g.result(acc)
}

// absorb folds a tick result into acc and updates the cascade banner.
func (g *Game) absorb(acc *engine.TickResult, r engine.TickResult) {
	acc.Locked += r.Locked
	acc.ScoreDelta += r.ScoreDelta
	acc.Cascade.Passes += r.Cascade.Passes
	acc.Cascade.Cleared += r.Cascade.Cleared
	acc.Spawned = acc.Spawned || r.Spawned
	acc.GameOver = acc.GameOver || r.GameOver
	if r.Cascade.Passes > 0 {
		g.lastCascade = r.Cascade
		g.flashTicks = cascadeFlashTicks
	}
}

func (g *Game) result(r engine.TickResult) core.StepResult {
	return core.StepResult{
		State:   g.State(),
		Stats:   g.Stats(),
		Cleared: r.Cascade.Cleared,
		Cascade: r.Cascade.Passes,
	}
}

// FallInterval returns the current ticks between gravity steps.
func (g *Game) FallInterval() int {
	if g.diff == nil || g.eng == nil {
		return g.mode.Gameplay.FallInterval
	}
	return g.diff.FallInterval(g.mode.Gameplay.FallInterval, g.mode.Gameplay.MinFallInterval, config.Progress{
		Score:  g.eng.Score(),
		Ticks:  g.tick,
		Pieces: g.eng.Stats().Pieces,
	})
}

// Stats returns the run counters for the current session.
func (g *Game) Stats() core.RunStats {
	if g.eng == nil {
		return core.RunStats{Ticks: g.tick}
	}
	s := g.eng.Stats()
	return core.RunStats{
		Pieces:         s.Pieces,
		DiceCleared:    s.DiceCleared,
		Groups:         s.Groups,
		LongestCascade: s.LongestCascade,
		BestMultiplier: s.BestMultiplier,
		Ticks:          g.tick,
	}
}

// Engine exposes the underlying session, mainly for tests and tooling.
func (g *Game) Engine() *engine.Engine {
	return g.eng
}

// Err returns the engine setup error, if any.
func (g *Game) Err() error {
	return g.err
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	if g.eng == nil {
		// A mode that cannot build an engine is over before it starts.
		return core.GameState{GameOver: g.err != nil}
	}
	return core.GameState{
		Score:    g.eng.Score(),
		GameOver: g.eng.GameOver(),
		Paused:   g.paused || g.tooSmall,
	}
}
