package config

import "math"

// Progression types.
const (
	ProgressScore  = "score"
	ProgressTime   = "time"
	ProgressPieces = "pieces"
	ProgressNone   = "none"
)

// Progress is how far a run has got. Which field drives the level
// depends on the mode's progression type.
type Progress struct {
	Score  int
	Ticks  int
	Pieces int
}

// DifficultyManager turns run progress into a level and a fall speed.
type DifficultyManager struct {
	cfg   DifficultyConfig
	start float64
}

// NewDifficultyManager creates a manager for one run.
func NewDifficultyManager(cfg DifficultyConfig) *DifficultyManager {
	return &DifficultyManager{cfg: cfg, start: unit(cfg.InitialLevel)}
}

// Enabled reports whether the level moves during a run.
func (d *DifficultyManager) Enabled() bool {
	return d.cfg.Enabled && d.cfg.Progression.Type != ProgressNone
}

// Level returns the difficulty in [0,1]. It starts at the initial level and
// reaches 1 once the tracked measure hits progression.max_at.
func (d *DifficultyManager) Level(p Progress) float64 {
	if !d.Enabled() {
		return d.start
	}

	var done int
	switch d.cfg.Progression.Type {
	case ProgressScore:
		done = p.Score
	case ProgressTime:
		done = p.Ticks
	case ProgressPieces:
		done = p.Pieces
	default:
		return d.start
	}

	maxAt := max(d.cfg.Progression.MaxAt, 1)
	t := unit(float64(done) / float64(maxAt))
	return d.start + t*(1-d.start)
}

// FallInterval returns the ticks between gravity steps. At level 1 the
// interval is base / (1 + speed_multiplier); it never goes below
// minInterval or 1.
func (d *DifficultyManager) FallInterval(base, minInterval int, p Progress) int {
	speed := 1 + d.Level(p)*d.cfg.Scaling.SpeedMultiplier
	if speed <= 0 {
		speed = 1
	}
	interval := int(math.Round(float64(base) / speed))
	return max(interval, minInterval, 1)
}

func unit(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
