// Package config provides YAML-based mode configuration loading and
// difficulty management for Dicetrix.
package config

import "fmt"

// ModesFile is the top-level document of a modes YAML file.
type ModesFile struct {
	Modes []ModeConfig `yaml:"modes"`
}

// ModeConfig contains all configuration for one game mode.
type ModeConfig struct {
	ID          string           `yaml:"id"`
	Name        string           `yaml:"name"`
	Description string           `yaml:"description"`
	Board       BoardConfig      `yaml:"board"`
	Generator   GeneratorConfig  `yaml:"generator"`
	Gameplay    GameplayConfig   `yaml:"gameplay"`
	Difficulty  DifficultyConfig `yaml:"difficulty"`
}

// BoardConfig defines the playfield size in cells.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GeneratorConfig defines the piece generator bounds.
type GeneratorConfig struct {
	MaxPieceWidth   int     `yaml:"max_piece_width"`
	MaxPieceHeight  int     `yaml:"max_piece_height"`
	MaxDicePerPiece int     `yaml:"max_dice_per_piece"`
	AllowedSides    []int   `yaml:"allowed_sides"`
	AllowBlackDice  bool    `yaml:"allow_black_dice"`
	UniformDice     bool    `yaml:"uniform_dice"`
	BoosterChance   float64 `yaml:"booster_chance"`
}

// GameplayConfig defines timing, scoring and matching rules.
type GameplayConfig struct {
	FallInterval    int  `yaml:"fall_interval"`     // Ticks between gravity steps at the initial level
	MinFallInterval int  `yaml:"min_fall_interval"` // Fastest allowed interval
	SoftDropPoints  int  `yaml:"soft_drop_points"`
	HardDropPoints  int  `yaml:"hard_drop_points"`
	MatchThreshold  int  `yaml:"match_threshold"`
	WildAreaEffect  bool `yaml:"wild_area_effect"`
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", "pieces" or "none"
	MaxAt int    `yaml:"max_at"` // Score, ticks or pieces at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Fall speed added at max difficulty
}

// ValidationError describes an invalid field in a mode.
type ValidationError struct {
	Mode    string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config: mode %q: %s: %s", e.Mode, e.Field, e.Message)
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// IsFixedPreset returns true if the preset disables progression.
func IsFixedPreset(preset DifficultyPreset) bool {
	return preset == DifficultyFixed
}

// ApplyPreset modifies the mode's progression based on a difficulty preset.
func ApplyPreset(cfg *ModeConfig, preset DifficultyPreset) {
	if preset == "" {
		return
	}
	if IsFixedPreset(preset) {
		cfg.Difficulty.Enabled = false
		return
	}
	cfg.Difficulty.Enabled = true
	cfg.Difficulty.InitialLevel = InitialLevelForPreset(preset)
}
