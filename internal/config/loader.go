package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadModes loads the mode definitions.
// Search order: customPath -> ~/.dicetrix/modes.yaml -> ./configs/modes.yaml -> embedded default -> hardcoded.
// A custom path that cannot be read or parsed is an error; the other
// locations are skipped silently. The result is validated.
func LoadModes(customPath string) (ModesFile, error) {
	var cfg ModesFile

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		return cfg, Validate(cfg)
	}

	// Try user config directory
	if userCfgPath := userConfigPath("modes.yaml"); userCfgPath != "" {
		if parsed, ok := tryParse(userCfgPath); ok {
			return parsed, Validate(parsed)
		}
	}

	// Try local configs directory
	if parsed, ok := tryParse(filepath.Join("configs", "modes.yaml")); ok {
		return parsed, Validate(parsed)
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultModesYAML, &cfg); err != nil || len(cfg.Modes) == 0 {
		return DefaultModes(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, Validate(cfg)
}

func tryParse(path string) (ModesFile, bool) {
	var cfg ModesFile
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil || len(cfg.Modes) == 0 {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dicetrix", filename)
}

// Mode returns the mode with the given id.
func (f ModesFile) Mode(id string) (ModeConfig, bool) {
	for _, m := range f.Modes {
		if m.ID == id {
			return m, true
		}
	}
	return ModeConfig{}, false
}

// IDs returns the mode ids in file order.
func (f ModesFile) IDs() []string {
	ids := make([]string, len(f.Modes))
	for i, m := range f.Modes {
		ids[i] = m.ID
	}
	return ids
}

// Validate checks every mode and returns all problems joined together.
func Validate(f ModesFile) error {
	if len(f.Modes) == 0 {
		return errors.New("config: no modes defined")
	}

	var errs []error
	seen := make(map[string]bool)
	for _, m := range f.Modes {
		if m.ID == "" {
			errs = append(errs, &ValidationError{Mode: m.Name, Field: "id", Message: "must not be empty"})
		} else if seen[m.ID] {
			errs = append(errs, &ValidationError{Mode: m.ID, Field: "id", Message: "duplicate"})
		}
		seen[m.ID] = true
		errs = append(errs, m.Validate()...)
	}
	return errors.Join(errs...)
}

// Validate returns the problems found in a single mode.
func (m ModeConfig) Validate() []error {
	var errs []error
	bad := func(field, msg string) {
		errs = append(errs, &ValidationError{Mode: m.ID, Field: field, Message: msg})
	}

	if m.Board.Width < 1 || m.Board.Height < 1 {
		bad("board", "width and height must be positive")
	}
	g := m.Generator
	if g.MaxPieceWidth < 1 || g.MaxPieceHeight < 1 || g.MaxDicePerPiece < 1 {
		bad("generator", "piece bounds must be positive")
	}
	if m.Board.Width > 0 && g.MaxPieceWidth > m.Board.Width {
		bad("generator.max_piece_width", "wider than the board")
	}
	if len(g.AllowedSides) == 0 {
		bad("generator.allowed_sides", "must not be empty")
	}
	for _, s := range g.AllowedSides {
		if s < 1 {
			bad("generator.allowed_sides", fmt.Sprintf("invalid face count %d", s))
		}
	}
	if !(g.BoosterChance >= 0 && g.BoosterChance <= 1) {
		bad("generator.booster_chance", "must be within [0,1]")
	}
	if m.Gameplay.FallInterval < 1 {
		bad("gameplay.fall_interval", "must be positive")
	}
	if m.Gameplay.MatchThreshold < 0 {
		bad("gameplay.match_threshold", "must not be negative")
	}
	if m.Difficulty.InitialLevel < 0 || m.Difficulty.InitialLevel > 1 {
		bad("difficulty.initial_level", "must be within [0,1]")
	}
	switch m.Difficulty.Progression.Type {
	case "", ProgressNone, ProgressScore, ProgressTime, ProgressPieces:
	default:
		bad("difficulty.progression.type", fmt.Sprintf("unknown type %q", m.Difficulty.Progression.Type))
	}
	return errs
}
