package config

import (
	"errors"
	"math"
	"os"
	"path/filepath"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedModesMatchHardcoded(t *testing.T) {
	var embedded ModesFile
	if err := yaml.Unmarshal(defaultModesYAML, &embedded); err != nil {
		t.Fatalf("embedded modes do not parse: %v", err)
	}
	hard := DefaultModes()

	if len(embedded.Modes) != len(hard.Modes) {
		t.Fatalf("embedded has %d modes, hardcoded %d", len(embedded.Modes), len(hard.Modes))
	}
	for i := range hard.Modes {
		e, h := embedded.Modes[i], hard.Modes[i]
		if e.ID != h.ID {
			t.Errorf("mode %d: id %q != %q", i, e.ID, h.ID)
		}
		if e.Generator.MaxDicePerPiece != h.Generator.MaxDicePerPiece {
			t.Errorf("mode %s: max dice %d != %d", h.ID, e.Generator.MaxDicePerPiece, h.Generator.MaxDicePerPiece)
		}
		if e.Gameplay.FallInterval != h.Gameplay.FallInterval {
			t.Errorf("mode %s: fall interval %d != %d", h.ID, e.Gameplay.FallInterval, h.Gameplay.FallInterval)
		}
	}
}

func TestDefaultModesValid(t *testing.T) {
	if err := Validate(DefaultModes()); err != nil {
		t.Fatalf("default modes invalid: %v", err)
	}
}

func TestLoadModesCustomPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "modes.yaml")
	doc := `
modes:
  - id: tiny
    name: Tiny
    board: {width: 5, height: 8}
    generator:
      max_piece_width: 2
      max_piece_height: 2
      max_dice_per_piece: 3
      allowed_sides: [4]
    gameplay:
      fall_interval: 10
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadModes(path)
	if err != nil {
		t.Fatalf("LoadModes() error = %v", err)
	}
	m, ok := cfg.Mode("tiny")
	if !ok {
		t.Fatal("mode tiny not found")
	}
	if m.Board.Width != 5 || m.Board.Height != 8 {
		t.Errorf("board = %dx%d, expected 5x8", m.Board.Width, m.Board.Height)
	}
}

func TestLoadModesRejectsNaNBoosterChance(t *testing.T) {
	path := filepath.Join(t.TempDir(), "modes.yaml")
	doc := `
modes:
  - id: tiny
    name: Tiny
    board: {width: 5, height: 8}
    generator:
      max_piece_width: 2
      max_piece_height: 2
      max_dice_per_piece: 3
      allowed_sides: [4]
      booster_chance: .nan
    gameplay:
      fall_interval: 10
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	_, err := LoadModes(path)
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Field != "generator.booster_chance" {
		t.Errorf("field = %q, expected generator.booster_chance", verr.Field)
	}
}

func TestLoadModesMissingCustomPath(t *testing.T) {
	_, err := LoadModes(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Fatal("expected error for missing custom path")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoadModesFallsBackToEmbedded(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := LoadModes("")
	if err != nil {
		t.Fatalf("LoadModes() error = %v", err)
	}
	for _, id := range []string{ModeEasy, ModeMedium, ModeHard, ModeExpert, ModeZen} {
		if _, ok := cfg.Mode(id); !ok {
			t.Errorf("mode %q missing", id)
		}
	}
}

func TestValidateRejectsBadModes(t *testing.T) {
	base := DefaultModes().Modes[0]

	tests := []struct {
		name   string
		mutate func(*ModeConfig)
		field  string
	}{
		{"booster chance", func(m *ModeConfig) { m.Generator.BoosterChance = 1.2 }, "generator.booster_chance"},
		{"booster chance NaN", func(m *ModeConfig) { m.Generator.BoosterChance = math.NaN() }, "generator.booster_chance"},
		{"no sides", func(m *ModeConfig) { m.Generator.AllowedSides = nil }, "generator.allowed_sides"},
		{"zero board", func(m *ModeConfig) { m.Board.Width = 0 }, "board"},
		{"wide piece", func(m *ModeConfig) { m.Generator.MaxPieceWidth = 20 }, "generator.max_piece_width"},
		{"fall interval", func(m *ModeConfig) { m.Gameplay.FallInterval = 0 }, "gameplay.fall_interval"},
		{"progression", func(m *ModeConfig) { m.Difficulty.Progression.Type = "lines" }, "difficulty.progression.type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := base
			m.Generator.AllowedSides = append([]int(nil), base.Generator.AllowedSides...)
			tt.mutate(&m)

			err := Validate(ModesFile{Modes: []ModeConfig{m}})
			if err == nil {
				t.Fatal("expected validation error")
			}
			var verr *ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if verr.Field != tt.field {
				t.Errorf("field = %q, expected %q", verr.Field, tt.field)
			}
		})
	}
}

func TestValidateDuplicateIDs(t *testing.T) {
	m := DefaultModes().Modes[0]
	if err := Validate(ModesFile{Modes: []ModeConfig{m, m}}); err == nil {
		t.Error("expected duplicate id error")
	}
	if err := Validate(ModesFile{}); err == nil {
		t.Error("expected error for empty file")
	}
}

func TestApplyPreset(t *testing.T) {
	m := DefaultModes().Modes[0]

	ApplyPreset(&m, DifficultyHard)
	if !m.Difficulty.Enabled || m.Difficulty.InitialLevel != 0.7 {
		t.Errorf("hard preset: enabled=%v level=%v", m.Difficulty.Enabled, m.Difficulty.InitialLevel)
	}

	ApplyPreset(&m, DifficultyFixed)
	if m.Difficulty.Enabled {
		t.Error("fixed preset should disable progression")
	}
}

func TestFallInterval(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:     true,
		Progression: ProgressionConfig{Type: "score", MaxAt: 1000},
		Scaling:     ScalingConfig{SpeedMultiplier: 2.0},
	})

	tests := []struct {
		score int
		want  int
	}{
		{0, 30},
		{500, 15},
		{1000, 10},
		{99999, 10},
	}
	for _, tt := range tests {
		if got := dm.FallInterval(30, 4, Progress{Score: tt.score}); got != tt.want {
			t.Errorf("FallInterval(score=%d) = %d, expected %d", tt.score, got, tt.want)
		}
	}

	if got := dm.FallInterval(30, 12, Progress{Score: 1000}); got != 12 {
		t.Errorf("FallInterval should respect the minimum, got %d", got)
	}
}

func TestDifficultyDisabled(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      false,
		InitialLevel: 0.5,
		Progression:  ProgressionConfig{Type: "score", MaxAt: 10},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})

	if lvl := dm.Level(Progress{Score: 1000, Ticks: 1000, Pieces: 1000}); lvl != 0.5 {
		t.Errorf("Level() = %v, expected initial level 0.5", lvl)
	}
	if got := dm.FallInterval(30, 1, Progress{Score: 1000}); got != 20 {
		t.Errorf("FallInterval() = %d, expected 20", got)
	}
}

func TestPiecesProgression(t *testing.T) {
	dm := NewDifficultyManager(DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.2,
		Progression:  ProgressionConfig{Type: ProgressPieces, MaxAt: 100},
		Scaling:      ScalingConfig{SpeedMultiplier: 1.0},
	})

	if lvl := dm.Level(Progress{Score: 5000}); lvl != 0.2 {
		t.Errorf("score should not move a pieces progression, level = %v", lvl)
	}
	if lvl := dm.Level(Progress{Pieces: 50}); math.Abs(lvl-0.6) > 1e-9 {
		t.Errorf("Level(50 pieces) = %v, expected 0.6", lvl)
	}
	if got := dm.FallInterval(30, 1, Progress{Pieces: 100}); got != 15 {
		t.Errorf("FallInterval at max = %d, expected 15", got)
	}
}
