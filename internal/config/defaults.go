package config

import (
	_ "embed"
)

//go:embed defaults/modes.yaml
var defaultModesYAML []byte

// Mode identifiers shipped with the default configuration.
const (
	ModeEasy   = "easy"
	ModeMedium = "medium"
	ModeHard   = "hard"
	ModeExpert = "expert"
	ModeZen    = "zen"
)

func defaultGameplay(fall int) GameplayConfig {
	return GameplayConfig{
		FallInterval:    fall,
		MinFallInterval: 4,
		SoftDropPoints:  1,
		HardDropPoints:  2,
		MatchThreshold:  3,
		WildAreaEffect:  true,
	}
}

func scoreProgression(maxAt int, speed float64) DifficultyConfig {
	return DifficultyConfig{
		Enabled:      true,
		InitialLevel: 0.0,
		Progression:  ProgressionConfig{Type: "score", MaxAt: maxAt},
		Scaling:      ScalingConfig{SpeedMultiplier: speed},
	}
}

// DefaultModes returns the hardcoded mode set, used when no YAML can be read.
func DefaultModes() ModesFile {
	board := BoardConfig{Width: 10, Height: 16}
	return ModesFile{Modes: []ModeConfig{
		{
			ID:          ModeEasy,
			Name:        "Easy",
			Description: "Small pieces of d4, d6 and d8",
			Board:       board,
			Generator: GeneratorConfig{
				MaxPieceWidth: 3, MaxPieceHeight: 3, MaxDicePerPiece: 5,
				AllowedSides:  []int{4, 6, 8},
				BoosterChance: 0.5,
			},
			Gameplay:   defaultGameplay(30),
			Difficulty: scoreProgression(5000, 1.0),
		},
		{
			ID:          ModeMedium,
			Name:        "Medium",
			Description: "d6 to d12, pieces up to 4x4",
			Board:       board,
			Generator: GeneratorConfig{
				MaxPieceWidth: 4, MaxPieceHeight: 4, MaxDicePerPiece: 8,
				AllowedSides:  []int{6, 8, 10, 12},
				BoosterChance: 0.35,
			},
			Gameplay:   defaultGameplay(24),
			Difficulty: scoreProgression(10000, 1.5),
		},
		{
			ID:          ModeHard,
			Name:        "Hard",
			Description: "d8 to d20, pieces up to 5x5",
			Board:       board,
			Generator: GeneratorConfig{
				MaxPieceWidth: 5, MaxPieceHeight: 5, MaxDicePerPiece: 10,
				AllowedSides:  []int{8, 10, 12, 20},
				BoosterChance: 0.25,
			},
			Gameplay:   defaultGameplay(18),
			Difficulty: scoreProgression(15000, 2.0),
		},
		{
			ID:          ModeExpert,
			Name:        "Expert",
			Description: "d10 to d20 with black wild dice",
			Board:       board,
			Generator: GeneratorConfig{
				MaxPieceWidth: 5, MaxPieceHeight: 5, MaxDicePerPiece: 16,
				AllowedSides:   []int{10, 12, 20},
				AllowBlackDice: true,
				BoosterChance:  0.15,
			},
			Gameplay:   defaultGameplay(12),
			Difficulty: scoreProgression(20000, 2.0),
		},
		{
			ID:          ModeZen,
			Name:        "Zen",
			Description: "Uniform d6 pieces, no speed-up",
			Board:       board,
			Generator: GeneratorConfig{
				MaxPieceWidth: 3, MaxPieceHeight: 3, MaxDicePerPiece: 5,
				AllowedSides:  []int{6},
				UniformDice:   true,
				BoosterChance: 0.5,
			},
			Gameplay: defaultGameplay(40),
			Difficulty: DifficultyConfig{
				Enabled:     false,
				Progression: ProgressionConfig{Type: "none"},
			},
		},
	}}
}
