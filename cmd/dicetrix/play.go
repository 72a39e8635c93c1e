package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/config"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/core"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/games/dicetrix"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/platform/tui"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/registry"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/storage"
)

var flagDifficulty string

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a mode",
	Long: `Start playing the specified mode.

Controls:
  Left/Right   - Move piece
  Up/X, Z      - Rotate clockwise, counter-clockwise
  Down         - Soft drop
  Space        - Hard drop
  P/Esc        - Pause
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Start at lowest speed, progresses to max
  normal - Start at 30% speed, progresses to max
  hard   - Start at 70% speed, progresses to max
  fixed  - No progression, stays at the mode's initial level

Examples:
  dicetrix play medium
  dicetrix play hard --difficulty fixed
  dicetrix play zen --seed 42
  dicetrix play custom --config ./my-modes.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func parsePreset(s string) (config.DifficultyPreset, error) {
	switch p := config.DifficultyPreset(s); p {
	case "", config.DifficultyEasy, config.DifficultyNormal, config.DifficultyHard, config.DifficultyFixed:
		return p, nil
	}
	return "", fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", s)
}

// terminalConfig returns the runtime config for the current terminal.
func terminalConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the runs database, or returns nil if it is unavailable.
// Play continues without storage.
func openStore() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database", "path", flagDBPath, "err", err)
		return nil
	}
	return store
}

func runPlay(cmd *cobra.Command, args []string) error {
	modeID := args[0]

	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q; run 'dicetrix list' to see available modes", modeID)
	}
	preset, err := parsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	game, err := dicetrix.Create(modeID, preset)
	if err != nil {
		return fmt.Errorf("creating game: %w", err)
	}

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	if _, err := tui.Run(game, store, terminalConfig()); err != nil {
		return fmt.Errorf("running game: %w", err)
	}
	return nil
}
