package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/games/dicetrix"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start Dicetrix with a mode picker menu",
	Long: `Start Dicetrix in interactive menu mode.

Pick a mode, then a difficulty preset. When a run ends, Esc returns to
the menu to play again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Select
  Tab          - Scoreboard
  Q            - Quit

Examples:
  dicetrix menu
  dicetrix menu --fps 30
  dicetrix menu --db ./runs.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStore()
	if store != nil {
		defer store.Close()
	}

	cfg := terminalConfig()

	for {
		menuResult, err := tui.RunMenu(store, cfg)
		if err != nil {
			return err
		}

		// Update config with any size changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return nil
		}

		if menuResult.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if goBack {
				continue
			}
			return nil
		}

		if menuResult.GameID == "" {
			return nil
		}

		game, err := dicetrix.Create(menuResult.GameID, menuResult.Preset)
		if err != nil {
			logger.Error("creating game", "mode", menuResult.GameID, "err", err)
			continue
		}

		// Fresh seed per run unless one was pinned
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		backToMenu, err := tui.Run(game, store, cfg)
		if err != nil {
			return err
		}
		if !backToMenu {
			return nil
		}
	}
}
