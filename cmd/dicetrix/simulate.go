package main

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/core"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/games/dicetrix"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/storage"
)

var (
	flagSimMode   string
	flagSimPieces int
	flagSimSave   bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run the autoplayer headless and print a summary",
	Long: `Drive a mode with the built-in placement planner, without a terminal UI.
The same --seed always produces the same run, which makes this useful
for balancing modes.

Examples:
  dicetrix simulate --mode hard --pieces 200 --seed 7
  dicetrix simulate --mode zen --pieces 1000 --save`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVar(&flagSimMode, "mode", "medium", "Mode to simulate")
	simulateCmd.Flags().IntVar(&flagSimPieces, "pieces", 200, "Maximum pieces to place")
	simulateCmd.Flags().BoolVar(&flagSimSave, "save", false, "Store the run in the database")
	simulateCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	preset, err := parsePreset(flagDifficulty)
	if err != nil {
		return err
	}
	game, err := dicetrix.Create(flagSimMode, preset)
	if err != nil {
		return err
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game.Reset(core.RuntimeConfig{Seed: seed})
	if game.Err() != nil {
		return fmt.Errorf("mode %s: %w", flagSimMode, game.Err())
	}

	eng := game.Engine()
	start := time.Now()
	placed := eng.AutoPlay(flagSimPieces)
	elapsed := time.Since(start)

	stats := game.Stats()
	es := eng.Stats()
	score := eng.Score()

	fmt.Printf("%s, seed %d\n", game.Title(), seed)
	fmt.Println()
	fmt.Printf("  Score            %s\n", humanize.Comma(int64(score)))
	fmt.Printf("  Pieces placed    %d\n", placed)
	fmt.Printf("  Dice locked      %s\n", humanize.Comma(int64(es.DiceLocked)))
	fmt.Printf("  Dice cleared     %s\n", humanize.Comma(int64(stats.DiceCleared)))
	fmt.Printf("  Groups           %d\n", stats.Groups)
	fmt.Printf("  Longest cascade  %d\n", stats.LongestCascade)
	fmt.Printf("  Best multiplier  x%d\n", stats.BestMultiplier)
	fmt.Printf("  Game over        %t\n", eng.GameOver())
	if es.Fallbacks > 0 || es.Recoveries > 0 || es.LockErrors > 0 {
		fmt.Printf("  Fallbacks %d, recoveries %d, lock errors %d\n", es.Fallbacks, es.Recoveries, es.LockErrors)
	}
	fmt.Printf("  Took             %s\n", elapsed.Round(time.Millisecond))

	if !flagSimSave {
		return nil
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	id, err := store.SaveRun(storage.Run{
		Mode:   game.ID(),
		Player: "autoplay",
		Score:  score,
		Seed:   seed,
		Stats:  stats,
	})
	if err != nil {
		return err
	}
	fmt.Printf("\nSaved run %s\n", id)
	return nil
}
