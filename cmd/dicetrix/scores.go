package main

import (
	"fmt"
	"sort"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/registry"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the top scores for the specified mode. Without a mode, show a
summary of every mode that has been played.

Examples:
  dicetrix scores
  dicetrix scores medium
  dicetrix scores hard --limit 25`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
}

func runScores(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if len(args) == 0 {
		return printSummary(store)
	}

	modeID := args[0]
	game, err := registry.Create(modeID)
	if err != nil {
		return fmt.Errorf("%w; run 'dicetrix list' to see available modes", err)
	}

	runs, err := store.TopScores(modeID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'dicetrix play %s' to set the first high score!\n", modeID)
		return nil
	}

	fmt.Printf("  %-4s  %10s  %5s  %7s  %-12s  %s\n", "Rank", "Score", "Chain", "Cleared", "Player", "When")
	fmt.Printf("  %-4s  %10s  %5s  %7s  %-12s  %s\n", "----", "-----", "-----", "-------", "------", "----")
	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "local"
		}
		fmt.Printf("  %-4d  %10s  %5d  %7d  %-12s  %s\n",
			i+1, humanize.Comma(int64(r.Score)), r.Stats.LongestCascade, r.Stats.DiceCleared,
			player, humanize.Time(r.CreatedAt))
	}

	stats, err := store.GetModeStats(modeID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Best: %s  Average: %s  Runs: %d\n",
			humanize.Comma(int64(stats.HighScore)), humanize.CommafWithDigits(stats.AvgScore, 0), stats.GamesCount)
	}
	return nil
}

func printSummary(store *storage.Store) error {
	all, err := store.GetAllModesStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	modes := make([]string, 0, len(all))
	for id := range all {
		modes = append(modes, id)
	}
	sort.Strings(modes)

	fmt.Printf("  %-10s  %5s  %10s  %10s  %5s  %s\n", "Mode", "Runs", "Best", "Average", "Chain", "Last played")
	fmt.Printf("  %-10s  %5s  %10s  %10s  %5s  %s\n", "----", "----", "----", "-------", "-----", "-----------")
	for _, id := range modes {
		s := all[id]
		fmt.Printf("  %-10s  %5d  %10s  %10s  %5d  %s\n",
			id, s.GamesCount, humanize.Comma(int64(s.HighScore)),
			humanize.CommafWithDigits(s.AvgScore, 0), s.LongestCascade, humanize.Time(s.LastPlayed))
	}
	return nil
}
