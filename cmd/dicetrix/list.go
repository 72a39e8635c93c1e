package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/games/dicetrix"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available modes",
	Long:  `Shows every registered mode, including modes loaded from --config.`,
	Run:   runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		if len(g.ID) > maxIDLen {
			maxIDLen = len(g.ID)
		}
	}

	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "ID", "Board", "Description")
	fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, "--", "-----", "-----------")

	for _, g := range games {
		board, desc := "", g.Title
		if dg, err := dicetrix.Create(g.ID, ""); err == nil {
			m := dg.Mode()
			board = fmt.Sprintf("%dx%d", m.Board.Width, m.Board.Height)
			if m.Description != "" {
				desc = m.Description
			}
		}
		fmt.Printf("  %-*s  %-7s  %s\n", maxIDLen, g.ID, board, desc)
	}

	fmt.Println()
	fmt.Println("Run 'dicetrix play <id>' to play a mode.")
}
