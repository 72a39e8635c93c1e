// dicetrix is a falling-dice puzzle game for the terminal.
//
// Usage:
//
//	dicetrix list               - List available modes
//	dicetrix play <mode>        - Play a mode
//	dicetrix menu               - Pick modes interactively
//	dicetrix serve              - Start SSH server for remote play
//	dicetrix scores <mode>      - Show high scores for a mode
//	dicetrix simulate           - Run the autoplayer headless
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.dicetrix/runs.db)
//	--config <path>      - Load modes from a YAML file
//	--log-level <level>  - debug, info, warn or error
//
// Flag defaults can also come from DICETRIX_* environment variables.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/config"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/games/dicetrix"
	"github.com/ProThoughtDesign/Dicetrix-sub000/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagLogLevel string

	logger *log.Logger
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "dicetrix",
	Short: "Dicetrix - falling dice puzzles in your terminal",
	Long: `Dicetrix drops pieces made of dice onto a grid. Connect enough dice
showing the same value and they clear; whatever is left falls and may
set off a cascade.

Available commands:
  list      - Show all modes
  play      - Play a mode directly
  menu      - Interactive mode picker
  serve     - Start SSH server for remote play
  scores    - View high scores
  simulate  - Run the autoplayer without a terminal

Examples:
  dicetrix list
  dicetrix play medium
  dicetrix menu
  dicetrix serve --ssh :2222
  dicetrix scores hard
  dicetrix simulate --mode expert --pieces 500 --seed 7`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

func init() {
	defaults, envErr := loadEnv()

	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", defaults.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", defaults.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaults.DBPath, "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", defaults.ConfigPath, "Path to modes YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", defaults.LogLevel, "Log level: debug, info, warn, error")

	if envErr != nil {
		// Surface the bad variable when a command runs, not at import time.
		rootCmd.PersistentPreRunE = func(*cobra.Command, []string) error { return envErr }
	}

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(fullScreen(playCmd))
	rootCmd.AddCommand(fullScreen(menuCmd))
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(simulateCmd)
}

// setup builds the logger and registers the configured modes.
// Commands annotated as full-screen log to ~/.dicetrix/dicetrix.log so
// output does not tear the alt screen.
func setup(cmd *cobra.Command, _ []string) error {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	out := io.Writer(os.Stderr)
	if cmd.Annotations[annotationFullScreen] == "true" {
		f, fileErr := openLogFile()
		if fileErr != nil {
			out = io.Discard
		} else {
			out = f
		}
	}
	logger = log.NewWithOptions(out, log.Options{
		ReportTimestamp: true,
		Prefix:          "dicetrix",
		Level:           level,
	})
	tui.SetLogger(logger)
	dicetrix.SetLogger(logger)

	modes, err := config.LoadModes(flagConfig)
	if err != nil {
		return err
	}
	dicetrix.RegisterModes(modes)
	logger.Debug("modes loaded", "count", len(modes.Modes), "ids", modes.IDs())
	return nil
}

const annotationFullScreen = "fullscreen"

func openLogFile() (*os.File, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	dir := filepath.Join(home, ".dicetrix")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return os.OpenFile(filepath.Join(dir, "dicetrix.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// fullScreen marks a command as running a Bubble Tea program.
func fullScreen(cmd *cobra.Command) *cobra.Command {
	if cmd.Annotations == nil {
		cmd.Annotations = map[string]string{}
	}
	cmd.Annotations[annotationFullScreen] = "true"
	return cmd
}
