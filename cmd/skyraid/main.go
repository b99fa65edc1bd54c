// skyraid is a vertically scrolling shooter for the terminal.
//
// Usage:
//
//	skyraid play             - Play the campaign
//	skyraid menu             - Pick a level from a menu
//	skyraid levels           - List the level catalog
//	skyraid simulate         - Run an unattended session and print a report
//	skyraid scores           - Show run scores and level results
//	skyraid serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>         - Set tick rate (default: 60)
//	--seed <value>       - Set RNG seed for reproducible gameplay
//	--db <path>          - Set database path (default: ~/.skyraid/scores.db)
//	--log-level <level>  - Set log level: debug, info, warn, error
//	--no-color           - Disable colored output
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/skyraid/internal/games/skyraid"
	"github.com/vovakirdan/skyraid/internal/platform/tui"
)

var (
	// Global flags
	flagFPS      int
	flagSeed     int64
	flagDBPath   string
	flagLogLevel string
	flagNoColor  bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skyraid",
	Short: "Sky Raid - a vertical shooter in your terminal",
	Long: `Sky Raid is a vertically scrolling shoot 'em up that runs in the terminal.
Fly through worlds of enemy waves, collect power-ups and take down bosses.

Available commands:
  play      - Play the campaign
  menu      - Pick a level from a menu
  levels    - List the level catalog
  simulate  - Run an unattended session and print a report
  scores    - View run scores and level results
  serve     - Start SSH server for remote play

Examples:
  skyraid play
  skyraid play --world 2 --level 3 --difficulty hard
  skyraid play --levels ./levels --watch
  skyraid simulate --frames 20000 --seed 42
  skyraid serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		if _, err := log.ParseLevel(flagLogLevel); err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
		}
		tui.SetColor(!flagNoColor)
		return nil
	},
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.skyraid/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(serveCmd)
}

// newLogger creates a logger writing to w at the level set by --log-level.
func newLogger(w io.Writer, prefix string) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Level:           level,
		Prefix:          prefix,
	}), nil
}

// fileLogger logs to ~/.skyraid/skyraid.log while the terminal is owned by
// the game. The returned close function is never nil.
func fileLogger() (*log.Logger, func()) {
	noop := func() {}
	home, err := os.UserHomeDir()
	if err != nil {
		return log.New(io.Discard), noop
	}
	dir := filepath.Join(home, ".skyraid")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return log.New(io.Discard), noop
	}
	f, err := os.OpenFile(filepath.Join(dir, "skyraid.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return log.New(io.Discard), noop
	}
	logger, err := newLogger(f, "skyraid")
	if err != nil {
		f.Close()
		return log.New(io.Discard), noop
	}
	skyraid.SetLogger(logger)
	return logger, func() { f.Close() }
}
