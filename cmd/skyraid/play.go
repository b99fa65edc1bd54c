package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/skyraid/internal/core"
	"github.com/vovakirdan/skyraid/internal/games/skyraid"
	"github.com/vovakirdan/skyraid/internal/games/skyraid/levels"
	"github.com/vovakirdan/skyraid/internal/platform/tui"
	"github.com/vovakirdan/skyraid/internal/registry"
	"github.com/vovakirdan/skyraid/internal/storage"
)

var (
	flagConfig     string
	flagUpgrades   string
	flagDifficulty string
	flagLevelsDir  string
	flagWatch      bool
	flagNoAutoFire bool
	flagWorld      int
	flagLevel      int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the campaign",
	Long: `Start a Sky Raid session at the given level.

Controls:
  Arrows/WASD  - Move
  Space/Z      - Fire (held with --no-autofire)
  X/B          - Bomb
  Enter        - Continue after a level
  P/Esc        - Pause
  R            - Restart (after game over)
  Backspace    - Leave (paused or game over)
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options:
  easy   - Weaker enemies, more lives
  normal - Default tuning
  hard   - Tougher enemies, faster shots
  fixed  - No world scaling, every world plays like the first

Examples:
  skyraid play
  skyraid play --world 3 --level 1
  skyraid play --difficulty hard
  skyraid play --config ./my-tuning.yaml --upgrades ./my-upgrades.yaml
  skyraid play --levels ./levels --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

// addGameFlags registers the flags shared by commands that start sessions.
func addGameFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	cmd.Flags().StringVar(&flagUpgrades, "upgrades", "", "Path to custom progression YAML")
	cmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	cmd.Flags().StringVar(&flagLevelsDir, "levels", "", "Directory of YAML level files replacing the built-in campaign")
}

func init() {
	addGameFlags(playCmd)
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload level files when they change (requires --levels)")
	playCmd.Flags().BoolVar(&flagNoAutoFire, "no-autofire", false, "Fire only while the fire key is held")
	playCmd.Flags().IntVar(&flagWorld, "world", 1, "World to start in")
	playCmd.Flags().IntVar(&flagLevel, "level", 1, "Level to start at")
}

// applyGameFlags hands the shared flags to the game package. With --levels
// it loads the directory into a library and, if watch is set, starts a
// watcher on it.
func applyGameFlags(logger *log.Logger, watch bool) (*tui.LevelSource, error) {
	skyraid.SetConfigPath(flagConfig)
	skyraid.SetUpgradesPath(flagUpgrades)
	skyraid.SetDifficultyPreset(flagDifficulty)

	if flagLevelsDir == "" {
		if watch {
			logger.Warn("--watch has no effect without --levels")
		}
		skyraid.SetContent(nil)
		return &tui.LevelSource{Library: levels.NewLibrary(nil)}, nil
	}

	loader := levels.NewLoader(flagLevelsDir)
	campaign, err := loader.Campaign()
	if err != nil {
		return nil, fmt.Errorf("loading levels: %w", err)
	}
	lib := levels.NewLibrary(campaign)
	skyraid.SetContent(lib)
	logger.Info("levels loaded", "dir", flagLevelsDir, "count", len(lib.Levels()))

	src := &tui.LevelSource{Library: lib, Loader: loader}
	if watch {
		w, err := levels.NewWatcher(flagLevelsDir)
		if err != nil {
			return nil, fmt.Errorf("watching levels: %w", err)
		}
		src.Watcher = w
	}
	return src, nil
}

// runtimeConfig builds the runtime config from the terminal size and the
// global flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
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

func runPlay(_ *cobra.Command, _ []string) {
	logger, closeLog := fileLogger()
	defer closeLog()

	src, err := applyGameFlags(logger, flagWatch)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if src.Watcher != nil {
		defer src.Watcher.Close()
	}
	skyraid.SetAutoFire(!flagNoAutoFire)

	if _, ok := src.Library.Level(flagWorld, flagLevel); !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown level %d-%d\n", flagWorld, flagLevel)
		fmt.Fprintln(os.Stderr, "Run 'skyraid levels' to see available levels.")
		os.Exit(1)
	}

	game, err := registry.Create(skyraid.GameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}
	if sel, ok := game.(registry.LevelSelector); ok {
		sel.StartAt(flagWorld, flagLevel)
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	opts := tui.Options{Store: store, Levels: src, Logger: logger}
	if err := tui.Run(game, runtimeConfig(), opts); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
