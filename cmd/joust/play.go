package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-joust/internal/config"
	"github.com/vovakirdan/tui-joust/internal/core"
	"github.com/vovakirdan/tui-joust/internal/games/joust"
	"github.com/vovakirdan/tui-joust/internal/multiplayer"
	"github.com/vovakirdan/tui-joust/internal/platform/tui"
	"github.com/vovakirdan/tui-joust/internal/storage"
)

var (
	flagMode       string
	flagConfig     string
	flagDifficulty string
	flagWave       int
	flagWatch      bool
	flagHoldTicks  int
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing Joust.

Controls (player 1):
  Left/Right   - Steer (held for a moment after each press)
  Space/Up     - Flap
  Down         - Brake

Controls (player 2, co-op and versus):
  A/D          - Steer
  W            - Flap
  S            - Brake

Shared:
  P            - Pause
  Esc          - Pause, then back
  R            - Restart (after game over)
  Q/Ctrl+C     - Quit

Modes:
  solo   - One rider against the waves
  coop   - Two riders against the waves, shared lives pool per rider
  versus - Two riders who can also unseat each other

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  joust play
  joust play --mode coop
  joust play --mode versus --difficulty hard
  joust play --wave 5
  joust play --config ./my-joust.yaml --watch`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagMode, "mode", "solo", "Match mode: solo, coop, versus")
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().IntVar(&flagWave, "wave", 1, "Wave to start on")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the config file on restart when it changes")
	playCmd.Flags().IntVar(&flagHoldTicks, "hold-ticks", tui.DefaultHoldTicks, "Ticks a direction key stays held after a press")
}

func runPlay(cmd *cobra.Command, args []string) {
	mode, err := multiplayer.ParseMatchMode(flagMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Set config path and difficulty before creation
	joust.SetConfigPath(flagConfig)
	if err := joust.SetDifficultyPreset(flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	joust.SetStartWave(flagWave)

	if flagConfig != "" {
		if _, cfgErr := config.LoadJoust(flagConfig); cfgErr != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", cfgErr)
			os.Exit(1)
		}
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	watcher := startWatcher(logger)
	if watcher != nil {
		defer watcher.Close()
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}

	_, runErr := tui.Run(joust.New(mode), mode, cfg, tui.GameOptions{
		Store:     store,
		Logger:    logger,
		Watcher:   watcher,
		HoldTicks: flagHoldTicks,
	})

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}

// startWatcher watches the active config file when --watch is set.
// A missing file or watcher failure only disables reloading.
func startWatcher(logger *log.Logger) *config.Watcher {
	if !flagWatch {
		return nil
	}

	path := config.ResolvePath(flagConfig)
	if path == "" {
		fmt.Fprintln(os.Stderr, "Warning: --watch needs a config file; using built-in defaults")
		return nil
	}

	watcher, err := config.NewWatcher(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot watch %s: %v\n", path, err)
		return nil
	}
	logger.Info("watching config", "path", watcher.Path())
	return watcher
}
