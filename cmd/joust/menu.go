package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-joust/internal/core"
	"github.com/vovakirdan/tui-joust/internal/platform/tui"
	"github.com/vovakirdan/tui-joust/internal/registry"
	"github.com/vovakirdan/tui-joust/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start interactive mode picker",
	Long: `Opens an interactive menu to pick a mode.

Use arrow keys or j/k to navigate, Enter or the entry's number to select.
Tab opens the high score tables. After a game, Esc returns to the menu.`,
	Run: runMenu,
}

func runMenu(cmd *cobra.Command, args []string) {
	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	logger, closeLog, err := openLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	for {
		result, err := tui.RunMenu(store, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running menu: %v\n", err)
			os.Exit(1)
		}
		cfg = result.Config

		if result.Quit {
			return
		}

		if result.WantsScoreboard {
			goBack, sbErr := tui.RunScoreboard(store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				fmt.Fprintf(os.Stderr, "Error running scoreboard: %v\n", sbErr)
				os.Exit(1)
			}
			if !goBack {
				return
			}
			continue
		}

		game, err := registry.Create(result.GameID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
			os.Exit(1)
		}

		// Fresh seed per game unless one was fixed on the command line
		if flagSeed == 0 {
			cfg.Seed = time.Now().UnixNano()
		}

		quit, runErr := tui.Run(game, result.Mode, cfg, tui.GameOptions{
			Store:  store,
			Logger: logger,
		})
		if runErr != nil {
			fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
			os.Exit(1)
		}
		if quit {
			return
		}
	}
}
