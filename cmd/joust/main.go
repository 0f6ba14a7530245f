// joust is a Joust-style arcade game for the terminal.
//
// Usage:
//
//	joust play               - Play a game (solo, co-op or versus)
//	joust menu               - Start menu to pick a mode interactively
//	joust serve              - Start SSH server for remote play
//	joust scores [mode]      - Show high scores for a mode
//	joust waves              - Show the enemy mix of the first waves
//	joust list               - List the playable modes
//
// Global flags:
//
//	--fps <rate>        - Set tick rate (default: 60)
//	--seed <value>      - Set RNG seed for reproducible gameplay
//	--db <path>         - Set database path (default: ~/.joust/scores.db)
//	--log-file <path>   - Write a game log to path
//	--debug             - Log every game event
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/vovakirdan/tui-joust/internal/games/joust"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagLogFile string
	flagDebug   bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "joust",
	Short: "Joust - Unseat your foes above the lava",
	Long: `Joust is a terminal arcade game. Flap your mount, steer into enemy
knights and strike from above to unseat them before they unseat you.

Available commands:
  play     - Play solo, co-op or versus
  menu     - Interactive mode picker menu
  serve    - Start SSH server for remote play
  scores   - View high scores
  waves    - Show the enemy mix of upcoming waves
  list     - Show the playable modes

Examples:
  joust play
  joust play --mode coop
  joust menu
  joust serve --ssh :2222
  joust scores versus`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.joust/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write a game log to this file")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Log every game event (needs --log-file)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(wavesCmd)
}
