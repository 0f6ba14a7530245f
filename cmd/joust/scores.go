package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-joust/internal/games/joust"
	"github.com/vovakirdan/tui-joust/internal/multiplayer"
	"github.com/vovakirdan/tui-joust/internal/storage"
)

var (
	flagMatches bool
	flagClear   bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores for a mode",
	Long: `Display the high score table for a mode (solo by default), followed
by totals over every saved run of that mode.
With --matches, list recent versus results instead.
With --clear, delete the mode's table.

Examples:
  joust scores
  joust scores coop
  joust scores --matches
  joust scores versus --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagMatches, "matches", false, "Show recent versus matches")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete every score of the mode")
}

func runScores(cmd *cobra.Command, args []string) {
	mode := multiplayer.MatchModeSolo
	if len(args) == 1 {
		m, err := multiplayer.ParseMatchMode(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		mode = m
	}

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagMatches {
		printMatches(store)
		return
	}

	game := joust.New(mode)

	if flagClear {
		if err := store.ClearScores(game.ID()); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}
		fmt.Printf("Cleared high scores for %s\n", game.Title())
		return
	}

	scores, err := store.TopScores(game.ID(), storage.TableSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving scores: %v\n", err)
		return
	}

	fmt.Printf("High Scores - %s\n", game.Title())
	fmt.Println()

	if len(scores) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'joust play --mode %s' to set the first high score!\n", modeFlag(mode))
		return
	}

	writeScores(os.Stdout, scores)

	stats, err := store.GetGameStats(game.ID())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		return
	}
	fmt.Println()
	writeStats(os.Stdout, stats)
}

// writeScores prints a high score table.
func writeScores(w io.Writer, scores []storage.ScoreEntry) {
	fmt.Fprintf(w, "  %-4s  %-4s  %-10s  %-4s  %s\n", "Rank", "Name", "Score", "Wave", "Date")
	fmt.Fprintf(w, "  %-4s  %-4s  %-10s  %-4s  %s\n", "----", "----", "-----", "----", "----")

	for i, entry := range scores {
		dateStr := entry.CreatedAt.Format("2006-01-02 15:04")
		fmt.Fprintf(w, "  %-4d  %-4s  %-10d  %-4d  %s\n", i+1, entry.Name, entry.Score, entry.Wave, dateStr)
	}
}

// writeStats prints the totals below a score table.
func writeStats(w io.Writer, stats *storage.GameStats) {
	fmt.Fprintf(w, "Runs saved: %d  Best: %d  Best wave: %d  Average: %.0f\n",
		stats.GamesCount, stats.HighScore, stats.BestWave, stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Fprintf(w, "Last played: %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
}

// modeFlag returns the --mode value that selects mode.
func modeFlag(mode multiplayer.MatchMode) string {
	switch mode {
	case multiplayer.MatchModeCoop:
		return "coop"
	case multiplayer.MatchModeVersus:
		return "versus"
	default:
		return "solo"
	}
}

func printMatches(store *storage.Store) {
	matches, err := store.RecentMatches(storage.TableSize)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving matches: %v\n", err)
		return
	}

	fmt.Println("Recent Versus Matches")
	fmt.Println()
	if len(matches) == 0 {
		fmt.Println("No matches recorded yet.")
		return
	}

	fmt.Printf("  %-16s  %-8s  %-8s  %-6s  %-4s  %-9s  %s\n", "Date", "P1", "P2", "Winner", "Wave", "Reason", "Length")
	fmt.Printf("  %-16s  %-8s  %-8s  %-6s  %-4s  %-9s  %s\n", "----", "--", "--", "------", "----", "------", "------")
	for _, m := range matches {
		winner := "draw"
		if m.Winner > 0 {
			winner = fmt.Sprintf("P%d", m.Winner)
		}
		length := time.Duration(m.Duration) * time.Second
		fmt.Printf("  %-16s  %-8d  %-8d  %-6s  %-4d  %-9s  %s\n",
			m.CreatedAt.Format("2006-01-02 15:04"), m.Score1, m.Score2, winner, m.Wave, m.EndReason, length)
	}
}
