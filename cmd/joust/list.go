package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-joust/internal/registry"
	"github.com/vovakirdan/tui-joust/internal/storage"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the playable modes",
	Long: `Shows every registered game mode with its score table id, and how
many runs and the best score saved for it.`,
	Run: runList,
}

func runList(cmd *cobra.Command, args []string) {
	games := registry.List()

	if len(games) == 0 {
		fmt.Println("No modes available.")
		return
	}

	// Stats are optional; the list works without a database
	var stats map[string]*storage.GameStats
	if store, err := storage.Open(flagDBPath); err == nil {
		stats, _ = store.GetAllGamesStats()
		store.Close()
	}

	fmt.Println("Available modes:")
	fmt.Println()
	writeModes(os.Stdout, games, stats)
	fmt.Println()
	fmt.Println("Run 'joust play --mode <solo|coop|versus>' to play.")
}

// writeModes prints the mode table with saved runs and best score.
func writeModes(w io.Writer, games []registry.GameInfo, stats map[string]*storage.GameStats) {
	maxIDLen := 2 // "ID" header
	for _, g := range games {
		maxIDLen = max(maxIDLen, len(g.ID))
	}

	fmt.Fprintf(w, "  %-*s  %-18s  %-4s  %s\n", maxIDLen, "ID", "Title", "Runs", "Best")
	fmt.Fprintf(w, "  %-*s  %-18s  %-4s  %s\n", maxIDLen, "--", "-----", "----", "----")
	for _, g := range games {
		runs, best := 0, 0
		if s, ok := stats[g.ID]; ok {
			runs, best = s.GamesCount, s.HighScore
		}
		fmt.Fprintf(w, "  %-*s  %-18s  %-4d  %d\n", maxIDLen, g.ID, g.Title, runs, best)
	}
}
