package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-joust/internal/config"
	"github.com/vovakirdan/tui-joust/internal/games/joust"
)

var (
	flagWaveCount  int
	flagWaveConfig string
)

var wavesCmd = &cobra.Command{
	Use:   "waves",
	Short: "Show the enemy mix of the first waves",
	Long: `Prints each wave's enemies and the lava openings of its floor,
as read from the active config file.

Examples:
  joust waves
  joust waves --count 20
  joust waves --config ./my-joust.yaml`,
	Args: cobra.NoArgs,
	Run:  runWaves,
}

func init() {
	wavesCmd.Flags().IntVar(&flagWaveCount, "count", 10, "Number of waves to show")
	wavesCmd.Flags().StringVar(&flagWaveConfig, "config", "", "Path to custom game config YAML")
}

func runWaves(_ *cobra.Command, _ []string) {
	cfg, err := config.LoadJoust(flagWaveConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("  %-4s  %-5s  %-40s  %s\n", "Wave", "Total", "Enemies", "Floor")
	fmt.Printf("  %-4s  %-5s  %-40s  %s\n", "----", "-----", "-------", "-----")
	for wave := 1; wave <= max(flagWaveCount, 1); wave++ {
		comp := joust.CompositionFor(wave, cfg.Waves.Table)
		fmt.Printf("  %-4d  %-5d  %-40s  %s\n", wave, comp.Total(), comp, floorString(joust.BottomSections(wave, cfg.Layout)))
	}
}

// floorString draws the bottom row as a 20 column strip, '=' for floor
// and '~' for lava.
func floorString(sections []config.Section) string {
	const cols = 20
	row := []byte(strings.Repeat("~", cols))
	for _, s := range sections {
		from := int(s.X * cols)
		to := min(int((s.X+s.W)*cols+0.5), cols)
		for i := max(from, 0); i < to; i++ {
			row[i] = '='
		}
	}
	return string(row)
}
