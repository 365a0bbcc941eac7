package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/memecoin-madness/internal/game"
)

var legendCmd = &cobra.Command{
	Use:   "legend",
	Short: "List the coins and the rug",
	Long:  `Shows every icon that can fall during a run and what tapping it does.`,
	Args:  cobra.NoArgs,
	Run:   runLegend,
}

func runLegend(_ *cobra.Command, _ []string) {
	fmt.Println("Falling icons:")
	fmt.Println()

	// Calculate column widths
	maxLabelLen := 4 // "Name" header
	for _, a := range game.Archetypes {
		maxLabelLen = max(maxLabelLen, len(a.Label))
	}

	// Print header
	fmt.Printf("  %-4s  %-*s  %-8s  %s\n", "", maxLabelLen, "Name", "Ticker", "Effect")
	fmt.Printf("  %-4s  %-*s  %-8s  %s\n", "", maxLabelLen, "----", "------", "------")

	for _, a := range game.Archetypes {
		effect := "+10 points x combo, combo +1 (max x10)"
		if a.Kind == game.Hazard {
			effect = "RUG: ends the run on the spot"
		}
		fmt.Printf("  %-4s  %-*s  %-8s  %s\n", a.Glyph, maxLabelLen, a.Label, "$"+a.Ticker, effect)
	}

	fmt.Println()
	fmt.Println("Clicking empty space resets the combo. Run 'madness play' to play.")
}
