// madness is Meme Coin Madness, a terminal tapping game: click the falling
// meme coins, build combos and never touch the rug.
//
// Usage:
//
//	madness                  - Play in this terminal (same as play)
//	madness play             - Play in this terminal
//	madness serve            - Start SSH server for remote play
//	madness scores           - Show the leaderboard
//	madness legend           - List the coins and the rug
//	madness manifest         - Print the discovery manifest
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible spawns
//	--db <path>           - Set database path (default: ~/.madness/madness.db)
//	--config <path>       - Custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagDebug      bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "madness",
	Short: "Meme Coin Madness - tap the coins, dodge the rugs",
	Long: `Meme Coin Madness is a 60 second tapping game for your terminal.

Click falling meme coins for points. Each hit in a row raises your combo
(up to x10), a missed click resets it, and clicking the rug ends the run.

Available commands:
  play      - Play in this terminal (default)
  serve     - Start SSH server for remote play
  scores    - View the leaderboard and run history
  legend    - List the coins and the rug
  manifest  - Print the discovery manifest

Examples:
  madness
  madness play --name vitalik --difficulty hard
  madness serve --ssh :2222 --http :8080
  madness scores --history`,
	Run: runPlay,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.madness/madness.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "Write a debug log to ~/.madness/madness.log")

	addPlayFlags(rootCmd)

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(legendCmd)
	rootCmd.AddCommand(manifestCmd)
}
