package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/memecoin-madness/internal/config"
	"github.com/vovakirdan/memecoin-madness/internal/game"
	"github.com/vovakirdan/memecoin-madness/internal/host"
	"github.com/vovakirdan/memecoin-madness/internal/platform/tui"
	"github.com/vovakirdan/memecoin-madness/internal/storage"
)

var (
	flagHistory     bool
	flagInteractive bool
	flagPlayer      string
	flagReset       bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the leaderboard",
	Long: `Display the leaderboard kept on this device (top 10 best scores).

Examples:
  madness scores
  madness scores --history
  madness scores --history --player degen42
  madness scores --interactive
  madness scores --reset`,
	Args: cobra.NoArgs,
	Run:  runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagHistory, "history", false, "Show recent runs instead of best scores")
	scoresCmd.Flags().BoolVar(&flagInteractive, "interactive", false, "Browse scores in a table view")
	scoresCmd.Flags().StringVar(&flagPlayer, "player", "", "Limit history and stats to one player")
	scoresCmd.Flags().BoolVar(&flagReset, "reset", false, "Clear the leaderboard, badges and run history")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening scores database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	cfg := config.DefaultConfig().Leaderboard
	if gameCfg, cfgErr := loadGameConfig(); cfgErr == nil {
		cfg = gameCfg.Leaderboard
	}

	switch {
	case flagReset:
		err = resetScores(store, cfg)
	case flagInteractive:
		err = showInteractive(store, cfg)
	case flagHistory:
		err = showHistory(store)
	default:
		showLeaderboard(store, cfg)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func showLeaderboard(store *storage.Store, cfg config.LeaderboardConfig) {
	board := tui.NewBoard(store, cfg, nil)
	entries := board.Load()

	fmt.Println("LEADERBOARD (local) - this device")
	fmt.Println()

	if len(entries) == 0 {
		fmt.Println("No scores recorded yet.")
		fmt.Println()
		fmt.Println("Play 'madness play' to set the first high score!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-20s  %s\n", "Rank", "Player", "Best")
	fmt.Printf("  %-4s  %-20s  %s\n", "----", "------", "----")

	for i, e := range entries {
		badge := ""
		if board.HasBadge(e.Name) {
			badge = "  [badge]"
		}
		fmt.Printf("  %-4d  %-20s  %d%s\n", i+1, e.Name, e.BestScore, badge)
	}

	if flagPlayer == "" {
		return
	}
	stats, err := store.PlayerStats(flagPlayer)
	if err != nil || stats.RunsCount == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("%s: %d runs, best %d, average %.0f, rugged %d times, last played %s\n",
		stats.Player, stats.RunsCount, stats.BestScore, stats.AvgScore, stats.Rugged,
		stats.LastPlayed.Format("2006-01-02 15:04"))
}

func showHistory(store *storage.Store) error {
	runs, err := store.RecentRuns(flagPlayer, 20)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}

	fmt.Println("Recent runs")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-20s  %-6s  %-6s  %-6s  %s\n", "Player", "Score", "End", "Time", "Date")
	fmt.Printf("  %-20s  %-6s  %-6s  %-6s  %s\n", "------", "-----", "---", "----", "----")
	for _, r := range runs {
		end := "time"
		if r.EndReason == game.ReasonHazardHit.String() {
			end = "rugged"
		}
		fmt.Printf("  %-20s  %-6d  %-6s  %-6s  %s\n",
			r.Player, r.Score, end,
			fmt.Sprintf("%.1fs", float64(r.DurationMs)/1000),
			r.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func showInteractive(store *storage.Store, cfg config.LeaderboardConfig) error {
	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	player := host.ResolveName(flagPlayer, os.Getenv(host.EnvDisplayName))
	return tui.RunScoreboard(tui.NewBoard(store, cfg, nil), store, player, width, height)
}

func resetScores(store *storage.Store, cfg config.LeaderboardConfig) error {
	keys := []string{cfg.Key, cfg.BadgeKey}
	for _, k := range keys {
		if k == "" {
			continue
		}
		if err := store.Delete(k); err != nil {
			return fmt.Errorf("clearing %s: %w", k, err)
		}
	}
	if err := store.ClearRuns(); err != nil {
		return fmt.Errorf("clearing run history: %w", err)
	}
	fmt.Println("Leaderboard and run history cleared.")
	return nil
}
