package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/memecoin-madness/internal/config"
	"github.com/vovakirdan/memecoin-madness/internal/core"
	"github.com/vovakirdan/memecoin-madness/internal/host"
	"github.com/vovakirdan/memecoin-madness/internal/platform/tui"
	"github.com/vovakirdan/memecoin-madness/internal/sound"
	"github.com/vovakirdan/memecoin-madness/internal/storage"
)

var (
	flagName   string
	flagSound  bool
	flagVolume float64
)

// Replaced in tests.
var (
	runGame     = tui.Run
	openPlayLog = newPlayLogger
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in this terminal",
	Long: `Start Meme Coin Madness in the current terminal.

Controls:
  Left click  - Tap a coin (or a button)
  Enter/Space - Start / play again
  M           - Mint high score badge (stub, best >= 300)
  Tab         - Leaderboard
  Esc/B       - Back (leaderboard or results)
  Ctrl+S      - Screenshot
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Slower spawns, gentle speed ramp
  normal - Default spawns, starts slightly faster
  hard   - Faster spawns, starts near top speed
  fixed  - No speed ramp at all

The player name comes from --name, then $MADNESS_DISPLAY_NAME.

Examples:
  madness play
  madness play --name degen42
  madness play --difficulty hard --sound
  madness play --config ./my-madness.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	addPlayFlags(playCmd)
}

func addPlayFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&flagName, "name", "", "Display name on the leaderboard")
	cmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound effects")
	cmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound volume, 0 to 1")
}

func runPlay(_ *cobra.Command, _ []string) {
	if err := playLocal(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// playLocal runs the game in this terminal. Deferred cleanup runs before
// runPlay exits.
func playLocal() error {
	gameCfg, err := loadGameConfig()
	if err != nil {
		return err
	}

	logger, closeLog := openPlayLog()
	defer closeLog()

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

	// Open score storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		// Continue in memory - the game still works, scores just don't persist
		store = nil
	}

	var player sound.Player = sound.Nop{}
	if flagSound {
		sp, spErr := sound.NewSpeaker(flagVolume)
		if spErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: sound disabled: %v\n", spErr)
		} else {
			player = sp
		}
	}

	runErr := runGame(tui.Options{
		Game:    gameCfg,
		Runtime: cfg,
		Host:    host.NewLocal(flagName, logger),
		Board:   tui.NewBoard(store, gameCfg.Leaderboard, logger),
		Store:   store,
		Sound:   player,
		Logger:  logger,
	})

	// Release resources before potential exit
	player.Close()
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		return fmt.Errorf("running game: %w", runErr)
	}
	return nil
}

// loadGameConfig loads the YAML config and applies the difficulty preset.
func loadGameConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagDifficulty != "" {
		preset := config.ParsePreset(flagDifficulty)
		if preset == "" {
			return cfg, fmt.Errorf("unknown difficulty %q (want easy, normal, hard or fixed)", flagDifficulty)
		}
		config.ApplyPreset(&cfg, preset)
	}
	return cfg, nil
}

// newPlayLogger returns the logger for a local game. The alt screen owns the
// terminal, so logs go to a file with --debug and nowhere otherwise.
func newPlayLogger() (*log.Logger, func()) {
	if !flagDebug {
		return log.New(io.Discard), func() {}
	}

	path, err := storage.ExpandHome("~/.madness/madness.log")
	if err == nil {
		err = os.MkdirAll(filepath.Dir(path), 0o755)
	}
	var f *os.File
	if err == nil {
		f, err = os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open debug log: %v\n", err)
		return log.New(io.Discard), func() {}
	}

	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "madness",
		Level:           log.DebugLevel,
	})
	return logger, func() { f.Close() }
}
