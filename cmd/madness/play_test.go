package main

import (
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/memecoin-madness/internal/platform/tui"
)

// stubPlay swaps the game loop and the log opener, restoring them after t.
func stubPlay(t *testing.T, run func(tui.Options) error) *int {
	t.Helper()
	closed := new(int)
	prevRun, prevLog := runGame, openPlayLog
	prevDB, prevCfg, prevDiff := flagDBPath, flagConfig, flagDifficulty
	t.Cleanup(func() {
		runGame, openPlayLog = prevRun, prevLog
		flagDBPath, flagConfig, flagDifficulty = prevDB, prevCfg, prevDiff
	})

	runGame = run
	openPlayLog = func() (*log.Logger, func()) {
		return log.New(io.Discard), func() { *closed++ }
	}
	flagDBPath = filepath.Join(t.TempDir(), "madness.db")
	flagConfig = ""
	flagDifficulty = ""
	return closed
}

func TestPlayLocalClosesLogOnGameError(t *testing.T) {
	boom := errors.New("no tty")
	closed := stubPlay(t, func(tui.Options) error { return boom })

	err := playLocal()
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 1, *closed)
}

func TestPlayLocalPassesPlayer(t *testing.T) {
	var got tui.Options
	closed := stubPlay(t, func(o tui.Options) error {
		got = o
		return nil
	})

	require.NoError(t, playLocal())
	assert.Equal(t, 1, *closed)
	assert.NotNil(t, got.Board)
	assert.NotNil(t, got.Host)
	assert.Equal(t, 60, got.Game.Session.DurationMs/1000)
}

func TestPlayLocalRejectsUnknownDifficulty(t *testing.T) {
	closed := stubPlay(t, func(tui.Options) error {
		t.Fatal("game must not start")
		return nil
	})
	flagDifficulty = "insane"

	err := playLocal()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown difficulty")
	assert.Zero(t, *closed)
}
