package tui

import (
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/memecoin-madness/internal/game"
	"github.com/vovakirdan/memecoin-madness/internal/leaderboard"
	"github.com/vovakirdan/memecoin-madness/internal/storage"
)

func TestScoreboardViews(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer store.Close()

	board := leaderboard.NewStore(store)
	board.Commit("alice", 250)
	board.Commit("tester", 90)
	_, err = store.SaveRun("tester", 90, game.ReasonHazardHit.String(), 12*time.Second)
	require.NoError(t, err)

	sb := NewScoreboardModel(board, store, "tester", 100, 30)
	rows := sb.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "alice", rows[0][1])
	assert.Equal(t, "> tester", rows[1][1])
	assert.Equal(t, "#2", rows[1][0])

	sb, _ = sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	rows = sb.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, []string{"tester", "90", "rugged", "12.0s"}, []string(rows[0][:4]))

	sb, _ = sb.Update(tea.KeyMsg{Type: tea.KeyRight})
	assert.Len(t, sb.Rows(), len(game.Archetypes))
	assert.Contains(t, sb.View(), "LEGEND")

	// Wraps back to the leaderboard, and the other way round
	sb, _ = sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Len(t, sb.Rows(), 2)
	sb, _ = sb.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Len(t, sb.Rows(), len(game.Archetypes))
}

func TestScoreboardWithoutHistory(t *testing.T) {
	board := leaderboard.NewStore(leaderboard.NewMemoryKV())
	sb := NewScoreboardModel(board, nil, "tester", 60, 20)
	assert.Contains(t, sb.View(), "No scores recorded yet.")

	sb, _ = sb.Update(tea.KeyMsg{Type: tea.KeyTab})
	assert.Empty(t, sb.Rows())
	assert.Contains(t, sb.View(), "Run history is unavailable.")
}

func TestScoreboardBackAndQuit(t *testing.T) {
	board := leaderboard.NewStore(leaderboard.NewMemoryKV())

	sb := NewScoreboardModel(board, nil, "tester", 80, 24)
	sb, cmd := sb.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, sb.IsGoingBack())
	assert.False(t, sb.IsQuitting())
	assert.Nil(t, cmd)

	sb = NewScoreboardModel(board, nil, "tester", 80, 24)
	sb.standalone = true
	sb, cmd = sb.Update(runeKey('b'))
	assert.True(t, sb.IsGoingBack())
	assert.NotNil(t, cmd)

	sb = NewScoreboardModel(board, nil, "tester", 80, 24)
	sb, cmd = sb.Update(runeKey('q'))
	assert.True(t, sb.IsQuitting())
	assert.NotNil(t, cmd)
}
