package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/memecoin-madness/internal/config"
	"github.com/vovakirdan/memecoin-madness/internal/core"
	"github.com/vovakirdan/memecoin-madness/internal/game"
	"github.com/vovakirdan/memecoin-madness/internal/leaderboard"
)

func TestComputeLayout(t *testing.T) {
	l := computeLayout(80, 23, nil)
	assert.Equal(t, core.NewRect(0, fieldTop, 80, 21), l.field)
	assert.Equal(t, core.NewRect(1, fieldTop+1, 78, 19), l.inner)
	assert.True(t, l.panel.Empty())

	lines := []panelLine{{text: "hello"}, {text: "[ go ]", action: core.ActionStart}}
	l = computeLayout(80, 23, lines)
	require.False(t, l.panel.Empty())
	assert.Equal(t, len(lines)+2, l.panel.H)
	assert.True(t, l.inner.Contains(l.panel.X, l.panel.Y))

	got, ok := l.lineAt(l.panel.X+2, l.panel.Y+2)
	require.True(t, ok)
	assert.Equal(t, core.ActionStart, got.action)

	_, ok = l.lineAt(l.panel.X, l.panel.Y) // Border
	assert.False(t, ok)
}

func TestComputeLayoutDropsOverflow(t *testing.T) {
	lines := make([]panelLine, 30)
	l := computeLayout(80, 12, lines)
	assert.Len(t, l.lines, l.inner.H-2)
	assert.LessOrEqual(t, l.panel.H, l.inner.H)
}

func TestIconLabel(t *testing.T) {
	for _, a := range game.Archetypes {
		label := iconLabel(a)
		if a.Kind == game.Hazard {
			assert.Equal(t, "!RUG!", label)
		} else {
			assert.Equal(t, "$"+a.Ticker, label)
		}
	}
}

func TestHitIconPrefersNewest(t *testing.T) {
	l := computeLayout(80, 23, nil)
	a := game.Archetypes[0]
	icons := []game.Icon{
		{ID: 1, X: 0.5, Y: 0.5, Archetype: a},
		{ID: 2, X: 0.5, Y: 0.5, Archetype: a},
	}
	x, y, _ := l.iconSpan(icons[0])

	id, ok := l.hitIcon(icons, x, y)
	require.True(t, ok)
	assert.Equal(t, 2, id)

	_, ok = l.hitIcon(icons, x-1, y)
	assert.False(t, ok)
	_, ok = l.hitIcon(icons, x, y+1)
	assert.False(t, ok)
}

func TestHitIconIgnoresClippedPart(t *testing.T) {
	l := computeLayout(80, 23, nil)
	icons := []game.Icon{{ID: 7, X: 0.5, Y: -0.1, Archetype: game.Archetypes[0]}}
	x, y, _ := l.iconSpan(icons[0])
	require.False(t, l.inner.Contains(x, y))

	_, ok := l.hitIcon(icons, x, y)
	assert.False(t, ok)
}

func TestPanelLines(t *testing.T) {
	board := leaderboard.NewStore(leaderboard.NewMemoryKV())
	for i, name := range []string{"a", "b", "c", "d", "e", "tester"} {
		board.Commit(name, 100*(i+1))
	}
	s := game.NewSession(config.DefaultConfig(), "tester", board, fixedRand{})

	lines := panelLines(s, board.Load())
	texts := make([]string, len(lines))
	for i, ln := range lines {
		texts[i] = ln.text
	}
	joined := strings.Join(texts, "\n")

	assert.Contains(t, joined, "[ Start Game ]")
	assert.Contains(t, joined, "Top 5")
	assert.Contains(t, joined, "> 1. tester")
	assert.NotContains(t, joined, "6.", "only five entries are listed")

	require.True(t, s.Start(t0))
	assert.Nil(t, panelLines(s, board.Load()))

	s.End(game.ReasonTimeExpired)
	lines = panelLines(s, board.Load())
	var actions []core.Action
	for _, ln := range lines {
		if ln.action != core.ActionNone {
			actions = append(actions, ln.action)
		}
	}
	assert.Equal(t, []core.Action{core.ActionStart, core.ActionMint}, actions)
}

func TestPanelLinesEmptyBoard(t *testing.T) {
	board := leaderboard.NewStore(leaderboard.NewMemoryKV())
	s := game.NewSession(config.DefaultConfig(), "tester", board, fixedRand{})
	lines := panelLines(s, nil)
	assert.Equal(t, "Play a game to set the first score.", lines[len(lines)-1].text)
}

func TestDrawHUD(t *testing.T) {
	board := leaderboard.NewStore(leaderboard.NewMemoryKV())
	s := game.NewSession(config.DefaultConfig(), "tester", board, fixedRand{})
	scr := core.NewScreen(80, 23)

	drawGame(scr, s, t0, "")
	hud := scr.Row(hudRow)
	assert.Contains(t, hud, "SCORE 0")
	assert.Contains(t, hud, "TIME 60s")
	assert.Contains(t, hud, "COMBO x1")
	assert.Contains(t, scr.Row(messageRow), msgIdle)

	drawGame(scr, s, t0, "saved")
	assert.Contains(t, scr.Row(messageRow), "saved")
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abcd", 3))
	assert.Equal(t, "a", truncate("abcd", 1))
}

func TestKeyMapper(t *testing.T) {
	km := NewKeyMapper()
	tests := []struct {
		msg  tea.KeyMsg
		want core.Action
	}{
		{tea.KeyMsg{Type: tea.KeyEnter}, core.ActionStart},
		{tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionStart},
		{runeKey('m'), core.ActionMint},
		{tea.KeyMsg{Type: tea.KeyTab}, core.ActionScoreboard},
		{tea.KeyMsg{Type: tea.KeyEsc}, core.ActionBack},
		{runeKey('b'), core.ActionBack},
		{tea.KeyMsg{Type: tea.KeyCtrlS}, core.ActionScreenshot},
		{runeKey('q'), core.ActionQuit},
		{tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit},
		{runeKey('x'), core.ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.msg.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, km.MapKey(tt.msg))
		})
	}
}
