package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/memecoin-madness/internal/config"
	"github.com/vovakirdan/memecoin-madness/internal/core"
	"github.com/vovakirdan/memecoin-madness/internal/game"
	"github.com/vovakirdan/memecoin-madness/internal/leaderboard"
)

var t0 = time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

// fixedRand always picks archetype pick, centered with no drift.
type fixedRand struct{ pick int }

func (r fixedRand) Intn(n int) int     { return r.pick % n }
func (r fixedRand) Float64() float64 { return 0.5 }

type fakeHost struct {
	name  string
	ready int
}

func (h *fakeHost) Ready()              { h.ready++ }
func (h *fakeHost) DisplayName() string { return h.name }

func newTestModel(t *testing.T, pick int) (Model, *fakeHost, *leaderboard.Store) {
	t.Helper()
	h := &fakeHost{name: "tester"}
	board := leaderboard.NewStore(leaderboard.NewMemoryKV())
	m := NewModel(Options{
		Game:    config.DefaultConfig(),
		Runtime: core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 1},
		Host:    h,
		Board:   board,
		Now:     func() time.Time { return t0 },
	})
	m.session = game.NewSession(config.DefaultConfig(), "tester", board, fixedRand{pick: pick})
	return m, h, board
}

func update(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func click(x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: tea.MouseActionPress, Button: tea.MouseButtonLeft}
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

// spawnVisible adds one icon and lets it fall into view.
func spawnVisible(m Model) game.Icon {
	m.session.Spawn()
	for range 20 {
		m.session.Move(t0)
	}
	icons := m.session.Icons()
	return icons[len(icons)-1]
}

func TestInitSignalsReady(t *testing.T) {
	m, h, _ := newTestModel(t, 0)
	assert.NotNil(t, m.Init())
	assert.Equal(t, 1, h.ready)
}

func TestStartKey(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, game.PhaseRunning, m.session.Phase())
}

func TestStartButton(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	l := m.currentLayout()

	row := -1
	for i, ln := range l.lines {
		if ln.action == core.ActionStart {
			row = i
		}
	}
	require.NotEqual(t, -1, row, "idle panel has a start button")

	m = update(t, m, click(l.panel.X+l.panel.W/2, l.panel.Y+1+row))
	assert.Equal(t, game.PhaseRunning, m.session.Phase())
}

func TestTapIconScores(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	icon := spawnVisible(m)

	l := m.currentLayout()
	x, y, label := l.iconSpan(icon)
	require.True(t, l.inner.Contains(x, y))

	id, ok := l.hitIcon(m.session.Icons(), x+len(label)-1, y)
	require.True(t, ok)
	assert.Equal(t, icon.ID, id)

	m = update(t, m, click(x, y))
	assert.Equal(t, 10, m.session.Score())
	assert.Equal(t, 2, m.session.Combo())
	assert.Empty(t, m.session.Icons())
	assert.Len(t, m.session.Markers(t0), 1)

	// Same spot again: the icon is gone, so it is a background tap
	m = update(t, m, click(x, y))
	assert.Equal(t, 10, m.session.Score())
	assert.Equal(t, 1, m.session.Combo())
}

func TestTapOutsideFieldIgnored(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	icon := spawnVisible(m)

	l := m.currentLayout()
	x, y, _ := l.iconSpan(icon)
	m = update(t, m, click(x, y))
	require.Equal(t, 2, m.session.Combo())

	m = update(t, m, click(5, hudRow))
	assert.Equal(t, 2, m.session.Combo(), "HUD clicks are not misses")
}

func TestTapRugEndsRun(t *testing.T) {
	m, _, board := newTestModel(t, 5)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	icon := spawnVisible(m)
	require.Equal(t, game.Hazard, icon.Archetype.Kind)

	x, y, _ := m.currentLayout().iconSpan(icon)
	m = update(t, m, click(x, y))

	assert.Equal(t, game.PhaseOver, m.session.Phase())
	assert.Equal(t, game.ReasonHazardHit, m.session.Reason())
	assert.Equal(t, []leaderboard.Entry{{Name: "tester", BestScore: 0}}, board.Load())
	assert.Contains(t, m.View(), msgRugged)
}

func TestTickEndsRunOnTimeout(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	m = update(t, m, TickMsg(t0.Add(30*time.Second)))
	assert.Equal(t, 30, m.session.RemainingSeconds())

	m = update(t, m, TickMsg(t0.Add(61*time.Second)))
	assert.Equal(t, game.PhaseOver, m.session.Phase())
	assert.Equal(t, game.ReasonTimeExpired, m.session.Reason())
	assert.Contains(t, m.View(), msgTimeUp)
}

func TestMintKey(t *testing.T) {
	m, _, board := newTestModel(t, 0)
	board.Commit("tester", 300)
	m.session = game.NewSession(config.DefaultConfig(), "tester", board, fixedRand{})
	require.True(t, m.session.CanMint())

	m = update(t, m, runeKey('m'))
	assert.True(t, strings.HasPrefix(m.status, "Stub: would mint"))
	assert.True(t, board.HasBadge("tester"))

	// A second press does nothing new
	m.status = ""
	m = update(t, m, runeKey('m'))
	assert.Empty(t, m.status)
}

func TestScoreboardToggle(t *testing.T) {
	m, _, board := newTestModel(t, 0)
	board.Commit("tester", 120)

	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.NotNil(t, m.scoreboard)
	assert.Contains(t, m.View(), "LEADERBOARD")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Nil(t, m.scoreboard)
}

func TestScoreboardClosedWhileRunning(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	assert.Nil(t, m.scoreboard)
}

func TestQuitKey(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	next, cmd := m.Update(runeKey('q'))
	require.NotNil(t, cmd)
	assert.True(t, next.(Model).quitting)
	assert.Empty(t, next.(Model).View())
}

func TestResizeKeepsSession(t *testing.T) {
	m, _, _ := newTestModel(t, 0)
	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	spawnVisible(m)

	m = update(t, m, tea.WindowSizeMsg{Width: 120, Height: 40})
	assert.Equal(t, 120, m.screen.Width())
	assert.Equal(t, 39, m.screen.Height())
	assert.Len(t, m.session.Icons(), 1)
	assert.Equal(t, game.PhaseRunning, m.session.Phase())
}

func TestBackKeyReturnsToIntro(t *testing.T) {
	m, _, board := newTestModel(t, 5)
	m = update(t, m, runeKey('b'))
	require.Equal(t, game.PhaseIdle, m.session.Phase(), "nothing to leave while idle")

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	icon := spawnVisible(m)
	x, y, _ := m.currentLayout().iconSpan(icon)
	m = update(t, m, click(x, y))
	require.Equal(t, game.PhaseOver, m.session.Phase())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.Equal(t, game.PhaseIdle, m.session.Phase())
	view := m.View()
	assert.Contains(t, view, msgIdle)
	assert.Contains(t, view, "[ Start Game ]")
	assert.Equal(t, []leaderboard.Entry{{Name: "tester", BestScore: 0}}, board.Load())

	m = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, game.PhaseRunning, m.session.Phase())
}
