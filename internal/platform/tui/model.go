package tui

import (
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/memecoin-madness/internal/config"
	"github.com/vovakirdan/memecoin-madness/internal/core"
	"github.com/vovakirdan/memecoin-madness/internal/game"
	"github.com/vovakirdan/memecoin-madness/internal/host"
	"github.com/vovakirdan/memecoin-madness/internal/sound"
	"github.com/vovakirdan/memecoin-madness/internal/storage"
)

// Options holds everything a game screen needs.
type Options struct {
	Game    config.Config
	Runtime core.RuntimeConfig
	Host    host.Host
	Board   game.Leaderboard
	Store   *storage.Store // Run history, may be nil
	Sound   sound.Player   // Nil means silent
	Logger  *log.Logger

	// Now overrides the wall clock used for taps and starts.
	Now func() time.Time
}

// Model is the Bubble Tea model of the play screen.
type Model struct {
	session    *game.Session
	host       host.Host
	board      game.Leaderboard
	store      *storage.Store
	logger     *log.Logger
	screen     *core.Screen
	config     core.RuntimeConfig
	keyMapper  *KeyMapper
	help       help.Model
	now        func() time.Time
	status     string
	scoreboard *ScoreboardModel
	quitting   bool
}

// NewModel creates the play screen and its session.
func NewModel(opts Options) Model {
	cfg := opts.Runtime
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	if opts.Sound == nil {
		opts.Sound = sound.Nop{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	player := opts.Host.DisplayName()
	rng := rand.New(rand.NewSource(cfg.Seed))
	session := game.NewSession(opts.Game, player, opts.Board, rng,
		game.WithListener(eventHandler(player, opts.Store, opts.Sound, opts.Logger)),
	)

	h := help.New()
	h.Width = cfg.ScreenW

	return Model{
		session:   session,
		host:      opts.Host,
		board:     opts.Board,
		store:     opts.Store,
		logger:    opts.Logger,
		screen:    core.NewScreen(cfg.ScreenW, core.Max(0, cfg.ScreenH-1)),
		config:    cfg,
		keyMapper: NewKeyMapper(),
		help:      h,
		now:       opts.Now,
	}
}

// eventHandler reacts to session events with sound, logging and run history.
func eventHandler(player string, store *storage.Store, sp sound.Player, logger *log.Logger) func(game.Event) {
	return func(e game.Event) {
		switch e.Type {
		case game.EventStarted:
			logger.Debug("run started", "player", player)
		case game.EventHit:
			sp.Hit(e.Combo)
		case game.EventEnded:
			if e.Reason == game.ReasonHazardHit {
				sp.Rug()
			} else {
				sp.TimeUp()
			}
			logger.Info("run ended", "player", player, "score", e.Score, "reason", e.Reason, "duration", e.Duration)
			if store == nil {
				return
			}
			if _, err := store.SaveRun(player, e.Score, e.Reason.String(), e.Duration); err != nil {
				logger.Debug("could not save run", "error", err)
			}
		}
	}
}

// Session exposes the underlying game session.
func (m Model) Session() *game.Session {
	return m.session
}

// Init signals readiness to the host and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.host.Ready()
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		m.session.Advance(time.Time(msg))
		return m, tickCmd(m.config.TickRate)
	}

	if m.scoreboard != nil {
		return m.updateScoreboard(msg)
	}

	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.perform(m.keyMapper.MapKey(msg))

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return m.handleTap(core.Tap{X: msg.X, Y: msg.Y})
		}
	}
	return m, nil
}

func (m Model) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	sb, cmd := m.scoreboard.Update(msg)
	if sb.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if sb.IsGoingBack() {
		m.scoreboard = nil
		return m, nil
	}
	m.scoreboard = &sb
	return m, cmd
}

// handleResize processes window resize events. The session is unaffected
// because positions are normalized.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(0, msg.Height-1))
	m.help.Width = msg.Width
	if m.scoreboard != nil {
		sb, _ := m.scoreboard.Update(msg)
		m.scoreboard = &sb
	}
	return m, nil
}

// handleTap resolves a left click. While a run is active it hits an icon or
// counts as a miss inside the field; otherwise it may press a panel button.
func (m Model) handleTap(tap core.Tap) (tea.Model, tea.Cmd) {
	l := m.currentLayout()

	if m.session.Phase() == game.PhaseRunning {
		if id, ok := l.hitIcon(m.session.Icons(), tap.X, tap.Y); ok {
			m.session.TapIcon(id, m.now())
		} else if l.inner.Contains(tap.X, tap.Y) {
			m.session.TapBackground()
		}
		return m, nil
	}

	if line, ok := l.lineAt(tap.X, tap.Y); ok && line.action != core.ActionNone {
		return m.perform(line.action)
	}
	return m, nil
}

// perform runs a chrome action.
func (m Model) perform(action core.Action) (tea.Model, tea.Cmd) {
	switch action {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit

	case core.ActionScreenshot:
		m.saveScreenshot()

	case core.ActionStart:
		if m.session.Start(m.now()) {
			m.status = ""
		}

	case core.ActionBack:
		if m.session.Phase() == game.PhaseOver {
			m.session.Reset()
			m.status = ""
		}

	case core.ActionMint:
		if msg, ok := m.session.MintBadge(); ok {
			m.status = msg
			m.logger.Info("badge minted", "player", m.session.Player(), "best", m.session.Best())
		}

	case core.ActionScoreboard:
		if m.session.Phase() != game.PhaseRunning {
			sb := NewScoreboardModel(m.board, m.store, m.session.Player(), m.config.ScreenW, m.config.ScreenH)
			m.scoreboard = &sb
		}
	}
	return m, nil
}

func (m Model) currentLayout() layout {
	return computeLayout(m.screen.Width(), m.screen.Height(), panelLines(m.session, m.session.Leaderboard()))
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	drawGame(m.screen, m.session, m.now(), m.status)

	dir, err := storage.ExpandHome("~/.madness/screenshots")
	if err != nil {
		return
	}
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := m.now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("madness_%s.txt", timestamp))

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Debug("screenshot failed", "error", err)
		return
	}
	m.status = "Screenshot saved to " + path
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if m.scoreboard != nil {
		return m.scoreboard.View()
	}

	drawGame(m.screen, m.session, m.now(), m.status)
	helpLine := lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Render(m.help.View(m.keyMapper.Keys()))
	return RenderScreen(m.screen) + "\n" + helpLine
}

// Run starts the Bubble Tea program with a new play screen.
func Run(opts Options) error {
	p := tea.NewProgram(
		NewModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	_, err := p.Run()
	return err
}
