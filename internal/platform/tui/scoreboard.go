package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memecoin-madness/internal/game"
	"github.com/vovakirdan/memecoin-madness/internal/storage"
)

// Scoreboard layout constants
const (
	minWidthForSidebar = 80 // Minimum width to show the view list sidebar
	sidebarWidth       = 20 // Width of the view list sidebar
	maxRuns            = 50 // Max runs to load
)

// scoreboardView is one page of the scoreboard.
type scoreboardView int

const (
	viewLeaderboard scoreboardView = iota
	viewRuns
	viewLegend
)

var scoreboardViews = []struct {
	view  scoreboardView
	title string
}{
	{viewLeaderboard, "Leaderboard"},
	{viewRuns, "Recent runs"},
	{viewLegend, "Legend"},
}

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	Left     key.Binding
	Right    key.Binding
	Back     key.Binding
	Quit     key.Binding
	NextView key.Binding
	PrevView key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextView, k.PrevView, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextView, k.PrevView},
		{k.Back, k.Quit},
	}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "prev view"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "next view"),
		),
		NextView: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "next view"),
		),
		PrevView: key.NewBinding(
			key.WithKeys("shift+tab"),
			key.WithHelp("S-tab", "prev view"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel shows the leaderboard, the run history and the legend.
type ScoreboardModel struct {
	board       game.Leaderboard
	store       *storage.Store // Run history, may be nil
	player      string
	cursor      int
	rows        []table.Row
	table       table.Model
	help        help.Model
	keys        ScoreboardKeyMap
	width       int
	height      int
	standalone  bool // Back quits the program
	quitting    bool
	goingBack   bool
	showSidebar bool
}

// NewScoreboardModel creates a new scoreboard model.
func NewScoreboardModel(board game.Leaderboard, store *storage.Store, player string, width, height int) ScoreboardModel {
	h := help.New()
	h.ShowAll = false
	h.Width = width

	m := ScoreboardModel{
		board:       board,
		store:       store,
		player:      player,
		keys:        DefaultScoreboardKeyMap(),
		help:        h,
		width:       width,
		height:      height,
		showSidebar: width >= minWidthForSidebar,
	}
	m.reload()
	return m
}

func (m ScoreboardModel) current() scoreboardView {
	return scoreboardViews[m.cursor].view
}

// columns returns the table columns for the current view, sized to width.
func (m *ScoreboardModel) columns() []table.Column {
	tableWidth := m.width - 6 // Margins and border
	if m.showSidebar {
		tableWidth -= sidebarWidth + 3
	}

	switch m.current() {
	case viewRuns:
		return []table.Column{
			{Title: "Player", Width: max(12, tableWidth-54)},
			{Title: "Score", Width: 8},
			{Title: "End", Width: 8},
			{Title: "Time", Width: 8},
			{Title: "Date", Width: 16},
		}
	case viewLegend:
		return []table.Column{
			{Title: "Icon", Width: 10},
			{Title: "Name", Width: 12},
			{Title: "Ticker", Width: 8},
			{Title: "Effect", Width: max(16, tableWidth-46)},
		}
	default:
		return []table.Column{
			{Title: "Rank", Width: 6},
			{Title: "Player", Width: max(12, tableWidth-20)},
			{Title: "Best", Width: 8},
		}
	}
}

// createTable creates a new table for the current view.
func (m *ScoreboardModel) createTable() table.Model {
	t := table.New(
		table.WithColumns(m.columns()),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-8)), // Leave room for header, help, and margins
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// reload rebuilds the table from the data source of the current view.
func (m *ScoreboardModel) reload() {
	m.table = m.createTable()
	m.rows = m.loadRows()
	m.table.SetRows(m.rows)
	m.table.GotoTop()
}

func (m *ScoreboardModel) loadRows() []table.Row {
	switch m.current() {
	case viewRuns:
		return m.runRows()
	case viewLegend:
		return legendRows()
	default:
		return boardRows(m.board, m.player)
	}
}

func boardRows(board game.Leaderboard, player string) []table.Row {
	if board == nil {
		return nil
	}
	entries := board.Load()
	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		name := e.Name
		if e.Name == player {
			name = "> " + name
		}
		rows[i] = table.Row{fmt.Sprintf("#%d", i+1), name, fmt.Sprintf("%d", e.BestScore)}
	}
	return rows
}

func (m *ScoreboardModel) runRows() []table.Row {
	if m.store == nil {
		return nil
	}
	runs, err := m.store.RecentRuns("", maxRuns)
	if err != nil {
		return nil
	}
	rows := make([]table.Row, len(runs))
	for i, r := range runs {
		end := "time"
		if r.EndReason == game.ReasonHazardHit.String() {
			end = "rugged"
		}
		rows[i] = table.Row{
			r.Player,
			fmt.Sprintf("%d", r.Score),
			end,
			fmt.Sprintf("%.1fs", float64(r.DurationMs)/1000),
			r.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	return rows
}

func legendRows() []table.Row {
	rows := make([]table.Row, len(game.Archetypes))
	for i, a := range game.Archetypes {
		effect := "+10 x combo"
		if a.Kind == game.Hazard {
			effect = "ends the run"
		}
		rows[i] = table.Row{iconLabel(a), a.Label, a.Ticker, effect}
	}
	return rows
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (ScoreboardModel, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			if m.standalone {
				return m, tea.Quit
			}
			return m, nil

		case key.Matches(msg, m.keys.NextView), key.Matches(msg, m.keys.Right):
			m.cursor = (m.cursor + 1) % len(scoreboardViews)
			m.reload()
			return m, nil

		case key.Matches(msg, m.keys.PrevView), key.Matches(msg, m.keys.Left):
			m.cursor--
			if m.cursor < 0 {
				m.cursor = len(scoreboardViews) - 1
			}
			m.reload()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.showSidebar = m.width >= minWidthForSidebar
		m.help.Width = msg.Width
		m.reload()
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || (m.goingBack && m.standalone) {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)

	title := fmt.Sprintf("MEME COIN MADNESS - %s", strings.ToUpper(scoreboardViews[m.cursor].title))
	b.WriteString(titleStyle.Render(centerText(title, m.width)))
	b.WriteString("\n\n")

	if m.showSidebar {
		b.WriteString(m.renderWideLayout())
	} else {
		b.WriteString(m.renderNarrowLayout())
	}

	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// renderWideLayout renders the view list as a sidebar next to the table.
func (m ScoreboardModel) renderWideLayout() string {
	sidebarStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Width(sidebarWidth).
		Padding(0, 1)

	var sidebar strings.Builder
	sidebar.WriteString("Views\n")
	sidebar.WriteString(strings.Repeat("-", sidebarWidth-4))
	sidebar.WriteString("\n")

	for i, v := range scoreboardViews {
		cursor := "  "
		style := lipgloss.NewStyle()
		if i == m.cursor {
			cursor = "> "
			style = style.Bold(true).Foreground(lipgloss.Color("229"))
		}
		sidebar.WriteString(style.Render(cursor + v.title))
		sidebar.WriteString("\n")
	}

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		sidebarStyle.Render(sidebar.String()),
		"  ",
		tableStyle.Render(m.renderTableContent()),
	)
}

// renderNarrowLayout renders the view tabs above the table.
func (m ScoreboardModel) renderNarrowLayout() string {
	var b strings.Builder

	tabStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	activeTabStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)

	tabs := make([]string, len(scoreboardViews))
	for i, v := range scoreboardViews {
		if i == m.cursor {
			tabs[i] = activeTabStyle.Render(v.title)
		} else {
			tabs[i] = tabStyle.Render(" " + v.title + " ")
		}
	}

	tabLine := strings.Join(tabs, " ")
	if lipgloss.Width(tabLine) > m.width-4 {
		tabLine = fmt.Sprintf("< %s >", scoreboardViews[m.cursor].title)
	}
	b.WriteString(centerText(tabLine, m.width))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)

	b.WriteString(centerText(tableStyle.Render(m.renderTableContent()), m.width))
	return b.String()
}

// renderTableContent renders the table or an empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.rows) == 0 {
		emptyStyle := lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		if m.current() == viewRuns && m.store == nil {
			return emptyStyle.Render("Run history is unavailable.\nThe scores database could not be opened.")
		}
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set the first score.")
	}
	return m.table.View()
}

// Rows returns the rows of the current view.
func (m ScoreboardModel) Rows() []table.Row {
	return m.rows
}

// IsGoingBack returns true if user wants to go back.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// scoreboardProgram adapts ScoreboardModel to tea.Model for standalone use.
type scoreboardProgram struct {
	ScoreboardModel
}

func (p scoreboardProgram) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	m, cmd := p.ScoreboardModel.Update(msg)
	return scoreboardProgram{m}, cmd
}

// RunScoreboard runs the scoreboard as its own program.
func RunScoreboard(board game.Leaderboard, store *storage.Store, player string, width, height int) error {
	m := NewScoreboardModel(board, store, player, width, height)
	m.standalone = true

	p := tea.NewProgram(scoreboardProgram{m}, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
