package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/vovakirdan/memecoin-madness/internal/core"
	"github.com/vovakirdan/memecoin-madness/internal/game"
	"github.com/vovakirdan/memecoin-madness/internal/leaderboard"
)

// Screen rows above the field.
const (
	hudRow     = 0
	messageRow = 1
	fieldTop   = 2
)

// leaderboardRows is how many entries the in-game panel shows.
const leaderboardRows = 5

// Phase messages shown above the field.
const (
	msgIdle    = "Tap the meme coins, dodge the rugs."
	msgRunning = "Squash the coins! Avoid the rugs!"
	msgRugged  = "You Got Rugged!!"
	msgTimeUp  = "Time's up!"
	msgMinted  = "Badge “minted” locally – later we’ll hook this up to a real Base contract."
)

// panelLine is one line of the idle/over panel. Lines with an action are
// buttons: clicking them performs the action.
type panelLine struct {
	text   string
	color  core.Color
	action core.Action
}

// layout is the geometry shared by drawing and hit testing.
type layout struct {
	field core.Rect // Border included
	inner core.Rect // Playable area
	panel core.Rect // Zero when no panel is shown
	lines []panelLine
}

// computeLayout places the field and, when lines is non-empty, the panel
// centered inside it. Lines that do not fit are dropped from the bottom.
func computeLayout(width, height int, lines []panelLine) layout {
	l := layout{field: core.NewRect(0, fieldTop, width, core.Max(0, height-fieldTop))}
	l.inner = l.field.Inset(1)
	if len(lines) == 0 || l.inner.Empty() {
		return l
	}

	maxLines := core.Max(0, l.inner.H-2)
	if len(lines) > maxLines {
		lines = lines[:maxLines]
	}
	textW := 0
	for _, ln := range lines {
		textW = core.Max(textW, textWidth(ln.text))
	}
	w := core.Clamp(textW+4, 0, l.inner.W)
	h := len(lines) + 2
	l.panel = core.NewRect(l.inner.X+(l.inner.W-w)/2, l.inner.Y+(l.inner.H-h)/2, w, h)
	l.lines = lines
	return l
}

// lineAt returns the panel line under (x, y).
func (l layout) lineAt(x, y int) (panelLine, bool) {
	if l.panel.Empty() || !l.panel.Inset(1).Contains(x, y) {
		return panelLine{}, false
	}
	i := y - l.panel.Y - 1
	if i < 0 || i >= len(l.lines) {
		return panelLine{}, false
	}
	return l.lines[i], true
}

// iconLabel is the text an icon is drawn as.
func iconLabel(a game.Archetype) string {
	if a.Kind == game.Hazard {
		return "!" + a.Ticker + "!"
	}
	return "$" + a.Ticker
}

// iconSpan returns where an icon's label starts and its row.
func (l layout) iconSpan(ic game.Icon) (x, y int, label string) {
	label = iconLabel(ic.Archetype)
	px, py := l.inner.Project(ic.X, ic.Y)
	return px - textWidth(label)/2, py, label
}

// hitIcon finds the topmost icon whose visible label covers (x, y). Icons
// drawn later are on top, so the search runs newest first.
func (l layout) hitIcon(icons []game.Icon, x, y int) (int, bool) {
	if !l.inner.Contains(x, y) {
		return 0, false
	}
	for i := len(icons) - 1; i >= 0; i-- {
		sx, sy, label := l.iconSpan(icons[i])
		if y == sy && x >= sx && x < sx+textWidth(label) {
			return icons[i].ID, true
		}
	}
	return 0, false
}

// phaseMessage is the line shown above the field.
func phaseMessage(s *game.Session) string {
	switch s.Phase() {
	case game.PhaseRunning:
		return msgRunning
	case game.PhaseOver:
		if s.Reason() == game.ReasonHazardHit {
			return msgRugged
		}
		return msgTimeUp
	default:
		return msgIdle
	}
}

// panelLines builds the idle/over panel. It is empty while a run is active.
func panelLines(s *game.Session, entries []leaderboard.Entry) []panelLine {
	var lines []panelLine
	add := func(text string, c core.Color, a core.Action) {
		lines = append(lines, panelLine{text: text, color: c, action: a})
	}

	switch s.Phase() {
	case game.PhaseRunning:
		return nil
	case game.PhaseIdle:
		add("MEME COIN MADNESS", core.ColorHighlight, core.ActionNone)
		add("", core.ColorDefault, core.ActionNone)
		add("Tap moving meme coins for points. Avoid all rugs.", core.ColorDefault, core.ActionNone)
		add("Combos build your score, but one bad rug and", core.ColorDefault, core.ActionNone)
		add("You Get Rugged!!", core.ColorRug, core.ActionNone)
		add("", core.ColorDefault, core.ActionNone)
		add("[ Start Game ]", core.ColorCoin, core.ActionStart)
	case game.PhaseOver:
		add(fmt.Sprintf("Final score: %d", s.Score()), core.ColorHighlight, core.ActionNone)
		if s.Reason() == game.ReasonHazardHit {
			add(msgRugged, core.ColorRug, core.ActionNone)
		} else {
			add("Time's up. Not bad, degen.", core.ColorDefault, core.ActionNone)
		}
		add(fmt.Sprintf("Best: %d", s.Best()), core.ColorHUD, core.ActionNone)
		add("", core.ColorDefault, core.ActionNone)
		add("[ Play Again ]", core.ColorCoin, core.ActionStart)
		if s.CanMint() {
			add("[ Mint High Score Badge (stub) ]", core.ColorBadge, core.ActionMint)
		}
		if s.Minted() {
			add(msgMinted, core.ColorMarker, core.ActionNone)
		}
	}

	add("", core.ColorDefault, core.ActionNone)
	shown := leaderboardRows
	if len(entries) > 0 {
		shown = min(len(entries), leaderboardRows)
	}
	add(fmt.Sprintf("LEADERBOARD (local) · Top %d · this device", shown), core.ColorDim, core.ActionNone)
	if len(entries) == 0 {
		add("Play a game to set the first score.", core.ColorDim, core.ActionNone)
	}
	for i, e := range leaderboard.Top(entries, leaderboardRows) {
		mark, c := "  ", core.ColorDefault
		if e.Name == s.Player() {
			mark, c = "> ", core.ColorHighlight
		}
		add(fmt.Sprintf("%s%d. %-18s %6d", mark, i+1, truncate(e.Name, 18), e.BestScore), c, core.ActionNone)
	}
	return lines
}

// drawGame renders the whole play screen into scr.
func drawGame(scr *core.Screen, s *game.Session, now time.Time, status string) layout {
	scr.Clear()
	w := scr.Width()

	entries := s.Leaderboard()
	l := computeLayout(w, scr.Height(), panelLines(s, entries))

	drawHUD(scr, s)

	msg := phaseMessage(s)
	if status != "" {
		msg = status
	}
	scr.DrawTextCentered(messageRow, truncate(msg, w), core.ColorDim)

	scr.DrawBox(l.field, core.ColorFrame)

	for _, ic := range s.Icons() {
		x, y, label := l.iconSpan(ic)
		c := core.ColorCoin
		if ic.Archetype.Kind == game.Hazard {
			c = core.ColorRug
		}
		scr.DrawTextClipped(x, y, label, c, l.inner)
	}
	for _, m := range s.Markers(now) {
		px, py := l.inner.Project(m.X, m.Y)
		text := fmt.Sprintf("+%d", m.Points)
		scr.DrawTextClipped(px-textWidth(text)/2, py, text, core.ColorMarker, l.inner)
	}

	if !l.panel.Empty() {
		scr.DrawRect(l.panel, ' ')
		scr.DrawBox(l.panel, core.ColorHighlight)
		body := l.panel.Inset(1)
		for i, ln := range l.lines {
			x := body.X + (body.W-textWidth(ln.text))/2
			scr.DrawTextClipped(x, body.Y+i, ln.text, ln.color, body)
		}
	}
	return l
}

// drawHUD draws score, time, best and the combo bar on the top row.
func drawHUD(scr *core.Screen, s *game.Session) {
	x := 1
	put := func(text string, c core.Color) {
		scr.DrawText(x, hudRow, text, c)
		x += textWidth(text)
	}

	put(fmt.Sprintf("SCORE %d", s.Score()), core.ColorHUD)
	put("  │  ", core.ColorFrame)
	put(fmt.Sprintf("TIME %ds", s.RemainingSeconds()), core.ColorHUD)
	put("  │  ", core.ColorFrame)
	put(fmt.Sprintf("BEST %d", s.Best()), core.ColorHUD)
	put("  │  ", core.ColorFrame)
	put(fmt.Sprintf("COMBO x%d ", s.Combo()), core.ColorCombo)
	put(strings.Repeat("■", s.Combo()), core.ColorCombo)
	put(strings.Repeat("·", core.Max(0, s.Config().Scoring.MaxCombo-s.Combo())), core.ColorDim)
}

// textWidth counts runes; every glyph drawn on the field is one cell wide.
func textWidth(s string) int {
	return len([]rune(s))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
