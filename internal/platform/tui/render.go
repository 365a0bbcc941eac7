package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/memecoin-madness/internal/core"
)

// colorStyles maps semantic colors to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:   lipgloss.NewStyle(),
	core.ColorCoin:      lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
	core.ColorRug:       lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
	core.ColorMarker:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
	core.ColorHUD:       lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
	core.ColorCombo:     lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorFrame:     lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
	core.ColorDim:       lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
	core.ColorHighlight: lipgloss.NewStyle().Foreground(lipgloss.Color("229")).Bold(true),
	core.ColorBadge:     lipgloss.NewStyle().Foreground(lipgloss.Color("214")).Bold(true),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		x := 0
		for x < s.Width() {
			startColor := s.GetCell(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// centerText centers text within width using lipgloss.
func centerText(text string, width int) string {
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}
