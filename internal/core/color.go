package core

// Color is a semantic foreground color for a screen cell.
// The platform layer decides the actual terminal color for each value.
type Color uint8

const (
	ColorDefault   Color = iota
	ColorCoin            // Collectible icons
	ColorRug             // The hazard icon
	ColorMarker          // Hit markers
	ColorHUD             // Score, time and best
	ColorCombo           // Combo bar
	ColorFrame           // Field border
	ColorDim             // Hints and help text
	ColorHighlight       // Active player, overlay titles
	ColorBadge           // Badge prompt
)
