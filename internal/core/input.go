package core

// Action represents a semantic host action, abstracted from physical key presses.
// Gameplay itself only uses taps; actions drive the surrounding chrome.
type Action int

const (
	ActionNone       Action = iota
	ActionStart             // Enter, Space - start or play again
	ActionMint              // M - mint the high score badge (stub)
	ActionScoreboard        // Tab - open the leaderboard screen
	ActionBack              // B, Escape - leave the leaderboard or the results panel
	ActionScreenshot        // Ctrl+S - dump the screen to a file
	ActionQuit              // Q, Ctrl+C - exit
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionStart:
		return "Start"
	case ActionMint:
		return "Mint"
	case ActionScoreboard:
		return "Scoreboard"
	case ActionBack:
		return "Back"
	case ActionScreenshot:
		return "Screenshot"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}

// Tap is a single pointer press at a screen cell.
type Tap struct {
	X, Y int
}
