package core

// RuntimeConfig describes the terminal a game screen runs in.
type RuntimeConfig struct {
	ScreenW  int   // Terminal width in cells
	ScreenH  int   // Terminal height in cells, including the help line
	TickRate int   // Redraws per second; the session clock does not depend on it
	Seed     int64 // Spawn RNG seed, 0 = time based
}
