package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// PlayerState is the per-player part of GameState.
type PlayerState struct {
	ID    PlayerID
	Score int
	Lives int
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Score used for the high-score table
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
	Wave     int  // Current wave number (1-based)
	Players  []PlayerState
	Winner   PlayerID // Versus winner once the game is over, 0 for a draw
}

// Event is something notable that happened during a tick.
// The platform logs events; tests assert on them.
type Event struct {
	Kind   string
	Player PlayerID // 0 when no player is involved
	Points int
	Wave   int
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State  GameState
	Events []Event
}
