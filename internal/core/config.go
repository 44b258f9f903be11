// Package core holds the types shared between the game engine and the
// platform layer.
package core

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this for deterministic play; the platform uses the screen
// size for layout.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Upper bound on animation steps per second
	Seed     int64 // RNG seed for deterministic gameplay
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	GameOver bool // Whether the game has ended
	Busy     bool // Whether a turn is resolving and input is locked
}
