package game

import "time"

// Config holds the table rules shared by every room a registry creates.
type Config struct {
	StartingChips  int
	MinimumBet     int
	MaxRounds      int
	BettingTimeout time.Duration
	RoundEndDelay  time.Duration

	// PlayTimeout bounds the playing phase; when it elapses every player
	// still deciding is forced to stand. Zero disables the timer and an
	// unresponsive player stalls the round.
	PlayTimeout time.Duration

	// SurfaceRejections sends an error event back to a participant whose
	// action failed a guard instead of dropping it silently.
	SurfaceRejections bool
}

// DefaultConfig returns the standard table rules.
func DefaultConfig() Config {
	return Config{
		StartingChips:     1000,
		MinimumBet:        10,
		MaxRounds:         10,
		BettingTimeout:    20 * time.Second,
		RoundEndDelay:     10 * time.Second,
		PlayTimeout:       30 * time.Second,
		SurfaceRejections: true,
	}
}
