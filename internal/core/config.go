package core

// DefaultTickRate is the frame rate used when none is configured.
const DefaultTickRate = 60

// RuntimeConfig is what the host tells a game about its surroundings.
type RuntimeConfig struct {
	ScreenW, ScreenH int // playfield size in cells
	TickRate         int // host frames per second
	Seed             int64
}

// DefaultConfig is an 80x24 terminal at the default rate. A zero seed asks
// the host to pick one.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// FrameDT is the nominal seconds per frame.
func (c RuntimeConfig) FrameDT() float64 {
	rate := c.TickRate
	if rate <= 0 {
		rate = DefaultTickRate
	}
	return 1 / float64(rate)
}

// GameState is the status a game reports to its host.
type GameState struct {
	Score    int
	Lives    int
	GameOver bool
	Paused   bool // waiting on the player
	InMenu   bool // title screen showing
}

// StepResult is the outcome of one Step.
type StepResult struct {
	State GameState

	// Ended is true only on the step that reached game over.
	Ended bool
}
