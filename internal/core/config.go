package core

// DefaultTickRate is the tick rate used when none is configured.
const DefaultTickRate = 30

// RuntimeConfig is what a demo learns about its host when it is set up.
type RuntimeConfig struct {
	ScreenW, ScreenH int
	TickRate         int   // ticks per second
	Seed             int64 // 0 asks the platform layer for a time-based seed
}

// DefaultConfig returns an 80x24 config at DefaultTickRate.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: DefaultTickRate}
}

// GameState is the externally visible progress of a demo.
type GameState struct {
	Score    int
	GameOver bool
}
