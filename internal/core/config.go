package core

import "time"

// RuntimeConfig describes the terminal a shell is drawing into.
type RuntimeConfig struct {
	ScreenW        int           // Screen width in characters
	ScreenH        int           // Screen height in characters
	TickRate       int           // Redraws per second while tiles are sliding
	Seed           int64         // RNG seed, 0 picks one from the clock
	AnimationDelay time.Duration // How long a move stays in the animating state
}

// DefaultConfig returns a RuntimeConfig for an 80x24 terminal.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:        80,
		ScreenH:        24,
		TickRate:       60,
		AnimationDelay: 150 * time.Millisecond,
	}
}

// Normalize fills zero fields from DefaultConfig.
func (c RuntimeConfig) Normalize() RuntimeConfig {
	def := DefaultConfig()
	if c.ScreenW <= 0 {
		c.ScreenW = def.ScreenW
	}
	if c.ScreenH <= 0 {
		c.ScreenH = def.ScreenH
	}
	if c.TickRate <= 0 {
		c.TickRate = def.TickRate
	}
	if c.AnimationDelay < 0 {
		c.AnimationDelay = 0
	}
	return c
}
