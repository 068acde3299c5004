package drone

import (
	"fmt"
	"log/slog"
)

// Default machine parameters.
const (
	// DefaultRotationDelta is the heading change per rotate command.
	DefaultRotationDelta = 180.0
)

// Config holds command state machine parameters.
type Config struct {
	// RotationDelta is the heading advance in degrees per rotate
	// command. Typically 90 or 180.
	RotationDelta float64

	// Logger is the structured logger for machine transitions.
	Logger *slog.Logger
}

// DefaultConfig returns the standard machine configuration.
func DefaultConfig() Config {
	return Config{
		RotationDelta: DefaultRotationDelta,
		Logger:        slog.Default(),
	}
}

// Validate checks config invariants.
func (c Config) Validate() error {
	if c.RotationDelta <= 0 || c.RotationDelta >= 360 {
		return fmt.Errorf("drone: rotation delta %.1f out of range (0, 360)", c.RotationDelta)
	}
	return nil
}
