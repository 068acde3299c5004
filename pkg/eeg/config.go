package eeg

import (
	"fmt"
	"log/slog"
)

// Default adapter parameters.
const (
	// DefaultBufferSize is the rolling buffer capacity.
	DefaultBufferSize = 60

	// DefaultCalibrationSamples is how many readings are needed before
	// the baseline is frozen automatically.
	DefaultCalibrationSamples = 30
)

// Config holds tunable parameters for the EEG adapter.
type Config struct {
	// BufferSize is the number of readings kept in the rolling buffer.
	BufferSize int

	// CalibrationSamples is the number of buffered readings required
	// before automatic calibration runs.
	CalibrationSamples int

	// Logger is the structured logger for adapter events.
	Logger *slog.Logger
}

// DefaultConfig returns the recommended adapter configuration.
func DefaultConfig() Config {
	return Config{
		BufferSize:         DefaultBufferSize,
		CalibrationSamples: DefaultCalibrationSamples,
		Logger:             slog.Default(),
	}
}

// Validate checks that the configuration is usable.
func (c Config) Validate() error {
	if c.BufferSize <= 0 {
		return fmt.Errorf("eeg: buffer size must be positive, got %d", c.BufferSize)
	}
	if c.CalibrationSamples < 2 {
		return fmt.Errorf("eeg: calibration samples must be at least 2, got %d", c.CalibrationSamples)
	}
	if c.CalibrationSamples > c.BufferSize {
		return fmt.Errorf("eeg: calibration samples (%d) cannot exceed buffer size (%d)",
			c.CalibrationSamples, c.BufferSize)
	}
	return nil
}
