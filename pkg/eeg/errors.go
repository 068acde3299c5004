package eeg

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrInsufficientSamples is returned when calibration is requested
	// before enough readings have been buffered.
	ErrInsufficientSamples = errors.New("eeg: not enough samples for calibration")
)

// MalformedReadingError is returned when a raw sensor record cannot be
// parsed. Field names the first missing or unparsable field.
type MalformedReadingError struct {
	// Field is the grammar field that failed (e.g. "focus", "yaw").
	Field string

	// Raw is the offending raw record.
	Raw string
}

// Error implements the error interface.
func (e *MalformedReadingError) Error() string {
	return fmt.Sprintf("eeg: malformed reading: missing or unparsable field %q in %q", e.Field, e.Raw)
}
