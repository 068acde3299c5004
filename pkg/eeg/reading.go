// Package eeg turns raw brain-computer-interface records into normalized
// cognitive metrics.
//
// Raw readings arrive as field-tagged strings like:
//
//	F[not_focus:0.88 focus:0.12] Y[yaw_left:0.29 yaw_right:0.71] yaw=3416.347 B[rate0.5=0.00]
//
// ParseReading extracts the structured fields, the Adapter keeps a rolling
// buffer and frozen calibration baseline, and CognitiveState exposes the
// four derived scores (focus, fatigue, overload, stress) in [0,1].
package eeg

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Reading is a single parsed EEG sample. Immutable once parsed.
type Reading struct {
	// Focus is the attention level in [0,1].
	Focus float64

	// NotFocus is the distraction level in [0,1]. Sourced independently
	// from the headset, so it is not forced to equal 1-Focus.
	NotFocus float64

	// YawLeft and YawRight are the head-turn preference scores in [0,1].
	YawLeft  float64
	YawRight float64

	// YawAbsolute is the absolute head angle in degrees. Unbounded: the
	// headset accumulates full rotations.
	YawAbsolute float64

	// BlinkRate is the blink rate reported by the headset (>= 0).
	BlinkRate float64

	// Timestamp is when the reading was parsed.
	Timestamp time.Time
}

// Field patterns for the tagged grammar. Values are captured loosely and
// validated with ParseFloat so a non-numeric value is reported as the
// failing field rather than silently skipped. The \b before "focus"
// prevents matching inside "not_focus" ('_' is a word character).
var (
	reFocus     = regexp.MustCompile(`\bfocus:([^\s\]]+)`)
	reNotFocus  = regexp.MustCompile(`not_focus:([^\s\]]+)`)
	reYawLeft   = regexp.MustCompile(`yaw_left:([^\s\]]+)`)
	reYawRight  = regexp.MustCompile(`yaw_right:([^\s\]]+)`)
	reYawAbs    = regexp.MustCompile(`\byaw=([^\s\]]+)`)
	reBlinkRate = regexp.MustCompile(`rate[\d.]+=([^\s\]]+)`)
)

// ParseReading parses one raw sensor record into a Reading.
//
// Fields may appear in any order and unknown fields are ignored. A missing
// or non-numeric field returns a *MalformedReadingError naming the field.
// Some hardware prefixes records with a label ("not_focus | F[...]"); the
// prefix is stripped before parsing.
func ParseReading(raw string) (Reading, error) {
	record := raw
	if i := strings.Index(record, " | "); i >= 0 {
		record = record[i+3:]
	}

	var r Reading
	fields := []struct {
		name string
		re   *regexp.Regexp
		dst  *float64
	}{
		{"focus", reFocus, &r.Focus},
		{"not_focus", reNotFocus, &r.NotFocus},
		{"yaw_left", reYawLeft, &r.YawLeft},
		{"yaw_right", reYawRight, &r.YawRight},
		{"yaw", reYawAbs, &r.YawAbsolute},
		{"blink_rate", reBlinkRate, &r.BlinkRate},
	}

	for _, f := range fields {
		m := f.re.FindStringSubmatch(record)
		if m == nil {
			return Reading{}, &MalformedReadingError{Field: f.name, Raw: raw}
		}
		v, err := strconv.ParseFloat(m[1], 64)
		if err != nil {
			return Reading{}, &MalformedReadingError{Field: f.name, Raw: raw}
		}
		*f.dst = v
	}

	r.Timestamp = time.Now().UTC()
	return r, nil
}
