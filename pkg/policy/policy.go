// Package policy classifies cognitive states into discrete flight intents.
//
// The classifier is a pure all-or-nothing rule: ascend only when every
// metric is good, descend only when every metric is bad, otherwise hold
// and rotate. It applies no hysteresis; absorbing oscillation between
// consecutive cycles is the command state machine's job.
package policy

import (
	"fmt"

	"github.com/zainr27/MindAware/pkg/eeg"
)

// Intent is the classifier's discrete output.
type Intent int

const (
	// IntentHoldRotate is the mixed-state default: no altitude change,
	// rotate as a visual indicator.
	IntentHoldRotate Intent = iota

	// IntentAscend means all metrics are good: take off.
	IntentAscend

	// IntentDescend means all metrics are bad: land.
	IntentDescend
)

// String returns a human-readable intent name.
func (i Intent) String() string {
	switch i {
	case IntentAscend:
		return "ascend"
	case IntentDescend:
		return "descend"
	case IntentHoldRotate:
		return "hold_rotate"
	default:
		return "unknown"
	}
}

// Severity describes how concerning the evaluated state is.
type Severity string

const (
	SeverityGood     Severity = "good"
	SeverityNormal   Severity = "normal"
	SeverityCritical Severity = "critical"
)

// Thresholds holds the classification boundaries. Boundaries are closed:
// a value exactly at FocusHigh counts as high, exactly at NegativeLow
// counts as low.
type Thresholds struct {
	// FocusHigh is the minimum focus that counts as good.
	FocusHigh float64

	// FocusLow is the maximum focus that counts as bad.
	FocusLow float64

	// NegativeHigh is the level at which fatigue/overload/stress count as bad.
	NegativeHigh float64

	// NegativeLow is the level at or below which they count as good.
	NegativeLow float64
}

// DefaultThresholds returns the standard classification boundaries.
func DefaultThresholds() Thresholds {
	return Thresholds{
		FocusHigh:    0.6,
		FocusLow:     0.4,
		NegativeHigh: 0.6,
		NegativeLow:  0.4,
	}
}

// Evaluation is the result of classifying one cognitive state.
type Evaluation struct {
	// Intent is the recommended actuator direction.
	Intent Intent `json:"intent"`

	// Severity summarizes the state for logging and the dashboard.
	Severity Severity `json:"severity"`

	// AllGood and AllBad report which rule fired, if any.
	AllGood bool `json:"all_good"`
	AllBad  bool `json:"all_bad"`

	// Reasoning holds one line per threshold check, in the order checked.
	Reasoning []string `json:"reasoning"`
}

// Classifier maps cognitive states to intents against fixed thresholds.
// The zero value is not usable; construct with New.
type Classifier struct {
	thresholds Thresholds
}

// New creates a classifier with the given thresholds.
func New(t Thresholds) *Classifier {
	return &Classifier{thresholds: t}
}

// Evaluate classifies a cognitive state. It is deterministic and
// stateless: identical input always yields an identical evaluation.
// Uncalibrated states are classified like any other; the Calibrated
// flag is carried through for consumers that want to discount them.
func (c *Classifier) Evaluate(state eeg.CognitiveState) Evaluation {
	t := c.thresholds

	allGood := state.Focus >= t.FocusHigh &&
		state.Fatigue <= t.NegativeLow &&
		state.Overload <= t.NegativeLow &&
		state.Stress <= t.NegativeLow

	allBad := state.Focus <= t.FocusLow &&
		state.Fatigue >= t.NegativeHigh &&
		state.Overload >= t.NegativeHigh &&
		state.Stress >= t.NegativeHigh

	switch {
	case allGood:
		return Evaluation{
			Intent:   IntentAscend,
			Severity: SeverityGood,
			AllGood:  true,
			Reasoning: []string{
				fmt.Sprintf("focus %.2f >= %.2f", state.Focus, t.FocusHigh),
				fmt.Sprintf("fatigue %.2f <= %.2f", state.Fatigue, t.NegativeLow),
				fmt.Sprintf("overload %.2f <= %.2f", state.Overload, t.NegativeLow),
				fmt.Sprintf("stress %.2f <= %.2f", state.Stress, t.NegativeLow),
				"all parameters good: operator performing well",
			},
		}

	case allBad:
		return Evaluation{
			Intent:   IntentDescend,
			Severity: SeverityCritical,
			AllBad:   true,
			Reasoning: []string{
				fmt.Sprintf("focus %.2f <= %.2f", state.Focus, t.FocusLow),
				fmt.Sprintf("fatigue %.2f >= %.2f", state.Fatigue, t.NegativeHigh),
				fmt.Sprintf("overload %.2f >= %.2f", state.Overload, t.NegativeHigh),
				fmt.Sprintf("stress %.2f >= %.2f", state.Stress, t.NegativeHigh),
				"all parameters critical: operator needs support",
			},
		}

	default:
		return Evaluation{
			Intent:   IntentHoldRotate,
			Severity: SeverityNormal,
			Reasoning: []string{
				fmt.Sprintf("mixed parameters: focus %.2f, fatigue %.2f, overload %.2f, stress %.2f",
					state.Focus, state.Fatigue, state.Overload, state.Stress),
			},
		}
	}
}
