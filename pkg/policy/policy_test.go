package policy

import (
	"testing"

	"github.com/zainr27/MindAware/pkg/eeg"
)

func state(focus, fatigue, overload, stress float64) eeg.CognitiveState {
	return eeg.CognitiveState{
		Focus:      focus,
		Fatigue:    fatigue,
		Overload:   overload,
		Stress:     stress,
		Calibrated: true,
	}
}

func TestEvaluate(t *testing.T) {
	c := New(DefaultThresholds())

	tests := []struct {
		name  string
		state eeg.CognitiveState
		want  Intent
	}{
		{"all good", state(0.8, 0.2, 0.3, 0.2), IntentAscend},
		{"all bad", state(0.2, 0.8, 0.7, 0.9), IntentDescend},
		{"mixed", state(0.5, 0.5, 0.7, 0.3), IntentHoldRotate},
		{"good focus alone does not ascend", state(0.9, 0.5, 0.2, 0.2), IntentHoldRotate},
		{"bad focus alone does not descend", state(0.1, 0.5, 0.7, 0.7), IntentHoldRotate},
		{"three of four bad", state(0.2, 0.8, 0.7, 0.5), IntentHoldRotate},
		{"open band focus", state(0.5, 0.2, 0.2, 0.2), IntentHoldRotate},

		// Closed boundaries: values exactly at the thresholds qualify.
		{"ascend at exact thresholds", state(0.6, 0.4, 0.4, 0.4), IntentAscend},
		{"descend at exact thresholds", state(0.4, 0.6, 0.6, 0.6), IntentDescend},

		{"extremes good", state(1.0, 0.0, 0.0, 0.0), IntentAscend},
		{"extremes bad", state(0.0, 1.0, 1.0, 1.0), IntentDescend},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			eval := c.Evaluate(tt.state)
			if eval.Intent != tt.want {
				t.Errorf("Evaluate(%+v).Intent = %v, want %v", tt.state, eval.Intent, tt.want)
			}
			if len(eval.Reasoning) == 0 {
				t.Error("Reasoning is empty")
			}
		})
	}
}

func TestEvaluate_Deterministic(t *testing.T) {
	c := New(DefaultThresholds())
	s := state(0.73, 0.21, 0.38, 0.15)

	first := c.Evaluate(s)
	for i := 0; i < 10; i++ {
		if got := c.Evaluate(s); got.Intent != first.Intent {
			t.Fatalf("intent changed between identical evaluations: %v vs %v", got.Intent, first.Intent)
		}
	}
}

func TestEvaluate_RulesMutuallyExclusive(t *testing.T) {
	c := New(DefaultThresholds())

	// Sweep a grid of states; AllGood and AllBad must never both hold.
	for f := 0.0; f <= 1.0; f += 0.1 {
		for n := 0.0; n <= 1.0; n += 0.1 {
			eval := c.Evaluate(state(f, n, n, n))
			if eval.AllGood && eval.AllBad {
				t.Fatalf("state focus=%v negatives=%v satisfies both rules", f, n)
			}
		}
	}
}

func TestEvaluate_SeverityMapping(t *testing.T) {
	c := New(DefaultThresholds())

	if got := c.Evaluate(state(0.8, 0.2, 0.2, 0.2)).Severity; got != SeverityGood {
		t.Errorf("Severity = %v, want good", got)
	}
	if got := c.Evaluate(state(0.2, 0.8, 0.8, 0.8)).Severity; got != SeverityCritical {
		t.Errorf("Severity = %v, want critical", got)
	}
	if got := c.Evaluate(state(0.5, 0.5, 0.5, 0.5)).Severity; got != SeverityNormal {
		t.Errorf("Severity = %v, want normal", got)
	}
}

func TestIntent_String(t *testing.T) {
	tests := []struct {
		intent Intent
		want   string
	}{
		{IntentAscend, "ascend"},
		{IntentDescend, "descend"},
		{IntentHoldRotate, "hold_rotate"},
		{Intent(99), "unknown"},
	}
	for _, tt := range tests {
		if got := tt.intent.String(); got != tt.want {
			t.Errorf("Intent(%d).String() = %q, want %q", tt.intent, got, tt.want)
		}
	}
}
