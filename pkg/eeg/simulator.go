package eeg

import (
	"math/rand"
	"time"
)

// Scenario selects the synthetic state profile produced by the Simulator.
type Scenario string

const (
	// ScenarioNormal produces all-good states (focus high, negatives low).
	ScenarioNormal Scenario = "normal"

	// ScenarioCritical produces all-bad states (focus low, negatives high).
	ScenarioCritical Scenario = "critical"

	// ScenarioMixed produces states straddling the thresholds.
	ScenarioMixed Scenario = "mixed"

	// ScenarioDegrading transitions from all-good to all-bad over
	// roughly fifteen cycles.
	ScenarioDegrading Scenario = "degrading"
)

// Simulator generates synthetic cognitive states for demos and tests
// when no headset is attached. It satisfies the same state-source role
// as the Adapter.
type Simulator struct {
	scenario Scenario
	rng      *rand.Rand
	elapsed  int
}

// NewSimulator creates a simulator for the given scenario.
func NewSimulator(scenario Scenario) *Simulator {
	return &Simulator{
		scenario: scenario,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// CognitiveState returns the next synthetic state for the scenario.
func (s *Simulator) CognitiveState() CognitiveState {
	s.elapsed++
	noise := func() float64 { return s.rng.Float64()*0.06 - 0.03 }

	state := CognitiveState{
		Calibrated: true,
		Timestamp:  time.Now().UTC(),
	}

	switch s.scenario {
	case ScenarioCritical:
		state.Focus = clampRange(0.3+noise(), 0.0, 0.4)
		state.Fatigue = clampRange(0.7+noise(), 0.6, 1.0)
		state.Overload = clampRange(0.7+noise(), 0.6, 1.0)
		state.Stress = clampRange(0.75+noise(), 0.6, 1.0)

	case ScenarioMixed:
		state.Focus = clamp01(0.5 + noise())
		state.Fatigue = clamp01(0.5 + noise())
		state.Overload = clamp01(0.7 + noise())
		state.Stress = clamp01(0.3 + noise())

	case ScenarioDegrading:
		progress := float64(s.elapsed) / 15.0
		if progress > 1 {
			progress = 1
		}
		state.Focus = clamp01(0.7 - 0.5*progress + noise())
		state.Fatigue = clamp01(0.2 + 0.6*progress + noise())
		state.Overload = clamp01(0.25 + 0.6*progress + noise())
		state.Stress = clamp01(0.25 + 0.6*progress + noise())

	default: // ScenarioNormal
		state.Focus = clampRange(0.7+noise(), 0.6, 1.0)
		state.Fatigue = clampRange(0.2+noise(), 0.0, 0.4)
		state.Overload = clampRange(0.25+noise(), 0.0, 0.4)
		state.Stress = clampRange(0.25+noise(), 0.0, 0.4)
	}

	return state
}

// Reset restarts the scenario clock (relevant for degrading).
func (s *Simulator) Reset() {
	s.elapsed = 0
}

func clampRange(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
