package eeg

import (
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Window sizes for the derived metrics, in readings. At the nominal one
// reading per second these correspond to the trailing ~60s, ~20s and ~30s.
const (
	overloadWindow = 20
	stressWindow   = 30
)

// Weights for the blended metrics.
const (
	fatigueFocusWeight = 0.7
	fatigueBlinkWeight = 0.3

	stressYawWeight   = 0.4
	stressBlinkWeight = 0.3
	stressFocusWeight = 0.3

	// maxFocusVariance normalizes focus instability for the stress score.
	maxFocusVariance = 0.3
)

// CognitiveState holds the four derived scores, each clamped to [0,1].
// It is recomputed every cycle from the latest reading, the buffer
// snapshot and the baseline; nothing stores it authoritatively.
type CognitiveState struct {
	Focus    float64 `json:"focus"`
	Fatigue  float64 `json:"fatigue"`
	Overload float64 `json:"overload"`
	Stress   float64 `json:"stress"`

	// Calibrated is false while the scores are derived from interim
	// buffer statistics rather than a frozen baseline. Consumers may
	// discount uncalibrated states; the classifier does not.
	Calibrated bool `json:"calibrated"`

	// BufferSize is the number of readings behind this state.
	BufferSize int `json:"buffer_size"`

	Timestamp time.Time `json:"timestamp"`
}

// CognitiveState derives the current cognitive state from the buffer.
// With fewer than two readings it returns the documented neutral
// defaults, flagged uncalibrated.
func (a *Adapter) CognitiveState() CognitiveState {
	a.mu.Lock()
	defer a.mu.Unlock()

	state := CognitiveState{
		Calibrated: a.baseline.Calibrated,
		BufferSize: a.count,
		Timestamp:  time.Now().UTC(),
	}

	if a.count < 2 {
		state.Focus = defaultFocus
		state.Fatigue = defaultFatigue
		state.Overload = defaultOverload
		state.Stress = defaultStress
		a.lastState = &state
		return state
	}

	window := a.snapshotLocked()
	latest := window[len(window)-1]

	state.Focus = clamp01(latest.Focus)
	state.Fatigue = fatigueScore(window, a.baseline.BlinkRate)

	overload, maxVar := overloadScore(window, a.maxYawVariance)
	a.maxYawVariance = maxVar
	state.Overload = overload

	state.Stress = stressScore(window, a.baseline.BlinkRate)

	a.lastState = &state
	return state
}

// fatigueScore blends low average attention with elevated blink rate:
// 0.7*(1 - mean focus) + 0.3*normalized blink.
func fatigueScore(window []Reading, baselineBlink float64) float64 {
	if len(window) < 2 {
		return defaultFatigue
	}

	focus := make([]float64, len(window))
	blink := make([]float64, len(window))
	for i, r := range window {
		focus[i] = r.Focus
		blink[i] = r.BlinkRate
	}

	avgFocus := stat.Mean(focus, nil)
	avgBlink := stat.Mean(blink, nil)

	// Blink normalized against twice the baseline, floored so an
	// all-zero baseline cannot divide by zero.
	normBlink := math.Min(avgBlink/math.Max(baselineBlink*2, 0.1), 1.0)

	return clamp01((1-avgFocus)*fatigueFocusWeight + normBlink*fatigueBlinkWeight)
}

// overloadScore measures head-angle instability: the standard deviation
// of the trailing overloadWindow yaw values, normalized against the
// largest deviation observed since calibration. Returns the score and
// the (possibly raised) running maximum.
func overloadScore(window []Reading, maxYawVariance float64) (float64, float64) {
	if len(window) < 3 {
		return defaultOverload, maxYawVariance
	}

	recent := window
	if len(recent) > overloadWindow {
		recent = recent[len(recent)-overloadWindow:]
	}
	yaw := make([]float64, len(recent))
	for i, r := range recent {
		yaw[i] = r.YawAbsolute
	}

	dev := stat.StdDev(yaw, nil)
	if math.IsNaN(dev) {
		return defaultOverload, maxYawVariance
	}
	if dev > maxYawVariance {
		maxYawVariance = dev
	}

	return clamp01(dev / maxYawVariance), maxYawVariance
}

// stressScore blends head-turn imbalance, blink anomaly relative to
// baseline, and attention instability: weights 0.4/0.3/0.3.
func stressScore(window []Reading, baselineBlink float64) float64 {
	if len(window) < 3 {
		return defaultStress
	}

	recent := window
	if len(recent) > stressWindow {
		recent = recent[len(recent)-stressWindow:]
	}

	latest := recent[len(recent)-1]
	yawImbalance := math.Abs(latest.YawLeft - latest.YawRight)

	blink := make([]float64, len(recent))
	focus := make([]float64, len(recent))
	for i, r := range recent {
		blink[i] = r.BlinkRate
		focus[i] = r.Focus
	}

	avgBlink := stat.Mean(blink, nil)
	blinkAnomaly := math.Min(math.Abs(avgBlink-baselineBlink)/math.Max(baselineBlink+0.1, 0.1), 1.0)

	focusDev := stat.StdDev(focus, nil)
	if math.IsNaN(focusDev) {
		focusDev = 0
	}
	focusInstability := math.Min(focusDev/maxFocusVariance, 1.0)

	return clamp01(yawImbalance*stressYawWeight +
		blinkAnomaly*stressBlinkWeight +
		focusInstability*stressFocusWeight)
}

// clamp01 limits a value to [0,1] and maps NaN to 0.
func clamp01(v float64) float64 {
	if math.IsNaN(v) || v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
