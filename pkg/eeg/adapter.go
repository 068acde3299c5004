package eeg

import (
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"
)

// Pre-calibration fallbacks. With too few samples for statistics the
// adapter reports these neutral scores instead of failing.
const (
	defaultFocus    = 0.5
	defaultFatigue  = 0.2
	defaultOverload = 0.3
	defaultStress   = 0.3

	// minYawVariance is the floor for the overload normalization
	// denominator so a flat calibration window cannot divide by zero.
	minYawVariance = 500.0

	// fallbackYawDeviation is used when the calibration window has
	// fewer than two distinct yaw samples.
	fallbackYawDeviation = 100.0
)

// Baseline holds the frozen reference statistics established during
// calibration. It is never recomputed automatically; only Calibrate
// (manual recalibration) or Reset change it.
type Baseline struct {
	// Focus is the mean attention over the calibration window.
	Focus float64 `json:"focus"`

	// YawVariance is the head-angle standard deviation over the
	// calibration window.
	YawVariance float64 `json:"yaw_variance"`

	// BlinkRate is the mean blink rate over the calibration window.
	BlinkRate float64 `json:"blink_rate"`

	// Calibrated reports whether the baseline has been frozen.
	Calibrated bool `json:"calibrated"`
}

// Status is a point-in-time view of the adapter for the status endpoint.
type Status struct {
	Calibrated       bool     `json:"is_calibrated"`
	BufferSize       int      `json:"buffer_size"`
	BufferCapacity   int      `json:"buffer_capacity"`
	ReadingsReceived int      `json:"readings_received"`
	Baseline         Baseline `json:"baseline"`
}

// IngestResult is returned for each accepted reading.
type IngestResult struct {
	Accepted   bool `json:"accepted"`
	BufferSize int  `json:"buffer_size"`
	Calibrated bool `json:"calibrated"`
}

// Adapter owns the rolling reading buffer and calibration baseline.
//
// It is safe for one high-frequency ingestion writer and concurrent
// snapshot readers: all state is guarded by a single mutex, and readers
// only ever see copies.
type Adapter struct {
	cfg    Config
	logger *slog.Logger

	mu    sync.RWMutex
	buf   []Reading // fixed-capacity ring
	start int
	count int

	baseline       Baseline
	maxYawVariance float64

	readingsReceived int
	lastState        *CognitiveState
}

// NewAdapter creates an adapter with the given configuration.
func NewAdapter(cfg Config) (*Adapter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Adapter{
		cfg:            cfg,
		logger:         logger.With("component", "eeg.adapter"),
		buf:            make([]Reading, cfg.BufferSize),
		maxYawVariance: minYawVariance,
	}, nil
}

// Ingest parses one raw record and appends it to the buffer, evicting the
// oldest entry once capacity is reached. The first time the buffer holds
// CalibrationSamples readings the baseline is frozen automatically.
func (a *Adapter) Ingest(raw string) (IngestResult, error) {
	r, err := ParseReading(raw)
	if err != nil {
		return IngestResult{}, err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.append(r)
	a.readingsReceived++

	if !a.baseline.Calibrated && a.count >= a.cfg.CalibrationSamples {
		a.calibrateLocked()
	}

	return IngestResult{
		Accepted:   true,
		BufferSize: a.count,
		Calibrated: a.baseline.Calibrated,
	}, nil
}

// append adds a reading with ring eviction. Caller holds the lock.
func (a *Adapter) append(r Reading) {
	if a.count < len(a.buf) {
		a.buf[(a.start+a.count)%len(a.buf)] = r
		a.count++
		return
	}
	a.buf[a.start] = r
	a.start = (a.start + 1) % len(a.buf)
}

// Len returns the number of buffered readings.
func (a *Adapter) Len() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.count
}

// Capacity returns the buffer capacity.
func (a *Adapter) Capacity() int {
	return a.cfg.BufferSize
}

// Calibrated reports whether the baseline has been frozen.
func (a *Adapter) Calibrated() bool {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.baseline.Calibrated
}

// Baseline returns a copy of the current baseline.
func (a *Adapter) Baseline() Baseline {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.baseline
}

// Snapshot returns the buffered readings ordered oldest to newest.
// The returned slice is a copy and safe to use without locking.
func (a *Adapter) Snapshot() []Reading {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.snapshotLocked()
}

func (a *Adapter) snapshotLocked() []Reading {
	out := make([]Reading, a.count)
	for i := 0; i < a.count; i++ {
		out[i] = a.buf[(a.start+i)%len(a.buf)]
	}
	return out
}

// Calibrate freezes the baseline from the current buffer contents.
// Re-invoking it overwrites the previous baseline (the manual
// recalibration path). Returns ErrInsufficientSamples if the buffer
// holds fewer than CalibrationSamples readings.
func (a *Adapter) Calibrate() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.count < a.cfg.CalibrationSamples {
		return ErrInsufficientSamples
	}
	a.calibrateLocked()
	return nil
}

// calibrateLocked computes and freezes the baseline from the oldest
// CalibrationSamples buffered readings. Caller holds the lock.
func (a *Adapter) calibrateLocked() {
	window := a.snapshotLocked()[:a.cfg.CalibrationSamples]

	focus := make([]float64, len(window))
	yaw := make([]float64, len(window))
	blink := make([]float64, len(window))
	for i, r := range window {
		focus[i] = r.Focus
		yaw[i] = r.YawAbsolute
		blink[i] = r.BlinkRate
	}

	yawDev := stat.StdDev(yaw, nil)
	if math.IsNaN(yawDev) || yawDev == 0 {
		yawDev = fallbackYawDeviation
	}

	a.baseline = Baseline{
		Focus:       stat.Mean(focus, nil),
		YawVariance: yawDev,
		BlinkRate:   stat.Mean(blink, nil),
		Calibrated:  true,
	}
	a.maxYawVariance = math.Max(yawDev*3, minYawVariance)

	a.logger.Info("calibration complete",
		"baseline_focus", a.baseline.Focus,
		"baseline_yaw_variance", a.baseline.YawVariance,
		"baseline_blink_rate", a.baseline.BlinkRate,
	)
}

// Reset clears the buffer and baseline, returning the adapter to its
// pre-calibration state.
func (a *Adapter) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.start = 0
	a.count = 0
	a.baseline = Baseline{}
	a.maxYawVariance = minYawVariance
	a.readingsReceived = 0
	a.lastState = nil
	a.logger.Info("adapter reset")
}

// Status returns adapter state for the status endpoint.
func (a *Adapter) Status() Status {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return Status{
		Calibrated:       a.baseline.Calibrated,
		BufferSize:       a.count,
		BufferCapacity:   a.cfg.BufferSize,
		ReadingsReceived: a.readingsReceived,
		Baseline:         a.baseline,
	}
}

// LastState returns the most recently computed cognitive state, or nil
// if none has been computed since the last reset.
func (a *Adapter) LastState() *CognitiveState {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.lastState == nil {
		return nil
	}
	s := *a.lastState
	return &s
}
