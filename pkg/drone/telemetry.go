package drone

import (
	"math/rand"
	"sync"
	"time"
)

// Telemetry simulates the drone's onboard readings for the dashboard:
// battery drain while airborne and a small amount of sensor noise. The
// bridge hardware exposes no telemetry endpoint, so the dashboard stream
// is synthesized from commanded state.
type Telemetry struct {
	mu       sync.Mutex
	battery  float64
	airborne bool
	last     time.Time
	rng      *rand.Rand
}

// TelemetrySnapshot is one reading for the dashboard stream.
type TelemetrySnapshot struct {
	Battery   float64   `json:"battery"`
	Airborne  bool      `json:"airborne"`
	Altitude  float64   `json:"altitude"`
	Timestamp time.Time `json:"timestamp"`
}

// Battery drain rates in percent per second.
const (
	drainAirborne = 0.25
	drainGrounded = 0.01
)

// NewTelemetry creates a simulator with a full battery.
func NewTelemetry() *Telemetry {
	return &Telemetry{
		battery: 100,
		last:    time.Now(),
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Observe updates the simulation from the commanded actuator state.
func (t *Telemetry) Observe(state ActuatorState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drainLocked()
	t.airborne = state.Airborne()
}

// Snapshot returns the current simulated reading.
func (t *Telemetry) Snapshot() TelemetrySnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.drainLocked()

	altitude := 0.0
	if t.airborne {
		altitude = 1.2 + t.rng.Float64()*0.1
	}

	return TelemetrySnapshot{
		Battery:   t.battery,
		Airborne:  t.airborne,
		Altitude:  altitude,
		Timestamp: time.Now().UTC(),
	}
}

// drainLocked advances the battery model to now. Callers hold mu.
func (t *Telemetry) drainLocked() {
	now := time.Now()
	elapsed := now.Sub(t.last).Seconds()
	t.last = now

	rate := drainGrounded
	if t.airborne {
		rate = drainAirborne
	}
	t.battery -= rate * elapsed
	if t.battery < 0 {
		t.battery = 0
	}
}
