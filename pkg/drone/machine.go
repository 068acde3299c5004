package drone

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/zainr27/MindAware/pkg/confirm"
	"github.com/zainr27/MindAware/pkg/policy"
)

// Vertical positions. The axis is strictly two-level.
const (
	VerticalGrounded = 0.0
	VerticalAirborne = 1.0
)

// Lifecycle is the machine's processing state, visible to the dashboard
// while a confirmation is pending.
type Lifecycle string

const (
	LifecycleIdle                 Lifecycle = "IDLE"
	LifecycleAwaitingConfirmation Lifecycle = "AWAITING_CONFIRMATION"
)

// ActuatorState is the drone's commanded state. Mutated only by the
// Machine, at most once per decision cycle.
type ActuatorState struct {
	// VerticalPosition is VerticalGrounded or VerticalAirborne.
	VerticalPosition float64 `json:"vertical_position"`

	// Heading in degrees, [0, 360).
	Heading float64 `json:"heading"`

	// Lifecycle reports whether a confirmation is in flight.
	Lifecycle Lifecycle `json:"lifecycle"`
}

// Airborne reports whether the drone is at the raised vertical level.
func (s ActuatorState) Airborne() bool {
	return s.VerticalPosition == VerticalAirborne
}

// Gate is the confirmation collaborator. confirm.Gate satisfies it; tests
// substitute their own.
type Gate interface {
	Confirm(ctx context.Context, q confirm.Question) confirm.Outcome
}

// Transition is the outcome of applying one intent.
type Transition struct {
	// Command is the emitted actuator command.
	Command Command `json:"command"`

	// State is the actuator state after the transition.
	State ActuatorState `json:"state"`

	// Confirmation is set only when the gate was invoked.
	Confirmation *confirm.Outcome `json:"confirmation,omitempty"`

	// Timestamp is when the transition completed.
	Timestamp time.Time `json:"timestamp"`
}

// Machine is the actuator command state machine. It absorbs intent
// oscillation from the classifier: an intent that matches the current
// vertical state degrades to a hold rather than re-actuating.
type Machine struct {
	mu     sync.Mutex
	state  ActuatorState
	gate   Gate
	cfg    Config
	logger *slog.Logger
}

// NewMachine creates a machine at the initial state: grounded, heading 0.
func NewMachine(gate Gate, cfg Config) (*Machine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Machine{
		state: ActuatorState{
			VerticalPosition: VerticalGrounded,
			Heading:          0,
			Lifecycle:        LifecycleIdle,
		},
		gate:   gate,
		cfg:    cfg,
		logger: logger.With("component", "drone.machine"),
	}, nil
}

// State returns a copy of the current actuator state.
func (m *Machine) State() ActuatorState {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Apply processes one intent and returns the resulting transition. The
// only blocking path is a descend while airborne, which waits on the
// confirmation gate; the gate's timeout bounds the wait, so Apply always
// returns. Heading changes are orthogonal to the vertical axis.
func (m *Machine) Apply(ctx context.Context, intent policy.Intent) Transition {
	switch intent {
	case policy.IntentAscend:
		return m.applyAscend()
	case policy.IntentDescend:
		return m.applyDescend(ctx)
	default:
		return m.applyRotate()
	}
}

func (m *Machine) applyAscend() Transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state.Airborne() {
		// Idempotent: already at the commanded level.
		return m.transitionLocked(CommandHold, nil)
	}

	m.state.VerticalPosition = VerticalAirborne
	m.logger.Info("taking off", "heading", m.state.Heading)
	return m.transitionLocked(CommandTakeoff, nil)
}

func (m *Machine) applyDescend(ctx context.Context) Transition {
	m.mu.Lock()
	if !m.state.Airborne() {
		defer m.mu.Unlock()
		return m.transitionLocked(CommandGroundedHold, nil)
	}

	// Release the lock while the gate blocks so status readers can
	// observe the pending confirmation.
	m.state.Lifecycle = LifecycleAwaitingConfirmation
	m.mu.Unlock()

	outcome := m.gate.Confirm(ctx, confirm.Question{
		Action: "land",
		Text:   "All cognitive parameters are critical. Should I land the drone?",
	})

	m.mu.Lock()
	defer m.mu.Unlock()
	m.state.Lifecycle = LifecycleIdle

	if !outcome.Affirmative {
		m.logger.Info("landing declined, holding", "answer", outcome.Answer)
		return m.transitionLocked(CommandHold, &outcome)
	}

	m.state.VerticalPosition = VerticalGrounded
	m.logger.Info("landing", "answer", outcome.Answer, "default_applied", outcome.DefaultApplied)
	return m.transitionLocked(CommandLand, &outcome)
}

func (m *Machine) applyRotate() Transition {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state.Heading = math.Mod(m.state.Heading+m.cfg.RotationDelta, 360)
	m.logger.Debug("rotating", "heading", m.state.Heading)
	return m.transitionLocked(CommandRotate, nil)
}

// transitionLocked snapshots the state into a Transition. Callers hold mu.
func (m *Machine) transitionLocked(cmd Command, outcome *confirm.Outcome) Transition {
	return Transition{
		Command:      cmd,
		State:        m.state,
		Confirmation: outcome,
		Timestamp:    time.Now().UTC(),
	}
}
