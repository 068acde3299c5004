package agent

import (
	"context"
	"log/slog"
	"time"

	"github.com/zainr27/MindAware/pkg/drone"
	"github.com/zainr27/MindAware/pkg/eeg"
	"github.com/zainr27/MindAware/pkg/policy"
)

// StateSource provides the cognitive state for one decision cycle.
// Both *eeg.Adapter and *eeg.Simulator satisfy it.
type StateSource interface {
	CognitiveState() eeg.CognitiveState
}

// Publisher fans a decision cycle's artifacts out to live subscribers.
// The websocket hub satisfies it; nil disables broadcasting.
type Publisher interface {
	Publish(stream string, payload interface{})
}

// Broadcast stream names.
const (
	StreamState     = "state"
	StreamDecisions = "decisions"
	StreamTelemetry = "telemetry"
)

// Agent runs the decision loop: read state, classify, drive the command
// state machine, record, broadcast. The loop is single-threaded; only
// the ingestion path runs concurrently, inside the eeg adapter.
type Agent struct {
	cfg        Config
	source     StateSource
	classifier *policy.Classifier
	machine    *drone.Machine
	store      *drone.Store
	link       *drone.Link
	telemetry  *drone.Telemetry
	recorder   *Recorder
	memory     *Memory
	reasoner   Reasoner
	publisher  Publisher
	logger     *slog.Logger
}

// Options are the collaborators the agent drives. Source, Machine, Store,
// Recorder and Memory are required; the rest may be nil.
type Options struct {
	Source    StateSource
	Machine   *drone.Machine
	Store     *drone.Store
	Link      *drone.Link
	Telemetry *drone.Telemetry
	Recorder  *Recorder
	Memory    *Memory
	Reasoner  Reasoner
	Publisher Publisher
	Logger    *slog.Logger
}

// New assembles an agent.
func New(cfg Config, opts Options) *Agent {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	reasoner := opts.Reasoner
	if reasoner == nil {
		reasoner = NopReasoner{}
	}
	return &Agent{
		cfg:        cfg,
		source:     opts.Source,
		classifier: policy.New(policy.DefaultThresholds()),
		machine:    opts.Machine,
		store:      opts.Store,
		link:       opts.Link,
		telemetry:  opts.Telemetry,
		recorder:   opts.Recorder,
		memory:     opts.Memory,
		reasoner:   reasoner,
		publisher:  opts.Publisher,
		logger:     logger.With("component", "agent"),
	}
}

// Memory returns the in-memory decision window.
func (a *Agent) Memory() *Memory {
	return a.memory
}

// Recorder returns the durable decision log.
func (a *Agent) Recorder() *Recorder {
	return a.recorder
}

// Run executes decision cycles at the configured cadence until ctx is
// cancelled.
func (a *Agent) Run(ctx context.Context) {
	a.logger.Info("decision loop starting", "interval", a.cfg.DecisionInterval)
	ticker := time.NewTicker(a.cfg.DecisionInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			a.logger.Info("decision loop stopped")
			return
		case <-ticker.C:
			a.Cycle(ctx)
		}
	}
}

// Cycle runs one decision cycle and returns its record. Every failure
// inside the cycle degrades: a reasoner error drops the rationale, a
// link error logs and continues, a recorder error logs and continues.
// The cycle itself always completes.
func (a *Agent) Cycle(ctx context.Context) DecisionRecord {
	state := a.source.CognitiveState()
	eval := a.classifier.Evaluate(state)

	if !state.Calibrated {
		a.logger.Debug("deciding on uncalibrated state", "buffer_size", state.BufferSize)
	}

	rationale, err := a.reasoner.Rationale(ctx, state, eval)
	if err != nil {
		a.logger.Warn("rationale unavailable", "error", err)
		rationale = ""
	}

	transition := a.machine.Apply(ctx, eval.Intent)

	rec := DecisionRecord{
		ID:           NewRecordID(),
		Timestamp:    transition.Timestamp,
		State:        state,
		Intent:       eval.Intent.String(),
		Severity:     string(eval.Severity),
		Reasoning:    eval.Reasoning,
		Rationale:    rationale,
		Confirmation: transition.Confirmation,
		Command:      transition.Command,
		Actuator:     transition.State,
	}

	a.store.Set(drone.CommandRecord{
		Command:   transition.Command,
		State:     transition.State,
		Reasoning: eval.Reasoning,
		Timestamp: transition.Timestamp,
	})

	if a.telemetry != nil {
		a.telemetry.Observe(transition.State)
	}

	if a.link != nil && transition.Command.Actuates() {
		if _, err := a.link.Dispatch(ctx, transition.Command); err != nil {
			a.logger.Warn("bridge dispatch failed", "command", transition.Command, "error", err)
		}
	}

	a.memory.Add(rec)
	if err := a.recorder.Append(rec); err != nil {
		a.logger.Warn("decision log write failed", "error", err)
	}

	if a.publisher != nil {
		a.publisher.Publish(StreamState, state)
		a.publisher.Publish(StreamDecisions, rec)
		if a.telemetry != nil {
			a.publisher.Publish(StreamTelemetry, a.telemetry.Snapshot())
		}
	}

	a.logger.Info("decision cycle complete",
		"intent", eval.Intent,
		"command", transition.Command,
		"severity", eval.Severity,
		"calibrated", state.Calibrated,
	)
	return rec
}
