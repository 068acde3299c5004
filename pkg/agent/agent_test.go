package agent

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/zainr27/MindAware/pkg/confirm"
	"github.com/zainr27/MindAware/pkg/drone"
	"github.com/zainr27/MindAware/pkg/eeg"
	"github.com/zainr27/MindAware/pkg/policy"
)

// staticSource serves a fixed cognitive state.
type staticSource struct {
	state eeg.CognitiveState
}

func (s *staticSource) CognitiveState() eeg.CognitiveState {
	return s.state
}

// capturePublisher records published payloads per stream.
type capturePublisher struct {
	mu      sync.Mutex
	streams map[string][]interface{}
}

func (p *capturePublisher) Publish(stream string, payload interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.streams == nil {
		p.streams = make(map[string][]interface{})
	}
	p.streams[stream] = append(p.streams[stream], payload)
}

func (p *capturePublisher) count(stream string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.streams[stream])
}

func goodState() eeg.CognitiveState {
	return eeg.CognitiveState{Focus: 0.8, Fatigue: 0.2, Overload: 0.3, Stress: 0.2, Calibrated: true}
}

func criticalState() eeg.CognitiveState {
	return eeg.CognitiveState{Focus: 0.2, Fatigue: 0.8, Overload: 0.7, Stress: 0.9, Calibrated: true}
}

func newTestAgent(t *testing.T, source StateSource, gateDefault confirm.Answer) (*Agent, *drone.Store) {
	t.Helper()

	gate := confirm.NewGate(confirm.NewAuto(gateDefault), confirm.DefaultGateConfig())
	machine, err := drone.NewMachine(gate, drone.DefaultConfig())
	if err != nil {
		t.Fatalf("NewMachine failed: %v", err)
	}

	cfg := DefaultConfig()
	cfg.LogPath = filepath.Join(t.TempDir(), "decisions.jsonl")

	store := drone.NewStore()
	a := New(cfg, Options{
		Source:    source,
		Machine:   machine,
		Store:     store,
		Telemetry: drone.NewTelemetry(),
		Recorder:  NewRecorder(cfg.LogPath),
		Memory:    NewMemory(cfg.MemorySize),
	})
	return a, store
}

func TestCycle_GoodStateTakesOff(t *testing.T) {
	a, store := newTestAgent(t, &staticSource{state: goodState()}, confirm.AnswerNo)

	rec := a.Cycle(context.Background())

	if rec.Command != drone.CommandTakeoff {
		t.Errorf("Command = %v, want takeoff", rec.Command)
	}
	if rec.Intent != "ascend" {
		t.Errorf("Intent = %q, want ascend", rec.Intent)
	}
	if rec.ID == "" {
		t.Error("record has no ID")
	}
	if !rec.Actuator.Airborne() {
		t.Error("actuator not airborne after takeoff")
	}

	current, ok := store.Current()
	if !ok || current.Command != drone.CommandTakeoff {
		t.Errorf("store current = %+v, ok=%v", current, ok)
	}
}

func TestCycle_CriticalStateLandsWithConfirmation(t *testing.T) {
	a, _ := newTestAgent(t, &staticSource{state: criticalState()}, confirm.AnswerYes)

	// First get airborne, then degrade.
	src := &staticSource{state: goodState()}
	a.source = src
	a.Cycle(context.Background())

	src.state = criticalState()
	rec := a.Cycle(context.Background())

	if rec.Command != drone.CommandLand {
		t.Errorf("Command = %v, want land", rec.Command)
	}
	if rec.Confirmation == nil || !rec.Confirmation.Affirmative {
		t.Errorf("Confirmation = %+v, want affirmative", rec.Confirmation)
	}
	if rec.Actuator.Airborne() {
		t.Error("still airborne after confirmed landing")
	}
}

func TestCycle_CriticalStateDeclinedHolds(t *testing.T) {
	src := &staticSource{state: goodState()}
	a, _ := newTestAgent(t, src, confirm.AnswerNo)
	a.Cycle(context.Background())

	src.state = criticalState()
	rec := a.Cycle(context.Background())

	if rec.Command != drone.CommandHold {
		t.Errorf("Command = %v, want hold", rec.Command)
	}
	if !rec.Actuator.Airborne() {
		t.Error("declined landing grounded the drone")
	}
}

func TestCycle_MixedStateRotates(t *testing.T) {
	mixed := eeg.CognitiveState{Focus: 0.5, Fatigue: 0.5, Overload: 0.7, Stress: 0.3, Calibrated: true}
	a, _ := newTestAgent(t, &staticSource{state: mixed}, confirm.AnswerNo)

	rec := a.Cycle(context.Background())
	if rec.Command != drone.CommandRotate {
		t.Errorf("Command = %v, want rotate", rec.Command)
	}
	if rec.Actuator.Heading != DefaultRotationDelta {
		t.Errorf("Heading = %v, want %v", rec.Actuator.Heading, DefaultRotationDelta)
	}
}

func TestCycle_RecordsPersistAndBroadcast(t *testing.T) {
	a, _ := newTestAgent(t, &staticSource{state: goodState()}, confirm.AnswerNo)
	pub := &capturePublisher{}
	a.publisher = pub

	for i := 0; i < 3; i++ {
		a.Cycle(context.Background())
	}

	if a.Memory().Len() != 3 {
		t.Errorf("memory holds %d records, want 3", a.Memory().Len())
	}

	persisted, err := a.Recorder().Recent(0)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(persisted) != 3 {
		t.Errorf("log holds %d records, want 3", len(persisted))
	}

	for _, stream := range []string{StreamState, StreamDecisions, StreamTelemetry} {
		if pub.count(stream) != 3 {
			t.Errorf("stream %q got %d payloads, want 3", stream, pub.count(stream))
		}
	}
}

func TestCycle_ReasonerFailureDegrades(t *testing.T) {
	a, _ := newTestAgent(t, &staticSource{state: goodState()}, confirm.AnswerNo)
	a.reasoner = failingReasoner{}

	rec := a.Cycle(context.Background())
	if rec.Rationale != "" {
		t.Errorf("Rationale = %q after reasoner failure, want empty", rec.Rationale)
	}
	if rec.Command != drone.CommandTakeoff {
		t.Errorf("Command = %v, reasoner failure changed the decision", rec.Command)
	}
}

type failingReasoner struct{}

func (failingReasoner) Rationale(ctx context.Context, state eeg.CognitiveState, eval policy.Evaluation) (string, error) {
	return "ignored", errors.New("model offline")
}

func TestMemory_Bounded(t *testing.T) {
	m := NewMemory(3)
	for i := 0; i < 10; i++ {
		m.Add(DecisionRecord{ID: NewRecordID(), Command: drone.CommandHold})
	}
	if m.Len() != 3 {
		t.Errorf("Len = %d, want 3", m.Len())
	}

	recent := m.Recent(2)
	if len(recent) != 2 {
		t.Errorf("Recent(2) returned %d records", len(recent))
	}

	m.Clear()
	if m.Len() != 0 {
		t.Errorf("Len = %d after Clear, want 0", m.Len())
	}
}

func TestRecorder_RoundTrip(t *testing.T) {
	r := NewRecorder(filepath.Join(t.TempDir(), "log.jsonl"))

	for i := 0; i < 5; i++ {
		rec := DecisionRecord{
			ID:      NewRecordID(),
			State:   goodState(),
			Intent:  "ascend",
			Command: drone.CommandTakeoff,
		}
		if err := r.Append(rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	records, err := r.Recent(3)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 3 {
		t.Errorf("Recent(3) returned %d records", len(records))
	}
	if records[0].Intent != "ascend" {
		t.Errorf("Intent = %q", records[0].Intent)
	}

	if err := r.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	records, err = r.Recent(0)
	if err != nil {
		t.Fatalf("Recent after Clear failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("log holds %d records after Clear", len(records))
	}
}

func TestRecorder_MissingFileIsEmpty(t *testing.T) {
	r := NewRecorder(filepath.Join(t.TempDir(), "nope.jsonl"))
	records, err := r.Recent(10)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records from missing file", len(records))
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"bad confirm default", func(c *Config) { c.ConfirmDefault = "maybe" }, true},
		{"zero interval", func(c *Config) { c.DecisionInterval = 0 }, true},
		{"zero memory", func(c *Config) { c.MemorySize = 0 }, true},
		{"llm without key", func(c *Config) { c.LLMEnabled = true }, true},
		{"llm with key", func(c *Config) { c.LLMEnabled = true; c.OpenAIKey = "sk-test" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
