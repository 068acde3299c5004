package web

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/zainr27/MindAware/pkg/agent"
	"github.com/zainr27/MindAware/pkg/confirm"
	"github.com/zainr27/MindAware/pkg/drone"
	"github.com/zainr27/MindAware/pkg/eeg"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	adapter, err := eeg.NewAdapter(eeg.DefaultConfig())
	if err != nil {
		t.Fatalf("NewAdapter failed: %v", err)
	}

	gate := confirm.NewGate(confirm.NewAuto(confirm.AnswerNo), confirm.DefaultGateConfig())
	machine, err := drone.NewMachine(gate, drone.DefaultConfig())
	if err != nil {
		t.Fatalf("NewMachine failed: %v", err)
	}

	return NewServer("0", Options{
		Adapter:   adapter,
		Store:     drone.NewStore(),
		Machine:   machine,
		Telemetry: drone.NewTelemetry(),
		Memory:    agent.NewMemory(20),
		Recorder:  agent.NewRecorder(filepath.Join(t.TempDir(), "log.jsonl")),
	})
}

func jsonRequest(method, path string, body interface{}) *http.Request {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeBody(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("decode body %q: %v", data, err)
	}
}

func rawReading(focus, yawAbs float64) string {
	return fmt.Sprintf("F[not_focus:%.2f focus:%.2f] Y[yaw_left:0.50 yaw_right:0.50] yaw=%.1f B[rate0.5=0.10]",
		1-focus, focus, yawAbs)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/health", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["status"] != "ok" {
		t.Errorf("status field = %v", body["status"])
	}
}

func TestIngest(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(jsonRequest("POST", "/eeg/ingest", IngestRequest{Reading: rawReading(0.7, 100)}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var result eeg.IngestResult
	decodeBody(t, resp, &result)
	if !result.Accepted || result.BufferSize != 1 {
		t.Errorf("result = %+v", result)
	}
}

func TestIngest_MalformedRejected(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(jsonRequest("POST", "/eeg/ingest", IngestRequest{Reading: "garbage"}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}

	var body map[string]interface{}
	decodeBody(t, resp, &body)
	if body["field"] == "" {
		t.Error("malformed response names no field")
	}

	// Buffer untouched.
	resp, _ = s.App().Test(httptest.NewRequest("GET", "/eeg/status", nil))
	var status eeg.Status
	decodeBody(t, resp, &status)
	if status.BufferSize != 0 {
		t.Errorf("BufferSize = %d after rejected reading", status.BufferSize)
	}
}

func TestIngest_EmptyBody(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(jsonRequest("POST", "/eeg/ingest", map[string]string{}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", resp.StatusCode)
	}
}

func TestIngestBatch_MixedResults(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(jsonRequest("POST", "/eeg/ingest/batch", IngestBatchRequest{
		Readings: []string{rawReading(0.7, 100), "garbage", rawReading(0.6, 101)},
	}))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var body struct {
		Accepted   int               `json:"accepted"`
		Rejected   int               `json:"rejected"`
		Results    []BatchItemResult `json:"results"`
		BufferSize int               `json:"buffer_size"`
	}
	decodeBody(t, resp, &body)
	if body.Accepted != 2 || body.Rejected != 1 {
		t.Errorf("accepted=%d rejected=%d, want 2/1", body.Accepted, body.Rejected)
	}
	if !body.Results[0].Accepted || body.Results[1].Accepted || !body.Results[2].Accepted {
		t.Errorf("results = %+v", body.Results)
	}
	if body.BufferSize != 2 {
		t.Errorf("buffer_size = %d, want 2", body.BufferSize)
	}
}

func TestCalibrateLifecycle(t *testing.T) {
	s := newTestServer(t)

	// Too few samples: 409.
	resp, err := s.App().Test(jsonRequest("POST", "/eeg/calibrate", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusConflict {
		t.Errorf("status = %d, want 409", resp.StatusCode)
	}

	for i := 0; i < 5; i++ {
		s.App().Test(jsonRequest("POST", "/eeg/ingest", IngestRequest{Reading: rawReading(0.6, 100+float64(i))}))
	}

	resp, err = s.App().Test(jsonRequest("POST", "/eeg/calibrate", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}

	var baseline eeg.Baseline
	decodeBody(t, resp, &baseline)
	if !baseline.Calibrated {
		t.Error("baseline not calibrated")
	}

	// Reset clears everything.
	resp, _ = s.App().Test(jsonRequest("POST", "/eeg/reset", nil))
	var status eeg.Status
	decodeBody(t, resp, &status)
	if status.BufferSize != 0 || status.Calibrated {
		t.Errorf("status after reset = %+v", status)
	}
}

func TestEEGState(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/eeg/state", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var state eeg.CognitiveState
	decodeBody(t, resp, &state)
	if state.Focus != 0.5 {
		t.Errorf("pre-data Focus = %v, want default 0.5", state.Focus)
	}
	if state.Calibrated {
		t.Error("state calibrated with no data")
	}
}

func TestCurrentCommand_DefaultBeforeFirstCycle(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/drone/command", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var rec drone.CommandRecord
	decodeBody(t, resp, &rec)
	if rec.Command != drone.CommandHold {
		t.Errorf("Command = %v, want hold before first cycle", rec.Command)
	}
	if rec.State.Airborne() {
		t.Error("initial state airborne")
	}
}

func TestCurrentCommand_AfterSet(t *testing.T) {
	s := newTestServer(t)
	s.store.Set(drone.CommandRecord{
		Command:   drone.CommandTakeoff,
		State:     drone.ActuatorState{VerticalPosition: drone.VerticalAirborne, Lifecycle: drone.LifecycleIdle},
		Reasoning: []string{"all parameters good"},
	})

	resp, err := s.App().Test(httptest.NewRequest("GET", "/drone/command", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var rec drone.CommandRecord
	decodeBody(t, resp, &rec)
	if rec.Command != drone.CommandTakeoff {
		t.Errorf("Command = %v, want takeoff", rec.Command)
	}
	if len(rec.Reasoning) != 1 {
		t.Errorf("Reasoning = %v", rec.Reasoning)
	}
}

func TestTelemetry(t *testing.T) {
	s := newTestServer(t)

	resp, err := s.App().Test(httptest.NewRequest("GET", "/drone/telemetry", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}

	var snap drone.TelemetrySnapshot
	decodeBody(t, resp, &snap)
	if snap.Battery <= 0 {
		t.Errorf("Battery = %v", snap.Battery)
	}
}

func TestLogsAndMemory(t *testing.T) {
	s := newTestServer(t)

	rec := agent.DecisionRecord{
		ID:      agent.NewRecordID(),
		Intent:  "ascend",
		Command: drone.CommandTakeoff,
	}
	s.memory.Add(rec)
	if err := s.recorder.Append(rec); err != nil {
		t.Fatalf("Append failed: %v", err)
	}

	resp, err := s.App().Test(httptest.NewRequest("GET", "/logs?limit=10", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var logs struct {
		Count   int                    `json:"count"`
		Records []agent.DecisionRecord `json:"records"`
	}
	decodeBody(t, resp, &logs)
	if logs.Count != 1 || logs.Records[0].Intent != "ascend" {
		t.Errorf("logs = %+v", logs)
	}

	resp, err = s.App().Test(httptest.NewRequest("GET", "/memory", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	var mem []agent.DecisionRecord
	decodeBody(t, resp, &mem)
	if len(mem) != 1 || mem[0].Command != drone.CommandTakeoff {
		t.Errorf("memory = %+v", mem)
	}

	// Clearing the log leaves memory intact.
	resp, err = s.App().Test(httptest.NewRequest("DELETE", "/logs", nil))
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d", resp.StatusCode)
	}

	resp, _ = s.App().Test(httptest.NewRequest("GET", "/logs", nil))
	decodeBody(t, resp, &logs)
	if logs.Count != 0 {
		t.Errorf("logs after clear = %d", logs.Count)
	}
}
