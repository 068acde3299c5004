package agent

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/zainr27/MindAware/pkg/confirm"
	"github.com/zainr27/MindAware/pkg/drone"
	"github.com/zainr27/MindAware/pkg/eeg"
)

// DecisionRecord is the immutable audit record of one decision cycle.
// Created once per cycle, never mutated after creation.
type DecisionRecord struct {
	ID           string             `json:"id"`
	Timestamp    time.Time          `json:"timestamp"`
	State        eeg.CognitiveState `json:"state"`
	Intent       string             `json:"intent"`
	Severity     string             `json:"severity"`
	Reasoning    []string           `json:"reasoning"`
	Rationale    string             `json:"rationale,omitempty"`
	Confirmation *confirm.Outcome   `json:"confirmation,omitempty"`
	Command      drone.Command      `json:"command"`
	Actuator     drone.ActuatorState `json:"actuator_state"`
}

// Recorder persists decision records as JSON Lines, one object per line.
type Recorder struct {
	mu   sync.Mutex
	path string
}

// NewRecorder creates a recorder appending to the given file.
func NewRecorder(path string) *Recorder {
	return &Recorder{path: path}
}

// NewRecordID returns a fresh unique record ID.
func NewRecordID() string {
	return uuid.NewString()
}

// Append writes one record to the log.
func (r *Recorder) Append(rec DecisionRecord) error {
	data, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("recorder: marshal record: %w", err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.OpenFile(r.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("recorder: open log: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("recorder: write record: %w", err)
	}
	return nil
}

// Recent reads up to n records from the end of the log, oldest first.
// Unparseable lines are skipped rather than failing the whole read.
func (r *Recorder) Recent(n int) ([]DecisionRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("recorder: open log: %w", err)
	}
	defer f.Close()

	var records []DecisionRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		var rec DecisionRecord
		if err := json.Unmarshal(scanner.Bytes(), &rec); err != nil {
			continue
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("recorder: read log: %w", err)
	}

	if n > 0 && len(records) > n {
		records = records[len(records)-n:]
	}
	return records, nil
}

// Clear truncates the log.
func (r *Recorder) Clear() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Truncate(r.path, 0); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("recorder: truncate log: %w", err)
	}
	return nil
}
