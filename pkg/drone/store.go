package drone

import (
	"sync"
	"time"
)

// CommandRecord is the latest decision exposed at the command boundary.
type CommandRecord struct {
	Command   Command       `json:"command"`
	State     ActuatorState `json:"actuator_state"`
	Reasoning []string      `json:"reasoning"`
	Timestamp time.Time     `json:"timestamp"`
}

// Store holds the single most recent command for polling clients. The
// decision loop writes once per cycle; the web layer reads on demand.
type Store struct {
	mu      sync.RWMutex
	current CommandRecord
	set     bool
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{}
}

// Set replaces the current command.
func (s *Store) Set(rec CommandRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = rec
	s.set = true
}

// Current returns the latest command and whether one has been set yet.
func (s *Store) Current() (CommandRecord, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec := s.current
	rec.Reasoning = append([]string(nil), s.current.Reasoning...)
	return rec, s.set
}
