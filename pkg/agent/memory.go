package agent

import "sync"

// Memory is a bounded window of the most recent decision records, served
// to the dashboard without touching the durable log.
type Memory struct {
	mu      sync.RWMutex
	records []DecisionRecord
	max     int
}

// NewMemory creates a memory holding at most max records.
func NewMemory(max int) *Memory {
	if max <= 0 {
		max = DefaultMemorySize
	}
	return &Memory{max: max}
}

// Add appends a record, evicting the oldest when full.
func (m *Memory) Add(rec DecisionRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, rec)
	if len(m.records) > m.max {
		m.records = m.records[len(m.records)-m.max:]
	}
}

// Recent returns up to n records, newest last. n <= 0 returns all held.
func (m *Memory) Recent(n int) []DecisionRecord {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if n <= 0 || n > len(m.records) {
		n = len(m.records)
	}
	out := make([]DecisionRecord, n)
	copy(out, m.records[len(m.records)-n:])
	return out
}

// Len returns the number of held records.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.records)
}

// Clear drops all held records.
func (m *Memory) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = nil
}
