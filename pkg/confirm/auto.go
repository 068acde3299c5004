package confirm

import (
	"context"
	"sync"
	"time"
)

// Auto is a Confirmer that answers every question the same way without
// involving an operator. Used when voice confirmation is disabled.
type Auto struct {
	// Answer is returned for every question.
	Answer Answer
}

// NewAuto creates an auto-confirmer with the given fixed answer.
func NewAuto(answer Answer) *Auto {
	return &Auto{Answer: answer}
}

// Confirm returns the fixed answer immediately.
func (a *Auto) Confirm(ctx context.Context, q Question) (Answer, error) {
	return a.Answer, nil
}

// Mock implements Confirmer for testing.
// The response can be customized via the function field.
type Mock struct {
	// ConfirmFunc is called when Confirm is invoked.
	// If nil, returns AnswerYes.
	ConfirmFunc func(ctx context.Context, q Question) (Answer, error)

	// Tracking
	mu    sync.Mutex
	calls []MockCall
}

// MockCall records a confirmation request for verification.
type MockCall struct {
	Question Question
	Time     time.Time
}

// Confirm calls ConfirmFunc and records the call.
func (m *Mock) Confirm(ctx context.Context, q Question) (Answer, error) {
	m.mu.Lock()
	m.calls = append(m.calls, MockCall{Question: q, Time: time.Now()})
	m.mu.Unlock()

	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(ctx, q)
	}
	return AnswerYes, nil
}

// Calls returns all recorded confirmation requests.
func (m *Mock) Calls() []MockCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]MockCall, len(m.calls))
	copy(result, m.calls)
	return result
}

// CallCount returns the number of confirmation requests seen.
func (m *Mock) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Verify implementations at compile time.
var (
	_ Confirmer = (*Auto)(nil)
	_ Confirmer = (*Mock)(nil)
)
