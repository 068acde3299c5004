// Package confirm provides the bounded-time human confirmation gate that
// guards the highest-risk actuator transition (landing while airborne).
//
// A Confirmer poses a yes/no question through some channel (voice, UI,
// auto-answer) and reports the answer. The Gate wraps a Confirmer with
// the timeout/default contract: the decision cycle always completes in
// bounded time, and a channel failure is treated exactly like a timeout.
package confirm

import (
	"context"
	"log/slog"
	"time"
)

// Answer is the outcome of a confirmation question.
type Answer int

const (
	// AnswerTimeout means no usable answer arrived in time.
	AnswerTimeout Answer = iota

	// AnswerYes is an affirmative response.
	AnswerYes

	// AnswerNo is a negative response.
	AnswerNo
)

// String returns a human-readable answer.
func (a Answer) String() string {
	switch a {
	case AnswerYes:
		return "yes"
	case AnswerNo:
		return "no"
	case AnswerTimeout:
		return "timeout"
	default:
		return "unknown"
	}
}

// Question is the confirmation request posed to the operator.
type Question struct {
	// Action names the command awaiting confirmation (e.g. "land").
	Action string `json:"action"`

	// Text is the full question read to the operator.
	Text string `json:"text"`
}

// Confirmer poses a question and returns the raw answer. Implementations
// must honor ctx cancellation; the Gate enforces the deadline.
type Confirmer interface {
	Confirm(ctx context.Context, q Question) (Answer, error)
}

// Outcome records how a gated confirmation resolved, for the decision log.
type Outcome struct {
	// Answer is the raw channel result: yes, no, or timeout.
	Answer Answer `json:"answer"`

	// Affirmative is the final decision after the default was applied.
	Affirmative bool `json:"affirmative"`

	// DefaultApplied is true when the answer came from configuration
	// (timeout or channel failure) rather than the operator.
	DefaultApplied bool `json:"default_applied"`
}

// Config holds gate parameters.
type Config struct {
	// Timeout bounds how long a confirmation may block the decision cycle.
	Timeout time.Duration

	// Default is the answer applied on timeout or channel failure.
	// Must be AnswerYes or AnswerNo.
	Default Answer

	// Logger is the structured logger for gate events.
	Logger *slog.Logger
}

// DefaultGateConfig returns the standard gate configuration: five-second
// window, default to "no" for safety.
func DefaultGateConfig() Config {
	return Config{
		Timeout: 5 * time.Second,
		Default: AnswerNo,
		Logger:  slog.Default(),
	}
}

// Gate enforces the wait/timeout/default-answer contract around a
// Confirmer.
type Gate struct {
	confirmer Confirmer
	cfg       Config
	logger    *slog.Logger
}

// NewGate creates a gate around the given confirmer.
func NewGate(c Confirmer, cfg Config) *Gate {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultGateConfig().Timeout
	}
	return &Gate{
		confirmer: c,
		cfg:       cfg,
		logger:    logger.With("component", "confirm.gate"),
	}
}

// Confirm poses the question and always returns within the configured
// timeout. A timeout, a cancelled context, an error from the channel, or
// an unresolved answer all resolve to the configured default.
func (g *Gate) Confirm(ctx context.Context, q Question) Outcome {
	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout)
	defer cancel()

	type result struct {
		answer Answer
		err    error
	}
	ch := make(chan result, 1)
	go func() {
		answer, err := g.confirmer.Confirm(ctx, q)
		ch <- result{answer, err}
	}()

	select {
	case res := <-ch:
		if res.err != nil {
			// Channel failure is treated exactly like a timeout.
			g.logger.Warn("confirmation channel failed, applying default",
				"action", q.Action, "default", g.cfg.Default, "error", res.err)
			return g.defaultOutcome()
		}
		if res.answer == AnswerTimeout {
			g.logger.Info("confirmation unresolved, applying default",
				"action", q.Action, "default", g.cfg.Default)
			return g.defaultOutcome()
		}
		return Outcome{
			Answer:      res.answer,
			Affirmative: res.answer == AnswerYes,
		}

	case <-ctx.Done():
		g.logger.Info("confirmation timed out, applying default",
			"action", q.Action, "default", g.cfg.Default)
		return g.defaultOutcome()
	}
}

func (g *Gate) defaultOutcome() Outcome {
	return Outcome{
		Answer:         AnswerTimeout,
		Affirmative:    g.cfg.Default == AnswerYes,
		DefaultApplied: true,
	}
}
