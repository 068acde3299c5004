package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/zainr27/MindAware/pkg/eeg"
	"github.com/zainr27/MindAware/pkg/inference"
	"github.com/zainr27/MindAware/pkg/policy"
)

// Reasoner produces an optional natural-language rationale for a
// decision. It never changes the intent; the thresholds alone decide.
type Reasoner interface {
	Rationale(ctx context.Context, state eeg.CognitiveState, eval policy.Evaluation) (string, error)
}

// NopReasoner is the always-available default: no rationale.
type NopReasoner struct{}

// Rationale returns an empty rationale.
func (NopReasoner) Rationale(ctx context.Context, state eeg.CognitiveState, eval policy.Evaluation) (string, error) {
	return "", nil
}

const reasonerSystemPrompt = `You are the co-pilot monitor for a BCI-controlled drone.
Given the operator's cognitive metrics and the rule-based assessment, write one short
sentence explaining the decision to a human supervisor. Do not suggest a different action.`

// LLMReasoner asks a chat model to narrate the decision.
type LLMReasoner struct {
	provider inference.Provider
	logger   *slog.Logger
}

// NewLLMReasoner wraps a chat provider as a Reasoner.
func NewLLMReasoner(provider inference.Provider, logger *slog.Logger) *LLMReasoner {
	if logger == nil {
		logger = slog.Default()
	}
	return &LLMReasoner{
		provider: provider,
		logger:   logger.With("component", "agent.reasoner"),
	}
}

// Rationale asks the model for a one-line narration of the decision.
func (r *LLMReasoner) Rationale(ctx context.Context, state eeg.CognitiveState, eval policy.Evaluation) (string, error) {
	prompt := fmt.Sprintf(
		"Metrics: focus=%.2f fatigue=%.2f overload=%.2f stress=%.2f (calibrated=%v)\nAssessment: %s, intent %s\nChecks:\n%s",
		state.Focus, state.Fatigue, state.Overload, state.Stress, state.Calibrated,
		eval.Severity, eval.Intent, strings.Join(eval.Reasoning, "\n"),
	)

	resp, err := r.provider.Chat(ctx, &inference.ChatRequest{
		Messages: []inference.Message{
			inference.NewSystemMessage(reasonerSystemPrompt),
			inference.NewUserMessage(prompt),
		},
		MaxTokens: 100,
	})
	if err != nil {
		return "", fmt.Errorf("reasoner: %w", err)
	}

	rationale := strings.TrimSpace(resp.Message.Content)
	r.logger.Debug("rationale generated", "intent", eval.Intent, "latency_ms", resp.LatencyMs)
	return rationale, nil
}

// Verify implementations at compile time.
var (
	_ Reasoner = NopReasoner{}
	_ Reasoner = (*LLMReasoner)(nil)
)
