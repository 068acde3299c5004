package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/zainr27/MindAware/pkg/inference"
	"github.com/zainr27/MindAware/pkg/policy"
)

func TestLLMReasoner_BuildsPromptFromState(t *testing.T) {
	mock := inference.NewMock("Operator is sharp and rested; cleared to fly.")
	r := NewLLMReasoner(mock, nil)

	eval := policy.New(policy.DefaultThresholds()).Evaluate(goodState())
	rationale, err := r.Rationale(context.Background(), goodState(), eval)
	if err != nil {
		t.Fatalf("Rationale failed: %v", err)
	}
	if rationale != "Operator is sharp and rested; cleared to fly." {
		t.Errorf("rationale = %q", rationale)
	}

	last := mock.LastCall()
	if last == nil || len(last.Messages) != 2 {
		t.Fatalf("LastCall = %+v, want system+user messages", last)
	}
	user := last.Messages[1].Content
	for _, fragment := range []string{"focus=0.80", "fatigue=0.20", "ascend"} {
		if !strings.Contains(user, fragment) {
			t.Errorf("prompt missing %q:\n%s", fragment, user)
		}
	}
}

func TestNopReasoner(t *testing.T) {
	eval := policy.New(policy.DefaultThresholds()).Evaluate(goodState())
	rationale, err := NopReasoner{}.Rationale(context.Background(), goodState(), eval)
	if err != nil {
		t.Fatalf("Rationale failed: %v", err)
	}
	if rationale != "" {
		t.Errorf("rationale = %q, want empty", rationale)
	}
}
