package engine_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/engine"
)

type stubEngine struct {
	name   string
	answer string
	err    error
}

func (s *stubEngine) Name() string { return s.name }

func (s *stubEngine) Respond(_ context.Context, _, _ string) (*engine.Reply, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &engine.Reply{Answer: s.answer, Reason: "stub"}, nil
}

func TestMergerCombinesIntoSingleAnswer(t *testing.T) {
	m := engine.NewMerger(
		&stubEngine{name: "a", answer: "first"},
		&stubEngine{name: "b", answer: "second"},
	)

	merged, err := m.Ask(context.Background(), "user@example.com", "hi")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}

	if !strings.Contains(merged.Answer, "first") || !strings.Contains(merged.Answer, "second") {
		t.Fatalf("merged answer missing contributions: %q", merged.Answer)
	}
	if len(merged.Engines) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(merged.Engines))
	}
	if merged.RequestID == "" {
		t.Fatal("expected a request id")
	}
	// 엔진별 답변이 분리된 필드로 나가면 안 됨
	for _, trace := range merged.Engines {
		if strings.Contains(trace.Reason, "first") || strings.Contains(trace.Reason, "second") {
			t.Fatalf("trace must not carry raw answers: %+v", trace)
		}
	}
}

func TestMergerDegradesOnSingleFailure(t *testing.T) {
	m := engine.NewMerger(
		&stubEngine{name: "a", answer: "only"},
		&stubEngine{name: "b", err: errors.New("boom")},
	)

	merged, err := m.Ask(context.Background(), "user@example.com", "hi")
	if err != nil {
		t.Fatalf("Ask err: %v", err)
	}
	if merged.Answer != "only" {
		t.Fatalf("expected surviving answer, got %q", merged.Answer)
	}

	var degraded bool
	for _, trace := range merged.Engines {
		if trace.Engine == "b" && trace.Degraded {
			degraded = true
		}
	}
	if !degraded {
		t.Fatal("expected failed engine to be marked degraded")
	}
}

func TestMergerFailsWhenAllEnginesFail(t *testing.T) {
	m := engine.NewMerger(
		&stubEngine{name: "a", err: errors.New("boom")},
		&stubEngine{name: "b", err: errors.New("boom")},
	)

	if _, err := m.Ask(context.Background(), "user@example.com", "hi"); !errors.Is(err, engine.ErrAllEnginesFailed) {
		t.Fatalf("expected ErrAllEnginesFailed, got %v", err)
	}
}
