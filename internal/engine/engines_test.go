package engine_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/engine"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/memory"
)

func TestNobltyTruncatesLongPrompt(t *testing.T) {
	e := engine.NewNoblty()

	long := strings.Repeat("x", 500)
	reply, err := e.Respond(context.Background(), "user@example.com", long)
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if !strings.HasPrefix(reply.Answer, "NOBLTY processed: ") {
		t.Fatalf("unexpected answer: %q", reply.Answer)
	}
	if len(reply.Answer) > len("NOBLTY processed: ")+200 {
		t.Fatalf("answer not truncated: %d chars", len(reply.Answer))
	}
}

func TestNobltyDeterministic(t *testing.T) {
	e := engine.NewNoblty()

	first, err := e.Respond(context.Background(), "a@example.com", "hello")
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	second, err := e.Respond(context.Background(), "b@example.com", "hello")
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if first.Answer != second.Answer {
		t.Fatal("stateless engine must not vary by user")
	}
}

func TestAastraxRecordsMemory(t *testing.T) {
	mr := miniredis.RunT(t)
	store, err := memory.New("redis://"+mr.Addr(), time.Hour)
	if err != nil {
		t.Fatalf("memory.New err: %v", err)
	}
	defer store.Close()

	e := engine.NewAastrax(store)
	ctx := context.Background()

	reply, err := e.Respond(ctx, "user@example.com", "hello")
	if err != nil {
		t.Fatalf("Respond err: %v", err)
	}
	if !strings.Contains(reply.Answer, "olleh") {
		t.Fatalf("expected reversed prompt in answer, got %q", reply.Answer)
	}
	if !strings.Contains(reply.Reason, "1 turns in context") {
		t.Fatalf("unexpected reason: %q", reply.Reason)
	}

	recent, err := store.RecentContext(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("RecentContext err: %v", err)
	}
	if len(recent) != 1 || recent[0] != "hello" {
		t.Fatalf("prompt not recorded in short context: %v", recent)
	}

	n, err := store.LongMemoryLen(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("LongMemoryLen err: %v", err)
	}
	if n != 1 {
		t.Fatalf("prompt not recorded in long memory: %d", n)
	}
}
