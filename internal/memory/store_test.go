package memory_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"

	"github.com/adarsh20n06-web/NOBLTY-AI/internal/memory"
	"github.com/adarsh20n06-web/NOBLTY-AI/internal/models"
)

func newTestStore(t *testing.T) (*memory.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)

	store, err := memory.New("redis://"+mr.Addr(), time.Hour)
	if err != nil {
		t.Fatalf("memory.New err: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store, mr
}

func TestSessionLifecycle(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	sess := models.Session{
		ID:        "sess-1",
		Email:     "user@example.com",
		Name:      "User",
		Provider:  "google",
		CreatedAt: time.Now().UTC(),
	}
	if err := store.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	got, err := store.GetSession(ctx, "sess-1")
	if err != nil {
		t.Fatalf("GetSession err: %v", err)
	}
	if got.Email != sess.Email || got.Provider != sess.Provider {
		t.Fatalf("unexpected session: %+v", got)
	}

	if err := store.DeleteSession(ctx, "sess-1"); err != nil {
		t.Fatalf("DeleteSession err: %v", err)
	}
	if _, err := store.GetSession(ctx, "sess-1"); !errors.Is(err, memory.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after delete, got %v", err)
	}
}

func TestSessionExpiry(t *testing.T) {
	store, mr := newTestStore(t)
	ctx := context.Background()

	sess := models.Session{ID: "sess-ttl", Email: "user@example.com"}
	if err := store.CreateSession(ctx, sess); err != nil {
		t.Fatalf("CreateSession err: %v", err)
	}

	// TTL 경과 후에는 세션이 사라져야 함
	mr.FastForward(2 * time.Hour)

	if _, err := store.GetSession(ctx, "sess-ttl"); !errors.Is(err, memory.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after TTL, got %v", err)
	}
}

func TestGetSessionUnknown(t *testing.T) {
	store, _ := newTestStore(t)

	if _, err := store.GetSession(context.Background(), "missing"); !errors.Is(err, memory.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestShortContextTrimmedToTen(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		if err := store.AppendContext(ctx, "user@example.com", fmt.Sprintf("prompt-%d", i)); err != nil {
			t.Fatalf("AppendContext err: %v", err)
		}
	}

	recent, err := store.RecentContext(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("RecentContext err: %v", err)
	}
	if len(recent) != 10 {
		t.Fatalf("expected 10 recent turns, got %d", len(recent))
	}
	// 가장 오래된 5개는 밀려나야 함
	if recent[0] != "prompt-5" {
		t.Fatalf("expected oldest kept turn to be prompt-5, got %s", recent[0])
	}
	if recent[len(recent)-1] != "prompt-14" {
		t.Fatalf("expected newest turn to be prompt-14, got %s", recent[len(recent)-1])
	}
}

func TestLongMemoryGrows(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	for i := 0; i < 15; i++ {
		if err := store.AppendLongMemory(ctx, "user@example.com", fmt.Sprintf("prompt-%d", i)); err != nil {
			t.Fatalf("AppendLongMemory err: %v", err)
		}
	}

	n, err := store.LongMemoryLen(ctx, "user@example.com")
	if err != nil {
		t.Fatalf("LongMemoryLen err: %v", err)
	}
	if n != 15 {
		t.Fatalf("expected 15 long memory entries, got %d", n)
	}
}
