package memory

import (
	"context"
	"testing"

	"github.com/Mishnah7/quiz-bot/internal/domain"
)

func TestSessionStoreReplaceOnWrite(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	if _, ok, _ := store.Get(ctx, 1); ok {
		t.Fatalf("expected no session initially")
	}

	if err := store.Put(ctx, 1, domain.PendingSession{Question: "q1", Answer: "a1"}); err != nil {
		t.Fatalf("put: %v", err)
	}
	if err := store.Put(ctx, 1, domain.PendingSession{Question: "q2", Answer: "a2", Difficulty: domain.DifficultyHard}); err != nil {
		t.Fatalf("put: %v", err)
	}

	session, ok, err := store.Get(ctx, 1)
	if err != nil || !ok {
		t.Fatalf("expected session, ok=%v err=%v", ok, err)
	}
	if session.Answer != "a2" {
		t.Fatalf("expected the later write to win, got %q", session.Answer)
	}
}

func TestSessionStoreIsolatesUsers(t *testing.T) {
	ctx := context.Background()
	store := NewSessionStore()

	_ = store.Put(ctx, 1, domain.PendingSession{Answer: "one"})
	_ = store.Put(ctx, 2, domain.PendingSession{Answer: "two"})

	session, _, _ := store.Get(ctx, 2)
	if session.Answer != "two" {
		t.Fatalf("expected user 2's session, got %q", session.Answer)
	}
	if _, ok, _ := store.Get(ctx, 3); ok {
		t.Fatalf("expected no session for user 3")
	}
}
