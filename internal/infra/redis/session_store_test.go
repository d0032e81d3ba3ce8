package redis

import (
	"context"
	"testing"
	"time"

	"github.com/Mishnah7/quiz-bot/internal/domain"
	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T, ttl time.Duration) (*SessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("run miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewSessionStore(client, ttl), mr
}

func TestSessionRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, time.Minute)

	err := store.Put(ctx, 7, domain.PendingSession{
		Question:   "🟢 What is 2 + 2?",
		Answer:     "4",
		Difficulty: domain.DifficultyEasy,
	})
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if !mr.Exists("quiz:pending:7") {
		t.Fatalf("expected redis key to be set")
	}

	session, ok, err := store.Get(ctx, 7)
	if err != nil || !ok {
		t.Fatalf("expected session, ok=%v err=%v", ok, err)
	}
	if session.Answer != "4" || session.Difficulty != domain.DifficultyEasy {
		t.Fatalf("unexpected session %+v", session)
	}
}

func TestSessionReplaceOnWrite(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, time.Minute)

	_ = store.Put(ctx, 7, domain.PendingSession{Answer: "old"})
	_ = store.Put(ctx, 7, domain.PendingSession{Answer: "new"})

	session, _, _ := store.Get(ctx, 7)
	if session.Answer != "new" {
		t.Fatalf("expected the later write to win, got %q", session.Answer)
	}
}

func TestSessionExpires(t *testing.T) {
	ctx := context.Background()
	store, mr := newTestStore(t, time.Minute)

	_ = store.Put(ctx, 7, domain.PendingSession{Answer: "4"})
	mr.FastForward(2 * time.Minute)

	if _, ok, err := store.Get(ctx, 7); ok || err != nil {
		t.Fatalf("expected expired session to read as absent, ok=%v err=%v", ok, err)
	}
}

func TestMissingSessionIsNotAnError(t *testing.T) {
	store, _ := newTestStore(t, time.Minute)
	if _, ok, err := store.Get(context.Background(), 99); ok || err != nil {
		t.Fatalf("expected absent session without error, ok=%v err=%v", ok, err)
	}
}
