package app

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Mishnah7/quiz-bot/internal/domain"
)

type countingPresenter struct {
	mu    sync.Mutex
	fires int
}

func (p *countingPresenter) PresentNewQuestion(_ context.Context, _ int64, difficulty domain.Difficulty) error {
	if difficulty != domain.DifficultyUnspecified {
		panic("scheduled fires must not carry a difficulty filter")
	}
	p.mu.Lock()
	p.fires++
	p.mu.Unlock()
	return nil
}

func (p *countingPresenter) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.fires
}

func TestStartReplacesExistingSchedule(t *testing.T) {
	presenter := &countingPresenter{}
	scheduler := NewScheduler(presenter, 50*time.Millisecond, time.Hour)
	defer scheduler.StopAll()

	scheduler.Start(1)
	scheduler.Start(1)

	time.Sleep(150 * time.Millisecond)
	if got := presenter.count(); got != 1 {
		t.Fatalf("expected one live timer after restart, got %d fires", got)
	}
	if !scheduler.Active(1) {
		t.Fatalf("expected schedule still active")
	}
}

func TestStopCancelsFutureFires(t *testing.T) {
	presenter := &countingPresenter{}
	scheduler := NewScheduler(presenter, 10*time.Millisecond, 20*time.Millisecond)

	scheduler.Start(1)
	time.Sleep(100 * time.Millisecond)
	if !scheduler.Stop(1) {
		t.Fatalf("expected stop to report success")
	}

	fired := presenter.count()
	if fired < 2 {
		t.Fatalf("expected initial and recurring fires before stop, got %d", fired)
	}
	time.Sleep(100 * time.Millisecond)
	if got := presenter.count(); got != fired {
		t.Fatalf("expected no fires after stop, had %d now %d", fired, got)
	}
	if scheduler.Active(1) {
		t.Fatalf("expected schedule removed")
	}
}

func TestStopWithoutScheduleIsNoOp(t *testing.T) {
	scheduler := NewScheduler(&countingPresenter{}, time.Second, time.Hour)
	if scheduler.Stop(42) {
		t.Fatalf("expected no-op stop to report false")
	}
}

func TestSchedulesAreIndependentPerUser(t *testing.T) {
	presenter := &countingPresenter{}
	scheduler := NewScheduler(presenter, 20*time.Millisecond, time.Hour)
	defer scheduler.StopAll()

	scheduler.Start(1)
	scheduler.Start(2)
	if !scheduler.Stop(1) {
		t.Fatalf("expected stop for user 1 to succeed")
	}

	time.Sleep(100 * time.Millisecond)
	if got := presenter.count(); got != 1 {
		t.Fatalf("expected only user 2's timer to fire, got %d", got)
	}
	if scheduler.Active(1) || !scheduler.Active(2) {
		t.Fatalf("expected only user 2 active")
	}
}

func TestStopAll(t *testing.T) {
	presenter := &countingPresenter{}
	scheduler := NewScheduler(presenter, 50*time.Millisecond, time.Hour)

	scheduler.Start(1)
	scheduler.Start(2)
	scheduler.StopAll()

	time.Sleep(120 * time.Millisecond)
	if got := presenter.count(); got != 0 {
		t.Fatalf("expected no fires after StopAll, got %d", got)
	}
}
