package app

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/Mishnah7/quiz-bot/internal/domain"
)

// Presenter is the slice of QuizService the scheduler needs.
type Presenter interface {
	PresentNewQuestion(ctx context.Context, userID int64, difficulty domain.Difficulty) error
}

// Scheduler owns the per-user recurring quiz timers. At most one live timer
// exists per user id; starting a second one cancels the first.
type Scheduler struct {
	presenter Presenter
	first     time.Duration
	interval  time.Duration

	mu      sync.Mutex
	handles map[int64]chan struct{}
}

func NewScheduler(presenter Presenter, first, interval time.Duration) *Scheduler {
	return &Scheduler{
		presenter: presenter,
		first:     first,
		interval:  interval,
		handles:   make(map[int64]chan struct{}),
	}
}

// Start arms a recurring quiz for the user: first fire after the initial
// delay, then every interval, with no difficulty filter. An existing schedule
// for the user is replaced, never stacked.
func (s *Scheduler) Start(userID int64) {
	s.mu.Lock()
	if cancel, ok := s.handles[userID]; ok {
		close(cancel)
	}
	cancel := make(chan struct{})
	s.handles[userID] = cancel
	s.mu.Unlock()

	go s.run(userID, cancel)
}

// Stop cancels the user's schedule if one exists and reports whether anything
// was stopped. Cancellation affects only future fires; an in-flight
// presentation completes.
func (s *Scheduler) Stop(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	cancel, ok := s.handles[userID]
	if !ok {
		return false
	}
	close(cancel)
	delete(s.handles, userID)
	return true
}

// StopAll cancels every schedule; used on shutdown.
func (s *Scheduler) StopAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, cancel := range s.handles {
		close(cancel)
		delete(s.handles, userID)
	}
}

// Active reports whether the user currently has a schedule registered.
func (s *Scheduler) Active(userID int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.handles[userID]
	return ok
}

func (s *Scheduler) run(userID int64, cancel <-chan struct{}) {
	timer := time.NewTimer(s.first)
	defer timer.Stop()

	select {
	case <-cancel:
		return
	case <-timer.C:
		s.fire(userID)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-cancel:
			return
		case <-ticker.C:
			s.fire(userID)
		}
	}
}

func (s *Scheduler) fire(userID int64) {
	if err := s.presenter.PresentNewQuestion(context.Background(), userID, domain.DifficultyUnspecified); err != nil {
		log.Printf("scheduler: send quiz to user %d: %v", userID, err)
	}
}
