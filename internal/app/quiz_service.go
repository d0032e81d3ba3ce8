package app

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Mishnah7/quiz-bot/internal/domain"
)

// SessionRepository abstracts how pending quiz sessions are stored
// (in-memory, Redis, etc). Put always overwrites: the later write wins.
type SessionRepository interface {
	Put(ctx context.Context, userID int64, session domain.PendingSession) error
	Get(ctx context.Context, userID int64) (domain.PendingSession, bool, error)
}

// QuestionSource fetches one multiple-choice question, optionally filtered
// by difficulty.
type QuestionSource interface {
	Question(ctx context.Context, difficulty domain.Difficulty) (domain.Question, error)
}

// Translator localizes outbound text best-effort; implementations return the
// input unchanged on any failure.
type Translator interface {
	Translate(ctx context.Context, text, lang string) string
}

// UserStore persists user profiles, scores, and quiz history.
type UserStore interface {
	EnsureUser(ctx context.Context, id int64, username string) (domain.User, error)
	User(ctx context.Context, id int64) (domain.User, error)
	Language(ctx context.Context, id int64) (string, error)
	SetLanguage(ctx context.Context, id int64, code string) error
	Score(ctx context.Context, id int64) (int, error)
	SetScore(ctx context.Context, id int64, score int) error
	ResetScore(ctx context.Context, id int64) error
	AppendAttempt(ctx context.Context, attempt domain.QuizAttempt) error
	TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error)
	RecentAttempts(ctx context.Context, userID int64, limit int) ([]domain.QuizAttempt, error)
	RecentScoreHistory(ctx context.Context, userID int64, limit int) ([]domain.ScoreHistoryEntry, error)
	AllUsers(ctx context.Context) ([]domain.User, error)
}

// Messenger delivers bot output to a user. SendQuestion renders options as
// selectable choices whose callback carries the option text verbatim.
type Messenger interface {
	SendText(ctx context.Context, userID int64, text string) error
	SendQuestion(ctx context.Context, userID int64, text string, options []string) error
}

// QuizService drives one question through its lifecycle per user: fetch,
// present, await answer, grade, persist, advance.
type QuizService struct {
	sessions    SessionRepository
	questions   QuestionSource
	users       UserStore
	translator  Translator
	messenger   Messenger
	answerDelay time.Duration
	after       func(d time.Duration, f func())
	shuffle     func(n int, swap func(i, j int))
}

func NewQuizService(sessions SessionRepository, questions QuestionSource, users UserStore, translator Translator, messenger Messenger, answerDelay time.Duration) *QuizService {
	return &QuizService{
		sessions:    sessions,
		questions:   questions,
		users:       users,
		translator:  translator,
		messenger:   messenger,
		answerDelay: answerDelay,
		after:       func(d time.Duration, f func()) { time.AfterFunc(d, f) },
		shuffle:     rand.Shuffle,
	}
}

var difficultyBadge = map[domain.Difficulty]string{
	domain.DifficultyEasy:   "🟢",
	domain.DifficultyMedium: "🟡",
	domain.DifficultyHard:   "🔴",
}

// PresentNewQuestion fetches and sends a question to the user, recording a
// PendingSession keyed by user id (replacing any prior one). Provider failure
// is non-fatal: the user gets a localized notice and no session is created.
func (s *QuizService) PresentNewQuestion(ctx context.Context, userID int64, difficulty domain.Difficulty) error {
	lang := s.language(ctx, userID)

	question, err := s.questions.Question(ctx, difficulty)
	if err != nil {
		log.Printf("quiz: fetch question for user %d: %v", userID, err)
		notice := s.translator.Translate(ctx, "Sorry, I couldn't fetch a question right now. Please try again later.", lang)
		return s.messenger.SendText(ctx, userID, notice)
	}

	options := make([]string, 0, len(question.IncorrectAnswers)+1)
	options = append(options, question.IncorrectAnswers...)
	options = append(options, question.CorrectAnswer)
	s.shuffle(len(options), func(i, j int) {
		options[i], options[j] = options[j], options[i]
	})

	text := s.translator.Translate(ctx, question.Text, lang)
	if badge := difficultyBadge[difficulty]; badge != "" {
		text = badge + " " + text
	}

	if err := s.sessions.Put(ctx, userID, domain.PendingSession{
		Question:   text,
		Answer:     question.CorrectAnswer,
		Difficulty: difficulty,
	}); err != nil {
		return fmt.Errorf("store pending session: %w", err)
	}

	return s.messenger.SendQuestion(ctx, userID, text, options)
}

// SubmitAnswer grades the chosen option against the user's pending session,
// persists the attempt (and the score on a correct answer), reports the
// outcome, and schedules the next question after a short delay.
//
// Grading is exact case-sensitive string equality. The session is not cleared
// here; the next presentation overwrites it, so a racing answer and question
// resolve by last write wins.
func (s *QuizService) SubmitAnswer(ctx context.Context, userID int64, chosen string) (domain.AnswerResult, error) {
	lang := s.language(ctx, userID)

	session, ok, err := s.sessions.Get(ctx, userID)
	if err != nil {
		return domain.AnswerResult{}, fmt.Errorf("load pending session: %w", err)
	}
	if !ok {
		notice := s.translator.Translate(ctx, "That question is no longer active. Send /quiz to start a new one.", lang)
		if err := s.messenger.SendText(ctx, userID, notice); err != nil {
			return domain.AnswerResult{}, err
		}
		return domain.AnswerResult{}, domain.ErrNoPendingSession
	}

	result := domain.AnswerResult{Correct: chosen == session.Answer}
	if result.Correct {
		score, err := s.users.Score(ctx, userID)
		if err != nil {
			log.Printf("quiz: read score for user %d: %v", userID, err)
		} else {
			result.NewScore = score + 1
			if err := s.users.SetScore(ctx, userID, result.NewScore); err != nil {
				log.Printf("quiz: update score for user %d: %v", userID, err)
			}
		}
	}

	// Category is recorded as a fixed generic label; history rendering
	// depends on it staying stable.
	if err := s.users.AppendAttempt(ctx, domain.QuizAttempt{
		UserID:     userID,
		Question:   session.Question,
		Answer:     session.Answer,
		QuizType:   "General",
		Difficulty: session.Difficulty,
		Status:     domain.AttemptStatusCompleted,
	}); err != nil {
		log.Printf("quiz: log attempt for user %d: %v", userID, err)
	}

	if err := s.messenger.SendText(ctx, userID, s.resultMessage(ctx, lang, session, chosen, result)); err != nil {
		return result, err
	}

	difficulty := session.Difficulty
	s.after(s.answerDelay, func() {
		if err := s.PresentNewQuestion(context.Background(), userID, difficulty); err != nil {
			log.Printf("quiz: send follow-up question to user %d: %v", userID, err)
		}
	})
	return result, nil
}

func (s *QuizService) resultMessage(ctx context.Context, lang string, session domain.PendingSession, chosen string, result domain.AnswerResult) string {
	header := fmt.Sprintf("Question:\n%s\n\nYour answer: %s\nCorrect answer: %s\n\n", session.Question, chosen, session.Answer)
	if result.Correct {
		verdict := s.translator.Translate(ctx, "Correct! You earned a point!", lang)
		return header + fmt.Sprintf("✅ %s\nTotal score: %d", verdict, result.NewScore)
	}
	return header + "❌ " + s.translator.Translate(ctx, "Wrong!", lang)
}

func (s *QuizService) language(ctx context.Context, userID int64) string {
	lang, err := s.users.Language(ctx, userID)
	if err != nil || lang == "" {
		return domain.DefaultLanguage
	}
	return lang
}
