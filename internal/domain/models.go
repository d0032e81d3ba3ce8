package domain

import "time"

// Difficulty is the provider-side difficulty filter for a question.
type Difficulty string

const (
	DifficultyEasy        Difficulty = "easy"
	DifficultyMedium      Difficulty = "medium"
	DifficultyHard        Difficulty = "hard"
	DifficultyUnspecified Difficulty = ""
)

// Valid reports whether d is one of the filterable difficulty levels.
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return true
	}
	return false
}

// Languages maps supported language codes to display names. Bot text is
// authored in English and translated best-effort to the user's choice.
var Languages = map[string]string{
	"en": "English",
	"es": "Español",
	"fr": "Français",
}

const DefaultLanguage = "en"

// User is a bot account keyed by the Telegram user id. Users are never deleted.
type User struct {
	ID              int64
	Username        string
	Score           int
	Language        string
	LastInteraction time.Time
	CreatedAt       time.Time
}

// Question is one multiple-choice trivia question, entity-decoded and ready
// for presentation.
type Question struct {
	Text             string
	CorrectAnswer    string
	IncorrectAnswers []string
	Category         string
	Difficulty       Difficulty
}

// QuizAttempt is the post-hoc record of one graded question. Immutable once
// written.
type QuizAttempt struct {
	ID         int64
	UserID     int64
	Question   string
	Answer     string
	QuizType   string
	Difficulty Difficulty
	CreatedAt  time.Time
	Status     string
}

// AttemptStatusCompleted is recorded for every attempt; attempts are only
// persisted after grading.
const AttemptStatusCompleted = "completed"

// ScoreHistoryEntry is one row of the append-only score ledger. The latest
// entry for a user always matches the user's current score.
type ScoreHistoryEntry struct {
	ID        int64
	UserID    int64
	Score     int
	Timestamp time.Time
}

// AuditEntry records a username change observed on an interaction.
type AuditEntry struct {
	ID          int64
	UserID      int64
	OldUsername string
	NewUsername string
	ChangedAt   time.Time
}

// PendingSession is the single in-flight question awaiting an answer for one
// user. It is transient: creating a new one replaces the old one, and it has
// no durability guarantee across restarts.
type PendingSession struct {
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Difficulty Difficulty `json:"difficulty"`
}

// LeaderboardEntry is one row of the top-scores view.
type LeaderboardEntry struct {
	Username string
	Score    int
}

// AnswerResult summarizes the outcome of grading one submission.
type AnswerResult struct {
	Correct  bool
	NewScore int
}
