package sqlite

import (
	"context"

	"github.com/Mishnah7/quiz-bot/internal/domain"
)

// AppendAttempt records one graded question. Attempts are append-only.
func (s *Store) AppendAttempt(ctx context.Context, attempt domain.QuizAttempt) error {
	quizType := attempt.QuizType
	if quizType == "" {
		quizType = "General"
	}
	difficulty := string(attempt.Difficulty)
	if difficulty == "" {
		difficulty = "unknown"
	}
	row := &quizRow{
		UserID:     attempt.UserID,
		Question:   attempt.Question,
		Answer:     attempt.Answer,
		QuizType:   quizType,
		Difficulty: difficulty,
		CreatedAt:  s.now(),
		Status:     domain.AttemptStatusCompleted,
	}
	_, err := s.db.NewInsert().Model(row).Exec(ctx)
	return err
}

func (s *Store) RecentAttempts(ctx context.Context, userID int64, limit int) ([]domain.QuizAttempt, error) {
	var rows []quizRow
	err := s.db.NewSelect().Model(&rows).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	attempts := make([]domain.QuizAttempt, len(rows))
	for i, row := range rows {
		attempts[i] = domain.QuizAttempt{
			ID:         row.ID,
			UserID:     row.UserID,
			Question:   row.Question,
			Answer:     row.Answer,
			QuizType:   row.QuizType,
			Difficulty: domain.Difficulty(row.Difficulty),
			CreatedAt:  row.CreatedAt,
			Status:     row.Status,
		}
	}
	return attempts, nil
}

func (s *Store) RecentScoreHistory(ctx context.Context, userID int64, limit int) ([]domain.ScoreHistoryEntry, error) {
	var rows []scoreHistoryRow
	err := s.db.NewSelect().Model(&rows).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.ScoreHistoryEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.ScoreHistoryEntry{
			ID:        row.ID,
			UserID:    row.UserID,
			Score:     row.Score,
			Timestamp: row.Timestamp,
		}
	}
	return entries, nil
}

// AuditEntries lists username changes for a user, newest first. Exposed for
// tests and operator tooling rather than a bot command.
func (s *Store) AuditEntries(ctx context.Context, userID int64) ([]domain.AuditEntry, error) {
	var rows []auditRow
	err := s.db.NewSelect().Model(&rows).
		Where("user_id = ?", userID).
		Order("changed_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.AuditEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.AuditEntry{
			ID:          row.ID,
			UserID:      row.UserID,
			OldUsername: row.OldUsername,
			NewUsername: row.NewUsername,
			ChangedAt:   row.ChangedAt,
		}
	}
	return entries, nil
}
