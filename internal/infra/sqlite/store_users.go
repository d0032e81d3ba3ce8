package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Mishnah7/quiz-bot/internal/domain"
	"github.com/uptrace/bun"
)

// EnsureUser upserts the user profile. New users start at score 0 with an
// initial score-history row; for known users a changed username is recorded
// in the audit table before being applied. last_interaction is bumped either
// way.
func (s *Store) EnsureUser(ctx context.Context, id int64, username string) (domain.User, error) {
	if username == "" {
		username = "Anonymous"
	}
	now := s.now()

	err := s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		existing := new(userRow)
		err := tx.NewSelect().Model(existing).Where("id = ?", id).Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			row := &userRow{
				ID:              id,
				Username:        username,
				Score:           0,
				Language:        domain.DefaultLanguage,
				LastInteraction: now,
				CreatedAt:       now,
			}
			if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
				return err
			}
			_, err := tx.NewInsert().Model(&scoreHistoryRow{UserID: id, Score: 0, Timestamp: now}).Exec(ctx)
			return err
		}
		if err != nil {
			return err
		}

		if existing.Username != username {
			audit := &auditRow{
				UserID:      id,
				OldUsername: existing.Username,
				NewUsername: username,
				ChangedAt:   now,
			}
			if _, err := tx.NewInsert().Model(audit).Exec(ctx); err != nil {
				return err
			}
			if _, err := tx.NewUpdate().Model((*userRow)(nil)).
				Set("username = ?", username).
				Where("id = ?", id).
				Exec(ctx); err != nil {
				return err
			}
		}
		_, err = tx.NewUpdate().Model((*userRow)(nil)).
			Set("last_interaction = ?", now).
			Where("id = ?", id).
			Exec(ctx)
		return err
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("ensure user %d: %w", id, err)
	}
	return s.User(ctx, id)
}

func (s *Store) User(ctx context.Context, id int64) (domain.User, error) {
	row := new(userRow)
	err := s.db.NewSelect().Model(row).Where("id = ?", id).Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.User{}, domain.ErrUserNotFound
	}
	if err != nil {
		return domain.User{}, err
	}
	return userFromRow(row), nil
}

func (s *Store) Language(ctx context.Context, id int64) (string, error) {
	var lang string
	err := s.db.NewSelect().Model((*userRow)(nil)).
		Column("language").
		Where("id = ?", id).
		Scan(ctx, &lang)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.DefaultLanguage, nil
	}
	if err != nil {
		return "", err
	}
	if lang == "" {
		return domain.DefaultLanguage, nil
	}
	return lang, nil
}

func (s *Store) SetLanguage(ctx context.Context, id int64, code string) error {
	_, err := s.db.NewUpdate().Model((*userRow)(nil)).
		Set("language = ?", code).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (s *Store) Score(ctx context.Context, id int64) (int, error) {
	var score int
	err := s.db.NewSelect().Model((*userRow)(nil)).
		Column("score").
		Where("id = ?", id).
		Scan(ctx, &score)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, domain.ErrUserNotFound
	}
	return score, err
}

// SetScore persists the new score and appends the matching score-history row
// in one transaction, keeping the ledger invariant intact.
func (s *Store) SetScore(ctx context.Context, id int64, score int) error {
	now := s.now()
	return s.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewUpdate().Model((*userRow)(nil)).
			Set("score = ?", score).
			Where("id = ?", id).
			Exec(ctx); err != nil {
			return err
		}
		_, err := tx.NewInsert().Model(&scoreHistoryRow{UserID: id, Score: score, Timestamp: now}).Exec(ctx)
		return err
	})
}

// ResetScore zeroes the score without a history append, matching the /reset
// command's long-standing behavior.
func (s *Store) ResetScore(ctx context.Context, id int64) error {
	_, err := s.db.NewUpdate().Model((*userRow)(nil)).
		Set("score = 0").
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (s *Store) AllUsers(ctx context.Context) ([]domain.User, error) {
	var rows []userRow
	err := s.db.NewSelect().Model(&rows).
		Order("last_interaction DESC").
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	users := make([]domain.User, len(rows))
	for i := range rows {
		users[i] = userFromRow(&rows[i])
	}
	return users, nil
}

func (s *Store) TopScores(ctx context.Context, limit int) ([]domain.LeaderboardEntry, error) {
	var rows []userRow
	err := s.db.NewSelect().Model(&rows).
		Column("username", "score").
		Order("score DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.LeaderboardEntry, len(rows))
	for i, row := range rows {
		entries[i] = domain.LeaderboardEntry{Username: row.Username, Score: row.Score}
	}
	return entries, nil
}

func userFromRow(row *userRow) domain.User {
	return domain.User{
		ID:              row.ID,
		Username:        row.Username,
		Score:           row.Score,
		Language:        row.Language,
		LastInteraction: row.LastInteraction,
		CreatedAt:       row.CreatedAt,
	}
}
