package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/Mishnah7/quiz-bot/internal/infra/sqlite/migrations"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"
	"github.com/uptrace/bun/migrate"
)

// Store is the SQLite-backed user store. Every operation is a short
// independent transaction; nothing spans a whole quiz lifecycle.
type Store struct {
	db  *bun.DB
	now func() time.Time
}

// Open opens (or creates) the database file at path.
func Open(path string) (*Store, error) {
	sqldb, err := sql.Open(sqliteshim.ShimName, "file:"+path+"?cache=shared")
	if err != nil {
		return nil, err
	}
	// SQLite tolerates exactly one writer; a single pooled connection keeps
	// concurrent timer fires from tripping over SQLITE_BUSY.
	sqldb.SetMaxOpenConns(1)

	db := bun.NewDB(sqldb, sqlitedialect.New())
	return &Store{db: db, now: time.Now}, nil
}

var memSeq atomic.Int64

// OpenInMemory opens a throwaway in-memory database; used by tests. Each call
// gets its own database so tests stay isolated.
func OpenInMemory() (*Store, error) {
	dsn := fmt.Sprintf("file:memdb%d?mode=memory&cache=shared", memSeq.Add(1))
	sqldb, err := sql.Open(sqliteshim.ShimName, dsn)
	if err != nil {
		return nil, err
	}
	sqldb.SetMaxOpenConns(1)
	db := bun.NewDB(sqldb, sqlitedialect.New())
	return &Store{db: db, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate applies pending schema migrations.
func (s *Store) Migrate(ctx context.Context) error {
	migrator := migrate.NewMigrator(s.db, migrations.Migrations)
	if err := migrator.Init(ctx); err != nil {
		return err
	}
	_, err := migrator.Migrate(ctx)
	return err
}

type userRow struct {
	bun.BaseModel `bun:"table:users"`

	ID              int64     `bun:"id,pk"`
	Username        string    `bun:"username"`
	Score           int       `bun:"score"`
	Language        string    `bun:"language"`
	LastInteraction time.Time `bun:"last_interaction"`
	CreatedAt       time.Time `bun:"created_at"`
}

type quizRow struct {
	bun.BaseModel `bun:"table:quizzes"`

	ID         int64     `bun:"id,pk,autoincrement"`
	UserID     int64     `bun:"user_id"`
	Question   string    `bun:"question"`
	Answer     string    `bun:"answer"`
	QuizType   string    `bun:"quiz_type"`
	Difficulty string    `bun:"difficulty"`
	CreatedAt  time.Time `bun:"created_at"`
	Status     string    `bun:"status"`
}

type scoreHistoryRow struct {
	bun.BaseModel `bun:"table:score_history"`

	ID        int64     `bun:"id,pk,autoincrement"`
	UserID    int64     `bun:"user_id"`
	Score     int       `bun:"score"`
	Timestamp time.Time `bun:"timestamp"`
}

type auditRow struct {
	bun.BaseModel `bun:"table:user_audit"`

	ID          int64     `bun:"id,pk,autoincrement"`
	UserID      int64     `bun:"user_id"`
	OldUsername string    `bun:"old_username"`
	NewUsername string    `bun:"new_username"`
	ChangedAt   time.Time `bun:"changed_at"`
}
