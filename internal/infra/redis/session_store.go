package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Mishnah7/quiz-bot/internal/domain"
	"github.com/redis/go-redis/v9"
)

// SessionStore keeps pending quiz sessions in Redis so a bot restart does not
// strand in-flight questions. Sessions are stored as:
//
//	SET quiz:pending:{userID} {json} EX ttl
//
// Expiry doubles as a staleness bound: an answer arriving after the TTL is
// treated as having no active session.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Put(ctx context.Context, userID int64, session domain.PendingSession) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.client.Set(ctx, s.key(userID), payload, s.ttl).Err()
}

func (s *SessionStore) Get(ctx context.Context, userID int64) (domain.PendingSession, bool, error) {
	payload, err := s.client.Get(ctx, s.key(userID)).Bytes()
	if err == redis.Nil {
		return domain.PendingSession{}, false, nil
	}
	if err != nil {
		return domain.PendingSession{}, false, err
	}
	var session domain.PendingSession
	if err := json.Unmarshal(payload, &session); err != nil {
		return domain.PendingSession{}, false, fmt.Errorf("decode session: %w", err)
	}
	return session, true, nil
}

func (s *SessionStore) key(userID int64) string {
	return "quiz:pending:" + strconv.FormatInt(userID, 10)
}
