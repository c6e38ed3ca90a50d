package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/localmart/storefront-gateway/internal/core/domain"
)

const sessionKeyPrefix = "session:"

// Sessions are kept a little past token expiry so an expired session can
// still be refreshed instead of forcing a fresh login.
const refreshGrace = 7 * 24 * time.Hour

// SessionRepository persists sessions in Redis so they survive gateway
// restarts.
type SessionRepository struct {
	client *redis.Client
}

func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Save writes the session, keyed by its id, with a TTL covering the refresh
// grace window.
func (r *SessionRepository) Save(ctx context.Context, s *domain.Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+s.ID, data, refreshGrace).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

// Find loads a session by id, returning domain.ErrSessionNotFound when it
// was never created or has aged out.
func (r *SessionRepository) Find(ctx context.Context, id string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &s, nil
}

// Delete removes a session. Deleting an absent session is not an error;
// logout is idempotent.
func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.client.Del(ctx, sessionKeyPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis del session: %w", err)
	}
	return nil
}
