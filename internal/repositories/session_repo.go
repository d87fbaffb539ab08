package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nikhilmandava/authgate/internal/models"
	"github.com/redis/go-redis/v9"
)

const sessionPrefix = "session:"
const emailSessionsPrefix = "email:%s:sessions"

// RedisSessionRepository keeps sessions under "session:{token}" with a TTL
// matching the session's validity window, so expiry happens in Redis itself.
// A per-email set is kept as a secondary index for DeleteAllForEmail.
type RedisSessionRepository struct {
	client *redis.Client
}

func NewRedisSessionRepository(client *redis.Client) *RedisSessionRepository {
	return &RedisSessionRepository{client: client}
}

func (r *RedisSessionRepository) Create(ctx context.Context, session *models.Session) error {
	jsonData, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	ttl := time.Until(session.ExpiresAt)
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}

	key := sessionPrefix + session.Token
	err = r.client.Set(ctx, key, jsonData, ttl).Err()
	if err != nil {
		return fmt.Errorf("failed to set session: %w", err)
	}

	emailKey := fmt.Sprintf(emailSessionsPrefix, session.Email)
	err = r.client.SAdd(ctx, emailKey, session.Token).Err()
	if err != nil {
		return fmt.Errorf("failed to index session by email: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	key := sessionPrefix + token

	jsonData, err := r.client.Get(ctx, key).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	err = json.Unmarshal([]byte(jsonData), &session)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return &session, nil
}

// Delete removes a session and its index entry, reporting whether a live
// session was actually removed. Unknown and already-expired tokens are a
// no-op so that revocation stays idempotent.
func (r *RedisSessionRepository) Delete(ctx context.Context, token string) (bool, error) {
	session, err := r.GetByToken(ctx, token)
	if err == ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	emailKey := fmt.Sprintf(emailSessionsPrefix, session.Email)
	err = r.client.SRem(ctx, emailKey, token).Err()
	if err != nil {
		return false, fmt.Errorf("failed to remove session from email index: %w", err)
	}

	err = r.client.Del(ctx, sessionPrefix+token).Err()
	if err != nil {
		return false, fmt.Errorf("failed to delete session: %w", err)
	}
	return true, nil
}

// DeleteAllForEmail revokes every session for the given email and drops the
// index set, including entries whose session keys have already expired.
func (r *RedisSessionRepository) DeleteAllForEmail(ctx context.Context, email string) error {
	emailKey := fmt.Sprintf(emailSessionsPrefix, email)
	tokens, err := r.client.SMembers(ctx, emailKey).Result()
	if err != nil {
		return fmt.Errorf("failed to list sessions for email: %w", err)
	}

	for _, token := range tokens {
		if err := r.client.Del(ctx, sessionPrefix+token).Err(); err != nil {
			return fmt.Errorf("failed to delete session: %w", err)
		}
	}

	if err := r.client.Del(ctx, emailKey).Err(); err != nil {
		return fmt.Errorf("failed to delete session index: %w", err)
	}
	return nil
}
