package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/MaruthamSatishReddy/easyToBuy/internal/iam/repository"
)

// sessionKeyPrefix префикс ключей сессий в Redis
const sessionKeyPrefix = "session:"

// SessionRepository хранилище сессий на Redis.
// TTL ключа служит временем жизни сессии, истёкшие сессии Redis удаляет сам.
type SessionRepository struct {
	client *redis.Client
}

// NewSessionRepository создаёт репозиторий сессий
func NewSessionRepository(client *redis.Client) *SessionRepository {
	return &SessionRepository{client: client}
}

// Save сохраняет сессию с TTL
func (r *SessionRepository) Save(ctx context.Context, sessionID string, userID int64, ttl time.Duration) error {
	key := sessionKeyPrefix + sessionID
	if err := r.client.Set(ctx, key, userID, ttl).Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}
	return nil
}

// Get возвращает userID по идентификатору сессии
func (r *SessionRepository) Get(ctx context.Context, sessionID string) (int64, error) {
	key := sessionKeyPrefix + sessionID
	value, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, repository.ErrSessionNotFound
		}
		return 0, fmt.Errorf("get session: %w", err)
	}

	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("parse session value: %w", err)
	}
	return userID, nil
}

// Delete удаляет сессию
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	key := sessionKeyPrefix + sessionID
	if err := r.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}
