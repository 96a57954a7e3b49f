// Package sessions реализует хранилище пользовательских сессий поверх Redis.
//
// Сессия — непрозрачный токен, привязанный к идентификатору пользователя.
// Создаётся при входе, уничтожается при выходе; время жизни задаётся
// при создании, флаг "запомнить меня" соответствует увеличенному TTL.
package sessions

import (
	"context"
	"fmt"
	"strconv"

	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "session:"

// Store хранилище сессий.
type Store struct {
	db *redis.Client
}

// NewStore создаёт хранилище сессий поверх готового клиента Redis.
func NewStore(db *redis.Client) *Store {
	return &Store{db: db}
}

// Create выпускает новый токен сессии для пользователя с заданным временем жизни.
func (s *Store) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	const op = "sessions.Create"
	token := uuid.NewString()
	if err := s.db.Set(ctx, keyPrefix+token, strconv.FormatInt(userID, 10), ttl).Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return token, nil
}

// Resolve возвращает идентификатор пользователя по токену сессии.
// Второй результат false означает, что сессии нет или она истекла.
func (s *Store) Resolve(ctx context.Context, token string) (int64, bool, error) {
	const op = "sessions.Resolve"
	val, err := s.db.Get(ctx, keyPrefix+token).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	userID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("%s: %w", op, err)
	}
	return userID, true, nil
}

// Destroy уничтожает сессию по токену. Отсутствующий токен не является ошибкой.
func (s *Store) Destroy(ctx context.Context, token string) error {
	const op = "sessions.Destroy"
	if err := s.db.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
