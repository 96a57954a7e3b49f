// Package services содержит логику бизнес-уровня для регистрации,
// входа и выхода пользователей и разрешения сессий.
package services

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"time"

	"github.com/avdeevalex/gameshop/internal/config"
	"github.com/avdeevalex/gameshop/internal/lib/password"
	"github.com/avdeevalex/gameshop/internal/metrics"
	"github.com/avdeevalex/gameshop/internal/models"
	"github.com/avdeevalex/gameshop/internal/services"
	"github.com/avdeevalex/gameshop/internal/storage/repository"
)

// UserRepository описывает контракт для работы с пользователями в базе данных.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его ID.
	CreateUser(ctx context.Context, user models.User) (int64, error)

	// GetUserByUsername возвращает пользователя по имени или ошибку, если не найден.
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUser возвращает пользователя по ID или ошибку, если не найден.
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

// SessionStore описывает контракт хранилища сессий.
type SessionStore interface {
	// Create выпускает новый токен сессии для пользователя.
	Create(ctx context.Context, userID int64, ttl time.Duration) (string, error)
	// Resolve возвращает идентификатор пользователя по токену.
	Resolve(ctx context.Context, token string) (int64, bool, error)
	// Destroy уничтожает сессию по токену.
	Destroy(ctx context.Context, token string) error
}

// AuthService отвечает за регистрацию, вход, выход и разрешение сессий.
type AuthService struct {
	users    UserRepository
	sessions SessionStore
	ttl      config.Sessions
	log      *slog.Logger
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, sessions SessionStore, ttl config.Sessions, log *slog.Logger) *AuthService {
	return &AuthService{
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		log:      log,
	}
}

// Register создает нового пользователя с хэшированием пароля.
// Роль всегда user: права администратора назначаются отдельным механизмом,
// не связанным с регистрацией.
func (s *AuthService) Register(ctx context.Context, req models.RegisterRequest) (int64, error) {
	if req.Password != req.ConfirmPassword {
		return 0, services.ErrPasswordMismatch
	}
	if !password.IsStrong(req.Password) {
		return 0, services.ErrWeakPassword
	}

	hashed, err := password.GetHash(req.Password)
	if err != nil {
		return 0, err
	}
	user := models.User{
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	id, err := s.users.CreateUser(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrUsernameExists):
			return 0, services.ErrUsernameTaken
		case errors.Is(err, repository.ErrEmailExists):
			return 0, services.ErrEmailTaken
		}
		return 0, err
	}

	s.log.Info("registered new user", slog.Int64("id", id), slog.String("username", req.Username))
	metrics.RegistrationsTotal.Inc()
	return id, nil
}

// Login проверяет пароль пользователя и выпускает токен сессии.
// Неизвестное имя и неверный пароль дают одну и ту же ошибку,
// чтобы по ответу нельзя было перебирать имена пользователей.
func (s *AuthService) Login(ctx context.Context, username, rawPassword string, remember bool) (string, *models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil, services.ErrInvalidCredentials
		}
		return "", nil, err
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, services.ErrInvalidCredentials
	}

	ttl := s.ttl.TokenTTL
	if remember {
		ttl = s.ttl.RememberTTL
	}
	token, err := s.sessions.Create(ctx, user.ID, ttl)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

// Logout уничтожает сессию по токену.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}

// ResolveSession возвращает пользователя по токену сессии.
// Отсутствующая или истекшая сессия даёт ErrNotFound.
func (s *AuthService) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	userID, ok, err := s.sessions.Resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, services.ErrNotFound
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, services.ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
