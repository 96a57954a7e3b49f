package services

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avdeevalex/gameshop/internal/config"
	"github.com/avdeevalex/gameshop/internal/lib/password"
	"github.com/avdeevalex/gameshop/internal/models"
	"github.com/avdeevalex/gameshop/internal/services"
	"github.com/avdeevalex/gameshop/internal/storage/repository"
)

type UsersMock struct{ mock.Mock }

func (m *UsersMock) CreateUser(ctx context.Context, user models.User) (int64, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(int64), args.Error(1)
}
func (m *UsersMock) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
func (m *UsersMock) GetUser(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type SessionsMock struct{ mock.Mock }

func (m *SessionsMock) Create(ctx context.Context, userID int64, ttl time.Duration) (string, error) {
	args := m.Called(ctx, userID, ttl)
	return args.String(0), args.Error(1)
}
func (m *SessionsMock) Resolve(ctx context.Context, token string) (int64, bool, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(int64), args.Bool(1), args.Error(2)
}
func (m *SessionsMock) Destroy(ctx context.Context, token string) error {
	return m.Called(ctx, token).Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func newTTL() config.Sessions {
	return config.Sessions{TokenTTL: 24 * time.Hour, RememberTTL: 720 * time.Hour}
}

func TestAuthService_Register(t *testing.T) {
	validReq := models.RegisterRequest{
		Username:        "user1",
		Email:           "user1@example.com",
		Password:        "Password1!",
		ConfirmPassword: "Password1!",
	}

	tests := []struct {
		name       string
		req        models.RegisterRequest
		setupMocks func(u *UsersMock)
		wantID     int64
		wantErr    error
	}{
		{
			name: "успешная регистрация",
			req:  validReq,
			setupMocks: func(u *UsersMock) {
				u.On("CreateUser", mock.Anything, mock.MatchedBy(func(user models.User) bool {
					return user.Username == "user1" &&
						user.Role == models.RoleUser &&
						user.PasswordHash != "Password1!"
				})).Return(int64(42), nil).Once()
			},
			wantID: 42,
		},
		{
			name: "пароли не совпадают",
			req: models.RegisterRequest{
				Username:        "user1",
				Email:           "user1@example.com",
				Password:        "Password1!",
				ConfirmPassword: "Password2!",
			},
			setupMocks: func(_ *UsersMock) {},
			wantErr:    services.ErrPasswordMismatch,
		},
		{
			name: "слабый пароль",
			req: models.RegisterRequest{
				Username:        "user1",
				Email:           "user1@example.com",
				Password:        "password",
				ConfirmPassword: "password",
			},
			setupMocks: func(_ *UsersMock) {},
			wantErr:    services.ErrWeakPassword,
		},
		{
			name: "имя пользователя занято",
			req:  validReq,
			setupMocks: func(u *UsersMock) {
				u.On("CreateUser", mock.Anything, mock.Anything).
					Return(int64(0), repository.ErrUsernameExists).Once()
			},
			wantErr: services.ErrUsernameTaken,
		},
		{
			name: "почта занята",
			req:  validReq,
			setupMocks: func(u *UsersMock) {
				u.On("CreateUser", mock.Anything, mock.Anything).
					Return(int64(0), repository.ErrEmailExists).Once()
			},
			wantErr: services.ErrEmailTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			tt.setupMocks(users)

			svc := NewAuthService(users, new(SessionsMock), newTTL(), newNoopLogger())

			id, err := svc.Register(context.Background(), tt.req)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantID, id)
			}

			users.AssertExpectations(t)
		})
	}
}

func TestAuthService_Login(t *testing.T) {
	hash, err := password.GetHash("Password1!")
	assert.NoError(t, err)
	user := &models.User{ID: 7, Username: "user1", PasswordHash: hash, Role: models.RoleUser}

	tests := []struct {
		name       string
		username   string
		password   string
		remember   bool
		setupMocks func(u *UsersMock, s *SessionsMock)
		wantToken  string
		wantErr    error
	}{
		{
			name:     "успешный вход",
			username: "user1",
			password: "Password1!",
			setupMocks: func(u *UsersMock, s *SessionsMock) {
				u.On("GetUserByUsername", mock.Anything, "user1").Return(user, nil).Once()
				s.On("Create", mock.Anything, int64(7), 24*time.Hour).
					Return("token-123", nil).Once()
			},
			wantToken: "token-123",
		},
		{
			name:     "вход с запоминанием продлевает сессию",
			username: "user1",
			password: "Password1!",
			remember: true,
			setupMocks: func(u *UsersMock, s *SessionsMock) {
				u.On("GetUserByUsername", mock.Anything, "user1").Return(user, nil).Once()
				s.On("Create", mock.Anything, int64(7), 720*time.Hour).
					Return("token-456", nil).Once()
			},
			wantToken: "token-456",
		},
		{
			name:     "неизвестное имя пользователя",
			username: "ghost",
			password: "Password1!",
			setupMocks: func(u *UsersMock, _ *SessionsMock) {
				u.On("GetUserByUsername", mock.Anything, "ghost").Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "неверный пароль",
			username: "user1",
			password: "WrongPass1!",
			setupMocks: func(u *UsersMock, _ *SessionsMock) {
				u.On("GetUserByUsername", mock.Anything, "user1").Return(user, nil).Once()
			},
			wantErr: services.ErrInvalidCredentials,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			sessions := new(SessionsMock)
			tt.setupMocks(users, sessions)

			svc := NewAuthService(users, sessions, newTTL(), newNoopLogger())

			token, got, err := svc.Login(context.Background(), tt.username, tt.password, tt.remember)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.wantToken, token)
				assert.Equal(t, user.ID, got.ID)
			}

			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}

func TestAuthService_ResolveSession(t *testing.T) {
	user := &models.User{ID: 7, Username: "user1", Role: models.RoleUser}

	tests := []struct {
		name       string
		setupMocks func(u *UsersMock, s *SessionsMock)
		wantErr    error
	}{
		{
			name: "валидная сессия",
			setupMocks: func(u *UsersMock, s *SessionsMock) {
				s.On("Resolve", mock.Anything, "token-123").Return(int64(7), true, nil).Once()
				u.On("GetUser", mock.Anything, int64(7)).Return(user, nil).Once()
			},
		},
		{
			name: "сессия не найдена",
			setupMocks: func(_ *UsersMock, s *SessionsMock) {
				s.On("Resolve", mock.Anything, "token-123").Return(int64(0), false, nil).Once()
			},
			wantErr: services.ErrNotFound,
		},
		{
			name: "пользователь удалён",
			setupMocks: func(u *UsersMock, s *SessionsMock) {
				s.On("Resolve", mock.Anything, "token-123").Return(int64(7), true, nil).Once()
				u.On("GetUser", mock.Anything, int64(7)).Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: services.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UsersMock)
			sessions := new(SessionsMock)
			tt.setupMocks(users, sessions)

			svc := NewAuthService(users, sessions, newTTL(), newNoopLogger())

			got, err := svc.ResolveSession(context.Background(), "token-123")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, user.ID, got.ID)
			}

			users.AssertExpectations(t)
			sessions.AssertExpectations(t)
		})
	}
}
