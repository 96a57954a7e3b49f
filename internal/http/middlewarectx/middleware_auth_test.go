package middlewarectx

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/avdeevalex/gameshop/internal/models"
)

// MockResolver реализует интерфейс SessionResolver
type MockResolver struct {
	mock.Mock
}

func (m *MockResolver) ResolveSession(ctx context.Context, token string) (*models.User, error) {
	args := m.Called(ctx, token)
	if res := args.Get(0); res != nil {
		return res.(*models.User), args.Error(1)
	}
	return nil, args.Error(1)
}

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestSessionMiddleware(t *testing.T) {
	logger := newNoopLogger()
	user := &models.User{ID: 1, Username: "user1", Role: models.RoleUser}

	tests := []struct {
		name           string
		authHeader     string
		setupMock      func(*MockResolver)
		wantStatusCode int
		wantBody       string
		wantNextCalled bool
	}{
		{
			name:       "валидный токен",
			authHeader: "Bearer token-123",
			setupMock: func(m *MockResolver) {
				m.On("ResolveSession", mock.Anything, "token-123").Return(user, nil)
			},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "нет заголовка",
			authHeader:     "",
			setupMock:      func(_ *MockResolver) {},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "missing or invalid authorization header",
		},
		{
			name:           "заголовок без Bearer",
			authHeader:     "Basic abc",
			setupMock:      func(_ *MockResolver) {},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "missing or invalid authorization header",
		},
		{
			name:       "истекшая сессия",
			authHeader: "Bearer expired-token",
			setupMock: func(m *MockResolver) {
				m.On("ResolveSession", mock.Anything, "expired-token").
					Return(nil, errors.New("session not found"))
			},
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "invalid or expired session",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resolver := new(MockResolver)
			tt.setupMock(resolver)

			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				nextCalled = true
				got, ok := UserFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, user.ID, got.ID)
				token, ok := TokenFromContext(r.Context())
				assert.True(t, ok)
				assert.Equal(t, "token-123", token)
			})

			req := httptest.NewRequest(http.MethodGet, "/orders", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			SessionMiddleware(resolver, logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			if tt.wantBody != "" {
				assert.True(t, strings.Contains(w.Body.String(), tt.wantBody),
					"response body should contain %s, got %s", tt.wantBody, w.Body.String())
			}

			resolver.AssertExpectations(t)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	logger := newNoopLogger()

	tests := []struct {
		name           string
		user           *models.User
		wantStatusCode int
		wantBody       string
		wantNextCalled bool
	}{
		{
			name:           "администратор проходит",
			user:           &models.User{ID: 1, Username: "root", Role: models.RoleAdmin},
			wantStatusCode: http.StatusOK,
			wantNextCalled: true,
		},
		{
			name:           "обычный пользователь получает 403",
			user:           &models.User{ID: 2, Username: "user1", Role: models.RoleUser},
			wantStatusCode: http.StatusForbidden,
			wantBody:       "admin rights required",
		},
		{
			name:           "нет пользователя в контексте",
			user:           nil,
			wantStatusCode: http.StatusUnauthorized,
			wantBody:       "unauthorized",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			nextCalled := false
			next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				nextCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/admin/orders", nil)
			if tt.user != nil {
				req = req.WithContext(context.WithValue(req.Context(), User, tt.user))
			}
			w := httptest.NewRecorder()

			RequireAdmin(logger)(next).ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatusCode, w.Code)
			assert.Equal(t, tt.wantNextCalled, nextCalled)
			if tt.wantBody != "" {
				assert.True(t, strings.Contains(w.Body.String(), tt.wantBody),
					"response body should contain %s, got %s", tt.wantBody, w.Body.String())
			}
		})
	}
}
