// Package middlewarectx содержит HTTP middleware для проверки сессий и прав доступа.
//
// SessionMiddleware проверяет наличие токена сессии в заголовке Authorization,
// разрешает его в пользователя через сервис аутентификации и в случае успеха
// добавляет пользователя в контекст запроса для дальнейшего использования
// в обработчиках.
//
// В случае ошибки проверки возвращает HTTP 401 Unauthorized с сообщением об ошибке.
package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/avdeevalex/gameshop/internal/http/response"
	"github.com/avdeevalex/gameshop/internal/lib/sl"
	"github.com/avdeevalex/gameshop/internal/models"
)

// Key тип для ключей контекста HTTP-запроса.
type Key string

const (
	// User — ключ для пользователя в контексте
	User Key = "user"
	// SessionToken — ключ для токена сессии в контексте
	SessionToken Key = "session_token"
)

// SessionResolver описывает интерфейс сервиса для разрешения токена сессии.
type SessionResolver interface {
	ResolveSession(ctx context.Context, token string) (*models.User, error)
}

// UserFromContext возвращает пользователя, положенного в контекст SessionMiddleware.
func UserFromContext(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(User).(*models.User)
	return user, ok && user != nil
}

// TokenFromContext возвращает токен текущей сессии из контекста.
func TokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionToken).(string)
	return token, ok && token != ""
}

// SessionMiddleware возвращает HTTP middleware, который проверяет токен сессии
// в заголовке Authorization.
//
// Если токен валиден, добавляет пользователя и токен в контекст запроса,
// иначе возвращает ошибку с HTTP статусом 401 Unauthorized.
func SessionMiddleware(resolver SessionResolver, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			const op = "middlewarectx.SessionMiddleware"

			log := log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			if !strings.HasPrefix(authHeader, "Bearer ") {
				log.Error("missing or invalid authorization header")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("missing or invalid authorization header"))
				return
			}
			token := strings.TrimPrefix(authHeader, "Bearer ")

			user, err := resolver.ResolveSession(r.Context(), token)
			if err != nil {
				log.Error("invalid or expired session", sl.Err(err))
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("invalid or expired session"))
				return
			}
			ctx := context.WithValue(r.Context(), User, user)
			ctx = context.WithValue(ctx, SessionToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
