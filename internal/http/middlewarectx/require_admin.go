package middlewarectx

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/avdeevalex/gameshop/internal/http/response"
)

// RequireAdmin создает middleware для проверки прав администратора.
// Применяется после SessionMiddleware: пользователь уже должен лежать в контексте.
func RequireAdmin(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				log.Error("user missing in context")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("unauthorized"))
				return
			}
			if !user.IsAdmin() {
				log.Error("admin rights required", slog.String("username", user.Username))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Error("admin rights required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
