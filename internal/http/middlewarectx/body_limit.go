package middlewarectx

import "net/http"

// BodyLimitMiddleware ограничивает размер тела запроса.
// Превышение лимита проявится как ошибка чтения тела в обработчике.
func BodyLimitMiddleware(maxBytes int64) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}
