package timeout

import (
	"context"
	"net/http"
	"time"
)

// Middleware ставит дедлайн на контекст запроса; запросы к базе прерываются по нему.
// Контекст уже наследует ongoingCtx сервера через BaseContext.
// Неположительный timeout отключает ограничение.
func Middleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if timeout <= 0 {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
