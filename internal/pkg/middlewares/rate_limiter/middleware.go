package rate_limiter

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"logistics/internal/pkg/middlewares/metrics"
	"logistics/pkg/logger"
)

var RejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "http_requests_rate_limited_total",
	Help: "Requests rejected with 429 by the rate limiter",
}, []string{"method", "route"})

const tooManyRequestsBody = `{"error":"Too Many Requests","message":"Rate limit exceeded. Try again later."}`

// qps уходит только в заголовок X-RateLimit-Limit, сам лимит задаёт limiter.
func Middleware(log handlerLogger, qps int, limiter Limiter) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if limiter.Allow() {
				next.ServeHTTP(w, r)
				return
			}

			route := metrics.RouteTemplate(r)
			RejectedTotal.WithLabelValues(r.Method, route).Inc()

			reqLog := log.With(
				logger.NewField("method", r.Method),
				logger.NewField("route", route),
				logger.NewField("remote_addr", r.RemoteAddr),
			)
			reqLog.Warn("rate limit exceeded")

			w.Header().Set("Content-Type", "application/json")
			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(qps))
			w.Header().Set("Retry-After", "1")
			w.WriteHeader(http.StatusTooManyRequests)

			if _, err := w.Write([]byte(tooManyRequestsBody)); err != nil {
				reqLog.Error("failed to write rate limit response", logger.NewField("error", err))
			}
		})
	}
}
