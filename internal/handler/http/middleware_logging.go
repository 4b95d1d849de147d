package http

import (
	"net/http"
	"time"

	"remodel-portal/internal/logger"
)

// withLogging emits one access-log entry per request. The caller id header is
// recorded as sent; whether it resolves to an account is the auth
// middleware's concern.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{
			ResponseWriter: w,
		}

		next.ServeHTTP(lw, r)

		entry := log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", lw.status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size)
		if callerID := r.Header.Get(userIDHeader); callerID != "" {
			entry = entry.Str("caller_id", callerID)
		}
		entry.Send()
	})
}
