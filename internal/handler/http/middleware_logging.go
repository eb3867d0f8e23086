package http

import (
	"net/http"
	"time"

	"github.com/notsus/site-backend/internal/logger"
)

// withLogging records an access-log entry for every request: URI, method,
// resulting status code, handling duration and the number of response bytes.
// It relies on withTraceID having already attached a request-scoped logger.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		logger.FromRequest(r).Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", rw.status).
			Dur("duration", time.Since(start)).
			Int("size", rw.size).
			Msg("request handled")
	})
}
