package api

import (
	"log/slog"
	"net"
	"net/http"

	"github.com/foodgramapp/foodgram-server/internal/http/response"
	"github.com/foodgramapp/foodgram-server/internal/ratelimit"
)

// writeRateLimitMiddleware limits mutating requests per client.
// Reads are never limited. The key is the viewer's user ID when known,
// the client IP otherwise. Returns 429 Too Many Requests when exceeded.
func writeRateLimitMiddleware(limiter *ratelimit.KeyedRateLimiter, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !isMutation(r.Method) {
				next.ServeHTTP(w, r)
				return
			}

			key := "ip:" + clientIP(r)
			if id := viewerID(r.Context()); id != "" {
				key = "user:" + id
			}

			if !limiter.Allow(key) {
				logger.Warn("Rate limit exceeded",
					"key", key,
					"path", r.URL.Path,
				)
				response.TooManyRequests(w, logger)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func isMutation(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	default:
		return false
	}
}

// clientIP returns the host part of RemoteAddr. middleware.RealIP has
// already applied X-Forwarded-For and X-Real-IP by the time this runs.
func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
