package middleware

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jobtrackr/auth-service/internal/domain"
	appredis "github.com/jobtrackr/auth-service/internal/infrastructure/redis"
	"github.com/jobtrackr/auth-service/internal/transport/http/response"
)

// RateLimiter counts hits within a fixed window, keyed per client.
type RateLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (appredis.Decision, error)
}

// RateLimit caps requests per client IP for a named scope. Limiter errors
// fail open: abuse control must not take authentication down with it.
func RateLimit(limiter RateLimiter, scope string, limit int, window time.Duration, log zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := "ratelimit:" + scope + ":" + clientIP(r)
			decision, err := limiter.Allow(r.Context(), key, limit, window)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, allowing request")
				next.ServeHTTP(w, r)
				return
			}
			if !decision.Allowed {
				if decision.RetryAfter > 0 {
					secs := int(decision.RetryAfter.Round(time.Second) / time.Second)
					if secs < 1 {
						secs = 1
					}
					w.Header().Set("Retry-After", strconv.Itoa(secs))
				}
				response.WriteErr(w, r, domain.ErrRateLimited(scope), log)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// clientIP prefers the first X-Forwarded-For entry set by the edge proxy
// and falls back to the socket address.
func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
