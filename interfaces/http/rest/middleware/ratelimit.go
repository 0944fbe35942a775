package middleware

import (
	"net/http"
	"strconv"

	"snipvault/pkg/auth"
	"snipvault/pkg/common"
	apperrors "snipvault/pkg/errors"
	"snipvault/pkg/observability"
)

// RateLimit enforces the fixed-window limit for one action. The counter
// key prefers the authenticated user and falls back to the client IP,
// so anonymous endpoints are still covered.
//
// Responses carry X-RateLimit-Limit, X-RateLimit-Remaining and
// X-RateLimit-Reset; rejections add Retry-After.
func RateLimit(limiter auth.RateLimiter, action string, metrics *observability.Collector) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identifier := getClientIP(r)
			if user, err := auth.GetUserFromContext(r.Context()); err == nil {
				identifier = user.UserID
			}

			result := limiter.CheckAndIncrement(r.Context(), identifier, action)

			w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
			w.Header().Set("X-RateLimit-Reset", strconv.Itoa(result.ResetIn))

			if !result.Allowed {
				if metrics != nil {
					metrics.RateLimited.WithLabelValues(action).Inc()
				}
				w.Header().Set("Retry-After", strconv.Itoa(result.ResetIn))
				common.RespondAppError(w, apperrors.NewRateLimitedError(result.Limit, result.ResetIn))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
