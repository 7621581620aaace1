// Package middleware applies the rate limiter to HTTP requests.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/ratelimit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/httputil"
	metadata "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/metadata"
	request "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/request"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

type Limiter interface {
	Check(ctx context.Context, class ratelimit.Class, client string) (*ratelimit.Result, error)
}

// Classifier picks the limit class for a request; ok is false for requests
// that are not limited.
type Classifier func(r *http.Request) (class ratelimit.Class, ok bool)

type exceededResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	RetryAfter       int    `json:"retry_after"`
}

// RateLimit limits classified requests per client IP. Limiter errors let the
// request through.
func RateLimit(limiter Limiter, classify Classifier, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			class, ok := classify(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			ip := requestcontext.ClientIP(ctx)
			if ip == "" {
				ip = metadata.ClientIPFromRequest(r)
			}

			res, err := limiter.Check(ctx, class, ip)
			if err != nil {
				logger.ErrorContext(ctx, "rate limit check failed",
					"class", string(class),
					"error", err,
					"request_id", request.GetRequestID(ctx),
				)
				next.ServeHTTP(w, r)
				return
			}

			if res.Limit > 0 {
				w.Header().Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
				w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(res.Remaining))
				w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))
			}
			if !res.Allowed {
				logger.WarnContext(ctx, "rate limit exceeded",
					"class", string(class),
					"path", r.URL.Path,
					"request_id", request.GetRequestID(ctx),
				)
				w.Header().Set("Retry-After", strconv.Itoa(res.RetryAfter))
				httputil.WriteJSON(w, http.StatusTooManyRequests, exceededResponse{
					Error:            "rate_limit_exceeded",
					ErrorDescription: "too many requests, try again later",
					RetryAfter:       res.RetryAfter,
				})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// ByRoute classifies POST requests by exact path.
func ByRoute(routes map[string]ratelimit.Class) Classifier {
	return func(r *http.Request) (ratelimit.Class, bool) {
		if r.Method != http.MethodPost {
			return "", false
		}
		class, ok := routes[r.URL.Path]
		return class, ok
	}
}
