package auth

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	request "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/request"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

// TokenValidator validates bearer access tokens.
type TokenValidator interface {
	ValidateToken(tokenString string) (*Claims, error)
}

// SessionChecker reports whether the session behind a token is still live.
type SessionChecker interface {
	IsSessionActive(ctx context.Context, sessionID id.SessionID) (bool, error)
}

// Claims are the token fields the middleware relies on.
type Claims struct {
	PrincipalID string
	SessionID   string
	JTI         string
}

func writeJSONError(w http.ResponseWriter, status int, errCode, errDesc string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(fmt.Appendf(nil, `{"error":"%s","error_description":"%s"}`, errCode, errDesc))
}

// RequireAuth authenticates the bearer token, checks the session is still
// active when a checker is supplied and stores the principal and session in
// the request context.
func RequireAuth(validator TokenValidator, sessions SessionChecker, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			requestID := request.GetRequestID(ctx)

			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				logger.WarnContext(ctx, "unauthorized access - missing token",
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Missing or invalid Authorization header")
				return
			}

			claims, err := validator.ValidateToken(token)
			if err != nil {
				logger.WarnContext(ctx, "unauthorized access - invalid token",
					"error", err,
					"request_id", requestID,
				)
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
				return
			}

			principalID, err := id.ParsePrincipalID(claims.PrincipalID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid token subject")
				return
			}
			sessionID, err := id.ParseSessionID(claims.SessionID)
			if err != nil {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Invalid token session")
				return
			}

			if sessions != nil {
				active, err := sessions.IsSessionActive(ctx, sessionID)
				if err != nil {
					logger.ErrorContext(ctx, "failed to check session state",
						"error", err,
						"request_id", requestID,
					)
					writeJSONError(w, http.StatusInternalServerError, "internal_error", "Failed to validate token")
					return
				}
				if !active {
					logger.WarnContext(ctx, "unauthorized access - session revoked",
						"session_id", sessionID.String(),
						"request_id", requestID,
					)
					writeJSONError(w, http.StatusUnauthorized, "unauthorized", "Session has been revoked")
					return
				}
			}

			ctx = requestcontext.WithPrincipalID(ctx, principalID)
			ctx = requestcontext.WithSessionID(ctx, sessionID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
