package testutil

import (
	"context"
	"net/http"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

// WithPrincipalID adds a principal ID to the request context the way the
// auth middleware would. Invalid IDs are ignored.
func WithPrincipalID(req *http.Request, principalID string) *http.Request {
	if parsed, err := id.ParsePrincipalID(principalID); err == nil {
		return req.WithContext(requestcontext.WithPrincipalID(req.Context(), parsed))
	}
	return req
}

// WithSessionID adds a session ID to the request context.
func WithSessionID(req *http.Request, sessionID string) *http.Request {
	if parsed, err := id.ParseSessionID(sessionID); err == nil {
		return req.WithContext(requestcontext.WithSessionID(req.Context(), parsed))
	}
	return req
}

// WithAuth adds both principal and session IDs, the usual state for an
// authenticated request.
func WithAuth(req *http.Request, principalID, sessionID string) *http.Request {
	return WithSessionID(WithPrincipalID(req, principalID), sessionID)
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}
