package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

type stubValidator struct {
	claims *Claims
	err    error
}

func (s stubValidator) ValidateToken(string) (*Claims, error) { return s.claims, s.err }

type stubSessions struct {
	active bool
	err    error
}

func (s stubSessions) IsSessionActive(context.Context, id.SessionID) (bool, error) {
	return s.active, s.err
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	principalID := id.NewPrincipalID()
	sessionID := id.NewSessionID()
	valid := &Claims{PrincipalID: principalID.String(), SessionID: sessionID.String(), JTI: "jti"}

	var gotPrincipal id.PrincipalID
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPrincipal = requestcontext.PrincipalID(r.Context())
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name      string
		header    string
		validator TokenValidator
		sessions  SessionChecker
		want      int
	}{
		{"missing header", "", stubValidator{claims: valid}, nil, http.StatusUnauthorized},
		{"invalid token", "Bearer bad", stubValidator{err: errors.New("bad")}, nil, http.StatusUnauthorized},
		{"malformed subject", "Bearer t", stubValidator{claims: &Claims{PrincipalID: "x", SessionID: sessionID.String()}}, nil, http.StatusUnauthorized},
		{"revoked session", "Bearer t", stubValidator{claims: valid}, stubSessions{active: false}, http.StatusUnauthorized},
		{"session lookup failure", "Bearer t", stubValidator{claims: valid}, stubSessions{err: errors.New("redis down")}, http.StatusInternalServerError},
		{"active session", "Bearer t", stubValidator{claims: valid}, stubSessions{active: true}, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotPrincipal = id.PrincipalID{}
			req := httptest.NewRequest(http.MethodGet, "/auth/session", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()
			RequireAuth(tt.validator, tt.sessions, logger)(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.want, rr.Code)
			if tt.want == http.StatusOK {
				assert.Equal(t, principalID, gotPrincipal)
			}
		})
	}
}
