package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/testutil"
)

type stubService struct {
	summary *models.SessionSummary
	logout  *models.LogoutResult
	err     error
	seen    id.SessionID
}

func (s *stubService) CurrentSession(ctx context.Context) (*models.SessionSummary, error) {
	s.seen = requestcontext.SessionID(ctx)
	return s.summary, s.err
}

func (s *stubService) Logout(ctx context.Context) (*models.LogoutResult, error) {
	s.seen = requestcontext.SessionID(ctx)
	return s.logout, s.err
}

func newRouter(svc Service) chi.Router {
	r := chi.NewRouter()
	New(svc, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(r)
	return r
}

func TestHandleSession(t *testing.T) {
	principalID := id.NewPrincipalID()
	sessionID := id.NewSessionID()
	svc := &stubService{summary: &models.SessionSummary{SessionID: sessionID, PrincipalID: principalID, IsCurrent: true}}

	req := testutil.WithAuth(testutil.NewRequest(t, http.MethodGet, "/auth/session"), principalID.String(), sessionID.String())
	rr := testutil.DoRequest(newRouter(svc), req)

	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "session_id", sessionID.String())
	assert.Equal(t, sessionID, svc.seen)
}

func TestHandleLogout(t *testing.T) {
	sessionID := id.NewSessionID()
	svc := &stubService{logout: &models.LogoutResult{SessionID: sessionID, Revoked: true}}

	req := testutil.WithAuth(testutil.NewRequest(t, http.MethodPost, "/auth/logout"), id.NewPrincipalID().String(), sessionID.String())
	rr := testutil.DoRequest(newRouter(svc), req)

	testutil.AssertStatusOK(t, rr)
	testutil.AssertJSONContains(t, rr, "revoked", true)
}

func TestHandleSession_Errors(t *testing.T) {
	svc := &stubService{err: dErrors.New(dErrors.CodeUnauthorized, "authentication required")}
	rr := testutil.DoRequest(newRouter(svc), testutil.NewRequest(t, http.MethodGet, "/auth/session"))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
}
