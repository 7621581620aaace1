package service

import (
	"context"
	"errors"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/models"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

// Logout revokes the session the request was authenticated with. Logging out
// an already revoked session succeeds with Revoked=false.
func (s *Service) Logout(ctx context.Context) (*models.LogoutResult, error) {
	sess, err := s.currentSession(ctx)
	if err != nil {
		return nil, err
	}

	err = s.sessions.RevokeSessionIfActive(ctx, sess.ID, requestcontext.Now(ctx))
	switch {
	case err == nil:
	case errors.Is(err, models.ErrSessionRevoked):
		return &models.LogoutResult{SessionID: sess.ID, Revoked: false}, nil
	case errors.Is(err, sentinel.ErrNotFound):
		return nil, dErrors.New(dErrors.CodeNotFound, "session not found")
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}

	s.logAudit(ctx, string(audit.EventSessionRevoked),
		"principal_id", sess.PrincipalID.String(),
		"session_id", sess.ID.String(),
		"reason", "user_initiated",
	)
	return &models.LogoutResult{SessionID: sess.ID, Revoked: true}, nil
}
