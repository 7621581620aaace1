package adapters

import (
	"context"

	authmodels "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
)

type SessionService interface {
	IssueSession(ctx context.Context, principalID id.PrincipalID) (*authmodels.IssuedSession, error)
}

// SessionAdapter lets the biometric service issue face-login sessions
// without depending on the auth package's types.
type SessionAdapter struct {
	sessions SessionService
}

func NewSessionAdapter(sessions SessionService) *SessionAdapter {
	return &SessionAdapter{sessions: sessions}
}

func (a *SessionAdapter) IssueSession(ctx context.Context, principalID id.PrincipalID) (*models.Session, error) {
	issued, err := a.sessions.IssueSession(ctx, principalID)
	if err != nil {
		return nil, err
	}
	return &models.Session{
		SessionID:   issued.Session.ID,
		AccessToken: issued.AccessToken,
		TokenType:   issued.TokenType,
		ExpiresAt:   issued.Session.ExpiresAt,
	}, nil
}
