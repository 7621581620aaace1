package models

import (
	"time"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "active"
	SessionStatusRevoked SessionStatus = "revoked"
)

const TokenTypeBearer = "Bearer"

// ErrSessionRevoked is returned when a revoked session is revoked again.
var ErrSessionRevoked = dErrors.New(dErrors.CodeConflict, "session already revoked")

// Session is the server-side record behind a face-login access token.
type Session struct {
	ID                 id.SessionID   `json:"id"`
	PrincipalID        id.PrincipalID `json:"principal_id"`
	Status             SessionStatus  `json:"status"`
	LastAccessTokenJTI string         `json:"last_access_token_jti"`
	DeviceDisplayName  string         `json:"device_display_name"`
	ClientIP           string         `json:"client_ip,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
	ExpiresAt          time.Time      `json:"expires_at"`
	RevokedAt          *time.Time     `json:"revoked_at,omitempty"`
}

func (s *Session) IsActive(now time.Time) bool {
	return s.Status == SessionStatusActive && now.Before(s.ExpiresAt)
}

func (s *Session) CanRevoke() error {
	if s.Status == SessionStatusRevoked {
		return ErrSessionRevoked
	}
	return nil
}

func (s *Session) ApplyRevocation(now time.Time) {
	s.Status = SessionStatusRevoked
	s.RevokedAt = &now
}

// IssuedSession pairs a persisted session with its signed access token.
type IssuedSession struct {
	Session     *Session
	AccessToken string
	TokenType   string
}

type SessionSummary struct {
	SessionID   id.SessionID   `json:"session_id"`
	PrincipalID id.PrincipalID `json:"principal_id"`
	Device      string         `json:"device"`
	IPAddress   string         `json:"ip_address,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	ExpiresAt   time.Time      `json:"expires_at"`
	IsCurrent   bool           `json:"is_current"`
}

type LogoutResult struct {
	SessionID id.SessionID `json:"session_id"`
	Revoked   bool         `json:"revoked"`
}

func (s *Session) Summary() SessionSummary {
	return SessionSummary{
		SessionID:   s.ID,
		PrincipalID: s.PrincipalID,
		Device:      s.DeviceDisplayName,
		IPAddress:   s.ClientIP,
		CreatedAt:   s.CreatedAt,
		ExpiresAt:   s.ExpiresAt,
		IsCurrent:   true,
	}
}
