// Package service issues, inspects and revokes face-login sessions.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/device"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/attrs"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

const DefaultSessionTTL = 15 * time.Minute

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	RevokeSessionIfActive(ctx context.Context, sessionID id.SessionID, now time.Time) error
}

type TokenGenerator interface {
	GenerateAccessToken(principalID id.PrincipalID, sessionID id.SessionID, expiresIn time.Duration) (string, string, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

type Service struct {
	sessions       SessionStore
	tokens         TokenGenerator
	auditPublisher AuditPublisher
	logger         *slog.Logger
	sessionTTL     time.Duration
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

// WithSessionTTL sets session and access token lifetime. Non-positive values are ignored.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.sessionTTL = ttl
		}
	}
}

func New(sessions SessionStore, tokens TokenGenerator, opts ...Option) *Service {
	s := &Service{
		sessions:   sessions,
		tokens:     tokens,
		logger:     slog.Default(),
		sessionTTL: DefaultSessionTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// IssueSession persists a new active session for principalID and signs its
// access token. Device and client IP come from the request context.
func (s *Service) IssueSession(ctx context.Context, principalID id.PrincipalID) (*models.IssuedSession, error) {
	if principalID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "principal ID required")
	}

	now := requestcontext.Now(ctx)
	sess := &models.Session{
		ID:                id.NewSessionID(),
		PrincipalID:       principalID,
		Status:            models.SessionStatusActive,
		DeviceDisplayName: device.ParseUserAgent(requestcontext.UserAgent(ctx)),
		ClientIP:          requestcontext.ClientIP(ctx),
		CreatedAt:         now,
		ExpiresAt:         now.Add(s.sessionTTL),
	}

	token, jti, err := s.tokens.GenerateAccessToken(principalID, sess.ID, s.sessionTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to sign access token")
	}
	sess.LastAccessTokenJTI = jti

	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist session")
	}

	s.logAudit(ctx, string(audit.EventSessionCreated),
		"principal_id", principalID.String(),
		"session_id", sess.ID.String(),
		"device", sess.DeviceDisplayName,
	)

	return &models.IssuedSession{
		Session:     sess,
		AccessToken: token,
		TokenType:   models.TokenTypeBearer,
	}, nil
}

// IsSessionActive reports false for unknown, expired and revoked sessions.
func (s *Service) IsSessionActive(ctx context.Context, sessionID id.SessionID) (bool, error) {
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return false, nil
		}
		return false, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	return sess.IsActive(requestcontext.Now(ctx)), nil
}

// CurrentSession describes the session the request was authenticated with.
func (s *Service) CurrentSession(ctx context.Context) (*models.SessionSummary, error) {
	sess, err := s.currentSession(ctx)
	if err != nil {
		return nil, err
	}
	summary := sess.Summary()
	return &summary, nil
}

func (s *Service) currentSession(ctx context.Context) (*models.Session, error) {
	principalID := requestcontext.PrincipalID(ctx)
	sessionID := requestcontext.SessionID(ctx)
	if principalID.IsNil() || sessionID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "session not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if sess.PrincipalID != principalID {
		s.logger.WarnContext(ctx, "session owner mismatch",
			"session_id", sessionID.String(),
			"principal_id", principalID.String(),
		)
		return nil, dErrors.New(dErrors.CodeForbidden, "forbidden")
	}
	return sess, nil
}

// logAudit records session events; publish failures are only logged.
func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
	if s.auditPublisher == nil {
		return
	}
	principalID, err := id.ParsePrincipalID(attrs.ExtractString(attributes, "principal_id"))
	if err != nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Category:    audit.CategorySecurity,
		PrincipalID: principalID,
		Subject:     attrs.ExtractString(attributes, "session_id"),
		Action:      event,
		Reason:      attrs.ExtractString(attributes, "reason"),
		RequestID:   requestcontext.RequestID(ctx),
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", event, "error", err)
	}
}
