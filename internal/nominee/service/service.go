// Package service runs the nominee succession workflow: registration,
// principal confirmation or rejection, and life-event documents.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/token"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/notification"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/metrics"
	principalmodels "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/storage"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/attrs"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/tx"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

type NomineeStore interface {
	Create(ctx context.Context, n *models.Nominee) error
	FindByID(ctx context.Context, nomineeID id.NomineeID) (*models.Nominee, error)
	FindByPrincipal(ctx context.Context, principalID id.PrincipalID, includeRejected bool) (*models.Nominee, error)
	ExistsByEmailOrGovernmentID(ctx context.Context, address, governmentID string, includeRejected bool) (bool, error)
	ReplaceVerificationToken(ctx context.Context, nomineeID id.NomineeID, token string, now time.Time) error
	UpdateNotification(ctx context.Context, nomineeID id.NomineeID, channels []string, now time.Time) error
	ConsumeVerificationToken(ctx context.Context, nomineeID id.NomineeID, token string, action models.Action, now time.Time) (*models.Nominee, error)
	AddDocument(ctx context.Context, nomineeID id.NomineeID, doc models.Document) error
	RemoveDocument(ctx context.Context, nomineeID id.NomineeID, documentID id.DocumentID) (*models.Document, error)
	ReviewDocument(ctx context.Context, nomineeID id.NomineeID, documentID id.DocumentID, status models.DocumentStatus, now time.Time) (*models.Document, error)
	UpdateLinkedStatus(ctx context.Context, nomineeID id.NomineeID, update models.LinkedStatusUpdate, now time.Time) (*models.Nominee, error)
}

type PrincipalDirectory interface {
	FindByGovernmentID(ctx context.Context, governmentID string) (*principalmodels.Principal, error)
}

type TokenIssuer interface {
	Issue(nomineeID id.NomineeID, principalID id.PrincipalID, purpose string, ttl time.Duration) (string, error)
	Validate(tokenString string) (*token.Payload, error)
}

type Notifier interface {
	Send(ctx context.Context, msg notification.Message, channels ...notification.Channel) []notification.Outcome
}

type DocumentStorage interface {
	Put(ctx context.Context, key string, obj storage.Object) (string, error)
	Delete(ctx context.Context, key string) error
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is stateless; the stores hold all shared state.
type Service struct {
	nominees       NomineeStore
	principals     PrincipalDirectory
	tokens         TokenIssuer
	notifier       Notifier
	documents      DocumentStorage
	tx             tx.Runner
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	tracer         trace.Tracer

	rejectedBlocksReregistration bool
	tokenTTL                     time.Duration
	verificationURL              string
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithTxRunner(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

// WithRejectedBlocksReregistration controls whether a rejected nominee still
// counts as the principal's nominee. Defaults to true.
func WithRejectedBlocksReregistration(blocks bool) Option {
	return func(s *Service) {
		s.rejectedBlocksReregistration = blocks
	}
}

func WithTokenTTL(ttl time.Duration) Option {
	return func(s *Service) {
		if ttl > 0 {
			s.tokenTTL = ttl
		}
	}
}

// WithVerificationURL sets the link sent to principals; the token is
// appended as the token query parameter.
func WithVerificationURL(u string) Option {
	return func(s *Service) {
		s.verificationURL = u
	}
}

func New(nominees NomineeStore, principals PrincipalDirectory, tokens TokenIssuer, notifier Notifier, documents DocumentStorage, opts ...Option) *Service {
	s := &Service{
		nominees:                     nominees,
		principals:                   principals,
		tokens:                       tokens,
		notifier:                     notifier,
		documents:                    documents,
		tx:                           tx.NewLocalRunner(),
		logger:                       slog.Default(),
		tracer:                       otel.Tracer("pension/nominee"),
		rejectedBlocksReregistration: true,
		tokenTTL:                     token.DefaultTTL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get returns the nominee with its documents.
func (s *Service) Get(ctx context.Context, nomineeID id.NomineeID) (*models.Nominee, error) {
	return s.find(ctx, nomineeID)
}

// FindByPrincipal returns the principal's most recent nominee, rejected or not.
func (s *Service) FindByPrincipal(ctx context.Context, principalID id.PrincipalID) (*models.Nominee, error) {
	n, err := s.nominees.FindByPrincipal(ctx, principalID, true)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, models.ErrNomineeNotFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load nominee")
	}
	return n, nil
}

func (s *Service) find(ctx context.Context, nomineeID id.NomineeID) (*models.Nominee, error) {
	n, err := s.nominees.FindByID(ctx, nomineeID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, models.ErrNomineeNotFound
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load nominee")
	}
	return n, nil
}

// emitCompliance is fail-closed: callers run it inside the unit of work.
func (s *Service) emitCompliance(ctx context.Context, event audit.Event) error {
	if s.auditPublisher == nil {
		return nil
	}
	if err := s.auditPublisher.Emit(ctx, event); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record audit event")
	}
	return nil
}

// logAudit records operational and security events; publish failures are
// only logged.
func (s *Service) logAudit(ctx context.Context, event string, attributes ...any) {
	if requestID := requestcontext.RequestID(ctx); requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", event, "log_type", "audit")
	s.logger.InfoContext(ctx, event, args...)
	if s.auditPublisher == nil {
		return
	}
	e := audit.Event{
		Action:    event,
		Decision:  attrs.ExtractString(attributes, "decision"),
		Reason:    attrs.ExtractString(attributes, "reason"),
		RequestID: attrs.ExtractString(attributes, "request_id"),
	}
	if principalID, err := id.ParsePrincipalID(attrs.ExtractString(attributes, "principal_id")); err == nil {
		e.PrincipalID = principalID
	}
	if nomineeID, err := id.ParseNomineeID(attrs.ExtractString(attributes, "nominee_id")); err == nil {
		e.NomineeID = nomineeID
		e.Subject = nomineeID.String()
	}
	if err := s.auditPublisher.Emit(ctx, e); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", event, "error", err)
	}
}

func (s *Service) fail(span trace.Span, err error) error {
	var de *dErrors.Error
	if !errors.As(err, &de) || de.Code == dErrors.CodeInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, "nominee operation failed")
	}
	return err
}
