// Package service orchestrates face enrollment, verification and face login.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/matcher"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/platform/metrics"
	principalmodels "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/attrs"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/tx"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

type TemplateStore interface {
	UpsertActive(ctx context.Context, t *models.Template) (*models.Template, bool, error)
	FindActive(ctx context.Context, ownerID id.PrincipalID) ([]*models.Template, error)
	DeactivateAll(ctx context.Context, ownerID id.PrincipalID) (int, error)
}

type Codec interface {
	Encrypt(d models.Descriptor) (models.EncryptedPayload, error)
	Decrypt(p models.EncryptedPayload) (models.Descriptor, error)
}

type PrincipalResolver interface {
	Resolve(ctx context.Context, ref string) (*principalmodels.Principal, error)
}

type PrincipalStore interface {
	UpdateFaceEnrollment(ctx context.Context, principalID id.PrincipalID, enrolled bool, at *time.Time) error
}

// SessionIssuer creates the session granted by a successful face login.
type SessionIssuer interface {
	IssueSession(ctx context.Context, principalID id.PrincipalID) (*models.Session, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Service is stateless; the stores hold all shared state.
type Service struct {
	templates      TemplateStore
	codec          Codec
	resolver       PrincipalResolver
	principals     PrincipalStore
	sessions       SessionIssuer
	tx             tx.Runner
	auditPublisher AuditPublisher
	logger         *slog.Logger
	metrics        *metrics.Metrics
	threshold      float64
	tracer         trace.Tracer
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

func WithSessionIssuer(issuer SessionIssuer) Option {
	return func(s *Service) {
		s.sessions = issuer
	}
}

func WithTxRunner(runner tx.Runner) Option {
	return func(s *Service) {
		s.tx = runner
	}
}

// WithThreshold overrides matcher.DefaultThreshold. Non-positive values are ignored.
func WithThreshold(threshold float64) Option {
	return func(s *Service) {
		if threshold > 0 {
			s.threshold = threshold
		}
	}
}

func New(templates TemplateStore, codec Codec, resolver PrincipalResolver, principals PrincipalStore, opts ...Option) *Service {
	s := &Service{
		templates:  templates,
		codec:      codec,
		resolver:   resolver,
		principals: principals,
		tx:         tx.NewLocalRunner(),
		threshold:  matcher.DefaultThreshold,
		logger:     slog.Default(),
		tracer:     otel.Tracer("pension/biometric"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Threshold returns the configured match threshold.
func (s *Service) Threshold() float64 {
	return s.threshold
}

// Enroll stores descriptor as the owner's only active template and marks the
// principal as enrolled.
func (s *Service) Enroll(ctx context.Context, ownerRef string, descriptor models.Descriptor, capturedAt time.Time) (*models.EnrollResult, error) {
	ctx, span := s.tracer.Start(ctx, "biometric.Enroll")
	defer span.End()

	if err := descriptor.Validate(); err != nil {
		return nil, err
	}
	p, err := s.resolver.Resolve(ctx, ownerRef)
	if err != nil {
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.String("principal.id", p.ID.String()))

	payload, err := s.codec.Encrypt(descriptor)
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to encrypt face template"))
	}

	now := requestcontext.Now(ctx)
	if capturedAt.IsZero() {
		capturedAt = now
	}
	candidate := &models.Template{
		ID:         id.NewTemplateID(),
		OwnerID:    p.ID,
		Payload:    payload,
		CapturedAt: capturedAt,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	var (
		stored   *models.Template
		replaced bool
	)
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		stored, replaced, err = s.templates.UpsertActive(ctx, candidate)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store face template")
		}
		if err := s.principals.UpdateFaceEnrollment(ctx, p.ID, true, &now); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update principal enrollment")
		}
		return s.emitCompliance(ctx, audit.Event{
			PrincipalID: p.ID,
			Subject:     stored.ID.String(),
			Action:      string(audit.EventFaceEnrolled),
			Decision:    replacedDecision(replaced),
		})
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	if s.metrics != nil {
		s.metrics.IncFaceEnrollment()
	}
	s.logger.InfoContext(ctx, "face enrolled",
		"principal_id", p.ID.String(),
		"template_id", stored.ID.String(),
		"replaced", replaced,
	)
	return &models.EnrollResult{
		PrincipalID: p.ID,
		TemplateID:  stored.ID,
		EnrolledAt:  now,
		Replaced:    replaced,
	}, nil
}

// Verify matches descriptor against the owner's active templates.
func (s *Service) Verify(ctx context.Context, ownerRef string, descriptor models.Descriptor) (*models.VerifyResult, error) {
	ctx, span := s.tracer.Start(ctx, "biometric.Verify")
	defer span.End()

	if err := descriptor.Validate(); err != nil {
		return nil, err
	}
	p, err := s.resolver.Resolve(ctx, ownerRef)
	if err != nil {
		return nil, s.fail(span, err)
	}
	result, err := s.verifyPrincipal(ctx, p.ID, descriptor)
	if err != nil {
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.Bool("face.match", result.IsMatch))

	if s.metrics != nil {
		s.metrics.IncFaceVerification(result.IsMatch)
	}
	s.logAudit(ctx, string(audit.EventFaceVerified),
		"principal_id", p.ID.String(),
		"decision", matchDecision(result.IsMatch),
	)
	return result, nil
}

// FaceLogin requires a prior enrollment and issues a session on a match only.
func (s *Service) FaceLogin(ctx context.Context, ownerRef string, descriptor models.Descriptor) (*models.FaceLoginResult, error) {
	ctx, span := s.tracer.Start(ctx, "biometric.FaceLogin")
	defer span.End()

	if err := descriptor.Validate(); err != nil {
		return nil, err
	}
	p, err := s.resolver.Resolve(ctx, ownerRef)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if !p.FaceEnrolled {
		s.logAudit(ctx, string(audit.EventFaceLoginFailed),
			"principal_id", p.ID.String(),
			"reason", "not_enrolled",
		)
		return nil, s.fail(span, models.ErrNotEnrolled)
	}

	result, err := s.verifyPrincipal(ctx, p.ID, descriptor)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if s.metrics != nil {
		s.metrics.IncFaceLogin(result.IsMatch)
	}
	out := &models.FaceLoginResult{VerifyResult: *result}
	if !result.IsMatch {
		s.logAudit(ctx, string(audit.EventFaceLoginFailed),
			"principal_id", p.ID.String(),
			"reason", "no_match",
		)
		return out, nil
	}

	if s.sessions == nil {
		return nil, s.fail(span, dErrors.New(dErrors.CodeDependency, "session issuance is not configured"))
	}
	session, err := s.sessions.IssueSession(ctx, p.ID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	out.Session = session
	s.logAudit(ctx, string(audit.EventFaceLoginSucceeded),
		"principal_id", p.ID.String(),
		"session_id", session.SessionID.String(),
	)
	return out, nil
}

// CheckStatus reports the principal's enrollment flag.
func (s *Service) CheckStatus(ctx context.Context, ownerRef string) (*models.EnrollmentStatus, error) {
	p, err := s.resolver.Resolve(ctx, ownerRef)
	if err != nil {
		return nil, err
	}
	return &models.EnrollmentStatus{
		PrincipalID: p.ID,
		Enrolled:    p.FaceEnrolled,
		EnrolledAt:  p.FaceEnrollmentDate,
	}, nil
}

// Revoke deactivates every template for the owner and clears the principal's
// enrollment flag so face login is refused until the next enrollment.
func (s *Service) Revoke(ctx context.Context, ownerRef string) (*models.RevokeResult, error) {
	ctx, span := s.tracer.Start(ctx, "biometric.Revoke")
	defer span.End()

	p, err := s.resolver.Resolve(ctx, ownerRef)
	if err != nil {
		return nil, s.fail(span, err)
	}

	var deactivated int
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		deactivated, err = s.templates.DeactivateAll(ctx, p.ID)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to deactivate face templates")
		}
		if err := s.principals.UpdateFaceEnrollment(ctx, p.ID, false, nil); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update principal enrollment")
		}
		return s.emitCompliance(ctx, audit.Event{
			PrincipalID: p.ID,
			Subject:     p.ID.String(),
			Action:      string(audit.EventFaceRevoked),
		})
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	if s.metrics != nil {
		s.metrics.IncFaceRevocation()
	}
	s.logger.InfoContext(ctx, "face enrollment revoked",
		"principal_id", p.ID.String(),
		"templates_deactivated", deactivated,
	)
	return &models.RevokeResult{PrincipalID: p.ID, TemplatesDeactivated: deactivated}, nil
}

func (s *Service) verifyPrincipal(ctx context.Context, principalID id.PrincipalID, descriptor models.Descriptor) (*models.VerifyResult, error) {
	templates, err := s.templates.FindActive(ctx, principalID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load face templates")
	}
	if len(templates) == 0 {
		return nil, models.ErrNoEnrollment
	}

	candidates := make([]matcher.Candidate, 0, len(templates))
	for _, t := range templates {
		stored, err := s.codec.Decrypt(t.Payload)
		if err != nil {
			s.logger.ErrorContext(ctx, "face template decryption failed",
				"principal_id", principalID.String(),
				"template_id", t.ID.String(),
				"error", err,
			)
			return nil, err
		}
		candidates = append(candidates, matcher.Candidate{TemplateID: t.ID, Descriptor: stored})
	}

	match, err := matcher.BestMatch(descriptor, candidates)
	if err != nil {
		return nil, err
	}
	if !match.Found {
		return nil, models.ErrNoEnrollment
	}
	if s.metrics != nil {
		s.metrics.ObserveMatchDistance(match.Distance)
	}
	return &models.VerifyResult{
		PrincipalID: principalID,
		IsMatch:     matcher.IsMatch(match.Distance, s.threshold),
		Distance:    match.Distance,
		Threshold:   s.threshold,
		Confidence:  matcher.Confidence(match.Distance, s.threshold),
	}, nil
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

// logAudit records operational events; publish failures are only logged.
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
		PrincipalID: principalID,
		Subject:     principalID.String(),
		Action:      event,
		Decision:    attrs.ExtractString(attributes, "decision"),
		Reason:      attrs.ExtractString(attributes, "reason"),
	}); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "event", event, "error", err)
	}
}

func (s *Service) fail(span trace.Span, err error) error {
	var de *dErrors.Error
	if !errors.As(err, &de) || de.Code == dErrors.CodeInternal {
		span.RecordError(err)
		span.SetStatus(codes.Error, "biometric operation failed")
	}
	return err
}

func replacedDecision(replaced bool) string {
	if replaced {
		return "replaced"
	}
	return "created"
}

func matchDecision(matched bool) string {
	if matched {
		return "match"
	}
	return "no_match"
}
