package service

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/token"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

func (s *Service) Confirm(ctx context.Context, tokenString string) (*models.VerificationResult, error) {
	return s.ProcessVerification(ctx, tokenString, models.ActionConfirm)
}

func (s *Service) Reject(ctx context.Context, tokenString string) (*models.VerificationResult, error) {
	return s.ProcessVerification(ctx, tokenString, models.ActionReject)
}

// ProcessVerification validates tokenString and applies the principal's
// decision. The token must be the one currently stored on a pending record;
// otherwise ErrAlreadyProcessed is returned and nothing changes.
func (s *Service) ProcessVerification(ctx context.Context, tokenString string, action models.Action) (*models.VerificationResult, error) {
	ctx, span := s.tracer.Start(ctx, "nominee.ProcessVerification")
	defer span.End()

	if action != models.ActionConfirm && action != models.ActionReject {
		return nil, models.ErrInvalidAction
	}
	if tokenString == "" {
		return nil, dErrors.New(dErrors.CodeValidation, "token is required")
	}

	payload, err := s.tokens.Validate(tokenString)
	if err != nil {
		s.logAudit(ctx, string(audit.EventVerificationRefused),
			"reason", refusalReason(err),
		)
		return nil, s.fail(span, err)
	}
	span.SetAttributes(
		attribute.String("nominee.id", payload.NomineeID.String()),
		attribute.String("nominee.action", string(action)),
	)

	n, err := s.find(ctx, payload.NomineeID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if n.LinkedPrincipalID != payload.LinkedPrincipalID {
		s.logAudit(ctx, string(audit.EventVerificationRefused),
			"nominee_id", n.ID.String(),
			"principal_id", payload.LinkedPrincipalID.String(),
			"reason", "principal_mismatch",
		)
		return nil, token.ErrTokenInvalid
	}
	if !n.IsPending() {
		return nil, models.ErrAlreadyProcessed
	}

	now := requestcontext.Now(ctx)
	var decided *models.Nominee
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		decided, err = s.nominees.ConsumeVerificationToken(ctx, n.ID, tokenString, action, now)
		if err != nil {
			switch {
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				return models.ErrAlreadyProcessed
			case errors.Is(err, sentinel.ErrNotFound):
				return models.ErrNomineeNotFound
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to apply verification decision")
		}
		return s.emitCompliance(ctx, audit.Event{
			PrincipalID: decided.LinkedPrincipalID,
			NomineeID:   decided.ID,
			Subject:     decided.ID.String(),
			Action:      string(decisionEvent(action)),
			Decision:    string(decided.VerificationStatus),
		})
	})
	if err != nil {
		return nil, s.fail(span, err)
	}

	if s.metrics != nil {
		s.metrics.IncNomineeDecision(string(action))
	}
	s.logger.InfoContext(ctx, "nominee verification processed",
		"nominee_id", decided.ID.String(),
		"principal_id", decided.LinkedPrincipalID.String(),
		"status", string(decided.VerificationStatus),
	)
	return &models.VerificationResult{
		NomineeID:          decided.ID,
		VerificationStatus: decided.VerificationStatus,
		LinkedUserVerified: decided.LinkedUserVerified,
		IsActive:           decided.IsActive,
	}, nil
}

func decisionEvent(action models.Action) audit.AuditEvent {
	if action == models.ActionConfirm {
		return audit.EventNomineeVerified
	}
	return audit.EventNomineeRejected
}

func refusalReason(err error) string {
	if errors.Is(err, token.ErrTokenExpired) {
		return "token_expired"
	}
	return "token_invalid"
}
