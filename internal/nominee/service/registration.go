package service

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/token"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/notification"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

// verificationChannels are attempted independently for every verification request.
var verificationChannels = []notification.Channel{notification.ChannelMessage, notification.ChannelVoice}

const recordDeliveryTimeout = 5 * time.Second

// Register creates a pending nominee linked to the principal whose government
// ID is req.UserIDNumber and asks that principal to confirm it.
//
// Checks run in order: duplicate nominee identity, unknown principal,
// principal already has a nominee. Notification failures are reported in
// the result and never fail the registration.
func (s *Service) Register(ctx context.Context, req models.RegisterRequest) (*models.RegistrationResult, error) {
	ctx, span := s.tracer.Start(ctx, "nominee.Register")
	defer span.End()

	req.Normalize()
	if err := req.Validate(); err != nil {
		return nil, err
	}

	duplicate, err := s.nominees.ExistsByEmailOrGovernmentID(ctx, req.Email, req.GovernmentID, s.rejectedBlocksReregistration)
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to check nominee uniqueness"))
	}
	if duplicate {
		return nil, models.ErrDuplicateNominee
	}

	p, err := s.principals.FindByGovernmentID(ctx, req.UserIDNumber)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, principal.ErrPrincipalNotFound
		}
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up principal"))
	}
	span.SetAttributes(attribute.String("principal.id", p.ID.String()))

	_, err = s.nominees.FindByPrincipal(ctx, p.ID, s.rejectedBlocksReregistration)
	switch {
	case err == nil:
		return nil, models.ErrNomineeAlreadyExists
	case !errors.Is(err, sentinel.ErrNotFound):
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up existing nominee"))
	}

	now := requestcontext.Now(ctx)
	n, err := models.NewNominee(id.NewNomineeID(), models.NewNomineeParams{
		Name:              req.Name,
		Email:             req.Email,
		Phone:             req.Phone,
		GovernmentID:      req.GovernmentID,
		Relationship:      req.Relationship,
		LinkedPrincipalID: p.ID,
		LinkedUserDetails: models.LinkedUserDetails{
			Name:         p.Name,
			Email:        p.Email,
			Phone:        p.Phone,
			GovernmentID: p.GovernmentID,
		},
	}, now)
	if err != nil {
		return nil, s.fail(span, err)
	}
	span.SetAttributes(attribute.String("nominee.id", n.ID.String()))

	// The provisional token is minted before the record exists; the current
	// one replaces it once the record is persisted under its permanent ID.
	provisional, err := s.issue(n)
	if err != nil {
		return nil, s.fail(span, err)
	}
	n.VerificationToken = &provisional

	var current string
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.nominees.Create(ctx, n); err != nil {
			switch {
			case errors.Is(err, sentinel.ErrConflict):
				return models.ErrNomineeAlreadyExists
			case errors.Is(err, sentinel.ErrAlreadyUsed):
				return models.ErrDuplicateNominee
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create nominee")
		}
		var err error
		if current, err = s.issue(n); err != nil {
			return err
		}
		if err := s.nominees.ReplaceVerificationToken(ctx, n.ID, current, now); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to store verification token")
		}
		return s.emitCompliance(ctx, audit.Event{
			PrincipalID: p.ID,
			NomineeID:   n.ID,
			Subject:     n.ID.String(),
			Action:      string(audit.EventNomineeRegistered),
			Decision:    string(models.StatusPending),
		})
	})
	if err != nil {
		return nil, s.fail(span, err)
	}
	n.VerificationToken = &current

	if s.metrics != nil {
		s.metrics.IncNomineeRegistered()
	}
	s.logger.InfoContext(ctx, "nominee registered",
		"nominee_id", n.ID.String(),
		"principal_id", p.ID.String(),
	)

	outcomes := s.sendVerification(ctx, n, current)
	return &models.RegistrationResult{Nominee: n, Notifications: outcomes}, nil
}

// ResendVerification issues a fresh token for a pending nominee and sends it
// again. The previous token can no longer be consumed.
func (s *Service) ResendVerification(ctx context.Context, nomineeID id.NomineeID) (*models.RegistrationResult, error) {
	ctx, span := s.tracer.Start(ctx, "nominee.ResendVerification")
	defer span.End()

	n, err := s.find(ctx, nomineeID)
	if err != nil {
		return nil, s.fail(span, err)
	}
	if !n.IsPending() {
		return nil, models.ErrAlreadyProcessed
	}

	current, err := s.issue(n)
	if err != nil {
		return nil, s.fail(span, err)
	}
	now := requestcontext.Now(ctx)
	if err := s.nominees.ReplaceVerificationToken(ctx, n.ID, current, now); err != nil {
		switch {
		case errors.Is(err, sentinel.ErrInvalidState):
			return nil, models.ErrAlreadyProcessed
		case errors.Is(err, sentinel.ErrNotFound):
			return nil, models.ErrNomineeNotFound
		}
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeInternal, "failed to store verification token"))
	}
	n.VerificationToken = &current
	s.logAudit(ctx, string(audit.EventVerificationResent),
		"nominee_id", n.ID.String(),
		"principal_id", n.LinkedPrincipalID.String(),
	)

	outcomes := s.sendVerification(ctx, n, current)
	return &models.RegistrationResult{Nominee: n, Notifications: outcomes}, nil
}

func (s *Service) issue(n *models.Nominee) (string, error) {
	tok, err := s.tokens.Issue(n.ID, n.LinkedPrincipalID, token.PurposeNomineeVerification, s.tokenTTL)
	if err != nil {
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue verification token")
	}
	return tok, nil
}

// sendVerification asks the linked principal to confirm n on every
// verification channel and records which channels accepted the request.
// Recording failures are logged; the outcomes are returned either way.
func (s *Service) sendVerification(ctx context.Context, n *models.Nominee, tok string) []notification.Outcome {
	link := s.verificationLink(tok)
	msg := notification.Message{
		Reference: n.ID.String(),
		Recipient: recipient(n.LinkedUserDetails),
		Subject:   "Confirm your nominee",
		Body: fmt.Sprintf("%s has been registered as your nominee (%s). Confirm or reject this request: %s",
			n.Name, relationshipOrDefault(n.Relationship), link),
		Payload: map[string]string{
			"nominee_id":       n.ID.String(),
			"nominee_name":     n.Name,
			"relationship":     n.Relationship,
			"token":            tok,
			"verification_url": link,
		},
		Urgency: notification.UrgencyNormal,
	}
	outcomes := s.notifier.Send(ctx, msg, verificationChannels...)

	delivered := make([]string, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Delivered {
			delivered = append(delivered, o.Channel.String())
			continue
		}
		s.logAudit(ctx, string(audit.EventNotificationFailed),
			"nominee_id", n.ID.String(),
			"principal_id", n.LinkedPrincipalID.String(),
			"decision", o.Channel.String(),
			"reason", "verification_dispatch_failed",
		)
	}

	now := requestcontext.Now(ctx)
	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordDeliveryTimeout)
	defer cancel()
	if err := s.nominees.UpdateNotification(recordCtx, n.ID, delivered, now); err != nil {
		s.logger.WarnContext(ctx, "failed to record verification delivery",
			"nominee_id", n.ID.String(),
			"error", err,
		)
	}
	n.RecordDelivery(delivered, now)
	return outcomes
}

func (s *Service) verificationLink(tok string) string {
	if s.verificationURL == "" {
		return tok
	}
	u, err := url.Parse(s.verificationURL)
	if err != nil {
		return s.verificationURL + "?token=" + url.QueryEscape(tok)
	}
	q := u.Query()
	q.Set("token", tok)
	u.RawQuery = q.Encode()
	return u.String()
}

func recipient(d models.LinkedUserDetails) notification.Recipient {
	return notification.Recipient{Name: d.Name, Email: d.Email, Phone: d.Phone}
}

func relationshipOrDefault(r string) string {
	if r == "" {
		return "relationship not stated"
	}
	return r
}
