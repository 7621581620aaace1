package service

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/notification"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/storage"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/sentinel"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

// UploadDocument stores the file, appends a pending document to the nominee
// and notifies the linked principal. A death certificate is sent with high
// urgency on every channel. Once the document is persisted the upload
// succeeds whatever the notification outcome.
func (s *Service) UploadDocument(ctx context.Context, req models.UploadDocumentRequest) (*models.UploadResult, error) {
	ctx, span := s.tracer.Start(ctx, "nominee.UploadDocument")
	defer span.End()

	docType, err := req.Validate()
	if err != nil {
		return nil, err
	}
	span.SetAttributes(
		attribute.String("nominee.id", req.NomineeID.String()),
		attribute.String("document.type", string(docType)),
	)

	n, err := s.find(ctx, req.NomineeID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	now := requestcontext.Now(ctx)
	doc := models.Document{
		ID:          id.NewDocumentID(),
		Type:        docType,
		FileName:    filepath.Base(req.FileName),
		ContentType: req.ContentType,
		Size:        req.Size,
		UploadedAt:  now,
		Status:      models.DocumentPending,
	}
	ref, err := s.documents.Put(ctx, models.StorageKey(n.ID, doc.ID, req.FileName), storage.Object{
		Body:        req.Body,
		Size:        req.Size,
		ContentType: req.ContentType,
	})
	if err != nil {
		return nil, s.fail(span, dErrors.Wrap(err, dErrors.CodeDependency, "failed to store document"))
	}
	doc.StorageRef = ref

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		if err := s.nominees.AddDocument(ctx, n.ID, doc); err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return models.ErrNomineeNotFound
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record document")
		}
		event := audit.Event{
			PrincipalID: n.LinkedPrincipalID,
			NomineeID:   n.ID,
			Subject:     doc.ID.String(),
			Action:      string(audit.EventDocumentUploaded),
			Decision:    string(doc.Type),
			ActorID:     req.UploadedBy,
		}
		if err := s.emitCompliance(ctx, event); err != nil {
			return err
		}
		if doc.Type == models.DocumentDeathCertificate {
			event.Action = string(audit.EventDeathCertificateFiled)
			return s.emitCompliance(ctx, event)
		}
		return nil
	})
	if err != nil {
		if delErr := s.documents.Delete(context.WithoutCancel(ctx), ref); delErr != nil {
			s.logger.ErrorContext(ctx, "failed to remove orphaned document file",
				"nominee_id", n.ID.String(),
				"storage_ref", ref,
				"error", delErr,
			)
		}
		return nil, s.fail(span, err)
	}

	if s.metrics != nil {
		s.metrics.IncDocumentUploaded(string(doc.Type))
	}
	s.logger.InfoContext(ctx, "nominee document uploaded",
		"nominee_id", n.ID.String(),
		"document_id", doc.ID.String(),
		"type", string(doc.Type),
	)

	outcomes := s.notifyUpload(ctx, n, doc)
	return &models.UploadResult{Document: doc, Notifications: outcomes}, nil
}

func (s *Service) notifyUpload(ctx context.Context, n *models.Nominee, doc models.Document) []notification.Outcome {
	msg := notification.Message{
		Reference: n.ID.String(),
		Recipient: recipient(n.LinkedUserDetails),
		Subject:   "A document was added to your nominee record",
		Body: fmt.Sprintf("%s uploaded a %s to your nominee record.",
			n.Name, strings.ReplaceAll(string(doc.Type), "_", " ")),
		Payload: map[string]string{
			"nominee_id":    n.ID.String(),
			"document_id":   doc.ID.String(),
			"document_type": string(doc.Type),
		},
		Urgency: notification.UrgencyNormal,
	}
	channels := []notification.Channel{notification.ChannelMessage}
	if doc.Type == models.DocumentDeathCertificate {
		msg.Subject = "Urgent: a death certificate was filed on your account"
		msg.Urgency = notification.UrgencyHigh
		channels = verificationChannels
	}

	outcomes := s.notifier.Send(ctx, msg, channels...)
	for _, o := range outcomes {
		if o.Delivered {
			continue
		}
		s.logAudit(ctx, string(audit.EventNotificationFailed),
			"nominee_id", n.ID.String(),
			"principal_id", n.LinkedPrincipalID.String(),
			"decision", o.Channel.String(),
			"reason", "document_notice_failed",
		)
	}
	return outcomes
}

// DeleteDocument removes the document entry, then its file. The record is
// authoritative: file removal errors are logged, not returned.
func (s *Service) DeleteDocument(ctx context.Context, nomineeID id.NomineeID, documentID id.DocumentID) error {
	ctx, span := s.tracer.Start(ctx, "nominee.DeleteDocument")
	defer span.End()

	n, err := s.find(ctx, nomineeID)
	if err != nil {
		return s.fail(span, err)
	}

	var removed *models.Document
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		removed, err = s.nominees.RemoveDocument(ctx, nomineeID, documentID)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return models.ErrDocumentNotFound
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to remove document")
		}
		return s.emitCompliance(ctx, audit.Event{
			PrincipalID: n.LinkedPrincipalID,
			NomineeID:   n.ID,
			Subject:     documentID.String(),
			Action:      string(audit.EventDocumentDeleted),
			Decision:    string(removed.Type),
		})
	})
	if err != nil {
		return s.fail(span, err)
	}

	if err := s.documents.Delete(ctx, removed.StorageRef); err != nil {
		s.logger.WarnContext(ctx, "failed to delete document file",
			"nominee_id", nomineeID.String(),
			"document_id", documentID.String(),
			"storage_ref", removed.StorageRef,
			"error", err,
		)
	}
	s.logger.InfoContext(ctx, "nominee document deleted",
		"nominee_id", nomineeID.String(),
		"document_id", documentID.String(),
	)
	return nil
}

// ReviewDocument approves or rejects a pending document. Documents are
// reviewed once.
func (s *Service) ReviewDocument(ctx context.Context, nomineeID id.NomineeID, documentID id.DocumentID, status models.DocumentStatus) (*models.Document, error) {
	ctx, span := s.tracer.Start(ctx, "nominee.ReviewDocument")
	defer span.End()

	if status != models.DocumentApproved && status != models.DocumentRejected {
		return nil, models.ErrInvalidReviewStatus
	}
	n, err := s.find(ctx, nomineeID)
	if err != nil {
		return nil, s.fail(span, err)
	}

	now := requestcontext.Now(ctx)
	var reviewed *models.Document
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		reviewed, err = s.nominees.ReviewDocument(ctx, nomineeID, documentID, status, now)
		if err != nil {
			switch {
			case errors.Is(err, sentinel.ErrNotFound):
				return models.ErrDocumentNotFound
			case errors.Is(err, sentinel.ErrInvalidState):
				return models.ErrDocumentAlreadyReviewed
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to review document")
		}
		return s.emitCompliance(ctx, audit.Event{
			PrincipalID: n.LinkedPrincipalID,
			NomineeID:   n.ID,
			Subject:     documentID.String(),
			Action:      string(audit.EventDocumentReviewed),
			Decision:    string(status),
			ActorID:     "admin",
		})
	})
	if err != nil {
		return nil, s.fail(span, err)
	}
	return reviewed, nil
}

// UpdateLinkedStatus changes the medical and death status held in the
// nominee's snapshot of the linked principal. The principal record itself
// is not touched.
func (s *Service) UpdateLinkedStatus(ctx context.Context, nomineeID id.NomineeID, update models.LinkedStatusUpdate) (*models.Nominee, error) {
	ctx, span := s.tracer.Start(ctx, "nominee.UpdateLinkedStatus")
	defer span.End()

	if err := update.Validate(); err != nil {
		return nil, err
	}

	now := requestcontext.Now(ctx)
	var updated *models.Nominee
	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.nominees.UpdateLinkedStatus(ctx, nomineeID, update, now)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				return models.ErrNomineeNotFound
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to update linked status")
		}
		return s.emitCompliance(ctx, audit.Event{
			PrincipalID: updated.LinkedPrincipalID,
			NomineeID:   updated.ID,
			Subject:     updated.ID.String(),
			Action:      string(audit.EventLinkedStatusUpdated),
			Reason:      changedFields(update),
			ActorID:     "admin",
		})
	})
	if err != nil {
		return nil, s.fail(span, err)
	}
	s.logger.InfoContext(ctx, "linked status updated",
		"nominee_id", nomineeID.String(),
		"fields", changedFields(update),
	)
	return updated, nil
}

func changedFields(u models.LinkedStatusUpdate) string {
	var fields []string
	if u.MedicalStatus != nil {
		fields = append(fields, "medical_status")
	}
	if u.DeathStatus != nil {
		fields = append(fields, "death_status")
	}
	return strings.Join(fields, ",")
}
