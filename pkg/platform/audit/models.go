package audit

import (
	"context"
	"time"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies and routing downstream.
type EventCategory string

const (
	// CategoryCompliance covers events with legal significance: biometric
	// enrollment and removal, nominee decisions, life-event documents.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers events relevant to security monitoring
	// (failed face logins, rejected verification tokens).
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity that can be sampled.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category    EventCategory
	Timestamp   time.Time
	PrincipalID id.PrincipalID
	// NomineeID is set for succession workflow events.
	NomineeID id.NomineeID
	Subject   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
	// ActorID tracks who performed the action when different from the
	// principal (nominee uploads, admin reviews).
	ActorID string
}

type AuditEvent string

const (
	// Biometric events
	EventFaceEnrolled       AuditEvent = "face_enrolled"
	EventFaceRevoked        AuditEvent = "face_revoked"
	EventFaceVerified       AuditEvent = "face_verified"
	EventFaceLoginSucceeded AuditEvent = "face_login_succeeded"
	EventFaceLoginFailed    AuditEvent = "face_login_failed"

	// Session events
	EventSessionCreated AuditEvent = "session_created"
	EventSessionRevoked AuditEvent = "session_revoked"

	// Nominee events
	EventNomineeRegistered     AuditEvent = "nominee_registered"
	EventNomineeVerified       AuditEvent = "nominee_verified"
	EventNomineeRejected       AuditEvent = "nominee_rejected"
	EventVerificationResent    AuditEvent = "nominee_verification_resent"
	EventVerificationRefused   AuditEvent = "nominee_verification_refused"
	EventDocumentUploaded      AuditEvent = "nominee_document_uploaded"
	EventDocumentDeleted       AuditEvent = "nominee_document_deleted"
	EventDocumentReviewed      AuditEvent = "nominee_document_reviewed"
	EventLinkedStatusUpdated   AuditEvent = "nominee_linked_status_updated"
	EventNotificationFailed    AuditEvent = "notification_failed"
	EventDeathCertificateFiled AuditEvent = "death_certificate_filed"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventFaceEnrolled:          CategoryCompliance,
	EventFaceRevoked:           CategoryCompliance,
	EventNomineeRegistered:     CategoryCompliance,
	EventNomineeVerified:       CategoryCompliance,
	EventNomineeRejected:       CategoryCompliance,
	EventDocumentUploaded:      CategoryCompliance,
	EventDocumentDeleted:       CategoryCompliance,
	EventDocumentReviewed:      CategoryCompliance,
	EventLinkedStatusUpdated:   CategoryCompliance,
	EventDeathCertificateFiled: CategoryCompliance,

	EventFaceLoginFailed:     CategorySecurity,
	EventSessionRevoked:      CategorySecurity,
	EventVerificationRefused: CategorySecurity,

	EventFaceVerified:       CategoryOperations,
	EventFaceLoginSucceeded: CategoryOperations,
	EventSessionCreated:     CategoryOperations,
	EventVerificationResent: CategoryOperations,
	EventNotificationFailed: CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// Publisher is what services depend on to record audit events.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}
