package models

import (
	"strings"
	"time"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/email"
)

type VerificationStatus string

const (
	StatusPending  VerificationStatus = "pending"
	StatusVerified VerificationStatus = "verified"
	StatusRejected VerificationStatus = "rejected"
)

// Action is the principal's answer to a verification request.
type Action string

const (
	ActionConfirm Action = "confirm"
	ActionReject  Action = "reject"
)

func ParseAction(s string) (Action, error) {
	switch a := Action(strings.ToLower(strings.TrimSpace(s))); a {
	case ActionConfirm, ActionReject:
		return a, nil
	default:
		return "", ErrInvalidAction
	}
}

// LinkedUserDetails is a snapshot of the linked principal taken at
// registration. Only the two status fields change afterwards.
type LinkedUserDetails struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	GovernmentID  string `json:"government_id"`
	MedicalStatus string `json:"medical_status,omitempty"`
	DeathStatus   string `json:"death_status,omitempty"`
}

// LinkedStatusUpdate changes only the fields that are non-nil.
type LinkedStatusUpdate struct {
	MedicalStatus *string `json:"medical_status,omitempty"`
	DeathStatus   *string `json:"death_status,omitempty"`
}

func (u LinkedStatusUpdate) Validate() error {
	if u.MedicalStatus == nil && u.DeathStatus == nil {
		return dErrors.New(dErrors.CodeValidation, "medical_status or death_status is required")
	}
	return nil
}

func (d *LinkedUserDetails) Apply(u LinkedStatusUpdate) {
	if u.MedicalStatus != nil {
		d.MedicalStatus = *u.MedicalStatus
	}
	if u.DeathStatus != nil {
		d.DeathStatus = *u.DeathStatus
	}
}

// Nominee is a successor designated for a principal's benefits.
//
// Invariants:
//   - LinkedPrincipalID never changes
//   - VerificationStatus leaves pending at most once
//   - VerificationToken is nil once the decision is made
type Nominee struct {
	ID                 id.NomineeID       `json:"id"`
	Name               string             `json:"name"`
	Email              string             `json:"email"`
	Phone              string             `json:"phone"`
	GovernmentID       string             `json:"government_id"`
	Relationship       string             `json:"relationship"`
	LinkedPrincipalID  id.PrincipalID     `json:"linked_principal_id"`
	LinkedUserDetails  LinkedUserDetails  `json:"linked_user_details"`
	VerificationToken  *string            `json:"-"`
	VerificationSent   bool               `json:"verification_sent"`
	VerificationSentAt *time.Time         `json:"verification_sent_at,omitempty"`
	NotifiedChannels   []string           `json:"notified_channels"`
	UserConfirmed      bool               `json:"user_confirmed"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	LinkedUserVerified bool               `json:"linked_user_verified"`
	IsActive           bool               `json:"is_active"`
	DecidedAt          *time.Time         `json:"decided_at,omitempty"`
	Documents          []Document         `json:"documents"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

type NewNomineeParams struct {
	Name              string
	Email             string
	Phone             string
	GovernmentID      string
	Relationship      string
	LinkedPrincipalID id.PrincipalID
	LinkedUserDetails LinkedUserDetails
}

// NewNominee builds a pending, active record.
func NewNominee(nomineeID id.NomineeID, p NewNomineeParams, now time.Time) (*Nominee, error) {
	if nomineeID.IsNil() || p.LinkedPrincipalID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "nominee and linked principal IDs are required")
	}
	if strings.TrimSpace(p.Name) == "" || strings.TrimSpace(p.GovernmentID) == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "nominee name and government ID are required")
	}
	if !email.IsValid(p.Email) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "nominee email is invalid")
	}
	return &Nominee{
		ID:                 nomineeID,
		Name:               strings.TrimSpace(p.Name),
		Email:              email.Normalize(p.Email),
		Phone:              strings.TrimSpace(p.Phone),
		GovernmentID:       strings.TrimSpace(p.GovernmentID),
		Relationship:       strings.TrimSpace(p.Relationship),
		LinkedPrincipalID:  p.LinkedPrincipalID,
		LinkedUserDetails:  p.LinkedUserDetails,
		NotifiedChannels:   []string{},
		VerificationStatus: StatusPending,
		IsActive:           true,
		Documents:          []Document{},
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

func (n *Nominee) IsPending() bool {
	return n.VerificationStatus == StatusPending
}

// ApplyDecision moves a pending record to verified or rejected and drops
// the token.
func (n *Nominee) ApplyDecision(action Action, now time.Time) error {
	if !n.IsPending() {
		return ErrAlreadyProcessed
	}
	switch action {
	case ActionConfirm:
		n.VerificationStatus = StatusVerified
		n.LinkedUserVerified = true
		n.UserConfirmed = true
	case ActionReject:
		n.VerificationStatus = StatusRejected
		n.IsActive = false
	default:
		return ErrInvalidAction
	}
	n.VerificationToken = nil
	n.DecidedAt = &now
	n.UpdatedAt = now
	return nil
}

// RecordDelivery stores which channels accepted the verification request.
func (n *Nominee) RecordDelivery(channels []string, now time.Time) {
	n.NotifiedChannels = channels
	n.VerificationSent = len(channels) > 0
	if n.VerificationSent {
		n.VerificationSentAt = &now
	}
	n.UpdatedAt = now
}

// Document returns the document with documentID, or nil.
func (n *Nominee) Document(documentID id.DocumentID) *Document {
	for i := range n.Documents {
		if n.Documents[i].ID == documentID {
			return &n.Documents[i]
		}
	}
	return nil
}

// Clone returns a deep copy.
func (n *Nominee) Clone() *Nominee {
	c := *n
	if n.VerificationToken != nil {
		t := *n.VerificationToken
		c.VerificationToken = &t
	}
	if n.VerificationSentAt != nil {
		t := *n.VerificationSentAt
		c.VerificationSentAt = &t
	}
	if n.DecidedAt != nil {
		t := *n.DecidedAt
		c.DecidedAt = &t
	}
	c.NotifiedChannels = append([]string{}, n.NotifiedChannels...)
	c.Documents = make([]Document, len(n.Documents))
	for i, d := range n.Documents {
		c.Documents[i] = d.clone()
	}
	return &c
}
