package models

import (
	"strings"
	"time"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/email"
)

// Principal is the benefit-holder account. The biometric module only writes
// the two face enrollment fields.
//
// Invariants:
//   - Name, Email and GovernmentID are non-empty
//   - Email is stored normalized (trimmed, lower-case)
//   - FaceEnrollmentDate is set iff FaceEnrolled is true
type Principal struct {
	ID                 id.PrincipalID `json:"id"`
	Name               string         `json:"name"`
	Email              string         `json:"email"`
	Phone              string         `json:"phone,omitempty"`
	GovernmentID       string         `json:"government_id"`
	FaceEnrolled       bool           `json:"face_enrolled"`
	FaceEnrollmentDate *time.Time     `json:"face_enrollment_date,omitempty"`
	CreatedAt          time.Time      `json:"created_at"`
}

func NewPrincipal(principalID id.PrincipalID, name, address, phone, governmentID string, now time.Time) (*Principal, error) {
	name = strings.TrimSpace(name)
	governmentID = strings.TrimSpace(governmentID)
	address = email.Normalize(address)

	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "principal name is required")
	}
	if !email.IsValid(address) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "principal email is invalid")
	}
	if governmentID == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "principal government ID is required")
	}
	return &Principal{
		ID:           principalID,
		Name:         name,
		Email:        address,
		Phone:        strings.TrimSpace(phone),
		GovernmentID: governmentID,
		CreatedAt:    now,
	}, nil
}

// MarkFaceEnrolled records a successful enrollment at now.
func (p *Principal) MarkFaceEnrolled(now time.Time) {
	p.FaceEnrolled = true
	p.FaceEnrollmentDate = &now
}

// ClearFaceEnrollment resets the enrollment flag after revocation.
func (p *Principal) ClearFaceEnrollment() {
	p.FaceEnrolled = false
	p.FaceEnrollmentDate = nil
}
