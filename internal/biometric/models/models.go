package models

import (
	"math"
	"time"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

// DescriptorLength is the size of a face embedding.
const DescriptorLength = 128

// Descriptor is a face embedding produced by an external detector.
type Descriptor []float64

// Validate checks the embedding has exactly DescriptorLength finite values.
func (d Descriptor) Validate() error {
	if len(d) != DescriptorLength {
		return ErrInvalidDescriptor
	}
	for _, v := range d {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return ErrInvalidDescriptor
		}
	}
	return nil
}

// EncryptedPayload is the at-rest form of a descriptor. Both fields are hex.
type EncryptedPayload struct {
	Ciphertext string `json:"ciphertext"`
	IV         string `json:"iv"`
}

// Template is an encrypted descriptor owned by a principal.
//
// Invariants:
//   - At most one Active template per OwnerID
//   - Templates are deactivated, never deleted
type Template struct {
	ID         id.TemplateID
	OwnerID    id.PrincipalID
	Payload    EncryptedPayload
	CapturedAt time.Time
	Active     bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

var (
	ErrInvalidDescriptor = dErrors.New(dErrors.CodeValidation, "face descriptor must contain 128 finite numbers")
	ErrNoEnrollment      = dErrors.New(dErrors.CodeNotFound, "no active face enrollment")
	ErrNotEnrolled       = dErrors.New(dErrors.CodeForbidden, "face login is not enabled for this account")
)
