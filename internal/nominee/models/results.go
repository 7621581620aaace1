package models

import (
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/notification"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
)

// RegistrationResult reports the created record and how each notification
// channel fared. Channel failures do not fail registration.
type RegistrationResult struct {
	Nominee       *Nominee               `json:"nominee"`
	Notifications []notification.Outcome `json:"notifications"`
}

type VerificationResult struct {
	NomineeID          id.NomineeID       `json:"nominee_id"`
	VerificationStatus VerificationStatus `json:"verification_status"`
	LinkedUserVerified bool               `json:"linked_user_verified"`
	IsActive           bool               `json:"is_active"`
}

type UploadResult struct {
	Document      Document               `json:"document"`
	Notifications []notification.Outcome `json:"notifications"`
}
