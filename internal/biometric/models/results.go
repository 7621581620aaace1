package models

import (
	"time"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
)

type EnrollResult struct {
	PrincipalID id.PrincipalID `json:"principal_id"`
	TemplateID  id.TemplateID  `json:"template_id"`
	EnrolledAt  time.Time      `json:"enrolled_at"`
	Replaced    bool           `json:"replaced"`
}

// VerifyResult reports the best match against the active templates.
type VerifyResult struct {
	PrincipalID id.PrincipalID `json:"principal_id"`
	IsMatch     bool           `json:"is_match"`
	Distance    float64        `json:"distance"`
	Threshold   float64        `json:"threshold"`
	Confidence  float64        `json:"confidence"`
}

// Session is the credential issued after a successful face login.
type Session struct {
	SessionID   id.SessionID `json:"session_id"`
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
}

type FaceLoginResult struct {
	VerifyResult
	Session *Session `json:"session,omitempty"`
}

type EnrollmentStatus struct {
	PrincipalID id.PrincipalID `json:"principal_id"`
	Enrolled    bool           `json:"enrolled"`
	EnrolledAt  *time.Time     `json:"enrolled_at,omitempty"`
}

type RevokeResult struct {
	PrincipalID          id.PrincipalID `json:"principal_id"`
	TemplatesDeactivated int            `json:"templates_deactivated"`
}
