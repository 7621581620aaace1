package handler

import (
	"strings"
	"time"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

type EnrollRequest struct {
	OwnerRef   string     `json:"owner_ref"`
	Descriptor []float64  `json:"descriptor"`
	CapturedAt *time.Time `json:"captured_at,omitempty"`
}

// MatchRequest is shared by verify and face login.
type MatchRequest struct {
	OwnerRef   string    `json:"owner_ref"`
	Descriptor []float64 `json:"descriptor"`
}

func (r *EnrollRequest) Normalize() {
	r.OwnerRef = strings.TrimSpace(r.OwnerRef)
}

func (r *EnrollRequest) Validate() error {
	if r.OwnerRef == "" {
		return dErrors.New(dErrors.CodeValidation, "owner_ref is required")
	}
	return models.Descriptor(r.Descriptor).Validate()
}

func (r *MatchRequest) Normalize() {
	r.OwnerRef = strings.TrimSpace(r.OwnerRef)
}

func (r *MatchRequest) Validate() error {
	if r.OwnerRef == "" {
		return dErrors.New(dErrors.CodeValidation, "owner_ref is required")
	}
	return models.Descriptor(r.Descriptor).Validate()
}
