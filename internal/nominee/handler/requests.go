package handler

import (
	"strings"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/models"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

type VerifyRequest struct {
	Token  string `json:"token"`
	Action string `json:"action"`
}

// Parse checks the request and returns the decision it carries.
func (r *VerifyRequest) Parse() (models.Action, error) {
	r.Token = strings.TrimSpace(r.Token)
	if r.Token == "" {
		return "", dErrors.New(dErrors.CodeValidation, "token is required")
	}
	return models.ParseAction(r.Action)
}

type ReviewRequest struct {
	Status string `json:"status"`
}
