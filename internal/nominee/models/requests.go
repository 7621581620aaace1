package models

import (
	"io"
	"strings"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/email"
)

// RegisterRequest names a nominee and the government ID of the principal
// they claim to succeed.
type RegisterRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	GovernmentID string `json:"government_id"`
	Relationship string `json:"relationship"`
	UserIDNumber string `json:"user_id_number"`
}

func (r *RegisterRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = email.Normalize(r.Email)
	r.Phone = strings.TrimSpace(r.Phone)
	r.GovernmentID = strings.TrimSpace(r.GovernmentID)
	r.Relationship = strings.TrimSpace(r.Relationship)
	r.UserIDNumber = strings.TrimSpace(r.UserIDNumber)
}

func (r *RegisterRequest) Validate() error {
	switch {
	case r.Name == "":
		return dErrors.New(dErrors.CodeValidation, "name is required")
	case r.Email == "":
		return dErrors.New(dErrors.CodeValidation, "email is required")
	case !email.IsValid(r.Email):
		return dErrors.New(dErrors.CodeValidation, "email is invalid")
	case r.GovernmentID == "":
		return dErrors.New(dErrors.CodeValidation, "government_id is required")
	case r.UserIDNumber == "":
		return dErrors.New(dErrors.CodeValidation, "user_id_number is required")
	case r.UserIDNumber == r.GovernmentID:
		return dErrors.New(dErrors.CodeValidation, "a nominee cannot nominate themselves")
	}
	return nil
}

// UploadDocumentRequest carries one file. The caller owns Body and closes it.
type UploadDocumentRequest struct {
	NomineeID   id.NomineeID
	Type        string
	FileName    string
	ContentType string
	Size        int64
	Body        io.Reader
	// UploadedBy identifies the uploader for the audit trail, when known.
	UploadedBy string
}

func (r *UploadDocumentRequest) Validate() (DocumentType, error) {
	docType, err := ParseDocumentType(r.Type)
	if err != nil {
		return "", err
	}
	if r.Body == nil {
		return "", dErrors.New(dErrors.CodeValidation, "file is required")
	}
	if strings.TrimSpace(r.FileName) == "" {
		return "", dErrors.New(dErrors.CodeValidation, "file name is required")
	}
	return docType, nil
}
