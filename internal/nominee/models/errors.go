package models

import (
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

var (
	ErrNomineeNotFound         = dErrors.New(dErrors.CodeNotFound, "nominee not found")
	ErrDuplicateNominee        = dErrors.New(dErrors.CodeConflict, "a nominee with this email or government ID already exists")
	ErrNomineeAlreadyExists    = dErrors.New(dErrors.CodeConflict, "this account already has a nominee")
	ErrAlreadyProcessed        = dErrors.New(dErrors.CodeConflict, "nominee verification already processed")
	ErrInvalidAction           = dErrors.New(dErrors.CodeValidation, "action must be confirm or reject")
	ErrInvalidDocumentType     = dErrors.New(dErrors.CodeValidation, "document type must be one of death_certificate, medical_document, identity_proof, relationship_proof")
	ErrDocumentNotFound        = dErrors.New(dErrors.CodeNotFound, "document not found")
	ErrDocumentAlreadyReviewed = dErrors.New(dErrors.CodeConflict, "document already reviewed")
	ErrInvalidReviewStatus     = dErrors.New(dErrors.CodeValidation, "review status must be approved or rejected")
)
