package models

import (
	"path/filepath"
	"strings"
	"time"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
)

type DocumentType string

const (
	DocumentDeathCertificate  DocumentType = "death_certificate"
	DocumentMedical           DocumentType = "medical_document"
	DocumentIdentityProof     DocumentType = "identity_proof"
	DocumentRelationshipProof DocumentType = "relationship_proof"
)

func ParseDocumentType(s string) (DocumentType, error) {
	switch t := DocumentType(strings.ToLower(strings.TrimSpace(s))); t {
	case DocumentDeathCertificate, DocumentMedical, DocumentIdentityProof, DocumentRelationshipProof:
		return t, nil
	default:
		return "", ErrInvalidDocumentType
	}
}

type DocumentStatus string

const (
	DocumentPending  DocumentStatus = "pending"
	DocumentApproved DocumentStatus = "approved"
	DocumentRejected DocumentStatus = "rejected"
)

// ParseReviewStatus accepts only the two terminal review outcomes.
func ParseReviewStatus(s string) (DocumentStatus, error) {
	switch st := DocumentStatus(strings.ToLower(strings.TrimSpace(s))); st {
	case DocumentApproved, DocumentRejected:
		return st, nil
	default:
		return "", ErrInvalidReviewStatus
	}
}

type Document struct {
	ID          id.DocumentID  `json:"id"`
	Type        DocumentType   `json:"type"`
	StorageRef  string         `json:"storage_ref"`
	FileName    string         `json:"file_name"`
	ContentType string         `json:"content_type"`
	Size        int64          `json:"size"`
	UploadedAt  time.Time      `json:"uploaded_at"`
	Status      DocumentStatus `json:"status"`
	ReviewedAt  *time.Time     `json:"reviewed_at,omitempty"`
}

// StorageKey is where a document's bytes live: nominees/<nomineeID>/<documentID><ext>.
func StorageKey(nomineeID id.NomineeID, documentID id.DocumentID, fileName string) string {
	return "nominees/" + nomineeID.String() + "/" + documentID.String() + strings.ToLower(filepath.Ext(fileName))
}

// Review records an approval or rejection. Documents are reviewed once.
func (d *Document) Review(status DocumentStatus, now time.Time) error {
	if d.Status != DocumentPending {
		return ErrDocumentAlreadyReviewed
	}
	d.Status = status
	d.ReviewedAt = &now
	return nil
}

func (d Document) clone() Document {
	if d.ReviewedAt != nil {
		t := *d.ReviewedAt
		d.ReviewedAt = &t
	}
	return d
}
