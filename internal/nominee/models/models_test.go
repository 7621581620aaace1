package models

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
)

var now = time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)

func newPending(t *testing.T) *Nominee {
	t.Helper()
	n, err := NewNominee(id.NewNomineeID(), NewNomineeParams{
		Name:              " Ravi Rao ",
		Email:             "Ravi@Example.org",
		GovernmentID:      "GOV-200",
		Relationship:      "son",
		LinkedPrincipalID: id.NewPrincipalID(),
		LinkedUserDetails: LinkedUserDetails{Name: "Asha Rao", Email: "asha@example.org"},
	}, now)
	require.NoError(t, err)
	token := "tok"
	n.VerificationToken = &token
	return n
}

func TestNewNominee(t *testing.T) {
	n := newPending(t)
	assert.Equal(t, "Ravi Rao", n.Name)
	assert.Equal(t, "ravi@example.org", n.Email)
	assert.Equal(t, StatusPending, n.VerificationStatus)
	assert.True(t, n.IsActive)

	_, err := NewNominee(id.NewNomineeID(), NewNomineeParams{
		Name:              "X",
		Email:             "not-an-email",
		GovernmentID:      "G",
		LinkedPrincipalID: id.NewPrincipalID(),
	}, now)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
}

func TestApplyDecision(t *testing.T) {
	t.Run("confirm", func(t *testing.T) {
		n := newPending(t)
		require.NoError(t, n.ApplyDecision(ActionConfirm, now))
		assert.Equal(t, StatusVerified, n.VerificationStatus)
		assert.True(t, n.LinkedUserVerified)
		assert.True(t, n.UserConfirmed)
		assert.True(t, n.IsActive)
		assert.Nil(t, n.VerificationToken)
	})

	t.Run("reject", func(t *testing.T) {
		n := newPending(t)
		require.NoError(t, n.ApplyDecision(ActionReject, now))
		assert.Equal(t, StatusRejected, n.VerificationStatus)
		assert.False(t, n.IsActive)
		assert.False(t, n.LinkedUserVerified)
	})

	t.Run("terminal states do not move", func(t *testing.T) {
		n := newPending(t)
		require.NoError(t, n.ApplyDecision(ActionConfirm, now))
		assert.ErrorIs(t, n.ApplyDecision(ActionReject, now), ErrAlreadyProcessed)
		assert.Equal(t, StatusVerified, n.VerificationStatus)
	})
}

func TestParsers(t *testing.T) {
	a, err := ParseAction(" Confirm ")
	require.NoError(t, err)
	assert.Equal(t, ActionConfirm, a)
	_, err = ParseAction("approve")
	assert.ErrorIs(t, err, ErrInvalidAction)

	dt, err := ParseDocumentType("death_certificate")
	require.NoError(t, err)
	assert.Equal(t, DocumentDeathCertificate, dt)
	_, err = ParseDocumentType("selfie")
	assert.ErrorIs(t, err, ErrInvalidDocumentType)

	_, err = ParseReviewStatus("pending")
	assert.ErrorIs(t, err, ErrInvalidReviewStatus)
}

func TestDocumentReviewOnce(t *testing.T) {
	d := Document{ID: id.NewDocumentID(), Status: DocumentPending}
	require.NoError(t, d.Review(DocumentApproved, now))
	assert.Equal(t, DocumentApproved, d.Status)
	assert.ErrorIs(t, d.Review(DocumentRejected, now), ErrDocumentAlreadyReviewed)
}

func TestStorageKey(t *testing.T) {
	nomineeID := id.NewNomineeID()
	documentID := id.NewDocumentID()
	assert.Equal(t,
		"nominees/"+nomineeID.String()+"/"+documentID.String()+".pdf",
		StorageKey(nomineeID, documentID, "Certificate.PDF"))
	assert.Equal(t,
		"nominees/"+nomineeID.String()+"/"+documentID.String(),
		StorageKey(nomineeID, documentID, "scan"))
}

func TestLinkedStatusUpdate(t *testing.T) {
	assert.Error(t, LinkedStatusUpdate{}.Validate())

	deceased := "deceased"
	details := LinkedUserDetails{MedicalStatus: "stable"}
	details.Apply(LinkedStatusUpdate{DeathStatus: &deceased})
	assert.Equal(t, "stable", details.MedicalStatus)
	assert.Equal(t, "deceased", details.DeathStatus)
}

func TestClone(t *testing.T) {
	n := newPending(t)
	n.Documents = append(n.Documents, Document{ID: id.NewDocumentID(), Status: DocumentPending})
	c := n.Clone()
	*c.VerificationToken = "changed"
	c.Documents[0].Status = DocumentApproved
	assert.Equal(t, "tok", *n.VerificationToken)
	assert.Equal(t, DocumentPending, n.Documents[0].Status)
}

func TestRegisterRequest_Validate(t *testing.T) {
	valid := func() RegisterRequest {
		return RegisterRequest{
			Name:         " Ravi Rao ",
			Email:        " Ravi@Example.org ",
			GovernmentID: "GOV-N1",
			UserIDNumber: "GOV-1",
		}
	}

	r := valid()
	r.Normalize()
	require.NoError(t, r.Validate())
	assert.Equal(t, "Ravi Rao", r.Name)
	assert.Equal(t, "ravi@example.org", r.Email)

	cases := map[string]func(*RegisterRequest){
		"missing name":      func(r *RegisterRequest) { r.Name = "" },
		"invalid email":     func(r *RegisterRequest) { r.Email = "not-an-email" },
		"missing gov id":    func(r *RegisterRequest) { r.GovernmentID = "" },
		"missing principal": func(r *RegisterRequest) { r.UserIDNumber = "" },
		"self nomination":   func(r *RegisterRequest) { r.UserIDNumber = r.GovernmentID },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			r := valid()
			mutate(&r)
			r.Normalize()
			err := r.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		})
	}
}

func TestUploadDocumentRequest_Validate(t *testing.T) {
	req := UploadDocumentRequest{Type: "Death_Certificate", FileName: "cert.pdf", Body: strings.NewReader("x")}
	docType, err := req.Validate()
	require.NoError(t, err)
	assert.Equal(t, DocumentDeathCertificate, docType)

	req.Type = "passport"
	_, err = req.Validate()
	assert.ErrorIs(t, err, ErrInvalidDocumentType)

	req.Type = "medical_document"
	req.Body = nil
	_, err = req.Validate()
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
}
