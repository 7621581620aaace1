package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/handler/mocks"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/token"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/notification"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/principal"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/testutil"
)

type HandlerSuite struct {
	suite.Suite
	ctrl    *gomock.Controller
	service *mocks.MockService
	router  chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.service = mocks.NewMockService(s.ctrl)
	s.router = s.newRouter()
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *HandlerSuite) newRouter(opts ...Option) chi.Router {
	h := New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil)), opts...)
	r := chi.NewRouter()
	h.Register(r)
	r.Route("/admin", h.RegisterAdmin)
	return r
}

func validRegistration() models.RegisterRequest {
	return models.RegisterRequest{
		Name:         "Ravi Kumar",
		Email:        "Ravi@Example.org",
		Phone:        "+919800000001",
		GovernmentID: "NOM-001",
		Relationship: "son",
		UserIDNumber: "GOV-123",
	}
}

func (s *HandlerSuite) TestRegister() {
	s.Run("created with channel outcomes", func() {
		nomineeID := id.NewNomineeID()
		s.service.EXPECT().Register(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req models.RegisterRequest) (*models.RegistrationResult, error) {
				s.Equal("ravi@example.org", req.Email)
				return &models.RegistrationResult{
					Nominee: &models.Nominee{ID: nomineeID, VerificationStatus: models.StatusPending},
					Notifications: []notification.Outcome{
						{Channel: notification.ChannelMessage, Delivered: true},
						{Channel: notification.ChannelVoice, Delivered: false, Error: "broker unavailable"},
					},
				}, nil
			})

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/nominees", validRegistration()))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)

		res := testutil.UnmarshalResponse[models.RegistrationResult](s.T(), rr)
		s.Equal(nomineeID, res.Nominee.ID)
		s.Len(res.Notifications, 2)
		s.False(res.Notifications[1].Delivered)
	})

	s.Run("missing email is rejected before the service", func() {
		req := validRegistration()
		req.Email = ""
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/nominees", req))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("malformed json", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPost, "/nominees", "{"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("duplicate nominee", func() {
		s.service.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, models.ErrDuplicateNominee)
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/nominees", validRegistration()))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})

	s.Run("unknown principal", func() {
		s.service.EXPECT().Register(gomock.Any(), gomock.Any()).Return(nil, principal.ErrPrincipalNotFound)
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/nominees", validRegistration()))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestGet() {
	s.Run("found", func() {
		nomineeID := id.NewNomineeID()
		tok := "secret"
		s.service.EXPECT().Get(gomock.Any(), nomineeID).Return(&models.Nominee{
			ID:                 nomineeID,
			VerificationToken:  &tok,
			VerificationStatus: models.StatusVerified,
		}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/nominees/"+nomineeID.String()))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "verification_status", "verified")
		s.NotContains(rr.Body.String(), "secret")
	})

	s.Run("invalid id", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/nominees/not-a-uuid"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})

	s.Run("not found", func() {
		s.service.EXPECT().Get(gomock.Any(), gomock.Any()).Return(nil, models.ErrNomineeNotFound)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/nominees/"+id.NewNomineeID().String()))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestVerify() {
	s.Run("confirm", func() {
		nomineeID := id.NewNomineeID()
		s.service.EXPECT().ProcessVerification(gomock.Any(), "tok", models.ActionConfirm).Return(&models.VerificationResult{
			NomineeID:          nomineeID,
			VerificationStatus: models.StatusVerified,
			LinkedUserVerified: true,
			IsActive:           true,
		}, nil)

		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/nominees/verify",
			VerifyRequest{Token: " tok ", Action: "Confirm"}))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "is_active", true)
	})

	s.Run("unknown action", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/nominees/verify",
			VerifyRequest{Token: "tok", Action: "maybe"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("missing token", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/nominees/verify",
			VerifyRequest{Action: "reject"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("expired token", func() {
		s.service.EXPECT().ProcessVerification(gomock.Any(), "old", models.ActionReject).Return(nil, token.ErrTokenExpired)
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/nominees/verify",
			VerifyRequest{Token: "old", Action: "reject"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusGone, "token_expired")
	})

	s.Run("invalid token", func() {
		s.service.EXPECT().ProcessVerification(gomock.Any(), "forged", models.ActionConfirm).Return(nil, token.ErrTokenInvalid)
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/nominees/verify",
			VerifyRequest{Token: "forged", Action: "confirm"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusUnprocessableEntity, "crypto_error")
	})

	s.Run("already processed", func() {
		s.service.EXPECT().ProcessVerification(gomock.Any(), "used", models.ActionConfirm).Return(nil, models.ErrAlreadyProcessed)
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, "/nominees/verify",
			VerifyRequest{Token: "used", Action: "confirm"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})
}

func (s *HandlerSuite) TestResend() {
	nomineeID := id.NewNomineeID()
	s.service.EXPECT().ResendVerification(gomock.Any(), nomineeID).Return(&models.RegistrationResult{
		Nominee: &models.Nominee{ID: nomineeID},
	}, nil)

	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodPost, "/nominees/"+nomineeID.String()+"/verification/resend"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONHasKey(s.T(), rr, "nominee")
}

func uploadRequest(t *testing.T, path, docType, fileName string, content []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	if docType != "" {
		if err := w.WriteField("type", docType); err != nil {
			t.Fatal(err)
		}
	}
	if content != nil {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", `form-data; name="file"; filename="`+fileName+`"`)
		h.Set("Content-Type", "application/pdf")
		part, err := w.CreatePart(h)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := part.Write(content); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, path, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (s *HandlerSuite) TestUploadDocument() {
	nomineeID := id.NewNomineeID()
	path := "/nominees/" + nomineeID.String() + "/documents"

	s.Run("created", func() {
		s.service.EXPECT().UploadDocument(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req models.UploadDocumentRequest) (*models.UploadResult, error) {
				s.Equal(nomineeID, req.NomineeID)
				s.Equal("death_certificate", req.Type)
				s.Equal("certificate.pdf", req.FileName)
				s.Equal("application/pdf", req.ContentType)
				s.EqualValues(len("%PDF-1.7"), req.Size)
				content, err := io.ReadAll(req.Body)
				s.Require().NoError(err)
				s.Equal("%PDF-1.7", string(content))
				return &models.UploadResult{Document: models.Document{
					ID:     id.NewDocumentID(),
					Type:   models.DocumentType(req.Type),
					Status: models.DocumentPending,
				}}, nil
			})

		rr := testutil.DoRequest(s.router, uploadRequest(s.T(), path, "death_certificate", "certificate.pdf", []byte("%PDF-1.7")))
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONHasKey(s.T(), rr, "document")
	})

	s.Run("missing file", func() {
		rr := testutil.DoRequest(s.router, uploadRequest(s.T(), path, "death_certificate", "", nil))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("not multipart", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPost, path, map[string]string{"type": "x"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("oversized body", func() {
		router := s.newRouter(WithMaxUploadBytes(256))
		content := []byte(strings.Repeat("a", 4096))
		rr := testutil.DoRequest(router, uploadRequest(s.T(), path, "medical_document", "scan.pdf", content))
		testutil.AssertStatus(s.T(), rr, http.StatusBadRequest)
	})

	s.Run("unknown nominee", func() {
		s.service.EXPECT().UploadDocument(gomock.Any(), gomock.Any()).Return(nil, models.ErrNomineeNotFound)
		rr := testutil.DoRequest(s.router, uploadRequest(s.T(), path, "identity_proof", "id.pdf", []byte("x")))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestDeleteDocument() {
	nomineeID := id.NewNomineeID()
	documentID := id.NewDocumentID()
	path := "/nominees/" + nomineeID.String() + "/documents/" + documentID.String()

	s.Run("deleted", func() {
		s.service.EXPECT().DeleteDocument(gomock.Any(), nomineeID, documentID).Return(nil)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodDelete, path))
		testutil.AssertStatus(s.T(), rr, http.StatusNoContent)
	})

	s.Run("missing document", func() {
		s.service.EXPECT().DeleteDocument(gomock.Any(), nomineeID, documentID).Return(models.ErrDocumentNotFound)
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodDelete, path))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})

	s.Run("invalid document id", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodDelete, "/nominees/"+nomineeID.String()+"/documents/bad"))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "invalid_input")
	})
}

func (s *HandlerSuite) TestReviewDocument() {
	nomineeID := id.NewNomineeID()
	documentID := id.NewDocumentID()
	path := "/admin/nominees/" + nomineeID.String() + "/documents/" + documentID.String()

	s.Run("approved", func() {
		s.service.EXPECT().ReviewDocument(gomock.Any(), nomineeID, documentID, models.DocumentApproved).
			Return(&models.Document{ID: documentID, Status: models.DocumentApproved}, nil)
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPatch, path, ReviewRequest{Status: "approved"}))
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONContains(s.T(), rr, "status", "approved")
	})

	s.Run("pending is not a review outcome", func() {
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPatch, path, ReviewRequest{Status: "pending"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("already reviewed", func() {
		s.service.EXPECT().ReviewDocument(gomock.Any(), nomineeID, documentID, models.DocumentRejected).
			Return(nil, models.ErrDocumentAlreadyReviewed)
		rr := testutil.DoRequest(s.router, testutil.NewJSONRequest(s.T(), http.MethodPatch, path, ReviewRequest{Status: "rejected"}))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusConflict, "conflict")
	})
}

func (s *HandlerSuite) TestUpdateLinkedStatus() {
	nomineeID := id.NewNomineeID()
	path := "/admin/nominees/" + nomineeID.String() + "/linked-status"

	s.Run("updated", func() {
		s.service.EXPECT().UpdateLinkedStatus(gomock.Any(), nomineeID, gomock.Any()).
			DoAndReturn(func(_ context.Context, _ id.NomineeID, u models.LinkedStatusUpdate) (*models.Nominee, error) {
				s.Require().NotNil(u.DeathStatus)
				s.Equal("deceased", *u.DeathStatus)
				s.Nil(u.MedicalStatus)
				return &models.Nominee{ID: nomineeID, LinkedUserDetails: models.LinkedUserDetails{DeathStatus: "deceased"}}, nil
			})
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPatch, path, `{"death_status":"deceased"}`))
		testutil.AssertStatusOK(s.T(), rr)
	})

	s.Run("empty update", func() {
		rr := testutil.DoRequest(s.router, testutil.NewRequestWithBody(s.T(), http.MethodPatch, path, `{}`))
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})
}
