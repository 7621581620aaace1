package handler

//go:generate mockgen -source=handler.go -destination=mocks/mocks.go -package=mocks Service

import (
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/handler/mocks"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
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
	s.router = chi.NewRouter()
	New(s.service, slog.New(slog.NewTextHandler(io.Discard, nil))).Register(s.router)
}

func (s *HandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

func descriptor() []float64 {
	d := make([]float64, models.DescriptorLength)
	d[0] = 1
	return d
}

func (s *HandlerSuite) TestEnroll() {
	s.Run("created", func() {
		principalID := id.NewPrincipalID()
		s.service.EXPECT().Enroll(gomock.Any(), "asha@example.org", gomock.Any(), gomock.Any()).
			Return(&models.EnrollResult{PrincipalID: principalID, TemplateID: id.NewTemplateID()}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/face/enroll", EnrollRequest{
			OwnerRef:   " asha@example.org ",
			Descriptor: descriptor(),
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusCreated)
		testutil.AssertJSONContains(s.T(), rr, "principal_id", principalID.String())
	})

	s.Run("short descriptor is rejected before the service", func() {
		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/face/enroll", EnrollRequest{
			OwnerRef:   "asha@example.org",
			Descriptor: make([]float64, 10),
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "validation_error")
	})

	s.Run("malformed json", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/face/enroll", "{")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusBadRequest, "bad_request")
	})

	s.Run("unknown principal", func() {
		s.service.EXPECT().Enroll(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, principal.ErrPrincipalNotFound)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/face/enroll", EnrollRequest{
			OwnerRef:   "ghost@example.org",
			Descriptor: descriptor(),
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
	})
}

func (s *HandlerSuite) TestVerify() {
	s.service.EXPECT().Verify(gomock.Any(), "owner-1", gomock.Any()).
		Return(&models.VerifyResult{IsMatch: true, Threshold: 0.6, Confidence: 100}, nil)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/face/verify", MatchRequest{OwnerRef: "owner-1", Descriptor: descriptor()})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "is_match", true)
}

func (s *HandlerSuite) TestVerify_NoEnrollment() {
	s.service.EXPECT().Verify(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, models.ErrNoEnrollment)

	req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/face/verify", MatchRequest{OwnerRef: "owner-1", Descriptor: descriptor()})
	rr := testutil.DoRequest(s.router, req)
	testutil.AssertStatusAndError(s.T(), rr, http.StatusNotFound, "not_found")
}

func (s *HandlerSuite) TestFaceLogin() {
	s.Run("match returns the session", func() {
		s.service.EXPECT().FaceLogin(gomock.Any(), "owner-1", gomock.Any()).Return(&models.FaceLoginResult{
			VerifyResult: models.VerifyResult{IsMatch: true},
			Session:      &models.Session{SessionID: id.NewSessionID(), AccessToken: "tok", TokenType: "Bearer"},
		}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/face/login", MatchRequest{OwnerRef: "owner-1", Descriptor: descriptor()})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusOK(s.T(), rr)
		testutil.AssertJSONHasKey(s.T(), rr, "session")
	})

	s.Run("no match is unauthorized", func() {
		s.service.EXPECT().FaceLogin(gomock.Any(), "owner-1", gomock.Any()).Return(&models.FaceLoginResult{
			VerifyResult: models.VerifyResult{IsMatch: false},
		}, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/face/login", MatchRequest{OwnerRef: "owner-1", Descriptor: descriptor()})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatus(s.T(), rr, http.StatusUnauthorized)
	})

	s.Run("not enrolled is forbidden", func() {
		s.service.EXPECT().FaceLogin(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, models.ErrNotEnrolled)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/face/login", MatchRequest{OwnerRef: "owner-1", Descriptor: descriptor()})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertStatusAndError(s.T(), rr, http.StatusForbidden, "forbidden")
	})
}

func (s *HandlerSuite) TestStatusAndRevoke() {
	principalID := id.NewPrincipalID()
	s.service.EXPECT().CheckStatus(gomock.Any(), "asha@example.org").
		Return(&models.EnrollmentStatus{PrincipalID: principalID, Enrolled: true}, nil)
	rr := testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodGet, "/face/status/asha@example.org"))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "enrolled", true)

	s.service.EXPECT().Revoke(gomock.Any(), principalID.String()).
		Return(&models.RevokeResult{PrincipalID: principalID, TemplatesDeactivated: 1}, nil)
	rr = testutil.DoRequest(s.router, testutil.NewRequest(s.T(), http.MethodDelete, "/face/"+principalID.String()))
	testutil.AssertStatusOK(s.T(), rr)
	testutil.AssertJSONContains(s.T(), rr, "templates_deactivated", float64(1))
}
