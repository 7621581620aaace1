package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/models"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/service/mocks"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/store/session"
	jwttoken "github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/jwt_token"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/audit"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/requestcontext"
)

type ServiceSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	audit    *mocks.MockAuditPublisher
	sessions *session.InMemory
	jwt      *jwttoken.JWTService
	service  *Service
	now      time.Time
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.audit = mocks.NewMockAuditPublisher(s.ctrl)
	s.sessions = session.NewInMemory()
	s.jwt = jwttoken.NewJWTService("test-key", "pension", "pension-api")
	s.now = time.Now().UTC().Truncate(time.Second)
	s.service = New(s.sessions, s.jwt,
		WithAuditPublisher(s.audit),
		WithSessionTTL(30*time.Minute),
	)
}

func (s *ServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *ServiceSuite) requestCtx() context.Context {
	ctx := requestcontext.WithTime(context.Background(), s.now)
	return requestcontext.WithClientMetadata(ctx, "10.0.0.7",
		"Mozilla/5.0 (X11; Linux x86_64; rv:121.0) Gecko/20100101 Firefox/121.0")
}

func (s *ServiceSuite) authedCtx(issued *models.IssuedSession) context.Context {
	ctx := requestcontext.WithPrincipalID(s.requestCtx(), issued.Session.PrincipalID)
	return requestcontext.WithSessionID(ctx, issued.Session.ID)
}

func (s *ServiceSuite) issue() *models.IssuedSession {
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(nil)
	issued, err := s.service.IssueSession(s.requestCtx(), id.NewPrincipalID())
	s.Require().NoError(err)
	return issued
}

func (s *ServiceSuite) TestIssueSession() {
	principalID := id.NewPrincipalID()
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		s.Equal(string(audit.EventSessionCreated), e.Action)
		s.Equal(principalID, e.PrincipalID)
		return nil
	})

	issued, err := s.service.IssueSession(s.requestCtx(), principalID)
	s.Require().NoError(err)
	s.Equal(models.TokenTypeBearer, issued.TokenType)
	s.Equal(s.now.Add(30*time.Minute), issued.Session.ExpiresAt)
	s.Equal("10.0.0.7", issued.Session.ClientIP)
	s.Contains(issued.Session.DeviceDisplayName, "Firefox")

	claims, err := s.jwt.ValidateToken(issued.AccessToken)
	s.Require().NoError(err)
	s.Equal(issued.Session.ID.String(), claims.SessionID)
	s.Equal(issued.Session.LastAccessTokenJTI, claims.ID)

	stored, err := s.sessions.FindByID(context.Background(), issued.Session.ID)
	s.Require().NoError(err)
	s.Equal(principalID, stored.PrincipalID)
}

func (s *ServiceSuite) TestIssueSession_AuditFailureDoesNotBlock() {
	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("outbox down"))
	issued, err := s.service.IssueSession(s.requestCtx(), id.NewPrincipalID())
	s.Require().NoError(err)
	s.NotEmpty(issued.AccessToken)
}

func (s *ServiceSuite) TestIssueSession_StoreFailure() {
	store := mocks.NewMockSessionStore(s.ctrl)
	store.EXPECT().Create(gomock.Any(), gomock.Any()).Return(errors.New("redis down"))
	svc := New(store, s.jwt)

	_, err := svc.IssueSession(s.requestCtx(), id.NewPrincipalID())
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *ServiceSuite) TestIsSessionActive() {
	issued := s.issue()

	active, err := s.service.IsSessionActive(s.requestCtx(), issued.Session.ID)
	s.Require().NoError(err)
	s.True(active)

	later := requestcontext.WithTime(context.Background(), s.now.Add(31*time.Minute))
	active, err = s.service.IsSessionActive(later, issued.Session.ID)
	s.Require().NoError(err)
	s.False(active, "expired")

	active, err = s.service.IsSessionActive(s.requestCtx(), id.NewSessionID())
	s.Require().NoError(err)
	s.False(active, "unknown")
}

func (s *ServiceSuite) TestCurrentSession() {
	issued := s.issue()

	summary, err := s.service.CurrentSession(s.authedCtx(issued))
	s.Require().NoError(err)
	s.Equal(issued.Session.ID, summary.SessionID)
	s.True(summary.IsCurrent)

	_, err = s.service.CurrentSession(s.requestCtx())
	s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))

	other := requestcontext.WithPrincipalID(s.authedCtx(issued), id.NewPrincipalID())
	_, err = s.service.CurrentSession(other)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *ServiceSuite) TestLogout() {
	issued := s.issue()
	ctx := s.authedCtx(issued)

	s.audit.EXPECT().Emit(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e audit.Event) error {
		s.Equal(string(audit.EventSessionRevoked), e.Action)
		s.Equal("user_initiated", e.Reason)
		return nil
	})
	res, err := s.service.Logout(ctx)
	s.Require().NoError(err)
	s.True(res.Revoked)

	active, err := s.service.IsSessionActive(ctx, issued.Session.ID)
	s.Require().NoError(err)
	s.False(active)

	res, err = s.service.Logout(ctx)
	s.Require().NoError(err)
	s.False(res.Revoked, "second logout is a no-op")
}
