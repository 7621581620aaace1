package httpapi

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/admin"
	authmw "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/auth"
	request "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/request"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/testutil"
)

type stubRoutes struct{}

func (stubRoutes) Register(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
}

func (stubRoutes) RegisterAdmin(r chi.Router) {
	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusNoContent) })
}

type rejectingValidator struct{}

func (rejectingValidator) ValidateToken(string) (*authmw.Claims, error) {
	return nil, errors.New("invalid")
}

func newTestRouter(checks map[string]Check) http.Handler {
	return NewRouter(Config{
		Logger:         slog.New(slog.NewTextHandler(io.Discard, nil)),
		AdminToken:     "operator",
		Public:         []Registrar{stubRoutes{}},
		Admin:          []AdminRegistrar{stubRoutes{}},
		Authenticated:  []Registrar{authedRoutes{}},
		TokenValidator: rejectingValidator{},
		Checks:         checks,
	})
}

type authedRoutes struct{}

func (authedRoutes) Register(r chi.Router) {
	r.Get("/me", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
}

func TestHealth(t *testing.T) {
	t.Run("live", func(t *testing.T) {
		rr := testutil.DoRequest(newTestRouter(nil), testutil.NewRequest(t, http.MethodGet, "/health/live"))
		testutil.AssertStatusOK(t, rr)
		assert.NotEmpty(t, rr.Header().Get(request.HeaderRequestID))
	})

	t.Run("ready when every check passes", func(t *testing.T) {
		router := newTestRouter(map[string]Check{
			"postgres": func(context.Context) error { return nil },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health/ready"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "ok")
	})

	t.Run("not ready when a check fails", func(t *testing.T) {
		router := newTestRouter(map[string]Check{
			"postgres": func(context.Context) error { return nil },
			"redis":    func(context.Context) error { return errors.New("connection refused") },
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/health/ready"))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)

		res := testutil.UnmarshalResponse[readinessResponse](t, rr)
		assert.Equal(t, "ok", res.Checks["postgres"])
		assert.Equal(t, "connection refused", res.Checks["redis"])
	})
}

func TestMetricsEndpoint(t *testing.T) {
	rr := testutil.DoRequest(newTestRouter(nil), testutil.NewRequest(t, http.MethodGet, "/metrics"))
	testutil.AssertStatusOK(t, rr)
}

func TestRouteGroups(t *testing.T) {
	router := newTestRouter(nil)

	t.Run("public routes are open", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/ping"))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})

	t.Run("admin routes require the token", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/admin/ping"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)

		req := testutil.NewRequest(t, http.MethodGet, "/admin/ping")
		req.Header.Set(admin.HeaderAdminToken, "operator")
		rr = testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})

	t.Run("authenticated routes reject a bad bearer", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/me"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)

		req := testutil.NewRequest(t, http.MethodGet, "/me")
		req.Header.Set("Authorization", "Bearer forged")
		rr = testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}
