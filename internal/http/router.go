// Package httpapi assembles the HTTP surface: shared middleware, probes,
// metrics and the feature handlers.
package httpapi

import (
	"context"
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/httputil"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/admin"
	authmw "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/auth"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/metadata"
	request "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/request"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/requesttime"
)

const readinessTimeout = 2 * time.Second

// Registrar mounts public routes.
type Registrar interface {
	Register(r chi.Router)
}

// AdminRegistrar mounts operator routes under /admin.
type AdminRegistrar interface {
	RegisterAdmin(r chi.Router)
}

// Check is a readiness probe for one dependency.
type Check func(ctx context.Context) error

type Config struct {
	Logger     *slog.Logger
	AdminToken string

	// Public routes need no credentials.
	Public []Registrar
	// Admin routes sit behind the static admin token.
	Admin []AdminRegistrar
	// Authenticated routes sit behind bearer-token authentication.
	Authenticated []Registrar

	TokenValidator authmw.TokenValidator
	Sessions       authmw.SessionChecker

	// Checks are run by /health/ready; a failing check reports 503.
	Checks map[string]Check

	// Middleware runs after the shared chain and before every route.
	Middleware []func(http.Handler) http.Handler
}

func NewRouter(cfg Config) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(request.Recover(logger))
	r.Use(request.Logger(logger))
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	for _, mw := range cfg.Middleware {
		r.Use(mw)
	}

	r.Get("/health/live", func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/health/ready", readiness(cfg.Checks))
	r.Handle("/metrics", promhttp.Handler())

	for _, h := range cfg.Public {
		h.Register(r)
	}

	if len(cfg.Admin) > 0 {
		r.Route("/admin", func(r chi.Router) {
			r.Use(admin.RequireAdminToken(cfg.AdminToken, logger))
			for _, h := range cfg.Admin {
				h.RegisterAdmin(r)
			}
		})
	}

	if len(cfg.Authenticated) > 0 && cfg.TokenValidator != nil {
		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireAuth(cfg.TokenValidator, cfg.Sessions, logger))
			for _, h := range cfg.Authenticated {
				h.Register(r)
			}
		})
	}

	return r
}

type readinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

func readiness(checks map[string]Check) http.HandlerFunc {
	names := make([]string, 0, len(checks))
	for name := range checks {
		names = append(names, name)
	}
	sort.Strings(names)

	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readinessTimeout)
		defer cancel()

		res := readinessResponse{Status: "ok", Checks: make(map[string]string, len(names))}
		for _, name := range names {
			if err := checks[name](ctx); err != nil {
				res.Status = "unavailable"
				res.Checks[name] = err.Error()
				continue
			}
			res.Checks[name] = "ok"
		}

		status := http.StatusOK
		if res.Status != "ok" {
			status = http.StatusServiceUnavailable
		}
		httputil.WriteJSON(w, status, res)
	}
}
