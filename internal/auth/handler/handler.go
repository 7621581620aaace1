// Package handler exposes session introspection and logout.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/auth/models"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/httputil"
	request "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/request"
)

type Service interface {
	CurrentSession(ctx context.Context) (*models.SessionSummary, error)
	Logout(ctx context.Context) (*models.LogoutResult, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the /auth routes. The caller must wrap r with RequireAuth.
func (h *Handler) Register(r chi.Router) {
	r.Get("/auth/session", h.handleSession)
	r.Post("/auth/logout", h.handleLogout)
}

func (h *Handler) handleSession(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.CurrentSession(ctx)
	if err != nil {
		h.writeError(ctx, w, "session", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.Logout(ctx)
	if err != nil {
		h.writeError(ctx, w, "logout", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	if dErrors.HTTPStatus(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "auth request failed",
			"operation", op,
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
