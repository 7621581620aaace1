// Package handler exposes the biometric service over HTTP.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/biometric/models"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/httputil"
	request "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/request"
)

// Service defines the biometric operations the handler needs.
type Service interface {
	Enroll(ctx context.Context, ownerRef string, descriptor models.Descriptor, capturedAt time.Time) (*models.EnrollResult, error)
	Verify(ctx context.Context, ownerRef string, descriptor models.Descriptor) (*models.VerifyResult, error)
	FaceLogin(ctx context.Context, ownerRef string, descriptor models.Descriptor) (*models.FaceLoginResult, error)
	CheckStatus(ctx context.Context, ownerRef string) (*models.EnrollmentStatus, error)
	Revoke(ctx context.Context, ownerRef string) (*models.RevokeResult, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts the /face routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/face", func(r chi.Router) {
		r.Post("/enroll", h.handleEnroll)
		r.Post("/verify", h.handleVerify)
		r.Post("/login", h.handleFaceLogin)
		r.Get("/status/{ownerRef}", h.handleStatus)
		r.Delete("/{ownerRef}", h.handleRevoke)
	})
}

func (h *Handler) handleEnroll(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req EnrollRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "enroll", err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.writeError(ctx, w, "enroll", err)
		return
	}

	var capturedAt time.Time
	if req.CapturedAt != nil {
		capturedAt = *req.CapturedAt
	}
	res, err := h.service.Enroll(ctx, req.OwnerRef, req.Descriptor, capturedAt)
	if err != nil {
		h.writeError(ctx, w, "enroll", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := h.decodeMatch(w, r, "verify")
	if !ok {
		return
	}
	res, err := h.service.Verify(ctx, req.OwnerRef, req.Descriptor)
	if err != nil {
		h.writeError(ctx, w, "verify", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleFaceLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	req, ok := h.decodeMatch(w, r, "face_login")
	if !ok {
		return
	}
	res, err := h.service.FaceLogin(ctx, req.OwnerRef, req.Descriptor)
	if err != nil {
		h.writeError(ctx, w, "face_login", err)
		return
	}
	if !res.IsMatch {
		httputil.WriteJSON(w, http.StatusUnauthorized, res)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.CheckStatus(ctx, chi.URLParam(r, "ownerRef"))
	if err != nil {
		h.writeError(ctx, w, "status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleRevoke(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	res, err := h.service.Revoke(ctx, chi.URLParam(r, "ownerRef"))
	if err != nil {
		h.writeError(ctx, w, "revoke", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) decodeMatch(w http.ResponseWriter, r *http.Request, op string) (*MatchRequest, bool) {
	var req MatchRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(r.Context(), w, op, err)
		return nil, false
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.writeError(r.Context(), w, op, err)
		return nil, false
	}
	return &req, true
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	code := dErrors.CodeOf(err)
	if dErrors.HTTPStatus(code) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "biometric request failed",
			"operation", op,
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
	} else {
		h.logger.WarnContext(ctx, "biometric request rejected",
			"operation", op,
			"code", string(code),
			"request_id", request.GetRequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
