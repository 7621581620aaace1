// Package handler exposes the succession workflow over HTTP.
package handler

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/nirmaltodwal7/government-fund-management-system-sub001/internal/nominee/models"
	id "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain"
	dErrors "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/domain-errors"
	"github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/httputil"
	request "github.com/nirmaltodwal7/government-fund-management-system-sub001/pkg/platform/middleware/request"
)

// DefaultMaxUploadBytes caps a document upload when no limit is configured.
const DefaultMaxUploadBytes int64 = 10 << 20

// multipartMemory is how much of a multipart body is buffered in memory
// before spilling to temporary files.
const multipartMemory = 1 << 20

// Service defines the succession workflow operations the handler needs.
type Service interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.RegistrationResult, error)
	Get(ctx context.Context, nomineeID id.NomineeID) (*models.Nominee, error)
	ProcessVerification(ctx context.Context, tokenString string, action models.Action) (*models.VerificationResult, error)
	ResendVerification(ctx context.Context, nomineeID id.NomineeID) (*models.RegistrationResult, error)
	UploadDocument(ctx context.Context, req models.UploadDocumentRequest) (*models.UploadResult, error)
	DeleteDocument(ctx context.Context, nomineeID id.NomineeID, documentID id.DocumentID) error
	ReviewDocument(ctx context.Context, nomineeID id.NomineeID, documentID id.DocumentID, status models.DocumentStatus) (*models.Document, error)
	UpdateLinkedStatus(ctx context.Context, nomineeID id.NomineeID, update models.LinkedStatusUpdate) (*models.Nominee, error)
}

type Handler struct {
	service        Service
	logger         *slog.Logger
	maxUploadBytes int64
}

type Option func(*Handler)

// WithMaxUploadBytes caps the request body of document uploads.
func WithMaxUploadBytes(n int64) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxUploadBytes = n
		}
	}
}

func New(service Service, logger *slog.Logger, opts ...Option) *Handler {
	h := &Handler{service: service, logger: logger, maxUploadBytes: DefaultMaxUploadBytes}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register mounts the public /nominees routes.
func (h *Handler) Register(r chi.Router) {
	r.Route("/nominees", func(r chi.Router) {
		r.Post("/", h.handleRegister)
		r.Post("/verify", h.handleVerify)
		r.Get("/{id}", h.handleGet)
		r.Post("/{id}/verification/resend", h.handleResend)
		r.Post("/{id}/documents", h.handleUpload)
		r.Delete("/{id}/documents/{documentID}", h.handleDeleteDocument)
	})
}

// RegisterAdmin mounts the operator routes. The caller guards them.
func (h *Handler) RegisterAdmin(r chi.Router) {
	r.Route("/nominees/{id}", func(r chi.Router) {
		r.Patch("/linked-status", h.handleUpdateLinkedStatus)
		r.Patch("/documents/{documentID}", h.handleReviewDocument)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req models.RegisterRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "register", err)
		return
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		h.writeError(ctx, w, "register", err)
		return
	}
	res, err := h.service.Register(ctx, req)
	if err != nil {
		h.writeError(ctx, w, "register", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nomineeID, err := id.ParseNomineeID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(ctx, w, "get", err)
		return
	}
	n, err := h.service.Get(ctx, nomineeID)
	if err != nil {
		h.writeError(ctx, w, "get", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, n)
}

func (h *Handler) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req VerifyRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "verify", err)
		return
	}
	action, err := req.Parse()
	if err != nil {
		h.writeError(ctx, w, "verify", err)
		return
	}
	res, err := h.service.ProcessVerification(ctx, req.Token, action)
	if err != nil {
		h.writeError(ctx, w, "verify", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleResend(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nomineeID, err := id.ParseNomineeID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(ctx, w, "resend", err)
		return
	}
	res, err := h.service.ResendVerification(ctx, nomineeID)
	if err != nil {
		h.writeError(ctx, w, "resend", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, res)
}

func (h *Handler) handleUpload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nomineeID, err := id.ParseNomineeID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(ctx, w, "upload", err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(ctx, w, "upload", dErrors.New(dErrors.CodeValidation,
				fmt.Sprintf("file exceeds the %d byte limit", h.maxUploadBytes)))
			return
		}
		h.writeError(ctx, w, "upload", dErrors.Wrap(err, dErrors.CodeBadRequest, "invalid multipart body"))
		return
	}
	defer func() {
		_ = r.MultipartForm.RemoveAll()
	}()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.writeError(ctx, w, "upload", dErrors.New(dErrors.CodeValidation, "file is required"))
		return
	}
	defer file.Close()

	res, err := h.service.UploadDocument(ctx, models.UploadDocumentRequest{
		NomineeID:   nomineeID,
		Type:        r.FormValue("type"),
		FileName:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
		UploadedBy:  "nominee:" + nomineeID.String(),
	})
	if err != nil {
		h.writeError(ctx, w, "upload", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, res)
}

func (h *Handler) handleDeleteDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nomineeID, documentID, err := documentParams(r)
	if err != nil {
		h.writeError(ctx, w, "delete_document", err)
		return
	}
	if err := h.service.DeleteDocument(ctx, nomineeID, documentID); err != nil {
		h.writeError(ctx, w, "delete_document", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleReviewDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nomineeID, documentID, err := documentParams(r)
	if err != nil {
		h.writeError(ctx, w, "review_document", err)
		return
	}
	var req ReviewRequest
	if err := httputil.DecodeJSON(r, &req); err != nil {
		h.writeError(ctx, w, "review_document", err)
		return
	}
	status, err := models.ParseReviewStatus(req.Status)
	if err != nil {
		h.writeError(ctx, w, "review_document", err)
		return
	}
	doc, err := h.service.ReviewDocument(ctx, nomineeID, documentID, status)
	if err != nil {
		h.writeError(ctx, w, "review_document", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, doc)
}

func (h *Handler) handleUpdateLinkedStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	nomineeID, err := id.ParseNomineeID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(ctx, w, "update_linked_status", err)
		return
	}
	var update models.LinkedStatusUpdate
	if err := httputil.DecodeJSON(r, &update); err != nil {
		h.writeError(ctx, w, "update_linked_status", err)
		return
	}
	if err := update.Validate(); err != nil {
		h.writeError(ctx, w, "update_linked_status", err)
		return
	}
	n, err := h.service.UpdateLinkedStatus(ctx, nomineeID, update)
	if err != nil {
		h.writeError(ctx, w, "update_linked_status", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, n)
}

func documentParams(r *http.Request) (id.NomineeID, id.DocumentID, error) {
	nomineeID, err := id.ParseNomineeID(chi.URLParam(r, "id"))
	if err != nil {
		return id.NomineeID{}, id.DocumentID{}, err
	}
	documentID, err := id.ParseDocumentID(chi.URLParam(r, "documentID"))
	if err != nil {
		return id.NomineeID{}, id.DocumentID{}, err
	}
	return nomineeID, documentID, nil
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, op string, err error) {
	code := dErrors.CodeOf(err)
	if dErrors.HTTPStatus(code) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, "nominee request failed",
			"operation", op,
			"error", err,
			"request_id", request.GetRequestID(ctx),
		)
	} else {
		h.logger.WarnContext(ctx, "nominee request rejected",
			"operation", op,
			"code", string(code),
			"request_id", request.GetRequestID(ctx),
		)
	}
	httputil.WriteError(w, err)
}
