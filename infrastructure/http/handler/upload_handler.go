package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/infrastructure/http/middleware"
	"github.com/franquianet/portal/infrastructure/http/response"
	"github.com/franquianet/portal/infrastructure/service/logger"
)

const (
	uploadFormField = "file"
	// multipartOverhead covers form fields and part headers on top of the file.
	multipartOverhead = 1 << 20
	multipartMemory   = 8 << 20
)

type UploadHandler struct {
	uploadUseCase  inbound.UploadUseCase
	authMiddleware *middleware.AuthMiddleware
	maxBytes       int64
	logger         logger.Logger
}

func NewUploadHandler(uploadUseCase inbound.UploadUseCase, authMiddleware *middleware.AuthMiddleware, maxBytes int64, log logger.Logger) *UploadHandler {
	return &UploadHandler{
		uploadUseCase:  uploadUseCase,
		authMiddleware: authMiddleware,
		maxBytes:       maxBytes,
		logger:         log,
	}
}

func (h *UploadHandler) RegisterRoutes(router *mux.Router) {
	auth := h.authMiddleware.RequireAuth
	router.HandleFunc("/api/uploads", auth(h.Upload)).Methods(http.MethodPost)
	router.HandleFunc("/api/uploads", auth(h.List)).Methods(http.MethodGet)
	router.HandleFunc("/api/uploads/{id}", auth(h.Download)).Methods(http.MethodGet)
}

// Upload accepts a multipart form with a "file" part plus owner_type and owner_id.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes+multipartOverhead)
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			response.FromError(w, inbound.ErrFileTooLarge)
			return
		}
		response.BadRequest(w, "Invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile(uploadFormField)
	if err != nil {
		response.UnprocessableEntity(w, "file is required")
		return
	}
	defer file.Close()

	req := inbound.UploadRequest{
		OwnerType: r.FormValue("owner_type"),
		OwnerID:   r.FormValue("owner_id"),
		FileName:  header.Filename,
		Content:   file,
	}
	if claims := middleware.GetUserClaims(r.Context()); claims != nil {
		req.UploadedBy = claims.UserID
	}

	attachment, err := h.uploadUseCase.Upload(r.Context(), req)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusCreated, "File uploaded successfully", attachment)
}

func (h *UploadHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	attachments, err := h.uploadUseCase.ListByOwner(r.Context(), q.Get("owner_type"), q.Get("owner_id"))
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Success(w, http.StatusOK, "success", attachments)
}

func (h *UploadHandler) Download(w http.ResponseWriter, r *http.Request) {
	download, err := h.uploadUseCase.Download(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		response.FromError(w, err)
		return
	}
	defer download.Content.Close()

	a := download.Attachment
	w.Header().Set("Content-Type", a.ContentType)
	w.Header().Set("Content-Disposition", response.ContentDisposition(a.FileName))
	w.Header().Set("Content-Length", strconv.FormatInt(a.Size, 10))
	w.WriteHeader(http.StatusOK)
	if _, err := io.Copy(w, download.Content); err != nil {
		h.logger.Error(r.Context(), "Failed to stream attachment", err, map[string]interface{}{
			"attachment_id": a.ID,
		})
	}
}
