package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/report"
	"github.com/franquianet/portal/infrastructure/http/middleware"
	"github.com/franquianet/portal/infrastructure/http/response"
)

type ReportHandler struct {
	reportUseCase  inbound.ReportUseCase
	authMiddleware *middleware.AuthMiddleware
}

func NewReportHandler(reportUseCase inbound.ReportUseCase, authMiddleware *middleware.AuthMiddleware) *ReportHandler {
	return &ReportHandler{
		reportUseCase:  reportUseCase,
		authMiddleware: authMiddleware,
	}
}

func (h *ReportHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/reports/management", h.authMiddleware.RequireAdmin(h.Management)).Methods(http.MethodGet)
}

// Management renders the management report. ?format= is pdf (default) or xlsx.
func (h *ReportHandler) Management(w http.ResponseWriter, r *http.Request) {
	format := report.FormatPDF
	if raw := r.URL.Query().Get("format"); raw != "" {
		parsed, ok := report.ParseFormat(raw)
		if !ok {
			response.FromError(w, inbound.ErrUnsupportedFormat)
			return
		}
		format = parsed
	}

	artifact, err := h.reportUseCase.Export(r.Context(), format)
	if err != nil {
		response.FromError(w, err)
		return
	}
	response.Attachment(w, artifact.FileName, artifact.ContentType, artifact.Data)
}
