package response

import (
	"errors"
	"net/http"

	"github.com/franquianet/portal/application/port/inbound"
	"github.com/franquianet/portal/application/port/outbound"
	"github.com/franquianet/portal/application/usecase"
	"github.com/franquianet/portal/domain"
	"github.com/franquianet/portal/domain/entity"
	apperror "github.com/franquianet/portal/pkg/error"
)

type errorMapping struct {
	target  error
	status  int
	message string
}

// Sentinel errors in match order. The first errors.Is hit wins.
var errorMappings = []errorMapping{
	{usecase.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid email or password"},
	{usecase.ErrInvalidRefreshToken, http.StatusUnauthorized, "Invalid or expired refresh token"},
	{usecase.ErrInactiveUser, http.StatusForbidden, "User account is inactive"},
	{usecase.ErrTooManyAttempts, http.StatusTooManyRequests, "Too many login attempts, try again later"},

	{outbound.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{outbound.ErrSupplierNotFound, http.StatusNotFound, "Supplier not found"},
	{outbound.ErrStoreNotFound, http.StatusNotFound, "Store not found"},
	{outbound.ErrTicketNotFound, http.StatusNotFound, "Ticket not found"},
	{outbound.ErrAttachmentNotFound, http.StatusNotFound, "Attachment not found"},
	{outbound.ErrFileNotFound, http.StatusNotFound, "File not found"},
	{entity.ErrChecklistItemNotFound, http.StatusNotFound, "Checklist item not found"},

	{outbound.ErrUserAlreadyExists, http.StatusConflict, "Email already exists"},
	{outbound.ErrSupplierAlreadyExists, http.StatusConflict, "Supplier document already exists"},
	{outbound.ErrSupplierHasStores, http.StatusConflict, "Supplier still has stores"},
	{entity.ErrInvalidTransition, http.StatusConflict, "Invalid status transition"},

	{inbound.ErrFileTooLarge, http.StatusRequestEntityTooLarge, "File exceeds the maximum upload size"},
	{inbound.ErrUnsupportedFileType, http.StatusUnsupportedMediaType, "File type not allowed"},
	{inbound.ErrEmptyFile, http.StatusBadRequest, "File is empty"},

	{inbound.ErrUnsupportedFormat, http.StatusBadRequest, "Unsupported report format"},
	{inbound.ErrMetricsUnavailable, http.StatusBadGateway, "fetch failed"},
	{domain.ErrInvalidSnapshot, http.StatusBadGateway, "fetch failed"},
	{inbound.ErrRenderFailed, http.StatusInternalServerError, "render failed"},
}

// Status classifies err into an HTTP status and client-facing message.
func Status(err error) (int, string) {
	for _, m := range errorMappings {
		if errors.Is(err, m.target) {
			return m.status, m.message
		}
	}
	appErr := apperror.MapError(err)
	return appErr.Status, appErr.Message
}

// FromError writes the envelope for err.
func FromError(w http.ResponseWriter, err error) {
	status, message := Status(err)
	Error(w, status, message)
}
