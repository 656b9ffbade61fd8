package utils

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"GO2GETHER_CREATOR-HUB/internal/dto"
	"GO2GETHER_CREATOR-HUB/internal/models"
)

// Machine-readable error codes carried in dto.ErrorResponse.Code.
const (
	CodeBadRequest             = "bad_request"
	CodeValidation             = "validation_error"
	CodeConflict               = "conflict"
	CodeNotFound               = "not_found"
	CodeCreatorProfileNotFound = "creator_profile_not_found"
	CodeTemplateNotFound       = "template_not_found"
	CodeAffiliateLinkNotFound  = "affiliate_link_not_found"
	CodeInvalidState           = "invalid_state"
	CodeUnauthorized           = "unauthorized"
	CodeForbidden              = "forbidden"
	CodeInternal               = "internal_error"
)

// WriteJSONResponse writes a JSON response to the HTTP response writer
func WriteJSONResponse(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// WriteErrorResponse writes a dto.ErrorResponse with the given status.
func WriteErrorResponse(w http.ResponseWriter, status int, code, message string) {
	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	WriteJSONResponse(w, status, dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: message,
		Code:    code,
	})
}

// WriteServiceError translates a domain error into its HTTP status and code.
// Unknown errors are logged and reported as 500 without detail.
func WriteServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := ErrorStatus(err)

	resp := dto.ErrorResponse{
		Error:   http.StatusText(status),
		Message: err.Error(),
		Code:    code,
	}

	var verr *models.ValidationError
	var conflict *models.ConflictError
	switch {
	case errors.As(err, &verr):
		resp.Message = "request validation failed"
		resp.Fields = verr.Errors
	case errors.As(err, &conflict):
		resp.Message = conflict.Message
	case status == http.StatusInternalServerError:
		slog.ErrorContext(r.Context(), "request failed",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("request_id", GetRequestID(r.Context())),
			slog.String("error", err.Error()),
		)
		resp.Message = "internal server error"
	}

	if status == http.StatusUnauthorized {
		w.Header().Set("WWW-Authenticate", "Bearer")
	}
	WriteJSONResponse(w, status, resp)
}

// ErrorStatus maps an error to an HTTP status and error code.
func ErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrValidation):
		return http.StatusBadRequest, CodeValidation
	case errors.Is(err, models.ErrConflict):
		return http.StatusConflict, CodeConflict
	case errors.Is(err, models.ErrInvalidState):
		return http.StatusConflict, CodeInvalidState
	case errors.Is(err, models.ErrCreatorProfileNotFound):
		return http.StatusNotFound, CodeCreatorProfileNotFound
	case errors.Is(err, models.ErrTemplateNotFound):
		return http.StatusNotFound, CodeTemplateNotFound
	case errors.Is(err, models.ErrAffiliateLinkNotFound):
		return http.StatusNotFound, CodeAffiliateLinkNotFound
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound, CodeNotFound
	case errors.Is(err, models.ErrUnauthorized):
		return http.StatusUnauthorized, CodeUnauthorized
	case errors.Is(err, models.ErrForbidden):
		return http.StatusForbidden, CodeForbidden
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, CodeInternal
	default:
		return http.StatusInternalServerError, CodeInternal
	}
}
