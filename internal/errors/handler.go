package errors

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"lossdev/internal/triangle"
)

// ErrorHandler provides centralized error handling for the HTTP surface,
// mapping pipeline errors onto API responses.
type ErrorHandler struct {
	logger *slog.Logger
}

// NewErrorHandler creates a new error handler
func NewErrorHandler(logger *slog.Logger) *ErrorHandler {
	return &ErrorHandler{
		logger: logger.With(slog.String("component", "error_handler")),
	}
}

// HandleError logs the error and writes the mapped API response.
func (h *ErrorHandler) HandleError(w http.ResponseWriter, r *http.Request, err error) {
	if err == nil {
		return
	}

	reqID := middleware.GetReqID(r.Context())
	h.logger.ErrorContext(r.Context(), "request failed",
		slog.String("error", err.Error()),
		slog.String("request_id", reqID),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
	)

	apiErr := h.toAPIError(err)
	if reqID != "" {
		apiErr = NewWithDetails(apiErr.StatusCode, apiErr.ErrorCode, apiErr.Message, map[string]string{
			"request_id": reqID,
		})
	}
	render.Render(w, r, apiErr)
}

// toAPIError maps pipeline and transport errors onto API error codes.
func (h *ErrorHandler) toAPIError(err error) *APIError {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}

	var invalidErr *triangle.InvalidInputError
	if errors.As(err, &invalidErr) {
		return New(http.StatusBadRequest, "INVALID_INPUT", invalidErr.Error())
	}

	var insufficientErr *triangle.InsufficientDataError
	if errors.As(err, &insufficientErr) {
		return New(http.StatusUnprocessableEntity, "INSUFFICIENT_DATA", insufficientErr.Error())
	}

	var missingErr *triangle.MissingRelativityError
	if errors.As(err, &missingErr) {
		return New(http.StatusUnprocessableEntity, "MISSING_RELATIVITY", missingErr.Error())
	}

	var dupErr *triangle.DuplicateCellError
	if errors.As(err, &dupErr) {
		return New(http.StatusConflict, "DUPLICATE_CELL", dupErr.Error())
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return New(http.StatusServiceUnavailable, "TIMEOUT", "Request cancelled or timed out")
	}

	return ErrInternalServer
}
