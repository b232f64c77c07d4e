package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "lossdev/internal/errors"
	"lossdev/internal/services"
	"lossdev/internal/triangle"
)

// TriangleRunner is the service capability the handler depends on.
type TriangleRunner interface {
	Run(ctx context.Context, req services.RunRequest) (*services.RunResult, error)
}

// TriangleHandler handles triangle development HTTP requests
type TriangleHandler struct {
	service      TriangleRunner
	logger       *slog.Logger
	validate     *validator.Validate
	errorHandler *apierrors.ErrorHandler
}

// NewTriangleHandler creates a new triangle handler
func NewTriangleHandler(service TriangleRunner, logger *slog.Logger) *TriangleHandler {
	return &TriangleHandler{
		service:      service,
		logger:       logger,
		validate:     validator.New(),
		errorHandler: apierrors.NewErrorHandler(logger),
	}
}

// RegisterRoutes registers the triangle routes
func (h *TriangleHandler) RegisterRoutes(r chi.Router) {
	r.Route("/triangle", func(r chi.Router) {
		r.Post("/develop", h.Develop)
		r.Get("/synthetic", h.Synthetic)
	})
}

// DevelopRequest is the develop endpoint payload
type DevelopRequest struct {
	Observations     []ObservationPayload `json:"observations" validate:"required,min=1,dive"`
	QuartersPerCycle int                  `json:"quarters_per_cycle" validate:"omitempty,min=1"`
	Compare          bool                 `json:"compare"`
}

// ObservationPayload is one incremental loss record in the request body
type ObservationPayload struct {
	Origin      int     `json:"origin" validate:"required,min=1"`
	Development int     `json:"development" validate:"required,min=1"`
	Amount      float64 `json:"amount" validate:"min=0"`
}

// Develop runs the seasonality-adjusted development pipeline on the posted
// observations.
func (h *TriangleHandler) Develop(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req DevelopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrInvalidRequest)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.logger.WarnContext(ctx, "develop request failed validation",
			slog.String("error", err.Error()))
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("observations", err.Error()))
		return
	}

	observations := make([]triangle.Observation, len(req.Observations))
	for i, o := range req.Observations {
		observations[i] = triangle.Observation{
			Origin:      o.Origin,
			Development: o.Development,
			Amount:      o.Amount,
		}
	}

	h.logger.InfoContext(ctx, "developing posted triangle",
		slog.Int("observations", len(observations)),
		slog.Bool("compare", req.Compare),
	)

	result, err := h.service.Run(ctx, services.RunRequest{
		Observations:     observations,
		QuartersPerCycle: req.QuartersPerCycle,
		Compare:          req.Compare,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}

// Synthetic develops the deterministic illustrative dataset. The origins
// query parameter sizes the triangle (default 8).
func (h *TriangleHandler) Synthetic(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	origins := 8
	if raw := r.URL.Query().Get("origins"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			h.errorHandler.HandleError(w, r, apierrors.ErrValidation("origins", "origins must be a positive integer"))
			return
		}
		origins = parsed
	}

	h.logger.InfoContext(ctx, "developing synthetic triangle",
		slog.Int("origins", origins))

	result, err := h.service.Run(ctx, services.RunRequest{
		SyntheticOrigins: origins,
		Compare:          true,
	})
	if err != nil {
		h.errorHandler.HandleError(w, r, err)
		return
	}

	render.JSON(w, r, result)
}
