package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/crisphealth/health-assistant/internal/api/validation"
	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/service"
	"github.com/crisphealth/health-assistant/pkg/envelope"
	"go.uber.org/zap"
)

// FeedbackResult reports whether a rating reached the tracing backend.
type FeedbackResult struct {
	TraceID  string `json:"trace_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	Recorded bool   `json:"recorded" example:"true"`
}

type FeedbackHandler struct {
	service service.FeedbackService
	logger  *zap.Logger
}

func NewFeedbackHandler(service service.FeedbackService, logger *zap.Logger) *FeedbackHandler {
	return &FeedbackHandler{service: service, logger: logger.Named("feedback")}
}

// Submit handles POST /v1/feedback
// @Summary Rate a narrated response
// @Description Submit a 1-5 rating and optional comment for a response carrying a trace_id. Ratings are accepted even when they cannot be recorded.
// @Tags feedback
// @Accept json
// @Produce json
// @Param request body domain.FeedbackRequest true "Feedback"
// @Success 200 {object} envelope.Envelope{data=FeedbackResult}
// @Failure 400 {object} envelope.Envelope "Invalid JSON body"
// @Failure 422 {object} envelope.Envelope "Invalid fields"
// @Router /v1/feedback [post]
func (h *FeedbackHandler) Submit(w http.ResponseWriter, r *http.Request) {
	var req domain.FeedbackRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		envelope.BadRequest("Invalid JSON body").Write(w)
		return
	}

	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		envelope.ValidationError(fieldErrors).Write(w)
		return
	}

	result := FeedbackResult{TraceID: req.TraceID, Recorded: true}
	if err := h.service.Submit(r.Context(), req); err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			envelope.BadRequest(reason(err, domain.ErrInvalidArgument)).Write(w)
			return
		}
		// Losing a rating must not fail the client
		h.logger.Warn("feedback not recorded", zap.String("trace_id", req.TraceID), zap.Error(err))
		result.Recorded = false
	}

	envelope.OK(result).Write(w)
}
