package handler

import (
	"net/http"

	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/service"
	"github.com/crisphealth/health-assistant/pkg/envelope"
	"github.com/crisphealth/health-assistant/pkg/pagination"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type MealHandler struct {
	service service.MealService
	logger  *zap.Logger
}

func NewMealHandler(service service.MealService, logger *zap.Logger) *MealHandler {
	return &MealHandler{service: service, logger: logger.Named("meals")}
}

// List handles GET /v1/meals
// @Summary Browse the meal catalog
// @Description Meals in catalog order (breakfast, lunch, dinner, snack) with cursor-based pagination.
// @Tags meals
// @Produce json
// @Param category query string false "Restrict to one category" Enums(breakfast, lunch, dinner, snack)
// @Param limit query integer false "Page size" default(20) minimum(1) maximum(100)
// @Param cursor query string false "Cursor from the previous page's next_cursor"
// @Success 200 {object} envelope.Envelope{data=domain.MealPage}
// @Failure 400 {object} envelope.Envelope "Invalid category or cursor"
// @Failure 500 {object} envelope.Envelope "Server error"
// @Router /v1/meals [get]
func (h *MealHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.MealFilter{
		Category: q.Get("category"),
		Limit:    parseIntParam(r, "limit", pagination.DefaultLimit),
		Cursor:   q.Get("cursor"),
	}

	page, err := h.service.List(r.Context(), filter)
	if err != nil {
		errorEnvelope(h.logger, err, "").Write(w)
		return
	}

	envelope.OK(page).Write(w)
}

// Get handles GET /v1/meals/{mealId}
// @Summary Get a meal
// @Tags meals
// @Produce json
// @Param mealId path string true "Meal ID" example(breakfast_001)
// @Success 200 {object} envelope.Envelope{data=domain.Meal}
// @Failure 404 {object} envelope.Envelope "Meal not found"
// @Failure 500 {object} envelope.Envelope "Server error"
// @Router /v1/meals/{mealId} [get]
func (h *MealHandler) Get(w http.ResponseWriter, r *http.Request) {
	meal, err := h.service.Get(r.Context(), chi.URLParam(r, "mealId"))
	if err != nil {
		errorEnvelope(h.logger, err, "Meal not found").Write(w)
		return
	}

	envelope.OK(meal).Write(w)
}
