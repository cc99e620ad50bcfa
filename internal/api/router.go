package api

import (
	"net/http"

	_ "github.com/crisphealth/health-assistant/docs"
	"github.com/crisphealth/health-assistant/internal/api/handler"
	"github.com/crisphealth/health-assistant/internal/api/middleware"
	"github.com/crisphealth/health-assistant/pkg/envelope"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.uber.org/zap"
)

// HealthStatus is the GET /health payload.
type HealthStatus struct {
	Status  string `json:"status" example:"healthy"`
	Server  string `json:"server" example:"Crisp Health Assistant MCP Server"`
	Version string `json:"version" example:"1.0.0"`
}

type Router struct {
	toolHandler     *handler.ToolHandler
	mealHandler     *handler.MealHandler
	feedbackHandler *handler.FeedbackHandler
	chatHandler     *handler.ChatHandler
	logger          *zap.Logger
}

func NewRouter(
	toolHandler *handler.ToolHandler,
	mealHandler *handler.MealHandler,
	feedbackHandler *handler.FeedbackHandler,
	chatHandler *handler.ChatHandler,
	logger *zap.Logger,
) *Router {
	return &Router{
		toolHandler:     toolHandler,
		mealHandler:     mealHandler,
		feedbackHandler: feedbackHandler,
		chatHandler:     chatHandler,
		logger:          logger,
	}
}

func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(middleware.Recovery(rt.logger))
	r.Use(middleware.Logger(rt.logger.Named("http")))
	r.Use(middleware.Tracing)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		envelope.NotFound("Endpoint not found").Write(w)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		envelope.Fail(http.StatusMethodNotAllowed, "Method not allowed").Write(w)
	})

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		envelope.OK(HealthStatus{
			Status:  "healthy",
			Server:  handler.ServerName,
			Version: handler.ServerVersion,
		}).Write(w)
	})

	// Swagger documentation
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("list"),
		httpSwagger.DomID("swagger-ui"),
	))

	// MCP tool routes
	r.Route("/mcp", func(r chi.Router) {
		r.Get("/info", rt.toolHandler.Info)
		r.Post("/call", rt.toolHandler.Call)

		r.Post("/health-data", rt.toolHandler.GetHealthData)
		r.Post("/health-question", rt.toolHandler.AskHealthQuestion)
		r.Post("/health-summary", rt.toolHandler.GetHealthSummary)
		r.Post("/health-trends", rt.toolHandler.GetHealthTrends)
		r.Post("/meal-recommendations", rt.toolHandler.GetMealRecommendations)
	})

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		r.Route("/meals", func(r chi.Router) {
			r.Get("/", rt.mealHandler.List)
			r.Get("/{mealId}", rt.mealHandler.Get)
		})
		r.Post("/feedback", rt.feedbackHandler.Submit)
		r.Get("/health/chat", rt.chatHandler.Serve)
	})

	return r
}
