package handler

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/ThinkInAIXYZ/go-mcp/protocol"
	"github.com/crisphealth/health-assistant/internal/api/validation"
	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/service"
	"github.com/crisphealth/health-assistant/pkg/envelope"
	"go.uber.org/zap"
)

const (
	ServerName    = "Crisp Health Assistant MCP Server"
	ServerVersion = "1.0.0"

	DefaultDataDays   = 7
	DefaultTrendsDays = 30
)

// Tool is one assistant tool, served at POST /mcp/<endpoint> and through /mcp/call.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Endpoint    string         `json:"endpoint"`
	InputSchema map[string]any `json:"inputSchema"`

	call func(ctx context.Context, args []byte) *envelope.Envelope
}

// ServerInfo is the GET /mcp/info payload.
type ServerInfo struct {
	protocol.Implementation
	Description string `json:"description"`
	Tools       []Tool `json:"tools"`
}

// ToolHandler serves the health and meal tools.
type ToolHandler struct {
	health service.HealthService
	meals  service.MealService
	logger *zap.Logger
	tools  []Tool
}

func NewToolHandler(health service.HealthService, meals service.MealService, logger *zap.Logger) *ToolHandler {
	h := &ToolHandler{health: health, meals: meals, logger: logger.Named("tools")}
	h.tools = []Tool{
		{
			Name:        "get_health_data",
			Description: "Fetch latest health metrics",
			Endpoint:    "/mcp/health-data",
			InputSchema: objectSchema(map[string]any{
				"metric_type": map[string]any{"type": "string", "enum": []string{"steps", "calories", "heart_rate", "sleep", "weight", "all"}, "default": "all"},
				"days":        map[string]any{"type": "number", "default": DefaultDataDays, "minimum": 1, "maximum": 365},
			}),
			call: h.healthData,
		},
		{
			Name:        "ask_health_question",
			Description: "Get AI-powered health insights",
			Endpoint:    "/mcp/health-question",
			InputSchema: objectSchema(map[string]any{
				"question":     map[string]any{"type": "string"},
				"include_data": map[string]any{"type": "boolean", "default": true},
			}, "question"),
			call: h.healthQuestion,
		},
		{
			Name:        "get_health_summary",
			Description: "Generate daily/weekly health summary",
			Endpoint:    "/mcp/health-summary",
			InputSchema: objectSchema(map[string]any{
				"period": map[string]any{"type": "string", "enum": []string{"today", "week", "month"}, "default": "week"},
			}),
			call: h.healthSummary,
		},
		{
			Name:        "get_health_trends",
			Description: "Analyze health trends over time",
			Endpoint:    "/mcp/health-trends",
			InputSchema: objectSchema(map[string]any{
				"days": map[string]any{"type": "number", "default": DefaultTrendsDays, "minimum": 7, "maximum": 365},
			}),
			call: h.healthTrends,
		},
		{
			Name:        "get_meal_recommendations",
			Description: "Recommend meals from the catalog by type, prep time, calories and diet",
			Endpoint:    "/mcp/meal-recommendations",
			InputSchema: objectSchema(map[string]any{
				"meal_type":            map[string]any{"type": "string", "enum": []string{"breakfast", "lunch", "dinner", "snack"}},
				"max_prep_time":        map[string]any{"type": "number", "minimum": 1},
				"dietary_restrictions": map[string]any{"type": "array", "items": map[string]any{"type": "string"}},
				"calorie_range":        map[string]any{"type": "string", "enum": []string{"low", "medium", "high"}},
				"activity_level":       map[string]any{"type": "string"},
			}),
			call: h.mealRecommendations,
		},
	}
	return h
}

func objectSchema(properties map[string]any, required ...string) map[string]any {
	schema := map[string]any{"type": "object", "properties": properties}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

// Tools lists the registered tools in declaration order.
func (h *ToolHandler) Tools() []Tool {
	return h.tools
}

func (h *ToolHandler) lookup(name string) (Tool, bool) {
	for _, t := range h.tools {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// serve runs a tool with the request body as its arguments.
func (h *ToolHandler) serve(w http.ResponseWriter, r *http.Request, name string) {
	tool, _ := h.lookup(name)
	body, err := readBody(w, r)
	if err != nil {
		envelope.BadRequest("Invalid request body").Write(w)
		return
	}
	tool.call(r.Context(), body).Write(w)
}

// Info handles GET /mcp/info
// @Summary Describe the server
// @Description Server name, version and the tools it exposes with their input schemas.
// @Tags mcp
// @Produce json
// @Success 200 {object} envelope.Envelope{data=ServerInfo}
// @Router /mcp/info [get]
func (h *ToolHandler) Info(w http.ResponseWriter, r *http.Request) {
	envelope.OK(ServerInfo{
		Implementation: protocol.Implementation{Name: ServerName, Version: ServerVersion},
		Description:    "MCP server providing health data tools and meal recommendations",
		Tools:          h.tools,
	}).Write(w)
}

// Call handles POST /mcp/call
// @Summary Call a tool by name
// @Description MCP tools/call dispatch. The result carries one text content item holding the same envelope the tool's REST endpoint returns.
// @Tags mcp
// @Accept json
// @Produce json
// @Param request body protocol.CallToolRequest true "Tool name and arguments"
// @Success 200 {object} protocol.CallToolResult
// @Failure 400 {object} envelope.Envelope "Invalid request body"
// @Failure 404 {object} envelope.Envelope "Unknown tool"
// @Router /mcp/call [post]
func (h *ToolHandler) Call(w http.ResponseWriter, r *http.Request) {
	var req protocol.CallToolRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		envelope.BadRequest("Invalid JSON body").Write(w)
		return
	}

	tool, ok := h.lookup(req.Name)
	if !ok {
		envelope.NotFound(fmt.Sprintf("Unknown tool: %s", req.Name)).Write(w)
		return
	}

	args, err := json.Marshal(req.Arguments)
	if err != nil {
		envelope.BadRequest("Invalid tool arguments").Write(w)
		return
	}

	env := tool.call(r.Context(), args)
	result := protocol.NewCallToolResult([]protocol.Content{
		protocol.TextContent{
			Type: "text",
			Text: string(env.Bytes()),
		},
	}, !env.Success)

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// GetHealthData handles POST /mcp/health-data
// @Summary Get health data
// @Description One metric series, or all five keyed by kind when metric_type is "all".
// @Tags health-tools
// @Accept json
// @Produce json
// @Param request body domain.HealthDataRequest false "Defaults: metric_type=all, days=7"
// @Success 200 {object} envelope.Envelope{data=domain.HealthSnapshot}
// @Failure 400 {object} envelope.Envelope "Invalid arguments"
// @Failure 500 {object} envelope.Envelope "Server error"
// @Router /mcp/health-data [post]
func (h *ToolHandler) GetHealthData(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_health_data")
}

// AskHealthQuestion handles POST /mcp/health-question
// @Summary Ask a health question
// @Description Narrated answer, optionally grounded in the last 7 days of data. Falls back to a canned answer when the model is unavailable.
// @Tags health-tools
// @Accept json
// @Produce json
// @Param request body domain.HealthQuestionRequest true "Question"
// @Success 200 {object} envelope.Envelope{data=domain.HealthAnswer}
// @Failure 400 {object} envelope.Envelope "Question is required"
// @Failure 500 {object} envelope.Envelope "Server error"
// @Router /mcp/health-question [post]
func (h *ToolHandler) AskHealthQuestion(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "ask_health_question")
}

// GetHealthSummary handles POST /mcp/health-summary
// @Summary Summarize a period
// @Tags health-tools
// @Accept json
// @Produce json
// @Param request body domain.HealthSummaryRequest false "Default: period=week"
// @Success 200 {object} envelope.Envelope{data=domain.HealthSummary}
// @Failure 400 {object} envelope.Envelope "Invalid period"
// @Failure 500 {object} envelope.Envelope "Server error"
// @Router /mcp/health-summary [post]
func (h *ToolHandler) GetHealthSummary(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_health_summary")
}

// GetHealthTrends handles POST /mcp/health-trends
// @Summary Analyze trends
// @Description Averages and totals over the window, compared with the preceding window of the same length.
// @Tags health-tools
// @Accept json
// @Produce json
// @Param request body domain.HealthTrendsRequest false "Default: days=30"
// @Success 200 {object} envelope.Envelope{data=domain.HealthTrends}
// @Failure 400 {object} envelope.Envelope "Invalid days"
// @Failure 500 {object} envelope.Envelope "Server error"
// @Router /mcp/health-trends [post]
func (h *ToolHandler) GetHealthTrends(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_health_trends")
}

// GetMealRecommendations handles POST /mcp/meal-recommendations
// @Summary Recommend meals
// @Description Filters the catalog by meal type, prep time, calorie band and dietary restrictions, and narrates the top three.
// @Tags meal-tools
// @Accept json
// @Produce json
// @Param request body domain.RecommendationRequest false "Filters, all optional"
// @Success 200 {object} envelope.Envelope{data=domain.RecommendationResult}
// @Failure 400 {object} envelope.Envelope "Invalid filters"
// @Failure 500 {object} envelope.Envelope "Server error"
// @Router /mcp/meal-recommendations [post]
func (h *ToolHandler) GetMealRecommendations(w http.ResponseWriter, r *http.Request) {
	h.serve(w, r, "get_meal_recommendations")
}

func (h *ToolHandler) healthData(ctx context.Context, args []byte) *envelope.Envelope {
	req := domain.HealthDataRequest{MetricType: string(domain.MetricAll), Days: DefaultDataDays}
	if env := h.bind(args, &req); env != nil {
		return env
	}

	data, err := h.health.GetHealthData(ctx, domain.MetricKind(req.MetricType), req.Days)
	if err != nil {
		return errorEnvelope(h.logger, err, "")
	}
	return envelope.OK(data)
}

func (h *ToolHandler) healthQuestion(ctx context.Context, args []byte) *envelope.Envelope {
	var req domain.HealthQuestionRequest
	if env := h.bind(args, &req); env != nil {
		return env
	}

	includeData := req.IncludeData == nil || *req.IncludeData
	answer, err := h.health.AskHealthQuestion(ctx, req.Question, includeData)
	if err != nil {
		return errorEnvelope(h.logger, err, "")
	}
	return envelope.OK(answer)
}

func (h *ToolHandler) healthSummary(ctx context.Context, args []byte) *envelope.Envelope {
	req := domain.HealthSummaryRequest{Period: string(domain.PeriodWeek)}
	if env := h.bind(args, &req); env != nil {
		return env
	}

	summary, err := h.health.GetHealthSummary(ctx, domain.SummaryPeriod(req.Period))
	if err != nil {
		return errorEnvelope(h.logger, err, "")
	}
	return envelope.OK(summary)
}

func (h *ToolHandler) healthTrends(ctx context.Context, args []byte) *envelope.Envelope {
	req := domain.HealthTrendsRequest{Days: DefaultTrendsDays}
	if env := h.bind(args, &req); env != nil {
		return env
	}

	trends, err := h.health.GetHealthTrends(ctx, req.Days)
	if err != nil {
		return errorEnvelope(h.logger, err, "")
	}
	return envelope.OK(trends)
}

func (h *ToolHandler) mealRecommendations(ctx context.Context, args []byte) *envelope.Envelope {
	var req domain.RecommendationRequest
	if env := h.bind(args, &req); env != nil {
		return env
	}

	result, err := h.meals.Recommend(ctx, req)
	if err != nil {
		return errorEnvelope(h.logger, err, "")
	}
	return envelope.OK(result)
}

// bind decodes and validates tool arguments, returning a failure envelope
// when they are unusable.
func (h *ToolHandler) bind(args []byte, dst any) *envelope.Envelope {
	if err := decodeArgs(args, dst); err != nil {
		return envelope.BadRequest("Invalid JSON body")
	}
	if fieldErrors := validation.Validate(dst); fieldErrors != nil {
		return envelope.BadRequest("Invalid request parameters").WithErrors(fieldErrors)
	}
	return nil
}
