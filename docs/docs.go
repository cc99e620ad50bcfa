// Package docs registers the OpenAPI document served at /swagger/doc.json.
// Keep it in step with the handler annotations when routes change.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "description": "Liveness check with server name and version.",
                "produces": ["application/json"],
                "tags": ["mcp"],
                "summary": "Health check",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/mcp/info": {
            "get": {
                "description": "Server name, version and the tools it exposes with their input schemas.",
                "produces": ["application/json"],
                "tags": ["mcp"],
                "summary": "Describe the server",
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/mcp/call": {
            "post": {
                "description": "MCP tools/call dispatch. The result carries one text content item holding the same envelope the tool's REST endpoint returns.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["mcp"],
                "summary": "Call a tool by name",
                "parameters": [
                    {"description": "Tool name and arguments", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/protocol.CallToolRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/protocol.CallToolResult"}},
                    "400": {"description": "Invalid request body", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "404": {"description": "Unknown tool", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/mcp/health-data": {
            "post": {
                "description": "One metric series, or all five keyed by kind when metric_type is \"all\".",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["health-tools"],
                "summary": "Get health data",
                "parameters": [
                    {"description": "Defaults: metric_type=all, days=7", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/domain.HealthDataRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "400": {"description": "Invalid arguments", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/mcp/health-question": {
            "post": {
                "description": "Narrated answer, optionally grounded in the last 7 days of data. Falls back to a canned answer when the model is unavailable.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["health-tools"],
                "summary": "Ask a health question",
                "parameters": [
                    {"description": "Question", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.HealthQuestionRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "400": {"description": "Question is required", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/mcp/health-summary": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["health-tools"],
                "summary": "Summarize a period",
                "parameters": [
                    {"description": "Default: period=week", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/domain.HealthSummaryRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "400": {"description": "Invalid period", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/mcp/health-trends": {
            "post": {
                "description": "Averages and totals over the window, compared with the preceding window of the same length.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["health-tools"],
                "summary": "Analyze trends",
                "parameters": [
                    {"description": "Default: days=30", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/domain.HealthTrendsRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "400": {"description": "Invalid days", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/mcp/meal-recommendations": {
            "post": {
                "description": "Filters the catalog by meal type, prep time, calorie band and dietary restrictions, and narrates the top three.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["meal-tools"],
                "summary": "Recommend meals",
                "parameters": [
                    {"description": "Filters, all optional", "name": "request", "in": "body", "schema": {"$ref": "#/definitions/domain.RecommendationRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "400": {"description": "Invalid filters", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/v1/meals": {
            "get": {
                "description": "Meals in catalog order (breakfast, lunch, dinner, snack) with cursor-based pagination.",
                "produces": ["application/json"],
                "tags": ["meals"],
                "summary": "Browse the meal catalog",
                "parameters": [
                    {"enum": ["breakfast", "lunch", "dinner", "snack"], "type": "string", "description": "Restrict to one category", "name": "category", "in": "query"},
                    {"maximum": 100, "minimum": 1, "type": "integer", "default": 20, "description": "Page size", "name": "limit", "in": "query"},
                    {"type": "string", "description": "Cursor from the previous page's next_cursor", "name": "cursor", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "400": {"description": "Invalid category or cursor", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/v1/meals/{mealId}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meals"],
                "summary": "Get a meal",
                "parameters": [
                    {"type": "string", "example": "breakfast_001", "description": "Meal ID", "name": "mealId", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "404": {"description": "Meal not found", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "500": {"description": "Server error", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/v1/feedback": {
            "post": {
                "description": "Submit a 1-5 rating and optional comment for a response carrying a trace_id. Ratings are accepted even when they cannot be recorded.",
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["feedback"],
                "summary": "Rate a narrated response",
                "parameters": [
                    {"description": "Feedback", "name": "request", "in": "body", "required": true, "schema": {"$ref": "#/definitions/domain.FeedbackRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "400": {"description": "Invalid JSON body", "schema": {"$ref": "#/definitions/envelope.Envelope"}},
                    "422": {"description": "Invalid fields", "schema": {"$ref": "#/definitions/envelope.Envelope"}}
                }
            }
        },
        "/v1/health/chat": {
            "get": {
                "description": "Upgrade to a websocket. Each text frame {\"question\": \"...\", \"include_data\": true} is answered with one envelope frame holding a HealthAnswer.",
                "tags": ["health-tools"],
                "summary": "Health chat over websocket",
                "responses": {
                    "101": {"description": "Switching Protocols"}
                }
            }
        }
    },
    "definitions": {
        "envelope.Envelope": {
            "type": "object",
            "properties": {
                "success": {"type": "boolean", "example": true},
                "data": {"type": "object"},
                "error": {"type": "string", "example": "Invalid request parameters"},
                "errors": {"type": "array", "items": {"$ref": "#/definitions/envelope.FieldError"}},
                "timestamp": {"type": "string", "example": "2024-01-15T08:00:00Z"}
            }
        },
        "envelope.FieldError": {
            "type": "object",
            "properties": {
                "field": {"type": "string", "example": "days"},
                "message": {"type": "string", "example": "must be at most 365"}
            }
        },
        "protocol.CallToolRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string", "example": "get_health_summary"},
                "arguments": {"type": "object", "additionalProperties": true}
            }
        },
        "protocol.CallToolResult": {
            "type": "object",
            "properties": {
                "content": {"type": "array", "items": {"type": "object", "properties": {"type": {"type": "string", "example": "text"}, "text": {"type": "string"}}}}
            }
        },
        "domain.HealthDataRequest": {
            "type": "object",
            "properties": {
                "metric_type": {"type": "string", "enum": ["steps", "calories", "heart_rate", "sleep", "weight", "all"], "example": "all"},
                "days": {"type": "integer", "maximum": 365, "minimum": 1, "example": 7}
            }
        },
        "domain.HealthQuestionRequest": {
            "type": "object",
            "required": ["question"],
            "properties": {
                "question": {"type": "string", "maxLength": 2000, "example": "How did I sleep this week?"},
                "include_data": {"type": "boolean", "example": true}
            }
        },
        "domain.HealthSummaryRequest": {
            "type": "object",
            "properties": {
                "period": {"type": "string", "enum": ["today", "week", "month"], "example": "week"}
            }
        },
        "domain.HealthTrendsRequest": {
            "type": "object",
            "properties": {
                "days": {"type": "integer", "maximum": 365, "minimum": 7, "example": 30}
            }
        },
        "domain.RecommendationRequest": {
            "type": "object",
            "properties": {
                "meal_type": {"type": "string", "enum": ["breakfast", "lunch", "dinner", "snack"], "example": "breakfast"},
                "max_prep_time": {"type": "integer", "example": 20},
                "dietary_restrictions": {"type": "array", "items": {"type": "string"}, "example": ["vegetarian"]},
                "calorie_range": {"type": "string", "enum": ["low", "medium", "high"], "example": "medium"},
                "activity_level": {"type": "string", "example": "moderate"}
            }
        },
        "domain.FeedbackRequest": {
            "type": "object",
            "required": ["trace_id", "score"],
            "properties": {
                "trace_id": {"type": "string", "example": "550e8400-e29b-41d4-a716-446655440000"},
                "score": {"type": "integer", "maximum": 5, "minimum": 1, "example": 4},
                "comment": {"type": "string", "maxLength": 1000, "example": "The answer was helpful!"}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/",
	Schemes:          []string{},
	Title:            "Crisp Health Assistant API",
	Description:      "Health metrics, AI-narrated insights and meal recommendations, exposed as MCP-style tools.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
