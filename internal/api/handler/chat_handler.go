package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/crisphealth/health-assistant/internal/api/validation"
	"github.com/crisphealth/health-assistant/internal/domain"
	"github.com/crisphealth/health-assistant/internal/llm"
	"github.com/crisphealth/health-assistant/internal/service"
	"github.com/crisphealth/health-assistant/pkg/envelope"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	chatIdleTimeout  = 5 * time.Minute
	chatWriteTimeout = 10 * time.Second
	chatMaxFrame     = 64 << 10
)

// ChatHandler answers health questions over a websocket, one envelope per
// text frame. All answers on a connection share a Langfuse session.
type ChatHandler struct {
	service  service.HealthService
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

func NewChatHandler(service service.HealthService, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		service: service,
		logger:  logger.Named("chat"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			// Origins are enforced by the gateway in front of the API
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve handles GET /v1/health/chat
// @Summary Health chat over websocket
// @Description Upgrade to a websocket. Each text frame {"question": "...", "include_data": true} is answered with one envelope frame holding a HealthAnswer.
// @Tags health-tools
// @Success 101 "Switching Protocols"
// @Router /v1/health/chat [get]
func (h *ChatHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		h.logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close()
	conn.SetReadLimit(chatMaxFrame)

	sessionID := uuid.New().String()
	ctx := llm.WithSession(r.Context(), sessionID)
	logger := h.logger.With(zap.String("session_id", sessionID))
	logger.Info("chat session opened")

	for {
		_ = conn.SetReadDeadline(time.Now().Add(chatIdleTimeout))
		msgType, msg, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("chat session ended unexpectedly", zap.Error(err))
			}
			break
		}
		if msgType != websocket.TextMessage {
			continue
		}

		env := h.answer(ctx, msg)
		_ = conn.SetWriteDeadline(time.Now().Add(chatWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, env.Bytes()); err != nil {
			logger.Warn("chat write failed", zap.Error(err))
			break
		}
	}

	logger.Info("chat session closed")
}

func (h *ChatHandler) answer(ctx context.Context, msg []byte) *envelope.Envelope {
	var req domain.HealthQuestionRequest
	if err := json.Unmarshal(msg, &req); err != nil {
		return envelope.BadRequest("Invalid JSON frame")
	}
	if fieldErrors := validation.Validate(req); fieldErrors != nil {
		return envelope.BadRequest("Invalid request parameters").WithErrors(fieldErrors)
	}

	includeData := req.IncludeData == nil || *req.IncludeData
	answer, err := h.service.AskHealthQuestion(ctx, req.Question, includeData)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidArgument) {
			return envelope.BadRequest(reason(err, domain.ErrInvalidArgument))
		}
		h.logger.Error("chat answer failed", zap.Error(err))
		return envelope.InternalError()
	}
	return envelope.OK(answer)
}
