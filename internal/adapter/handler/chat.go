package handler

import (
	"context"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	dto "github.com/johnquangdev/video-digest/internal/adapter/dto/chat"
)

// Replier answers a chat message
type Replier interface {
	Reply(ctx context.Context, message, summaryContext string) (string, error)
}

// Chat handles the chat endpoint
type Chat struct {
	svc    Replier
	logger *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(svc Replier, logger *zap.Logger) *Chat {
	return &Chat{svc: svc, logger: logger}
}

// Chat relays a message to the chat engine
// @Summary      Chat
// @Description  Sends a message to the configured chat engine. A summary passed as context grounds the answer
// @Tags         Chat
// @Accept       json
// @Produce      json
// @Param        request  body      dto.ChatRequest         true  "Chat message"
// @Success      200      {object}  dto.ChatResponse        "Assistant reply"
// @Failure      400      {object}  map[string]interface{}  "No message provided"
// @Failure      500      {object}  map[string]interface{}  "Chat engine failed"
// @Router       /chat [post]
func (h *Chat) Chat(c echo.Context) error {
	var req dto.ChatRequest
	if err := bindAndValidate(c, &req); err != nil {
		return HandleError(h.logger, c, err)
	}

	reply, err := h.svc.Reply(c.Request().Context(), req.Message, req.Context)
	if err != nil {
		return HandleError(h.logger, c, toAppError(err, ""))
	}
	return HandleSuccess(h.logger, c, dto.ChatResponse{Reply: reply})
}
