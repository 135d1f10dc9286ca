package chat

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	usecaseErrors "github.com/johnquangdev/video-digest/internal/usecase/errors"
	"github.com/johnquangdev/video-digest/pkg/ai"
)

// Service answers free-form questions, optionally grounded on a video summary
type Service struct {
	engine        ai.ChatEngine
	contextPrompt string
	logger        *zap.Logger
}

// NewService creates a new chat service. contextPrompt prefixes the summary context.
func NewService(engine ai.ChatEngine, contextPrompt string, logger *zap.Logger) *Service {
	return &Service{engine: engine, contextPrompt: contextPrompt, logger: logger}
}

// Reply sends message, with summaryContext as a system message when given
func (s *Service) Reply(ctx context.Context, message, summaryContext string) (string, error) {
	if strings.TrimSpace(message) == "" {
		return "", fmt.Errorf("%w: no message provided", usecaseErrors.ErrInvalidInput)
	}

	messages := make([]ai.Message, 0, 2)
	if strings.TrimSpace(summaryContext) != "" {
		messages = append(messages, ai.Message{
			Role:    ai.RoleSystem,
			Content: s.contextPrompt + summaryContext,
		})
	}
	messages = append(messages, ai.Message{Role: ai.RoleUser, Content: message})

	reply, err := s.engine.Complete(ctx, messages)
	if err != nil {
		if s.logger != nil {
			s.logger.Error("❌ Chat completion failed", zap.String("engine", s.engine.Name()), zap.Error(err))
		}
		return "", fmt.Errorf("%w: %v", usecaseErrors.ErrChat, err)
	}
	return strings.TrimSpace(reply), nil
}
