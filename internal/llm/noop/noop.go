package noop

import (
	"context"

	"stock-ai-chatbot/internal/logger"
	"stock-ai-chatbot/internal/types"
)

// NoopChatter is a fallback chatter used when no language-model provider
// is configured. It answers every question with a canned notice.
type NoopChatter struct{}

// NewNoopChatter returns a chatter that never calls out.
func NewNoopChatter() *NoopChatter {
	return &NoopChatter{}
}

// Chat implements the Chatter interface with a fixed offline answer.
func (c *NoopChatter) Chat(ctx context.Context, messages []types.Turn) (string, error) {
	logger.Debug(ctx, "Noop chatter called - no LLM provider configured", "turns", len(messages))
	return "No language-model provider is configured, so I cannot analyse the data. Set DEEPSEEK_API_KEY and restart.", nil
}
