package llmobs

import (
	"context"

	"stock-ai-chatbot/internal/interfaces"
	"stock-ai-chatbot/internal/logger"
	"stock-ai-chatbot/internal/trace"
	"stock-ai-chatbot/internal/types"
)

// observableChatter wraps a Chatter with logging and tracing.
type observableChatter struct {
	chatter interfaces.Chatter
}

var _ interfaces.Chatter = (*observableChatter)(nil)

// Wrap wraps a chatter with observability middleware.
func Wrap(chatter interfaces.Chatter) interfaces.Chatter {
	return &observableChatter{chatter: chatter}
}

func (oc *observableChatter) Chat(ctx context.Context, messages []types.Turn) (string, error) {
	ctx, span := trace.StartSpan(ctx, "llm.Chat")
	defer span.End()

	logger.Debug(ctx, "Requesting chat completion", "turns", len(messages))

	answer, err := oc.chatter.Chat(ctx, messages)
	if err != nil {
		logger.ErrorWithErr(ctx, "Chat completion failed", err, "turns", len(messages))
		return "", err
	}

	logger.Debug(ctx, "Chat completion received", "answer_len", len(answer))
	return answer, nil
}
