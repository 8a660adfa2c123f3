package interfaces

import (
	"context"

	"stock-ai-chatbot/internal/types"
)

// Chatter sends an ordered list of conversation turns to a language model
// and returns the text of the first completion choice.
type Chatter interface {
	Chat(ctx context.Context, messages []types.Turn) (string, error)
}
