package deepseek

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"stock-ai-chatbot/internal/api"
	"stock-ai-chatbot/internal/logger"
	"stock-ai-chatbot/internal/store"
	"stock-ai-chatbot/internal/trace"
	"stock-ai-chatbot/internal/types"
)

// ErrInvalidResponse means the provider answered but the payload carried
// no usable completion choice.
var ErrInvalidResponse = errors.New("invalid response from API")

// Client talks to the DeepSeek chat-completions endpoint. The endpoint is
// OpenAI-compatible: ordered role/content turns in, completion choices out.
type Client struct {
	api *api.Client
	cfg *store.Config
}

// NewClient creates a DeepSeek client authenticated with the given key.
func NewClient(cfg *store.Config, apiKey string) *Client {
	return &Client{
		api: api.NewClient(
			api.WithBaseURL(cfg.LLM.BaseURL),
			api.WithTimeout(time.Duration(cfg.LLM.TimeoutSeconds)*time.Second),
			api.WithHeader("Authorization", "Bearer "+apiKey),
		),
		cfg: cfg,
	}
}

// Chat sends the fixed system instruction followed by the caller-supplied
// turns and returns the first completion choice. Synchronous, no streaming.
func (c *Client) Chat(ctx context.Context, messages []types.Turn) (string, error) {
	ctx, span := trace.StartSpan(ctx, "deepseek-api-call")
	defer span.End()

	full := make([]types.Turn, 0, len(messages)+1)
	full = append(full, types.Turn{Role: types.RoleSystem, Content: c.cfg.LLM.System})
	full = append(full, messages...)

	body := map[string]any{
		"model":       c.cfg.LLM.Model,
		"messages":    full,
		"max_tokens":  c.cfg.LLM.MaxTokens,
		"temperature": c.cfg.LLM.Temperature,
		"stream":      false,
	}

	resp, err := c.api.POST(ctx, "/chat/completions", body)
	if err != nil {
		return "", fmt.Errorf("chat request failed: %w", err)
	}

	var r struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := resp.ParseJSON(&r); err != nil {
		logger.ErrorWithErr(ctx, "Malformed completion payload", err, "model", c.cfg.LLM.Model)
		return "", fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}

	if len(r.Choices) == 0 {
		logger.Error(ctx, "Empty completion payload", "model", c.cfg.LLM.Model, "body", resp.String())
		return "", ErrInvalidResponse
	}

	return strings.TrimSpace(r.Choices[0].Message.Content), nil
}
