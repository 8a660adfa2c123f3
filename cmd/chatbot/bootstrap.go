package main

import (
	"context"
	"fmt"
	"os"

	"stock-ai-chatbot/internal/interfaces"
	"stock-ai-chatbot/internal/llm/deepseek"
	"stock-ai-chatbot/internal/llm/llmobs"
	"stock-ai-chatbot/internal/llm/noop"
	"stock-ai-chatbot/internal/logger"
	"stock-ai-chatbot/internal/marketdata"
	"stock-ai-chatbot/internal/marketdata/marketdataobs"
	"stock-ai-chatbot/internal/news"
	"stock-ai-chatbot/internal/store"
	"stock-ai-chatbot/internal/trace"

	"github.com/joho/godotenv"
)

// initializeSystem initializes environment, logger and tracer.
func initializeSystem() error {
	_ = godotenv.Load()

	if err := logger.Init(); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := trace.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize tracer: %v\n", err)
	}

	return nil
}

// loadConfig loads and returns the configuration.
func loadConfig(ctx context.Context) (*store.Config, error) {
	cfg, err := store.LoadConfig("config.yaml")
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to load config", err)
		return nil, err
	}
	return cfg, nil
}

// initializeFetcher builds the market-data fetcher with observability.
func initializeFetcher(ctx context.Context, cfg *store.Config) interfaces.Fetcher {
	apiKey := os.Getenv("FMP_API_KEY")
	if apiKey == "" {
		logger.Warn(ctx, "FMP_API_KEY is not set - data loads will be rejected by the provider")
	}

	fetcher := marketdata.NewFMPFetcher(cfg, apiKey)
	return marketdataobs.Wrap(fetcher)
}

// initializeChatter builds the chat client with observability. Falls back
// to the offline noop chatter when no provider or key is configured.
func initializeChatter(ctx context.Context, cfg *store.Config) interfaces.Chatter {
	var chatter interfaces.Chatter

	apiKey := os.Getenv("DEEPSEEK_API_KEY")
	switch {
	case cfg.LLM.Provider == "DEEPSEEK" && apiKey != "":
		chatter = deepseek.NewClient(cfg, apiKey)
	case cfg.LLM.Provider == "DEEPSEEK":
		logger.Warn(ctx, "DEEPSEEK_API_KEY is not set - using offline chatter")
		chatter = noop.NewNoopChatter()
	default:
		logger.Warn(ctx, "No LLM provider configured - using offline chatter")
		chatter = noop.NewNoopChatter()
	}

	return llmobs.Wrap(chatter)
}

// initializeNews builds the optional headline service; nil when disabled.
func initializeNews(ctx context.Context, cfg *store.Config) *news.Service {
	if !cfg.News.Enabled {
		logger.Info(ctx, "Headline enrichment disabled in config")
		return nil
	}
	logger.Info(ctx, "Headline enrichment enabled", "max_headlines", cfg.News.MaxHeadlines)
	return news.NewService(news.FromConfig(cfg))
}
