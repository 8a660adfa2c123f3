package news

import (
	"context"
	"testing"
	"time"

	"stock-ai-chatbot/internal/types"
)

func TestHeadlineCache(t *testing.T) {
	cache := newHeadlineCache(1 * time.Second)

	headlines := []types.Headline{
		{Title: "Apple beats estimates", Source: "YahooFinance", Symbol: "AAPL"},
		{Title: "New product announced", Source: "GoogleNews", Symbol: "AAPL"},
	}

	cache.set("AAPL", headlines)

	retrieved, found := cache.get("AAPL")
	if !found {
		t.Fatal("Expected to find cached headlines")
	}
	if len(retrieved) != 2 {
		t.Errorf("Expected 2 headlines, got %d", len(retrieved))
	}
	if retrieved[0].Title != "Apple beats estimates" {
		t.Errorf("Unexpected headline: %q", retrieved[0].Title)
	}

	if _, found := cache.get("MSFT"); found {
		t.Error("Expected no cache entry for other symbol")
	}

	time.Sleep(1100 * time.Millisecond)
	if _, found := cache.get("AAPL"); found {
		t.Error("Expected cache entry to be expired")
	}
}

func TestServiceDisabledReturnsNothing(t *testing.T) {
	svc := NewService(&ServiceConfig{Enabled: false})

	headlines := svc.Headlines(context.Background(), "AAPL")
	if headlines != nil {
		t.Errorf("Expected no headlines when disabled, got %d", len(headlines))
	}
}

func TestDefaultServiceConfig(t *testing.T) {
	cfg := DefaultServiceConfig()

	if cfg.MaxHeadlines != 5 {
		t.Errorf("Expected MaxHeadlines 5, got %d", cfg.MaxHeadlines)
	}
	if cfg.CacheDuration != 1*time.Hour {
		t.Errorf("Expected 1 hour cache, got %v", cfg.CacheDuration)
	}
	if cfg.Enabled {
		t.Error("Expected headline enrichment to default to disabled")
	}
}

func TestClearCache(t *testing.T) {
	svc := NewService(DefaultServiceConfig())

	svc.cache.set("AAPL", []types.Headline{{Title: "x", Symbol: "AAPL"}})
	if _, found := svc.cache.get("AAPL"); !found {
		t.Fatal("Expected cached entry")
	}

	svc.ClearCache()

	if _, found := svc.cache.get("AAPL"); found {
		t.Error("Expected cache to be empty after clear")
	}
}
