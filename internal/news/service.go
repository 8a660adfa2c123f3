package news

import (
	"context"
	"sync"
	"time"

	"stock-ai-chatbot/internal/logger"
	"stock-ai-chatbot/internal/store"
	"stock-ai-chatbot/internal/types"
)

// Service provides recent headlines for chat-context enrichment, with
// caching so repeated questions about one symbol do not re-scrape.
type Service struct {
	scraper *Scraper
	cache   *headlineCache
	cfg     *ServiceConfig
}

// ServiceConfig configures the headline service.
type ServiceConfig struct {
	MaxHeadlines   int           // Maximum headlines per symbol
	CacheDuration  time.Duration // How long to cache headlines
	ScraperTimeout time.Duration // Timeout for scraping operations
	Enabled        bool          // Whether headline enrichment is enabled
}

// DefaultServiceConfig returns default configuration.
func DefaultServiceConfig() *ServiceConfig {
	return &ServiceConfig{
		MaxHeadlines:   5,
		CacheDuration:  1 * time.Hour,
		ScraperTimeout: 30 * time.Second,
		Enabled:        false,
	}
}

// FromConfig builds a ServiceConfig from the application config.
func FromConfig(cfg *store.Config) *ServiceConfig {
	return &ServiceConfig{
		MaxHeadlines:   cfg.News.MaxHeadlines,
		CacheDuration:  time.Duration(cfg.News.CacheMinutes) * time.Minute,
		ScraperTimeout: 30 * time.Second,
		Enabled:        cfg.News.Enabled,
	}
}

// headlineCache stores scraped headlines per symbol with a TTL.
type headlineCache struct {
	mu   sync.RWMutex
	data map[string]*cacheEntry
	ttl  time.Duration
}

type cacheEntry struct {
	headlines []types.Headline
	timestamp time.Time
}

func newHeadlineCache(ttl time.Duration) *headlineCache {
	return &headlineCache{
		data: make(map[string]*cacheEntry),
		ttl:  ttl,
	}
}

func (c *headlineCache) get(symbol string) ([]types.Headline, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.data[symbol]
	if !exists {
		return nil, false
	}
	if time.Since(entry.timestamp) > c.ttl {
		return nil, false
	}
	return entry.headlines, true
}

func (c *headlineCache) set(symbol string, headlines []types.Headline) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.data[symbol] = &cacheEntry{
		headlines: headlines,
		timestamp: time.Now(),
	}
}

// NewService creates a headline service.
func NewService(serviceCfg *ServiceConfig) *Service {
	if serviceCfg == nil {
		serviceCfg = DefaultServiceConfig()
	}
	return &Service{
		scraper: NewScraper(serviceCfg.ScraperTimeout),
		cache:   newHeadlineCache(serviceCfg.CacheDuration),
		cfg:     serviceCfg,
	}
}

// Headlines returns cached or freshly scraped headlines for a symbol.
// A scrape failure degrades to no headlines: questions are answered from
// price data alone and the failure is only logged.
func (s *Service) Headlines(ctx context.Context, symbol string) []types.Headline {
	if !s.cfg.Enabled {
		return nil
	}

	if cached, ok := s.cache.get(symbol); ok {
		logger.Debug(ctx, "Using cached headlines", "symbol", symbol, "count", len(cached))
		return cached
	}

	headlines, err := s.scraper.ScrapeYahooFinance(ctx, symbol, s.cfg.MaxHeadlines)
	if err != nil || len(headlines) == 0 {
		if err != nil {
			logger.Warn(ctx, "Yahoo Finance scrape failed, trying Google News", "symbol", symbol, "error", err)
		}
		headlines, err = s.scraper.ScrapeGoogleNews(ctx, symbol, s.cfg.MaxHeadlines)
		if err != nil {
			logger.ErrorWithErr(ctx, "Headline scraping failed", err, "symbol", symbol)
			return nil
		}
	}

	s.cache.set(symbol, headlines)
	return headlines
}

// ClearCache removes all cached headlines.
func (s *Service) ClearCache() {
	s.cache.mu.Lock()
	defer s.cache.mu.Unlock()
	s.cache.data = make(map[string]*cacheEntry)
}
