package store

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Symbols        []string `yaml:"symbols"`
	DefaultSymbol  string   `yaml:"default_symbol"`
	ExamplePrompts []string `yaml:"example_prompts"`
	MarketData     struct {
		BaseURL        string `yaml:"base_url"`
		WindowDays     int    `yaml:"window_days"`
		TimeoutSeconds int    `yaml:"timeout_seconds"`
	} `yaml:"market_data"`
	LLM struct {
		Provider       string  `yaml:"provider"`
		BaseURL        string  `yaml:"base_url"`
		Model          string  `yaml:"model"`
		MaxTokens      int     `yaml:"max_tokens"`
		Temperature    float32 `yaml:"temperature"`
		System         string  `yaml:"system"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
	} `yaml:"llm"`
	News struct {
		Enabled      bool `yaml:"enabled"`
		MaxHeadlines int  `yaml:"max_headlines"`
		CacheMinutes int  `yaml:"cache_minutes"`
	} `yaml:"news"`
}

func (c *Config) Validate() error {
	if len(c.Symbols) == 0 {
		return errors.New("symbols cannot be empty")
	}
	if c.DefaultSymbol == "" {
		return errors.New("default_symbol cannot be empty")
	}
	found := false
	for _, s := range c.Symbols {
		if s == c.DefaultSymbol {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("default_symbol '%s' is not in symbols", c.DefaultSymbol)
	}
	if c.MarketData.WindowDays <= 0 {
		return fmt.Errorf("market_data.window_days must be positive, got %d", c.MarketData.WindowDays)
	}
	if c.LLM.Provider != "DEEPSEEK" && c.LLM.Provider != "NOOP" {
		return fmt.Errorf("llm.provider must be 'DEEPSEEK' or 'NOOP', got '%s'", c.LLM.Provider)
	}
	if c.LLM.MaxTokens <= 0 {
		return fmt.Errorf("llm.max_tokens must be positive, got %d", c.LLM.MaxTokens)
	}
	return nil
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, err
	}

	c.applyDefaults()

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.MarketData.BaseURL == "" {
		c.MarketData.BaseURL = "https://financialmodelingprep.com/api/v3"
	}
	if c.MarketData.WindowDays == 0 {
		c.MarketData.WindowDays = 5 * 30
	}
	if c.MarketData.TimeoutSeconds == 0 {
		c.MarketData.TimeoutSeconds = 30
	}
	if c.LLM.Provider == "" {
		c.LLM.Provider = "DEEPSEEK"
	}
	if c.LLM.BaseURL == "" {
		c.LLM.BaseURL = "https://api.deepseek.com"
	}
	if c.LLM.Model == "" {
		c.LLM.Model = "deepseek-chat"
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 1000
	}
	if c.LLM.System == "" {
		c.LLM.System = "You are a stock market analyst. Your role is to use this data to answer questions about the stock"
	}
	if c.LLM.TimeoutSeconds == 0 {
		c.LLM.TimeoutSeconds = 30
	}
	if c.News.MaxHeadlines == 0 {
		c.News.MaxHeadlines = 5
	}
	if c.News.CacheMinutes == 0 {
		c.News.CacheMinutes = 60
	}
}
