package news

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/gocolly/colly/v2"

	"stock-ai-chatbot/internal/logger"
	"stock-ai-chatbot/internal/types"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Scraper collects recent headlines for a symbol from public news pages.
type Scraper struct {
	timeout    time.Duration
	httpClient *http.Client
}

// NewScraper creates a headline scraper.
func NewScraper(timeout time.Duration) *Scraper {
	return &Scraper{
		timeout:    timeout,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// ScrapeYahooFinance fetches the news tab of a Yahoo Finance quote page
// and extracts story titles.
func (s *Scraper) ScrapeYahooFinance(ctx context.Context, symbol string, maxHeadlines int) ([]types.Headline, error) {
	pageURL := fmt.Sprintf("https://finance.yahoo.com/quote/%s/news", url.PathEscape(symbol))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo finance: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse yahoo finance page: %w", err)
	}

	headlines := []types.Headline{}
	doc.Find("li.stream-item, li.js-stream-content").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		title := strings.TrimSpace(sel.Find("h3").First().Text())
		if title == "" {
			return true
		}
		link, _ := sel.Find("a").First().Attr("href")
		if strings.HasPrefix(link, "/") {
			link = "https://finance.yahoo.com" + link
		}
		headlines = append(headlines, types.Headline{
			Title:  title,
			URL:    link,
			Source: "YahooFinance",
			Symbol: symbol,
		})
		return len(headlines) < maxHeadlines
	})

	logger.Debug(ctx, "Yahoo Finance scraping completed", "symbol", symbol, "headlines", len(headlines))
	return headlines, nil
}

// ScrapeGoogleNews searches Google News for the symbol (fallback method).
func (s *Scraper) ScrapeGoogleNews(ctx context.Context, symbol string, maxHeadlines int) ([]types.Headline, error) {
	headlines := []types.Headline{}

	c := colly.NewCollector(
		colly.AllowedDomains("news.google.com", "www.google.com"),
	)
	c.SetRequestTimeout(s.timeout)

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("User-Agent", userAgent)
	})

	c.OnHTML("article", func(e *colly.HTMLElement) {
		if len(headlines) >= maxHeadlines {
			return
		}

		title := e.ChildText("h3, h4")
		link := e.ChildAttr("a", "href")
		if title == "" || link == "" {
			return
		}

		// Clean up Google News redirect URL
		if strings.HasPrefix(link, "./articles/") {
			link = "https://news.google.com" + link[1:]
		}

		headlines = append(headlines, types.Headline{
			Title:       title,
			URL:         link,
			Source:      "GoogleNews",
			PublishedAt: e.ChildText("time"),
			Symbol:      symbol,
		})
	})

	searchQuery := url.QueryEscape(symbol + " stock news")
	searchURL := fmt.Sprintf("https://news.google.com/search?q=%s&hl=en-US&gl=US&ceid=US:en", searchQuery)

	if err := c.Visit(searchURL); err != nil {
		return nil, fmt.Errorf("failed to scrape Google News: %w", err)
	}
	c.Wait()

	logger.Debug(ctx, "Google News scraping completed", "symbol", symbol, "headlines", len(headlines))
	return headlines, nil
}
