package marketdata

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"time"

	"stock-ai-chatbot/internal/api"
	"stock-ai-chatbot/internal/logger"
	"stock-ai-chatbot/internal/store"
	"stock-ai-chatbot/internal/trace"
	"stock-ai-chatbot/internal/types"
)

const dateLayout = "2006-01-02"

// FMPFetcher fetches daily historical prices from the Financial Modeling
// Prep API and normalizes them into a TimeSeries.
type FMPFetcher struct {
	client     *api.Client
	apiKey     string
	windowDays int
	now        func() time.Time
}

// NewFMPFetcher creates a fetcher for the configured FMP endpoint.
func NewFMPFetcher(cfg *store.Config, apiKey string) *FMPFetcher {
	return &FMPFetcher{
		client: api.NewClient(
			api.WithBaseURL(cfg.MarketData.BaseURL),
			api.WithTimeout(time.Duration(cfg.MarketData.TimeoutSeconds)*time.Second),
		),
		apiKey:     apiKey,
		windowDays: cfg.MarketData.WindowDays,
		now:        time.Now,
	}
}

// fmpHistory is the response structure of the historical-price-full endpoint.
type fmpHistory struct {
	Symbol     string `json:"symbol"`
	Historical []struct {
		Date     string  `json:"date"`
		Open     float64 `json:"open"`
		High     float64 `json:"high"`
		Low      float64 `json:"low"`
		Close    float64 `json:"close"`
		AdjClose float64 `json:"adjClose"`
		Volume   int64   `json:"volume"`
	} `json:"historical"`
}

// Fetch requests the trailing window ending yesterday and returns the
// series sorted ascending by date with duplicate dates dropped.
func (f *FMPFetcher) Fetch(ctx context.Context, symbol string) (types.TimeSeries, error) {
	ctx, span := trace.StartSpan(ctx, "fmp-fetch")
	defer span.End()

	endDate := f.now().AddDate(0, 0, -1)
	startDate := endDate.AddDate(0, 0, -f.windowDays)
	from := startDate.Format(dateLayout)
	to := endDate.Format(dateLayout)

	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)
	params.Set("apikey", f.apiKey)
	path := fmt.Sprintf("/historical-price-full/%s?%s", url.PathEscape(symbol), params.Encode())

	resp, err := f.client.GET(ctx, path)
	if err != nil {
		var statusErr *api.StatusError
		if errors.As(err, &statusErr) {
			return nil, &TransportError{StatusCode: statusErr.StatusCode, Message: statusErr.Body, Err: err}
		}
		return nil, &TransportError{Message: err.Error(), Err: err}
	}

	var payload fmpHistory
	if err := resp.ParseJSON(&payload); err != nil {
		return nil, &FormatError{Err: err}
	}

	if len(payload.Historical) == 0 {
		return nil, &NoDataError{Symbol: symbol}
	}

	series := make(types.TimeSeries, 0, len(payload.Historical))
	for _, bar := range payload.Historical {
		day, err := time.Parse(dateLayout, bar.Date)
		if err != nil {
			return nil, &FormatError{Err: fmt.Errorf("bad date %q: %w", bar.Date, err)}
		}
		series = append(series, types.PricePoint{
			Date:     day,
			Open:     bar.Open,
			High:     bar.High,
			Low:      bar.Low,
			Close:    bar.Close,
			AdjClose: bar.AdjClose,
			Volume:   bar.Volume,
		})
	}

	// FMP returns newest-first; callers rely on ascending order.
	sort.Slice(series, func(i, j int) bool {
		return series[i].Date.Before(series[j].Date)
	})
	series = dropDuplicateDates(series)

	logger.Fetch(ctx, symbol, len(series), from, to)
	return series, nil
}

// dropDuplicateDates keeps the first point for each calendar day.
// The input must already be sorted ascending.
func dropDuplicateDates(series types.TimeSeries) types.TimeSeries {
	out := series[:0]
	for i, p := range series {
		if i > 0 && p.Date.Equal(series[i-1].Date) {
			continue
		}
		out = append(out, p)
	}
	return out
}
