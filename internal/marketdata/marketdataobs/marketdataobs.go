package marketdataobs

import (
	"context"

	"stock-ai-chatbot/internal/interfaces"
	"stock-ai-chatbot/internal/logger"
	"stock-ai-chatbot/internal/trace"
	"stock-ai-chatbot/internal/types"
)

// observableFetcher wraps a Fetcher with logging and tracing.
type observableFetcher struct {
	fetcher interfaces.Fetcher
}

var _ interfaces.Fetcher = (*observableFetcher)(nil)

// Wrap wraps a fetcher with observability middleware.
func Wrap(fetcher interfaces.Fetcher) interfaces.Fetcher {
	return &observableFetcher{fetcher: fetcher}
}

func (of *observableFetcher) Fetch(ctx context.Context, symbol string) (types.TimeSeries, error) {
	ctx, span := trace.StartSpan(ctx, "marketdata.Fetch")
	defer span.End()

	logger.Debug(ctx, "Requesting historical prices", "symbol", symbol)

	series, err := of.fetcher.Fetch(ctx, symbol)
	if err != nil {
		logger.ErrorWithErr(ctx, "Failed to fetch historical prices", err, "symbol", symbol)
		return nil, err
	}

	logger.Debug(ctx, "Historical prices received", "symbol", symbol, "points", len(series))
	return series, nil
}
