package interfaces

import (
	"context"

	"stock-ai-chatbot/internal/types"
)

// Fetcher retrieves the historical price series for one symbol.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string) (types.TimeSeries, error)
}
