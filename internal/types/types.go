package types

import "time"

// PricePoint is one daily bar of the historical series.
type PricePoint struct {
	Date     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    float64
	AdjClose float64
	Volume   int64
}

// TimeSeries is a daily price series for one symbol, strictly ascending
// by date. An empty series is the valid not-yet-loaded state.
type TimeSeries []PricePoint

// Latest returns the most recent point and false when the series is empty.
func (ts TimeSeries) Latest() (PricePoint, bool) {
	if len(ts) == 0 {
		return PricePoint{}, false
	}
	return ts[len(ts)-1], true
}

// Role tags a conversation turn.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one message in the conversation history.
type Turn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Metrics holds the summary figures shown next to the price table.
// Current and open come from the latest bar; high and low are
// whole-period extrema.
type Metrics struct {
	CurrentPrice float64
	OpenPrice    float64
	HighPrice    float64
	LowPrice     float64
}

// Headline is one scraped news item used to enrich chat context.
type Headline struct {
	Title       string
	URL         string
	Source      string
	PublishedAt string
	Symbol      string
}
