package prompt

import (
	"strings"
	"testing"
	"time"

	"stock-ai-chatbot/internal/types"
)

func makeSeries(n int) types.TimeSeries {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	series := make(types.TimeSeries, n)
	for i := range series {
		base := float64(100 + i)
		series[i] = types.PricePoint{
			Date:     start.AddDate(0, 0, i),
			Open:     base,
			High:     base + 2,
			Low:      base - 2,
			Close:    base + 1,
			AdjClose: base + 1,
			Volume:   int64(1000 + i),
		}
	}
	return series
}

func TestBuildUsesOnlyFirstFiveRows(t *testing.T) {
	series := makeSeries(100)
	got := Build("AAPL", series, nil, "What is the trend?")

	// Mutating everything past row 5 must not change the output.
	for i := ContextRows; i < len(series); i++ {
		series[i].Close = 99999
		series[i].Volume = 0
	}
	after := Build("AAPL", series, nil, "What is the trend?")

	if got != after {
		t.Error("Context changed after mutating rows past the bound")
	}
}

func TestBuildTakesEarliestRows(t *testing.T) {
	// The bound deliberately takes the FIRST rows in series order, which
	// after ascending sort are the oldest days, despite the user-facing
	// "last 5 days" wording.
	series := makeSeries(10)
	got := Build("AAPL", series, nil, "q")

	if !strings.Contains(got, "2024-01-01") {
		t.Error("Expected context to contain the earliest row")
	}
	if !strings.Contains(got, "2024-01-05") {
		t.Error("Expected context to contain the fifth row")
	}
	if strings.Contains(got, "2024-01-06") {
		t.Error("Context leaked a row past the bound")
	}
	if strings.Contains(got, "2024-01-10") {
		t.Error("Context contains the most recent row; the bound should take the earliest rows")
	}
}

func TestBuildShortSeries(t *testing.T) {
	series := makeSeries(2)
	got := Build("MSFT", series, nil, "q")

	if !strings.Contains(got, "2024-01-01") || !strings.Contains(got, "2024-01-02") {
		t.Error("Expected both rows of a short series in the context")
	}
}

func TestBuildLayout(t *testing.T) {
	series := makeSeries(6)
	got := Build("NVDA", series, nil, "Is it overbought?")

	if !strings.HasPrefix(got, "Stock data for NVDA:") {
		t.Errorf("Context must open with the symbol header, got %q", got[:40])
	}
	if !strings.HasSuffix(got, "Question: Is it overbought?") {
		t.Error("Context must end with the literal question")
	}
	if strings.Contains(got, "Recent headlines:") {
		t.Error("Headline block must be absent when no headlines are given")
	}
}

func TestBuildWithHeadlines(t *testing.T) {
	series := makeSeries(5)
	headlines := []types.Headline{
		{Title: "Company beats estimates", Source: "YahooFinance"},
		{Title: "Analysts raise targets", Source: "GoogleNews"},
	}
	got := Build("AAPL", series, headlines, "q")

	if !strings.Contains(got, "Recent headlines:") {
		t.Error("Expected headline block")
	}
	if !strings.Contains(got, "- [YahooFinance] Company beats estimates") {
		t.Error("Expected formatted headline entry")
	}
}
