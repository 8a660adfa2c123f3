// Package prompt assembles the text block a question is sent with.
package prompt

import (
	"fmt"
	"strings"

	"stock-ai-chatbot/internal/types"
)

// ContextRows bounds how much of the cached series the model sees. The
// bound is advertised to users ("limited to 5 days of data") and widening
// it changes the product contract, not just token usage.
const ContextRows = 5

// Build serializes the symbol, the first ContextRows rows of the series,
// optional headlines and the literal question into one user-turn payload.
// Rows past ContextRows never influence the output.
func Build(symbol string, series types.TimeSeries, headlines []types.Headline, question string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Stock data for %s:\n", symbol)
	b.WriteString(formatRows(series))

	if len(headlines) > 0 {
		b.WriteString("\nRecent headlines:\n")
		for _, h := range headlines {
			fmt.Fprintf(&b, "- [%s] %s\n", h.Source, h.Title)
		}
	}

	fmt.Fprintf(&b, "\nQuestion: %s", question)
	return b.String()
}

func formatRows(series types.TimeSeries) string {
	rows := series
	if len(rows) > ContextRows {
		rows = rows[:ContextRows]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%-12s %10s %10s %10s %10s %12s %12s\n",
		"Date", "Open", "High", "Low", "Close", "Adj Close", "Volume")
	for _, p := range rows {
		fmt.Fprintf(&b, "%-12s %10.2f %10.2f %10.2f %10.2f %12.2f %12d\n",
			p.Date.Format("2006-01-02"), p.Open, p.High, p.Low, p.Close, p.AdjClose, p.Volume)
	}
	return b.String()
}
