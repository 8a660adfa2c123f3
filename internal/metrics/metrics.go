// Package metrics derives the summary figures displayed alongside the
// price history.
package metrics

import "stock-ai-chatbot/internal/types"

// Summarize extracts key metrics from a price series. It reports ok=false
// for an empty series, the not-yet-loaded state rather than an error.
//
// CurrentPrice and OpenPrice come from the latest bar; HighPrice and
// LowPrice are extrema over the whole series. The asymmetry is intentional
// and mirrors what the user sees: today's price against the period range.
func Summarize(series types.TimeSeries) (types.Metrics, bool) {
	latest, ok := series.Latest()
	if !ok {
		return types.Metrics{}, false
	}

	m := types.Metrics{
		CurrentPrice: latest.Close,
		OpenPrice:    latest.Open,
		HighPrice:    series[0].High,
		LowPrice:     series[0].Low,
	}
	for _, p := range series[1:] {
		if p.High > m.HighPrice {
			m.HighPrice = p.High
		}
		if p.Low < m.LowPrice {
			m.LowPrice = p.Low
		}
	}
	return m, true
}
