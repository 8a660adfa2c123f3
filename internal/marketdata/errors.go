package marketdata

import "fmt"

// TransportError reports a network or HTTP-level failure against the
// market-data provider, including provider rate-limit rejections.
type TransportError struct {
	StatusCode int // 0 when the request never reached the provider
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("failed to fetch stock data: status %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("failed to fetch stock data: %s", e.Message)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NoDataError reports that the provider returned an empty series for a symbol.
type NoDataError struct {
	Symbol string
}

func (e *NoDataError) Error() string {
	return fmt.Sprintf("no historical data found for symbol: %s", e.Symbol)
}

// FormatError reports a malformed or incomplete provider payload.
type FormatError struct {
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("error processing stock data: %v", e.Err)
}

func (e *FormatError) Unwrap() error { return e.Err }
