package binance

import "fmt"

// TransportError reports a failed HTTP exchange: a request that never
// completed (network error, timeout, cancellation) or a non-2xx status.
type TransportError struct {
	URL    string
	Status int // 0 when the request never completed
	Body   string
	Err    error
}

func (e *TransportError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("binance: %s returned http %d: %s", e.URL, e.Status, e.Body)
	}
	return fmt.Sprintf("binance: request to %s failed: %v", e.URL, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// DataFormatError reports a response that arrived but does not match the
// documented payload shape.
type DataFormatError struct {
	Endpoint string
	Reason   string
}

func (e *DataFormatError) Error() string {
	return fmt.Sprintf("binance: unexpected %s payload: %s", e.Endpoint, e.Reason)
}
