package collector

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"time"

	"RSIScreener/internal/model"
)

// ErrNotFound indicates the symbol does not resolve at the data source.
var ErrNotFound = errors.New("symbol not found")

// ErrNoData indicates the source resolved the symbol but returned no usable bars.
var ErrNoData = errors.New("no data returned")

// Fetcher defines the interface for the market-data collaborator.
type Fetcher interface {
	// FetchSeries returns price history for symbol over a lookback period
	// ("90d", "6mo", "1y") at the given sampling interval ("1d", "1h").
	FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error)
	// FetchQuote returns the validation metadata for a symbol.
	FetchQuote(ctx context.Context, symbol string) (*model.Quote, error)
	Name() string
}

// newHTTPClient builds a client with optional proxy support and a hard
// timeout so a stalled upstream cannot hang a cycle.
func newHTTPClient(proxyURL string) *http.Client {
	transport := &http.Transport{}
	if proxyURL != "" {
		if u, err := url.Parse(proxyURL); err == nil {
			transport.Proxy = http.ProxyURL(u)
		}
	}
	return &http.Client{
		Timeout:   30 * time.Second,
		Transport: transport,
	}
}
