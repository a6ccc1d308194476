package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"time"

	"RSIScreener/internal/model"
)

// QuoteAPIFetcher implements Fetcher against a self-hosted quote REST API.
// It is selected instead of Yahoo when data_source.base_url is configured.
type QuoteAPIFetcher struct {
	BaseURL string
	APIKey  string
	Client  *http.Client
}

// NewQuoteAPIFetcher creates a new fetcher with optional proxy support.
func NewQuoteAPIFetcher(baseURL, apiKey, proxyURL string) *QuoteAPIFetcher {
	return &QuoteAPIFetcher{
		BaseURL: baseURL,
		APIKey:  apiKey,
		Client:  newHTTPClient(proxyURL),
	}
}

func (f *QuoteAPIFetcher) Name() string { return "quoteapi" }

// apiBar is the expected JSON shape of a bar from the quote API.
type apiBar struct {
	Timestamp int64   `json:"timestamp"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Close     float64 `json:"close"`
	Volume    float64 `json:"volume"`
}

func (f *QuoteAPIFetcher) get(ctx context.Context, endpoint string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, "GET", endpoint, nil)
	if err != nil {
		return err
	}
	if f.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+f.APIKey)
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("quote api: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("quote api: status %d, body: %s", resp.StatusCode, string(body))
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("quote api decode: %w", err)
	}
	return nil
}

func (f *QuoteAPIFetcher) FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error) {
	days, err := periodDays(period)
	if err != nil {
		return nil, err
	}
	endpoint := fmt.Sprintf("%s/api/v1/bars?symbol=%s&interval=%s&days=%d",
		f.BaseURL, url.QueryEscape(symbol), url.QueryEscape(interval), days)

	var raw []apiBar
	if err := f.get(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetch bars %s: %w", symbol, err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("fetch bars %s: %w", symbol, ErrNoData)
	}

	bars := make([]model.Bar, len(raw))
	for i, b := range raw {
		bars[i] = model.Bar{
			Time:   time.Unix(b.Timestamp, 0),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		}
	}
	sort.Slice(bars, func(i, j int) bool { return bars[i].Time.Before(bars[j].Time) })
	return &model.PriceSeries{Symbol: symbol, Bars: bars, FetchedAt: time.Now()}, nil
}

func (f *QuoteAPIFetcher) FetchQuote(ctx context.Context, symbol string) (*model.Quote, error) {
	endpoint := fmt.Sprintf("%s/api/v1/quote?symbol=%s", f.BaseURL, url.QueryEscape(symbol))

	var raw struct {
		Price        *float64 `json:"price"`
		QuoteType    string   `json:"quote_type"`
		Delisted     bool     `json:"delisted"`
		DelistedDate string   `json:"delisted_date"`
	}
	if err := f.get(ctx, endpoint, &raw); err != nil {
		return nil, fmt.Errorf("fetch quote %s: %w", symbol, err)
	}

	q := &model.Quote{
		Symbol:       symbol,
		QuoteType:    raw.QuoteType,
		Delisted:     raw.Delisted,
		DelistedDate: raw.DelistedDate,
	}
	if raw.Price != nil {
		q.Price = *raw.Price
		q.HasPrice = true
	}
	return q, nil
}
