package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestPeriodDays(t *testing.T) {
	tests := []struct {
		period string
		days   int
		ok     bool
	}{
		{"90d", 90, true},
		{"1mo", 30, true},
		{"6mo", 180, true},
		{"2wk", 14, true},
		{"1y", 365, true},
		{"3m", 90, true},
		{" 30D ", 30, true},
		{"bogus", 0, false},
		{"0d", 0, false},
		{"-5d", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		days, err := periodDays(tt.period)
		if tt.ok && (err != nil || days != tt.days) {
			t.Errorf("periodDays(%q) = %d, %v; want %d", tt.period, days, err, tt.days)
		}
		if !tt.ok && err == nil {
			t.Errorf("periodDays(%q): expected error", tt.period)
		}
	}
}

func TestPeriodToRange(t *testing.T) {
	tests := []struct {
		period string
		rng    string
	}{
		{"3d", "5d"},
		{"10d", "1mo"},
		{"90d", "3mo"},
		{"6mo", "6mo"},
		{"1y", "1y"},
		{"2y", "2y"},
		{"5y", "5y"},
	}
	for _, tt := range tests {
		rng, err := periodToRange(tt.period)
		if err != nil {
			t.Errorf("periodToRange(%q): %v", tt.period, err)
			continue
		}
		if rng != tt.rng {
			t.Errorf("periodToRange(%q) = %q, want %q", tt.period, rng, tt.rng)
		}
	}
}

const chartResponse = `{"chart":{"result":[{
	"meta":{"symbol":"AAPL","instrumentType":"EQUITY","regularMarketPrice":187.3},
	"timestamp":[1000,2000,3000],
	"indicators":{"quote":[{
		"open":[1,null,3],
		"high":[2,null,4],
		"low":[0.5,null,2.5],
		"close":[1.5,null,3.5],
		"volume":[100,null,300]
	}]}
}],"error":null}}`

func TestYahooFetchSeries(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartResponse))
	}))
	defer srv.Close()

	f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
	series, err := f.FetchSeries(context.Background(), "AAPL", "90d", "1d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(series.Bars) != 2 {
		t.Fatalf("expected 2 bars (null bar skipped), got %d", len(series.Bars))
	}
	if series.Bars[0].Close != 1.5 || series.Bars[1].Close != 3.5 {
		t.Errorf("unexpected closes: %v, %v", series.Bars[0].Close, series.Bars[1].Close)
	}
	if !series.Bars[0].Time.Before(series.Bars[1].Time) {
		t.Error("bars must be ascending by time")
	}
}

func TestYahooFetchQuote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(chartResponse))
	}))
	defer srv.Close()

	f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
	q, err := f.FetchQuote(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !q.HasPrice || q.Price != 187.3 {
		t.Errorf("price = %v (has=%v), want 187.3", q.Price, q.HasPrice)
	}
	if q.QuoteType != "EQUITY" {
		t.Errorf("quote type = %q, want EQUITY", q.QuoteType)
	}
}

func TestYahooNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
	if _, err := f.FetchQuote(context.Background(), "ZZZZ"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestYahooAPIErrorNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found, symbol may be delisted"}}}`))
	}))
	defer srv.Close()

	f := &YahooFetcher{BaseURL: srv.URL, Client: srv.Client()}
	if _, err := f.FetchSeries(context.Background(), "ZZZZ", "90d", "1d"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
