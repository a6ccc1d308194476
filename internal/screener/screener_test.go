package screener

import (
	"context"
	"errors"
	"math"
	"sync/atomic"
	"testing"
	"time"

	"RSIScreener/internal/collector"
	"RSIScreener/internal/model"
	"RSIScreener/internal/notifier"
	"RSIScreener/internal/recorder"
)

func testOptions() Options {
	return Options{
		Period:       "90d",
		DataInterval: "1d",
		Window:       14,
		Oversold:     30,
		Overbought:   70,
		Poll:         time.Hour,
	}
}

func seriesOf(symbol string, base, step float64) *model.PriceSeries {
	return &model.PriceSeries{
		Symbol:    symbol,
		Bars:      collector.GenerateBars(base, step, 60),
		FetchedAt: time.Now(),
	}
}

func TestCheck_FailureIsolation(t *testing.T) {
	mock := &collector.MockFetcher{
		Price: 100,
		Series: map[string]*model.PriceSeries{
			"AAPL": seriesOf("AAPL", 100, 0.5),  // rising: RSI 100
			"NVDA": seriesOf("NVDA", 100, -0.5), // falling: RSI 0
		},
		SeriesErr: map[string]error{
			"MSFT": errors.New("connection reset"),
		},
	}
	s := New(mock, notifier.NewDispatcher(), recorder.NewNoopRecorder(), testOptions())

	rows := s.Check(context.Background(), []string{"AAPL", "MSFT", "NVDA"})
	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	if rows[0].Symbol != "AAPL" || rows[0].Sample.RSI != 100 {
		t.Errorf("row 0: got %s rsi=%v, want AAPL rsi=100", rows[0].Symbol, rows[0].Sample.RSI)
	}
	if rows[0].Signal != model.SignalOverbought {
		t.Errorf("row 0: signal = %v, want OVERBOUGHT", rows[0].Signal)
	}
	if rows[1].Symbol != "NVDA" || rows[1].Sample.RSI != 0 {
		t.Errorf("row 1: got %s rsi=%v, want NVDA rsi=0", rows[1].Symbol, rows[1].Sample.RSI)
	}
	if rows[1].Signal != model.SignalOversold {
		t.Errorf("row 1: signal = %v, want OVERSOLD", rows[1].Signal)
	}
	if rows[2].Symbol != "MSFT" || rows[2].Err == nil {
		t.Errorf("row 2: expected MSFT error row, got %s err=%v", rows[2].Symbol, rows[2].Err)
	}
}

func TestCheck_ShortSeriesYieldsNaN(t *testing.T) {
	mock := &collector.MockFetcher{
		Series: map[string]*model.PriceSeries{
			"NEW": {Symbol: "NEW", Bars: collector.GenerateBars(20, 0.1, 5)},
		},
	}
	s := New(mock, notifier.NewDispatcher(), recorder.NewNoopRecorder(), testOptions())

	rows := s.Check(context.Background(), []string{"NEW"})
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	if rows[0].Err != nil {
		t.Fatalf("short series is not an error: %v", rows[0].Err)
	}
	if !math.IsNaN(rows[0].Sample.RSI) {
		t.Errorf("expected NaN RSI for short series, got %v", rows[0].Sample.RSI)
	}
	if rows[0].Signal != model.SignalNone {
		t.Errorf("NaN RSI must not signal, got %v", rows[0].Signal)
	}
}

func TestValidateSymbols_Substitution(t *testing.T) {
	mock := &collector.MockFetcher{
		Price: 100,
		QuoteErr: map[string]error{
			"CS": collector.ErrNotFound,
		},
	}
	s := New(mock, notifier.NewDispatcher(), recorder.NewNoopRecorder(), testOptions())

	got := s.ValidateSymbols(context.Background(), []string{"CS", "AAPL"})
	want := []string{"UBS", "AAPL"}
	if len(got) != len(want) {
		t.Fatalf("monitored = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("monitored[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestValidateSymbols_DropsWithoutSuggestion(t *testing.T) {
	mock := &collector.MockFetcher{
		Price: 100,
		QuoteErr: map[string]error{
			"ZZZZ": collector.ErrNotFound,
		},
	}
	s := New(mock, notifier.NewDispatcher(), recorder.NewNoopRecorder(), testOptions())

	got := s.ValidateSymbols(context.Background(), []string{"ZZZZ", "AAPL"})
	if len(got) != 1 || got[0] != "AAPL" {
		t.Errorf("monitored = %v, want [AAPL]", got)
	}
}

func TestRunContinuous_NoValidTickers(t *testing.T) {
	mock := &collector.MockFetcher{
		QuoteErr: map[string]error{"ZZZZ": collector.ErrNotFound},
	}
	s := New(mock, notifier.NewDispatcher(), recorder.NewNoopRecorder(), testOptions())

	if err := s.RunContinuous(context.Background(), []string{"ZZZZ"}); err == nil {
		t.Error("expected error when no valid tickers remain")
	}
}

// countingFetcher counts FetchSeries calls so tests can count cycles.
type countingFetcher struct {
	collector.MockFetcher
	seriesCalls int32
}

func (c *countingFetcher) FetchSeries(ctx context.Context, symbol, period, interval string) (*model.PriceSeries, error) {
	atomic.AddInt32(&c.seriesCalls, 1)
	return c.MockFetcher.FetchSeries(ctx, symbol, period, interval)
}

func TestRunContinuous_CancelDuringSleep(t *testing.T) {
	mock := &countingFetcher{MockFetcher: collector.MockFetcher{Price: 100}}
	s := New(mock, notifier.NewDispatcher(), recorder.NewNoopRecorder(), testOptions())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- s.RunContinuous(ctx, []string{"AAPL", "MSFT"})
	}()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("RunContinuous did not stop promptly after cancellation")
	}

	// Only the immediate first cycle ran; the hour-long poll never fired.
	if calls := atomic.LoadInt32(&mock.seriesCalls); calls != 2 {
		t.Errorf("expected 2 series fetches (one cycle), got %d", calls)
	}
}
