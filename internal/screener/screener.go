// Package screener implements the RSI monitoring loop: fetch, compute,
// evaluate, display, alert — once or continuously.
package screener

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"RSIScreener/internal/calculator"
	"RSIScreener/internal/collector"
	"RSIScreener/internal/model"
	"RSIScreener/internal/notifier"
	"RSIScreener/internal/recorder"
	"RSIScreener/internal/ticker"
)

const alertSubject = "RSI Screener Alert"

// Options controls one screener run.
type Options struct {
	Period       string        // lookback period, e.g. "90d"
	DataInterval string        // sampling interval, e.g. "1d"
	Window       int           // RSI window length
	Oversold     float64       // oversold threshold
	Overbought   float64       // overbought threshold
	Poll         time.Duration // delay between continuous-mode cycles
	FetchTimeout time.Duration // bound on each per-symbol call
}

// Screener orchestrates fetching, RSI computation, evaluation and alerting.
type Screener struct {
	Fetcher    collector.Fetcher
	Dispatcher *notifier.Dispatcher
	Recorder   recorder.Recorder
	Validator  *ticker.Validator
	Opts       Options
}

// New creates a Screener over the given collaborators.
func New(f collector.Fetcher, d *notifier.Dispatcher, rec recorder.Recorder, opts Options) *Screener {
	if opts.FetchTimeout <= 0 {
		opts.FetchTimeout = 30 * time.Second
	}
	return &Screener{
		Fetcher:    f,
		Dispatcher: d,
		Recorder:   rec,
		Validator:  ticker.NewValidator(f),
		Opts:       opts,
	}
}

// checkSymbol fetches one symbol and computes its latest RSI sample.
func (s *Screener) checkSymbol(ctx context.Context, symbol string) model.CheckRow {
	row := model.CheckRow{Symbol: symbol, Signal: model.SignalNone}

	cctx, cancel := context.WithTimeout(ctx, s.Opts.FetchTimeout)
	defer cancel()

	series, err := s.Fetcher.FetchSeries(cctx, symbol, s.Opts.Period, s.Opts.DataInterval)
	if err != nil {
		row.Err = fmt.Errorf("fetch %s: %w", symbol, err)
		return row
	}
	if len(series.Bars) == 0 {
		row.Err = fmt.Errorf("fetch %s: %w", symbol, collector.ErrNoData)
		return row
	}

	rsi, err := calculator.LastRSI(series, s.Opts.Window)
	if err != nil {
		row.Err = fmt.Errorf("rsi %s: %w", symbol, err)
		return row
	}
	last := series.Bars[len(series.Bars)-1]
	row.Sample = model.RsiSample{Symbol: symbol, Time: last.Time, RSI: rsi, Close: last.Close}
	row.Signal = Evaluate(rsi, s.Opts.Oversold, s.Opts.Overbought)
	return row
}

// Check runs one evaluation pass over the symbols, returning rows sorted by
// RSI descending with error rows last. One symbol's failure never aborts the
// batch.
func (s *Screener) Check(ctx context.Context, symbols []string) []model.CheckRow {
	rows := make([]model.CheckRow, 0, len(symbols))
	for _, sym := range symbols {
		if ctx.Err() != nil {
			break
		}
		rows = append(rows, s.checkSymbol(ctx, sym))
	}
	SortRows(rows)
	return rows
}

// runCycle executes one full check-display-alert pass.
func (s *Screener) runCycle(ctx context.Context, symbols []string) {
	log.Printf("[INFO] checking RSI levels for %d symbol(s)", len(symbols))
	rows := s.Check(ctx, symbols)

	fmt.Println("\nCurrent Status (Sorted by RSI):")
	fmt.Print(RenderTable(rows))

	var alerts []string
	for _, r := range rows {
		if r.Err == nil && r.Signal != model.SignalNone {
			alerts = append(alerts, AlertLine(r.Symbol, r.Sample.RSI, r.Signal, s.Opts.Oversold, s.Opts.Overbought))
		}
	}
	if len(alerts) > 0 {
		log.Printf("[INFO] %d alert(s) triggered", len(alerts))
		s.Dispatcher.Dispatch(alertSubject, alerts)
		if err := s.Recorder.RecordAlert(strings.Join(alerts, "\n")); err != nil {
			log.Printf("[ERROR] record alert: %v", err)
		}
	}
	if err := s.Recorder.RecordCycle(rows); err != nil {
		log.Printf("[ERROR] record cycle: %v", err)
	}
}

// RunOnce executes a single evaluation pass without pre-validation.
func (s *Screener) RunOnce(ctx context.Context, symbols []string) {
	log.Println("[INFO] running single check")
	s.runCycle(ctx, symbols)
}

// ValidateSymbols checks every symbol once and applies corporate-action
// substitutions, returning the final monitored set. Invalid symbols are
// reported and dropped; a suggestion that itself validates replaces its
// original. Symbols validated here are not re-checked during the run.
func (s *Screener) ValidateSymbols(ctx context.Context, symbols []string) []string {
	log.Println("[INFO] validating tickers")
	var valid, invalid []string
	for _, sym := range symbols {
		res := s.Validator.Validate(ctx, sym)
		if res.Valid {
			log.Printf("[INFO] %s - valid", sym)
			valid = append(valid, sym)
			continue
		}
		log.Printf("[WARN] %s - %s", sym, res.Reason)
		invalid = append(invalid, sym)
		if res.Suggested == "" {
			continue
		}
		log.Printf("[INFO] %s: consider %s (%s)", sym, res.Suggested, res.SuggestionReason)
		if sub := s.Validator.Validate(ctx, res.Suggested); sub.Valid {
			log.Printf("[INFO] verified %s, monitoring it instead of %s", res.Suggested, sym)
			valid = append(valid, res.Suggested)
		} else {
			log.Printf("[WARN] suggested ticker %s also has issues: %s", res.Suggested, sub.Reason)
		}
	}
	if len(invalid) > 0 {
		log.Printf("[WARN] %d invalid ticker(s): %s", len(invalid), strings.Join(invalid, ", "))
	}
	return ticker.Dedupe(valid)
}

// RunContinuous validates the symbols once, runs an immediate check, then
// repeats on the poll interval until ctx is cancelled. Cancellation during
// the inter-cycle wait stops promptly.
func (s *Screener) RunContinuous(ctx context.Context, symbols []string) error {
	monitored := s.ValidateSymbols(ctx, symbols)
	if len(monitored) == 0 {
		return errors.New("no valid tickers to monitor, update the ticker list with the suggested symbols")
	}
	log.Printf("[INFO] monitoring %d ticker(s) every %s", len(monitored), s.Opts.Poll)

	s.runCycle(ctx, monitored)

	c := cron.New()
	spec := fmt.Sprintf("@every %s", s.Opts.Poll)
	if _, err := c.AddFunc(spec, func() { s.runCycle(ctx, monitored) }); err != nil {
		return fmt.Errorf("register poll schedule: %w", err)
	}
	c.Start()

	<-ctx.Done()
	stopCtx := c.Stop()
	<-stopCtx.Done() // let an in-flight cycle finish
	log.Println("[INFO] screener stopped")
	return nil
}
