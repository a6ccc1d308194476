package model

import "time"

// Signal classifies an RSI value against the configured thresholds.
type Signal string

const (
	SignalNone       Signal = "-"
	SignalOversold   Signal = "OVERSOLD"
	SignalOverbought Signal = "OVERBOUGHT"
)

// RsiSample is one computed RSI observation for a symbol.
type RsiSample struct {
	Symbol string
	Time   time.Time
	RSI    float64 // in [0,100], or NaN when not computable
	Close  float64
}

// CheckRow is the per-symbol outcome of one evaluation cycle. A non-nil Err
// is the fetch-failure case and stays distinct from a NaN RSI, which means
// data was fetched but not enough of it to fill the window.
type CheckRow struct {
	Symbol string
	Sample RsiSample
	Signal Signal
	Err    error
}

// ValidationResult is the outcome of a pre-monitoring symbol check.
type ValidationResult struct {
	Symbol           string
	Valid            bool
	Reason           string
	Suggested        string
	SuggestionReason string
}
