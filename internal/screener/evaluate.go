package screener

import (
	"fmt"
	"math"

	"RSIScreener/internal/model"
)

// Evaluate classifies an RSI value against the thresholds. A NaN RSI never
// signals. The oversold check runs first and wins if the thresholds were
// misconfigured to overlap.
func Evaluate(rsi, oversold, overbought float64) model.Signal {
	if math.IsNaN(rsi) {
		return model.SignalNone
	}
	if rsi <= oversold {
		return model.SignalOversold
	}
	if rsi >= overbought {
		return model.SignalOverbought
	}
	return model.SignalNone
}

// AlertLine renders the one-line alert text for a non-none signal.
func AlertLine(symbol string, rsi float64, sig model.Signal, oversold, overbought float64) string {
	switch sig {
	case model.SignalOversold:
		return fmt.Sprintf("⚠️ %s RSI=%.1f (<%g)", symbol, rsi, oversold)
	case model.SignalOverbought:
		return fmt.Sprintf("⚠️ %s RSI=%.1f (>%g)", symbol, rsi, overbought)
	default:
		return ""
	}
}
