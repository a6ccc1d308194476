package calculator

import (
	"errors"
	"math"

	"RSIScreener/internal/model"
)

// RSISeries computes the simple-moving-average RSI over the given window for
// every position of the input. The output has the same length as closes; the
// first `window` positions are NaN because a full window of price changes is
// not yet available there. When the trailing window has gains but no losses
// the RSI is 100; when it has neither (flat prices) the RSI stays NaN.
func RSISeries(closes []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, errors.New("window must be positive")
	}
	if len(closes) == 0 {
		return nil, errors.New("no close prices provided")
	}

	out := make([]float64, len(closes))
	for i := range out {
		out[i] = math.NaN()
	}
	if len(closes) <= window {
		return out, nil
	}

	var gainSum, lossSum float64
	for i := 1; i < len(closes); i++ {
		change := closes[i] - closes[i-1]
		if change > 0 {
			gainSum += change
		} else {
			lossSum -= change
		}
		if i < window {
			continue
		}
		if i > window {
			// Drop the change that fell out of the trailing window.
			old := closes[i-window] - closes[i-window-1]
			if old > 0 {
				gainSum -= old
			} else {
				lossSum += old
			}
			// Guard against float drift pushing a sum below zero.
			if gainSum < 0 {
				gainSum = 0
			}
			if lossSum < 0 {
				lossSum = 0
			}
		}
		avgGain := gainSum / float64(window)
		avgLoss := lossSum / float64(window)
		switch {
		case avgLoss > 0:
			rs := avgGain / avgLoss
			out[i] = 100.0 - 100.0/(1.0+rs)
		case avgGain > 0:
			out[i] = 100.0
		}
	}
	return out, nil
}

// LastRSI returns the most recent RSI value for a price series.
func LastRSI(series *model.PriceSeries, window int) (float64, error) {
	rsi, err := RSISeries(series.Closes(), window)
	if err != nil {
		return math.NaN(), err
	}
	return rsi[len(rsi)-1], nil
}
