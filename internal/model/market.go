package model

import "time"

// Bar represents a single candlestick bar.
type Bar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// PriceSeries holds fetched price history for one symbol, ascending by time.
type PriceSeries struct {
	Symbol    string
	Bars      []Bar
	FetchedAt time.Time
}

// Closes extracts the close prices in order.
func (s *PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		closes[i] = b.Close
	}
	return closes
}

// Quote holds the validation metadata returned by a market-data lookup.
type Quote struct {
	Symbol       string
	Price        float64
	HasPrice     bool
	QuoteType    string
	Delisted     bool
	DelistedDate string
}
