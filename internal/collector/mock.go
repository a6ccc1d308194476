package collector

import (
	"context"
	"time"

	"RSIScreener/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price     float64
	Series    map[string]*model.PriceSeries
	Quotes    map[string]*model.Quote
	SeriesErr map[string]error
	QuoteErr  map[string]error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchSeries(_ context.Context, symbol, _, _ string) (*model.PriceSeries, error) {
	if err, ok := m.SeriesErr[symbol]; ok {
		return nil, err
	}
	if s, ok := m.Series[symbol]; ok {
		return s, nil
	}
	return &model.PriceSeries{
		Symbol:    symbol,
		Bars:      GenerateBars(m.Price, 0.1, 60),
		FetchedAt: time.Now(),
	}, nil
}

func (m *MockFetcher) FetchQuote(_ context.Context, symbol string) (*model.Quote, error) {
	if err, ok := m.QuoteErr[symbol]; ok {
		return nil, err
	}
	if q, ok := m.Quotes[symbol]; ok {
		return q, nil
	}
	return &model.Quote{Symbol: symbol, Price: m.Price, HasPrice: true, QuoteType: "EQUITY"}, nil
}

// GenerateBars builds count daily bars whose close moves by step per bar,
// starting from base.
func GenerateBars(base, step float64, count int) []model.Bar {
	bars := make([]model.Bar, count)
	for i := 0; i < count; i++ {
		p := base + step*float64(i)
		bars[i] = model.Bar{
			Time:   time.Now().AddDate(0, 0, -(count - i)),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000000,
		}
	}
	return bars
}
