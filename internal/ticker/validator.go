package ticker

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"RSIScreener/internal/collector"
	"RSIScreener/internal/model"
)

// knownUpdates maps retired symbols to their replacements after corporate
// actions, or to their exchange-suffixed listings.
var knownUpdates = map[string]string{
	"CS":   "UBS", // Credit Suisse absorbed by UBS
	"ALV":  "ALV.DE",
	"BN":   "BN.PA",
	"ENGI": "ENGI.PA",
	"EOAN": "EOAN.DE",
	"MUV2": "MUV2.DE",
	"NESN": "NESN.SW",
	"RWE":  "RWE.DE",
	"UNA":  "UNA.AS",
	"VIE":  "VIE.PA",
}

// exchangeNames describes the exchange suffixes used in knownUpdates.
var exchangeNames = map[string]string{
	"DE": "Deutsche Börse (German Exchange)",
	"PA": "Euronext Paris",
	"AS": "Euronext Amsterdam",
	"SW": "SIX Swiss Exchange",
}

// Validator checks whether symbols currently resolve to tradable market data.
type Validator struct {
	Fetcher collector.Fetcher
}

// NewValidator creates a Validator over the given market-data source.
func NewValidator(f collector.Fetcher) *Validator {
	return &Validator{Fetcher: f}
}

// Validate looks the symbol up and classifies the outcome. When the symbol
// is invalid, a corporate-action suggestion is attached if one is known.
func (v *Validator) Validate(ctx context.Context, symbol string) model.ValidationResult {
	res := model.ValidationResult{Symbol: symbol}

	q, err := v.Fetcher.FetchQuote(ctx, symbol)
	if err != nil {
		res.Reason = classifyLookupError(err)
		res.Suggested, res.SuggestionReason = SuggestUpdate(symbol)
		return res
	}

	switch {
	case !q.HasPrice:
		res.Reason = "no price data available"
	case q.Delisted:
		date := q.DelistedDate
		if date == "" {
			date = "unknown date"
		}
		res.Reason = fmt.Sprintf("delisted on %s", date)
	case q.QuoteType == "" || q.QuoteType == "NONE":
		res.Reason = "invalid symbol"
	case q.Price == 0:
		res.Reason = "zero price - possible trading halt or delisting"
	default:
		res.Valid = true
	}
	if !res.Valid {
		res.Suggested, res.SuggestionReason = SuggestUpdate(symbol)
	}
	return res
}

// classifyLookupError buckets transport failures into not-found, timeout and
// pass-through messages. Timeouts are transient; the caller may retry later.
func classifyLookupError(err error) string {
	if errors.Is(err, collector.ErrNotFound) {
		return "symbol not found"
	}
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) ||
		(errors.As(err, &netErr) && netErr.Timeout()) ||
		strings.Contains(strings.ToLower(err.Error()), "timeout") {
		return "connection timeout - try again later"
	}
	return err.Error()
}

// SuggestUpdate returns a replacement symbol for known corporate-action
// renames and exchange-suffix corrections. It never touches the network.
func SuggestUpdate(symbol string) (suggested, reason string) {
	suggested, ok := knownUpdates[symbol]
	if !ok {
		return "", ""
	}
	if i := strings.IndexByte(suggested, '.'); i >= 0 {
		suffix := suggested[i+1:]
		name, ok := exchangeNames[suffix]
		if !ok {
			name = suffix
		}
		return suggested, fmt.Sprintf("Listed on %s", name)
	}
	return suggested, "Updated symbol after corporate action"
}
