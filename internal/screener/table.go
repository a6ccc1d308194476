package screener

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"text/tabwriter"

	"RSIScreener/internal/model"
)

// SortRows orders rows by RSI descending. Rows with no computed RSI sort
// below every value, and error rows sort last of all; within those two
// groups the input order is kept.
func SortRows(rows []model.CheckRow) {
	rank := func(r model.CheckRow) int {
		switch {
		case r.Err != nil:
			return 2
		case math.IsNaN(r.Sample.RSI):
			return 1
		default:
			return 0
		}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		ri, rj := rank(rows[i]), rank(rows[j])
		if ri != rj {
			return ri < rj
		}
		if ri != 0 {
			return false
		}
		return rows[i].Sample.RSI > rows[j].Sample.RSI
	})
}

// RenderTable formats already-sorted rows as an aligned status table.
func RenderTable(rows []model.CheckRow) string {
	var b strings.Builder
	w := tabwriter.NewWriter(&b, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "Symbol\tPrice\tRSI\tSignal")
	for _, r := range rows {
		price, rsi := "n/a", "n/a"
		status := string(r.Signal)
		if r.Err != nil {
			status = "ERROR: " + truncate(r.Err.Error(), 50)
		} else {
			price = fmt.Sprintf("$%.2f", r.Sample.Close)
			if !math.IsNaN(r.Sample.RSI) {
				rsi = fmt.Sprintf("%.1f", r.Sample.RSI)
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.Symbol, price, rsi, status)
	}
	w.Flush()
	return b.String()
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
