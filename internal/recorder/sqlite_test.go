package recorder

import (
	"errors"
	"math"
	"path/filepath"
	"testing"

	"RSIScreener/internal/model"
)

func openTestRecorder(t *testing.T) *SQLiteRecorder {
	t.Helper()
	r, err := NewSQLiteRecorder(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("open recorder: %v", err)
	}
	t.Cleanup(func() { r.Close() })
	return r
}

func TestRecordCycle(t *testing.T) {
	r := openTestRecorder(t)

	rows := []model.CheckRow{
		{
			Symbol: "AAPL",
			Sample: model.RsiSample{Symbol: "AAPL", RSI: 45.2, Close: 187.3},
			Signal: model.SignalNone,
		},
		{
			Symbol: "NEW",
			Sample: model.RsiSample{Symbol: "NEW", RSI: math.NaN(), Close: 12.5},
			Signal: model.SignalNone,
		},
		{
			Symbol: "BAD",
			Err:    errors.New("fetch failed"),
		},
	}
	if err := r.RecordCycle(rows); err != nil {
		t.Fatalf("record cycle: %v", err)
	}

	var count int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM cycle_checks`).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("cycle_checks rows = %d, want 3", count)
	}

	// NaN RSI and error rows store NULLs, not garbage values.
	var nullRSI int
	if err := r.db.QueryRow(`SELECT COUNT(*) FROM cycle_checks WHERE rsi IS NULL`).Scan(&nullRSI); err != nil {
		t.Fatal(err)
	}
	if nullRSI != 2 {
		t.Errorf("rows with NULL rsi = %d, want 2", nullRSI)
	}

	var errText string
	if err := r.db.QueryRow(`SELECT error FROM cycle_checks WHERE symbol = 'BAD'`).Scan(&errText); err != nil {
		t.Fatal(err)
	}
	if errText != "fetch failed" {
		t.Errorf("error text = %q", errText)
	}
}

func TestRecordAlert(t *testing.T) {
	r := openTestRecorder(t)

	if err := r.RecordAlert("⚠️ AAPL RSI=29.5 (<30)"); err != nil {
		t.Fatalf("record alert: %v", err)
	}

	var msg string
	if err := r.db.QueryRow(`SELECT message FROM alert_events`).Scan(&msg); err != nil {
		t.Fatal(err)
	}
	if msg != "⚠️ AAPL RSI=29.5 (<30)" {
		t.Errorf("message = %q", msg)
	}
}

func TestNoopRecorder(t *testing.T) {
	n := NewNoopRecorder()
	if err := n.RecordCycle(nil); err != nil {
		t.Errorf("noop RecordCycle: %v", err)
	}
	if err := n.RecordAlert("x"); err != nil {
		t.Errorf("noop RecordAlert: %v", err)
	}
	if err := n.Close(); err != nil {
		t.Errorf("noop Close: %v", err)
	}
}
