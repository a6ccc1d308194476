package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"math"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"RSIScreener/internal/model"
)

// SQLiteRecorder persists screener history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so external readers don't block the screener's writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS cycle_checks (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			symbol    TEXT NOT NULL,
			price     REAL,
			rsi       REAL,
			signal    TEXT,
			error     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_checks_ts ON cycle_checks(timestamp)`,

		`CREATE TABLE IF NOT EXISTS alert_events (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			message   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alert_events(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// RecordCycle inserts one row per symbol checked in this cycle.
func (r *SQLiteRecorder) RecordCycle(rows []model.CheckRow) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().Unix()
	tx, err := r.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for _, row := range rows {
		var price, rsi, errText interface{}
		if row.Err != nil {
			errText = row.Err.Error()
		} else {
			price = row.Sample.Close
			if !math.IsNaN(row.Sample.RSI) {
				rsi = row.Sample.RSI
			}
		}
		if _, err := tx.Exec(`INSERT INTO cycle_checks
			(timestamp, symbol, price, rsi, signal, error)
			VALUES (?,?,?,?,?,?)`,
			now, row.Symbol, price, rsi, string(row.Signal), errText); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert check: %w", err)
		}
	}
	return tx.Commit()
}

// RecordAlert journals one dispatched alert batch.
func (r *SQLiteRecorder) RecordAlert(message string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alert_events (timestamp, message) VALUES (?,?)`,
		time.Now().Unix(), message)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
