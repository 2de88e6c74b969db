package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/neodize/rsi-grid-alert-bot/internal/model"
)

// SQLiteRecorder persists scan history to a SQLite database.
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

	// WAL mode for concurrent read performance (dashboards read while the bot writes).
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
		`CREATE TABLE IF NOT EXISTS scans (
			id        INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp INTEGER NOT NULL,
			scanned   INTEGER,
			signals   INTEGER,
			alerts    INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_scans_ts ON scans(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signals (
			id             TEXT PRIMARY KEY,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			zone           TEXT,
			interval       TEXT,
			price          REAL,
			low            REAL,
			high           REAL,
			spacing_pct    REAL,
			grid_count     INTEGER,
			cycle_days     REAL,
			score          REAL,
			rsi            REAL,
			std_dev        REAL,
			volatility_pct REAL,
			macd_line      REAL,
			macd_signal    REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol)`,

		`CREATE TABLE IF NOT EXISTS alerts (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			type        TEXT,
			prev_zone   TEXT,
			proxy_price REAL,
			reason      TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_alerts_ts ON alerts(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordScan(snap *ScanSnapshot) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scans (timestamp, scanned, signals, alerts) VALUES (?,?,?,?)`,
		time.Now().Unix(), snap.Scanned, snap.Signals, snap.Alerts)
	return err
}

func (r *SQLiteRecorder) RecordSignal(sig *model.Signal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signals
		(id, timestamp, symbol, zone, interval, price, low, high,
		 spacing_pct, grid_count, cycle_days, score,
		 rsi, std_dev, volatility_pct, macd_line, macd_signal)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		uuid.NewString(), sig.At.Unix(), sig.Symbol, string(sig.Zone), string(sig.Interval),
		sig.Price, sig.Plan.Low, sig.Plan.High,
		sig.Plan.SpacingPct, sig.Plan.GridCount, sig.Plan.CycleDays, sig.Score,
		sig.Indicators.RSI, sig.Indicators.StdDev, sig.Indicators.VolatilityPct,
		sig.Indicators.MACDLine, sig.Indicators.MACDSignal,
	)
	return err
}

func (r *SQLiteRecorder) RecordAlert(a *model.Alert) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO alerts
		(id, timestamp, symbol, type, prev_zone, proxy_price, reason)
		VALUES (?,?,?,?,?,?,?)`,
		uuid.NewString(), a.At.Unix(), a.Symbol, string(a.Type),
		string(a.PrevZone), a.ProxyPrice, a.Reason,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
