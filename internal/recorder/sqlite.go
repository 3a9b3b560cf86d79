package recorder

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists the order journal to a SQLite database.
type SQLiteRecorder struct {
	db     *sql.DB
	mu     sync.Mutex
	logger *zap.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, logger *zap.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL so ad-hoc readers do not block the trading loop.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, logger: logger}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	logger.Info("sqlite recorder opened", zap.String("path", dbPath))
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			order_id          TEXT NOT NULL,
			timestamp         INTEGER NOT NULL,
			symbol            TEXT NOT NULL,
			instruction       TEXT NOT NULL,
			quantity          INTEGER NOT NULL,
			price             REAL,
			reason            TEXT,
			accepted          INTEGER NOT NULL,
			error             TEXT,
			available_capital REAL,
			capital_used      REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_ts ON orders(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_symbol ON orders(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS liquidations (
			id                INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp         INTEGER NOT NULL,
			closed            INTEGER NOT NULL,
			failed            INTEGER NOT NULL,
			available_capital REAL,
			capital_used      REAL,
			note              TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_liquidations_ts ON liquidations(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordOrder(ctx context.Context, evt OrderEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accepted := 0
	if evt.Accepted {
		accepted = 1
	}
	_, err := r.db.ExecContext(ctx, `INSERT INTO orders
		(order_id, timestamp, symbol, instruction, quantity, price, reason,
		 accepted, error, available_capital, capital_used)
		VALUES (?,?,?,?,?,?,?,?,?,?,?)`,
		evt.OrderID, evt.Time.Unix(), evt.Symbol, evt.Instruction, evt.Quantity, evt.Price, evt.Reason,
		accepted, evt.Error, evt.AvailableCapital, evt.CapitalUsed,
	)
	return err
}

func (r *SQLiteRecorder) RecordLiquidation(ctx context.Context, evt LiquidationEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, `INSERT INTO liquidations
		(timestamp, closed, failed, available_capital, capital_used, note)
		VALUES (?,?,?,?,?,?)`,
		evt.Time.Unix(), evt.Closed, evt.Failed, evt.AvailableCapital, evt.CapitalUsed, evt.Note,
	)
	return err
}

// Optimize runs SQLite's planner maintenance. Housekeeping calls it nightly.
func (r *SQLiteRecorder) Optimize(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.ExecContext(ctx, "PRAGMA optimize")
	return err
}

// CountOrders returns how many orders were journaled for symbol.
func (r *SQLiteRecorder) CountOrders(ctx context.Context, symbol string) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders WHERE symbol = ?`, symbol).Scan(&n)
	return n, err
}

func (r *SQLiteRecorder) Close() error {
	r.logger.Info("closing sqlite recorder")
	return r.db.Close()
}
