package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := migrateBackfillSeq(db); err != nil {
		return fmt.Errorf("backfilling seq values: %w", err)
	}
	return nil
}

// Work orders deliberately carry no foreign key to work_centers or to the
// orders they depend on: unknown references are reported by the reflow
// engine (work centers) or ignored (dependencies), not rejected on insert.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS work_centers (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL DEFAULT '',
		created_at TEXT NOT NULL,
		updated_at TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS shifts (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		work_center_id TEXT NOT NULL REFERENCES work_centers(id) ON DELETE CASCADE,
		day_of_week    INTEGER NOT NULL CHECK(day_of_week BETWEEN 0 AND 6),
		start_hour     INTEGER NOT NULL CHECK(start_hour BETWEEN 0 AND 23),
		end_hour       INTEGER NOT NULL CHECK(end_hour BETWEEN 0 AND 24)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_shifts_work_center ON shifts(work_center_id)`,

	`CREATE TABLE IF NOT EXISTS maintenance_windows (
		id             INTEGER PRIMARY KEY AUTOINCREMENT,
		work_center_id TEXT NOT NULL REFERENCES work_centers(id) ON DELETE CASCADE,
		start_date     TEXT NOT NULL,
		end_date       TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_maintenance_windows_work_center ON maintenance_windows(work_center_id)`,

	`CREATE TABLE IF NOT EXISTS manufacturing_orders (
		id         TEXT PRIMARY KEY,
		number     TEXT NOT NULL DEFAULT '',
		item_id    TEXT NOT NULL DEFAULT '',
		quantity   INTEGER NOT NULL DEFAULT 0 CHECK(quantity >= 0),
		due_date   TEXT
	)`,

	`CREATE TABLE IF NOT EXISTS work_orders (
		id                     TEXT PRIMARY KEY,
		number                 TEXT NOT NULL DEFAULT '',
		manufacturing_order_id TEXT NOT NULL DEFAULT '',
		work_center_id         TEXT NOT NULL,
		start_date             TEXT NOT NULL,
		end_date               TEXT NOT NULL,
		duration_min           INTEGER NOT NULL CHECK(duration_min >= 0),
		is_maintenance         INTEGER NOT NULL DEFAULT 0,
		created_at             TEXT NOT NULL,
		updated_at             TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_orders_work_center ON work_orders(work_center_id)`,

	`CREATE TABLE IF NOT EXISTS work_order_dependencies (
		work_order_id TEXT NOT NULL REFERENCES work_orders(id) ON DELETE CASCADE,
		depends_on_id TEXT NOT NULL,
		position      INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (work_order_id, depends_on_id)
	)`,

	// Reason text for maintenance windows
	`ALTER TABLE maintenance_windows ADD COLUMN reason TEXT NOT NULL DEFAULT ''`,

	// Input order of work orders, used as the stable tie-breaker for reflow
	`ALTER TABLE work_orders ADD COLUMN seq INTEGER NOT NULL DEFAULT 0`,
	`CREATE INDEX IF NOT EXISTS idx_work_orders_seq ON work_orders(seq)`,
}

// migrateBackfillSeq assigns sequence numbers to work orders stored before
// the seq column existed (seq = 0), continuing after the current maximum in
// insertion order. Idempotent: does nothing once every row has a seq.
func migrateBackfillSeq(db *sql.DB) error {
	ctx := context.Background()

	var count int
	if err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM work_orders WHERE seq = 0`).Scan(&count); err != nil {
		return fmt.Errorf("checking work_orders seq: %w", err)
	}
	if count == 0 {
		return nil
	}

	var maxSeq int
	if err := db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM work_orders`).Scan(&maxSeq); err != nil {
		return fmt.Errorf("reading max seq: %w", err)
	}

	rows, err := db.QueryContext(ctx, `SELECT id FROM work_orders WHERE seq = 0 ORDER BY rowid`)
	if err != nil {
		return fmt.Errorf("listing work orders for seq backfill: %w", err)
	}
	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return fmt.Errorf("scanning work order id: %w", err)
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating work orders: %w", err)
	}

	for i, id := range ids {
		if _, err := db.ExecContext(ctx, `UPDATE work_orders SET seq = ? WHERE id = ?`, maxSeq+i+1, id); err != nil {
			return fmt.Errorf("updating seq for %s: %w", id, err)
		}
	}
	return nil
}
