package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/reflow/internal/db"
	"github.com/alexanderramin/reflow/internal/domain"
)

// workOrderColumns is the canonical SELECT column list for work_orders.
const workOrderColumns = `id, number, manufacturing_order_id, work_center_id,
		start_date, end_date, duration_min, is_maintenance, seq, created_at, updated_at`

// SQLiteWorkOrderRepo implements WorkOrderRepo using a SQLite database.
type SQLiteWorkOrderRepo struct {
	db db.DBTX
}

func NewSQLiteWorkOrderRepo(conn db.DBTX) *SQLiteWorkOrderRepo {
	return &SQLiteWorkOrderRepo{db: conn}
}

// Create inserts the work order and its dependency list, keeping the list's
// order. Dependencies on unknown ids are stored as given.
func (r *SQLiteWorkOrderRepo) Create(ctx context.Context, wo *domain.WorkOrder) error {
	query := `INSERT INTO work_orders (` + workOrderColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		wo.ID,
		wo.Number,
		wo.ManufacturingOrderID,
		wo.WorkCenterID,
		formatTime(wo.StartDate),
		formatTime(wo.EndDate),
		wo.DurationMin,
		boolToInt(wo.IsMaintenance),
		wo.Seq,
		formatTime(wo.CreatedAt),
		formatTime(wo.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("inserting work order: %w", err)
	}

	for i, depID := range wo.DependsOn {
		if _, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO work_order_dependencies (work_order_id, depends_on_id, position) VALUES (?, ?, ?)`,
			wo.ID, depID, i,
		); err != nil {
			return fmt.Errorf("inserting dependency %s -> %s: %w", wo.ID, depID, err)
		}
	}
	return nil
}

func (r *SQLiteWorkOrderRepo) GetByID(ctx context.Context, id string) (*domain.WorkOrder, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+workOrderColumns+` FROM work_orders WHERE id = ?`, id)
	wo, err := scanWorkOrder(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work order %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	if err := r.loadDependencies(ctx, map[string]*domain.WorkOrder{wo.ID: wo}, `WHERE work_order_id = ?`, id); err != nil {
		return nil, err
	}
	return wo, nil
}

func (r *SQLiteWorkOrderRepo) List(ctx context.Context) ([]*domain.WorkOrder, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+workOrderColumns+` FROM work_orders ORDER BY seq, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing work orders: %w", err)
	}
	defer rows.Close()

	var orders []*domain.WorkOrder
	byID := make(map[string]*domain.WorkOrder)
	for rows.Next() {
		wo, err := scanWorkOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, wo)
		byID[wo.ID] = wo
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work orders: %w", err)
	}
	rows.Close()

	if err := r.loadDependencies(ctx, byID, ""); err != nil {
		return nil, err
	}
	return orders, nil
}

func (r *SQLiteWorkOrderRepo) loadDependencies(ctx context.Context, byID map[string]*domain.WorkOrder, where string, args ...any) error {
	rows, err := r.db.QueryContext(ctx,
		`SELECT work_order_id, depends_on_id FROM work_order_dependencies `+where+` ORDER BY work_order_id, position`, args...)
	if err != nil {
		return fmt.Errorf("listing dependencies: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var woID, depID string
		if err := rows.Scan(&woID, &depID); err != nil {
			return fmt.Errorf("scanning dependency: %w", err)
		}
		if wo, ok := byID[woID]; ok {
			wo.DependsOn = append(wo.DependsOn, depID)
		}
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("iterating dependencies: %w", err)
	}
	return nil
}

// UpdateTimes stores a rescheduled interval.
func (r *SQLiteWorkOrderRepo) UpdateTimes(ctx context.Context, id string, start, end, updatedAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE work_orders SET start_date = ?, end_date = ?, updated_at = ? WHERE id = ?`,
		formatTime(start), formatTime(end), formatTime(updatedAt), id,
	)
	if err != nil {
		return fmt.Errorf("updating work order times: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("work order %s: %w", id, ErrNotFound)
	}
	return nil
}

// NextSeq returns the sequence number for the next appended work order.
func (r *SQLiteWorkOrderRepo) NextSeq(ctx context.Context) (int, error) {
	var maxSeq int
	if err := r.db.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) FROM work_orders`).Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("reading max seq: %w", err)
	}
	return maxSeq + 1, nil
}

// DeleteAll removes every work order; dependency rows cascade.
func (r *SQLiteWorkOrderRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_orders`); err != nil {
		return fmt.Errorf("deleting work orders: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkOrder(row rowScanner) (*domain.WorkOrder, error) {
	var wo domain.WorkOrder
	var startStr, endStr, createdStr, updatedStr string
	var maintInt int

	err := row.Scan(
		&wo.ID, &wo.Number, &wo.ManufacturingOrderID, &wo.WorkCenterID,
		&startStr, &endStr, &wo.DurationMin, &maintInt, &wo.Seq, &createdStr, &updatedStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work order: %w", err)
	}
	wo.IsMaintenance = intToBool(maintInt)

	if wo.StartDate, err = parseTime("start_date", startStr); err != nil {
		return nil, err
	}
	if wo.EndDate, err = parseTime("end_date", endStr); err != nil {
		return nil, err
	}
	if wo.CreatedAt, err = parseTime("created_at", createdStr); err != nil {
		return nil, err
	}
	if wo.UpdatedAt, err = parseTime("updated_at", updatedStr); err != nil {
		return nil, err
	}
	return &wo, nil
}
