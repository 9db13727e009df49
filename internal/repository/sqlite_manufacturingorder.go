package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/alexanderramin/reflow/internal/db"
	"github.com/alexanderramin/reflow/internal/domain"
)

// SQLiteManufacturingOrderRepo implements ManufacturingOrderRepo using a
// SQLite database.
type SQLiteManufacturingOrderRepo struct {
	db db.DBTX
}

func NewSQLiteManufacturingOrderRepo(conn db.DBTX) *SQLiteManufacturingOrderRepo {
	return &SQLiteManufacturingOrderRepo{db: conn}
}

func (r *SQLiteManufacturingOrderRepo) Create(ctx context.Context, mo *domain.ManufacturingOrder) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO manufacturing_orders (id, number, item_id, quantity, due_date) VALUES (?, ?, ?, ?, ?)`,
		mo.ID, mo.Number, mo.ItemID, mo.Quantity, nullableTimeToString(mo.DueDate),
	)
	if err != nil {
		return fmt.Errorf("inserting manufacturing order: %w", err)
	}
	return nil
}

func (r *SQLiteManufacturingOrderRepo) List(ctx context.Context) ([]*domain.ManufacturingOrder, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, number, item_id, quantity, due_date FROM manufacturing_orders ORDER BY number, id`)
	if err != nil {
		return nil, fmt.Errorf("listing manufacturing orders: %w", err)
	}
	defer rows.Close()

	var out []*domain.ManufacturingOrder
	for rows.Next() {
		var mo domain.ManufacturingOrder
		var due sql.NullString
		if err := rows.Scan(&mo.ID, &mo.Number, &mo.ItemID, &mo.Quantity, &due); err != nil {
			return nil, fmt.Errorf("scanning manufacturing order: %w", err)
		}
		mo.DueDate = parseNullableTime(due)
		out = append(out, &mo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating manufacturing orders: %w", err)
	}
	return out, nil
}

func (r *SQLiteManufacturingOrderRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM manufacturing_orders`); err != nil {
		return fmt.Errorf("deleting manufacturing orders: %w", err)
	}
	return nil
}
