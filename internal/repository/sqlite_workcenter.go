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

// SQLiteWorkCenterRepo implements WorkCenterRepo using a SQLite database.
type SQLiteWorkCenterRepo struct {
	db db.DBTX
}

func NewSQLiteWorkCenterRepo(conn db.DBTX) *SQLiteWorkCenterRepo {
	return &SQLiteWorkCenterRepo{db: conn}
}

// Create inserts the work center and its calendar. Run it inside a unit of
// work to keep the three inserts atomic.
func (r *SQLiteWorkCenterRepo) Create(ctx context.Context, wc *domain.WorkCenter) error {
	now := nowUTC()
	if _, err := r.db.ExecContext(ctx,
		`INSERT INTO work_centers (id, name, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		wc.ID, wc.Name, now, now,
	); err != nil {
		return fmt.Errorf("inserting work center: %w", err)
	}

	for _, s := range wc.Shifts {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO shifts (work_center_id, day_of_week, start_hour, end_hour) VALUES (?, ?, ?, ?)`,
			wc.ID, int(s.DayOfWeek), s.StartHour, s.EndHour,
		); err != nil {
			return fmt.Errorf("inserting shift for work center %s: %w", wc.ID, err)
		}
	}

	for _, w := range wc.MaintenanceWindows {
		if _, err := r.db.ExecContext(ctx,
			`INSERT INTO maintenance_windows (work_center_id, start_date, end_date, reason) VALUES (?, ?, ?, ?)`,
			wc.ID, formatTime(w.StartDate), formatTime(w.EndDate), w.Reason,
		); err != nil {
			return fmt.Errorf("inserting maintenance window for work center %s: %w", wc.ID, err)
		}
	}
	return nil
}

func (r *SQLiteWorkCenterRepo) GetByID(ctx context.Context, id string) (*domain.WorkCenter, error) {
	wc := &domain.WorkCenter{}
	err := r.db.QueryRowContext(ctx, `SELECT id, name FROM work_centers WHERE id = ?`, id).Scan(&wc.ID, &wc.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work center %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("scanning work center: %w", err)
	}
	if err := r.loadCalendars(ctx, map[string]*domain.WorkCenter{wc.ID: wc}, `WHERE work_center_id = ?`, id); err != nil {
		return nil, err
	}
	return wc, nil
}

// List returns all work centers ordered by id, each with its shifts and
// maintenance windows.
func (r *SQLiteWorkCenterRepo) List(ctx context.Context) ([]*domain.WorkCenter, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name FROM work_centers ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing work centers: %w", err)
	}
	defer rows.Close()

	var centers []*domain.WorkCenter
	byID := make(map[string]*domain.WorkCenter)
	for rows.Next() {
		wc := &domain.WorkCenter{}
		if err := rows.Scan(&wc.ID, &wc.Name); err != nil {
			return nil, fmt.Errorf("scanning work center: %w", err)
		}
		centers = append(centers, wc)
		byID[wc.ID] = wc
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work centers: %w", err)
	}
	rows.Close()

	if err := r.loadCalendars(ctx, byID, ""); err != nil {
		return nil, err
	}
	return centers, nil
}

func (r *SQLiteWorkCenterRepo) loadCalendars(ctx context.Context, byID map[string]*domain.WorkCenter, where string, args ...any) error {
	shiftRows, err := r.db.QueryContext(ctx,
		`SELECT work_center_id, day_of_week, start_hour, end_hour FROM shifts `+where+` ORDER BY id`, args...)
	if err != nil {
		return fmt.Errorf("listing shifts: %w", err)
	}
	for shiftRows.Next() {
		var centerID string
		var day int
		var s domain.Shift
		if err := shiftRows.Scan(&centerID, &day, &s.StartHour, &s.EndHour); err != nil {
			shiftRows.Close()
			return fmt.Errorf("scanning shift: %w", err)
		}
		s.DayOfWeek = time.Weekday(day)
		if wc, ok := byID[centerID]; ok {
			wc.Shifts = append(wc.Shifts, s)
		}
	}
	if err := shiftRows.Err(); err != nil {
		shiftRows.Close()
		return fmt.Errorf("iterating shifts: %w", err)
	}
	shiftRows.Close()

	windowRows, err := r.db.QueryContext(ctx,
		`SELECT work_center_id, start_date, end_date, reason FROM maintenance_windows `+where+` ORDER BY id`, args...)
	if err != nil {
		return fmt.Errorf("listing maintenance windows: %w", err)
	}
	defer windowRows.Close()
	for windowRows.Next() {
		var centerID, startStr, endStr string
		var w domain.MaintenanceWindow
		if err := windowRows.Scan(&centerID, &startStr, &endStr, &w.Reason); err != nil {
			return fmt.Errorf("scanning maintenance window: %w", err)
		}
		if w.StartDate, err = parseTime("start_date", startStr); err != nil {
			return err
		}
		if w.EndDate, err = parseTime("end_date", endStr); err != nil {
			return err
		}
		if wc, ok := byID[centerID]; ok {
			wc.MaintenanceWindows = append(wc.MaintenanceWindows, w)
		}
	}
	if err := windowRows.Err(); err != nil {
		return fmt.Errorf("iterating maintenance windows: %w", err)
	}
	return nil
}

// DeleteAll removes every work center; shifts and windows cascade.
func (r *SQLiteWorkCenterRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_centers`); err != nil {
		return fmt.Errorf("deleting work centers: %w", err)
	}
	return nil
}
