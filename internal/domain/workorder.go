package domain

import "time"

type WorkOrder struct {
	ID                   string
	Number               string
	ManufacturingOrderID string
	WorkCenterID         string

	// Timing. StartDate and EndDate are rewritten by a reflow pass;
	// DurationMin is the working time the order needs and never changes.
	StartDate   time.Time
	EndDate     time.Time
	DurationMin int

	// Maintenance orders are fixed occupants of their work center.
	IsMaintenance bool

	// IDs of work orders that must finish before this one starts.
	// IDs that match no known work order are ignored.
	DependsOn []string

	Seq       int
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Duration returns the required working time.
func (w *WorkOrder) Duration() time.Duration {
	return time.Duration(w.DurationMin) * time.Minute
}

// Reschedule moves the order to [start, end). Both instants are stored in UTC.
func (w *WorkOrder) Reschedule(start, end time.Time, now time.Time) {
	w.StartDate = start.UTC()
	w.EndDate = end.UTC()
	w.UpdatedAt = now
}

// Change records how a reflow pass moved one work order.
type Change struct {
	WorkOrderID string
	OldStart    time.Time
	OldEnd      time.Time
	NewStart    time.Time
	NewEnd      time.Time
	// DelayMin is NewEnd - OldEnd in whole minutes; negative when the order
	// now finishes earlier than before.
	DelayMin int
}
