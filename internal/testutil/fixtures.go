package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/google/uuid"
)

var testNumberCounter atomic.Int64

func nextNumber(prefix string) string {
	return fmt.Sprintf("%s-%03d", prefix, testNumberCounter.Add(1))
}

// WorkCenter options
type WorkCenterOption func(*domain.WorkCenter)

func WithShift(day time.Weekday, startHour, endHour int) WorkCenterOption {
	return func(wc *domain.WorkCenter) {
		wc.Shifts = append(wc.Shifts, domain.Shift{DayOfWeek: day, StartHour: startHour, EndHour: endHour})
	}
}

// WithWeekdayShifts adds one shift per day Monday through Friday.
func WithWeekdayShifts(startHour, endHour int) WorkCenterOption {
	return func(wc *domain.WorkCenter) {
		for d := time.Monday; d <= time.Friday; d++ {
			wc.Shifts = append(wc.Shifts, domain.Shift{DayOfWeek: d, StartHour: startHour, EndHour: endHour})
		}
	}
}

func WithMaintenanceWindow(start, end time.Time, reason string) WorkCenterOption {
	return func(wc *domain.WorkCenter) {
		wc.MaintenanceWindows = append(wc.MaintenanceWindows, domain.MaintenanceWindow{
			StartDate: start.UTC(),
			EndDate:   end.UTC(),
			Reason:    reason,
		})
	}
}

// NewTestWorkCenter builds a work center with a random id and no shifts
// unless options add them.
func NewTestWorkCenter(name string, opts ...WorkCenterOption) *domain.WorkCenter {
	wc := &domain.WorkCenter{
		ID:   uuid.New().String(),
		Name: name,
	}
	for _, opt := range opts {
		opt(wc)
	}
	return wc
}

// WorkOrder options
type WorkOrderOption func(*domain.WorkOrder)

func WithDependsOn(ids ...string) WorkOrderOption {
	return func(wo *domain.WorkOrder) {
		wo.DependsOn = append(wo.DependsOn, ids...)
	}
}

func WithMaintenance() WorkOrderOption {
	return func(wo *domain.WorkOrder) {
		wo.IsMaintenance = true
	}
}

func WithManufacturingOrder(id string) WorkOrderOption {
	return func(wo *domain.WorkOrder) {
		wo.ManufacturingOrderID = id
	}
}

func WithSeq(seq int) WorkOrderOption {
	return func(wo *domain.WorkOrder) {
		wo.Seq = seq
	}
}

func NewTestWorkOrder(workCenterID string, start time.Time, durationMin int, opts ...WorkOrderOption) *domain.WorkOrder {
	now := time.Now().UTC().Truncate(time.Second)
	wo := &domain.WorkOrder{
		ID:           uuid.New().String(),
		Number:       nextNumber("WO"),
		WorkCenterID: workCenterID,
		StartDate:    start.UTC(),
		EndDate:      start.UTC().Add(time.Duration(durationMin) * time.Minute),
		DurationMin:  durationMin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, opt := range opts {
		opt(wo)
	}
	return wo
}

func NewTestManufacturingOrder(itemID string, quantity int, due *time.Time) *domain.ManufacturingOrder {
	return &domain.ManufacturingOrder{
		ID:       uuid.New().String(),
		Number:   nextNumber("MO"),
		ItemID:   itemID,
		Quantity: quantity,
		DueDate:  due,
	}
}

// MustTime parses an RFC3339 instant and panics on malformed input.
func MustTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t.UTC()
}
