package scheduler

import (
	"testing"
	"time"

	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/stretchr/testify/require"
)

// at parses an RFC3339 instant; test inputs are always valid.
func at(t *testing.T, s string) time.Time {
	t.Helper()
	ts, err := time.Parse(time.RFC3339, s)
	require.NoError(t, err)
	return ts.UTC()
}

// weekdayShifts returns one start–end shift for Monday through Friday.
func weekdayShifts(start, end int) []domain.Shift {
	shifts := make([]domain.Shift, 0, 5)
	for d := time.Monday; d <= time.Friday; d++ {
		shifts = append(shifts, domain.Shift{DayOfWeek: d, StartHour: start, EndHour: end})
	}
	return shifts
}

func newCenter(id string, shifts []domain.Shift, windows ...domain.MaintenanceWindow) *domain.WorkCenter {
	return &domain.WorkCenter{ID: id, Name: id, Shifts: shifts, MaintenanceWindows: windows}
}

func newOrder(t *testing.T, id, center, start, end string, durationMin int, deps ...string) *domain.WorkOrder {
	t.Helper()
	return &domain.WorkOrder{
		ID:           id,
		Number:       "N-" + id,
		WorkCenterID: center,
		StartDate:    at(t, start),
		EndDate:      at(t, end),
		DurationMin:  durationMin,
		DependsOn:    deps,
	}
}

func ids(orders []*domain.WorkOrder) []string {
	out := make([]string, len(orders))
	for i, wo := range orders {
		out[i] = wo.ID
	}
	return out
}
