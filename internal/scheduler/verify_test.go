package scheduler

import (
	"testing"

	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(vs []Violation) []ViolationKind {
	out := make([]ViolationKind, len(vs))
	for i, v := range vs {
		out[i] = v.Kind
	}
	return out
}

func TestVerify_CleanSchedule(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	orders := []*domain.WorkOrder{
		newOrder(t, "A", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120),
		newOrder(t, "B", "WC1", "2025-11-11T10:00:00Z", "2025-11-11T17:00:00Z", 420, "A"),
	}

	assert.Empty(t, Verify(orders, []*domain.WorkCenter{wc}))
}

func TestVerify_DependencyStartsTooEarly(t *testing.T) {
	centers := []*domain.WorkCenter{
		newCenter("WC1", weekdayShifts(8, 17)),
		newCenter("WC2", weekdayShifts(8, 17)),
	}
	orders := []*domain.WorkOrder{
		newOrder(t, "A", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120),
		newOrder(t, "B", "WC2", "2025-11-11T09:00:00Z", "2025-11-11T11:00:00Z", 120, "A", "ghost"),
	}

	vs := Verify(orders, centers)
	require.Len(t, vs, 1)
	assert.Equal(t, ViolationDependency, vs[0].Kind)
	assert.Equal(t, "B", vs[0].WorkOrderID)
	assert.Equal(t, "A", vs[0].RelatedID)
}

func TestVerify_SameCenterOverlap(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	orders := []*domain.WorkOrder{
		newOrder(t, "A", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T16:00:00Z", 480),
		newOrder(t, "B", "WC1", "2025-11-11T09:00:00Z", "2025-11-11T10:00:00Z", 60),
		// Overlaps A even though B ended earlier.
		newOrder(t, "C", "WC1", "2025-11-11T11:00:00Z", "2025-11-11T12:00:00Z", 60),
	}

	vs := Verify(orders, []*domain.WorkCenter{wc})
	require.Len(t, vs, 2)
	for _, v := range vs {
		assert.Equal(t, ViolationWorkCenterOverlap, v.Kind)
		assert.Equal(t, "A", v.RelatedID)
	}
}

func TestVerify_MaintenanceOrdersMayOverlapOthers(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	maint := newOrder(t, "M", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T09:00:00Z", 60)
	maint.IsMaintenance = true
	other := newOrder(t, "A", "WC1", "2025-11-11T08:30:00Z", "2025-11-11T09:30:00Z", 60)

	vs := Verify([]*domain.WorkOrder{maint, other}, []*domain.WorkCenter{wc})
	require.Len(t, vs, 1)
	assert.Equal(t, ViolationMaintenance, vs[0].Kind)
	assert.Equal(t, "A", vs[0].WorkOrderID)
	assert.Contains(t, vs[0].Message, "maintenance work order M")
}

func TestVerify_MaintenanceWindowOverlap(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17),
		window(t, "2025-11-12T10:00:00Z", "2025-11-12T11:00:00Z", "Planned maintenance"))
	orders := []*domain.WorkOrder{
		newOrder(t, "A", "WC1", "2025-11-12T10:00:00Z", "2025-11-12T12:00:00Z", 120),
		newOrder(t, "B", "WC1", "2025-11-12T12:00:00Z", "2025-11-12T13:00:00Z", 60),
	}

	vs := Verify(orders, []*domain.WorkCenter{wc})
	require.Len(t, vs, 1)
	assert.Equal(t, ViolationMaintenance, vs[0].Kind)
	assert.Contains(t, vs[0].Message, "Planned maintenance")
}

func TestVerify_EndOutsideShift(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	orders := []*domain.WorkOrder{
		newOrder(t, "A", "WC1", "2025-11-14T08:00:00Z", "2025-11-14T23:00:00Z", 900),
		newOrder(t, "B", "WC1", "2025-11-17T16:00:00Z", "2025-11-17T17:00:00Z", 60),
		newOrder(t, "Z", "WC1", "2025-11-15T12:00:00Z", "2025-11-15T12:00:00Z", 0),
	}

	vs := Verify(orders, []*domain.WorkCenter{wc})
	require.Len(t, vs, 1)
	assert.Equal(t, ViolationOffShift, vs[0].Kind)
	assert.Equal(t, "A", vs[0].WorkOrderID)
}

func TestVerify_UnknownWorkCenter(t *testing.T) {
	orders := []*domain.WorkOrder{
		newOrder(t, "A", "WC9", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120),
	}

	vs := Verify(orders, nil)
	assert.Equal(t, []ViolationKind{ViolationUnknownWorkCenter}, kinds(vs))
	assert.Equal(t, "WC9", vs[0].RelatedID)
}

func TestVerify_CleanAfterReflow(t *testing.T) {
	centers := []*domain.WorkCenter{
		newCenter("WC1", weekdayShifts(8, 17),
			window(t, "2025-11-12T10:00:00Z", "2025-11-12T11:00:00Z", "")),
		newCenter("WC2", weekdayShifts(8, 17)),
	}
	orders := []*domain.WorkOrder{
		newOrder(t, "A", "WC1", "2025-11-12T10:00:00Z", "2025-11-12T12:00:00Z", 120),
		newOrder(t, "B", "WC1", "2025-11-12T08:00:00Z", "2025-11-12T12:00:00Z", 240),
		newOrder(t, "C", "WC2", "2025-11-12T08:00:00Z", "2025-11-12T10:00:00Z", 120, "A"),
	}
	require.NotEmpty(t, Verify(orders, centers))

	_, err := Reflow(orders, centers, nil)
	require.NoError(t, err)
	assert.Empty(t, Verify(orders, centers))
}
