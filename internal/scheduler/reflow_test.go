package scheduler

import (
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func explanationsContaining(result *Result, fragment string) []string {
	var out []string
	for _, e := range result.Explanations {
		if strings.Contains(e, fragment) {
			out = append(out, e)
		}
	}
	return out
}

func TestReflow_SingleOrderInsideShiftIsUnchanged(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	wo := newOrder(t, "WO1", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120)

	result, err := Reflow([]*domain.WorkOrder{wo}, []*domain.WorkCenter{wc}, nil)
	require.NoError(t, err)

	assert.Empty(t, result.Changes)
	assert.Empty(t, result.Explanations)
	assert.Equal(t, at(t, "2025-11-11T10:00:00Z"), wo.EndDate)
}

func TestReflow_SameCenterOverlapPushesSecondOrder(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	wo1 := newOrder(t, "WO1", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T12:00:00Z", 240)
	wo2 := newOrder(t, "WO2", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T12:00:00Z", 240)

	result, err := Reflow([]*domain.WorkOrder{wo1, wo2}, []*domain.WorkCenter{wc}, nil)
	require.NoError(t, err)

	require.Len(t, result.Changes, 1)
	change := result.Changes[0]
	assert.Equal(t, "WO2", change.WorkOrderID)
	assert.Equal(t, at(t, "2025-11-11T12:00:00Z"), change.NewStart)
	assert.Equal(t, at(t, "2025-11-11T16:00:00Z"), change.NewEnd)
	assert.Equal(t, 240, change.DelayMin)

	assert.Equal(t, at(t, "2025-11-11T08:00:00Z"), wo1.StartDate, "first order keeps its slot")
	assert.Equal(t, at(t, "2025-11-11T12:00:00Z"), wo2.StartDate)
	assert.Equal(t, at(t, "2025-11-11T16:00:00Z"), wo2.EndDate)

	conflicts := explanationsContaining(result, "intra work center conflict")
	require.Len(t, conflicts, 1)
	assert.Contains(t, conflicts[0], "WO2")
	assert.Empty(t, explanationsContaining(result, "Work Order WO1"))
}

func TestReflow_MaintenanceWindowDisplacesOrder(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17),
		window(t, "2025-11-12T10:00:00Z", "2025-11-12T11:00:00Z", "Planned maintenance"))
	wo := newOrder(t, "WO1", "WC1", "2025-11-12T10:00:00Z", "2025-11-12T12:00:00Z", 120)

	result, err := Reflow([]*domain.WorkOrder{wo}, []*domain.WorkCenter{wc}, nil)
	require.NoError(t, err)

	assert.Equal(t, at(t, "2025-11-12T11:00:00Z"), wo.StartDate)
	assert.Equal(t, at(t, "2025-11-12T13:00:00Z"), wo.EndDate)
	require.Len(t, result.Changes, 1)
	assert.Equal(t, 60, result.Changes[0].DelayMin)

	maint := explanationsContaining(result, "maintenance window")
	require.Len(t, maint, 1)
	assert.Contains(t, maint[0], "Planned maintenance")
	assert.Contains(t, maint[0], "WC1")
}

func TestReflow_LongOrderSkipsWeekend(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	wo := newOrder(t, "WO1", "WC1", "2025-11-14T08:00:00Z", "2025-11-14T23:00:00Z", 900)

	result, err := Reflow([]*domain.WorkOrder{wo}, []*domain.WorkCenter{wc}, nil)
	require.NoError(t, err)

	assert.Equal(t, at(t, "2025-11-17T14:00:00Z"), wo.EndDate)
	assert.NotEqual(t, time.Saturday, wo.EndDate.Weekday())
	assert.NotEqual(t, time.Sunday, wo.EndDate.Weekday())
	require.Len(t, result.Changes, 1)
}

func TestReflow_DependencyAcrossCenters(t *testing.T) {
	centers := []*domain.WorkCenter{
		newCenter("WC1", weekdayShifts(8, 17)),
		newCenter("WC2", weekdayShifts(8, 17)),
	}
	// Child listed first: processing still follows dependency order.
	child := newOrder(t, "WO2", "WC2", "2025-11-11T09:00:00Z", "2025-11-11T11:00:00Z", 120, "WO1")
	parent := newOrder(t, "WO1", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120)

	result, err := Reflow([]*domain.WorkOrder{child, parent}, centers, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"WO1", "WO2"}, ids(result.WorkOrders))
	assert.Equal(t, at(t, "2025-11-11T10:00:00Z"), child.StartDate)
	assert.Equal(t, at(t, "2025-11-11T12:00:00Z"), child.EndDate)

	waits := explanationsContaining(result, "waits for dependency WO1")
	require.Len(t, waits, 1)
	assert.Contains(t, waits[0], "2025-11-11T10:00:00Z")
}

func TestReflow_DependencyChainCompoundsDelays(t *testing.T) {
	centers := []*domain.WorkCenter{
		newCenter("WC1", weekdayShifts(8, 17),
			window(t, "2025-11-11T08:00:00Z", "2025-11-11T09:00:00Z", "")),
		newCenter("WC2", weekdayShifts(8, 17)),
	}
	a := newOrder(t, "A", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120)
	b := newOrder(t, "B", "WC2", "2025-11-11T10:00:00Z", "2025-11-11T12:00:00Z", 120, "A")
	c := newOrder(t, "C", "WC1", "2025-11-11T12:00:00Z", "2025-11-11T16:00:00Z", 240, "B")

	result, err := Reflow([]*domain.WorkOrder{a, b, c}, centers, nil)
	require.NoError(t, err)

	assert.Equal(t, at(t, "2025-11-11T11:00:00Z"), a.EndDate)
	assert.Equal(t, at(t, "2025-11-11T11:00:00Z"), b.StartDate)
	assert.Equal(t, at(t, "2025-11-11T13:00:00Z"), b.EndDate)
	assert.Equal(t, at(t, "2025-11-11T13:00:00Z"), c.StartDate)
	assert.Equal(t, at(t, "2025-11-11T17:00:00Z"), c.EndDate)
	assert.Len(t, result.Changes, 3)
}

func TestReflow_UnknownDependencyIgnored(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	wo := newOrder(t, "WO1", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120, "does-not-exist")

	result, err := Reflow([]*domain.WorkOrder{wo}, []*domain.WorkCenter{wc}, nil)
	require.NoError(t, err)
	assert.Empty(t, result.Changes)
}

func TestReflow_EarlierFinishGivesNegativeDelay(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	wo := newOrder(t, "WO1", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T12:00:00Z", 60)

	result, err := Reflow([]*domain.WorkOrder{wo}, []*domain.WorkCenter{wc}, nil)
	require.NoError(t, err)

	require.Len(t, result.Changes, 1)
	assert.Equal(t, -180, result.Changes[0].DelayMin)
	assert.Equal(t, at(t, "2025-11-11T09:00:00Z"), wo.EndDate)
}

func TestReflow_MaintenanceOrderIsFixedAndBlocksItsCenter(t *testing.T) {
	centers := []*domain.WorkCenter{
		newCenter("WC1", weekdayShifts(8, 17)),
		newCenter("WC2", weekdayShifts(8, 17)),
	}
	parent := newOrder(t, "WO8-1", "WC1", "2025-11-12T08:00:00Z", "2025-11-12T09:30:00Z", 90)
	child := newOrder(t, "WO8-2", "WC2", "2025-11-12T09:00:00Z", "2025-11-12T11:00:00Z", 120, "WO8-1")
	maint := newOrder(t, "WO8-M", "WC2", "2025-11-12T10:00:00Z", "2025-11-12T11:00:00Z", 60)
	maint.IsMaintenance = true

	result, err := Reflow([]*domain.WorkOrder{parent, child, maint}, centers, nil)
	require.NoError(t, err)

	assert.Equal(t, at(t, "2025-11-12T10:00:00Z"), maint.StartDate, "maintenance orders never move")
	assert.Equal(t, at(t, "2025-11-12T11:00:00Z"), maint.EndDate)

	// 30 minutes done before the maintenance order, 90 after it.
	assert.Equal(t, at(t, "2025-11-12T11:00:00Z"), child.StartDate)
	assert.Equal(t, at(t, "2025-11-12T12:30:00Z"), child.EndDate)
	assert.NotEmpty(t, explanationsContaining(result, "maintenance work order WO8-M"))

	for _, c := range result.Changes {
		assert.NotEqual(t, "WO8-M", c.WorkOrderID)
	}
}

func TestReflow_OrderAfterMaintenanceOrderIsSerialized(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	maint := newOrder(t, "M", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T09:00:00Z", 60)
	maint.IsMaintenance = true
	wo := newOrder(t, "WO1", "WC1", "2025-11-11T08:30:00Z", "2025-11-11T09:30:00Z", 60)

	_, err := Reflow([]*domain.WorkOrder{maint, wo}, []*domain.WorkCenter{wc}, nil)
	require.NoError(t, err)

	assert.Equal(t, at(t, "2025-11-11T09:00:00Z"), wo.StartDate)
	assert.Equal(t, at(t, "2025-11-11T10:00:00Z"), wo.EndDate)
}

func TestReflow_CycleAbortsWithoutMutation(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	a := newOrder(t, "A", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T09:00:00Z", 60, "B")
	b := newOrder(t, "B", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T09:00:00Z", 60, "A")

	result, err := Reflow([]*domain.WorkOrder{a, b}, []*domain.WorkCenter{wc}, nil)
	assert.Nil(t, result)
	assert.ErrorIs(t, err, ErrCycleDetected)
	assert.Equal(t, at(t, "2025-11-11T08:00:00Z"), b.StartDate)
}

func TestReflow_UnknownWorkCenterAbortsWithoutMutation(t *testing.T) {
	wc := newCenter("WC1", weekdayShifts(8, 17))
	wo1 := newOrder(t, "WO1", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120)
	wo2 := newOrder(t, "WO2", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120)
	lost := newOrder(t, "WO3", "WC9", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120)

	result, err := Reflow([]*domain.WorkOrder{wo1, wo2, lost}, []*domain.WorkCenter{wc}, nil)
	assert.Nil(t, result)
	require.ErrorIs(t, err, ErrWorkCenterNotFound)

	var notFound *WorkCenterNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "WC9", notFound.WorkCenterID)
	assert.Equal(t, "WO3", notFound.WorkOrderID)

	assert.Equal(t, at(t, "2025-11-11T08:00:00Z"), wo2.StartDate, "no partial results are applied")
}

func TestReflow_UnknownWorkCenterForMaintenanceOrder(t *testing.T) {
	maint := newOrder(t, "M", "WC9", "2025-11-11T08:00:00Z", "2025-11-11T09:00:00Z", 60)
	maint.IsMaintenance = true

	_, err := Reflow([]*domain.WorkOrder{maint}, nil, nil)
	assert.ErrorIs(t, err, ErrWorkCenterNotFound)
}

func TestReflow_CenterWithoutShifts(t *testing.T) {
	wc := newCenter("WC1", nil)
	wo := newOrder(t, "WO1", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120)

	_, err := Reflow([]*domain.WorkOrder{wo}, []*domain.WorkCenter{wc}, nil)
	assert.ErrorIs(t, err, ErrNoShifts)
}

func TestReflow_StampsUpdatedAtOnlyOnChangedOrders(t *testing.T) {
	fixed := at(t, "2026-01-01T00:00:00Z")
	wc := newCenter("WC1", weekdayShifts(8, 17))
	wo1 := newOrder(t, "WO1", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120)
	wo2 := newOrder(t, "WO2", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120)

	_, err := Reflow([]*domain.WorkOrder{wo1, wo2}, []*domain.WorkCenter{wc}, nil,
		WithClock(func() time.Time { return fixed }))
	require.NoError(t, err)

	assert.True(t, wo1.UpdatedAt.IsZero())
	assert.Equal(t, fixed, wo2.UpdatedAt)
}

func TestReflow_ManufacturingOrdersDoNotAffectScheduling(t *testing.T) {
	due := at(t, "2025-11-11T09:00:00Z")
	mos := []*domain.ManufacturingOrder{{ID: "MO1", Number: "MO-001", Quantity: 100, DueDate: &due}}
	build := func() []*domain.WorkOrder {
		return []*domain.WorkOrder{
			newOrder(t, "WO1", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T12:00:00Z", 240),
			newOrder(t, "WO2", "WC1", "2025-11-11T08:00:00Z", "2025-11-11T10:00:00Z", 120),
		}
	}
	centers := []*domain.WorkCenter{newCenter("WC1", weekdayShifts(8, 17))}

	with, err := Reflow(build(), centers, mos)
	require.NoError(t, err)
	without, err := Reflow(build(), centers, nil)
	require.NoError(t, err)

	assert.Equal(t, without.Changes, with.Changes)
}

func TestReflow_IdempotentAtFixedPoint(t *testing.T) {
	centers := []*domain.WorkCenter{
		newCenter("WC1", weekdayShifts(8, 17),
			window(t, "2025-11-12T10:00:00Z", "2025-11-12T11:00:00Z", "")),
		newCenter("WC2", weekdayShifts(8, 17)),
	}
	orders := []*domain.WorkOrder{
		newOrder(t, "A", "WC1", "2025-11-12T10:00:00Z", "2025-11-12T12:00:00Z", 120),
		newOrder(t, "B", "WC1", "2025-11-12T08:00:00Z", "2025-11-12T12:00:00Z", 240),
		newOrder(t, "C", "WC2", "2025-11-12T08:00:00Z", "2025-11-12T10:00:00Z", 120, "A"),
		newOrder(t, "D", "WC2", "2025-11-14T08:00:00Z", "2025-11-14T09:00:00Z", 900),
	}

	first, err := Reflow(orders, centers, nil)
	require.NoError(t, err)
	require.NotEmpty(t, first.Changes)

	second, err := Reflow(orders, centers, nil)
	require.NoError(t, err)
	assert.Empty(t, second.Changes)
	assert.Empty(t, second.Explanations)
}

// randomScenario builds an acyclic scenario over two or three work centers.
func randomScenario(rng *rand.Rand, base time.Time) ([]*domain.WorkOrder, []*domain.WorkCenter) {
	calendars := [][]domain.Shift{
		weekdayShifts(8, 17),
		weekdayShifts(6, 14),
		{
			{DayOfWeek: time.Monday, StartHour: 8, EndHour: 12},
			{DayOfWeek: time.Monday, StartHour: 13, EndHour: 17},
			{DayOfWeek: time.Thursday, StartHour: 22, EndHour: 6},
		},
	}

	nCenters := rng.Intn(2) + 2
	centers := make([]*domain.WorkCenter, nCenters)
	for i := range centers {
		wc := &domain.WorkCenter{ID: fmt.Sprintf("WC%d", i), Shifts: calendars[rng.Intn(len(calendars))]}
		for j := rng.Intn(3); j > 0; j-- {
			ws := base.Add(time.Duration(rng.Intn(10*24*60)) * time.Minute)
			wc.MaintenanceWindows = append(wc.MaintenanceWindows, domain.MaintenanceWindow{
				StartDate: ws,
				EndDate:   ws.Add(time.Duration(rng.Intn(300)+15) * time.Minute),
			})
		}
		centers[i] = wc
	}

	n := rng.Intn(12) + 1
	orders := make([]*domain.WorkOrder, n)
	for i := 0; i < n; i++ {
		start := base.Add(time.Duration(rng.Intn(5*24*60)) * time.Minute)
		wo := &domain.WorkOrder{
			ID:           fmt.Sprintf("WO%d", i),
			WorkCenterID: centers[rng.Intn(nCenters)].ID,
			StartDate:    start,
			EndDate:      start.Add(time.Duration(rng.Intn(600)) * time.Minute),
			DurationMin:  rng.Intn(900),
		}
		if rng.Intn(8) == 0 {
			wo.IsMaintenance = true
		}
		for j := 0; j < i; j++ {
			if rng.Intn(5) == 0 {
				wo.DependsOn = append(wo.DependsOn, fmt.Sprintf("WO%d", j))
			}
		}
		if rng.Intn(6) == 0 {
			wo.DependsOn = append(wo.DependsOn, "ghost")
		}
		orders[i] = wo
	}
	rng.Shuffle(n, func(i, j int) { orders[i], orders[j] = orders[j], orders[i] })
	return orders, centers
}

// TestReflow_Invariants_RandomScenarios property-tests that every reflowed
// schedule satisfies the dependency, work center and calendar constraints.
func TestReflow_Invariants_RandomScenarios(t *testing.T) {
	rng := rand.New(rand.NewSource(2025))
	base := at(t, "2025-11-10T00:00:00Z")

	for trial := 0; trial < 200; trial++ {
		orders, centers := randomScenario(rng, base)
		policy := PolicyResume
		if trial%2 == 1 {
			policy = PolicyRestart
		}

		result, err := Reflow(orders, centers, nil, WithMaintenancePolicy(policy))
		require.NoError(t, err, "trial %d", trial)
		require.Len(t, result.WorkOrders, len(orders), "trial %d", trial)

		for _, v := range Verify(orders, centers) {
			t.Errorf("trial %d: violation %s on %s: %s", trial, v.Kind, v.WorkOrderID, v.Message)
		}

		for _, c := range result.Changes {
			assert.Equal(t, minutes(c.NewEnd.Sub(c.OldEnd)), c.DelayMin, "trial %d", trial)
		}
	}
}

// TestReflow_Invariants_RestartPolicyIsIdempotent re-runs reflow on its own
// output and expects no further changes.
func TestReflow_Invariants_RestartPolicyIsIdempotent(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	base := at(t, "2025-11-10T00:00:00Z")

	for trial := 0; trial < 200; trial++ {
		orders, centers := randomScenario(rng, base)

		_, err := Reflow(orders, centers, nil, WithMaintenancePolicy(PolicyRestart))
		require.NoError(t, err, "trial %d", trial)

		again, err := Reflow(orders, centers, nil, WithMaintenancePolicy(PolicyRestart))
		require.NoError(t, err, "trial %d", trial)
		assert.Empty(t, again.Changes, "trial %d: a reflowed schedule is a fixed point", trial)
	}
}
