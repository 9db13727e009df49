package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/reflow/internal/domain"
)

// Result is the outcome of one reflow pass.
type Result struct {
	// WorkOrders holds the input orders in dependency order, carrying their
	// updated timestamps.
	WorkOrders   []*domain.WorkOrder
	Changes      []domain.Change
	Explanations []string
}

type options struct {
	policy MaintenancePolicy
	now    func() time.Time
}

// Option configures a reflow pass.
type Option func(*options)

// WithMaintenancePolicy selects how interrupted work is credited.
func WithMaintenancePolicy(p MaintenancePolicy) Option {
	return func(o *options) { o.policy = p }
}

// WithClock sets the clock used to stamp UpdatedAt on rescheduled orders.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// Reflow recomputes start and end dates for orders so that dependencies
// finish first, each work center runs one order at a time, and work only
// happens inside shifts and outside maintenance.
//
// Orders are processed in dependency order; changed orders are updated in
// place, but only after the whole pass succeeded. Manufacturing orders are
// accepted as context and do not influence scheduling.
func Reflow(
	orders []*domain.WorkOrder,
	centers []*domain.WorkCenter,
	manufacturingOrders []*domain.ManufacturingOrder,
	opts ...Option,
) (*Result, error) {
	o := options{policy: PolicyResume, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(&o)
	}

	sorted, err := OrderByDependencies(orders)
	if err != nil {
		return nil, err
	}

	r := newRun(o, centers, sorted)
	for _, wo := range sorted {
		if err := r.place(wo); err != nil {
			return nil, err
		}
	}

	now := o.now()
	for _, u := range r.pending {
		u.wo.Reschedule(u.start, u.end, now)
	}

	return &Result{
		WorkOrders:   sorted,
		Changes:      r.changes,
		Explanations: r.explanations,
	}, nil
}

type pendingUpdate struct {
	wo         *domain.WorkOrder
	start, end time.Time
}

// run owns the tracking state of a single reflow pass.
type run struct {
	opts    options
	centers map[string]*domain.WorkCenter

	// blackouts per work center: maintenance windows plus the intervals
	// held by maintenance work orders.
	blackouts map[string][]domain.MaintenanceWindow

	centerLastEnd map[string]time.Time
	completedAt   map[string]time.Time

	changes      []domain.Change
	explanations []string
	pending      []pendingUpdate
}

func newRun(o options, centers []*domain.WorkCenter, orders []*domain.WorkOrder) *run {
	r := &run{
		opts:          o,
		centers:       make(map[string]*domain.WorkCenter, len(centers)),
		blackouts:     make(map[string][]domain.MaintenanceWindow, len(centers)),
		centerLastEnd: make(map[string]time.Time),
		completedAt:   make(map[string]time.Time, len(orders)),
	}
	for _, wc := range centers {
		r.centers[wc.ID] = wc
		r.blackouts[wc.ID] = append([]domain.MaintenanceWindow(nil), wc.MaintenanceWindows...)
	}
	for _, wo := range orders {
		if !wo.IsMaintenance {
			continue
		}
		if _, ok := r.centers[wo.WorkCenterID]; !ok {
			continue
		}
		r.blackouts[wo.WorkCenterID] = append(r.blackouts[wo.WorkCenterID], domain.MaintenanceWindow{
			StartDate: wo.StartDate.UTC(),
			EndDate:   wo.EndDate.UTC(),
			Reason:    "maintenance work order " + wo.ID,
		})
	}
	return r
}

func (r *run) explain(format string, args ...any) {
	r.explanations = append(r.explanations, fmt.Sprintf(format, args...))
}

func (r *run) place(wo *domain.WorkOrder) error {
	wc, ok := r.centers[wo.WorkCenterID]
	if !ok {
		return &WorkCenterNotFoundError{WorkCenterID: wo.WorkCenterID, WorkOrderID: wo.ID}
	}

	if wo.IsMaintenance {
		end := wo.EndDate.UTC()
		if end.After(r.centerLastEnd[wc.ID]) {
			r.centerLastEnd[wc.ID] = end
		}
		r.completedAt[wo.ID] = end
		return nil
	}

	if wo.DurationMin > 0 && !wc.HasWorkingTime() {
		return &NoShiftsError{WorkCenterID: wc.ID, WorkOrderID: wo.ID}
	}

	origStart, origEnd := wo.StartDate.UTC(), wo.EndDate.UTC()
	earliest := origStart

	for _, depID := range wo.DependsOn {
		depEnd := r.completedAt[depID]
		if isInConflict(earliest, depEnd) {
			earliest = depEnd
			r.explain("Work Order %s waits for dependency %s finishing at %s.",
				wo.ID, depID, formatInstant(depEnd))
		}
	}

	if lastEnd := r.centerLastEnd[wc.ID]; isInConflict(earliest, lastEnd) {
		r.explain("Work Order %s shifted to avoid intra work center conflict in %s. Was %s, now %s.",
			wo.ID, wc.ID, formatInstant(earliest), formatInstant(lastEnd))
		earliest = lastEnd
	}

	res := ResolveMaintenance(earliest, wo.Duration(), wc.Shifts, r.blackouts[wc.ID], r.opts.policy)
	for _, d := range res.Displacements {
		r.explain("Work Order %s delayed by maintenance window %s to %s%s in Work Center %s (%d mins worked before it, %d mins remaining).",
			wo.ID, formatInstant(d.Window.StartDate), formatInstant(d.Window.EndDate),
			reasonSuffix(d.Window.Reason), wc.ID,
			minutes(d.WorkedBefore), minutes(d.Remaining))
	}
	if len(res.Displacements) > 0 && !res.End.Equal(origEnd) {
		r.explain("Work Order %s end date adjusted from %s to %s after maintenance in Work Center %s.",
			wo.ID, formatInstant(origEnd), formatInstant(res.End), wc.ID)
	}

	if !res.Start.Equal(origStart) || !res.End.Equal(origEnd) {
		delay := minutes(res.End.Sub(origEnd))
		r.changes = append(r.changes, domain.Change{
			WorkOrderID: wo.ID,
			OldStart:    origStart,
			OldEnd:      origEnd,
			NewStart:    res.Start,
			NewEnd:      res.End,
			DelayMin:    delay,
		})
		r.explain("Work Order %s adjusted: %s-%s -> %s-%s (delay: %d mins)",
			wo.ID, formatInstant(origStart), formatInstant(origEnd),
			formatInstant(res.Start), formatInstant(res.End), delay)
		r.pending = append(r.pending, pendingUpdate{wo: wo, start: res.Start, end: res.End})
	}

	r.centerLastEnd[wc.ID] = res.End
	r.completedAt[wo.ID] = res.End
	return nil
}

// isInConflict reports whether start falls before lastEnd. A zero lastEnd
// means nothing has been recorded and never conflicts.
func isInConflict(start, lastEnd time.Time) bool {
	return !lastEnd.IsZero() && start.Before(lastEnd)
}

func formatInstant(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func minutes(d time.Duration) int {
	return int(d.Round(time.Minute) / time.Minute)
}

func reasonSuffix(reason string) string {
	if reason == "" {
		return ""
	}
	return " (" + reason + ")"
}
