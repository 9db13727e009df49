package scheduler

import (
	"fmt"
	"time"

	"github.com/alexanderramin/reflow/internal/domain"
)

// MaintenancePolicy decides what happens to work already done when a
// maintenance window interrupts a work order.
type MaintenancePolicy string

const (
	// PolicyResume credits the working time done before the window; only the
	// rest of the work is scheduled after it.
	PolicyResume MaintenancePolicy = "resume"
	// PolicyRestart schedules the whole work order again after the window.
	PolicyRestart MaintenancePolicy = "restart"
)

// ParseMaintenancePolicy maps a policy name to a MaintenancePolicy.
// An empty name selects PolicyResume.
func ParseMaintenancePolicy(s string) (MaintenancePolicy, error) {
	switch MaintenancePolicy(s) {
	case "", PolicyResume:
		return PolicyResume, nil
	case PolicyRestart:
		return PolicyRestart, nil
	default:
		return "", fmt.Errorf("unknown maintenance policy %q (expected resume|restart)", s)
	}
}

// Displacement records one push past a maintenance window.
type Displacement struct {
	Window       domain.MaintenanceWindow
	WorkedBefore time.Duration
	Remaining    time.Duration
}

// Resolution is the interval a work order occupies once maintenance windows
// have been cleared.
type Resolution struct {
	Start         time.Time
	End           time.Time
	Displacements []Displacement
}

// ResolveMaintenance places work starting at start and pushes it past every
// maintenance window it would overlap.
//
// Each overlapping window moves the start to the window's end and the
// remaining work is re-expanded over the shift calendar; the scan repeats
// against all windows until nothing overlaps. Every displacement strictly
// advances the start past a window, so the loop runs at most once per window.
func ResolveMaintenance(
	start time.Time,
	work time.Duration,
	shifts []domain.Shift,
	windows []domain.MaintenanceWindow,
	policy MaintenancePolicy,
) Resolution {
	start = start.UTC()
	end := AdvanceWorkingTime(start, work, shifts).UTC()
	remaining := work

	res := Resolution{}
	for {
		window, ok := firstOverlap(windows, start, end)
		if !ok {
			break
		}

		var worked time.Duration
		if policy != PolicyRestart && window.StartDate.After(start) {
			worked = WorkingTimeBetween(start, window.StartDate, shifts)
		}
		if policy == PolicyRestart {
			remaining = work
		} else {
			remaining -= worked
		}

		start = window.EndDate.UTC()
		end = AdvanceWorkingTime(start, remaining, shifts).UTC()
		res.Displacements = append(res.Displacements, Displacement{
			Window:       window,
			WorkedBefore: worked,
			Remaining:    remaining,
		})
	}

	res.Start, res.End = start, end
	return res
}

// firstOverlap returns the earliest-starting window that overlaps [start, end).
func firstOverlap(windows []domain.MaintenanceWindow, start, end time.Time) (domain.MaintenanceWindow, bool) {
	var (
		best  domain.MaintenanceWindow
		found bool
	)
	for _, w := range windows {
		if !w.Overlaps(start, end) {
			continue
		}
		if !found || w.StartDate.Before(best.StartDate) {
			best, found = w, true
		}
	}
	return best, found
}

// OverlappingWindows returns every window that overlaps [start, end), in
// input order.
func OverlappingWindows(windows []domain.MaintenanceWindow, start, end time.Time) []domain.MaintenanceWindow {
	var out []domain.MaintenanceWindow
	for _, w := range windows {
		if w.Overlaps(start, end) {
			out = append(out, w)
		}
	}
	return out
}
