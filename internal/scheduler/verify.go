package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/reflow/internal/domain"
)

type ViolationKind string

const (
	ViolationDependency        ViolationKind = "dependency"
	ViolationWorkCenterOverlap ViolationKind = "work_center_overlap"
	ViolationMaintenance       ViolationKind = "maintenance"
	ViolationOffShift          ViolationKind = "off_shift"
	ViolationUnknownWorkCenter ViolationKind = "unknown_work_center"
)

// Violation describes one constraint a schedule breaks.
type Violation struct {
	Kind        ViolationKind
	WorkOrderID string
	RelatedID   string
	Message     string
}

// Verify checks the current timestamps of orders against the dependency,
// work center and calendar constraints. Maintenance orders are fixed and
// only checked as blockers for other orders.
func Verify(orders []*domain.WorkOrder, centers []*domain.WorkCenter) []Violation {
	byID := make(map[string]*domain.WorkOrder, len(orders))
	for _, wo := range orders {
		byID[wo.ID] = wo
	}
	centerByID := make(map[string]*domain.WorkCenter, len(centers))
	for _, wc := range centers {
		centerByID[wc.ID] = wc
	}

	var out []Violation
	perCenter := make(map[string][]*domain.WorkOrder)

	for _, wo := range orders {
		if wo.IsMaintenance {
			continue
		}
		wc, ok := centerByID[wo.WorkCenterID]
		if !ok {
			out = append(out, Violation{
				Kind:        ViolationUnknownWorkCenter,
				WorkOrderID: wo.ID,
				RelatedID:   wo.WorkCenterID,
				Message:     fmt.Sprintf("work center %s does not exist", wo.WorkCenterID),
			})
			continue
		}
		perCenter[wc.ID] = append(perCenter[wc.ID], wo)

		for _, depID := range wo.DependsOn {
			dep, ok := byID[depID]
			if !ok {
				continue
			}
			if wo.StartDate.Before(dep.EndDate) {
				out = append(out, Violation{
					Kind:        ViolationDependency,
					WorkOrderID: wo.ID,
					RelatedID:   dep.ID,
					Message: fmt.Sprintf("starts %s before dependency %s ends %s",
						formatInstant(wo.StartDate), dep.ID, formatInstant(dep.EndDate)),
				})
			}
		}

		for _, w := range blackoutsFor(wc, orders) {
			if w.Overlaps(wo.StartDate, wo.EndDate) {
				out = append(out, Violation{
					Kind:        ViolationMaintenance,
					WorkOrderID: wo.ID,
					Message: fmt.Sprintf("overlaps maintenance %s to %s%s",
						formatInstant(w.StartDate), formatInstant(w.EndDate), reasonSuffix(w.Reason)),
				})
			}
		}

		// Work that ends the instant a shift closes is fine; ending anywhere
		// else means the last minute was spent outside the calendar.
		if wo.DurationMin > 0 && !IsWorkingInstant(wo.EndDate.Add(-time.Nanosecond), wc.Shifts) {
			out = append(out, Violation{
				Kind:        ViolationOffShift,
				WorkOrderID: wo.ID,
				Message:     fmt.Sprintf("ends at %s outside any shift", formatInstant(wo.EndDate)),
			})
		}
	}

	centerIDs := make([]string, 0, len(perCenter))
	for id := range perCenter {
		centerIDs = append(centerIDs, id)
	}
	sort.Strings(centerIDs)
	for _, id := range centerIDs {
		list := perCenter[id]
		sort.SliceStable(list, func(i, j int) bool { return list[i].StartDate.Before(list[j].StartDate) })
		latest := list[0]
		for _, cur := range list[1:] {
			if cur.StartDate.Before(latest.EndDate) {
				out = append(out, Violation{
					Kind:        ViolationWorkCenterOverlap,
					WorkOrderID: cur.ID,
					RelatedID:   latest.ID,
					Message:     fmt.Sprintf("overlaps %s in work center %s", latest.ID, id),
				})
			}
			if cur.EndDate.After(latest.EndDate) {
				latest = cur
			}
		}
	}

	return out
}

func blackoutsFor(wc *domain.WorkCenter, orders []*domain.WorkOrder) []domain.MaintenanceWindow {
	windows := append([]domain.MaintenanceWindow(nil), wc.MaintenanceWindows...)
	for _, wo := range orders {
		if wo.IsMaintenance && wo.WorkCenterID == wc.ID {
			windows = append(windows, domain.MaintenanceWindow{
				StartDate: wo.StartDate,
				EndDate:   wo.EndDate,
				Reason:    "maintenance work order " + wo.ID,
			})
		}
	}
	return windows
}
