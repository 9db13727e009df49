package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/reflow/internal/app"
	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/alexanderramin/reflow/internal/scheduler"
)

// FormatWorkOrders renders work orders in input order.
func FormatWorkOrders(orders []*domain.WorkOrder) string {
	if len(orders) == 0 {
		return Dim("No work orders. Import a scenario with 'reflow import <file>'.") + "\n"
	}

	headers := []string{"#", "Work Order", "Center", "Start", "End", "Duration", "Type", "Depends On"}
	rows := make([][]string, 0, len(orders))
	for _, wo := range orders {
		kind := StyleBlue.Render("production")
		if wo.IsMaintenance {
			kind = StylePurple.Render("maintenance")
		}
		rows = append(rows, []string{
			Dim(fmt.Sprintf("%d", wo.Seq)),
			Bold(wo.Number),
			wo.WorkCenterID,
			FormatInstant(wo.StartDate),
			FormatInstant(wo.EndDate),
			FormatMinutes(wo.DurationMin),
			kind,
			OrDash(strings.Join(wo.DependsOn, ", ")),
		})
	}
	return RenderTable(headers, rows)
}

// FormatViolations renders a schedule check.
func FormatViolations(violations []scheduler.Violation) string {
	if len(violations) == 0 {
		return StyleGreen.Render("✔ Schedule satisfies all constraints.") + "\n"
	}

	var b strings.Builder
	b.WriteString(Header(fmt.Sprintf("%d Violations", len(violations))) + "\n")
	headers := []string{"Kind", "Work Order", "Related", "Detail"}
	rows := make([][]string, 0, len(violations))
	for _, v := range violations {
		rows = append(rows, []string{
			ViolationBadge(v.Kind),
			Bold(v.WorkOrderID),
			OrDash(v.RelatedID),
			v.Message,
		})
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatImportResult summarizes an import.
func FormatImportResult(path string, res *app.ImportResult) string {
	lines := []string{
		fmt.Sprintf("%-21s %d (%d shifts, %d maintenance windows)",
			"Work centers:", res.WorkCenterCount, res.ShiftCount, res.MaintenanceWindowCount),
		fmt.Sprintf("%-21s %d", "Manufacturing orders:", res.ManufacturingOrderCount),
		fmt.Sprintf("%-21s %d", "Work orders:", res.WorkOrderCount),
		fmt.Sprintf("%-21s %d", "Dependencies:", res.DependencyCount),
	}
	return RenderBox("Imported "+path, strings.Join(lines, "\n")) + "\n"
}
