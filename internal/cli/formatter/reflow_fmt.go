package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/reflow/internal/app"
	"github.com/alexanderramin/reflow/internal/domain"
)

// FormatReflow renders a reflow result as a summary, a table of changed
// work orders, and the explanation log.
func FormatReflow(resp *app.ReflowResponse) string {
	var b strings.Builder

	mode := "saved"
	if resp.DryRun {
		mode = "dry run (nothing saved)"
	}

	b.WriteString(Header("Reflow Results") + "\n")
	fmt.Fprintf(&b, "  Policy:      %s\n", resp.Policy)
	fmt.Fprintf(&b, "  Mode:        %s\n", mode)
	fmt.Fprintf(&b, "  Work orders: %d\n", len(resp.WorkOrders))
	fmt.Fprintf(&b, "  Changed:     %d\n", len(resp.Changes))
	fmt.Fprintf(&b, "  Total delay: %s\n", DelayCell(resp.TotalDelayMin))
	b.WriteString("\n")

	if len(resp.Changes) == 0 {
		b.WriteString(Dim("  No changes needed.") + "\n")
		return b.String()
	}

	numbers := numbersByID(resp.WorkOrders)
	headers := []string{"Work Order", "Old Start", "Old End", "New Start", "New End", "Delay"}
	rows := make([][]string, 0, len(resp.Changes))
	for _, c := range resp.Changes {
		rows = append(rows, []string{
			Bold(domain.CoalesceStr(numbers[c.WorkOrderID], c.WorkOrderID)),
			Dim(FormatInstant(c.OldStart)),
			Dim(FormatInstant(c.OldEnd)),
			FormatInstant(c.NewStart),
			FormatInstant(c.NewEnd),
			DelayCell(c.DelayMin),
		})
	}
	b.WriteString(RenderTable(headers, rows))

	if len(resp.Explanations) > 0 {
		b.WriteString("\n" + Header("Explanations") + "\n")
		for _, e := range resp.Explanations {
			b.WriteString("  - " + e + "\n")
		}
	}
	return b.String()
}

func numbersByID(orders []*domain.WorkOrder) map[string]string {
	out := make(map[string]string, len(orders))
	for _, wo := range orders {
		out[wo.ID] = wo.Number
	}
	return out
}
