package formatter

import (
	"bytes"
	"encoding/json"
	"time"

	"github.com/alexanderramin/reflow/internal/app"
	"github.com/alexanderramin/reflow/internal/domain"
)

type reflowJSON struct {
	GeneratedAt   string          `json:"generated_at"`
	Policy        string          `json:"policy"`
	DryRun        bool            `json:"dry_run"`
	TotalDelayMin int             `json:"total_delay_min"`
	WorkOrders    []workOrderJSON `json:"work_orders"`
	Changes       []changeJSON    `json:"changes"`
	Explanations  []string        `json:"explanations"`
}

type workOrderJSON struct {
	ID            string   `json:"id"`
	Number        string   `json:"number"`
	WorkCenterID  string   `json:"work_center_id"`
	StartDate     string   `json:"start_date"`
	EndDate       string   `json:"end_date"`
	DurationMin   int      `json:"duration_min"`
	IsMaintenance bool     `json:"is_maintenance"`
	DependsOn     []string `json:"depends_on"`
}

type changeJSON struct {
	WorkOrderID string `json:"work_order_id"`
	OldStart    string `json:"old_start"`
	OldEnd      string `json:"old_end"`
	NewStart    string `json:"new_start"`
	NewEnd      string `json:"new_end"`
	DelayMin    int    `json:"delay_min"`
}

// FormatReflowJSON encodes a reflow result as indented JSON with RFC3339 UTC
// timestamps. Empty lists encode as [] rather than null.
func FormatReflowJSON(resp *app.ReflowResponse) ([]byte, error) {
	out := reflowJSON{
		GeneratedAt:   rfc3339(resp.GeneratedAt),
		Policy:        string(resp.Policy),
		DryRun:        resp.DryRun,
		TotalDelayMin: resp.TotalDelayMin,
		WorkOrders:    workOrdersJSON(resp.WorkOrders),
		Changes:       make([]changeJSON, 0, len(resp.Changes)),
		Explanations:  append([]string{}, resp.Explanations...),
	}
	for _, c := range resp.Changes {
		out.Changes = append(out.Changes, changeJSON{
			WorkOrderID: c.WorkOrderID,
			OldStart:    rfc3339(c.OldStart),
			OldEnd:      rfc3339(c.OldEnd),
			NewStart:    rfc3339(c.NewStart),
			NewEnd:      rfc3339(c.NewEnd),
			DelayMin:    c.DelayMin,
		})
	}
	return encodeJSON(out)
}

// FormatWorkOrdersJSON encodes work orders as an indented JSON array.
func FormatWorkOrdersJSON(orders []*domain.WorkOrder) ([]byte, error) {
	return encodeJSON(workOrdersJSON(orders))
}

func workOrdersJSON(orders []*domain.WorkOrder) []workOrderJSON {
	out := make([]workOrderJSON, 0, len(orders))
	for _, wo := range orders {
		out = append(out, workOrderJSON{
			ID:            wo.ID,
			Number:        wo.Number,
			WorkCenterID:  wo.WorkCenterID,
			StartDate:     rfc3339(wo.StartDate),
			EndDate:       rfc3339(wo.EndDate),
			DurationMin:   wo.DurationMin,
			IsMaintenance: wo.IsMaintenance,
			DependsOn:     append([]string{}, wo.DependsOn...),
		})
	}
	return out
}

// encodeJSON keeps "->" and "<" readable in explanations.
func encodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rfc3339(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
