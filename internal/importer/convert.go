package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/google/uuid"
)

// Scenario is a converted scenario file, ready for reflow or persistence.
type Scenario struct {
	WorkCenters         []*domain.WorkCenter
	ManufacturingOrders []*domain.ManufacturingOrder
	WorkOrders          []*domain.WorkOrder
}

// DependencyCount returns the number of declared dependency edges.
func (s *Scenario) DependencyCount() int {
	n := 0
	for _, wo := range s.WorkOrders {
		n += len(wo.DependsOn)
	}
	return n
}

// Convert transforms a validated ScenarioSchema into domain objects.
// Call ValidateScenario first; Convert assumes the schema is valid.
// Work and manufacturing orders without an id get a generated one, and work
// orders are numbered in file order starting at firstSeq.
func Convert(schema *ScenarioSchema, firstSeq int) (*Scenario, error) {
	now := time.Now().UTC().Truncate(time.Second)
	out := &Scenario{}

	for _, wc := range schema.WorkCenters {
		center := &domain.WorkCenter{ID: wc.ID, Name: wc.Name}
		for _, s := range wc.Shifts {
			center.Shifts = append(center.Shifts, domain.Shift{
				DayOfWeek: time.Weekday(s.DayOfWeek),
				StartHour: s.StartHour,
				EndHour:   s.EndHour,
			})
		}
		for _, w := range wc.MaintenanceWindows {
			start, err := parseRequiredTime("start_date", w.StartDate)
			if err != nil {
				return nil, err
			}
			end, err := parseRequiredTime("end_date", w.EndDate)
			if err != nil {
				return nil, err
			}
			center.MaintenanceWindows = append(center.MaintenanceWindows, domain.MaintenanceWindow{
				StartDate: start,
				EndDate:   end,
				Reason:    w.Reason,
			})
		}
		out.WorkCenters = append(out.WorkCenters, center)
	}

	for _, mo := range schema.ManufacturingOrders {
		order := &domain.ManufacturingOrder{
			ID:       mo.ID,
			Number:   mo.Number,
			ItemID:   mo.ItemID,
			Quantity: mo.Quantity,
		}
		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		if mo.DueDate != nil {
			due, err := parseRequiredTime("due_date", *mo.DueDate)
			if err != nil {
				return nil, err
			}
			order.DueDate = &due
		}
		out.ManufacturingOrders = append(out.ManufacturingOrders, order)
	}

	for i, wo := range schema.WorkOrders {
		start, err := parseRequiredTime("start_date", wo.StartDate)
		if err != nil {
			return nil, fmt.Errorf("work_orders[%d]: %w", i, err)
		}
		end, err := parseRequiredTime("end_date", wo.EndDate)
		if err != nil {
			return nil, fmt.Errorf("work_orders[%d]: %w", i, err)
		}

		order := &domain.WorkOrder{
			ID:                   wo.ID,
			ManufacturingOrderID: wo.ManufacturingOrderID,
			WorkCenterID:         wo.WorkCenterID,
			StartDate:            start,
			EndDate:              end,
			DurationMin:          wo.DurationMin,
			IsMaintenance:        wo.IsMaintenance,
			DependsOn:            append([]string(nil), wo.DependsOn...),
			Seq:                  firstSeq + i,
			CreatedAt:            now,
			UpdatedAt:            now,
		}
		if order.ID == "" {
			order.ID = uuid.New().String()
		}
		order.Number = domain.CoalesceStr(wo.Number, order.ID)
		out.WorkOrders = append(out.WorkOrders, order)
	}

	return out, nil
}
