package importer

import (
	"fmt"
	"time"
)

// ValidateScenario checks the scenario for errors before conversion and
// returns all of them.
//
// References from work orders to work centers and to other work orders are
// not checked here: the reflow engine reports unknown work centers and
// ignores unknown dependencies.
func ValidateScenario(schema *ScenarioSchema) []error {
	var errs []error

	errs = append(errs, validateWorkCenters(schema.WorkCenters)...)
	errs = append(errs, validateManufacturingOrders(schema.ManufacturingOrders)...)
	errs = append(errs, validateWorkOrders(schema.WorkOrders)...)

	return errs
}

func validateWorkCenters(centers []WorkCenterImport) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, wc := range centers {
		prefix := fmt.Sprintf("work_centers[%d]", i)

		if wc.ID == "" {
			errs = append(errs, fmt.Errorf("%s.id is required", prefix))
		} else if ids[wc.ID] {
			errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, wc.ID))
		} else {
			ids[wc.ID] = true
		}

		for j, s := range wc.Shifts {
			errs = append(errs, validateShift(fmt.Sprintf("%s.shifts[%d]", prefix, j), s)...)
		}

		for j, w := range wc.MaintenanceWindows {
			field := fmt.Sprintf("%s.maintenance_windows[%d]", prefix, j)
			start, startErr := parseRequiredTime(field+".start_date", w.StartDate)
			end, endErr := parseRequiredTime(field+".end_date", w.EndDate)
			errs = appendIfErr(errs, startErr)
			errs = appendIfErr(errs, endErr)
			if startErr == nil && endErr == nil && !end.After(start) {
				errs = append(errs, fmt.Errorf("%s: end_date %q must be after start_date %q", field, w.EndDate, w.StartDate))
			}
		}
	}

	return errs
}

func validateShift(prefix string, s ShiftImport) []error {
	var errs []error

	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		errs = append(errs, fmt.Errorf("%s.day_of_week: %d out of range 0-6 (0 = Sunday)", prefix, s.DayOfWeek))
	}
	if s.StartHour < 0 || s.StartHour > 23 {
		errs = append(errs, fmt.Errorf("%s.start_hour: %d out of range 0-23", prefix, s.StartHour))
	}
	if s.EndHour < 0 || s.EndHour > 24 {
		errs = append(errs, fmt.Errorf("%s.end_hour: %d out of range 0-24", prefix, s.EndHour))
	}
	if s.StartHour == s.EndHour {
		errs = append(errs, fmt.Errorf("%s: start_hour and end_hour are both %d (empty shift)", prefix, s.StartHour))
	}

	return errs
}

func validateManufacturingOrders(orders []ManufacturingOrderImport) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, mo := range orders {
		prefix := fmt.Sprintf("manufacturing_orders[%d]", i)

		if mo.ID != "" {
			if ids[mo.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, mo.ID))
			}
			ids[mo.ID] = true
		}
		if mo.Number == "" {
			errs = append(errs, fmt.Errorf("%s.number is required", prefix))
		}
		if mo.Quantity < 0 {
			errs = append(errs, fmt.Errorf("%s.quantity must not be negative", prefix))
		}
		if mo.DueDate != nil {
			_, err := parseRequiredTime(prefix+".due_date", *mo.DueDate)
			errs = appendIfErr(errs, err)
		}
	}

	return errs
}

func validateWorkOrders(orders []WorkOrderImport) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, wo := range orders {
		prefix := fmt.Sprintf("work_orders[%d]", i)

		if wo.ID != "" {
			if ids[wo.ID] {
				errs = append(errs, fmt.Errorf("%s.id: duplicate id %q", prefix, wo.ID))
			}
			ids[wo.ID] = true
		}
		if wo.WorkCenterID == "" {
			errs = append(errs, fmt.Errorf("%s.work_center_id is required", prefix))
		}
		if wo.DurationMin < 0 {
			errs = append(errs, fmt.Errorf("%s.duration_min must not be negative", prefix))
		}

		start, startErr := parseRequiredTime(prefix+".start_date", wo.StartDate)
		end, endErr := parseRequiredTime(prefix+".end_date", wo.EndDate)
		errs = appendIfErr(errs, startErr)
		errs = appendIfErr(errs, endErr)
		if startErr == nil && endErr == nil && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s: end_date %q is before start_date %q", prefix, wo.EndDate, wo.StartDate))
		}

		for j, dep := range wo.DependsOn {
			if dep == "" {
				errs = append(errs, fmt.Errorf("%s.depends_on[%d] is empty", prefix, j))
			}
		}
	}

	return errs
}

func parseRequiredTime(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("%s is required", field)
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: invalid timestamp %q (expected RFC3339, e.g. 2025-11-10T08:00:00Z)", field, s)
	}
	return t.UTC(), nil
}

func appendIfErr(errs []error, err error) []error {
	if err != nil {
		return append(errs, err)
	}
	return errs
}
