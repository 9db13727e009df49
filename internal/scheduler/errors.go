package scheduler

import (
	"errors"
	"fmt"
)

var (
	ErrCycleDetected      = errors.New("dependency cycle detected")
	ErrWorkCenterNotFound = errors.New("work center not found")
	ErrNoShifts           = errors.New("work center has no working time")
)

// CycleError names the work order at which a dependency cycle was re-entered.
type CycleError struct {
	WorkOrderID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("dependency cycle detected at work order %s", e.WorkOrderID)
}

func (e *CycleError) Is(target error) bool { return target == ErrCycleDetected }

// WorkCenterNotFoundError reports a work order pointing at an unknown work center.
type WorkCenterNotFoundError struct {
	WorkCenterID string
	WorkOrderID  string
}

func (e *WorkCenterNotFoundError) Error() string {
	return fmt.Sprintf("work center %s not found for work order %s", e.WorkCenterID, e.WorkOrderID)
}

func (e *WorkCenterNotFoundError) Is(target error) bool { return target == ErrWorkCenterNotFound }

// NoShiftsError reports a work order that needs working time on a work
// center whose calendar provides none.
type NoShiftsError struct {
	WorkCenterID string
	WorkOrderID  string
}

func (e *NoShiftsError) Error() string {
	return fmt.Sprintf("work center %s has no shifts to schedule work order %s", e.WorkCenterID, e.WorkOrderID)
}

func (e *NoShiftsError) Is(target error) bool { return target == ErrNoShifts }
