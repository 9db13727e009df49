package app

import (
	"time"

	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/alexanderramin/reflow/internal/scheduler"
)

type ReflowRequest struct {
	Policy scheduler.MaintenancePolicy
	// DryRun computes the new schedule without persisting it.
	DryRun bool
	Now    *time.Time
}

func NewReflowRequest() ReflowRequest {
	return ReflowRequest{Policy: scheduler.PolicyResume}
}

type ReflowResponse struct {
	GeneratedAt  time.Time
	Policy       scheduler.MaintenancePolicy
	DryRun       bool
	WorkOrders   []*domain.WorkOrder
	Changes      []domain.Change
	Explanations []string
	// TotalDelayMin sums DelayMin over all changes; early finishes count
	// negatively.
	TotalDelayMin int
}

type ReflowErrorCode string

const (
	ReflowErrCycleDetected      ReflowErrorCode = "CYCLE_DETECTED"
	ReflowErrWorkCenterNotFound ReflowErrorCode = "WORK_CENTER_NOT_FOUND"
	ReflowErrNoShifts           ReflowErrorCode = "NO_SHIFTS"
	ReflowErrInternal           ReflowErrorCode = "INTERNAL_ERROR"
)

type ReflowError struct {
	Code    ReflowErrorCode
	Message string
	Err     error
}

func (e *ReflowError) Error() string {
	return string(e.Code) + ": " + e.Message
}

func (e *ReflowError) Unwrap() error { return e.Err }
