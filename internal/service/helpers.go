package service

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/reflow/internal/app"
	"github.com/alexanderramin/reflow/internal/domain"
	"github.com/alexanderramin/reflow/internal/scheduler"
)

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}

// mapReflowError turns an engine failure into a coded ReflowError.
func mapReflowError(err error) error {
	code := app.ReflowErrInternal
	switch {
	case errors.Is(err, scheduler.ErrCycleDetected):
		code = app.ReflowErrCycleDetected
	case errors.Is(err, scheduler.ErrWorkCenterNotFound):
		code = app.ReflowErrWorkCenterNotFound
	case errors.Is(err, scheduler.ErrNoShifts):
		code = app.ReflowErrNoShifts
	}
	return &app.ReflowError{Code: code, Message: err.Error(), Err: err}
}

func totalDelay(changes []domain.Change) int {
	total := 0
	for _, c := range changes {
		total += c.DelayMin
	}
	return total
}
