package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
)

var (
	ErrInvalidSlotRequest = errors.New("invalid slot request")
	ErrInvalidSchedule    = errors.New("invalid schedule")
	ErrScheduleExists     = errors.New("schedule already exists")
	ErrSessionNotFound    = errors.New("session not found")
	ErrDoctorUnavailable  = errors.New("doctor unavailable")
	ErrClinicUnavailable  = errors.New("clinic unavailable")
)

// LeaveError rejects a date fully blocked by a doctor or clinic override.
type LeaveError struct {
	Module    model.HolidayModule
	Date      time.Time
	HolidayID int64
}

func (e *LeaveError) Error() string {
	return fmt.Sprintf("%s is unavailable on %s", e.Module, e.Date.Format("2006-01-02"))
}

func (e *LeaveError) Unwrap() error {
	if e.Module == model.HolidayModuleClinic {
		return ErrClinicUnavailable
	}
	return ErrDoctorUnavailable
}

func invalidSlotRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSlotRequest, fmt.Sprintf(format, args...))
}

func invalidSchedule(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidSchedule, fmt.Sprintf(format, args...))
}
