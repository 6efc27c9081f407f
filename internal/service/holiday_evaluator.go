package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"go.uber.org/zap"
)

type HolidayLister interface {
	ListActiveForDate(ctx context.Context, doctorID, clinicID int64, date time.Time) ([]*model.Holiday, error)
}

// HolidayEvaluator applies doctor and clinic overrides to a requested date.
type HolidayEvaluator struct {
	holidays HolidayLister
	logger   *zap.Logger
}

func NewHolidayEvaluator(holidays HolidayLister, logger *zap.Logger) *HolidayEvaluator {
	return &HolidayEvaluator{holidays: holidays, logger: logger}
}

// CheckForLeaves fails with *LeaveError when a whole-day override covers date.
func (e *HolidayEvaluator) CheckForLeaves(ctx context.Context, doctorID, clinicID int64, date time.Time) error {
	holidays, err := e.holidays.ListActiveForDate(ctx, doctorID, clinicID, date)
	if err != nil {
		return fmt.Errorf("load overrides: %w", err)
	}

	for _, h := range holidays {
		if !e.applies(h, doctorID, clinicID) || !h.Covers(date) {
			continue
		}
		if _, partial := h.Rule.(model.TimeSpecific); partial {
			continue
		}

		e.logger.Info("Date blocked by leave",
			zap.Int64("doctor_id", doctorID),
			zap.Int64("clinic_id", clinicID),
			zap.String("module", string(h.Module)),
			zap.Int64("override_id", h.ID),
			zap.Time("date", date))
		return &LeaveError{Module: h.Module, Date: date, HolidayID: h.ID}
	}

	return nil
}

// CollectPartialBlocks turns time-specific overrides covering date into busy intervals.
// Overrides without usable bounds block nothing.
func (e *HolidayEvaluator) CollectPartialBlocks(ctx context.Context, doctorID, clinicID int64, date time.Time) ([]model.Appointment, error) {
	holidays, err := e.holidays.ListActiveForDate(ctx, doctorID, clinicID, date)
	if err != nil {
		return nil, fmt.Errorf("load overrides: %w", err)
	}

	var blocks []model.Appointment
	for _, h := range holidays {
		if !e.applies(h, doctorID, clinicID) || !h.Covers(date) {
			continue
		}
		rule, ok := h.Rule.(model.TimeSpecific)
		if !ok {
			continue
		}
		if rule.Window == nil {
			e.logger.Warn("Time-specific override without bounds ignored",
				zap.Int64("override_id", h.ID))
			continue
		}

		blocks = append(blocks, model.Appointment{
			DoctorID:  doctorID,
			ClinicID:  clinicID,
			StartDate: date,
			StartTime: rule.Window.Start,
			EndDate:   date,
			EndTime:   rule.Window.End,
			Status:    model.AppointmentStatusHolidayBlock,
		})
	}

	return blocks, nil
}

func (e *HolidayEvaluator) applies(h *model.Holiday, doctorID, clinicID int64) bool {
	switch h.Module {
	case model.HolidayModuleDoctor:
		return h.ModuleID == doctorID
	case model.HolidayModuleClinic:
		return h.ModuleID == clinicID
	default:
		return false
	}
}
