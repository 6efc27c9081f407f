package service

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// DefaultSlotMinutes is the duration used when neither services nor sessions give one.
const DefaultSlotMinutes = 10

type SessionLister interface {
	ListForDay(ctx context.Context, doctorID, clinicID int64, weekday time.Weekday) ([]*model.DoctorSession, error)
}

type AppointmentLister interface {
	ListForDoctorDate(ctx context.Context, doctorID, clinicID int64, date time.Time) ([]model.Appointment, error)
}

// SlotRequest is a caller's request for the slots of one doctor at one clinic on a date.
type SlotRequest struct {
	Date               string  `json:"date" validate:"required"`
	DoctorID           int64   `json:"doctor_id" validate:"required,gt=0"`
	ClinicID           int64   `json:"clinic_id" validate:"required,gt=0"`
	ServiceIDs         []int64 `json:"service_ids"`
	AppointmentID      int64   `json:"appointment_id" validate:"gte=0"`
	OnlyAvailableSlots bool    `json:"only_available_slots"`
}

// AppointmentDataService loads and checks everything slot generation needs.
type AppointmentDataService struct {
	sessions     SessionLister
	appointments AppointmentLister
	holidays     *HolidayEvaluator
	durations    *ServiceDurationResolver
	loc          *time.Location
	validate     *validator.Validate
	logger       *zap.Logger
}

func NewAppointmentDataService(
	sessions SessionLister,
	appointments AppointmentLister,
	holidays *HolidayEvaluator,
	durations *ServiceDurationResolver,
	loc *time.Location,
	logger *zap.Logger,
) *AppointmentDataService {
	if loc == nil {
		loc = time.UTC
	}
	return &AppointmentDataService{
		sessions:     sessions,
		appointments: appointments,
		holidays:     holidays,
		durations:    durations,
		loc:          loc,
		validate:     newValidator(),
		logger:       logger,
	}
}

// PrepareSlotGenerationData validates req, rejects dates blocked by a full-day leave and
// assembles sessions, appointments, partial-day blocks and the slot duration.
func (s *AppointmentDataService) PrepareSlotGenerationData(ctx context.Context, req SlotRequest) (*SlotGenerationData, error) {
	if err := validateStruct(s.validate, ErrInvalidSlotRequest, req); err != nil {
		return nil, err
	}
	date, err := ParseSlotDate(req.Date, s.loc)
	if err != nil {
		return nil, err
	}

	if err := s.holidays.CheckForLeaves(ctx, req.DoctorID, req.ClinicID, date); err != nil {
		return nil, err
	}

	durationSum, err := s.durations.GetServiceDurationSum(ctx, req.ServiceIDs, req.DoctorID, req.ClinicID)
	if err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListForDay(ctx, req.DoctorID, req.ClinicID, date.Weekday())
	if err != nil {
		return nil, fmt.Errorf("load sessions: %w", err)
	}

	if durationSum <= 0 {
		durationSum = DefaultSlotMinutes
		if len(sessions) > 0 && sessions[0].TimeSlot > 0 {
			durationSum = sessions[0].TimeSlot
		}
		s.logger.Debug("No service duration resolved, using fallback",
			zap.Int64("doctor_id", req.DoctorID),
			zap.Int64("clinic_id", req.ClinicID),
			zap.Int("duration", durationSum))
	}

	appointments, err := s.appointments.ListForDoctorDate(ctx, req.DoctorID, req.ClinicID, date)
	if err != nil {
		return nil, fmt.Errorf("load appointments: %w", err)
	}

	blocks, err := s.holidays.CollectPartialBlocks(ctx, req.DoctorID, req.ClinicID, date)
	if err != nil {
		return nil, err
	}
	appointments = append(appointments, blocks...)

	return &SlotGenerationData{
		Date:                date.Format("2006-01-02"),
		DoctorID:            req.DoctorID,
		ClinicID:            req.ClinicID,
		ServiceDurationSum:  durationSum,
		Sessions:            sessions,
		Appointments:        appointments,
		AppointmentIDToSkip: req.AppointmentID,
		OnlyAvailableSlots:  req.OnlyAvailableSlots,
	}, nil
}
