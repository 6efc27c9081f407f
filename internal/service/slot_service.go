package service

import (
	"context"
	"errors"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/Freeeeeet/clinic_scheduler/internal/observability/metrics"
	"go.uber.org/zap"
)

// SlotService answers slot requests for the HTTP and chat surfaces.
type SlotService struct {
	data      *AppointmentDataService
	generator *SlotGenerator
	metrics   *metrics.SchedulingMetrics
	logger    *zap.Logger
}

func NewSlotService(data *AppointmentDataService, generator *SlotGenerator, m *metrics.SchedulingMetrics, logger *zap.Logger) *SlotService {
	return &SlotService{
		data:      data,
		generator: generator,
		metrics:   m,
		logger:    logger,
	}
}

// AvailableSlots prepares the inputs for req and generates its slots.
func (s *SlotService) AvailableSlots(ctx context.Context, req SlotRequest) (*model.DaySlots, error) {
	started := time.Now()
	mode := metrics.SlotMode(req.OnlyAvailableSlots)

	data, err := s.data.PrepareSlotGenerationData(ctx, req)
	if err != nil {
		s.observeFailure(mode, started, req, err)
		return nil, err
	}

	slots, err := s.generator.GenerateSlots(data)
	if err != nil {
		s.observeFailure(mode, started, req, err)
		return nil, err
	}

	s.metrics.ObserveGeneration(mode, "ok", time.Since(started).Seconds(), slots.Count())
	s.logger.Debug("Slots generated",
		zap.Int64("doctor_id", req.DoctorID),
		zap.Int64("clinic_id", req.ClinicID),
		zap.String("date", slots.Date),
		zap.String("mode", mode),
		zap.Int("sessions", len(slots.Sessions)),
		zap.Int("slots", slots.Count()),
		zap.Int("available", len(slots.Available())))

	return slots, nil
}

func (s *SlotService) observeFailure(mode string, started time.Time, req SlotRequest, err error) {
	outcome := "error"
	var leave *LeaveError
	switch {
	case errors.As(err, &leave):
		outcome = "leave"
	case errors.Is(err, ErrInvalidSlotRequest):
		outcome = "invalid"
	}
	s.metrics.ObserveGeneration(mode, outcome, time.Since(started).Seconds(), 0)

	if outcome == "error" {
		s.logger.Error("Slot generation failed",
			zap.Int64("doctor_id", req.DoctorID),
			zap.Int64("clinic_id", req.ClinicID),
			zap.String("date", req.Date),
			zap.Error(err))
		return
	}
	s.logger.Info("Slot request rejected",
		zap.Int64("doctor_id", req.DoctorID),
		zap.Int64("clinic_id", req.ClinicID),
		zap.String("date", req.Date),
		zap.String("outcome", outcome),
		zap.Error(err))
}
