package handlers

import (
	"context"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/Freeeeeet/clinic_scheduler/internal/service"
	"go.uber.org/zap"
)

type SlotFinder interface {
	AvailableSlots(ctx context.Context, req service.SlotRequest) (*model.DaySlots, error)
}

type ScheduleReader interface {
	ListDoctorSessions(ctx context.Context, doctorID, clinicID int64) ([]*model.DoctorSession, error)
}

// Handlers содержит все зависимости для обработки команд
type Handlers struct {
	slots     SlotFinder
	schedules ScheduleReader
	logger    *zap.Logger
}

// NewHandlers создаёт новый обработчик команд
func NewHandlers(slots SlotFinder, schedules ScheduleReader, logger *zap.Logger) *Handlers {
	return &Handlers{
		slots:     slots,
		schedules: schedules,
		logger:    logger,
	}
}
