package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/Freeeeeet/clinic_scheduler/internal/observability/metrics"
	"github.com/Freeeeeet/clinic_scheduler/internal/repository"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	saveOperationCreate = "create"
	saveOperationUpdate = "update"
)

type SessionStore interface {
	GetByID(ctx context.Context, id int64) (*model.DoctorSession, error)
	ListByDoctorClinic(ctx context.Context, doctorID, clinicID int64) ([]*model.DoctorSession, error)
	DeleteByDoctorClinic(ctx context.Context, doctorID, clinicID int64) (int64, error)
}

// SessionWriter is the transactional part of the session repository.
type SessionWriter interface {
	CountByDoctorClinic(ctx context.Context, doctorID, clinicID int64) (int, error)
	DeleteForDay(ctx context.Context, doctorID, clinicID int64, weekday time.Weekday) (int64, error)
	Create(ctx context.Context, s *model.DoctorSession) error
}

// SessionSaveResult describes a completed schedule save.
type SessionSaveResult struct {
	Success    bool                    `json:"success"`
	Message    string                  `json:"message"`
	RevisionID uuid.UUID               `json:"revision_id"`
	Sessions   []*model.DoctorSession  `json:"data"`
	Warnings   []model.ScheduleWarning `json:"warnings"`
}

// DoctorSessionService saves and reads weekly doctor schedules.
type DoctorSessionService struct {
	sessions    SessionStore
	tx          repository.TxManager
	splitter    *SessionSplitter
	metrics     *metrics.SchedulingMetrics
	validate    *validator.Validate
	newRevision func() uuid.UUID
	logger      *zap.Logger
}

func NewDoctorSessionService(
	sessions SessionStore,
	tx repository.TxManager,
	splitter *SessionSplitter,
	m *metrics.SchedulingMetrics,
	logger *zap.Logger,
) *DoctorSessionService {
	return &DoctorSessionService{
		sessions:    sessions,
		tx:          tx,
		splitter:    splitter,
		metrics:     m,
		validate:    newValidator(),
		newRevision: uuid.New,
		logger:      logger,
	}
}

// UpdateDoctorSession replaces the days named in params. parentSessionID, when positive,
// is the root session being edited and must belong to the same doctor and clinic.
func (s *DoctorSessionService) UpdateDoctorSession(ctx context.Context, params model.WeeklySchedule, parentSessionID int64) (*SessionSaveResult, error) {
	s.logger.Info("UpdateDoctorSession called",
		zap.Int64("doctor_id", params.DoctorID),
		zap.Int64("clinic_id", params.ClinicID),
		zap.Int64("parent_session_id", parentSessionID),
		zap.Int("days", len(params.Days)))

	plans, err := s.plan(params)
	if err != nil {
		s.metrics.ObserveSave(saveOperationUpdate, "invalid", 0)
		return nil, err
	}

	if parentSessionID > 0 {
		parent, err := s.sessions.GetByID(ctx, parentSessionID)
		if err != nil {
			s.metrics.ObserveSave(saveOperationUpdate, "error", 0)
			return nil, fmt.Errorf("session update failed: %w", err)
		}
		if parent == nil {
			s.metrics.ObserveSave(saveOperationUpdate, "invalid", 0)
			return nil, fmt.Errorf("%w: %d", ErrSessionNotFound, parentSessionID)
		}
		if parent.DoctorID != params.DoctorID || parent.ClinicID != params.ClinicID {
			s.logger.Warn("Parent session belongs to another schedule",
				zap.Int64("parent_session_id", parentSessionID),
				zap.Int64("owner_doctor_id", parent.DoctorID),
				zap.Int64("owner_clinic_id", parent.ClinicID))
			s.metrics.ObserveSave(saveOperationUpdate, "invalid", 0)
			return nil, invalidSchedule("field parent_session_id: session %d belongs to another doctor or clinic", parentSessionID)
		}
	}

	return s.save(ctx, saveOperationUpdate, params, plans)
}

// CreateDoctorSession saves the first schedule of a doctor at a clinic.
func (s *DoctorSessionService) CreateDoctorSession(ctx context.Context, params model.WeeklySchedule) (*SessionSaveResult, error) {
	s.logger.Info("CreateDoctorSession called",
		zap.Int64("doctor_id", params.DoctorID),
		zap.Int64("clinic_id", params.ClinicID),
		zap.Int("days", len(params.Days)))

	plans, err := s.plan(params)
	if err != nil {
		s.metrics.ObserveSave(saveOperationCreate, "invalid", 0)
		return nil, err
	}

	return s.save(ctx, saveOperationCreate, params, plans)
}

// ListDoctorSessions returns all sessions of a doctor at a clinic.
func (s *DoctorSessionService) ListDoctorSessions(ctx context.Context, doctorID, clinicID int64) ([]*model.DoctorSession, error) {
	if doctorID <= 0 || clinicID <= 0 {
		return nil, invalidSchedule("doctor_id and clinic_id must be positive")
	}

	sessions, err := s.sessions.ListByDoctorClinic(ctx, doctorID, clinicID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

// DeleteDoctorSessions removes the whole schedule of a doctor at a clinic.
func (s *DoctorSessionService) DeleteDoctorSessions(ctx context.Context, doctorID, clinicID int64) (int64, error) {
	if doctorID <= 0 || clinicID <= 0 {
		return 0, invalidSchedule("doctor_id and clinic_id must be positive")
	}

	n, err := s.sessions.DeleteByDoctorClinic(ctx, doctorID, clinicID)
	if err != nil {
		s.logger.Error("Failed to delete schedule",
			zap.Int64("doctor_id", doctorID),
			zap.Int64("clinic_id", clinicID),
			zap.Error(err))
		return 0, fmt.Errorf("delete sessions: %w", err)
	}

	s.logger.Info("Schedule deleted",
		zap.Int64("doctor_id", doctorID),
		zap.Int64("clinic_id", clinicID),
		zap.Int64("rows", n))
	return n, nil
}

func (s *DoctorSessionService) plan(params model.WeeklySchedule) ([]DayPlan, error) {
	if err := validateStruct(s.validate, ErrInvalidSchedule, params); err != nil {
		return nil, err
	}

	plans := make([]DayPlan, 0, len(params.Days))
	seen := make(map[time.Weekday]bool, len(params.Days))
	for _, day := range params.Days {
		p, err := s.splitter.Split(day)
		if err != nil {
			return nil, err
		}
		if seen[p.Weekday] {
			return nil, invalidSchedule("field days: %s listed more than once", p.Day)
		}
		seen[p.Weekday] = true
		plans = append(plans, p)
	}
	return plans, nil
}

func (s *DoctorSessionService) save(ctx context.Context, operation string, params model.WeeklySchedule, plans []DayPlan) (*SessionSaveResult, error) {
	result := &SessionSaveResult{RevisionID: s.newRevision()}
	for _, p := range plans {
		result.Warnings = append(result.Warnings, p.Warnings...)
	}

	err := s.tx.WithTx(ctx, func(ctx context.Context, repos repository.TxRepositories) error {
		if operation == saveOperationCreate {
			count, err := repos.Sessions.CountByDoctorClinic(ctx, params.DoctorID, params.ClinicID)
			if err != nil {
				return err
			}
			if count > 0 {
				return ErrScheduleExists
			}
		}

		for _, p := range plans {
			saved, err := s.replaceDay(ctx, repos.Sessions, params, p, result.RevisionID)
			if err != nil {
				return err
			}
			result.Sessions = append(result.Sessions, saved...)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrScheduleExists) {
			s.metrics.ObserveSave(operation, "conflict", 0)
			return nil, err
		}
		s.metrics.ObserveSave(operation, "error", 0)
		s.logger.Error("Schedule save rolled back",
			zap.String("operation", operation),
			zap.Int64("doctor_id", params.DoctorID),
			zap.Int64("clinic_id", params.ClinicID),
			zap.String("revision_id", result.RevisionID.String()),
			zap.Error(err))
		if operation == saveOperationCreate {
			return nil, fmt.Errorf("session creation failed: %w", err)
		}
		return nil, fmt.Errorf("session update failed: %w", err)
	}

	s.metrics.ObserveSave(operation, "ok", len(result.Warnings))
	s.logger.Info("Schedule saved",
		zap.String("operation", operation),
		zap.Int64("doctor_id", params.DoctorID),
		zap.Int64("clinic_id", params.ClinicID),
		zap.String("revision_id", result.RevisionID.String()),
		zap.Int("sessions", len(result.Sessions)),
		zap.Int("warnings", len(result.Warnings)))

	result.Success = true
	if operation == saveOperationCreate {
		result.Message = "Schedule created"
	} else {
		result.Message = "Schedule updated"
	}
	return result, nil
}

// replaceDay swaps the stored sessions of one weekday for the plan's windows. The first
// window becomes the parent of the rest.
func (s *DoctorSessionService) replaceDay(ctx context.Context, repo SessionWriter, params model.WeeklySchedule, p DayPlan, revision uuid.UUID) ([]*model.DoctorSession, error) {
	if _, err := repo.DeleteForDay(ctx, params.DoctorID, params.ClinicID, p.Weekday); err != nil {
		return nil, err
	}
	if !p.Enabled {
		return nil, nil
	}

	var rootID *int64
	saved := make([]*model.DoctorSession, 0, len(p.Windows))
	for _, w := range p.Windows {
		session := &model.DoctorSession{
			DoctorID:   params.DoctorID,
			ClinicID:   params.ClinicID,
			Day:        p.Day,
			StartTime:  w.Start,
			EndTime:    w.End,
			TimeSlot:   params.TimeSlot,
			ParentID:   rootID,
			RevisionID: revision,
		}
		if err := repo.Create(ctx, session); err != nil {
			return nil, err
		}
		if session.IsRoot() {
			id := session.ID
			rootID = &id
		}
		saved = append(saved, session)
	}
	return saved, nil
}
