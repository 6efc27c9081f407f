package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/Freeeeeet/clinic_scheduler/internal/repository/base"
	"github.com/jackc/pgx/v5"
)

const sessionColumns = `id, doctor_id, clinic_id, day,
	to_char(start_time, 'HH24:MI'), to_char(end_time, 'HH24:MI'),
	time_slot, parent_id, revision_id, created_at`

// SessionRepository хранит рабочие сессии врачей
type SessionRepository struct {
	*base.Repository
}

// NewSessionRepository создаёт репозиторий поверх пула или транзакции
func NewSessionRepository(db base.DBTX) *SessionRepository {
	return &SessionRepository{Repository: base.NewRepository(db)}
}

// Create вставляет сессию и заполняет ID и CreatedAt
func (r *SessionRepository) Create(ctx context.Context, s *model.DoctorSession) error {
	query := `
		INSERT INTO doctor_sessions (doctor_id, clinic_id, day, start_time, end_time, time_slot, parent_id, revision_id)
		VALUES ($1, $2, $3, $4::time, $5::time, $6, $7, $8)
		RETURNING id, created_at
	`

	err := r.QueryRow(
		ctx, query,
		s.DoctorID,
		s.ClinicID,
		s.Day,
		s.StartTime.String(),
		s.EndTime.String(),
		s.TimeSlot,
		s.ParentID,
		s.RevisionID,
	).Scan(&s.ID, &s.CreatedAt)

	if err != nil {
		return fmt.Errorf("create doctor session: %w", err)
	}

	return nil
}

// GetByID получает сессию по ID
func (r *SessionRepository) GetByID(ctx context.Context, id int64) (*model.DoctorSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM doctor_sessions WHERE id = $1`

	s, err := scanSession(r.QueryRow(ctx, query, id))
	if err != nil {
		if base.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get doctor session by id: %w", err)
	}

	return s, nil
}

// ListForDay получает сессии врача в клинике за день недели, по возрастанию начала.
// Строки с полным названием дня тоже подходят
func (r *SessionRepository) ListForDay(ctx context.Context, doctorID, clinicID int64, weekday time.Weekday) ([]*model.DoctorSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM doctor_sessions
		WHERE doctor_id = $1
		  AND clinic_id = $2
		  AND lower(day) IN ($3, $4)
		ORDER BY start_time, id
	`

	rows, err := r.Query(ctx, query, doctorID, clinicID, model.WeekdayKey(weekday), model.WeekdayFullName(weekday))
	if err != nil {
		return nil, fmt.Errorf("list doctor sessions for day: %w", err)
	}

	return collectSessions(rows)
}

// ListByDoctorClinic получает всё расписание врача в клинике
func (r *SessionRepository) ListByDoctorClinic(ctx context.Context, doctorID, clinicID int64) ([]*model.DoctorSession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM doctor_sessions
		WHERE doctor_id = $1 AND clinic_id = $2
		ORDER BY id
	`

	rows, err := r.Query(ctx, query, doctorID, clinicID)
	if err != nil {
		return nil, fmt.Errorf("list doctor sessions: %w", err)
	}

	return collectSessions(rows)
}

// CountByDoctorClinic считает сессии врача в клинике
func (r *SessionRepository) CountByDoctorClinic(ctx context.Context, doctorID, clinicID int64) (int, error) {
	query := `SELECT COUNT(*) FROM doctor_sessions WHERE doctor_id = $1 AND clinic_id = $2`

	var count int
	if err := r.QueryRow(ctx, query, doctorID, clinicID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count doctor sessions: %w", err)
	}

	return count, nil
}

// DeleteForDay удаляет все сессии врача в клинике за день недели
func (r *SessionRepository) DeleteForDay(ctx context.Context, doctorID, clinicID int64, weekday time.Weekday) (int64, error) {
	query := `
		DELETE FROM doctor_sessions
		WHERE doctor_id = $1
		  AND clinic_id = $2
		  AND lower(day) IN ($3, $4)
	`

	n, err := r.ExecAffected(ctx, query, doctorID, clinicID, model.WeekdayKey(weekday), model.WeekdayFullName(weekday))
	if err != nil {
		return 0, fmt.Errorf("delete doctor sessions for day: %w", err)
	}

	return n, nil
}

// DeleteByDoctorClinic удаляет всё расписание врача в клинике
func (r *SessionRepository) DeleteByDoctorClinic(ctx context.Context, doctorID, clinicID int64) (int64, error) {
	query := `DELETE FROM doctor_sessions WHERE doctor_id = $1 AND clinic_id = $2`

	n, err := r.ExecAffected(ctx, query, doctorID, clinicID)
	if err != nil {
		return 0, fmt.Errorf("delete doctor sessions: %w", err)
	}

	return n, nil
}

func collectSessions(rows pgx.Rows) ([]*model.DoctorSession, error) {
	defer rows.Close()

	var sessions []*model.DoctorSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan doctor session: %w", err)
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate doctor sessions: %w", err)
	}

	return sessions, nil
}

func scanSession(row pgx.Row) (*model.DoctorSession, error) {
	var s model.DoctorSession
	var start, end string

	err := row.Scan(
		&s.ID,
		&s.DoctorID,
		&s.ClinicID,
		&s.Day,
		&start,
		&end,
		&s.TimeSlot,
		&s.ParentID,
		&s.RevisionID,
		&s.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if s.StartTime, err = model.ParseTimeOfDay(start); err != nil {
		return nil, fmt.Errorf("session %d start: %w", s.ID, err)
	}
	if s.EndTime, err = model.ParseTimeOfDay(end); err != nil {
		return nil, fmt.Errorf("session %d end: %w", s.ID, err)
	}

	return &s, nil
}
