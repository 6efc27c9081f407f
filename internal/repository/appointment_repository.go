package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/Freeeeeet/clinic_scheduler/internal/repository/base"
)

// AppointmentRepository reads appointments; they are written by the booking flow.
type AppointmentRepository struct {
	*base.Repository
}

func NewAppointmentRepository(db base.DBTX) *AppointmentRepository {
	return &AppointmentRepository{Repository: base.NewRepository(db)}
}

// ListForDoctorDate returns the non-cancelled appointments of a doctor at a clinic that
// touch the given calendar date.
func (r *AppointmentRepository) ListForDoctorDate(ctx context.Context, doctorID, clinicID int64, date time.Time) ([]model.Appointment, error) {
	query := `
		SELECT id, doctor_id, clinic_id,
		       appointment_start_date, to_char(appointment_start_time, 'HH24:MI'),
		       appointment_end_date, to_char(appointment_end_time, 'HH24:MI'),
		       status
		FROM appointments
		WHERE doctor_id = $1
		  AND clinic_id = $2
		  AND appointment_start_date <= $3
		  AND appointment_end_date >= $3
		  AND status <> 'cancelled'
		ORDER BY appointment_start_date, appointment_start_time
	`

	rows, err := r.Query(ctx, query, doctorID, clinicID, date)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	defer rows.Close()

	var appointments []model.Appointment
	for rows.Next() {
		var a model.Appointment
		var start, end string
		err := rows.Scan(
			&a.ID,
			&a.DoctorID,
			&a.ClinicID,
			&a.StartDate,
			&start,
			&a.EndDate,
			&end,
			&a.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("scan appointment: %w", err)
		}
		if a.StartTime, err = model.ParseTimeOfDay(start); err != nil {
			return nil, fmt.Errorf("appointment %d start: %w", a.ID, err)
		}
		if a.EndTime, err = model.ParseTimeOfDay(end); err != nil {
			return nil, fmt.Errorf("appointment %d end: %w", a.ID, err)
		}
		appointments = append(appointments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate appointments: %w", err)
	}

	return appointments, nil
}
