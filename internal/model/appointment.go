package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
	AppointmentStatusBooked     AppointmentStatus = "booked"
	AppointmentStatusPending    AppointmentStatus = "pending"
	AppointmentStatusCheckedOut AppointmentStatus = "checked_out"
	AppointmentStatusCheckedIn  AppointmentStatus = "checked_in"
	// HolidayBlock marks a synthetic appointment built from a time-specific leave.
	AppointmentStatusHolidayBlock AppointmentStatus = "holiday_block"
)

// Appointment is the part of an appointment the slot engine reads.
// Dates carry only the calendar day; times are wall-clock in the clinic timezone.
type Appointment struct {
	ID        int64             `json:"id"` // 0 for synthetic blocks
	DoctorID  int64             `json:"doctor_id"`
	ClinicID  int64             `json:"clinic_id"`
	StartDate time.Time         `json:"appointment_start_date"`
	StartTime TimeOfDay         `json:"appointment_start_time"`
	EndDate   time.Time         `json:"appointment_end_date"`
	EndTime   TimeOfDay         `json:"appointment_end_time"`
	Status    AppointmentStatus `json:"status"`
}

// OccupiesTime reports whether the appointment blocks its interval.
func (a *Appointment) OccupiesTime() bool {
	return a.Status != AppointmentStatusCancelled
}

// IsSynthetic reports whether the appointment was derived from a leave record.
func (a *Appointment) IsSynthetic() bool {
	return a.Status == AppointmentStatusHolidayBlock
}

// Interval returns the concrete [start, end) of the appointment in loc.
func (a *Appointment) Interval(loc *time.Location) (time.Time, time.Time) {
	return a.StartTime.On(a.StartDate, loc), a.EndTime.On(a.EndDate, loc)
}
