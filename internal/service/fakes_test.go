package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
)

type fakeHolidays struct {
	holidays []*model.Holiday
	err      error
	calls    int
}

func (f *fakeHolidays) ListActiveForDate(ctx context.Context, doctorID, clinicID int64, date time.Time) ([]*model.Holiday, error) {
	f.calls++
	return f.holidays, f.err
}

type fakeMappings struct {
	mappings []*model.DoctorClinicService
	err      error
	gotIDs   []int64
}

func (f *fakeMappings) ListActive(ctx context.Context, doctorID, clinicID int64, serviceIDs []int64) ([]*model.DoctorClinicService, error) {
	f.gotIDs = serviceIDs
	return f.mappings, f.err
}

type fakeSessions struct {
	sessions   []*model.DoctorSession
	err        error
	gotWeekday time.Weekday
	calls      int
}

func (f *fakeSessions) ListForDay(ctx context.Context, doctorID, clinicID int64, weekday time.Weekday) ([]*model.DoctorSession, error) {
	f.calls++
	f.gotWeekday = weekday
	return f.sessions, f.err
}

type fakeAppointments struct {
	appointments []model.Appointment
	err          error
}

func (f *fakeAppointments) ListForDoctorDate(ctx context.Context, doctorID, clinicID int64, date time.Time) ([]model.Appointment, error) {
	return f.appointments, f.err
}

type clockFormatter struct{}

func (clockFormatter) FormatTime(t time.Time) string { return t.Format("15:04") }

func fixedClock(t time.Time) Clock {
	return ClockFunc(func() time.Time { return t })
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func tod(s string) model.TimeOfDay {
	return model.MustTimeOfDay(s)
}

func session(id int64, start, end string, timeSlot int) *model.DoctorSession {
	return &model.DoctorSession{
		ID:        id,
		DoctorID:  1,
		ClinicID:  2,
		Day:       "mon",
		StartTime: tod(start),
		EndTime:   tod(end),
		TimeSlot:  timeSlot,
	}
}

func booked(id int64, on time.Time, start, end string) model.Appointment {
	return model.Appointment{
		ID:        id,
		DoctorID:  1,
		ClinicID:  2,
		StartDate: on,
		StartTime: tod(start),
		EndDate:   on,
		EndTime:   tod(end),
		Status:    model.AppointmentStatusBooked,
	}
}

func slotTimes(slots []model.Slot) []string {
	out := make([]string, 0, len(slots))
	for _, s := range slots {
		out = append(out, s.Start.Format("15:04"))
	}
	return out
}
