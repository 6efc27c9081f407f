package repository

import (
	"context"
	"testing"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var overrideColumns = []string{
	"id", "module_type", "module_id", "start_date", "end_date", "status",
	"selection_mode", "selected_dates", "time_specific", "start_time", "end_time",
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func strPtr(s string) *string { return &s }

func TestHolidayRepository_ListActiveForDate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	date := day(2025, 3, 10)
	rows := pgxmock.NewRows(overrideColumns).
		AddRow(int64(1), "doctor", int64(5), day(2025, 3, 9), day(2025, 3, 11), true,
			"range", nil, false, nil, nil).
		AddRow(int64(2), "clinic", int64(2), day(2025, 1, 1), day(2025, 1, 1), true,
			"multiple", []byte(`["2025-03-10","2025-03-17"]`), false, nil, nil).
		AddRow(int64(3), "doctor", int64(5), day(2025, 3, 10), day(2025, 3, 10), true,
			"single", nil, true, strPtr("12:00"), strPtr("13:00")).
		AddRow(int64(4), "doctor", int64(5), day(2025, 3, 10), day(2025, 3, 10), true,
			"range", nil, true, nil, nil)

	mock.ExpectQuery("FROM schedule_overrides").
		WithArgs(int64(5), int64(2), date).
		WillReturnRows(rows)

	repo := NewHolidayRepository(mock, zap.NewNop())
	holidays, err := repo.ListActiveForDate(context.Background(), 5, 2, date)
	require.NoError(t, err)
	require.Len(t, holidays, 4)

	assert.IsType(t, model.FullRange{}, holidays[0].Rule)
	assert.Equal(t, model.HolidayModuleDoctor, holidays[0].Module)
	assert.True(t, holidays[0].Covers(date))

	assert.IsType(t, model.MultipleDates{}, holidays[1].Rule)
	assert.Equal(t, model.HolidayModuleClinic, holidays[1].Module)
	assert.True(t, holidays[1].Covers(date))
	assert.False(t, holidays[1].Covers(day(2025, 3, 11)))

	partial, ok := holidays[2].Rule.(model.TimeSpecific)
	require.True(t, ok)
	require.NotNil(t, partial.Window)
	assert.Equal(t, model.MustTimeOfDay("12:00"), partial.Window.Start)
	assert.Equal(t, model.MustTimeOfDay("13:00"), partial.Window.End)

	unbounded, ok := holidays[3].Rule.(model.TimeSpecific)
	require.True(t, ok)
	assert.Nil(t, unbounded.Window)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestHolidayRepository_UnknownModeFails(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	date := day(2025, 3, 10)
	rows := pgxmock.NewRows(overrideColumns).
		AddRow(int64(9), "doctor", int64(5), date, date, true, "weekly", nil, false, nil, nil)
	mock.ExpectQuery("FROM schedule_overrides").
		WithArgs(int64(5), int64(2), date).
		WillReturnRows(rows)

	_, err = NewHolidayRepository(mock, zap.NewNop()).ListActiveForDate(context.Background(), 5, 2, date)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode schedule override 9")
	assert.Contains(t, err.Error(), `unknown selection mode "weekly"`)
}

func TestHolidayRepository_BadSelectedDates(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	date := day(2025, 3, 10)
	rows := pgxmock.NewRows(overrideColumns).
		AddRow(int64(4), "clinic", int64(2), date, date, true, "multiple", []byte(`["10/03/2025"]`), false, nil, nil)
	mock.ExpectQuery("FROM schedule_overrides").
		WithArgs(int64(5), int64(2), date).
		WillReturnRows(rows)

	_, err = NewHolidayRepository(mock, zap.NewNop()).ListActiveForDate(context.Background(), 5, 2, date)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "selected date")
}

func TestServiceMappingRepository_ListActive(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	ids := []int64{3, 4}
	mock.ExpectQuery("FROM doctor_clinic_services").
		WithArgs(int64(1), int64(2), ids).
		WillReturnRows(pgxmock.NewRows([]string{"id", "doctor_id", "clinic_id", "service_id", "duration", "status"}).
			AddRow(int64(20), int64(1), int64(2), int64(3), 20, 1).
			AddRow(int64(21), int64(1), int64(2), int64(4), 15, 1))

	mappings, err := NewServiceMappingRepository(mock).ListActive(context.Background(), 1, 2, ids)
	require.NoError(t, err)
	require.Len(t, mappings, 2)
	assert.Equal(t, int64(3), mappings[0].ServiceID)
	assert.Equal(t, 20, mappings[0].Duration)
	assert.Equal(t, 15, mappings[1].Duration)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestServiceMappingRepository_EmptyIDsSkipsQuery(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	mappings, err := NewServiceMappingRepository(mock).ListActive(context.Background(), 1, 2, nil)
	require.NoError(t, err)
	assert.Empty(t, mappings)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestAppointmentRepository_ListForDoctorDate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	date := day(2025, 3, 10)
	mock.ExpectQuery("FROM appointments").
		WithArgs(int64(1), int64(2), date).
		WillReturnRows(pgxmock.NewRows([]string{"id", "doctor_id", "clinic_id", "start_date", "start_time", "end_date", "end_time", "status"}).
			AddRow(int64(40), int64(1), int64(2), date, "09:30", date, "10:00", "booked"))

	appts, err := NewAppointmentRepository(mock).ListForDoctorDate(context.Background(), 1, 2, date)
	require.NoError(t, err)
	require.Len(t, appts, 1)
	assert.Equal(t, model.AppointmentStatusBooked, appts[0].Status)
	assert.Equal(t, model.MustTimeOfDay("09:30"), appts[0].StartTime)
	assert.True(t, appts[0].OccupiesTime())

	start, end := appts[0].Interval(time.UTC)
	assert.Equal(t, time.Date(2025, 3, 10, 9, 30, 0, 0, time.UTC), start)
	assert.Equal(t, 30*time.Minute, end.Sub(start))
	require.NoError(t, mock.ExpectationsWereMet())
}
