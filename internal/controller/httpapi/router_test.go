package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/Freeeeeet/clinic_scheduler/internal/service"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubSlots struct {
	got service.SlotRequest
	day *model.DaySlots
	err error
}

func (s *stubSlots) AvailableSlots(ctx context.Context, req service.SlotRequest) (*model.DaySlots, error) {
	s.got = req
	return s.day, s.err
}

type stubSchedules struct {
	gotParams   model.WeeklySchedule
	gotParentID int64
	result      *service.SessionSaveResult
	sessions    []*model.DoctorSession
	err         error
}

func (s *stubSchedules) CreateDoctorSession(ctx context.Context, params model.WeeklySchedule) (*service.SessionSaveResult, error) {
	s.gotParams = params
	return s.result, s.err
}

func (s *stubSchedules) UpdateDoctorSession(ctx context.Context, params model.WeeklySchedule, parentSessionID int64) (*service.SessionSaveResult, error) {
	s.gotParams = params
	s.gotParentID = parentSessionID
	return s.result, s.err
}

func (s *stubSchedules) ListDoctorSessions(ctx context.Context, doctorID, clinicID int64) ([]*model.DoctorSession, error) {
	return s.sessions, s.err
}

func (s *stubSchedules) DeleteDoctorSessions(ctx context.Context, doctorID, clinicID int64) (int64, error) {
	return 3, s.err
}

func newTestRouter(slots *stubSlots, schedules *stubSchedules) http.Handler {
	return NewRouter(slots, schedules, prometheus.NewRegistry(), zap.NewNop())
}

func serve(h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, target, nil)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := serve(newTestRouter(&stubSlots{}, &stubSchedules{}), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestGetSlots(t *testing.T) {
	start := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	slots := &stubSlots{day: &model.DaySlots{
		Date: "2025-03-10",
		Sessions: []model.SessionSlots{{
			Index:     0,
			SessionID: 10,
			State:     model.SessionWithSlots,
			Slots: []model.Slot{{
				Time:      "09:00 AM",
				Available: true,
				Datetime:  "2025-03-10 09:00:00",
				SessionID: 10,
				Start:     start,
				End:       start.Add(30 * time.Minute),
			}},
		}},
	}}
	h := newTestRouter(slots, &stubSchedules{})

	rec := serve(h, http.MethodGet, "/api/v1/slots?date=2025-03-10&doctor_id=1&clinic_id=2&service_ids=3,4&appointment_id=40&only_available=true", "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	assert.Equal(t, service.SlotRequest{
		Date:               "2025-03-10",
		DoctorID:           1,
		ClinicID:           2,
		ServiceIDs:         []int64{3, 4},
		AppointmentID:      40,
		OnlyAvailableSlots: true,
	}, slots.got)

	assert.JSONEq(t, `{
		"date": "2025-03-10",
		"sessions": [{
			"index": 0,
			"session_id": 10,
			"state": "slots",
			"slots": [{"time": "09:00 AM", "available": true, "booked": false, "datetime": "2025-03-10 09:00:00", "session_id": 10}]
		}]
	}`, rec.Body.String())
}

func TestGetSlots_BadQuery(t *testing.T) {
	h := newTestRouter(&stubSlots{}, &stubSchedules{})

	for _, target := range []string{
		"/api/v1/slots?date=2025-03-10&doctor_id=x&clinic_id=2",
		"/api/v1/slots?date=2025-03-10&doctor_id=1&clinic_id=2&service_ids=a,b",
		"/api/v1/slots?date=2025-03-10&doctor_id=1&clinic_id=2&only_available=maybe",
	} {
		rec := serve(h, http.MethodGet, target, "")
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
	}
}

func TestGetSlots_ErrorMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("%w: field date failed required", service.ErrInvalidSlotRequest), http.StatusBadRequest},
		{&service.LeaveError{Module: model.HolidayModuleClinic, Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}, http.StatusConflict},
		{errors.New("db down"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		h := newTestRouter(&stubSlots{err: tc.err}, &stubSchedules{})
		rec := serve(h, http.MethodGet, "/api/v1/slots?date=2025-03-10&doctor_id=1&clinic_id=2", "")
		assert.Equal(t, tc.status, rec.Code, tc.err.Error())
	}

	h := newTestRouter(&stubSlots{err: &service.LeaveError{Module: model.HolidayModuleDoctor, Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}}, &stubSchedules{})
	rec := serve(h, http.MethodGet, "/api/v1/slots?date=2025-03-10&doctor_id=1&clinic_id=2", "")
	assert.JSONEq(t, `{"error":"doctor is unavailable on 2025-03-10","module":"doctor","date":"2025-03-10"}`, rec.Body.String())

	h = newTestRouter(&stubSlots{err: errors.New("db down")}, &stubSchedules{})
	rec = serve(h, http.MethodGet, "/api/v1/slots?date=2025-03-10&doctor_id=1&clinic_id=2", "")
	assert.NotContains(t, rec.Body.String(), "db down")
}

const scheduleBody = `{"time_slot":30,"days":[{"day":"mon","enabled":true,"main_session":{"start":"09:00","end":"13:00"},"breaks":[{"start":"11:00","end":"11:30"}]}]}`

func TestCreateSessions(t *testing.T) {
	schedules := &stubSchedules{result: &service.SessionSaveResult{Success: true, Message: "Schedule created"}}
	h := newTestRouter(&stubSlots{}, schedules)

	rec := serve(h, http.MethodPost, "/api/v1/doctors/1/clinics/2/sessions", scheduleBody)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	assert.Equal(t, int64(1), schedules.gotParams.DoctorID)
	assert.Equal(t, int64(2), schedules.gotParams.ClinicID)
	assert.Equal(t, 30, schedules.gotParams.TimeSlot)
	require.Len(t, schedules.gotParams.Days, 1)
	assert.Equal(t, "13:00", schedules.gotParams.Days[0].MainSession.End)
	assert.Equal(t, []model.TimeRange{{Start: "11:00", End: "11:30"}}, schedules.gotParams.Days[0].Breaks)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
}

func TestCreateSessions_Conflict(t *testing.T) {
	h := newTestRouter(&stubSlots{}, &stubSchedules{err: service.ErrScheduleExists})
	rec := serve(h, http.MethodPost, "/api/v1/doctors/1/clinics/2/sessions", scheduleBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestUpdateSessions(t *testing.T) {
	schedules := &stubSchedules{result: &service.SessionSaveResult{Success: true}}
	h := newTestRouter(&stubSlots{}, schedules)

	rec := serve(h, http.MethodPut, "/api/v1/doctors/1/clinics/2/sessions?parent_session_id=100", scheduleBody)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(100), schedules.gotParentID)

	rec = serve(h, http.MethodPut, "/api/v1/doctors/1/clinics/2/sessions", "{not json")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = serve(h, http.MethodPut, "/api/v1/doctors/one/clinics/2/sessions", scheduleBody)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	h = newTestRouter(&stubSlots{}, &stubSchedules{err: fmt.Errorf("%w: 9", service.ErrSessionNotFound)})
	rec = serve(h, http.MethodPut, "/api/v1/doctors/1/clinics/2/sessions?parent_session_id=9", scheduleBody)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestListAndDeleteSessions(t *testing.T) {
	schedules := &stubSchedules{sessions: []*model.DoctorSession{{
		ID:        100,
		DoctorID:  1,
		ClinicID:  2,
		Day:       "mon",
		StartTime: model.MustTimeOfDay("09:00"),
		EndTime:   model.MustTimeOfDay("11:00"),
		TimeSlot:  30,
	}}}
	h := newTestRouter(&stubSlots{}, schedules)

	rec := serve(h, http.MethodGet, "/api/v1/doctors/1/clinics/2/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"start_time":"09:00"`)

	rec = serve(h, http.MethodDelete, "/api/v1/doctors/1/clinics/2/sessions", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":3}`, rec.Body.String())
}

func TestMetricsEndpoint(t *testing.T) {
	rec := serve(newTestRouter(&stubSlots{}, &stubSchedules{}), http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}
