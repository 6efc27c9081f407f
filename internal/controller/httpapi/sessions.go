package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SessionHandler serves the weekly schedule of a doctor at a clinic.
type SessionHandler struct {
	schedules ScheduleManager
	logger    *zap.Logger
}

func NewSessionHandler(schedules ScheduleManager, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{schedules: schedules, logger: logger}
}

func (h *SessionHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)
	return r
}

type scheduleRequest struct {
	TimeSlot int                 `json:"time_slot"`
	Days     []model.DaySchedule `json:"days"`
}

type sessionsResponse struct {
	Sessions []*model.DoctorSession `json:"sessions"`
}

// List GET /api/v1/doctors/{doctorID}/clinics/{clinicID}/sessions
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	doctorID, clinicID, ok := scheduleOwner(w, r)
	if !ok {
		return
	}

	sessions, err := h.schedules.ListDoctorSessions(r.Context(), doctorID, clinicID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}
	if sessions == nil {
		sessions = []*model.DoctorSession{}
	}

	writeJSON(w, http.StatusOK, sessionsResponse{Sessions: sessions})
}

// Create POST /api/v1/doctors/{doctorID}/clinics/{clinicID}/sessions
func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeSchedule(w, r)
	if !ok {
		return
	}

	result, err := h.schedules.CreateDoctorSession(r.Context(), params)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusCreated, result)
}

// Update PUT /api/v1/doctors/{doctorID}/clinics/{clinicID}/sessions?parent_session_id=
func (h *SessionHandler) Update(w http.ResponseWriter, r *http.Request) {
	params, ok := decodeSchedule(w, r)
	if !ok {
		return
	}

	parentID, err := optionalInt(r.URL.Query().Get("parent_session_id"), "parent_session_id")
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := h.schedules.UpdateDoctorSession(r.Context(), params, parentID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// Delete DELETE /api/v1/doctors/{doctorID}/clinics/{clinicID}/sessions
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	doctorID, clinicID, ok := scheduleOwner(w, r)
	if !ok {
		return
	}

	n, err := h.schedules.DeleteDoctorSessions(r.Context(), doctorID, clinicID)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int64{"deleted": n})
}

func scheduleOwner(w http.ResponseWriter, r *http.Request) (int64, int64, bool) {
	doctorID, err := strconv.ParseInt(chi.URLParam(r, "doctorID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "doctor id must be an integer")
		return 0, 0, false
	}
	clinicID, err := strconv.ParseInt(chi.URLParam(r, "clinicID"), 10, 64)
	if err != nil {
		writeError(w, http.StatusBadRequest, "clinic id must be an integer")
		return 0, 0, false
	}
	return doctorID, clinicID, true
}

func decodeSchedule(w http.ResponseWriter, r *http.Request) (model.WeeklySchedule, bool) {
	doctorID, clinicID, ok := scheduleOwner(w, r)
	if !ok {
		return model.WeeklySchedule{}, false
	}

	var body scheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return model.WeeklySchedule{}, false
	}

	return model.WeeklySchedule{
		DoctorID: doctorID,
		ClinicID: clinicID,
		TimeSlot: body.TimeSlot,
		Days:     body.Days,
	}, true
}
