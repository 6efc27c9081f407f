package httpapi

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Freeeeeet/clinic_scheduler/internal/controller/params"
	"github.com/Freeeeeet/clinic_scheduler/internal/service"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// SlotHandler serves slot queries.
type SlotHandler struct {
	slots  SlotFinder
	logger *zap.Logger
}

func NewSlotHandler(slots SlotFinder, logger *zap.Logger) *SlotHandler {
	return &SlotHandler{slots: slots, logger: logger}
}

func (h *SlotHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", h.GetSlots)
	return r
}

// GetSlots returns the slots of a doctor at a clinic on a date.
// GET /api/v1/slots?date=&doctor_id=&clinic_id=&service_ids=1,2&appointment_id=&only_available=true
func (h *SlotHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	req, err := parseSlotRequest(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	day, err := h.slots.AvailableSlots(r.Context(), req)
	if err != nil {
		writeServiceError(w, h.logger, err)
		return
	}

	writeJSON(w, http.StatusOK, day)
}

func parseSlotRequest(r *http.Request) (service.SlotRequest, error) {
	q := r.URL.Query()
	req := service.SlotRequest{Date: q.Get("date")}

	var err error
	if req.DoctorID, err = optionalInt(q.Get("doctor_id"), "doctor_id"); err != nil {
		return req, err
	}
	if req.ClinicID, err = optionalInt(q.Get("clinic_id"), "clinic_id"); err != nil {
		return req, err
	}
	if req.AppointmentID, err = optionalInt(q.Get("appointment_id"), "appointment_id"); err != nil {
		return req, err
	}
	if req.ServiceIDs, err = params.ParseIDList(q.Get("service_ids")); err != nil {
		return req, err
	}
	if raw := q.Get("only_available"); raw != "" {
		if req.OnlyAvailableSlots, err = strconv.ParseBool(raw); err != nil {
			return req, fmt.Errorf("only_available must be a boolean")
		}
	}

	return req, nil
}

func optionalInt(raw, field string) (int64, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", field)
	}
	return n, nil
}
