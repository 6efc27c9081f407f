package httpapi

import (
	"errors"
	"net/http"

	"github.com/Freeeeeet/clinic_scheduler/internal/service"
	"go.uber.org/zap"
)

type leaveResponse struct {
	Error  string `json:"error"`
	Module string `json:"module"`
	Date   string `json:"date"`
}

// writeServiceError maps service errors to status codes.
func writeServiceError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var leave *service.LeaveError
	switch {
	case errors.As(err, &leave):
		writeJSON(w, http.StatusConflict, leaveResponse{
			Error:  leave.Error(),
			Module: string(leave.Module),
			Date:   leave.Date.Format("2006-01-02"),
		})
	case errors.Is(err, service.ErrInvalidSlotRequest), errors.Is(err, service.ErrInvalidSchedule):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrSessionNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrScheduleExists):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("Request failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
