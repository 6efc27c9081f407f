package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Freeeeeet/clinic_scheduler/internal/model"
	"github.com/Freeeeeet/clinic_scheduler/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type SlotFinder interface {
	AvailableSlots(ctx context.Context, req service.SlotRequest) (*model.DaySlots, error)
}

type ScheduleManager interface {
	CreateDoctorSession(ctx context.Context, params model.WeeklySchedule) (*service.SessionSaveResult, error)
	UpdateDoctorSession(ctx context.Context, params model.WeeklySchedule, parentSessionID int64) (*service.SessionSaveResult, error)
	ListDoctorSessions(ctx context.Context, doctorID, clinicID int64) ([]*model.DoctorSession, error)
	DeleteDoctorSessions(ctx context.Context, doctorID, clinicID int64) (int64, error)
}

// NewRouter wires the JSON API, health and metrics endpoints.
func NewRouter(slots SlotFinder, schedules ScheduleManager, gatherer prometheus.Gatherer, logger *zap.Logger) http.Handler {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/slots", NewSlotHandler(slots, logger).Routes())
		r.Mount("/doctors/{doctorID}/clinics/{clinicID}/sessions", NewSessionHandler(schedules, logger).Routes())
	})

	return r
}

func requestLogger(logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			started := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug("HTTP request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(started)),
				zap.String("request_id", middleware.GetReqID(r.Context())))
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
