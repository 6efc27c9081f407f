package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters/histograms for slot generation and schedule saves.
type SchedulingMetrics struct {
	generationTotal   *prometheus.CounterVec
	generationSeconds *prometheus.HistogramVec
	slotsEmitted      *prometheus.CounterVec
	savesTotal        *prometheus.CounterVec
	breakWarnings     prometheus.Counter
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		generationTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "slots",
			Name:      "generation_total",
			Help:      "Slot generation requests by mode and outcome",
		}, []string{"mode", "outcome"}),
		generationSeconds: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "clinic",
			Subsystem: "slots",
			Name:      "generation_seconds",
			Help:      "Latency of slot generation including data loading",
			Buckets:   prometheus.DefBuckets,
		}, []string{"mode"}),
		slotsEmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "slots",
			Name:      "emitted_total",
			Help:      "Slots returned to callers",
		}, []string{"mode"}),
		savesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "sessions",
			Name:      "saves_total",
			Help:      "Schedule saves by operation and outcome",
		}, []string{"operation", "outcome"}),
		breakWarnings: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "clinic",
			Subsystem: "sessions",
			Name:      "break_warnings_total",
			Help:      "Breaks or days discarded while saving schedules",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.generationTotal, m.generationSeconds, m.slotsEmitted, m.savesTotal, m.breakWarnings)
	return m
}

// SlotMode is the label value for compact or exhaustive generation.
func SlotMode(onlyAvailable bool) string {
	if onlyAvailable {
		return "compact"
	}
	return "exhaustive"
}

func (m *SchedulingMetrics) ObserveGeneration(mode, outcome string, seconds float64, slots int) {
	if m == nil {
		return
	}
	m.generationTotal.WithLabelValues(mode, outcome).Inc()
	m.generationSeconds.WithLabelValues(mode).Observe(seconds)
	if slots > 0 {
		m.slotsEmitted.WithLabelValues(mode).Add(float64(slots))
	}
}

func (m *SchedulingMetrics) ObserveSave(operation, outcome string, warnings int) {
	if m == nil {
		return
	}
	m.savesTotal.WithLabelValues(operation, outcome).Inc()
	if warnings > 0 {
		m.breakWarnings.Add(float64(warnings))
	}
}
