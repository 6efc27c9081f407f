package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestSchedulingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewSchedulingMetrics(reg)

	m.ObserveGeneration("compact", "ok", 0.02, 6)
	m.ObserveGeneration("compact", "ok", 0.01, 0)
	m.ObserveGeneration("exhaustive", "leave", 0.01, 0)
	m.ObserveSave("update", "ok", 2)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.generationTotal.WithLabelValues("compact", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.generationTotal.WithLabelValues("exhaustive", "leave")))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.slotsEmitted.WithLabelValues("compact")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.savesTotal.WithLabelValues("update", "ok")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.breakWarnings))
}

func TestSlotMode(t *testing.T) {
	assert.Equal(t, "compact", SlotMode(true))
	assert.Equal(t, "exhaustive", SlotMode(false))
}

func TestSchedulingMetricsNilSafe(t *testing.T) {
	var m *SchedulingMetrics
	m.ObserveGeneration("compact", "ok", 0.1, 3)
	m.ObserveSave("create", "error", 1)
}
