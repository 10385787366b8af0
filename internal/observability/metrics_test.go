package observability

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_ObserveRun(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())

	m.ObserveRun(RunStats{
		Status:    StatusDegraded,
		Duration:  200 * time.Millisecond,
		Attempted: 289,
		Persisted: 280,
		Failed:    9,
		Alerts:    map[string]int{"none": 250, "high": 30},
	})

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SimulationRuns.WithLabelValues(StatusDegraded)))
	assert.Equal(t, 289.0, testutil.ToFloat64(m.TicksAttempted))
	assert.Equal(t, 280.0, testutil.ToFloat64(m.ReadingsPersisted))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.PersistFailures))
	assert.Equal(t, 30.0, testutil.ToFloat64(m.ReadingsByAlert.WithLabelValues("high")))
}

func TestMetrics_ObserveUpdate(t *testing.T) {
	m := NewMetrics("test", prometheus.NewRegistry())

	m.ObserveUpdate("command", nil)
	m.ObserveUpdate("command", errors.New("boom"))

	assert.Equal(t, 2.0, testutil.ToFloat64(m.BotUpdates.WithLabelValues("command")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.BotUpdateErrors))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveRun(RunStats{Status: StatusCompleted})
		m.ObserveUpdate("text", nil)
	})
}
