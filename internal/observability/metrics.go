// Package observability provides Prometheus metrics for simulation runs.
package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run outcomes used as the status label.
const (
	StatusCompleted = "completed"
	StatusDegraded  = "degraded"
	StatusFailed    = "failed"
	StatusCancelled = "cancelled"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	SimulationRuns    *prometheus.CounterVec
	SimulationRunTime prometheus.Histogram
	TicksAttempted    prometheus.Counter
	ReadingsPersisted prometheus.Counter
	PersistFailures   prometheus.Counter
	ReadingsByAlert   *prometheus.CounterVec

	BotUpdates      *prometheus.CounterVec
	BotUpdateErrors prometheus.Counter
}

// NewMetrics registers all metrics with reg. A nil reg uses the default
// registerer.
func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if namespace == "" {
		namespace = "cgm_simulator"
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	return &Metrics{
		SimulationRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "runs_total",
			Help:      "Total number of simulation runs by status",
		}, []string{"status"}),
		SimulationRunTime: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "run_duration_seconds",
			Help:      "Simulation run duration in seconds",
			Buckets:   []float64{0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
		}),
		TicksAttempted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "ticks_attempted_total",
			Help:      "Total number of simulation ticks attempted",
		}),
		ReadingsPersisted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "readings_persisted_total",
			Help:      "Total number of synthetic readings stored",
		}),
		PersistFailures: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "persist_failures_total",
			Help:      "Total number of readings the sink rejected",
		}),
		ReadingsByAlert: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "simulation",
			Name:      "readings_by_alert_total",
			Help:      "Stored readings by alert type",
		}, []string{"alert"}),

		BotUpdates: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bot",
			Name:      "updates_total",
			Help:      "Telegram updates handled by kind",
		}, []string{"kind"}),
		BotUpdateErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "bot",
			Name:      "update_errors_total",
			Help:      "Telegram updates whose handling failed",
		}),
	}
}

// RunStats is the per-run data recorded after a simulation.
type RunStats struct {
	Status    string
	Duration  time.Duration
	Attempted int
	Persisted int
	Failed    int
	Alerts    map[string]int
}

// ObserveRun records one finished simulation run.
func (m *Metrics) ObserveRun(s RunStats) {
	if m == nil {
		return
	}
	m.SimulationRuns.WithLabelValues(s.Status).Inc()
	m.SimulationRunTime.Observe(s.Duration.Seconds())
	m.TicksAttempted.Add(float64(s.Attempted))
	m.ReadingsPersisted.Add(float64(s.Persisted))
	m.PersistFailures.Add(float64(s.Failed))
	for alert, n := range s.Alerts {
		m.ReadingsByAlert.WithLabelValues(alert).Add(float64(n))
	}
}

// ObserveUpdate counts a handled bot update.
func (m *Metrics) ObserveUpdate(kind string, err error) {
	if m == nil {
		return
	}
	m.BotUpdates.WithLabelValues(kind).Inc()
	if err != nil {
		m.BotUpdateErrors.Inc()
	}
}

// Handler returns the HTTP handler serving the default gatherer.
func Handler() http.Handler {
	return promhttp.Handler()
}
