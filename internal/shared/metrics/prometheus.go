package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the audit job metrics. Each Recorder owns its registry so
// tests and multiple schedulers do not collide on the default one.
type Recorder struct {
	Registry *prometheus.Registry

	runsTotal   *prometheus.CounterVec
	runDuration prometheus.Histogram
	findings    *prometheus.GaugeVec
	lastSuccess prometheus.Gauge
}

// NewRecorder creates and registers the audit metrics.
func NewRecorder() *Recorder {
	r := &Recorder{
		Registry: prometheus.NewRegistry(),
		runsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "idle_audit",
				Subsystem: "run",
				Name:      "total",
				Help:      "Total number of audit runs by result",
			},
			[]string{"result"},
		),
		runDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: "idle_audit",
				Subsystem: "run",
				Name:      "duration_seconds",
				Help:      "Duration of an audit run in seconds",
				Buckets:   []float64{1, 5, 10, 30, 60, 120, 300, 600},
			},
		),
		findings: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "idle_audit",
				Subsystem: "report",
				Name:      "findings",
				Help:      "Number of idle resources found in the last run by category",
			},
			[]string{"category"},
		),
		lastSuccess: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "idle_audit",
				Subsystem: "run",
				Name:      "last_success_timestamp_seconds",
				Help:      "Unix time of the last successful audit run",
			},
		),
	}
	r.Registry.MustRegister(r.runsTotal, r.runDuration, r.findings, r.lastSuccess)
	return r
}

// ObserveSuccess records a completed run and its per-category counts.
func (r *Recorder) ObserveSuccess(durationSeconds float64, finishedUnix float64, counts map[string]int) {
	r.runsTotal.WithLabelValues("success").Inc()
	r.runDuration.Observe(durationSeconds)
	r.lastSuccess.Set(finishedUnix)
	for category, n := range counts {
		r.findings.WithLabelValues(category).Set(float64(n))
	}
}

// ObserveFailure records an aborted run.
func (r *Recorder) ObserveFailure(durationSeconds float64) {
	r.runsTotal.WithLabelValues("failure").Inc()
	r.runDuration.Observe(durationSeconds)
}

// Handler exposes the recorder's registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.Registry, promhttp.HandlerOpts{})
}
