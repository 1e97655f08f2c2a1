package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds Prometheus counters and gauges for the TRT service.
type Metrics struct {
	registry            *prometheus.Registry
	requestsTotal       prometheus.Counter
	errorsTotal         prometheus.Counter
	timelinesAddedTotal prometheus.Counter
	trimsRejectedTotal  *prometheus.CounterVec
	timelines           prometheus.Gauge
	totalRunningFrames  prometheus.Gauge
}

// New creates and registers Prometheus metrics for the service.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	requestsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trt_requests_total",
		Help: "Total number of HTTP requests received",
	})
	errorsTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trt_errors_total",
		Help: "Total number of HTTP responses with error status (4xx or 5xx)",
	})
	timelinesAddedTotal := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "trt_timelines_added_total",
		Help: "Total number of timelines added to the model",
	})
	trimsRejectedTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "trt_trims_rejected_total",
		Help: "Total number of trim settings rejected, by side (ffoa or lfoa)",
	}, []string{"side"})
	timelines := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trt_timelines",
		Help: "Number of timelines in the model",
	})
	totalRunningFrames := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "trt_total_running_frames",
		Help: "Total running time of all trimmed timelines, in frames",
	})

	registry.MustRegister(
		requestsTotal,
		errorsTotal,
		timelinesAddedTotal,
		trimsRejectedTotal,
		timelines,
		totalRunningFrames,
	)

	return &Metrics{
		registry:            registry,
		requestsTotal:       requestsTotal,
		errorsTotal:         errorsTotal,
		timelinesAddedTotal: timelinesAddedTotal,
		trimsRejectedTotal:  trimsRejectedTotal,
		timelines:           timelines,
		totalRunningFrames:  totalRunningFrames,
	}
}

// IncRequests increments the total request counter.
func (m *Metrics) IncRequests() {
	m.requestsTotal.Inc()
}

// IncErrors increments the errors counter.
func (m *Metrics) IncErrors() {
	m.errorsTotal.Inc()
}

// IncTimelinesAdded increments the timelines added counter.
func (m *Metrics) IncTimelinesAdded() {
	m.timelinesAddedTotal.Inc()
}

// IncTrimsRejected counts a rejected trim on side ("ffoa" or "lfoa").
func (m *Metrics) IncTrimsRejected(side string) {
	m.trimsRejectedTotal.WithLabelValues(side).Inc()
}

// SetTimelines sets the timelines gauge.
func (m *Metrics) SetTimelines(n int) {
	m.timelines.Set(float64(n))
}

// SetTotalRunningFrames sets the TRT gauge.
func (m *Metrics) SetTotalRunningFrames(frames int64) {
	m.totalRunningFrames.Set(float64(frames))
}

// Registry exposes the underlying registry, e.g. for gathering in tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns an http.Handler that serves Prometheus metrics.
// updateGauges is called before each scrape to refresh gauge values.
func (m *Metrics) Handler(updateGauges func()) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if updateGauges != nil {
			updateGauges()
		}
		promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}).ServeHTTP(w, r)
	})
}
