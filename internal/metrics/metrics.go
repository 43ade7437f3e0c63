// AngelaMos | 2026
// metrics.go

package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "uni_events"

// Registry owns its own prometheus.Registry so tests can build as many
// as they like without duplicate-registration panics.
type Registry struct {
	reg *prometheus.Registry

	HTTPRequestsTotal    *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
	HTTPRequestsInFlight prometheus.Gauge

	EventsCreated *prometheus.CounterVec
	RSOsCreated   prometheus.Counter
	RSOApprovals  prometheus.Counter
	Logins        *prometheus.CounterVec
}

func New() *Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	f := promauto.With(reg)

	return &Registry{
		reg: reg,

		HTTPRequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests by route pattern, method and status code",
			},
			[]string{"route", "method", "status"},
		),
		HTTPRequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "http_request_duration_seconds",
				Help:      "HTTP request latency in seconds",
				Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
			},
			[]string{"route", "method"},
		),
		HTTPRequestsInFlight: f.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "http_requests_in_flight",
				Help:      "HTTP requests currently being served",
			},
		),

		EventsCreated: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "events_created_total",
				Help:      "Events created by visibility class",
			},
			[]string{"visibility"},
		),
		RSOsCreated: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rsos_created_total",
				Help:      "RSOs submitted for approval",
			},
		),
		RSOApprovals: f.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "rso_approvals_total",
				Help:      "RSOs moved from pending to approved",
			},
		),
		Logins: f.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "auth_logins_total",
				Help:      "Login attempts by result",
			},
			[]string{"result"},
		),
	}
}

func (m *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(m.reg, promhttp.HandlerOpts{Registry: m.reg})
}

func (m *Registry) Gatherer() prometheus.Gatherer {
	return m.reg
}

// The helpers below tolerate a nil receiver so services can be built
// without metrics in tests.

func (m *Registry) EventCreated(visibility string) {
	if m == nil {
		return
	}
	m.EventsCreated.WithLabelValues(visibility).Inc()
}

func (m *Registry) RSOCreated() {
	if m == nil {
		return
	}
	m.RSOsCreated.Inc()
}

func (m *Registry) RSOApproved() {
	if m == nil {
		return
	}
	m.RSOApprovals.Inc()
}

func (m *Registry) Login(success bool) {
	if m == nil {
		return
	}
	result := "failure"
	if success {
		result = "success"
	}
	m.Logins.WithLabelValues(result).Inc()
}
