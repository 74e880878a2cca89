package observability

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics implements uaparser.Observer. Match errors get their own
// counter so engine-internal failures, which the core silently downgrades
// to no-match, stay visible to operators.
type Metrics struct {
	parsesTotal      *prometheus.CounterVec
	matchErrorsTotal *prometheus.CounterVec
	parseDuration    *prometheus.HistogramVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		parsesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "uaclassify_parses_total", Help: "Total parse calls"},
			[]string{"domain", "outcome"},
		),
		matchErrorsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{Name: "uaclassify_match_errors_total", Help: "Total rule evaluations downgraded to no-match after an engine-internal error"},
			[]string{"domain"},
		),
		parseDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "uaclassify_parse_duration_seconds",
				Help:    "Parse duration in seconds",
				Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
			},
			[]string{"domain"},
		),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.parsesTotal,
		m.matchErrorsTotal,
		m.parseDuration,
	)

	return m
}

func (m *Metrics) Handler(reg *prometheus.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{})
}

func (m *Metrics) ObserveParse(domain string, matched bool, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := "miss"
	if matched {
		outcome = "match"
	}
	m.parsesTotal.WithLabelValues(domain, outcome).Inc()
	m.parseDuration.WithLabelValues(domain).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveMatchError(domain string) {
	if m == nil {
		return
	}
	m.matchErrorsTotal.WithLabelValues(domain).Inc()
}
