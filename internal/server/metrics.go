package server

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Metrics holds the Prometheus instruments for the register.
type Metrics struct {
	registry *prometheus.Registry

	requestDuration       *prometheus.HistogramVec
	transactionsCompleted *prometheus.CounterVec
	paymentsRecorded      *prometheus.CounterVec
}

// NewMetrics creates a registry with the register's instruments plus the
// standard Go and process collectors.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	factory := promauto.With(registry)
	return &Metrics{
		registry: registry,
		requestDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tillpoint_http_request_duration_seconds",
			Help:    "HTTP request latency by method and status.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "status"}),
		transactionsCompleted: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tillpoint_transactions_archived_total",
			Help: "Checked-out transactions, partitioned by whether they were fully paid.",
		}, []string{"fully_paid"}),
		paymentsRecorded: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tillpoint_payments_recorded_total",
			Help: "Tender entries recorded at checkout, by tender type.",
		}, []string{"tender"}),
	}
}

// Handler serves the /metrics endpoint.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveCheckout records one archived transaction and its payments.
func (m *Metrics) ObserveCheckout(fullyPaid bool, tenders []string) {
	m.transactionsCompleted.WithLabelValues(strconv.FormatBool(fullyPaid)).Inc()
	for _, tender := range tenders {
		m.paymentsRecorded.WithLabelValues(tender).Inc()
	}
}

// Instrument wraps an http.Handler with request duration observation.
func (m *Metrics) Instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		m.requestDuration.
			WithLabelValues(r.Method, strconv.Itoa(ww.Status())).
			Observe(time.Since(start).Seconds())
	})
}
