// Package metrics exposes Prometheus counters for the export pipeline and
// an HTTP middleware for the API server.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	leadsProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "export_leads_processed_total",
			Help: "Leads processed by reconciliation outcome",
		},
		[]string{"outcome"},
	)

	batchesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "export_batches_total",
			Help: "Export batches by final status",
		},
		[]string{"status"},
	)

	campaignsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "export_campaigns_created_total",
			Help: "Campaigns auto-created during export",
		},
	)
)

// RecordLead counts one reconciled lead by outcome (inserted, updated,
// rejected).
func RecordLead(outcome string) {
	leadsProcessed.WithLabelValues(outcome).Inc()
}

// RecordBatch counts one finished batch by status (success, partial, failed).
func RecordBatch(status string) {
	batchesTotal.WithLabelValues(status).Inc()
}

// RecordCampaignCreated counts one auto-created campaign.
func RecordCampaignCreated() {
	campaignsCreated.Inc()
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// Middleware records request counts and latencies for every route.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, strconv.Itoa(rw.statusCode)).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(time.Since(start).Seconds())
	})
}
