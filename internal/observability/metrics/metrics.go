package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propertydesk_http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"method", "path", "status"})

	httpRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "propertydesk_http_request_duration_seconds",
		Help:    "Duration of HTTP requests",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	storeSaveDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "propertydesk_store_save_duration_seconds",
		Help:    "Duration of full-document database writes",
		Buckets: prometheus.DefBuckets,
	})

	collectionRecords = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "propertydesk_collection_records",
		Help: "Number of records per collection after the last write",
	}, []string{"collection"})

	reminderEmails = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propertydesk_reminder_emails_total",
		Help: "Count of payment reminder emails by source and result",
	}, []string{"source", "result"})

	overdueRentals = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "propertydesk_overdue_rentals",
		Help: "Number of rentals currently past their paid-until date",
	})

	uploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "propertydesk_uploads_total",
		Help: "Count of file uploads by result",
	}, []string{"result"})
)

// ObserveHTTPRequest records an HTTP request metric.
func ObserveHTTPRequest(method, path, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
	httpRequestDuration.WithLabelValues(method, path, status).Observe(duration.Seconds())
}

// ObserveStoreSave records the duration of a database write.
func ObserveStoreSave(duration time.Duration) {
	storeSaveDuration.Observe(duration.Seconds())
}

// SetCollectionSizes updates the per-collection record gauges.
func SetCollectionSizes(sizes map[string]int) {
	for name, n := range sizes {
		collectionRecords.WithLabelValues(name).Set(float64(n))
	}
}

// ObserveReminder increments the reminder counter for the given source
// ("api" or "worker") and result.
func ObserveReminder(source, result string) {
	reminderEmails.WithLabelValues(source, result).Inc()
}

// SetOverdueRentals sets the overdue rental gauge.
func SetOverdueRentals(count int) {
	if count < 0 {
		count = 0
	}
	overdueRentals.Set(float64(count))
}

// ObserveUpload increments the upload counter.
func ObserveUpload(result string) {
	uploads.WithLabelValues(result).Inc()
}
