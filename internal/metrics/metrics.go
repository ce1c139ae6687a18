package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const prefix = "island_formulator"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    prefix + "_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	AuthAttemptsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_auth_attempts_total",
			Help: "Login and signup attempts by outcome",
		},
		[]string{"kind", "outcome"},
	)

	RecipeSavesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: prefix + "_recipe_saves_total",
			Help: "Recipe create and update attempts by outcome",
		},
		[]string{"operation", "outcome"},
	)

	PhotoUploadBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    prefix + "_photo_upload_bytes",
			Help:    "Size of accepted photo uploads",
			Buckets: prometheus.ExponentialBuckets(16<<10, 4, 6),
		},
	)
)

// ObserveRequest records one finished HTTP request.
func ObserveRequest(method, path, status string, started time.Time) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path, status).Observe(time.Since(started).Seconds())
}

func RecordAuthAttempt(kind, outcome string) {
	AuthAttemptsTotal.WithLabelValues(kind, outcome).Inc()
}

func RecordRecipeSave(operation, outcome string) {
	RecipeSavesTotal.WithLabelValues(operation, outcome).Inc()
}

func RecordPhotoUpload(size int64) {
	PhotoUploadBytes.Observe(float64(size))
}
