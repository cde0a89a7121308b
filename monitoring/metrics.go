package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	gatewayRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gateway_requests_total",
			Help: "Total backend gateway requests",
		},
		[]string{"operation", "status"},
	)

	gatewayDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gateway_request_duration_seconds",
			Help:    "Duration of backend gateway requests",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	imageUploads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "image_uploads_total",
			Help: "Total image host uploads",
		},
		[]string{"status"},
	)

	imageUploadDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "image_upload_duration_seconds",
			Help:    "Duration of image host uploads",
			Buckets: prometheus.ExponentialBuckets(0.1, 2, 10),
		},
	)

	viewRefreshes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "view_refreshes_total",
			Help: "Total view state refreshes per collection",
		},
		[]string{"collection", "status"},
	)

	activeSessions = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "active_view_sessions_total",
			Help: "Current number of live event view sessions",
		},
	)
)

// TrackGatewayRequest records one backend call.
func TrackGatewayRequest(operation, status string, duration time.Duration) {
	gatewayRequests.WithLabelValues(operation, status).Inc()
	gatewayDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// TrackImageUpload records one image host upload.
func TrackImageUpload(status string, duration time.Duration) {
	imageUploads.WithLabelValues(status).Inc()
	imageUploadDuration.Observe(duration.Seconds())
}

// TrackViewRefresh records a catalog/participation/notification refresh.
func TrackViewRefresh(collection, status string) {
	viewRefreshes.WithLabelValues(collection, status).Inc()
}

// TrackSessionOpened and TrackSessionClosed keep the live session gauge.
func TrackSessionOpened() { activeSessions.Inc() }

func TrackSessionClosed() { activeSessions.Dec() }
