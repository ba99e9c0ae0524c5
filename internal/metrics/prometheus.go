package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Notification metrics
	NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradenotify_notifications_total",
			Help: "Total number of outbound Telegram notifications",
		},
		[]string{"kind", "status"}, // kind: text|trade_execution, status: success|error
	)

	NotificationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradenotify_notification_latency_seconds",
			Help:    "Outbound Telegram send latency in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		},
		[]string{"kind"},
	)

	// HTTP metrics
	HTTPRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tradenotify_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "tradenotify_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"route"},
	)
)

// Init registers all metrics with Prometheus
func Init() {
	prometheus.MustRegister(NotificationsSent)
	prometheus.MustRegister(NotificationLatency)
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(HTTPRequestDuration)
}

// Handler returns Prometheus HTTP handler
func Handler() http.Handler {
	return promhttp.Handler()
}

// RecordNotification records an outbound notification attempt
func RecordNotification(kind string, latency time.Duration, err error) {
	status := "success"
	if err != nil {
		status = "error"
	}

	NotificationsSent.WithLabelValues(kind, status).Inc()
	NotificationLatency.WithLabelValues(kind).Observe(latency.Seconds())
}

// RecordHTTPRequest records a served HTTP request
func RecordHTTPRequest(route string, status int, duration time.Duration) {
	HTTPRequests.WithLabelValues(route, strconv.Itoa(status)).Inc()
	HTTPRequestDuration.WithLabelValues(route).Observe(duration.Seconds())
}
