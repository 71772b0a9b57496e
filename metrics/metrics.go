package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the service collectors and the registry they are exposed from.
type Metrics struct {
	registry *prometheus.Registry

	requestCounter *prometheus.CounterVec
	requestLatency *prometheus.HistogramVec
	remindersSent  *prometheus.CounterVec
}

func New() *Metrics {
	requestCounter := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nmalls_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	requestLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "nmalls_http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	remindersSent := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "nmalls_reminders_total",
			Help: "Reminder delivery attempts by channel and outcome",
		},
		[]string{"canal", "status"},
	)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	registry.MustRegister(requestCounter)
	registry.MustRegister(requestLatency)
	registry.MustRegister(remindersSent)

	return &Metrics{
		registry:       registry,
		requestCounter: requestCounter,
		requestLatency: requestLatency,
		remindersSent:  remindersSent,
	}
}

// Middleware records count and latency per route template.
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		endpoint := c.FullPath()
		if endpoint == "" {
			endpoint = "unmatched"
		}
		m.requestLatency.WithLabelValues(c.Request.Method, endpoint).Observe(time.Since(start).Seconds())
		m.requestCounter.WithLabelValues(c.Request.Method, endpoint, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

// ReminderSent counts one reminder attempt.
func (m *Metrics) ReminderSent(canal, status string) {
	m.remindersSent.WithLabelValues(canal, status).Inc()
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
