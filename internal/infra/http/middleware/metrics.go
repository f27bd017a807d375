package middleware

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

	activeConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_connections",
			Help: "Number of active HTTP connections",
		},
	)

	messagesReceived = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_messages_received_total",
			Help: "Total number of inbound WhatsApp messages accepted",
		},
	)

	messagesIgnored = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_messages_ignored_total",
			Help: "Total number of inbound messages with no matching trigger",
		},
	)

	followupsSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bot_followups_sent_total",
			Help: "Total number of follow-up messages sent",
		},
	)

	botErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bot_errors_total",
			Help: "Total number of bot processing errors by stage",
		},
		[]string{"stage"},
	)
)

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func Metrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		activeConnections.Inc()
		defer activeConnections.Dec()

		rw := &responseWriter{
			ResponseWriter: w,
			statusCode:     http.StatusOK,
		}

		next.ServeHTTP(rw, r)

		duration := time.Since(start).Seconds()
		status := strconv.Itoa(rw.statusCode)

		httpRequestsTotal.WithLabelValues(r.Method, r.URL.Path, status).Inc()
		httpRequestDuration.WithLabelValues(r.Method, r.URL.Path).Observe(duration)
	})
}

func RecordMessageReceived() {
	messagesReceived.Inc()
}

func RecordMessageIgnored() {
	messagesIgnored.Inc()
}

func RecordFollowupSent() {
	followupsSent.Inc()
}

func RecordBotError(stage string) {
	botErrors.WithLabelValues(stage).Inc()
}
