package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Enrollment outcomes
const (
	EnrollmentSucceeded   = "enrolled"
	EnrollmentDuplicate   = "duplicate"
	EnrollmentUnavailable = "unavailable"
	EnrollmentFull        = "full"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mindforge", Name: "http_requests_total", Help: "Handled HTTP requests",
	}, []string{"method", "route", "status"})

	HTTPDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "mindforge", Name: "http_request_duration_seconds", Help: "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	Enrollments = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "mindforge", Name: "enrollments_total", Help: "Enrollment attempts by outcome",
	}, []string{"outcome"})

	CommunicationsSent = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "mindforge", Name: "communications_sent_total", Help: "Communications transitioned to SENT",
	})

	WebsocketClients = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "mindforge", Name: "websocket_clients", Help: "Connected notification clients",
	})

	DBPing = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "mindforge", Name: "db_ping_seconds", Help: "DB ping latency",
		Buckets: prometheus.DefBuckets,
	})
)

func init() {
	prometheus.MustRegister(HTTPRequests, HTTPDuration, Enrollments, CommunicationsSent, WebsocketClients, DBPing)
}

func Handler() http.Handler { return promhttp.Handler() }

// ObserveRequest records one finished HTTP request
func ObserveRequest(method, route string, status int, d time.Duration) {
	if route == "" {
		route = "unmatched"
	}
	HTTPRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	HTTPDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

func ObserveEnrollment(outcome string) { Enrollments.WithLabelValues(outcome).Inc() }

func ObserveDBPing(d time.Duration) { DBPing.Observe(d.Seconds()) }
