package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics colectores Prometheus del servicio: HTTP y flujo de redistribución.
// Usa un registry propio para que varias instancias (tests) no choquen en el registry global.
type Metrics struct {
	Registry *prometheus.Registry
	service  string

	requests         *prometheus.CounterVec
	duration         *prometheus.HistogramVec
	statusCategory   *prometheus.CounterVec
	requestsCreated  *prometheus.CounterVec
	requestsDecided  *prometheus.CounterVec
	settlementFailed *prometheus.CounterVec
}

// New registra los colectores para el servicio indicado.
func New(service string) *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		service:  service,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total de peticiones HTTP",
		}, []string{"service", "method", "path", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP en segundos",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "path", "status"}),
		statusCategory: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_status_category_total",
			Help: "Respuestas por categoría de estado (2xx, 4xx, 5xx)",
		}, []string{"service", "category"}),
		requestsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redistribution_requests_created_total",
			Help: "Solicitudes de redistribución creadas",
		}, []string{"service", "direction", "origin"}),
		requestsDecided: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redistribution_requests_decided_total",
			Help: "Solicitudes aprobadas o rechazadas",
		}, []string{"service", "status"}),
		settlementFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "redistribution_settlement_failures_total",
			Help: "Aprobaciones revertidas durante la liquidación",
		}, []string{"service", "reason"}),
	}
	m.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.requests, m.duration, m.statusCategory,
		m.requestsCreated, m.requestsDecided, m.settlementFailed,
	)
	return m
}

// ObserveHTTP registra una petición atendida. path debe ser la ruta plantilla, no la URL concreta.
func (m *Metrics) ObserveHTTP(method, path string, status int, elapsed time.Duration) {
	statusStr := strconv.Itoa(status)
	m.requests.WithLabelValues(m.service, method, path, statusStr).Inc()
	m.duration.WithLabelValues(m.service, method, path, statusStr).Observe(elapsed.Seconds())
	if category := statusCategory(status); category != "" {
		m.statusCategory.WithLabelValues(m.service, category).Inc()
	}
}

func statusCategory(status int) string {
	switch {
	case status >= 200 && status < 300:
		return "2xx"
	case status >= 400 && status < 500:
		return "4xx"
	case status >= 500 && status < 600:
		return "5xx"
	}
	return ""
}

// RequestCreated origin: manual, surplus o auto.
func (m *Metrics) RequestCreated(direction, origin string) {
	m.requestsCreated.WithLabelValues(m.service, direction, origin).Inc()
}

// RequestDecided status: approved o rejected.
func (m *Metrics) RequestDecided(status string) {
	m.requestsDecided.WithLabelValues(m.service, status).Inc()
}

// SettlementFailed reason: insufficient_stock, conflict o error.
func (m *Metrics) SettlementFailed(reason string) {
	m.settlementFailed.WithLabelValues(m.service, reason).Inc()
}

// Handler expone el registry en formato Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
