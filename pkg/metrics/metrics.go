package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics набор метрик сервиса
// Каждый экземпляр использует собственный registry, поэтому может создаваться в тестах многократно
type Metrics struct {
	registry *prometheus.Registry

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec

	upstreamCalls    *prometheus.CounterVec
	upstreamDuration *prometheus.HistogramVec

	transitions *prometheus.CounterVec
	rejections  *prometheus.CounterVec
}

// New создает и регистрирует метрики с префиксом serviceName
func New(serviceName string) *Metrics {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: registry,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		upstreamCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "upstream_calls_total",
			Help:      "Total number of salon API calls",
		}, []string{"operation", "outcome"}),
		upstreamDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: serviceName,
			Name:      "upstream_call_duration_seconds",
			Help:      "Salon API call duration in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "appointment_transitions_total",
			Help:      "Appointment status transitions applied",
		}, []string{"from", "to", "role"}),
		rejections: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: serviceName,
			Name:      "local_rejections_total",
			Help:      "Mutations rejected locally before reaching the salon API",
		}, []string{"operation", "kind"}),
	}

	registry.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.upstreamCalls,
		m.upstreamDuration,
		m.transitions,
		m.rejections,
	)

	return m
}

// Handler возвращает http.Handler для эндпоинта /metrics
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry возвращает registry (для тестов и дополнительных коллекторов)
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveHTTPRequest фиксирует обработанный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// ObserveUpstreamCall фиксирует вызов salon API
func (m *Metrics) ObserveUpstreamCall(operation string, err error, duration time.Duration) {
	outcome := "success"
	if err != nil {
		outcome = "error"
	}
	m.upstreamCalls.WithLabelValues(operation, outcome).Inc()
	m.upstreamDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// IncTransition фиксирует применённый переход статуса записи
func (m *Metrics) IncTransition(from, to, role string) {
	m.transitions.WithLabelValues(from, to, role).Inc()
}

// IncRejection фиксирует локальный отказ до обращения к salon API
func (m *Metrics) IncRejection(operation, kind string) {
	m.rejections.WithLabelValues(operation, kind).Inc()
}
