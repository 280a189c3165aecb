package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Telemetria-api/internal/application/ingestion"
)

var _ ingestion.Recorder = (*Metrics)(nil)

// Metrics colectores Prometheus del servicio, registrados en un registry propio.
type Metrics struct {
	registry        *prometheus.Registry
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
	signalsAccepted *prometheus.CounterVec
	signalsRejected *prometheus.CounterVec
}

// New crea y registra los colectores, incluidos los de runtime de Go y del proceso.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Peticiones HTTP atendidas por ruta, método y status.",
		}, []string{"route", "method", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP por ruta.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		signalsAccepted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "telemetry_signals_accepted_total",
			Help: "Señales guardadas por origen.",
		}, []string{"source"}),
		signalsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "telemetry_signals_rejected_total",
			Help: "Señales rechazadas por origen y motivo.",
		}, []string{"source", "reason"}),
	}
	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.httpRequests,
		m.httpDuration,
		m.signalsAccepted,
		m.signalsRejected,
	)
	return m
}

// SignalAccepted cuenta una señal guardada.
func (m *Metrics) SignalAccepted(source string) {
	if m == nil {
		return
	}
	m.signalsAccepted.WithLabelValues(source).Inc()
}

// SignalRejected cuenta una señal rechazada.
func (m *Metrics) SignalRejected(source, reason string) {
	if m == nil {
		return
	}
	m.signalsRejected.WithLabelValues(source, reason).Inc()
}

// Middleware mide cada petición Fiber usando la ruta registrada (no la URL) como etiqueta.
func (m *Metrics) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		m.httpRequests.WithLabelValues(route, c.Method(), strconv.Itoa(status)).Inc()
		m.httpDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
		return err
	}
}

// Handler expone el registry en formato de texto Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// Registry acceso al registry (tests y colectores adicionales).
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
