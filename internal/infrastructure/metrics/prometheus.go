// Package metrics expone contadores Prometheus de la API y del funil.
package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/jhoicas/flowboard-api/internal/application/ports"
)

// Recorder implementa ports.Metrics sobre un registro Prometheus.
type Recorder struct {
	httpRequests  *prometheus.CounterVec
	httpDuration  *prometheus.HistogramVec
	stageChanges  *prometheus.CounterVec
	regenerations *prometheus.CounterVec
	slotsInserted prometheus.Counter
}

var _ ports.Metrics = (*Recorder)(nil)

// NewRecorder registra los colectores en reg (prometheus.DefaultRegisterer en producción,
// un registro propio en tests).
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		httpRequests: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowboard_http_requests_total",
			Help: "Total de peticiones HTTP",
		}, []string{"method", "route", "status"}),
		httpDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "flowboard_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		stageChanges: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowboard_stage_changes_total",
			Help: "Cambios de etapa persistidos, por etapa destino",
		}, []string{"stage"}),
		regenerations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "flowboard_slot_regenerations_total",
			Help: "Ejecuciones de regeneración de horarios, por resultado",
		}, []string{"result"}),
		slotsInserted: f.NewCounter(prometheus.CounterOpts{
			Name: "flowboard_slots_inserted_total",
			Help: "Horarios insertados por regeneraciones exitosas",
		}),
	}
}

// StageChanged implementa ports.Metrics.
func (r *Recorder) StageChanged(stage string) {
	r.stageChanges.WithLabelValues(stage).Inc()
}

// RegenerationFinished implementa ports.Metrics.
func (r *Recorder) RegenerationFinished(result string, slots int) {
	r.regenerations.WithLabelValues(result).Inc()
	if slots > 0 {
		r.slotsInserted.Add(float64(slots))
	}
}

// Middleware mide cada petición. Usa la ruta registrada (no la URL) para acotar la cardinalidad.
func (r *Recorder) Middleware() fiber.Handler {
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
		r.httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		r.httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
