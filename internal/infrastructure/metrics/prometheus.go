// Package metrics expone métricas Prometheus del motor de exportación.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Nombres de métricas.
const (
	MetricPagesRasterized = "print_pages_rasterized_total"
	MetricExportsTotal    = "print_exports_total"
	MetricExportDuration  = "print_export_duration_seconds"
)

// Resultados de una exportación.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Recorder registra métricas en un registro propio para no chocar con el global.
// Seguro para uso concurrente.
type Recorder struct {
	registry        *prometheus.Registry
	pagesRasterized *prometheus.CounterVec
	exports         *prometheus.CounterVec
	duration        *prometheus.HistogramVec
}

// NewRecorder crea y registra las métricas.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		pagesRasterized: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricPagesRasterized,
			Help: "Páginas rasterizadas por tipo de documento.",
		}, []string{"kind"}),
		exports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricExportsTotal,
			Help: "Exportaciones por tipo, formato y resultado.",
		}, []string{"kind", "format", "result"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricExportDuration,
			Help:    "Duración de la exportación completa.",
			Buckets: []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
		}, []string{"kind", "format"}),
	}
	r.registry.MustRegister(r.pagesRasterized, r.exports, r.duration,
		collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	return r
}

// PageRasterized cuenta una página rasterizada.
func (r *Recorder) PageRasterized(kind string) {
	r.pagesRasterized.WithLabelValues(kind).Inc()
}

// ExportFinished registra el resultado y la duración de una exportación.
func (r *Recorder) ExportFinished(kind, format string, elapsed time.Duration, err error) {
	result := ResultOK
	if err != nil {
		result = ResultError
	}
	r.exports.WithLabelValues(kind, format, result).Inc()
	r.duration.WithLabelValues(kind, format).Observe(elapsed.Seconds())
}

// Handler endpoint de scraping.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{Registry: r.registry})
}

// Registry registro subyacente (tests).
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }
