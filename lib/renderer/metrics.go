package renderer

import (
	"github.com/kadaan/linedensity/config"
	"github.com/kadaan/linedensity/lib/density"
	"github.com/kadaan/linedensity/lib/errors"
	"github.com/prometheus/client_golang/prometheus"
	"time"
)

const (
	namespace = "linedensity"
)

type metrics struct {
	registry *prometheus.Registry
	prepare  prometheus.Gauge
	folded   *prometheus.GaugeVec
	duration *prometheus.GaugeVec
	max      *prometheus.GaugeVec
	dssim    *prometheus.GaugeVec
}

func newMetrics() *metrics {
	m := &metrics{
		registry: prometheus.NewRegistry(),
		prepare: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "prepare_duration_seconds",
			Help:      "Time spent building the series of the run.",
		}),
		folded: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "series_folded",
			Help:      "Number of series folded into the density grid.",
		}, []string{"mode"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "density_duration_seconds",
			Help:      "Time spent computing the density grid.",
		}, []string{"mode"}),
		max: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "density_max",
			Help:      "Largest cell of the density grid.",
		}, []string{"mode"}),
		dssim: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "dssim",
			Help:      "Structural dissimilarity of a downsampled rendering against the full rendering.",
		}, []string{"mode"}),
	}
	m.registry.MustRegister(m.prepare, m.folded, m.duration, m.max, m.dssim)
	return m
}

func (m *metrics) observe(mode config.Mode, result *density.Result, elapsed time.Duration) {
	m.folded.WithLabelValues(string(mode)).Set(float64(result.Folded))
	m.duration.WithLabelValues(string(mode)).Set(elapsed.Seconds())
	m.max.WithLabelValues(string(mode)).Set(result.Grid.Max())
}

func (m *metrics) write(file string) error {
	if err := prometheus.WriteToTextfile(file, m.registry); err != nil {
		return errors.Wrap(err, "failed to write metrics to %s", file)
	}
	return nil
}
