package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	TasksProcessed *prometheus.CounterVec
	Conversions    *prometheus.CounterVec
	LabelErrors    prometheus.Counter
	ExportSeconds  prometheus.Histogram
	ActiveWorkers  prometheus.Gauge
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		TasksProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meridian_export_tasks_processed_total",
			Help: "Total number of processed trajectory export tasks.",
		}, []string{"status"}),
		Conversions: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "meridian_coordinate_conversions_total",
			Help: "Total number of coordinate frame conversions.",
		}, []string{"direction"}),
		LabelErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "meridian_label_lookup_errors_total",
			Help: "Total number of errors received from the reverse geocoding provider.",
		}),
		ExportSeconds: promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
			Name:    "meridian_export_duration_seconds",
			Help:    "Duration of one export task: load, convert, render, write.",
			Buckets: prometheus.DefBuckets,
		}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "meridian_active_workers",
			Help: "Current number of active workers processing export tasks.",
		}),
	}
}
