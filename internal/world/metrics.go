package world

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics Prometheus-метрики стриминга чанков
type Metrics struct {
	loaded     prometheus.Counter
	unloaded   prometheus.Counter
	resident   prometheus.Gauge
	generation prometheus.Histogram
}

// NewMetrics создаёт метрики и регистрирует их в reg (если reg != nil)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		loaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "chunks_loaded_total",
			Help:      "Общее число загруженных чанков.",
		}),
		unloaded: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "chunks_unloaded_total",
			Help:      "Общее число выгруженных чанков.",
		}),
		resident: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "chunks_resident",
			Help:      "Количество чанков в индексе мира.",
		}),
		generation: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "voxel",
			Name:      "chunk_generation_seconds",
			Help:      "Время генерации одного чанка.",
			Buckets:   prometheus.ExponentialBuckets(0.00005, 2, 12),
		}),
	}

	if reg != nil {
		reg.MustRegister(m.loaded, m.unloaded, m.resident, m.generation)
	}
	return m
}

func (m *Metrics) observeLoad(seconds float64) {
	if m == nil {
		return
	}
	m.loaded.Inc()
	m.generation.Observe(seconds)
}

func (m *Metrics) observeUnload() {
	if m == nil {
		return
	}
	m.unloaded.Inc()
}

func (m *Metrics) setResident(n int) {
	if m == nil {
		return
	}
	m.resident.Set(float64(n))
}
