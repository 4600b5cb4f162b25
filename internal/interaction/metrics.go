package interaction

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics счетчики исходов кликов
type Metrics struct {
	outcomes *prometheus.CounterVec
	placed   prometheus.Gauge
}

// NewMetrics создаёт метрики и регистрирует их в reg (если reg != nil)
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		outcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "voxel",
			Name:      "interactions_total",
			Help:      "Клики по миру по исходу.",
		}, []string{"outcome"}),
		placed: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "voxel",
			Name:      "placed_blocks",
			Help:      "Количество свободно поставленных блоков.",
		}),
	}

	if reg != nil {
		reg.MustRegister(m.outcomes, m.placed)
	}
	return m
}

func (m *Metrics) observe(outcome Outcome, placed int) {
	if m == nil {
		return
	}
	m.outcomes.WithLabelValues(outcome.String()).Inc()
	m.placed.Set(float64(placed))
}
