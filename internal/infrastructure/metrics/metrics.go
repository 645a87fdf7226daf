// Package metrics expone contadores Prometheus del motor de fulfillment.
package metrics

import (
	"github.com/jcastro/stockflow-api/internal/application/fulfillment"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var _ fulfillment.Metrics = (*PrometheusMetrics)(nil)

// PrometheusMetrics implementación de fulfillment.Metrics sobre el registry global.
type PrometheusMetrics struct {
	movementsTotal  *prometheus.CounterVec
	operationErrors *prometheus.CounterVec
}

// New registra los contadores y devuelve la implementación.
func New() *PrometheusMetrics {
	return &PrometheusMetrics{
		movementsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockflow",
			Name:      "stock_movements_total",
			Help:      "Movimientos de stock registrados, por tipo.",
		}, []string{"movement_type"}),
		operationErrors: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "stockflow",
			Name:      "fulfillment_errors_total",
			Help:      "Operaciones de fulfillment fallidas, por operación.",
		}, []string{"operation"}),
	}
}

func (m *PrometheusMetrics) MovementRecorded(movementType string) {
	m.movementsTotal.WithLabelValues(movementType).Inc()
}

func (m *PrometheusMetrics) OperationFailed(operation string) {
	m.operationErrors.WithLabelValues(operation).Inc()
}
