package fulfillment

import (
	"context"

	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad para las operaciones de fulfillment:
// o se persisten todas las mutaciones (documento + snapshot + libro) o ninguna.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		poRepo repository.PurchaseOrderRepository,
		saleRepo repository.SaleRepository,
		returnRepo repository.ReturnOrderRepository,
	) error) error
}

// Metrics contadores del motor de fulfillment. La implementación Prometheus
// vive en infraestructura; NopMetrics sirve para tests.
type Metrics interface {
	MovementRecorded(movementType string)
	OperationFailed(operation string)
}

// NopMetrics implementación vacía de Metrics.
type NopMetrics struct{}

func (NopMetrics) MovementRecorded(string) {}
func (NopMetrics) OperationFailed(string)  {}
