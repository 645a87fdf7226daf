package repository

import (
	"time"

	"github.com/jcastro/stockflow-api/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra.
// CreateWithItems persiste la orden y sus líneas como una unidad (dentro de la
// transacción a la que esté atado el repositorio).
type PurchaseOrderRepository interface {
	CreateWithItems(po *entity.PurchaseOrder) error
	GetByID(id string) (*entity.PurchaseOrder, error)
	List(limit, offset int) ([]*entity.PurchaseOrder, error)
	// IncrementItemReceived acumula cantidad recibida en la línea (suma, no sobreescribe).
	IncrementItemReceived(itemID string, quantity int) error
	MarkReceived(id string, receivedAt time.Time) error
}
