package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra. RECEIVED es terminal.
const (
	PurchaseOrderStatusPending  = "PENDING"
	PurchaseOrderStatusReceived = "RECEIVED"
)

// PurchaseOrder orden de compra a un proveedor para una ubicación.
type PurchaseOrder struct {
	ID         string
	SupplierID string
	LocationID string
	Status     string
	CreatedAt  time.Time
	ReceivedAt *time.Time
	Items      []PurchaseOrderItem
}

// PurchaseOrderItem línea de una orden de compra.
// QuantityReceived acumula recepciones parciales (se incrementa, nunca se sobreescribe).
type PurchaseOrderItem struct {
	ID               string
	PurchaseOrderID  string
	ProductVariantID string
	QuantityOrdered  int
	QuantityReceived int
	UnitPrice        decimal.Decimal
}

// FindItem devuelve la línea con el ID dado, o nil si no pertenece a esta orden.
func (po *PurchaseOrder) FindItem(itemID string) *PurchaseOrderItem {
	for i := range po.Items {
		if po.Items[i].ID == itemID {
			return &po.Items[i]
		}
	}
	return nil
}
