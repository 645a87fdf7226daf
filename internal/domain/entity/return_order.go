package entity

import "time"

// Tipos de devolución.
const (
	ReturnTypeCustomer = "CUSTOMER" // el cliente devuelve: entra stock
	ReturnTypeSupplier = "SUPPLIER" // se devuelve al proveedor: sale stock
)

// ReturnOrder devolución de cliente o a proveedor. La ubicación del movimiento
// se deriva de la venta relacionada.
type ReturnOrder struct {
	ID              string
	ReturnType      string
	Reason          string
	SaleID          *string
	PurchaseOrderID *string
	Date            time.Time
	Items           []ReturnOrderItem
}

// ReturnOrderItem línea de una devolución.
type ReturnOrderItem struct {
	ID               string
	ReturnOrderID    string
	ProductVariantID string
	Quantity         int
}
