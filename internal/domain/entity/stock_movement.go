package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypePurchaseReceipt = "PURCHASE_RECEIPT" // recepción de orden de compra
	MovementTypeSale            = "SALE"             // venta
	MovementTypeCustomerReturn  = "CUSTOMER_RETURN"  // devolución de cliente (entra stock)
	MovementTypeSupplierReturn  = "SUPPLIER_RETURN"  // devolución a proveedor (sale stock)
	MovementTypeAdjustment      = "ADJUSTMENT"       // ajuste manual
)

// ValidMovementType indica si el tipo de movimiento es uno de los conocidos.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypePurchaseReceipt, MovementTypeSale, MovementTypeCustomerReturn,
		MovementTypeSupplierReturn, MovementTypeAdjustment:
		return true
	}
	return false
}

// StockMovement registro inmutable y append-only del libro de movimientos.
// Invariante: la suma de Quantity de todos los movimientos de un par
// (variante, ubicación) es igual al StockLevel.Quantity de ese par.
type StockMovement struct {
	ID               string
	ProductVariantID string
	LocationID       string
	Quantity         int // positivo = entrada, negativo = salida
	MovementType     string
	ReferenceID      string // documento que originó el movimiento
	CreatedAt        time.Time
}
