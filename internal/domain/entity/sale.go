package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago aceptados.
const (
	PaymentMethodCash     = "CASH"
	PaymentMethodCard     = "CARD"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodOther    = "OTHER"
)

// ValidPaymentMethod indica si el método de pago es uno de los conocidos.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodTransfer, PaymentMethodOther:
		return true
	}
	return false
}

// Sale venta registrada en caja. SubTotal y TotalAmount se calculan siempre
// en el servidor; nunca se aceptan del cliente.
type Sale struct {
	ID            string
	CashierID     string
	LocationID    string
	CustomerID    *string
	PaymentMethod string
	TotalDiscount decimal.Decimal
	SubTotal      decimal.Decimal
	TotalAmount   decimal.Decimal
	SaleDate      time.Time
	Items         []SaleItem
}

// SaleItem línea de venta con el precio al momento de la operación.
type SaleItem struct {
	ID               string
	SaleID           string
	ProductVariantID string
	Quantity         int
	UnitPrice        decimal.Decimal
	Discount         decimal.Decimal
}

// ComputeTotals calcula SubTotal = Σ(unitPrice·quantity − discount) y
// TotalAmount = SubTotal − TotalDiscount sobre las líneas actuales.
func (s *Sale) ComputeTotals() {
	subTotal := decimal.Zero
	for _, it := range s.Items {
		line := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Sub(it.Discount)
		subTotal = subTotal.Add(line)
	}
	s.SubTotal = subTotal
	s.TotalAmount = subTotal.Sub(s.TotalDiscount)
}
