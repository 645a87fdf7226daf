package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product producto del catálogo; el stock se controla por variante, no por producto.
type Product struct {
	ID             string
	Name           string
	CategoryID     string
	UnitID         string
	ManufacturerID *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Variants       []ProductVariant
}

// ProductVariant configuración vendible de un producto (talla, color, etc.).
// Attributes guarda el detalle como JSON libre: {"color": "rojo"}.
type ProductVariant struct {
	ID           string
	ProductID    string
	SKU          string
	Price        decimal.Decimal
	ReorderLevel int
	Attributes   map[string]any
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
