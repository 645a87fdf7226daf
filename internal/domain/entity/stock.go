package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLevel representa la cantidad actual de una variante en una ubicación
// (snapshot materializado, derivable del historial de movimientos).
// Se crea perezosamente con el primer movimiento sobre el par (variante, ubicación).
type StockLevel struct {
	ProductVariantID string
	LocationID       string
	Quantity         int
	UpdatedAt        time.Time
}

// StockLevelWithVariant snapshot enriquecido con variante y producto para listados por ubicación.
type StockLevelWithVariant struct {
	StockLevel
	SKU         string
	Price       decimal.Decimal
	ProductID   string
	ProductName string
}
