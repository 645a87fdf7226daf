package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/stock/adjust.
// Quantity es con signo: negativo resta stock. ReferenceID es opcional;
// si falta se deriva del motivo.
type AdjustStockRequest struct {
	ProductVariantID string `json:"productVariantId"`
	LocationID       string `json:"locationId"`
	Quantity         int    `json:"quantity"`
	MovementType     string `json:"movementType"`
	Reason           string `json:"reason"`
	ReferenceID      string `json:"referenceId,omitempty"`
}

// StockLevelResponse snapshot actual de un par (variante, ubicación).
type StockLevelResponse struct {
	ProductVariantID string    `json:"productVariantId"`
	LocationID       string    `json:"locationId"`
	Quantity         int       `json:"quantity"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// StockMovementResponse registro del libro de movimientos.
type StockMovementResponse struct {
	ID               string    `json:"id"`
	ProductVariantID string    `json:"productVariantId"`
	LocationID       string    `json:"locationId"`
	Quantity         int       `json:"quantity"`
	MovementType     string    `json:"movementType"`
	ReferenceID      string    `json:"referenceId"`
	CreatedAt        time.Time `json:"createdAt"`
}

// AdjustStockResponse respuesta del ajuste manual: snapshot actualizado + movimiento creado.
type AdjustStockResponse struct {
	Message    string                `json:"message"`
	StockLevel StockLevelResponse    `json:"stockLevel"`
	Movement   StockMovementResponse `json:"movement"`
}

// LocationStockResponse snapshot enriquecido para GET /api/stock/location/:locationId.
type LocationStockResponse struct {
	ProductVariantID string          `json:"productVariantId"`
	LocationID       string          `json:"locationId"`
	Quantity         int             `json:"quantity"`
	UpdatedAt        time.Time       `json:"updatedAt"`
	SKU              string          `json:"sku"`
	Price            decimal.Decimal `json:"price"`
	ProductID        string          `json:"productId"`
	ProductName      string          `json:"productName"`
}
