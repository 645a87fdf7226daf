package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest body para POST /api/products. Crea el producto y sus
// variantes en una sola operación; se exige al menos una variante.
type CreateProductRequest struct {
	Name           string                        `json:"name"`
	CategoryID     string                        `json:"categoryId"`
	UnitID         string                        `json:"unitId"`
	ManufacturerID *string                       `json:"manufacturerId,omitempty"`
	Variants       []CreateProductVariantRequest `json:"variants"`
}

// CreateProductVariantRequest variante a crear junto con el producto.
type CreateProductVariantRequest struct {
	SKU          string          `json:"sku"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel int             `json:"reorderLevel"`
	Attributes   map[string]any  `json:"attributes,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id (campos opcionales).
type UpdateProductRequest struct {
	Name           *string `json:"name,omitempty"`
	CategoryID     *string `json:"categoryId,omitempty"`
	UnitID         *string `json:"unitId,omitempty"`
	ManufacturerID *string `json:"manufacturerId,omitempty"`
}

// UpdateProductVariantRequest body para PUT /api/products/variants/:variantId.
type UpdateProductVariantRequest struct {
	SKU          *string          `json:"sku,omitempty"`
	Price        *decimal.Decimal `json:"price,omitempty"`
	ReorderLevel *int             `json:"reorderLevel,omitempty"`
	Attributes   map[string]any   `json:"attributes,omitempty"`
}

// ProductResponse producto con sus variantes.
type ProductResponse struct {
	ID             string                   `json:"id"`
	Name           string                   `json:"name"`
	CategoryID     string                   `json:"categoryId"`
	UnitID         string                   `json:"unitId"`
	ManufacturerID *string                  `json:"manufacturerId,omitempty"`
	CreatedAt      time.Time                `json:"createdAt"`
	UpdatedAt      time.Time                `json:"updatedAt"`
	Variants       []ProductVariantResponse `json:"variants"`
}

// ProductVariantResponse variante persistida.
type ProductVariantResponse struct {
	ID           string          `json:"id"`
	ProductID    string          `json:"productId"`
	SKU          string          `json:"sku"`
	Price        decimal.Decimal `json:"price"`
	ReorderLevel int             `json:"reorderLevel"`
	Attributes   map[string]any  `json:"attributes,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}
