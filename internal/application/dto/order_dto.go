package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseOrderRequest body para POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID string                           `json:"supplierId"`
	LocationID string                           `json:"locationId"`
	Items      []CreatePurchaseOrderItemRequest `json:"items"`
}

// CreatePurchaseOrderItemRequest línea solicitada al proveedor.
type CreatePurchaseOrderItemRequest struct {
	ProductVariantID string          `json:"productVariantId"`
	QuantityOrdered  int             `json:"quantityOrdered"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
}

// ReceivePurchaseOrderRequest body para POST /api/purchase-orders/:id/receive.
type ReceivePurchaseOrderRequest struct {
	Items []ReceivePurchaseOrderItemRequest `json:"items"`
}

// ReceivePurchaseOrderItemRequest recepción de una línea concreta de la orden.
type ReceivePurchaseOrderItemRequest struct {
	PurchaseOrderItemID string `json:"purchaseOrderItemId"`
	QuantityReceived    int    `json:"quantityReceived"`
}

// PurchaseOrderResponse orden de compra con sus líneas.
type PurchaseOrderResponse struct {
	ID         string                      `json:"id"`
	SupplierID string                      `json:"supplierId"`
	LocationID string                      `json:"locationId"`
	Status     string                      `json:"status"`
	CreatedAt  time.Time                   `json:"createdAt"`
	ReceivedAt *time.Time                  `json:"receivedAt,omitempty"`
	Items      []PurchaseOrderItemResponse `json:"items"`
}

// PurchaseOrderItemResponse línea de la orden con lo acumulado recibido.
type PurchaseOrderItemResponse struct {
	ID               string          `json:"id"`
	ProductVariantID string          `json:"productVariantId"`
	QuantityOrdered  int             `json:"quantityOrdered"`
	QuantityReceived int             `json:"quantityReceived"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
}

// CreateSaleRequest body para POST /api/sales. Los totales del cliente se ignoran:
// el servidor siempre los recalcula.
type CreateSaleRequest struct {
	CashierID     string                  `json:"cashierId"`
	LocationID    string                  `json:"locationId"`
	CustomerID    *string                 `json:"customerId,omitempty"`
	PaymentMethod string                  `json:"paymentMethod"`
	TotalDiscount decimal.Decimal         `json:"totalDiscount"`
	Items         []CreateSaleItemRequest `json:"items"`
}

// CreateSaleItemRequest línea de venta.
type CreateSaleItemRequest struct {
	ProductVariantID string          `json:"productVariantId"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Discount         decimal.Decimal `json:"discount"`
}

// SaleResponse venta con totales calculados por el servidor.
type SaleResponse struct {
	ID            string             `json:"id"`
	CashierID     string             `json:"cashierId"`
	LocationID    string             `json:"locationId"`
	CustomerID    *string            `json:"customerId,omitempty"`
	PaymentMethod string             `json:"paymentMethod"`
	TotalDiscount decimal.Decimal    `json:"totalDiscount"`
	SubTotal      decimal.Decimal    `json:"subTotal"`
	TotalAmount   decimal.Decimal    `json:"totalAmount"`
	SaleDate      time.Time          `json:"saleDate"`
	Items         []SaleItemResponse `json:"items"`
}

// SaleItemResponse línea de venta persistida.
type SaleItemResponse struct {
	ID               string          `json:"id"`
	ProductVariantID string          `json:"productVariantId"`
	Quantity         int             `json:"quantity"`
	UnitPrice        decimal.Decimal `json:"unitPrice"`
	Discount         decimal.Decimal `json:"discount"`
}

// CreateReturnOrderRequest body para POST /api/returns.
type CreateReturnOrderRequest struct {
	ReturnType      string                         `json:"returnType"`
	Reason          string                         `json:"reason,omitempty"`
	SaleID          *string                        `json:"saleId,omitempty"`
	PurchaseOrderID *string                        `json:"purchaseOrderId,omitempty"`
	Items           []CreateReturnOrderItemRequest `json:"items"`
}

// CreateReturnOrderItemRequest línea de devolución.
type CreateReturnOrderItemRequest struct {
	ProductVariantID string `json:"productVariantId"`
	Quantity         int    `json:"quantity"`
}

// ReturnOrderResponse devolución con sus líneas.
type ReturnOrderResponse struct {
	ID              string                    `json:"id"`
	ReturnType      string                    `json:"returnType"`
	Reason          string                    `json:"reason,omitempty"`
	SaleID          *string                   `json:"saleId,omitempty"`
	PurchaseOrderID *string                   `json:"purchaseOrderId,omitempty"`
	Date            time.Time                 `json:"date"`
	Items           []ReturnOrderItemResponse `json:"items"`
}

// ReturnOrderItemResponse línea de devolución persistida.
type ReturnOrderItemResponse struct {
	ID               string `json:"id"`
	ProductVariantID string `json:"productVariantId"`
	Quantity         int    `json:"quantity"`
}
