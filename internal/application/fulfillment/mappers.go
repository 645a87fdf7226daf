package fulfillment

import (
	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
)

func toStockLevelResponse(l *entity.StockLevel) dto.StockLevelResponse {
	return dto.StockLevelResponse{
		ProductVariantID: l.ProductVariantID,
		LocationID:       l.LocationID,
		Quantity:         l.Quantity,
		UpdatedAt:        l.UpdatedAt,
	}
}

func toStockMovementResponse(m *entity.StockMovement) dto.StockMovementResponse {
	return dto.StockMovementResponse{
		ID:               m.ID,
		ProductVariantID: m.ProductVariantID,
		LocationID:       m.LocationID,
		Quantity:         m.Quantity,
		MovementType:     m.MovementType,
		ReferenceID:      m.ReferenceID,
		CreatedAt:        m.CreatedAt,
	}
}

func toPurchaseOrderResponse(po *entity.PurchaseOrder) dto.PurchaseOrderResponse {
	items := make([]dto.PurchaseOrderItemResponse, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, dto.PurchaseOrderItemResponse{
			ID:               it.ID,
			ProductVariantID: it.ProductVariantID,
			QuantityOrdered:  it.QuantityOrdered,
			QuantityReceived: it.QuantityReceived,
			UnitPrice:        it.UnitPrice,
		})
	}
	return dto.PurchaseOrderResponse{
		ID:         po.ID,
		SupplierID: po.SupplierID,
		LocationID: po.LocationID,
		Status:     po.Status,
		CreatedAt:  po.CreatedAt,
		ReceivedAt: po.ReceivedAt,
		Items:      items,
	}
}

func toSaleResponse(s *entity.Sale) dto.SaleResponse {
	items := make([]dto.SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, dto.SaleItemResponse{
			ID:               it.ID,
			ProductVariantID: it.ProductVariantID,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			Discount:         it.Discount,
		})
	}
	return dto.SaleResponse{
		ID:            s.ID,
		CashierID:     s.CashierID,
		LocationID:    s.LocationID,
		CustomerID:    s.CustomerID,
		PaymentMethod: s.PaymentMethod,
		TotalDiscount: s.TotalDiscount,
		SubTotal:      s.SubTotal,
		TotalAmount:   s.TotalAmount,
		SaleDate:      s.SaleDate,
		Items:         items,
	}
}

func toReturnOrderResponse(r *entity.ReturnOrder) dto.ReturnOrderResponse {
	items := make([]dto.ReturnOrderItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, dto.ReturnOrderItemResponse{
			ID:               it.ID,
			ProductVariantID: it.ProductVariantID,
			Quantity:         it.Quantity,
		})
	}
	return dto.ReturnOrderResponse{
		ID:              r.ID,
		ReturnType:      r.ReturnType,
		Reason:          r.Reason,
		SaleID:          r.SaleID,
		PurchaseOrderID: r.PurchaseOrderID,
		Date:            r.Date,
		Items:           items,
	}
}
