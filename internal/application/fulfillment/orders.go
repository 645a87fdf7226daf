package fulfillment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

// CreatePurchaseOrder crea una orden de compra PENDING con sus líneas.
// La orden y sus líneas se persisten como una unidad dentro de una transacción;
// no mueve stock: eso ocurre al recibirla.
func (uc *UseCase) CreatePurchaseOrder(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if in.SupplierID == "" || in.LocationID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductVariantID == "" || it.QuantityOrdered <= 0 || !it.UnitPrice.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
	}

	supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
	if err != nil {
		return nil, err
	}
	loc, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if supplier == nil || loc == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: in.SupplierID,
		LocationID: in.LocationID,
		Status:     entity.PurchaseOrderStatusPending,
		CreatedAt:  now,
	}
	for _, it := range in.Items {
		po.Items = append(po.Items, entity.PurchaseOrderItem{
			ID:               uuid.New().String(),
			PurchaseOrderID:  po.ID,
			ProductVariantID: it.ProductVariantID,
			QuantityOrdered:  it.QuantityOrdered,
			UnitPrice:        it.UnitPrice,
		})
	}

	err = uc.txRunner.Run(ctx, func(
		_ repository.StockLevelRepository,
		_ repository.StockMovementRepository,
		txPORepo repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
		_ repository.ReturnOrderRepository,
	) error {
		return txPORepo.CreateWithItems(po)
	})
	if err != nil {
		return nil, err
	}

	resp := toPurchaseOrderResponse(po)
	return &resp, nil
}

// GetPurchaseOrder devuelve una orden de compra con sus líneas, o nil si no existe.
func (uc *UseCase) GetPurchaseOrder(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.poRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, nil
	}
	resp := toPurchaseOrderResponse(po)
	return &resp, nil
}

// ListPurchaseOrders lista órdenes de compra, más reciente primero.
func (uc *UseCase) ListPurchaseOrders(ctx context.Context, limit, offset int) ([]dto.PurchaseOrderResponse, error) {
	list, err := uc.poRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, toPurchaseOrderResponse(po))
	}
	return out, nil
}

// GetSale devuelve una venta con sus líneas, o nil si no existe.
func (uc *UseCase) GetSale(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, nil
	}
	resp := toSaleResponse(sale)
	return &resp, nil
}

// ListSales lista ventas, más reciente primero.
func (uc *UseCase) ListSales(ctx context.Context, limit, offset int) ([]dto.SaleResponse, error) {
	list, err := uc.saleRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		out = append(out, toSaleResponse(s))
	}
	return out, nil
}

// ListReturnOrders lista devoluciones, más reciente primero.
func (uc *UseCase) ListReturnOrders(ctx context.Context, limit, offset int) ([]dto.ReturnOrderResponse, error) {
	list, err := uc.returnRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReturnOrderResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toReturnOrderResponse(r))
	}
	return out, nil
}
