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

// ProcessReturn crea la devolución con sus líneas y mueve stock según el tipo:
// CUSTOMER entra stock (CUSTOMER_RETURN, positivo), SUPPLIER sale stock
// (SUPPLIER_RETURN, negativo). La ubicación se deriva de la venta relacionada;
// sin venta que la fije, la operación falla antes de tocar stock.
func (uc *UseCase) ProcessReturn(ctx context.Context, in dto.CreateReturnOrderRequest) (*dto.ReturnOrderResponse, error) {
	if in.ReturnType != entity.ReturnTypeCustomer && in.ReturnType != entity.ReturnTypeSupplier {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductVariantID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	if in.SaleID == nil || *in.SaleID == "" {
		return nil, domain.ErrLocationUnresolved
	}
	sale, err := uc.saleRepo.GetByID(*in.SaleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	locationID := sale.LocationID

	now := time.Now()
	ret := &entity.ReturnOrder{
		ID:              uuid.New().String(),
		ReturnType:      in.ReturnType,
		Reason:          in.Reason,
		SaleID:          in.SaleID,
		PurchaseOrderID: in.PurchaseOrderID,
		Date:            now,
	}
	for _, it := range in.Items {
		ret.Items = append(ret.Items, entity.ReturnOrderItem{
			ID:               uuid.New().String(),
			ReturnOrderID:    ret.ID,
			ProductVariantID: it.ProductVariantID,
			Quantity:         it.Quantity,
		})
	}

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
		txReturnRepo repository.ReturnOrderRepository,
	) error {
		if err := txReturnRepo.CreateWithItems(ret); err != nil {
			return err
		}
		for _, it := range ret.Items {
			qty := it.Quantity
			movementType := entity.MovementTypeCustomerReturn
			if ret.ReturnType == entity.ReturnTypeSupplier {
				qty = -qty
				movementType = entity.MovementTypeSupplierReturn
			}
			if _, _, err := recordMovement(stockRepo, movRepo, movementIntent{
				ProductVariantID: it.ProductVariantID,
				LocationID:       locationID,
				Quantity:         qty,
				MovementType:     movementType,
				ReferenceID:      ret.ID,
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.metrics.OperationFailed("process_return")
		return nil, err
	}
	if ret.ReturnType == entity.ReturnTypeCustomer {
		uc.metrics.MovementRecorded(entity.MovementTypeCustomerReturn)
	} else {
		uc.metrics.MovementRecorded(entity.MovementTypeSupplierReturn)
	}

	resp := toReturnOrderResponse(ret)
	return &resp, nil
}
