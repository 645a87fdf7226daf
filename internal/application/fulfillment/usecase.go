package fulfillment

import (
	"context"
	"fmt"
	"time"

	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

// UseCase agrupa las cuatro operaciones de fulfillment que mutan stock como
// efecto de un documento de negocio: ajuste manual, recepción de orden de
// compra, venta y devolución. Cada operación corre dentro de una transacción
// (TxRunner) con Commit/Rollback todo-o-nada.
type UseCase struct {
	txRunner     TxRunner
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	supplierRepo repository.SupplierRepository
	poRepo       repository.PurchaseOrderRepository
	saleRepo     repository.SaleRepository
	returnRepo   repository.ReturnOrderRepository
	metrics      Metrics
}

// NewUseCase construye el caso de uso. Los repos recibidos aquí van atados al
// pool (lecturas y validaciones); las escrituras usan los repos de la tx.
func NewUseCase(
	txRunner TxRunner,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	supplierRepo repository.SupplierRepository,
	poRepo repository.PurchaseOrderRepository,
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnOrderRepository,
	metrics Metrics,
) *UseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &UseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		supplierRepo: supplierRepo,
		poRepo:       poRepo,
		saleRepo:     saleRepo,
		returnRepo:   returnRepo,
		metrics:      metrics,
	}
}

// AdjustStock registra un ajuste manual: un incremento atómico del snapshot y
// un registro en el libro, en una sola transacción. La cantidad es con signo y
// puede dejar el stock negativo. Si no llega referenceId se deriva del motivo.
func (uc *UseCase) AdjustStock(ctx context.Context, in dto.AdjustStockRequest) (*dto.AdjustStockResponse, error) {
	if in.ProductVariantID == "" || in.LocationID == "" || in.Reason == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity == 0 || !entity.ValidMovementType(in.MovementType) {
		return nil, domain.ErrInvalidInput
	}

	variant, err := uc.productRepo.GetVariantByID(in.ProductVariantID)
	if err != nil {
		return nil, err
	}
	loc, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if variant == nil || loc == nil {
		return nil, domain.ErrNotFound
	}

	refID := in.ReferenceID
	if refID == "" {
		refID = adjustmentReference(in.Reason)
	}

	now := time.Now()
	var out dto.AdjustStockResponse
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		_ repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
		_ repository.ReturnOrderRepository,
	) error {
		level, mov, err := recordMovement(stockRepo, movRepo, movementIntent{
			ProductVariantID: in.ProductVariantID,
			LocationID:       in.LocationID,
			Quantity:         in.Quantity,
			MovementType:     in.MovementType,
			ReferenceID:      refID,
		}, now)
		if err != nil {
			return err
		}
		out = dto.AdjustStockResponse{
			Message:    "stock ajustado",
			StockLevel: toStockLevelResponse(level),
			Movement:   toStockMovementResponse(mov),
		}
		return nil
	})
	if err != nil {
		uc.metrics.OperationFailed("adjust_stock")
		return nil, err
	}
	uc.metrics.MovementRecorded(in.MovementType)
	return &out, nil
}

// adjustmentReference deriva la referencia por defecto del motivo del ajuste.
func adjustmentReference(reason string) string {
	if len(reason) > 10 {
		reason = reason[:10]
	}
	return "adjustment-" + reason
}

// ReceivePurchaseOrder procesa la recepción de una orden de compra: por cada
// línea recibida suma stock en la ubicación de la orden, registra el movimiento
// PURCHASE_RECEIPT y acumula quantityReceived en la línea; al final marca la
// orden RECEIVED con su timestamp. Todo dentro de una transacción.
func (uc *UseCase) ReceivePurchaseOrder(ctx context.Context, poID string, in dto.ReceivePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if poID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, line := range in.Items {
		if line.PurchaseOrderItemID == "" || line.QuantityReceived <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	po, err := uc.poRepo.GetByID(poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		txPORepo repository.PurchaseOrderRepository,
		_ repository.SaleRepository,
		_ repository.ReturnOrderRepository,
	) error {
		for _, line := range in.Items {
			item := po.FindItem(line.PurchaseOrderItemID)
			if item == nil {
				return fmt.Errorf("línea %s no pertenece a la orden: %w", line.PurchaseOrderItemID, domain.ErrNotFound)
			}
			if _, _, err := recordMovement(stockRepo, movRepo, movementIntent{
				ProductVariantID: item.ProductVariantID,
				LocationID:       po.LocationID,
				Quantity:         line.QuantityReceived,
				MovementType:     entity.MovementTypePurchaseReceipt,
				ReferenceID:      po.ID,
			}, now); err != nil {
				return err
			}
			if err := txPORepo.IncrementItemReceived(item.ID, line.QuantityReceived); err != nil {
				return err
			}
			item.QuantityReceived += line.QuantityReceived
		}
		return txPORepo.MarkReceived(po.ID, now)
	})
	if err != nil {
		uc.metrics.OperationFailed("receive_purchase_order")
		return nil, err
	}
	uc.metrics.MovementRecorded(entity.MovementTypePurchaseReceipt)

	po.Status = entity.PurchaseOrderStatusReceived
	po.ReceivedAt = &now
	resp := toPurchaseOrderResponse(po)
	return &resp, nil
}
