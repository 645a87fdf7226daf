package fulfillment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// RecordSale crea la venta con sus líneas y descuenta stock por cada línea
// (movimiento SALE negativo), todo en una transacción. Los totales se calculan
// siempre en el servidor: subTotal = Σ(unitPrice·quantity − discount) y
// totalAmount = subTotal − totalDiscount; nunca se aceptan del cliente.
func (uc *UseCase) RecordSale(ctx context.Context, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if in.CashierID == "" || in.LocationID == "" || len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) || in.TotalDiscount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductVariantID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
		if it.UnitPrice.IsNegative() || it.Discount.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
	}

	loc, err := uc.locationRepo.GetByID(in.LocationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	sale := &entity.Sale{
		ID:            uuid.New().String(),
		CashierID:     in.CashierID,
		LocationID:    in.LocationID,
		CustomerID:    in.CustomerID,
		PaymentMethod: in.PaymentMethod,
		TotalDiscount: in.TotalDiscount,
		SaleDate:      now,
	}
	for _, it := range in.Items {
		sale.Items = append(sale.Items, entity.SaleItem{
			ID:               uuid.New().String(),
			SaleID:           sale.ID,
			ProductVariantID: it.ProductVariantID,
			Quantity:         it.Quantity,
			UnitPrice:        it.UnitPrice,
			Discount:         it.Discount,
		})
	}
	sale.ComputeTotals()

	err = uc.txRunner.Run(ctx, func(
		stockRepo repository.StockLevelRepository,
		movRepo repository.StockMovementRepository,
		_ repository.PurchaseOrderRepository,
		txSaleRepo repository.SaleRepository,
		_ repository.ReturnOrderRepository,
	) error {
		if err := txSaleRepo.CreateWithItems(sale); err != nil {
			return err
		}
		for _, it := range sale.Items {
			if _, _, err := recordMovement(stockRepo, movRepo, movementIntent{
				ProductVariantID: it.ProductVariantID,
				LocationID:       sale.LocationID,
				Quantity:         -it.Quantity,
				MovementType:     entity.MovementTypeSale,
				ReferenceID:      sale.ID,
			}, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		uc.metrics.OperationFailed("record_sale")
		return nil, err
	}
	uc.metrics.MovementRecorded(entity.MovementTypeSale)

	resp := toSaleResponse(sale)
	return &resp, nil
}

// ComputeSaleTotals expone el cálculo de totales para validación y tests sin
// construir la entidad completa.
func ComputeSaleTotals(items []dto.CreateSaleItemRequest, totalDiscount decimal.Decimal) (subTotal, totalAmount decimal.Decimal) {
	subTotal = decimal.Zero
	for _, it := range items {
		line := it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))).Sub(it.Discount)
		subTotal = subTotal.Add(line)
	}
	return subTotal, subTotal.Sub(totalDiscount)
}
