package fulfillment_test

import (
	"context"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/application/fulfillment"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ──────────────────────────────────────────────────────────────────────────────
// AdjustStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAdjustStock_RestaYActualizaSnapshotYLibro(t *testing.T) {
	env := newTestEnv()
	env.db.seedLevel(variantA, locationA, 10)

	out, err := env.uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductVariantID: variantA,
		LocationID:       locationA,
		Quantity:         -4,
		MovementType:     entity.MovementTypeAdjustment,
		Reason:           "breakage",
	})
	require.NoError(t, err)

	assert.Equal(t, 6, out.StockLevel.Quantity)
	assert.Equal(t, -4, out.Movement.Quantity)
	assert.Equal(t, entity.MovementTypeAdjustment, out.Movement.MovementType)
	// Sin referenceId explícito, se deriva del motivo
	assert.Equal(t, "adjustment-breakage", out.Movement.ReferenceID)

	assert.Equal(t, 6, env.db.levelQty(variantA, locationA))
	// Nota: el libro solo tiene el movimiento del ajuste (el seed fija el
	// snapshot directamente), por eso se compara contra el delta.
	assert.Equal(t, -4, env.db.ledgerSum(variantA, locationA))
}

func TestAdjustStock_CreaParEnPrimerMovimiento(t *testing.T) {
	env := newTestEnv()

	out, err := env.uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductVariantID: variantA,
		LocationID:       locationA,
		Quantity:         7,
		MovementType:     entity.MovementTypeAdjustment,
		Reason:           "conteo inicial",
		ReferenceID:      "conteo-2026-01",
	})
	require.NoError(t, err)

	assert.Equal(t, 7, out.StockLevel.Quantity)
	assert.Equal(t, "conteo-2026-01", out.Movement.ReferenceID)
	assert.Equal(t, env.db.levelQty(variantA, locationA), env.db.ledgerSum(variantA, locationA))
}

func TestAdjustStock_PermiteStockNegativo(t *testing.T) {
	env := newTestEnv()
	env.db.seedLevel(variantA, locationA, 2)

	out, err := env.uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductVariantID: variantA,
		LocationID:       locationA,
		Quantity:         -5,
		MovementType:     entity.MovementTypeAdjustment,
		Reason:           "merma",
	})
	require.NoError(t, err)
	assert.Equal(t, -3, out.StockLevel.Quantity)
}

func TestAdjustStock_ValidaEntrada(t *testing.T) {
	env := newTestEnv()

	cases := []struct {
		name string
		in   dto.AdjustStockRequest
	}{
		{"cantidad cero", dto.AdjustStockRequest{
			ProductVariantID: variantA, LocationID: locationA,
			Quantity: 0, MovementType: entity.MovementTypeAdjustment, Reason: "x",
		}},
		{"tipo desconocido", dto.AdjustStockRequest{
			ProductVariantID: variantA, LocationID: locationA,
			Quantity: 1, MovementType: "TELEPORT", Reason: "x",
		}},
		{"sin motivo", dto.AdjustStockRequest{
			ProductVariantID: variantA, LocationID: locationA,
			Quantity: 1, MovementType: entity.MovementTypeAdjustment,
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.uc.AdjustStock(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestAdjustStock_VarianteInexistente(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductVariantID: uuid.New().String(),
		LocationID:       locationA,
		Quantity:         1,
		MovementType:     entity.MovementTypeAdjustment,
		Reason:           "x",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAdjustStock_AjustesConcurrentesNoSePisan(t *testing.T) {
	env := newTestEnv()
	env.db.seedLevel(variantA, locationA, 5)

	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
				ProductVariantID: variantA,
				LocationID:       locationA,
				Quantity:         -1,
				MovementType:     entity.MovementTypeAdjustment,
				Reason:           "merma",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	// Ambos decrementos deben quedar aplicados: 5 − 1 − 1 = 3
	assert.Equal(t, 3, env.db.levelQty(variantA, locationA))
	assert.Equal(t, -2, env.db.ledgerSum(variantA, locationA))
}

func TestAdjustStock_RollbackSiFallaElLibro(t *testing.T) {
	env := newTestEnv()
	env.db.seedLevel(variantA, locationA, 10)
	env.db.failOnMovement = 1

	_, err := env.uc.AdjustStock(context.Background(), dto.AdjustStockRequest{
		ProductVariantID: variantA,
		LocationID:       locationA,
		Quantity:         -4,
		MovementType:     entity.MovementTypeAdjustment,
		Reason:           "breakage",
	})
	require.Error(t, err)

	// Ni snapshot ni libro deben reflejar la operación fallida
	assert.Equal(t, 10, env.db.levelQty(variantA, locationA))
	assert.Equal(t, 0, env.db.ledgerSum(variantA, locationA))
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceivePurchaseOrder
// ──────────────────────────────────────────────────────────────────────────────

// seedPO crea una orden PENDING con una línea por variante y devuelve (poID, itemIDs).
func seedPO(env *testEnv, variants ...string) (string, []string) {
	po := &entity.PurchaseOrder{
		ID:         uuid.New().String(),
		SupplierID: supplierA,
		LocationID: locationA,
		Status:     entity.PurchaseOrderStatusPending,
	}
	var itemIDs []string
	for _, v := range variants {
		item := entity.PurchaseOrderItem{
			ID:               uuid.New().String(),
			PurchaseOrderID:  po.ID,
			ProductVariantID: v,
			QuantityOrdered:  20,
			UnitPrice:        decimal.NewFromInt(3),
		}
		po.Items = append(po.Items, item)
		itemIDs = append(itemIDs, item.ID)
	}
	repo := &fakePurchaseOrderRepo{db: env.db}
	_ = repo.CreateWithItems(po)
	return po.ID, itemIDs
}

func TestReceivePurchaseOrder_SumaStockYMarcaRecibida(t *testing.T) {
	env := newTestEnv()
	poID, itemIDs := seedPO(env, variantA)

	out, err := env.uc.ReceivePurchaseOrder(context.Background(), poID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceivePurchaseOrderItemRequest{
			{PurchaseOrderItemID: itemIDs[0], QuantityReceived: 5},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseOrderStatusReceived, out.Status)
	require.NotNil(t, out.ReceivedAt)
	assert.Equal(t, 5, out.Items[0].QuantityReceived)

	assert.Equal(t, 5, env.db.levelQty(variantA, locationA))
	movs := env.db.movementsByReference(poID)
	require.Len(t, movs, 1)
	assert.Equal(t, 5, movs[0].Quantity)
	assert.Equal(t, entity.MovementTypePurchaseReceipt, movs[0].MovementType)
}

func TestReceivePurchaseOrder_RecepcionRepetidaAcumula(t *testing.T) {
	env := newTestEnv()
	poID, itemIDs := seedPO(env, variantA)
	receive := dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceivePurchaseOrderItemRequest{
			{PurchaseOrderItemID: itemIDs[0], QuantityReceived: 5},
		},
	}

	_, err := env.uc.ReceivePurchaseOrder(context.Background(), poID, receive)
	require.NoError(t, err)
	_, err = env.uc.ReceivePurchaseOrder(context.Background(), poID, receive)
	require.NoError(t, err)

	// quantityReceived acumula (5+5), dos movimientos de +5, snapshot +10
	po, _ := (&fakePurchaseOrderRepo{db: env.db}).GetByID(poID)
	assert.Equal(t, 10, po.Items[0].QuantityReceived)
	movs := env.db.movementsByReference(poID)
	require.Len(t, movs, 2)
	assert.Equal(t, 10, env.db.levelQty(variantA, locationA))
	assert.Equal(t, 10, env.db.ledgerSum(variantA, locationA))
}

func TestReceivePurchaseOrder_LineaAjena(t *testing.T) {
	env := newTestEnv()
	poID, _ := seedPO(env, variantA)

	_, err := env.uc.ReceivePurchaseOrder(context.Background(), poID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceivePurchaseOrderItemRequest{
			{PurchaseOrderItemID: uuid.New().String(), QuantityReceived: 5},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, 0, env.db.levelQty(variantA, locationA))
}

func TestReceivePurchaseOrder_RollbackParcial(t *testing.T) {
	env := newTestEnv()
	poID, itemIDs := seedPO(env, variantA, variantB)
	// La primera línea pasa, la segunda falla dentro de la misma tx
	env.db.failOnMovement = 2

	_, err := env.uc.ReceivePurchaseOrder(context.Background(), poID, dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceivePurchaseOrderItemRequest{
			{PurchaseOrderItemID: itemIDs[0], QuantityReceived: 5},
			{PurchaseOrderItemID: itemIDs[1], QuantityReceived: 3},
		},
	})
	require.Error(t, err)

	// Nada de la operación debe quedar: ni stock, ni movimientos, ni acumulado
	assert.Equal(t, 0, env.db.levelQty(variantA, locationA))
	assert.Equal(t, 0, env.db.levelQty(variantB, locationA))
	assert.Empty(t, env.db.movementsByReference(poID))
	po, _ := (&fakePurchaseOrderRepo{db: env.db}).GetByID(poID)
	assert.Equal(t, 0, po.Items[0].QuantityReceived)
	assert.Equal(t, entity.PurchaseOrderStatusPending, po.Status)
}

func TestReceivePurchaseOrder_OrdenInexistente(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.ReceivePurchaseOrder(context.Background(), uuid.New().String(), dto.ReceivePurchaseOrderRequest{
		Items: []dto.ReceivePurchaseOrderItemRequest{
			{PurchaseOrderItemID: uuid.New().String(), QuantityReceived: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// RecordSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRecordSale_DescuentaStockYCalculaTotales(t *testing.T) {
	env := newTestEnv()
	env.db.seedLevel(variantA, locationA, 10)

	out, err := env.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		CashierID:     cashierA,
		LocationID:    locationA,
		PaymentMethod: entity.PaymentMethodCash,
		TotalDiscount: decimal.Zero,
		Items: []dto.CreateSaleItemRequest{
			{
				ProductVariantID: variantA,
				Quantity:         2,
				UnitPrice:        decimal.NewFromInt(10),
				Discount:         decimal.NewFromInt(1),
			},
		},
	})
	require.NoError(t, err)

	// subTotal = 2·10 − 1 = 19; totalAmount = 19 − 0 = 19
	assert.True(t, decimal.NewFromInt(19).Equal(out.SubTotal), "subTotal = %s", out.SubTotal)
	assert.True(t, decimal.NewFromInt(19).Equal(out.TotalAmount), "totalAmount = %s", out.TotalAmount)

	assert.Equal(t, 8, env.db.levelQty(variantA, locationA))
	movs := env.db.movementsByReference(out.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, -2, movs[0].Quantity)
	assert.Equal(t, entity.MovementTypeSale, movs[0].MovementType)
}

func TestRecordSale_RollbackDejaTodoIntacto(t *testing.T) {
	env := newTestEnv()
	env.db.seedLevel(variantA, locationA, 10)
	env.db.seedLevel(variantB, locationA, 10)
	env.db.failOnMovement = 2

	_, err := env.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		CashierID:     cashierA,
		LocationID:    locationA,
		PaymentMethod: entity.PaymentMethodCard,
		Items: []dto.CreateSaleItemRequest{
			{ProductVariantID: variantA, Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
			{ProductVariantID: variantB, Quantity: 1, UnitPrice: decimal.NewFromInt(5)},
		},
	})
	require.Error(t, err)

	assert.Equal(t, 10, env.db.levelQty(variantA, locationA))
	assert.Equal(t, 10, env.db.levelQty(variantB, locationA))
	env.db.mu.Lock()
	assert.Empty(t, env.db.sales)
	env.db.mu.Unlock()
}

func TestRecordSale_ValidaEntrada(t *testing.T) {
	env := newTestEnv()

	cases := []struct {
		name string
		in   dto.CreateSaleRequest
	}{
		{"sin items", dto.CreateSaleRequest{
			CashierID: cashierA, LocationID: locationA, PaymentMethod: entity.PaymentMethodCash,
		}},
		{"método de pago inválido", dto.CreateSaleRequest{
			CashierID: cashierA, LocationID: locationA, PaymentMethod: "BARTER",
			Items: []dto.CreateSaleItemRequest{{ProductVariantID: variantA, Quantity: 1}},
		}},
		{"cantidad negativa", dto.CreateSaleRequest{
			CashierID: cashierA, LocationID: locationA, PaymentMethod: entity.PaymentMethodCash,
			Items: []dto.CreateSaleItemRequest{{ProductVariantID: variantA, Quantity: -1}},
		}},
		{"descuento negativo", dto.CreateSaleRequest{
			CashierID: cashierA, LocationID: locationA, PaymentMethod: entity.PaymentMethodCash,
			TotalDiscount: decimal.NewFromInt(-1),
			Items:         []dto.CreateSaleItemRequest{{ProductVariantID: variantA, Quantity: 1}},
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := env.uc.RecordSale(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

func TestComputeSaleTotals(t *testing.T) {
	items := []dto.CreateSaleItemRequest{
		{Quantity: 2, UnitPrice: decimal.NewFromInt(10), Discount: decimal.NewFromInt(1)},
		{Quantity: 3, UnitPrice: decimal.RequireFromString("4.50"), Discount: decimal.Zero},
	}
	subTotal, totalAmount := fulfillment.ComputeSaleTotals(items, decimal.NewFromInt(2))

	// 2·10 − 1 = 19; 3·4.50 = 13.50; subTotal = 32.50; total = 30.50
	assert.True(t, decimal.RequireFromString("32.50").Equal(subTotal), "subTotal = %s", subTotal)
	assert.True(t, decimal.RequireFromString("30.50").Equal(totalAmount), "totalAmount = %s", totalAmount)
}

// ──────────────────────────────────────────────────────────────────────────────
// ProcessReturn
// ──────────────────────────────────────────────────────────────────────────────

// seedSale registra una venta real para poder ligar devoluciones.
func seedSale(t *testing.T, env *testEnv) string {
	t.Helper()
	out, err := env.uc.RecordSale(context.Background(), dto.CreateSaleRequest{
		CashierID:     cashierA,
		LocationID:    locationA,
		PaymentMethod: entity.PaymentMethodCash,
		Items: []dto.CreateSaleItemRequest{
			{ProductVariantID: variantA, Quantity: 3, UnitPrice: decimal.NewFromInt(10)},
		},
	})
	require.NoError(t, err)
	return out.ID
}

func TestProcessReturn_ClienteDevuelveStock(t *testing.T) {
	env := newTestEnv()
	env.db.seedLevel(variantA, locationA, 10)
	saleID := seedSale(t, env) // deja el stock en 7

	out, err := env.uc.ProcessReturn(context.Background(), dto.CreateReturnOrderRequest{
		ReturnType: entity.ReturnTypeCustomer,
		Reason:     "producto defectuoso",
		SaleID:     &saleID,
		Items: []dto.CreateReturnOrderItemRequest{
			{ProductVariantID: variantA, Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 10, env.db.levelQty(variantA, locationA))
	movs := env.db.movementsByReference(out.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, 3, movs[0].Quantity)
	assert.Equal(t, entity.MovementTypeCustomerReturn, movs[0].MovementType)
	// La ubicación del movimiento se deriva de la venta
	assert.Equal(t, locationA, movs[0].LocationID)
}

func TestProcessReturn_ProveedorDescuentaStock(t *testing.T) {
	env := newTestEnv()
	env.db.seedLevel(variantA, locationA, 10)
	saleID := seedSale(t, env) // deja el stock en 7

	out, err := env.uc.ProcessReturn(context.Background(), dto.CreateReturnOrderRequest{
		ReturnType: entity.ReturnTypeSupplier,
		Reason:     "lote vencido",
		SaleID:     &saleID,
		Items: []dto.CreateReturnOrderItemRequest{
			{ProductVariantID: variantA, Quantity: 3},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 4, env.db.levelQty(variantA, locationA))
	movs := env.db.movementsByReference(out.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, -3, movs[0].Quantity)
	assert.Equal(t, entity.MovementTypeSupplierReturn, movs[0].MovementType)
}

func TestProcessReturn_SinVentaNoResuelveUbicacion(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.ProcessReturn(context.Background(), dto.CreateReturnOrderRequest{
		ReturnType: entity.ReturnTypeCustomer,
		Items: []dto.CreateReturnOrderItemRequest{
			{ProductVariantID: variantA, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrLocationUnresolved)
}

func TestProcessReturn_VentaInexistente(t *testing.T) {
	env := newTestEnv()
	missing := uuid.New().String()

	_, err := env.uc.ProcessReturn(context.Background(), dto.CreateReturnOrderRequest{
		ReturnType: entity.ReturnTypeCustomer,
		SaleID:     &missing,
		Items: []dto.CreateReturnOrderItemRequest{
			{ProductVariantID: variantA, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProcessReturn_TipoInvalido(t *testing.T) {
	env := newTestEnv()
	saleID := uuid.New().String()

	_, err := env.uc.ProcessReturn(context.Background(), dto.CreateReturnOrderRequest{
		ReturnType: "WARRANTY",
		SaleID:     &saleID,
		Items: []dto.CreateReturnOrderItemRequest{
			{ProductVariantID: variantA, Quantity: 1},
		},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatePurchaseOrder
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchaseOrder_CreaPendienteConLineas(t *testing.T) {
	env := newTestEnv()

	out, err := env.uc.CreatePurchaseOrder(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: supplierA,
		LocationID: locationA,
		Items: []dto.CreatePurchaseOrderItemRequest{
			{ProductVariantID: variantA, QuantityOrdered: 20, UnitPrice: decimal.NewFromInt(3)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PurchaseOrderStatusPending, out.Status)
	assert.Nil(t, out.ReceivedAt)
	require.Len(t, out.Items, 1)
	assert.Equal(t, 0, out.Items[0].QuantityReceived)

	// Crear la orden no mueve stock
	assert.Equal(t, 0, env.db.levelQty(variantA, locationA))
	assert.Empty(t, env.db.movementsByReference(out.ID))
}

func TestCreatePurchaseOrder_ProveedorInexistente(t *testing.T) {
	env := newTestEnv()

	_, err := env.uc.CreatePurchaseOrder(context.Background(), dto.CreatePurchaseOrderRequest{
		SupplierID: uuid.New().String(),
		LocationID: locationA,
		Items: []dto.CreatePurchaseOrderItemRequest{
			{ProductVariantID: variantA, QuantityOrdered: 1, UnitPrice: decimal.NewFromInt(1)},
		},
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
