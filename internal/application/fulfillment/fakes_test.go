package fulfillment_test

import (
	"context"
	"sync"
	"time"

	"github.com/jcastro/stockflow-api/internal/application/fulfillment"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria para el motor de fulfillment. Comparten un memDB protegido
// por mutex; el fakeTxRunner da semántica de rollback restaurando un snapshot
// del estado tomado al inicio de la transacción.
// ──────────────────────────────────────────────────────────────────────────────

type memDB struct {
	mu        sync.Mutex
	levels    map[string]*entity.StockLevel // key: variantID|locationID
	movements []*entity.StockMovement
	pos       map[string]*entity.PurchaseOrder
	sales     map[string]*entity.Sale
	returns   map[string]*entity.ReturnOrder

	// Inyección de fallos: si failOnMovement == N (1-based), el N-ésimo
	// Create de movimiento dentro de la tx actual falla.
	failOnMovement int
	movementCalls  int
}

func newMemDB() *memDB {
	return &memDB{
		levels:  make(map[string]*entity.StockLevel),
		pos:     make(map[string]*entity.PurchaseOrder),
		sales:   make(map[string]*entity.Sale),
		returns: make(map[string]*entity.ReturnOrder),
	}
}

func levelKey(variantID, locationID string) string { return variantID + "|" + locationID }

// seedLevel fija el snapshot de un par directamente (estado inicial del test).
func (db *memDB) seedLevel(variantID, locationID string, qty int) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.levels[levelKey(variantID, locationID)] = &entity.StockLevel{
		ProductVariantID: variantID,
		LocationID:       locationID,
		Quantity:         qty,
		UpdatedAt:        time.Now(),
	}
}

func (db *memDB) levelQty(variantID, locationID string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	if l, ok := db.levels[levelKey(variantID, locationID)]; ok {
		return l.Quantity
	}
	return 0
}

// ledgerSum suma las cantidades del libro para un par (invariante libro == snapshot).
func (db *memDB) ledgerSum(variantID, locationID string) int {
	db.mu.Lock()
	defer db.mu.Unlock()
	sum := 0
	for _, m := range db.movements {
		if m.ProductVariantID == variantID && m.LocationID == locationID {
			sum += m.Quantity
		}
	}
	return sum
}

func (db *memDB) movementsByReference(refID string) []*entity.StockMovement {
	db.mu.Lock()
	defer db.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range db.movements {
		if m.ReferenceID == refID {
			out = append(out, m)
		}
	}
	return out
}

// snapshot copia el estado mutable para poder restaurarlo en rollback.
type dbSnapshot struct {
	levels    map[string]*entity.StockLevel
	movements []*entity.StockMovement
	pos       map[string]*entity.PurchaseOrder
	sales     map[string]*entity.Sale
	returns   map[string]*entity.ReturnOrder
}

func (db *memDB) snapshot() dbSnapshot {
	db.mu.Lock()
	defer db.mu.Unlock()
	s := dbSnapshot{
		levels:    make(map[string]*entity.StockLevel, len(db.levels)),
		movements: append([]*entity.StockMovement(nil), db.movements...),
		pos:       make(map[string]*entity.PurchaseOrder, len(db.pos)),
		sales:     make(map[string]*entity.Sale, len(db.sales)),
		returns:   make(map[string]*entity.ReturnOrder, len(db.returns)),
	}
	for k, v := range db.levels {
		cp := *v
		s.levels[k] = &cp
	}
	for k, v := range db.pos {
		cp := *v
		cp.Items = append([]entity.PurchaseOrderItem(nil), v.Items...)
		s.pos[k] = &cp
	}
	for k, v := range db.sales {
		cp := *v
		cp.Items = append([]entity.SaleItem(nil), v.Items...)
		s.sales[k] = &cp
	}
	for k, v := range db.returns {
		cp := *v
		cp.Items = append([]entity.ReturnOrderItem(nil), v.Items...)
		s.returns[k] = &cp
	}
	return s
}

func (db *memDB) restore(s dbSnapshot) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.levels = s.levels
	db.movements = s.movements
	db.pos = s.pos
	db.sales = s.sales
	db.returns = s.returns
}

// ─── StockLevelRepository ────────────────────────────────────────────────────

type fakeStockLevelRepo struct{ db *memDB }

func (r *fakeStockLevelRepo) ApplyDelta(variantID, locationID string, delta int) (*entity.StockLevel, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	key := levelKey(variantID, locationID)
	l, ok := r.db.levels[key]
	if !ok {
		l = &entity.StockLevel{ProductVariantID: variantID, LocationID: locationID}
		r.db.levels[key] = l
	}
	l.Quantity += delta
	l.UpdatedAt = time.Now()
	cp := *l
	return &cp, nil
}

func (r *fakeStockLevelRepo) Get(variantID, locationID string) (*entity.StockLevel, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if l, ok := r.db.levels[levelKey(variantID, locationID)]; ok {
		cp := *l
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeStockLevelRepo) ListByLocation(locationID string) ([]*entity.StockLevelWithVariant, error) {
	return nil, nil
}

// ─── StockMovementRepository ─────────────────────────────────────────────────

type fakeStockMovementRepo struct{ db *memDB }

func (r *fakeStockMovementRepo) Create(m *entity.StockMovement) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.movementCalls++
	if r.db.failOnMovement > 0 && r.db.movementCalls == r.db.failOnMovement {
		return domain.ErrConflict
	}
	cp := *m
	r.db.movements = append(r.db.movements, &cp)
	return nil
}

func (r *fakeStockMovementRepo) ListByVariantAndLocation(variantID, locationID string, limit, offset int) ([]*entity.StockMovement, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.StockMovement
	for _, m := range r.db.movements {
		if m.ProductVariantID == variantID && m.LocationID == locationID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeStockMovementRepo) ListByReference(refID string) ([]*entity.StockMovement, error) {
	return r.db.movementsByReference(refID), nil
}

// ─── PurchaseOrderRepository ─────────────────────────────────────────────────

type fakePurchaseOrderRepo struct{ db *memDB }

func (r *fakePurchaseOrderRepo) CreateWithItems(po *entity.PurchaseOrder) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *po
	cp.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	r.db.pos[po.ID] = &cp
	return nil
}

func (r *fakePurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	po, ok := r.db.pos[id]
	if !ok {
		return nil, nil
	}
	cp := *po
	cp.Items = append([]entity.PurchaseOrderItem(nil), po.Items...)
	return &cp, nil
}

func (r *fakePurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	return nil, nil
}

func (r *fakePurchaseOrderRepo) IncrementItemReceived(itemID string, quantity int) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, po := range r.db.pos {
		for i := range po.Items {
			if po.Items[i].ID == itemID {
				po.Items[i].QuantityReceived += quantity
				return nil
			}
		}
	}
	return domain.ErrNotFound
}

func (r *fakePurchaseOrderRepo) MarkReceived(id string, receivedAt time.Time) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	po, ok := r.db.pos[id]
	if !ok {
		return domain.ErrNotFound
	}
	po.Status = entity.PurchaseOrderStatusReceived
	po.ReceivedAt = &receivedAt
	return nil
}

// ─── SaleRepository ──────────────────────────────────────────────────────────

type fakeSaleRepo struct{ db *memDB }

func (r *fakeSaleRepo) CreateWithItems(sale *entity.Sale) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	r.db.sales[sale.ID] = &cp
	return nil
}

func (r *fakeSaleRepo) GetByID(id string) (*entity.Sale, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	s, ok := r.db.sales[id]
	if !ok {
		return nil, nil
	}
	cp := *s
	cp.Items = append([]entity.SaleItem(nil), s.Items...)
	return &cp, nil
}

func (r *fakeSaleRepo) List(limit, offset int) ([]*entity.Sale, error) { return nil, nil }

// ─── ReturnOrderRepository ───────────────────────────────────────────────────

type fakeReturnOrderRepo struct{ db *memDB }

func (r *fakeReturnOrderRepo) CreateWithItems(ret *entity.ReturnOrder) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	cp := *ret
	cp.Items = append([]entity.ReturnOrderItem(nil), ret.Items...)
	r.db.returns[ret.ID] = &cp
	return nil
}

func (r *fakeReturnOrderRepo) List(limit, offset int) ([]*entity.ReturnOrder, error) {
	return nil, nil
}

// ─── TxRunner ────────────────────────────────────────────────────────────────

// fakeTxRunner ejecuta fn sobre los repos en memoria; si fn falla, restaura el
// snapshot previo (rollback). El contador de inyección de fallos se reinicia
// por transacción.
type fakeTxRunner struct {
	db *memDB
}

func (r *fakeTxRunner) Run(ctx context.Context, fn func(
	stockRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	poRepo repository.PurchaseOrderRepository,
	saleRepo repository.SaleRepository,
	returnRepo repository.ReturnOrderRepository,
) error) error {
	snap := r.db.snapshot()
	r.db.mu.Lock()
	r.db.movementCalls = 0
	r.db.mu.Unlock()

	err := fn(
		&fakeStockLevelRepo{db: r.db},
		&fakeStockMovementRepo{db: r.db},
		&fakePurchaseOrderRepo{db: r.db},
		&fakeSaleRepo{db: r.db},
		&fakeReturnOrderRepo{db: r.db},
	)
	if err != nil {
		r.db.restore(snap)
		return err
	}
	return nil
}

// ─── Repos de validación (variantes, ubicaciones, proveedores) ───────────────

type fakeProductRepo struct {
	variants map[string]*entity.ProductVariant
}

func (r *fakeProductRepo) CreateWithVariants(*entity.Product) error        { return nil }
func (r *fakeProductRepo) GetByID(string) (*entity.Product, error)         { return nil, nil }
func (r *fakeProductRepo) List(int, int) ([]*entity.Product, error)        { return nil, nil }
func (r *fakeProductRepo) Update(*entity.Product) error                    { return nil }
func (r *fakeProductRepo) Delete(string) error                             { return nil }
func (r *fakeProductRepo) UpdateVariant(*entity.ProductVariant) error      { return nil }
func (r *fakeProductRepo) GetVariantByID(id string) (*entity.ProductVariant, error) {
	return r.variants[id], nil
}

type fakeLocationRepo struct {
	locations map[string]*entity.Location
}

func (r *fakeLocationRepo) Create(*entity.Location) error             { return nil }
func (r *fakeLocationRepo) List(int, int) ([]*entity.Location, error) { return nil, nil }
func (r *fakeLocationRepo) Update(*entity.Location) error             { return nil }
func (r *fakeLocationRepo) Delete(string) error                       { return nil }
func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	return r.locations[id], nil
}

type fakeSupplierRepo struct {
	suppliers map[string]*entity.Supplier
}

func (r *fakeSupplierRepo) Create(*entity.Supplier) error             { return nil }
func (r *fakeSupplierRepo) List(int, int) ([]*entity.Supplier, error) { return nil, nil }
func (r *fakeSupplierRepo) Update(*entity.Supplier) error             { return nil }
func (r *fakeSupplierRepo) Delete(string) error                       { return nil }
func (r *fakeSupplierRepo) GetByID(id string) (*entity.Supplier, error) {
	return r.suppliers[id], nil
}

// ─── Entorno de test ─────────────────────────────────────────────────────────

// testEnv agrupa el memDB, los fakes y el UseCase ya cableado.
type testEnv struct {
	db *memDB
	uc *fulfillment.UseCase
}

const (
	variantA  = "11111111-1111-1111-1111-111111111111"
	variantB  = "22222222-2222-2222-2222-222222222222"
	locationA = "33333333-3333-3333-3333-333333333333"
	supplierA = "44444444-4444-4444-4444-444444444444"
	cashierA  = "55555555-5555-5555-5555-555555555555"
)

func newTestEnv() *testEnv {
	db := newMemDB()
	productRepo := &fakeProductRepo{variants: map[string]*entity.ProductVariant{
		variantA: {ID: variantA, SKU: "SKU-A"},
		variantB: {ID: variantB, SKU: "SKU-B"},
	}}
	locationRepo := &fakeLocationRepo{locations: map[string]*entity.Location{
		locationA: {ID: locationA, Name: "Bodega Central"},
	}}
	supplierRepo := &fakeSupplierRepo{suppliers: map[string]*entity.Supplier{
		supplierA: {ID: supplierA, Name: "Proveedor Uno"},
	}}
	uc := fulfillment.NewUseCase(
		&fakeTxRunner{db: db},
		productRepo,
		locationRepo,
		supplierRepo,
		&fakePurchaseOrderRepo{db: db},
		&fakeSaleRepo{db: db},
		&fakeReturnOrderRepo{db: db},
		nil,
	)
	return &testEnv{db: db, uc: uc}
}
