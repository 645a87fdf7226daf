package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo implementación de PurchaseOrderRepository sobre PostgreSQL.
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Acepta pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

func (r *PurchaseOrderRepo) CreateWithItems(po *entity.PurchaseOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO purchase_orders (id, supplier_id, location_id, status, created_at, received_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, po.ID, po.SupplierID, po.LocationID, po.Status, po.CreatedAt, po.ReceivedAt)
	if err != nil {
		return fmt.Errorf("create purchase order: %w", err)
	}
	itemQuery := `
		INSERT INTO purchase_order_items (id, purchase_order_id, product_variant_id, quantity_ordered, quantity_received, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range po.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			it.ID, it.PurchaseOrderID, it.ProductVariantID, it.QuantityOrdered, it.QuantityReceived, it.UnitPrice,
		)
		if err != nil {
			return fmt.Errorf("create purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(id string) (*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, supplier_id, location_id, status, created_at, received_at
		FROM purchase_orders WHERE id = $1`
	var po entity.PurchaseOrder
	err := r.q.QueryRow(ctx, query, id).Scan(
		&po.ID, &po.SupplierID, &po.LocationID, &po.Status, &po.CreatedAt, &po.ReceivedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	items, err := r.loadItems(ctx, []string{po.ID})
	if err != nil {
		return nil, err
	}
	po.Items = items[po.ID]
	return &po, nil
}

func (r *PurchaseOrderRepo) List(limit, offset int) ([]*entity.PurchaseOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, supplier_id, location_id, status, created_at, received_at
		FROM purchase_orders
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	defer rows.Close()

	var (
		list []*entity.PurchaseOrder
		ids  []string
	)
	for rows.Next() {
		var po entity.PurchaseOrder
		if err := rows.Scan(&po.ID, &po.SupplierID, &po.LocationID, &po.Status, &po.CreatedAt, &po.ReceivedAt); err != nil {
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, &po)
		ids = append(ids, po.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	items, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, po := range list {
		po.Items = items[po.ID]
	}
	return list, nil
}

// loadItems carga las líneas de un conjunto de órdenes en un solo query.
func (r *PurchaseOrderRepo) loadItems(ctx context.Context, poIDs []string) (map[string][]entity.PurchaseOrderItem, error) {
	query := `
		SELECT id, purchase_order_id, product_variant_id, quantity_ordered, quantity_received, unit_price
		FROM purchase_order_items
		WHERE purchase_order_id = ANY($1::uuid[])
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, poIDs)
	if err != nil {
		return nil, fmt.Errorf("load purchase order items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]entity.PurchaseOrderItem)
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ID, &it.PurchaseOrderID, &it.ProductVariantID, &it.QuantityOrdered, &it.QuantityReceived, &it.UnitPrice); err != nil {
			return nil, fmt.Errorf("scan purchase order item: %w", err)
		}
		items[it.PurchaseOrderID] = append(items[it.PurchaseOrderID], it)
	}
	return items, rows.Err()
}

// IncrementItemReceived acumula cantidad recibida en la línea: suma, nunca sobreescribe,
// para que recepciones repetidas del mismo ítem queden registradas completas.
func (r *PurchaseOrderRepo) IncrementItemReceived(itemID string, quantity int) error {
	query := `
		UPDATE purchase_order_items
		SET quantity_received = quantity_received + $2
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, itemID, quantity)
	if err != nil {
		return fmt.Errorf("increment quantity received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("purchase order item %s: %w", itemID, domain.ErrNotFound)
	}
	return nil
}

func (r *PurchaseOrderRepo) MarkReceived(id string, receivedAt time.Time) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, received_at = $3
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, id, entity.PurchaseOrderStatusReceived, receivedAt)
	if err != nil {
		return fmt.Errorf("mark purchase order received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("purchase order %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
