package postgres

import (
	"context"
	"fmt"

	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

var _ repository.ReturnOrderRepository = (*ReturnOrderRepo)(nil)

// ReturnOrderRepo implementación de ReturnOrderRepository sobre PostgreSQL.
type ReturnOrderRepo struct {
	q Querier
}

// NewReturnOrderRepository construye el adaptador. Acepta pool o tx (Querier).
func NewReturnOrderRepository(q Querier) *ReturnOrderRepo {
	return &ReturnOrderRepo{q: q}
}

func (r *ReturnOrderRepo) CreateWithItems(ret *entity.ReturnOrder) error {
	ctx := context.Background()
	query := `
		INSERT INTO return_orders (id, return_type, reason, sale_id, purchase_order_id, date)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, ret.ID, ret.ReturnType, ret.Reason, ret.SaleID, ret.PurchaseOrderID, ret.Date)
	if err != nil {
		return fmt.Errorf("create return order: %w", err)
	}
	itemQuery := `
		INSERT INTO return_order_items (id, return_order_id, product_variant_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for _, it := range ret.Items {
		_, err := r.q.Exec(ctx, itemQuery, it.ID, it.ReturnOrderID, it.ProductVariantID, it.Quantity)
		if err != nil {
			return fmt.Errorf("create return order item: %w", err)
		}
	}
	return nil
}

func (r *ReturnOrderRepo) List(limit, offset int) ([]*entity.ReturnOrder, error) {
	ctx := context.Background()
	query := `
		SELECT id, return_type, reason, sale_id, purchase_order_id, date
		FROM return_orders
		ORDER BY date DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list return orders: %w", err)
	}
	defer rows.Close()

	var (
		list []*entity.ReturnOrder
		ids  []string
	)
	for rows.Next() {
		var ret entity.ReturnOrder
		if err := rows.Scan(&ret.ID, &ret.ReturnType, &ret.Reason, &ret.SaleID, &ret.PurchaseOrderID, &ret.Date); err != nil {
			return nil, fmt.Errorf("scan return order: %w", err)
		}
		list = append(list, &ret)
		ids = append(ids, ret.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	itemQuery := `
		SELECT id, return_order_id, product_variant_id, quantity
		FROM return_order_items
		WHERE return_order_id = ANY($1::uuid[])
		ORDER BY id`
	itemRows, err := r.q.Query(ctx, itemQuery, ids)
	if err != nil {
		return nil, fmt.Errorf("load return order items: %w", err)
	}
	defer itemRows.Close()

	items := make(map[string][]entity.ReturnOrderItem)
	for itemRows.Next() {
		var it entity.ReturnOrderItem
		if err := itemRows.Scan(&it.ID, &it.ReturnOrderID, &it.ProductVariantID, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan return order item: %w", err)
		}
		items[it.ReturnOrderID] = append(items[it.ReturnOrderID], it)
	}
	if err := itemRows.Err(); err != nil {
		return nil, err
	}
	for _, ret := range list {
		ret.Items = items[ret.ID]
	}
	return list, nil
}
