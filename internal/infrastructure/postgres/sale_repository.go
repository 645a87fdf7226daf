package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Acepta pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

func (r *SaleRepo) CreateWithItems(sale *entity.Sale) error {
	ctx := context.Background()
	query := `
		INSERT INTO sales (id, cashier_id, location_id, customer_id, payment_method, total_discount, sub_total, total_amount, sale_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.CashierID, sale.LocationID, sale.CustomerID, sale.PaymentMethod,
		sale.TotalDiscount, sale.SubTotal, sale.TotalAmount, sale.SaleDate,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_variant_id, quantity, unit_price, discount)
		VALUES ($1, $2, $3, $4, $5, $6)`
	for _, it := range sale.Items {
		_, err := r.q.Exec(ctx, itemQuery, it.ID, it.SaleID, it.ProductVariantID, it.Quantity, it.UnitPrice, it.Discount)
		if err != nil {
			return fmt.Errorf("create sale item: %w", err)
		}
	}
	return nil
}

func (r *SaleRepo) GetByID(id string) (*entity.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT id, cashier_id, location_id, customer_id, payment_method, total_discount, sub_total, total_amount, sale_date
		FROM sales WHERE id = $1`
	var s entity.Sale
	err := r.q.QueryRow(ctx, query, id).Scan(
		&s.ID, &s.CashierID, &s.LocationID, &s.CustomerID, &s.PaymentMethod,
		&s.TotalDiscount, &s.SubTotal, &s.TotalAmount, &s.SaleDate,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	items, err := r.loadItems(ctx, []string{s.ID})
	if err != nil {
		return nil, err
	}
	s.Items = items[s.ID]
	return &s, nil
}

func (r *SaleRepo) List(limit, offset int) ([]*entity.Sale, error) {
	ctx := context.Background()
	query := `
		SELECT id, cashier_id, location_id, customer_id, payment_method, total_discount, sub_total, total_amount, sale_date
		FROM sales
		ORDER BY sale_date DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var (
		list []*entity.Sale
		ids  []string
	)
	for rows.Next() {
		var s entity.Sale
		if err := rows.Scan(
			&s.ID, &s.CashierID, &s.LocationID, &s.CustomerID, &s.PaymentMethod,
			&s.TotalDiscount, &s.SubTotal, &s.TotalAmount, &s.SaleDate,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, &s)
		ids = append(ids, s.ID)
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
	for _, s := range list {
		s.Items = items[s.ID]
	}
	return list, nil
}

func (r *SaleRepo) loadItems(ctx context.Context, saleIDs []string) (map[string][]entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_variant_id, quantity, unit_price, discount
		FROM sale_items
		WHERE sale_id = ANY($1::uuid[])
		ORDER BY id`
	rows, err := r.q.Query(ctx, query, saleIDs)
	if err != nil {
		return nil, fmt.Errorf("load sale items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]entity.SaleItem)
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductVariantID, &it.Quantity, &it.UnitPrice, &it.Discount); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items[it.SaleID] = append(items[it.SaleID], it)
	}
	return items, rows.Err()
}
