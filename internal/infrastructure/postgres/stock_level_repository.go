package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

var _ repository.StockLevelRepository = (*StockLevelRepo)(nil)

// StockLevelRepo implementación de StockLevelRepository sobre PostgreSQL.
type StockLevelRepo struct {
	q Querier
}

// NewStockLevelRepository construye el adaptador. Acepta pool o tx (Querier).
func NewStockLevelRepository(q Querier) *StockLevelRepo {
	return &StockLevelRepo{q: q}
}

// ApplyDelta suma delta al snapshot del par en una sola sentencia. El upsert
// con incremento evita lecturas intermedias: dos deltas concurrentes sobre el
// mismo par se serializan en la fila y ninguno se pierde.
func (r *StockLevelRepo) ApplyDelta(productVariantID, locationID string, delta int) (*entity.StockLevel, error) {
	query := `
		INSERT INTO stock_levels (product_variant_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_variant_id, location_id)
		DO UPDATE SET quantity = stock_levels.quantity + EXCLUDED.quantity, updated_at = now()
		RETURNING product_variant_id, location_id, quantity, updated_at`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productVariantID, locationID, delta).Scan(
		&l.ProductVariantID, &l.LocationID, &l.Quantity, &l.UpdatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("apply stock delta: %w", err)
	}
	return &l, nil
}

func (r *StockLevelRepo) Get(productVariantID, locationID string) (*entity.StockLevel, error) {
	query := `
		SELECT product_variant_id, location_id, quantity, updated_at
		FROM stock_levels
		WHERE product_variant_id = $1 AND location_id = $2`
	var l entity.StockLevel
	err := r.q.QueryRow(context.Background(), query, productVariantID, locationID).Scan(
		&l.ProductVariantID, &l.LocationID, &l.Quantity, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock level: %w", err)
	}
	return &l, nil
}

func (r *StockLevelRepo) ListByLocation(locationID string) ([]*entity.StockLevelWithVariant, error) {
	query := `
		SELECT sl.product_variant_id, sl.location_id, sl.quantity, sl.updated_at,
		       pv.sku, pv.price, p.id, p.name
		FROM stock_levels sl
		JOIN product_variants pv ON pv.id = sl.product_variant_id
		JOIN products p ON p.id = pv.product_id
		WHERE sl.location_id = $1
		ORDER BY p.name, pv.sku`
	rows, err := r.q.Query(context.Background(), query, locationID)
	if err != nil {
		return nil, fmt.Errorf("list stock levels by location: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockLevelWithVariant
	for rows.Next() {
		var l entity.StockLevelWithVariant
		if err := rows.Scan(
			&l.ProductVariantID, &l.LocationID, &l.Quantity, &l.UpdatedAt,
			&l.SKU, &l.Price, &l.ProductID, &l.ProductName,
		); err != nil {
			return nil, fmt.Errorf("scan stock level: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
