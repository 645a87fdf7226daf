package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository sobre PostgreSQL.
// Attributes de variantes se guarda como JSONB.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Acepta pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) CreateWithVariants(p *entity.Product) error {
	ctx := context.Background()
	query := `
		INSERT INTO products (id, name, category_id, unit_id, manufacturer_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, p.ID, p.Name, p.CategoryID, p.UnitID, p.ManufacturerID, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	variantQuery := `
		INSERT INTO product_variants (id, product_id, sku, price, reorder_level, attributes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, v := range p.Variants {
		_, err := r.q.Exec(ctx, variantQuery,
			v.ID, v.ProductID, v.SKU, v.Price, v.ReorderLevel, v.Attributes, v.CreatedAt, v.UpdatedAt,
		)
		if err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("sku %s: %w", v.SKU, domain.ErrDuplicate)
			}
			return fmt.Errorf("create product variant: %w", err)
		}
	}
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	ctx := context.Background()
	query := `
		SELECT id, name, category_id, unit_id, manufacturer_id, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.Name, &p.CategoryID, &p.UnitID, &p.ManufacturerID, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	variants, err := r.loadVariants(ctx, []string{p.ID})
	if err != nil {
		return nil, err
	}
	p.Variants = variants[p.ID]
	return &p, nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	ctx := context.Background()
	query := `
		SELECT id, name, category_id, unit_id, manufacturer_id, created_at, updated_at
		FROM products
		ORDER BY name
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var (
		list []*entity.Product
		ids  []string
	)
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.CategoryID, &p.UnitID, &p.ManufacturerID, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
		ids = append(ids, p.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	variants, err := r.loadVariants(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range list {
		p.Variants = variants[p.ID]
	}
	return list, nil
}

func (r *ProductRepo) loadVariants(ctx context.Context, productIDs []string) (map[string][]entity.ProductVariant, error) {
	query := `
		SELECT id, product_id, sku, price, reorder_level, attributes, created_at, updated_at
		FROM product_variants
		WHERE product_id = ANY($1::uuid[])
		ORDER BY sku`
	rows, err := r.q.Query(ctx, query, productIDs)
	if err != nil {
		return nil, fmt.Errorf("load product variants: %w", err)
	}
	defer rows.Close()

	variants := make(map[string][]entity.ProductVariant)
	for rows.Next() {
		var v entity.ProductVariant
		if err := rows.Scan(&v.ID, &v.ProductID, &v.SKU, &v.Price, &v.ReorderLevel, &v.Attributes, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product variant: %w", err)
		}
		variants[v.ProductID] = append(variants[v.ProductID], v)
	}
	return variants, rows.Err()
}

func (r *ProductRepo) Update(p *entity.Product) error {
	query := `
		UPDATE products
		SET name = $2, category_id = $3, unit_id = $4, manufacturer_id = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, p.ID, p.Name, p.CategoryID, p.UnitID, p.ManufacturerID, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", p.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("product %s tiene registros asociados: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete product: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ProductRepo) GetVariantByID(variantID string) (*entity.ProductVariant, error) {
	query := `
		SELECT id, product_id, sku, price, reorder_level, attributes, created_at, updated_at
		FROM product_variants WHERE id = $1`
	var v entity.ProductVariant
	err := r.q.QueryRow(context.Background(), query, variantID).Scan(
		&v.ID, &v.ProductID, &v.SKU, &v.Price, &v.ReorderLevel, &v.Attributes, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product variant: %w", err)
	}
	return &v, nil
}

func (r *ProductRepo) UpdateVariant(v *entity.ProductVariant) error {
	query := `
		UPDATE product_variants
		SET sku = $2, price = $3, reorder_level = $4, attributes = $5, updated_at = $6
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, v.ID, v.SKU, v.Price, v.ReorderLevel, v.Attributes, v.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sku %s: %w", v.SKU, domain.ErrDuplicate)
		}
		return fmt.Errorf("update product variant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("variant %s: %w", v.ID, domain.ErrNotFound)
	}
	return nil
}
