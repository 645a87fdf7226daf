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

var _ repository.ManufacturerRepository = (*ManufacturerRepo)(nil)

// ManufacturerRepo implementación de ManufacturerRepository (usable con pool o tx).
type ManufacturerRepo struct {
	q Querier
}

// NewManufacturerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewManufacturerRepository(q Querier) *ManufacturerRepo {
	return &ManufacturerRepo{q: q}
}

func (r *ManufacturerRepo) Create(m *entity.Manufacturer) error {
	query := `
		INSERT INTO manufacturers (id, name, created_at, updated_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(context.Background(), query, m.ID, m.Name, m.CreatedAt, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert manufacturer: %w", err)
	}
	return nil
}

func (r *ManufacturerRepo) GetByID(id string) (*entity.Manufacturer, error) {
	query := `SELECT id, name, created_at, updated_at FROM manufacturers WHERE id = $1`
	var m entity.Manufacturer
	err := r.q.QueryRow(context.Background(), query, id).Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get manufacturer: %w", err)
	}
	return &m, nil
}

func (r *ManufacturerRepo) List(limit, offset int) ([]*entity.Manufacturer, error) {
	query := `SELECT id, name, created_at, updated_at FROM manufacturers ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list manufacturers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Manufacturer
	for rows.Next() {
		var m entity.Manufacturer
		if err := rows.Scan(&m.ID, &m.Name, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan manufacturer: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func (r *ManufacturerRepo) Update(m *entity.Manufacturer) error {
	query := `UPDATE manufacturers SET name = $2, updated_at = $3 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, m.ID, m.Name, m.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update manufacturer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("manufacturer %s: %w", m.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *ManufacturerRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM manufacturers WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("manufacturer %s tiene productos asociados: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete manufacturer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("manufacturer %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
