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

var _ repository.UnitOfMeasureRepository = (*UnitOfMeasureRepo)(nil)

// UnitOfMeasureRepo implementación de UnitOfMeasureRepository (usable con pool o tx).
type UnitOfMeasureRepo struct {
	q Querier
}

// NewUnitOfMeasureRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUnitOfMeasureRepository(q Querier) *UnitOfMeasureRepo {
	return &UnitOfMeasureRepo{q: q}
}

func (r *UnitOfMeasureRepo) Create(u *entity.UnitOfMeasure) error {
	query := `
		INSERT INTO units_of_measure (id, name, abbreviation, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, u.ID, u.Name, u.Abbreviation, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert unit of measure: %w", err)
	}
	return nil
}

func (r *UnitOfMeasureRepo) GetByID(id string) (*entity.UnitOfMeasure, error) {
	query := `SELECT id, name, abbreviation, created_at, updated_at FROM units_of_measure WHERE id = $1`
	var u entity.UnitOfMeasure
	err := r.q.QueryRow(context.Background(), query, id).Scan(&u.ID, &u.Name, &u.Abbreviation, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit of measure: %w", err)
	}
	return &u, nil
}

func (r *UnitOfMeasureRepo) List(limit, offset int) ([]*entity.UnitOfMeasure, error) {
	query := `SELECT id, name, abbreviation, created_at, updated_at FROM units_of_measure ORDER BY name LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list units of measure: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnitOfMeasure
	for rows.Next() {
		var u entity.UnitOfMeasure
		if err := rows.Scan(&u.ID, &u.Name, &u.Abbreviation, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan unit of measure: %w", err)
		}
		list = append(list, &u)
	}
	return list, rows.Err()
}

func (r *UnitOfMeasureRepo) Update(u *entity.UnitOfMeasure) error {
	query := `UPDATE units_of_measure SET name = $2, abbreviation = $3, updated_at = $4 WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, u.ID, u.Name, u.Abbreviation, u.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update unit of measure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unit of measure %s: %w", u.ID, domain.ErrNotFound)
	}
	return nil
}

func (r *UnitOfMeasureRepo) Delete(id string) error {
	tag, err := r.q.Exec(context.Background(), `DELETE FROM units_of_measure WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("unit of measure %s tiene productos asociados: %w", id, domain.ErrConflict)
		}
		return fmt.Errorf("delete unit of measure: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("unit of measure %s: %w", id, domain.ErrNotFound)
	}
	return nil
}
