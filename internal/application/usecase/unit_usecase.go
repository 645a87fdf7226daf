package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

// UnitOfMeasureUseCase casos de uso CRUD para unidades de medida.
type UnitOfMeasureUseCase struct {
	repo repository.UnitOfMeasureRepository
}

// NewUnitOfMeasureUseCase construye el caso de uso.
func NewUnitOfMeasureUseCase(repo repository.UnitOfMeasureRepository) *UnitOfMeasureUseCase {
	return &UnitOfMeasureUseCase{repo: repo}
}

// Create crea una unidad de medida.
func (uc *UnitOfMeasureUseCase) Create(in dto.CreateUnitOfMeasureRequest) (*dto.UnitOfMeasureResponse, error) {
	if len(in.Name) < 2 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	unit := &entity.UnitOfMeasure{
		ID:           uuid.New().String(),
		Name:         in.Name,
		Abbreviation: in.Abbreviation,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// GetByID obtiene una unidad por ID.
func (uc *UnitOfMeasureUseCase) GetByID(id string) (*dto.UnitOfMeasureResponse, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	return toUnitResponse(unit), nil
}

// List lista unidades con paginación.
func (uc *UnitOfMeasureUseCase) List(limit, offset int) ([]dto.UnitOfMeasureResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.UnitOfMeasureResponse, 0, len(list))
	for _, u := range list {
		items = append(items, *toUnitResponse(u))
	}
	return items, nil
}

// Update actualiza una unidad.
func (uc *UnitOfMeasureUseCase) Update(id string, in dto.UpdateUnitOfMeasureRequest) (*dto.UnitOfMeasureResponse, error) {
	unit, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if unit == nil {
		return nil, nil
	}
	if in.Name != nil {
		unit.Name = *in.Name
	}
	if in.Abbreviation != nil {
		unit.Abbreviation = *in.Abbreviation
	}
	unit.UpdatedAt = time.Now()
	if err := uc.repo.Update(unit); err != nil {
		return nil, err
	}
	return toUnitResponse(unit), nil
}

// Delete elimina una unidad por ID.
func (uc *UnitOfMeasureUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toUnitResponse(u *entity.UnitOfMeasure) *dto.UnitOfMeasureResponse {
	return &dto.UnitOfMeasureResponse{
		ID:           u.ID,
		Name:         u.Name,
		Abbreviation: u.Abbreviation,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
