package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

// ManufacturerUseCase casos de uso CRUD para fabricantes.
type ManufacturerUseCase struct {
	repo repository.ManufacturerRepository
}

// NewManufacturerUseCase construye el caso de uso.
func NewManufacturerUseCase(repo repository.ManufacturerRepository) *ManufacturerUseCase {
	return &ManufacturerUseCase{repo: repo}
}

// Create crea un fabricante.
func (uc *ManufacturerUseCase) Create(in dto.CreateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	if len(in.Name) < 2 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	manufacturer := &entity.Manufacturer{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(manufacturer); err != nil {
		return nil, err
	}
	return toManufacturerResponse(manufacturer), nil
}

// GetByID obtiene un fabricante por ID.
func (uc *ManufacturerUseCase) GetByID(id string) (*dto.ManufacturerResponse, error) {
	manufacturer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if manufacturer == nil {
		return nil, nil
	}
	return toManufacturerResponse(manufacturer), nil
}

// List lista fabricantes con paginación.
func (uc *ManufacturerUseCase) List(limit, offset int) ([]dto.ManufacturerResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ManufacturerResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toManufacturerResponse(m))
	}
	return items, nil
}

// Update actualiza un fabricante.
func (uc *ManufacturerUseCase) Update(id string, in dto.UpdateManufacturerRequest) (*dto.ManufacturerResponse, error) {
	manufacturer, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if manufacturer == nil {
		return nil, nil
	}
	if in.Name != nil {
		manufacturer.Name = *in.Name
	}
	manufacturer.UpdatedAt = time.Now()
	if err := uc.repo.Update(manufacturer); err != nil {
		return nil, err
	}
	return toManufacturerResponse(manufacturer), nil
}

// Delete elimina un fabricante por ID.
func (uc *ManufacturerUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toManufacturerResponse(m *entity.Manufacturer) *dto.ManufacturerResponse {
	return &dto.ManufacturerResponse{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
