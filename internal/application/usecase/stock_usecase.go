package usecase

import (
	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

// StockUseCase consultas de solo lectura sobre el snapshot y el libro de movimientos.
type StockUseCase struct {
	stockRepo    repository.StockLevelRepository
	movRepo      repository.StockMovementRepository
	locationRepo repository.LocationRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(
	stockRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	locationRepo repository.LocationRepository,
) *StockUseCase {
	return &StockUseCase{stockRepo: stockRepo, movRepo: movRepo, locationRepo: locationRepo}
}

// GetStockForLocation lista los snapshots de una ubicación, enriquecidos con
// variante y producto para la vista de inventario.
func (uc *StockUseCase) GetStockForLocation(locationID string) ([]dto.LocationStockResponse, error) {
	loc, err := uc.locationRepo.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	levels, err := uc.stockRepo.ListByLocation(locationID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationStockResponse, 0, len(levels))
	for _, l := range levels {
		out = append(out, dto.LocationStockResponse{
			ProductVariantID: l.ProductVariantID,
			LocationID:       l.LocationID,
			Quantity:         l.Quantity,
			UpdatedAt:        l.UpdatedAt,
			SKU:              l.SKU,
			Price:            l.Price,
			ProductID:        l.ProductID,
			ProductName:      l.ProductName,
		})
	}
	return out, nil
}

// GetMovements devuelve el historial de movimientos de un par (variante, ubicación),
// o de un documento si se pasa referenceID (tiene prioridad sobre el par).
func (uc *StockUseCase) GetMovements(productVariantID, locationID, referenceID string, limit, offset int) ([]dto.StockMovementResponse, error) {
	var (
		movs []*entity.StockMovement
		err  error
	)
	switch {
	case referenceID != "":
		movs, err = uc.movRepo.ListByReference(referenceID)
	case productVariantID != "" && locationID != "":
		movs, err = uc.movRepo.ListByVariantAndLocation(productVariantID, locationID, limit, offset)
	default:
		return nil, domain.ErrInvalidInput
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, dto.StockMovementResponse{
			ID:               m.ID,
			ProductVariantID: m.ProductVariantID,
			LocationID:       m.LocationID,
			Quantity:         m.Quantity,
			MovementType:     m.MovementType,
			ReferenceID:      m.ReferenceID,
			CreatedAt:        m.CreatedAt,
		})
	}
	return out, nil
}
