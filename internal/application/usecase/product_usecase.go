package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/domain"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos y variantes.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto con al menos una variante (escritura anidada atómica en el repo).
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.CategoryID == "" || in.UnitID == "" || len(in.Variants) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, v := range in.Variants {
		if v.SKU == "" || !v.Price.IsPositive() || v.ReorderLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
	}
	now := time.Now()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           in.Name,
		CategoryID:     in.CategoryID,
		UnitID:         in.UnitID,
		ManufacturerID: in.ManufacturerID,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	for _, v := range in.Variants {
		product.Variants = append(product.Variants, entity.ProductVariant{
			ID:           uuid.New().String(),
			ProductID:    product.ID,
			SKU:          v.SKU,
			Price:        v.Price,
			ReorderLevel: v.ReorderLevel,
			Attributes:   v.Attributes,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
	}
	if err := uc.repo.CreateWithVariants(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID obtiene un producto con sus variantes.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(limit, offset int) (*dto.ProductListResponse, error) {
	list, err := uc.repo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: limit, Offset: offset},
	}, nil
}

// Update actualiza los campos enviados de un producto.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.CategoryID != nil {
		product.CategoryID = *in.CategoryID
	}
	if in.UnitID != nil {
		product.UnitID = *in.UnitID
	}
	if in.ManufacturerID != nil {
		product.ManufacturerID = in.ManufacturerID
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// UpdateVariant actualiza los campos enviados de una variante.
func (uc *ProductUseCase) UpdateVariant(variantID string, in dto.UpdateProductVariantRequest) (*dto.ProductVariantResponse, error) {
	variant, err := uc.repo.GetVariantByID(variantID)
	if err != nil {
		return nil, err
	}
	if variant == nil {
		return nil, nil
	}
	if in.SKU != nil {
		variant.SKU = *in.SKU
	}
	if in.Price != nil {
		variant.Price = *in.Price
	}
	if in.ReorderLevel != nil {
		variant.ReorderLevel = *in.ReorderLevel
	}
	if in.Attributes != nil {
		variant.Attributes = in.Attributes
	}
	variant.UpdatedAt = time.Now()
	if err := uc.repo.UpdateVariant(variant); err != nil {
		return nil, err
	}
	resp := toVariantResponse(variant)
	return &resp, nil
}

// Delete elimina un producto. Puede fallar con conflicto si las variantes
// tienen ventas o movimientos relacionados.
func (uc *ProductUseCase) Delete(id string) error {
	return uc.repo.Delete(id)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	variants := make([]dto.ProductVariantResponse, 0, len(p.Variants))
	for i := range p.Variants {
		variants = append(variants, toVariantResponse(&p.Variants[i]))
	}
	return &dto.ProductResponse{
		ID:             p.ID,
		Name:           p.Name,
		CategoryID:     p.CategoryID,
		UnitID:         p.UnitID,
		ManufacturerID: p.ManufacturerID,
		CreatedAt:      p.CreatedAt,
		UpdatedAt:      p.UpdatedAt,
		Variants:       variants,
	}
}

func toVariantResponse(v *entity.ProductVariant) dto.ProductVariantResponse {
	return dto.ProductVariantResponse{
		ID:           v.ID,
		ProductID:    v.ProductID,
		SKU:          v.SKU,
		Price:        v.Price,
		ReorderLevel: v.ReorderLevel,
		Attributes:   v.Attributes,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}
