package repository

import "github.com/jcastro/stockflow-api/internal/domain/entity"

// ProductRepository define el puerto de persistencia para productos y variantes.
type ProductRepository interface {
	CreateWithVariants(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	Delete(id string) error
	GetVariantByID(variantID string) (*entity.ProductVariant, error)
	UpdateVariant(variant *entity.ProductVariant) error
}
