package repository

import "github.com/jcastro/stockflow-api/internal/domain/entity"

// Puertos CRUD para los recursos de catálogo. Todos siguen el mismo contrato:
// GetByID devuelve (nil, nil) cuando el recurso no existe.

// CategoryRepository persistencia de categorías.
type CategoryRepository interface {
	Create(category *entity.Category) error
	GetByID(id string) (*entity.Category, error)
	List(limit, offset int) ([]*entity.Category, error)
	Update(category *entity.Category) error
	Delete(id string) error
}

// ManufacturerRepository persistencia de fabricantes.
type ManufacturerRepository interface {
	Create(manufacturer *entity.Manufacturer) error
	GetByID(id string) (*entity.Manufacturer, error)
	List(limit, offset int) ([]*entity.Manufacturer, error)
	Update(manufacturer *entity.Manufacturer) error
	Delete(id string) error
}

// UnitOfMeasureRepository persistencia de unidades de medida.
type UnitOfMeasureRepository interface {
	Create(unit *entity.UnitOfMeasure) error
	GetByID(id string) (*entity.UnitOfMeasure, error)
	List(limit, offset int) ([]*entity.UnitOfMeasure, error)
	Update(unit *entity.UnitOfMeasure) error
	Delete(id string) error
}

// LocationRepository persistencia de ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	List(limit, offset int) ([]*entity.Location, error)
	Update(location *entity.Location) error
	Delete(id string) error
}

// SupplierRepository persistencia de proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	List(limit, offset int) ([]*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	Delete(id string) error
}

// CustomerRepository persistencia de clientes.
type CustomerRepository interface {
	Create(customer *entity.Customer) error
	GetByID(id string) (*entity.Customer, error)
	List(limit, offset int) ([]*entity.Customer, error)
	Update(customer *entity.Customer) error
	Delete(id string) error
}
