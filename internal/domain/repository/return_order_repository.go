package repository

import "github.com/jcastro/stockflow-api/internal/domain/entity"

// ReturnOrderRepository define el puerto de persistencia para devoluciones.
type ReturnOrderRepository interface {
	CreateWithItems(ret *entity.ReturnOrder) error
	List(limit, offset int) ([]*entity.ReturnOrder, error)
}
