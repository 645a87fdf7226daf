package repository

import "github.com/jcastro/stockflow-api/internal/domain/entity"

// StockLevelRepository define el puerto para el snapshot de stock por (variante, ubicación).
// ApplyDelta debe ser un upsert-con-incremento atómico en una sola sentencia SQL:
// nunca leer-y-escribir en la aplicación, porque dos requests concurrentes se pisarían.
type StockLevelRepository interface {
	// ApplyDelta suma delta (puede ser negativo) a la fila del par, creándola si no existe,
	// y devuelve el snapshot resultante.
	ApplyDelta(productVariantID, locationID string, delta int) (*entity.StockLevel, error)
	Get(productVariantID, locationID string) (*entity.StockLevel, error)
	ListByLocation(locationID string) ([]*entity.StockLevelWithVariant, error)
}
