package fulfillment

import (
	"time"

	"github.com/google/uuid"
	"github.com/jcastro/stockflow-api/internal/domain/entity"
	"github.com/jcastro/stockflow-api/internal/domain/repository"
)

// movementIntent describe una mutación de stock pendiente de aplicar:
// cantidad con signo, tipo y referencia al documento que la origina.
type movementIntent struct {
	ProductVariantID string
	LocationID       string
	Quantity         int // con signo: positivo entra, negativo sale
	MovementType     string
	ReferenceID      string
}

// recordMovement aplica un intent contra los repos atados a la transacción del caller:
// exactamente un incremento atómico del snapshot y exactamente un registro en el libro.
// No impone cota inferior a la cantidad resultante: el stock negativo queda permitido
// (estado de sobreventa); es responsabilidad del caller decidir si lo acepta.
func recordMovement(
	stockRepo repository.StockLevelRepository,
	movRepo repository.StockMovementRepository,
	intent movementIntent,
	now time.Time,
) (*entity.StockLevel, *entity.StockMovement, error) {
	// Upsert-con-incremento en una sola sentencia SQL; crea la fila si es el
	// primer movimiento del par (variante, ubicación).
	level, err := stockRepo.ApplyDelta(intent.ProductVariantID, intent.LocationID, intent.Quantity)
	if err != nil {
		return nil, nil, err
	}

	mov := &entity.StockMovement{
		ID:               uuid.New().String(),
		ProductVariantID: intent.ProductVariantID,
		LocationID:       intent.LocationID,
		Quantity:         intent.Quantity,
		MovementType:     intent.MovementType,
		ReferenceID:      intent.ReferenceID,
		CreatedAt:        now,
	}
	if err := movRepo.Create(mov); err != nil {
		return nil, nil, err
	}
	return level, mov, nil
}
