package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jcastro/stockflow-api/internal/application/dto"
	"github.com/jcastro/stockflow-api/internal/application/fulfillment"
	"github.com/jcastro/stockflow-api/internal/application/usecase"
)

// StockHandler ajustes manuales y consultas de stock (protegido).
type StockHandler struct {
	fulfillmentUC *fulfillment.UseCase
	stockUC       *usecase.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(fulfillmentUC *fulfillment.UseCase, stockUC *usecase.StockUseCase) *StockHandler {
	return &StockHandler{fulfillmentUC: fulfillmentUC, stockUC: stockUC}
}

// Adjust godoc
// @Summary      Ajuste manual de stock
// @Description  Aplica un delta con signo al snapshot y registra el movimiento
//               en el libro, de forma atómica.
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "productVariantId, locationId, quantity (con signo), movementType, reason"
// @Success      200   {object}  dto.AdjustStockResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/adjust [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.fulfillmentUC.AdjustStock(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetByLocation godoc
// @Summary      Stock actual de una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        locationId  path  string  true  "UUID de la ubicación"
// @Success      200  {array}  dto.LocationStockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/location/{locationId} [get]
func (h *StockHandler) GetByLocation(c *fiber.Ctx) error {
	out, err := h.stockUC.GetStockForLocation(c.Params("locationId"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetMovements godoc
// @Summary      Historial de movimientos
// @Description  Filtra por referenceId, o por productVariantId + locationId.
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        productVariantId  query  string  false  "UUID de la variante"
// @Param        locationId        query  string  false  "UUID de la ubicación"
// @Param        referenceId       query  string  false  "documento origen"
// @Success      200  {array}  dto.StockMovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/movements [get]
func (h *StockHandler) GetMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	out, err := h.stockUC.GetMovements(
		c.Query("productVariantId"), c.Query("locationId"), c.Query("referenceId"),
		page.Limit, page.Offset,
	)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
