package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/dto"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/ledger"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain"
	"github.com/DonnyDianderas/dcp-inventory-api/pkg/logger"
)

// MovementHandler maneja las peticiones HTTP de movimientos y stock (protegido).
type MovementHandler struct {
	ledger *ledger.StockLedger
	log    *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(ledger *ledger.StockLedger, log *logger.Logger) *MovementHandler {
	return &MovementHandler{ledger: ledger, log: log}
}

// Create godoc
// @Summary      Registrar movimiento de inventario (IN o OUT)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateMovementRequest  true  "product_id, type (IN|OUT), quantity; date y notes opcionales"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.StockErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *MovementHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.CreateMovement(c.Context(), in)
	if err != nil {
		return h.mapLedgerError(c, err, "producto no encontrado")
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	out, err := h.ledger.ListMovements(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener movimiento por ID
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento (UUID)"
// @Success      200  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de movimiento inválido"})
	}
	out, err := h.ledger.GetMovement(c.Context(), id)
	if err != nil {
		return h.internalError(c, err)
	}
	if out == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar movimiento (patch parcial, re-valida stock)
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del movimiento (UUID)"
// @Param        body  body  dto.UpdateMovementRequest  true  "Campos a cambiar; los ausentes se conservan"
// @Success      200   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.StockErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [put]
func (h *MovementHandler) Update(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de movimiento inválido"})
	}
	var in dto.UpdateMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.ledger.UpdateMovement(c.Context(), id, in)
	if err != nil {
		return h.mapLedgerError(c, err, "movimiento o producto no encontrado")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Borrar movimiento (no re-valida stock)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento (UUID)"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	id, ok := movementID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "id de movimiento inválido"})
	}
	if err := h.ledger.DeleteMovement(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "movimiento no encontrado"})
		}
		return h.internalError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "movimiento eliminado"})
}

// DeleteAll godoc
// @Summary      Borrar todos los movimientos
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DeletedResponse
// @Router       /api/movements [delete]
func (h *MovementHandler) DeleteAll(c *fiber.Ctx) error {
	count, err := h.ledger.DeleteAllMovements(c.Context())
	if err != nil {
		return h.internalError(c, err)
	}
	return c.JSON(dto.DeletedResponse{Deleted: count, Message: "movimientos eliminados"})
}

// StockByProduct godoc
// @Summary      Stock actual (kg) de un producto
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        product_id  path  string  true  "Código del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/stock/{product_id} [get]
func (h *MovementHandler) StockByProduct(c *fiber.Ctx) error {
	productID := c.Params("product_id")
	out, err := h.ledger.StockByProduct(c.Context(), productID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		}
		return h.internalError(c, err)
	}
	return c.JSON(out)
}

// movementID valida el formato UUID del parámetro :id.
func movementID(c *fiber.Ctx) (string, bool) {
	id := c.Params("id")
	if _, err := uuid.Parse(id); err != nil {
		return "", false
	}
	return id, true
}

// mapLedgerError traduce los errores del ledger a respuestas HTTP.
func (h *MovementHandler) mapLedgerError(c *fiber.Ctx, err error, notFoundMsg string) error {
	if ise, ok := domain.IsInsufficientStock(err); ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.StockErrorResponse{
			Code:        "INSUFFICIENT_STOCK",
			Message:     "stock insuficiente",
			AvailableKg: ise.Available,
		})
	}
	if errors.Is(err, domain.ErrInvalidInput) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	}
	if errors.Is(err, domain.ErrNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: notFoundMsg})
	}
	return h.internalError(c, err)
}

// internalError registra el detalle y responde con mensaje genérico
// (el texto interno no se filtra al cliente).
func (h *MovementHandler) internalError(c *fiber.Ctx, err error) error {
	h.log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}
