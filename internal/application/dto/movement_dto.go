package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMovementRequest body para POST /api/movements.
// Date es opcional: si no viene, se usa la hora de creación.
type CreateMovementRequest struct {
	ProductID string           `json:"product_id" validate:"required"`
	Type      string           `json:"type" validate:"required,oneof=IN OUT"`
	Quantity  *decimal.Decimal `json:"quantity" validate:"required"`
	Date      *time.Time       `json:"date,omitempty"`
	Notes     string           `json:"notes,omitempty"`
}

// UpdateMovementRequest body para PUT /api/movements/:id. Cada campo ausente
// conserva el valor actual del movimiento; cualquier cambio de
// product_id/type/quantity re-dispara la validación de stock.
type UpdateMovementRequest struct {
	ProductID *string          `json:"product_id,omitempty"`
	Type      *string          `json:"type,omitempty"`
	Quantity  *decimal.Decimal `json:"quantity,omitempty"`
	Date      *time.Time       `json:"date,omitempty"`
	Notes     *string          `json:"notes,omitempty"`
}

// IsEmpty reporta si el patch no trae ningún campo.
func (r UpdateMovementRequest) IsEmpty() bool {
	return r.ProductID == nil && r.Type == nil && r.Quantity == nil &&
		r.Date == nil && r.Notes == nil
}

// MovementResponse salida de un movimiento.
type MovementResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Type      string          `json:"type"`
	Quantity  decimal.Decimal `json:"quantity"`
	Date      time.Time       `json:"date"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// StockResponse salida de GET /api/movements/stock/:product_id.
type StockResponse struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	StockKg     decimal.Decimal `json:"stockKg"`
}
