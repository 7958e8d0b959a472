package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada
	MovementTypeOUT = "OUT" // salida
)

// ValidMovementType reporta si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT
}

// Movement representa un movimiento de inventario (entrada o salida en kg)
// contra un producto. Quantity siempre es positiva; el signo lo da Type.
// El stock nunca se almacena: se recalcula sumando IN menos OUT del
// historial completo del producto.
type Movement struct {
	ID        string // UUID generado por el sistema, estable una vez creado
	ProductID string
	Type      string
	Quantity  decimal.Decimal
	Date      time.Time
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
