package dto

import "github.com/shopspring/decimal"

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// StockErrorResponse cuerpo de error cuando una salida excede el stock
// disponible; AvailableKg reporta el stock calculado en ese momento.
type StockErrorResponse struct {
	Code        string          `json:"code"`
	Message     string          `json:"message"`
	AvailableKg decimal.Decimal `json:"availableKg"`
}

// DeletedResponse respuesta de los delete-all (cantidad de registros borrados).
type DeletedResponse struct {
	Deleted int64  `json:"deleted"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
