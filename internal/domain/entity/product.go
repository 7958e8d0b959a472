package entity

import "time"

// Product representa un producto del catálogo. ProductID es el código de
// negocio (ej. "004-020391"), único en todo el catálogo y referenciado por
// cada movimiento; no es un identificador generado.
type Product struct {
	ProductID    string
	Name         string
	Presentation string
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
