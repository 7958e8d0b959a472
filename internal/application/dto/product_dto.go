package dto

import "time"

// CreateProductRequest entrada para crear un producto.
// ProductID es el código de negocio (ej. "004-020391"), no un ID generado.
type CreateProductRequest struct {
	ProductID    string `json:"product_id" validate:"required,min=1,max=100"`
	Name         string `json:"name" validate:"required,min=1,max=200"`
	Presentation string `json:"presentation"`
	Description  string `json:"description"`
}

// UpdateProductRequest entrada para actualizar un producto. Campos ausentes
// conservan su valor actual; product_id es la clave de búsqueda y no se muta.
type UpdateProductRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=200"`
	Presentation *string `json:"presentation"`
	Description  *string `json:"description"`
}

// IsEmpty reporta si el patch no trae ningún campo.
func (r UpdateProductRequest) IsEmpty() bool {
	return r.Name == nil && r.Presentation == nil && r.Description == nil
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ProductID    string    `json:"product_id"`
	Name         string    `json:"name"`
	Presentation string    `json:"presentation"`
	Description  string    `json:"description"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
