package repository

import (
	"context"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// La búsqueda es siempre por product_id (código de negocio).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByProductID(ctx context.Context, productID string) (*entity.Product, error)
	// GetByProductIDForUpdate obtiene el producto bloqueando su fila
	// (SELECT FOR UPDATE) para serializar validaciones de stock por producto.
	// Fuera de una transacción se comporta como GetByProductID.
	GetByProductIDForUpdate(ctx context.Context, productID string) (*entity.Product, error)
	List(ctx context.Context) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, productID string) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}
