package repository

import (
	"context"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia para movimientos.
type MovementRepository interface {
	Create(ctx context.Context, movement *entity.Movement) error
	GetByID(ctx context.Context, id string) (*entity.Movement, error)
	List(ctx context.Context) ([]*entity.Movement, error)
	// ListByProduct devuelve el historial completo de un producto; el stock
	// se calcula siempre sobre este listado, nunca se cachea.
	ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error)
	// ListByProductExcluding devuelve el historial de un producto sin el
	// movimiento indicado (para validar ediciones sin contarse a sí mismas).
	ListByProductExcluding(ctx context.Context, productID, excludeID string) ([]*entity.Movement, error)
	Update(ctx context.Context, movement *entity.Movement) error
	Delete(ctx context.Context, id string) (bool, error)
	DeleteAll(ctx context.Context) (int64, error)
}
