package ledger

import (
	"context"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La secuencia leer-validar-escribir del motor
// de stock corre completa dentro de Run: junto con el bloqueo de la fila del
// producto (GetByProductIDForUpdate) serializa a los escritores concurrentes
// del mismo producto y cierra la ventana check-then-act.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		productRepo repository.ProductRepository,
	) error) error
}
