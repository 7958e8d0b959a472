package ledger

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/dto"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/entity"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/repository"
)

// StockLedger es el dueño del historial de movimientos: calcula el stock
// actual de un producto y valida que ninguna salida (en create o update) lo
// deje negativo. El stock no se almacena; se recalcula del historial completo
// en cada consulta o validación.
type StockLedger struct {
	txRunner  TxRunner
	movements repository.MovementRepository
	products  repository.ProductRepository
}

// NewStockLedger construye el caso de uso. movements/products se usan para
// lecturas fuera de transacción; las mutaciones corren dentro de txRunner.
func NewStockLedger(txRunner TxRunner, movements repository.MovementRepository, products repository.ProductRepository) *StockLedger {
	return &StockLedger{txRunner: txRunner, movements: movements, products: products}
}

// sumStock suma IN menos OUT sobre un historial de movimientos.
func sumStock(movements []*entity.Movement) decimal.Decimal {
	total := decimal.Zero
	for _, m := range movements {
		switch m.Type {
		case entity.MovementTypeIN:
			total = total.Add(m.Quantity)
		case entity.MovementTypeOUT:
			total = total.Sub(m.Quantity)
		}
	}
	return total
}

// ComputeStock calcula el stock actual de un producto: suma de entradas menos
// suma de salidas sobre su historial completo. Sin movimientos devuelve 0;
// el producto no necesita existir. Sin efectos secundarios.
func (uc *StockLedger) ComputeStock(ctx context.Context, productID string) (decimal.Decimal, error) {
	movements, err := uc.movements.ListByProduct(ctx, productID)
	if err != nil {
		return decimal.Zero, err
	}
	return sumStock(movements), nil
}

// CreateMovement valida y registra un movimiento. Para OUT, el stock actual
// se calcula y compara dentro de la misma transacción que bloquea la fila
// del producto, así dos salidas concurrentes no pueden validar contra el
// mismo stock desactualizado.
func (uc *StockLedger) CreateMovement(ctx context.Context, in dto.CreateMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" || in.Type == "" || in.Quantity == nil {
		return nil, domain.ErrInvalidInput
	}
	if !entity.ValidMovementType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	date := now
	if in.Date != nil {
		date = *in.Date
	}
	movement := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  *in.Quantity,
		Date:      date,
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}

	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		product, err := productRepo.GetByProductIDForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		if in.Type == entity.MovementTypeOUT {
			history, err := movRepo.ListByProduct(ctx, in.ProductID)
			if err != nil {
				return err
			}
			stock := sumStock(history)
			if in.Quantity.GreaterThan(stock) {
				return &domain.InsufficientStockError{
					ProductID: in.ProductID,
					Available: stock,
					Requested: *in.Quantity,
				}
			}
		}
		return movRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(movement), nil
}

// UpdateMovement aplica un patch parcial a un movimiento. El stock efectivo
// se recalcula excluyendo el movimiento editado, para que su propia
// contribución previa no cuente contra sí mismo. Si el patch mueve el
// movimiento a otro producto no se valida el stock resultante del producto
// original: quitarle un movimiento solo puede subir su stock.
func (uc *StockLedger) UpdateMovement(ctx context.Context, id string, in dto.UpdateMovementRequest) (*dto.MovementResponse, error) {
	if in.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	if in.Type != nil && !entity.ValidMovementType(*in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Quantity != nil && !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}

	var updated *entity.Movement
	err := uc.txRunner.Run(ctx, func(movRepo repository.MovementRepository, productRepo repository.ProductRepository) error {
		movement, err := movRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if movement == nil {
			return domain.ErrNotFound
		}

		// Valores efectivos: patch si viene, valor actual si no.
		effProductID := movement.ProductID
		if in.ProductID != nil {
			effProductID = *in.ProductID
		}
		effType := movement.Type
		if in.Type != nil {
			effType = *in.Type
		}
		effQuantity := movement.Quantity
		if in.Quantity != nil {
			effQuantity = *in.Quantity
		}

		product, err := productRepo.GetByProductIDForUpdate(ctx, effProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}

		if effType == entity.MovementTypeOUT {
			history, err := movRepo.ListByProductExcluding(ctx, effProductID, id)
			if err != nil {
				return err
			}
			available := sumStock(history)
			if effQuantity.GreaterThan(available) {
				return &domain.InsufficientStockError{
					ProductID: effProductID,
					Available: available,
					Requested: effQuantity,
				}
			}
		}

		movement.ProductID = effProductID
		movement.Type = effType
		movement.Quantity = effQuantity
		if in.Date != nil {
			movement.Date = *in.Date
		}
		if in.Notes != nil {
			movement.Notes = *in.Notes
		}
		movement.UpdatedAt = time.Now()
		if err := movRepo.Update(ctx, movement); err != nil {
			return err
		}
		updated = movement
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMovementResponse(updated), nil
}

// DeleteMovement borra un movimiento si existe. No re-valida stock: borrar
// una entrada (IN) puede dejar el stock calculado del producto en negativo;
// comportamiento conocido, los borrados se tratan como correcciones.
func (uc *StockLedger) DeleteMovement(ctx context.Context, id string) error {
	found, err := uc.movements.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAllMovements borra todo el historial y devuelve cuántos registros
// se eliminaron.
func (uc *StockLedger) DeleteAllMovements(ctx context.Context) (int64, error) {
	return uc.movements.DeleteAll(ctx)
}

// GetMovement obtiene un movimiento por ID. Devuelve nil si no existe.
func (uc *StockLedger) GetMovement(ctx context.Context, id string) (*dto.MovementResponse, error) {
	movement, err := uc.movements.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if movement == nil {
		return nil, nil
	}
	return toMovementResponse(movement), nil
}

// ListMovements lista todos los movimientos.
func (uc *StockLedger) ListMovements(ctx context.Context) ([]dto.MovementResponse, error) {
	movements, err := uc.movements.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		out = append(out, *toMovementResponse(m))
	}
	return out, nil
}

// StockByProduct devuelve el stock calculado y el nombre del producto.
// Producto desconocido devuelve ErrNotFound sin calcular stock.
func (uc *StockLedger) StockByProduct(ctx context.Context, productID string) (*dto.StockResponse, error) {
	product, err := uc.products.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	stock, err := uc.ComputeStock(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID:   product.ProductID,
		ProductName: product.Name,
		StockKg:     stock,
	}, nil
}

func toMovementResponse(m *entity.Movement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Date:      m.Date,
		Notes:     m.Notes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
