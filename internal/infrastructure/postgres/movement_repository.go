package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/entity"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, product_id, type, quantity, date, notes, created_at, updated_at`

// MovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *MovementRepo) Create(ctx context.Context, movement *entity.Movement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, type, quantity, date, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Date, movement.Notes, movement.CreatedAt, movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID.
func (r *MovementRepo) GetByID(ctx context.Context, id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(ctx, query, id).Scan(
		&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Date, &m.Notes, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// List lista todos los movimientos, más recientes primero.
func (r *MovementRepo) List(ctx context.Context) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements ORDER BY date DESC`
	return r.scanList(ctx, query)
}

// ListByProduct devuelve el historial completo de un producto.
func (r *MovementRepo) ListByProduct(ctx context.Context, productID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1`
	return r.scanList(ctx, query, productID)
}

// ListByProductExcluding devuelve el historial de un producto sin el movimiento indicado.
func (r *MovementRepo) ListByProductExcluding(ctx context.Context, productID, excludeID string) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE product_id = $1 AND id <> $2`
	return r.scanList(ctx, query, productID, excludeID)
}

func (r *MovementRepo) scanList(ctx context.Context, query string, args ...any) ([]*entity.Movement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.Date, &m.Notes, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update persiste todos los campos de un movimiento existente.
func (r *MovementRepo) Update(ctx context.Context, movement *entity.Movement) error {
	query := `
		UPDATE movements SET product_id = $2, type = $3, quantity = $4, date = $5, notes = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.ProductID, movement.Type, movement.Quantity,
		movement.Date, movement.Notes, movement.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update movement: %w", err)
	}
	return nil
}

// Delete elimina un movimiento por ID. Devuelve false si no existía.
func (r *MovementRepo) Delete(ctx context.Context, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("delete movement: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// DeleteAll borra todo el historial y devuelve cuántos movimientos se eliminaron.
func (r *MovementRepo) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM movements`)
	if err != nil {
		return 0, fmt.Errorf("delete all movements: %w", err)
	}
	return cmd.RowsAffected(), nil
}
