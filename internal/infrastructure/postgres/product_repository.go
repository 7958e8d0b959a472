package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/entity"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (product_id, name, presentation, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query,
		product.ProductID, product.Name, product.Presentation, product.Description,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByProductID obtiene un producto por su código de negocio.
func (r *ProductRepo) GetByProductID(ctx context.Context, productID string) (*entity.Product, error) {
	query := `
		SELECT product_id, name, presentation, description, created_at, updated_at
		FROM products WHERE product_id = $1`
	return r.scanOne(ctx, query, productID)
}

// GetByProductIDForUpdate obtiene el producto bloqueando su fila (SELECT FOR UPDATE).
// Dentro de una transacción serializa a los escritores del mismo producto.
func (r *ProductRepo) GetByProductIDForUpdate(ctx context.Context, productID string) (*entity.Product, error) {
	query := `
		SELECT product_id, name, presentation, description, created_at, updated_at
		FROM products WHERE product_id = $1
		FOR UPDATE`
	return r.scanOne(ctx, query, productID)
}

func (r *ProductRepo) scanOne(ctx context.Context, query string, args ...any) (*entity.Product, error) {
	var p entity.Product
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ProductID, &p.Name, &p.Presentation, &p.Description, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return &p, nil
}

// List lista el catálogo completo.
func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	query := `
		SELECT product_id, name, presentation, description, created_at, updated_at
		FROM products ORDER BY product_id`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ProductID, &p.Name, &p.Presentation, &p.Description, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza los campos mutables de un producto (no su product_id).
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET name = $2, presentation = $3, description = $4, updated_at = $5
		WHERE product_id = $1`
	_, err := r.q.Exec(ctx, query,
		product.ProductID, product.Name, product.Presentation, product.Description, product.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por código. Devuelve false si no existía.
func (r *ProductRepo) Delete(ctx context.Context, productID string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE product_id = $1`, productID)
	if err != nil {
		return false, fmt.Errorf("delete product: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

// DeleteAll vacía el catálogo y devuelve cuántos productos se borraron.
func (r *ProductRepo) DeleteAll(ctx context.Context) (int64, error) {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products`)
	if err != nil {
		return 0, fmt.Errorf("delete all products: %w", err)
	}
	return cmd.RowsAffected(), nil
}
