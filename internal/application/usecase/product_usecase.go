package usecase

import (
	"context"
	"time"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/dto"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/entity"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para el catálogo. El stock no vive aquí:
// se deriva del historial de movimientos en el ledger.
type ProductUseCase struct {
	repo repository.ProductRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo}
}

// Create crea un producto nuevo. product_id debe ser único en el catálogo.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.ProductID == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByProductID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	now := time.Now()
	product := &entity.Product{
		ProductID:    in.ProductID,
		Name:         in.Name,
		Presentation: in.Presentation,
		Description:  in.Description,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByProductID obtiene un producto por su código. Devuelve nil si no existe.
func (uc *ProductUseCase) GetByProductID(ctx context.Context, productID string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, nil
	}
	return toProductResponse(product), nil
}

// List lista el catálogo completo.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// Update aplica un patch parcial a los campos mutables; product_id es la
// clave de búsqueda y no cambia.
func (uc *ProductUseCase) Update(ctx context.Context, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.IsEmpty() {
		return nil, domain.ErrInvalidInput
	}
	product, err := uc.repo.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Presentation != nil {
		product.Presentation = *in.Presentation
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete elimina un producto por código. No se rechaza aunque existan
// movimientos que lo referencien.
func (uc *ProductUseCase) Delete(ctx context.Context, productID string) error {
	found, err := uc.repo.Delete(ctx, productID)
	if err != nil {
		return err
	}
	if !found {
		return domain.ErrNotFound
	}
	return nil
}

// DeleteAll vacía el catálogo y devuelve cuántos productos se borraron.
func (uc *ProductUseCase) DeleteAll(ctx context.Context) (int64, error) {
	return uc.repo.DeleteAll(ctx)
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ProductID:    p.ProductID,
		Name:         p.Name,
		Presentation: p.Presentation,
		Description:  p.Description,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}
