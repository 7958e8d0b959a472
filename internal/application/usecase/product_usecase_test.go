package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/dto"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/usecase"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/entity"
)

// ── Stub en memoria ──────────────────────────────────────────────────────────

type stubProductRepo struct {
	products map[string]*entity.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*entity.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *entity.Product) error {
	if _, ok := r.products[p.ProductID]; ok {
		return domain.ErrDuplicate
	}
	r.products[p.ProductID] = p
	return nil
}

func (r *stubProductRepo) GetByProductID(_ context.Context, productID string) (*entity.Product, error) {
	p, ok := r.products[productID]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *stubProductRepo) GetByProductIDForUpdate(ctx context.Context, productID string) (*entity.Product, error) {
	return r.GetByProductID(ctx, productID)
}

func (r *stubProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.products))
	for _, p := range r.products {
		out = append(out, p)
	}
	return out, nil
}

func (r *stubProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.products[p.ProductID] = p
	return nil
}

func (r *stubProductRepo) Delete(_ context.Context, productID string) (bool, error) {
	if _, ok := r.products[productID]; !ok {
		return false, nil
	}
	delete(r.products, productID)
	return true, nil
}

func (r *stubProductRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(r.products))
	r.products = make(map[string]*entity.Product)
	return n, nil
}

// ── Tests ────────────────────────────────────────────────────────────────────

func TestProductCreate_Ok(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())

	out, err := uc.Create(context.Background(), dto.CreateProductRequest{
		ProductID:    "004-020391",
		Name:         "PHOSBIC MICRO",
		Presentation: "25 kg saco",
	})
	require.NoError(t, err)
	assert.Equal(t, "004-020391", out.ProductID)
	assert.Equal(t, "PHOSBIC MICRO", out.Name)
	assert.False(t, out.CreatedAt.IsZero())
}

func TestProductCreate_DuplicadoRechazado(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{ProductID: "X", Name: "Uno"})
	require.NoError(t, err)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{ProductID: "X", Name: "Dos"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestProductCreate_CamposRequeridos(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{Name: "sin id"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), dto.CreateProductRequest{ProductID: "sin-nombre"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductGet_InexistenteDevuelveNil(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())

	out, err := uc.GetByProductID(context.Background(), "no-existe")
	require.NoError(t, err)
	assert.Nil(t, out)
}

func TestProductUpdate_PatchParcial(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		ProductID:    "X",
		Name:         "Original",
		Presentation: "10 kg",
		Description:  "desc",
	})
	require.NoError(t, err)

	name := "Renombrado"
	out, err := uc.Update(context.Background(), "X", dto.UpdateProductRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Renombrado", out.Name)
	// Campos no incluidos en el patch se conservan.
	assert.Equal(t, "10 kg", out.Presentation)
	assert.Equal(t, "desc", out.Description)
}

func TestProductUpdate_PatchVacio_Invalido(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{ProductID: "X", Name: "N"})
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), "X", dto.UpdateProductRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestProductUpdate_Inexistente_NotFound(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())
	name := "N"
	_, err := uc.Update(context.Background(), "no-existe", dto.UpdateProductRequest{Name: &name})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDelete_Inexistente_NotFound(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())
	err := uc.Delete(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductDeleteAll_DevuelveCantidad(t *testing.T) {
	uc := usecase.NewProductUseCase(newStubProductRepo())
	_, err := uc.Create(context.Background(), dto.CreateProductRequest{ProductID: "A", Name: "A"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateProductRequest{ProductID: "B", Name: "B"})
	require.NoError(t, err)

	count, err := uc.DeleteAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
}
