package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/auth"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/ledger"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/report"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/usecase"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/entity"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/domain/repository"
	apphttp "github.com/DonnyDianderas/dcp-inventory-api/internal/interfaces/http"
	pkgjwt "github.com/DonnyDianderas/dcp-inventory-api/pkg/jwt"
	"github.com/DonnyDianderas/dcp-inventory-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testUserID    = "00000000-0000-0000-0000-000000000001"
	testIssuer    = "dcp-inventory-api-test"
	testExpMin    = 60
)

// ──────────────────────────────────────────────────────────────────────────────
// Stubs en memoria
// ──────────────────────────────────────────────────────────────────────────────

type stubMovementRepo struct {
	movements map[string]*entity.Movement
}

func newStubMovementRepo() *stubMovementRepo {
	return &stubMovementRepo{movements: make(map[string]*entity.Movement)}
}

func (r *stubMovementRepo) Create(_ context.Context, m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	cp := *m
	r.movements[m.ID] = &cp
	return nil
}

func (r *stubMovementRepo) GetByID(_ context.Context, id string) (*entity.Movement, error) {
	m, ok := r.movements[id]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *stubMovementRepo) List(_ context.Context) ([]*entity.Movement, error) {
	out := make([]*entity.Movement, 0, len(r.movements))
	for _, m := range r.movements {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *stubMovementRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.ProductID == productID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) ListByProductExcluding(_ context.Context, productID, excludeID string) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for _, m := range r.movements {
		if m.ProductID == productID && m.ID != excludeID {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *stubMovementRepo) Update(_ context.Context, m *entity.Movement) error {
	cp := *m
	r.movements[m.ID] = &cp
	return nil
}

func (r *stubMovementRepo) Delete(_ context.Context, id string) (bool, error) {
	if _, ok := r.movements[id]; !ok {
		return false, nil
	}
	delete(r.movements, id)
	return true, nil
}

func (r *stubMovementRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(r.movements))
	r.movements = make(map[string]*entity.Movement)
	return n, nil
}

type stubProductRepo struct {
	products map[string]*entity.Product
}

func newStubProductRepo() *stubProductRepo {
	return &stubProductRepo{products: make(map[string]*entity.Product)}
}

func (r *stubProductRepo) Create(_ context.Context, p *entity.Product) error {
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

type stubUserRepo struct {
	users map[string]*entity.User
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*entity.User)}
}

func (r *stubUserRepo) Create(_ context.Context, u *entity.User) error {
	r.users[u.Username] = u
	return nil
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	u, ok := r.users[username]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *stubUserRepo) UpdateLastLogin(_ context.Context, userID string) error {
	for _, u := range r.users {
		if u.ID == userID {
			now := time.Now()
			u.LastLogin = &now
		}
	}
	return nil
}

type stubTxRunner struct {
	movements *stubMovementRepo
	products  *stubProductRepo
}

func (r *stubTxRunner) Run(_ context.Context, fn func(
	movRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
) error) error {
	return fn(r.movements, r.products)
}

// stubPDF evita generar un PDF real en los tests del handler.
type stubPDF struct{}

func (stubPDF) GenerateStockReport(_ []report.StockReportRow, _ time.Time) ([]byte, error) {
	return []byte("%PDF-1.4 stub"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	app       *fiber.App
	movements *stubMovementRepo
	products  *stubProductRepo
	users     *stubUserRepo
}

func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	movements := newStubMovementRepo()
	products := newStubProductRepo()
	users := newStubUserRepo()
	runner := &stubTxRunner{movements: movements, products: products}
	log := logger.New(logger.Config{Env: "production", Level: "error"})

	stockLedger := ledger.NewStockLedger(runner, movements, products)
	productUC := usecase.NewProductUseCase(products)
	reportUC := report.NewStockReportUseCase(products, stockLedger, stubPDF{})
	authUC := auth.NewAuthUseCase(users, auth.JWTConfig{
		Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
	})

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		ProductUC:   productUC,
		StockLedger: stockLedger,
		StockReport: reportUC,
		AuthUC:      authUC,
		JWTSecret:   testJWTSecret,
		Log:         log,
	})
	return &testEnv{app: app, movements: movements, products: products, users: users}
}

func authToken(t *testing.T) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, "tester", entity.RoleUser, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func doJSON(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	defer resp.Body.Close()
	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenario end-to-end: producto, entrada, stock, salida excesiva
// ──────────────────────────────────────────────────────────────────────────────

func TestEscenario_EntradaStockYSalidaExcesiva(t *testing.T) {
	env := buildTestApp(t)
	token := authToken(t)

	// POST /api/products {product_id:"001-0001", name:"X"} → 201
	resp := doJSON(t, env.app, http.MethodPost, "/api/products/", token, map[string]any{
		"product_id": "001-0001",
		"name":       "X",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// POST /api/movements {type:"IN", quantity:50} → 201
	resp = doJSON(t, env.app, http.MethodPost, "/api/movements/", token, map[string]any{
		"product_id": "001-0001",
		"type":       "IN",
		"quantity":   50,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// GET /api/movements/stock/001-0001 → stockKg 50
	resp = doJSON(t, env.app, http.MethodGet, "/api/movements/stock/001-0001", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "001-0001", body["product_id"])
	assert.Equal(t, "X", body["product_name"])
	assertDecimal(t, body["stockKg"], 50)

	// POST OUT 60 → 400 con availableKg 50
	resp = doJSON(t, env.app, http.MethodPost, "/api/movements/", token, map[string]any{
		"product_id": "001-0001",
		"type":       "OUT",
		"quantity":   60,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body = decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assertDecimal(t, body["availableKg"], 50)

	// El historial sigue con un solo movimiento.
	assert.Len(t, env.movements.movements, 1)
}

// assertDecimal acepta la representación JSON de decimal (string o número).
func assertDecimal(t *testing.T, v any, expected int64) {
	t.Helper()
	var d decimal.Decimal
	switch x := v.(type) {
	case string:
		parsed, err := decimal.NewFromString(x)
		require.NoError(t, err)
		d = parsed
	case float64:
		d = decimal.NewFromFloat(x)
	default:
		t.Fatalf("valor decimal inesperado: %T", v)
	}
	assert.True(t, d.Equal(decimal.NewFromInt(expected)), "esperado %d, fue %s", expected, d)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth gate
// ──────────────────────────────────────────────────────────────────────────────

func TestRutasProtegidas_SinToken_401SinTocarPersistencia(t *testing.T) {
	env := buildTestApp(t)

	paths := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/movements/"},
		{http.MethodPost, "/api/movements/"},
		{http.MethodGet, "/api/products/"},
		{http.MethodPost, "/api/products/"},
		{http.MethodGet, "/api/reports/stock"},
	}
	for _, p := range paths {
		resp := doJSON(t, env.app, p.method, p.path, "", map[string]any{
			"product_id": "001-0001", "name": "X", "type": "IN", "quantity": 1,
		})
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "%s %s", p.method, p.path)
		resp.Body.Close()
	}
	assert.Empty(t, env.movements.movements, "la persistencia no debe tocarse sin sesión")
	assert.Empty(t, env.products.products)
}

func TestRutasProtegidas_TokenInvalido_401(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/movements/", "Bearer token.invalido.aqui", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Movements: validaciones HTTP
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementGet_IDInvalido_400(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/movements/no-es-uuid", authToken(t), nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INVALID_ID", body["code"])
}

func TestMovementGet_Inexistente_404(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/movements/"+uuid.New().String(), authToken(t), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMovementCreate_ProductoInexistente_404(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodPost, "/api/movements/", authToken(t), map[string]any{
		"product_id": "no-existe", "type": "IN", "quantity": 10,
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestMovementCreate_TipoInvalido_400(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodPost, "/api/movements/", authToken(t), map[string]any{
		"product_id": "001-0001", "type": "TRANSFER", "quantity": 10,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMovementUpdate_BodyVacio_400(t *testing.T) {
	env := buildTestApp(t)
	token := authToken(t)
	seedProduct(t, env, "A")
	id := seedMovement(t, env, "A", "IN", 10)

	resp := doJSON(t, env.app, http.MethodPut, "/api/movements/"+id, token, map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestMovementUpdate_ExcluyendoseASiMismo(t *testing.T) {
	env := buildTestApp(t)
	token := authToken(t)
	seedProduct(t, env, "A")
	seedMovement(t, env, "A", "IN", 100)
	m2 := seedMovement(t, env, "A", "OUT", 100)

	// Con stock(A)=0, subir m2 a 101 falla reportando disponible 100.
	resp := doJSON(t, env.app, http.MethodPut, "/api/movements/"+m2, token, map[string]any{
		"quantity": 101,
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])
	assertDecimal(t, body["availableKg"], 100)

	// Mantener 100 sí pasa.
	resp = doJSON(t, env.app, http.MethodPut, "/api/movements/"+m2, token, map[string]any{
		"quantity": 100,
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestMovementDeleteAll_DevuelveCantidad(t *testing.T) {
	env := buildTestApp(t)
	token := authToken(t)
	seedProduct(t, env, "A")
	seedMovement(t, env, "A", "IN", 1)
	seedMovement(t, env, "A", "IN", 2)

	resp := doJSON(t, env.app, http.MethodDelete, "/api/movements/", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, float64(2), body["deleted"])
}

func TestStockByProduct_Inexistente_404(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodGet, "/api/movements/stock/no-existe", authToken(t), nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Products
// ──────────────────────────────────────────────────────────────────────────────

func TestProductCreate_Duplicado_409(t *testing.T) {
	env := buildTestApp(t)
	token := authToken(t)
	seedProduct(t, env, "X")

	resp := doJSON(t, env.app, http.MethodPost, "/api/products/", token, map[string]any{
		"product_id": "X", "name": "Otro",
	})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	resp.Body.Close()
}

func TestProductCreate_SinCamposRequeridos_400(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodPost, "/api/products/", authToken(t), map[string]any{
		"name": "sin product_id",
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestProductUpdate_Inexistente_404(t *testing.T) {
	env := buildTestApp(t)
	resp := doJSON(t, env.app, http.MethodPut, "/api/products/no-existe", authToken(t), map[string]any{
		"name": "Nuevo",
	})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestProductDelete_Ok(t *testing.T) {
	env := buildTestApp(t)
	token := authToken(t)
	seedProduct(t, env, "X")

	resp := doJSON(t, env.app, http.MethodDelete, "/api/products/X", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
	assert.Empty(t, env.products.products)
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth endpoints
// ──────────────────────────────────────────────────────────────────────────────

func TestAuth_RegisterYLogin(t *testing.T) {
	env := buildTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/register", "", map[string]any{
		"username": "donny",
		"email":    "donny@example.com",
		"password": "secreto-fuerte",
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = doJSON(t, env.app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "donny",
		"password": "secreto-fuerte",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	token, _ := body["token"].(string)
	require.NotEmpty(t, token)

	// El token emitido abre las rutas protegidas.
	resp = doJSON(t, env.app, http.MethodGet, "/api/movements/", "Bearer "+token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()
}

func TestAuth_LoginCredencialesInvalidas_401(t *testing.T) {
	env := buildTestApp(t)

	resp := doJSON(t, env.app, http.MethodPost, "/api/auth/login", "", map[string]any{
		"username": "nadie",
		"password": "lo-que-sea",
	})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()
}

// ──────────────────────────────────────────────────────────────────────────────
// Reports
// ──────────────────────────────────────────────────────────────────────────────

func TestReporteStock_DevuelvePDF(t *testing.T) {
	env := buildTestApp(t)
	token := authToken(t)
	seedProduct(t, env, "A")
	seedMovement(t, env, "A", "IN", 10)

	resp := doJSON(t, env.app, http.MethodGet, "/api/reports/stock", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	raw, err := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.NoError(t, err)
	assert.NotEmpty(t, raw)
}

// ── seeds ───────────────────────────────────────────────────────────────────

func seedProduct(t *testing.T, env *testEnv, productID string) {
	t.Helper()
	now := time.Now()
	require.NoError(t, env.products.Create(context.Background(), &entity.Product{
		ProductID: productID,
		Name:      productID,
		CreatedAt: now,
		UpdatedAt: now,
	}))
}

func seedMovement(t *testing.T, env *testEnv, productID, movType string, q int64) string {
	t.Helper()
	m := &entity.Movement{
		ID:        uuid.New().String(),
		ProductID: productID,
		Type:      movType,
		Quantity:  decimal.NewFromInt(q),
		Date:      time.Now(),
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	require.NoError(t, env.movements.Create(context.Background(), m))
	return m.ID
}
