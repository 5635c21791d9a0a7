package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Estoque-api/internal/application/analytics"
	"github.com/jhoicas/Estoque-api/internal/application/auth"
	"github.com/jhoicas/Estoque-api/internal/application/dto"
	appinv "github.com/jhoicas/Estoque-api/internal/application/inventory"
	"github.com/jhoicas/Estoque-api/internal/application/reports"
	"github.com/jhoicas/Estoque-api/internal/application/usecase"
	"github.com/jhoicas/Estoque-api/internal/domain/inventory"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/memory"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/security"
	"github.com/jhoicas/Estoque-api/internal/infrastructure/xlsx"
	apphttp "github.com/jhoicas/Estoque-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Aplicación completa sobre el almacén en memoria
// ──────────────────────────────────────────────────────────────────────────────

var fixedClock = inventory.ClockFunc(func() time.Time {
	return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
})

type apiFixture struct {
	app   *fiber.App
	token string
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	store := memory.NewStore()
	events := appinv.NewStockDispatcher(nil)

	app := apphttp.NewApp(apphttp.AppConfig{Name: "estoque-api-test"})
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(store.Users(), security.NewBcryptHasher(4), auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: testIssuer}),
		ProductUC:   usecase.NewProductUseCase(store.Products()),
		SupplierUC:  usecase.NewSupplierUseCase(store.Suppliers()),
		EntryUC:     appinv.NewEntryUseCase(store, store.Entries(), events, fixedClock),
		ExitUC:      appinv.NewExitUseCase(store, store.Exits(), events, fixedClock),
		DashboardUC: appanalytics.NewDashboardUseCase(store.Analytics(), 10, fixedClock),
		ReportUC: reports.NewReportUseCase(store.Products(), store.Entries(), store.Exits(),
			pdf.NewStockReportGenerator(10), xlsx.NewMovementsWorkbook(), fixedClock),
		JWTSecret: testJWTSecret,
	})

	f := &apiFixture{app: app}
	var reg dto.RegisterResponse
	resp := f.call(t, http.MethodPost, "/api/auth/register", map[string]string{
		"name": "Admin", "email": "admin@estoque.test", "password": "secreto1",
	}, &reg)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	f.token = reg.Token
	return f
}

// call envía body como JSON (si no es nil) y decodifica la respuesta en out (si no es nil).
func (f *apiFixture) call(t *testing.T, method, path string, body, out any) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if f.token != "" {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func (f *apiFixture) createProduct(t *testing.T, name string, initial int) dto.ProductResponse {
	t.Helper()
	var p dto.ProductResponse
	resp := f.call(t, http.MethodPost, "/api/products", map[string]any{
		"name": name, "price": "2.50", "unit_measure": "UN", "initial_stock": initial,
	}, &p)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return p
}

func (f *apiFixture) createSupplier(t *testing.T, name string) dto.SupplierResponse {
	t.Helper()
	var s dto.SupplierResponse
	resp := f.call(t, http.MethodPost, "/api/suppliers", map[string]any{"name": name}, &s)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return s
}

func (f *apiFixture) stockOf(t *testing.T, productID string) int {
	t.Helper()
	var p dto.ProductResponse
	resp := f.call(t, http.MethodGet, "/api/products/"+productID, nil, &p)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return p.StockQuantity
}

// ──────────────────────────────────────────────────────────────────────────────
// Auth
// ──────────────────────────────────────────────────────────────────────────────

func TestAuthHandlers_LoginYMe(t *testing.T) {
	f := newAPI(t)

	var login dto.LoginResponse
	f.token = ""
	resp := f.call(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "ADMIN@estoque.test", "password": "secreto1"}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NotEmpty(t, login.Token)
	assert.Equal(t, "admin@estoque.test", login.User.Email)

	f.token = login.Token
	var me dto.UserResponse
	resp = f.call(t, http.MethodGet, "/api/auth/me", nil, &me)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, login.User.ID, me.ID)
}

func TestAuthHandlers_Errores(t *testing.T) {
	f := newAPI(t)
	f.token = ""

	var e dto.ErrorResponse
	resp := f.call(t, http.MethodPost, "/api/auth/register", map[string]string{"name": "Otro", "email": "admin@estoque.test", "password": "secreto1"}, &e)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "EMAIL_EXISTS", e.Code)

	resp = f.call(t, http.MethodPost, "/api/auth/login", map[string]string{"email": "admin@estoque.test", "password": "incorrecta"}, &e)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", e.Code)

	resp = f.call(t, http.MethodPost, "/api/auth/register", map[string]string{"name": "Corto", "email": "x@y.z", "password": "123"}, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", e.Code)

	resp = f.call(t, http.MethodGet, "/api/products", nil, &e)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", e.Code)
}

// ──────────────────────────────────────────────────────────────────────────────
// Productos y proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestProductHandlers_CRUD(t *testing.T) {
	f := newAPI(t)
	p := f.createProduct(t, "Tornillo", 5)
	assert.Equal(t, 5, p.StockQuantity)

	var updated dto.ProductResponse
	resp := f.call(t, http.MethodPut, "/api/products/"+p.ID, map[string]any{"name": "Tornillo 3mm"}, &updated)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Tornillo 3mm", updated.Name)
	assert.Equal(t, 5, updated.StockQuantity, "update nunca toca el stock")

	var list dto.ProductListResponse
	resp = f.call(t, http.MethodGet, "/api/products?q=tornillo&limit=5", nil, &list)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, list.Page.Total)
	assert.Equal(t, 5, list.Page.Limit)

	resp = f.call(t, http.MethodDelete, "/api/products/"+p.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	var e dto.ErrorResponse
	resp = f.call(t, http.MethodGet, "/api/products/"+p.ID, nil, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", e.Code)
}

func TestSupplierHandlers_ValidacionYNoEncontrado(t *testing.T) {
	f := newAPI(t)

	var e dto.ErrorResponse
	resp := f.call(t, http.MethodPost, "/api/suppliers", map[string]any{"name": "ACME", "contact_email": "no-es-email"}, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", e.Code)

	resp = f.call(t, http.MethodPut, "/api/suppliers/inexistente", map[string]any{"name": "ACME"}, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestMovementHandlers_FlujoCompleto(t *testing.T) {
	f := newAPI(t)
	p := f.createProduct(t, "Cable", 0)
	s := f.createSupplier(t, "Distribuidora Norte")

	var entry dto.EntryResponse
	resp := f.call(t, http.MethodPost, "/api/entries", map[string]any{
		"product_id": p.ID, "supplier_id": s.ID, "quantity": 10, "movement_date": "2026-03-10", "unit_cost": "1.20",
	}, &entry)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 10, f.stockOf(t, p.ID))
	assert.Equal(t, "Distribuidora Norte", entry.SupplierName)

	var exit dto.ExitResponse
	resp = f.call(t, http.MethodPost, "/api/exits", map[string]any{
		"product_id": p.ID, "quantity": 4, "movement_date": "2026-03-12", "reason": "venta",
	}, &exit)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 6, f.stockOf(t, p.ID))

	// Editar la entrada a 3 dejaría el stock en -1.
	var e dto.ErrorResponse
	resp = f.call(t, http.MethodPut, "/api/entries/"+entry.ID, map[string]any{
		"product_id": p.ID, "supplier_id": s.ID, "quantity": 3, "movement_date": "2026-03-10",
	}, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)
	assert.Equal(t, 6, f.stockOf(t, p.ID), "la edición rechazada no deja efectos")

	resp = f.call(t, http.MethodPost, "/api/exits", map[string]any{
		"product_id": p.ID, "quantity": 7, "movement_date": "2026-03-12",
	}, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", e.Code)

	var exits dto.ExitListResponse
	resp = f.call(t, http.MethodGet, "/api/exits?product_id="+p.ID+"&from=2026-03-01&to=2026-03-31", nil, &exits)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, exits.Page.Total)

	resp = f.call(t, http.MethodDelete, "/api/products/"+p.ID, nil, &e)
	assert.Equal(t, http.StatusConflict, resp.StatusCode, "producto con movimientos no se elimina")

	resp = f.call(t, http.MethodDelete, "/api/exits/"+exit.ID, nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, 10, f.stockOf(t, p.ID))
}

func TestMovementHandlers_ErroresDeValidacion(t *testing.T) {
	f := newAPI(t)
	p := f.createProduct(t, "Clavo", 1)

	tests := []struct {
		name string
		body map[string]any
		code string
	}{
		{"sin producto", map[string]any{"quantity": 1, "movement_date": "2026-03-10"}, "REFERENCE_MISSING"},
		{"cantidad cero", map[string]any{"product_id": p.ID, "quantity": 0, "movement_date": "2026-03-10"}, "INVALID_QUANTITY"},
		{"fecha futura", map[string]any{"product_id": p.ID, "quantity": 1, "movement_date": "2026-03-16"}, "INVALID_DATE"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var e dto.ErrorResponse
			resp := f.call(t, http.MethodPost, "/api/exits", tt.body, &e)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.code, e.Code)
		})
	}

	var e dto.ErrorResponse
	resp := f.call(t, http.MethodPost, "/api/exits", map[string]any{"product_id": "nope", "quantity": 1, "movement_date": "2026-03-10"}, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode, "id de producto que no existe")
	assert.Equal(t, "NOT_FOUND", e.Code)

	resp = f.call(t, http.MethodDelete, "/api/entries/no-existe", nil, &e)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard, reportes y health
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardHandler_Overview(t *testing.T) {
	f := newAPI(t)
	f.createProduct(t, "A", 50)
	f.createProduct(t, "B", 2)

	var out dto.DashboardOverviewDTO
	resp := f.call(t, http.MethodGet, "/api/dashboard/overview", nil, &out)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 2, out.TotalProducts)
	assert.Equal(t, 1, out.LowStockItems)
	assert.Equal(t, "130", out.TotalStockValue.String())
	assert.Equal(t, "Marzo 2026", out.DateLabel)
	require.Len(t, out.TopProducts, 2)
	assert.Equal(t, "A", out.TopProducts[0].Name)
}

func TestReportHandlers_Cabeceras(t *testing.T) {
	f := newAPI(t)
	f.createProduct(t, "A", 3)

	resp := f.call(t, http.MethodGet, "/api/reports/stock.pdf", nil, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".pdf")

	resp = f.call(t, http.MethodGet, "/api/reports/movements.xlsx", nil, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "spreadsheetml")

	var e dto.ErrorResponse
	resp = f.call(t, http.MethodGet, "/api/reports/movements.xlsx?from=2026-03-10&to=2026-03-01", nil, &e)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestHealth(t *testing.T) {
	f := newAPI(t)
	var body map[string]string
	resp := f.call(t, http.MethodGet, "/health", nil, &body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", body["status"])
}
