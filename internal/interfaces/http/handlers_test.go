package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"math/rand"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/analytics"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/bootstrap"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/stockflow-api/internal/interfaces/http"
	"github.com/jhoicas/stockflow-api/pkg/config"
)

// newTestAPI arma la API completa sobre el almacenamiento en memoria.
func newTestAPI(t *testing.T, jwtSecret string) *fiber.App {
	t.Helper()
	return newTestAPIWithCache(t, jwtSecret, nil)
}

// newTestAPIWithCache igual que newTestAPI con la analítica cacheada en analyticsCache.
func newTestAPIWithCache(t *testing.T, jwtSecret string, analyticsCache analytics.Cache) *fiber.App {
	t.Helper()
	store := memory.NewStore()
	svc := bootstrap.NewServices(bootstrap.MemoryBackend(store), analyticsCache, zerolog.Nop(),
		analytics.WithRandSource(rand.NewSource(1)))
	cfg := &config.Config{
		App: config.AppConfig{Name: "stockflow-test"},
		JWT: config.JWTConfig{Secret: jwtSecret, Issuer: testIssuer},
	}
	app := fiber.New(fiber.Config{ErrorHandler: apphttp.ErrorHandler(zerolog.Nop())})
	apphttp.Router(app, svc.RouterDeps(cfg, nil))
	return app
}

func call(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func createProduct(t *testing.T, app *fiber.App, sku string, qty int, price string) dto.ProductResponse {
	t.Helper()
	resp := call(t, app, http.MethodPost, "/api/products", fiber.Map{
		"name": "Producto " + sku, "sku": sku, "category": "General", "quantity": qty, "price": price, "cost": "2",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	return decode[dto.ProductResponse](t, resp)
}

func TestHealth(t *testing.T) {
	resp := call(t, newTestAPI(t, ""), http.MethodGet, "/health", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", out["status"])
	assert.Equal(t, "stockflow-test", out["service"])
}

func TestProducts_CRUD(t *testing.T) {
	app := newTestAPI(t, "")
	created := createProduct(t, app, "A-1", 5, "10.50")
	assert.Equal(t, 5, created.Quantity)
	assert.True(t, created.Price.Equal(decimal.RequireFromString("10.5")))

	resp := call(t, app, http.MethodGet, "/api/products/"+created.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "A-1", decode[dto.ProductResponse](t, resp).SKU)

	resp = call(t, app, http.MethodPut, "/api/products/"+created.ID, fiber.Map{"quantity": 9})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	updated := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 9, updated.Quantity)
	assert.Equal(t, "Producto A-1", updated.Name, "los campos ausentes no cambian")

	resp = call(t, app, http.MethodGet, "/api/products", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, decode[[]dto.ProductResponse](t, resp), 1)

	resp = call(t, app, http.MethodDelete, "/api/products/"+created.ID, nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/products/"+created.ID, nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestProducts_SKUDuplicadoDevuelve409(t *testing.T) {
	app := newTestAPI(t, "")
	createProduct(t, app, "DUP", 1, "1")

	resp := call(t, app, http.MethodPost, "/api/products", fiber.Map{"name": "Otro", "sku": "DUP", "price": "1"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "DUPLICATE", errorCode(t, resp))
}

func TestProducts_ValidacionReportaCampos(t *testing.T) {
	app := newTestAPI(t, "")
	resp := call(t, app, http.MethodPost, "/api/products", fiber.Map{"sku": "X", "price": "-1"})
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	rules := map[string]string{}
	for _, f := range out.Fields {
		rules[f.Field] = f.Rule
	}
	assert.Equal(t, "required", rules["name"])
	assert.Equal(t, "gte", rules["price"])
}

func fieldRules(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", out.Code)
	rules := map[string]string{}
	for _, f := range out.Fields {
		rules[f.Field] = f.Rule
	}
	return rules
}

func TestProducts_NombreOSKUEnBlancoDevuelve400(t *testing.T) {
	app := newTestAPI(t, "")

	resp := call(t, app, http.MethodPost, "/api/products", fiber.Map{"name": "   ", "sku": "S2", "price": "10"})
	assert.Equal(t, "required", fieldRules(t, resp)["name"])

	resp = call(t, app, http.MethodPost, "/api/products", fiber.Map{"name": "Tornillo", "sku": " \t ", "price": "10"})
	assert.Equal(t, "required", fieldRules(t, resp)["sku"])

	p := createProduct(t, app, "BL-1", 1, "10")
	resp = call(t, app, http.MethodPut, "/api/products/"+p.ID, fiber.Map{"name": "   "})
	assert.Equal(t, "required", fieldRules(t, resp)["name"])
	resp = call(t, app, http.MethodPut, "/api/products/"+p.ID, fiber.Map{"sku": "  "})
	assert.Equal(t, "required", fieldRules(t, resp)["sku"])

	resp = call(t, app, http.MethodGet, "/api/products/"+p.ID, nil)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, "BL-1", got.SKU)
}

func TestSuppliers_NombreEnBlancoDevuelve400(t *testing.T) {
	app := newTestAPI(t, "")

	resp := call(t, app, http.MethodPost, "/api/suppliers", fiber.Map{"name": "   "})
	assert.Equal(t, "required", fieldRules(t, resp)["name"])

	resp = call(t, app, http.MethodPost, "/api/suppliers", fiber.Map{"name": "Acme"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	s := decode[dto.SupplierResponse](t, resp)

	resp = call(t, app, http.MethodPut, "/api/suppliers/"+s.ID, fiber.Map{"name": "   "})
	assert.Equal(t, "required", fieldRules(t, resp)["name"])

	resp = call(t, app, http.MethodGet, "/api/suppliers/"+s.ID, nil)
	assert.Equal(t, "Acme", decode[dto.SupplierResponse](t, resp).Name)
}

func TestProducts_CuerpoInvalido(t *testing.T) {
	app := newTestAPI(t, "")
	req := httptest.NewRequest(http.MethodPost, "/api/products", strings.NewReader("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))
}

func TestProducts_ImportJSON(t *testing.T) {
	app := newTestAPI(t, "")
	createProduct(t, app, "A-1", 7, "1")

	resp := call(t, app, http.MethodPost, "/api/products/import", fiber.Map{"products": []fiber.Map{
		{"sku": "A-1", "price": 3},
		{"sku": "B-2", "name": "Nuevo", "quantity": "4", "supplier": "Acme"},
	}})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.ImportProductsResponse](t, resp)
	assert.Equal(t, 1, out.Created)
	assert.Equal(t, 1, out.Updated)
	assert.Equal(t, "Import complete: 1 new, 1 updated", out.Message)

	resp = call(t, app, http.MethodGet, "/api/suppliers", nil)
	suppliers := decode[[]dto.SupplierResponse](t, resp)
	require.Len(t, suppliers, 1)
	assert.Equal(t, "Acme", suppliers[0].Name)
}

func TestProducts_ImportCSV(t *testing.T) {
	app := newTestAPI(t, "")

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", "productos.csv")
	require.NoError(t, err)
	_, err = io.WriteString(fw, "SKU,Name,Quantity,Price\nC-1,Caja,2,1.5\nC-2,,1,1\n")
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/products/import", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	out := decode[dto.ImportProductsResponse](t, resp)
	assert.Equal(t, 1, out.Created)
	assert.Equal(t, 1, out.Skipped, "fila nueva sin nombre")
}

func TestMovements_RegistrarYFiltrar(t *testing.T) {
	app := newTestAPI(t, "")
	p := createProduct(t, app, "M-1", 10, "2")

	resp := call(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"type": "exit", "product_id": p.ID, "quantity": 3, "location": "Depósito",
		"responsible": "ana", "transport_type": "none",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	mov := decode[dto.MovementResponse](t, resp)
	assert.Equal(t, 7, mov.CurrentStock)

	resp = call(t, app, http.MethodGet, "/api/movements?type=exit&product_id="+p.ID, nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	list := decode[[]dto.MovementResponse](t, resp)
	require.Len(t, list, 1)
	assert.Equal(t, mov.ID, list[0].ID)

	resp = call(t, app, http.MethodGet, "/api/movements?type=entry", nil)
	assert.Empty(t, decode[[]dto.MovementResponse](t, resp))

	resp = call(t, app, http.MethodGet, "/api/movements/"+mov.ID, nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestMovements_FechaInvalida(t *testing.T) {
	app := newTestAPI(t, "")
	resp := call(t, app, http.MethodGet, "/api/movements?from=17-10-2026", nil)
	require.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	out := decode[dto.ErrorResponse](t, resp)
	require.NotEmpty(t, out.Fields)
	assert.Equal(t, "from", out.Fields[0].Field)
}

func TestMovements_ProductoInexistente(t *testing.T) {
	app := newTestAPI(t, "")
	resp := call(t, app, http.MethodPost, "/api/movements", fiber.Map{
		"type": "entry", "product_id": "00000000-0000-0000-0000-000000000099", "quantity": 1,
		"location": "Depósito", "responsible": "ana", "transport_type": "none",
	})
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestPurchaseOrders_RecibirSumaStock(t *testing.T) {
	app := newTestAPI(t, "")
	p := createProduct(t, app, "PO-1", 0, "9")

	resp := call(t, app, http.MethodPost, "/api/suppliers", fiber.Map{"name": "Acme"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	supplier := decode[dto.SupplierResponse](t, resp)

	resp = call(t, app, http.MethodPost, "/api/purchase-orders", fiber.Map{
		"supplier_id": supplier.ID,
		"items":       []fiber.Map{{"product_id": p.ID, "quantity": 10, "unit_cost": "4"}},
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	order := decode[dto.PurchaseOrderResponse](t, resp)
	assert.True(t, order.Total.Equal(decimal.NewFromInt(40)))

	resp = call(t, app, http.MethodPatch, "/api/purchase-orders", fiber.Map{"id": order.ID, "status": "received"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "received", decode[dto.PurchaseOrderResponse](t, resp).Status)

	resp = call(t, app, http.MethodGet, "/api/products/"+p.ID, nil)
	got := decode[dto.ProductResponse](t, resp)
	assert.Equal(t, 10, got.Quantity)
	assert.True(t, got.Cost.Equal(decimal.NewFromInt(4)))

	resp = call(t, app, http.MethodPatch, "/api/purchase-orders", fiber.Map{"id": order.ID, "status": "cancelled"})
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
	assert.Equal(t, "CONFLICT", errorCode(t, resp))

	resp = call(t, app, http.MethodDelete, "/api/suppliers/"+supplier.ID, nil)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode, "proveedor con órdenes")
}

func TestLogs_CrearYListar(t *testing.T) {
	app := newTestAPI(t, "")
	resp := call(t, app, http.MethodPost, "/api/logs", fiber.Map{"action": "UPDATE", "product_name": "Caja", "details": "ajuste manual"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	resp = call(t, app, http.MethodPost, "/api/logs", fiber.Map{"action": "BORRAR"})
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/api/logs", nil)
	logs := decode[[]dto.LogResponse](t, resp)
	require.Len(t, logs, 1)
	assert.Equal(t, "ajuste manual", logs[0].Details)
}

func TestAnalytics_Overview(t *testing.T) {
	app := newTestAPI(t, "")
	createProduct(t, app, "AN-1", 3, "10")

	resp := call(t, app, http.MethodGet, "/api/analytics/overview", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	out := decode[dto.AnalyticsOverviewDTO](t, resp)
	require.Len(t, out.Margins, 1)
	assert.Equal(t, "General", out.Margins[0].Category)

	for _, path := range []string{"margins", "movements", "suppliers", "value"} {
		resp = call(t, app, http.MethodGet, "/api/analytics/"+path, nil)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode, path)
	}
}

func supplierNames(t *testing.T, app *fiber.App) []string {
	t.Helper()
	resp := call(t, app, http.MethodGet, "/api/analytics/suppliers", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	var names []string
	for _, s := range decode[[]dto.SupplierPerformanceDTO](t, resp) {
		names = append(names, s.Name)
	}
	return names
}

func TestAnalytics_CacheRedisSeInvalidaAlCambiarProveedor(t *testing.T) {
	mr := miniredis.RunT(t)
	client, err := cache.NewRedisClient(context.Background(), mr.Addr(), "", 0)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	app := newTestAPIWithCache(t, "", cache.NewRedisCache(client, time.Minute))

	resp := call(t, app, http.MethodPost, "/api/suppliers", fiber.Map{"name": "Acme"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	s := decode[dto.SupplierResponse](t, resp)
	resp = call(t, app, http.MethodPost, "/api/products", fiber.Map{
		"name": "Tornillo", "sku": "AC-1", "quantity": 2, "price": "10", "supplier_id": s.ID,
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)

	assert.Equal(t, []string{"Acme"}, supplierNames(t, app))

	resp = call(t, app, http.MethodPut, "/api/suppliers/"+s.ID, fiber.Map{"name": "Acme Renamed"})
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, []string{"Acme Renamed"}, supplierNames(t, app))

	resp = call(t, app, http.MethodDelete, "/api/suppliers/"+s.ID, nil)
	require.Less(t, resp.StatusCode, 300)
	assert.Equal(t, []string{"Unknown Supplier"}, supplierNames(t, app))
}

func TestReports_StockCSVyPDF(t *testing.T) {
	app := newTestAPI(t, "")
	createProduct(t, app, "R-1", 2, "5")

	resp := call(t, app, http.MethodGet, "/api/reports/stock.csv", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/csv")
	assert.Contains(t, resp.Header.Get("Content-Disposition"), ".csv")
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(body), "sku,name,category"))
	assert.Contains(t, string(body), "R-1")

	resp = call(t, app, http.MethodGet, "/api/reports/stock.pdf", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, err = io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestRutaInexistente(t *testing.T) {
	resp := call(t, newTestAPI(t, ""), http.MethodGet, "/api/no-existe", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestAPI_ConJWTExigeTokenYUsaSubjectComoResponsable(t *testing.T) {
	app := newTestAPI(t, testJWTSecret)

	resp := call(t, app, http.MethodGet, "/api/products", nil)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

	resp = call(t, app, http.MethodGet, "/health", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode, "/health no requiere token")

	auth := bearer(t, testJWTSecret, testIssuer)
	send := func(method, path string, body any) *http.Response {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		req := httptest.NewRequest(method, path, bytes.NewReader(raw))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", auth)
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		return resp
	}

	resp = send(http.MethodPost, "/api/products", fiber.Map{"name": "Caja", "sku": "J-1", "price": "1"})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	p := decode[dto.ProductResponse](t, resp)

	resp = send(http.MethodPost, "/api/movements", fiber.Map{
		"type": "entry", "product_id": p.ID, "quantity": 2, "location": "Depósito", "transport_type": "none",
	})
	require.Equal(t, fiber.StatusCreated, resp.StatusCode)
	assert.Equal(t, testUser, decode[dto.MovementResponse](t, resp).Responsible)
}
