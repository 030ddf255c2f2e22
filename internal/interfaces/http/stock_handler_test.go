package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
	apphttp "github.com/jhoicas/almacen-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (sin concurrencia: cada test es secuencial)
// ──────────────────────────────────────────────────────────────────────────────

type stubStockRepo struct {
	balances map[string]int64 // key productID|warehouseID
}

func stockKey(productID, warehouseID string) string { return productID + "|" + warehouseID }

func (r *stubStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: r.balances[stockKey(productID, warehouseID)]}, nil
}

func (r *stubStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(productID, warehouseID)
}

func (r *stubStockRepo) ApplyDelta(productID, warehouseID string, delta int64) error {
	k := stockKey(productID, warehouseID)
	if r.balances[k]+delta < 0 {
		return domain.ErrInsufficientStock
	}
	r.balances[k] += delta
	return nil
}

func (r *stubStockRepo) List(repository.StockFilter) ([]repository.StockRecord, error) {
	return nil, nil
}

type stubTransactionRepo struct {
	created []*entity.Transaction
}

func (r *stubTransactionRepo) Create(trx *entity.Transaction) error {
	r.created = append(r.created, trx)
	return nil
}

func (r *stubTransactionRepo) List(repository.TransactionFilter) ([]repository.TransactionRecord, error) {
	var out []repository.TransactionRecord
	for _, trx := range r.created {
		out = append(out, repository.TransactionRecord{Transaction: *trx})
	}
	return out, nil
}

type stubTxRunner struct {
	stock *stubStockRepo
	trx   *stubTransactionRepo
}

func (r *stubTxRunner) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	transactionRepo repository.TransactionRepository,
) error) error {
	return fn(r.stock, r.trx)
}

type stubProductRepo struct{ ids map[string]bool }

func (r *stubProductRepo) Create(*entity.Product) error { return nil }
func (r *stubProductRepo) GetByID(id string) (*entity.Product, error) {
	if !r.ids[id] {
		return nil, nil
	}
	return &entity.Product{ID: id, Code: "SKU-1", Name: "Producto", Unit: "pz"}, nil
}
func (r *stubProductRepo) GetByCode(string) (*entity.Product, error) { return nil, nil }
func (r *stubProductRepo) Update(*entity.Product) error              { return nil }
func (r *stubProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *stubProductRepo) Delete(string) error { return nil }

type stubWarehouseRepo struct{ ids map[string]bool }

func (r *stubWarehouseRepo) Create(*entity.Warehouse) error { return nil }
func (r *stubWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if !r.ids[id] {
		return nil, nil
	}
	return &entity.Warehouse{ID: id, Name: "Central"}, nil
}
func (r *stubWarehouseRepo) Update(*entity.Warehouse) error          { return nil }
func (r *stubWarehouseRepo) List() ([]*entity.Warehouse, error)      { return nil, nil }
func (r *stubWarehouseRepo) Delete(string) error                     { return nil }

// buildStockApp arma una app Fiber con las rutas de stock sobre un
// StockUseCase real y repos en memoria.
func buildStockApp() (*fiber.App, *stubStockRepo, *stubTransactionRepo) {
	stock := &stubStockRepo{balances: map[string]int64{}}
	trx := &stubTransactionRepo{}
	uc := inventory.NewStockUseCase(
		&stubTxRunner{stock: stock, trx: trx},
		stock, trx,
		&stubProductRepo{ids: map[string]bool{"prod-1": true}},
		&stubWarehouseRepo{ids: map[string]bool{"wh-1": true}},
	)
	handler := apphttp.NewStockHandler(uc)

	app := fiber.New()
	app.Post("/api/stock/in", handler.StockIn)
	app.Post("/api/stock/out", handler.StockOut)
	return app, stock, trx
}

func postMovement(t *testing.T, app *fiber.App, path, body string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_Retorna201ConAsiento(t *testing.T) {
	app, stock, trx := buildStockApp()

	resp := postMovement(t, app, "/api/stock/in",
		`{"product_id":"prod-1","warehouse_id":"wh-1","quantity":50,"note":"compra inicial"}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var body struct {
		Message     string `json:"message"`
		Transaction struct {
			Type     string `json:"type"`
			Quantity int64  `json:"quantity"`
		} `json:"transaction"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "entrada registrada", body.Message)
	assert.Equal(t, "in", body.Transaction.Type)
	assert.Equal(t, int64(50), body.Transaction.Quantity)

	assert.Equal(t, int64(50), stock.balances[stockKey("prod-1", "wh-1")])
	assert.Len(t, trx.created, 1)
}

func TestStockIn_CantidadInvalida_Retorna400(t *testing.T) {
	app, _, trx := buildStockApp()

	resp := postMovement(t, app, "/api/stock/in",
		`{"product_id":"prod-1","warehouse_id":"wh-1","quantity":0}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Empty(t, trx.created, "un movimiento rechazado no escribe en el libro")
}

func TestStockOut_SinSaldo_Retorna409(t *testing.T) {
	app, stock, trx := buildStockApp()
	stock.balances[stockKey("prod-1", "wh-1")] = 5

	resp := postMovement(t, app, "/api/stock/out",
		`{"product_id":"prod-1","warehouse_id":"wh-1","quantity":10}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "INSUFFICIENT_STOCK", body["code"])

	assert.Equal(t, int64(5), stock.balances[stockKey("prod-1", "wh-1")], "el saldo no cambia")
	assert.Empty(t, trx.created)
}

func TestStockOut_ProductoInexistente_Retorna404(t *testing.T) {
	app, _, _ := buildStockApp()

	resp := postMovement(t, app, "/api/stock/out",
		`{"product_id":"prod-404","warehouse_id":"wh-1","quantity":1}`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStockIn_BodyInvalido_Retorna400(t *testing.T) {
	app, _, _ := buildStockApp()

	resp := postMovement(t, app, "/api/stock/in", `{not json`)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
