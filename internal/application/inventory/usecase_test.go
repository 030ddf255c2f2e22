package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
//
// memStore emula la semántica del adaptador PostgreSQL: Run serializa con un
// mutex (equivalente al bloqueo de fila por par) y solo publica los cambios
// en Commit; si fn falla, se descartan (Rollback).
// ──────────────────────────────────────────────────────────────────────────────

type pair struct{ productID, warehouseID string }

type memStore struct {
	mu           sync.Mutex
	balances     map[pair]int64
	transactions []*entity.Transaction
}

func newMemStore() *memStore {
	return &memStore{balances: map[pair]int64{}}
}

// Run ejecuta fn sobre una copia de trabajo y publica en commit.
func (s *memStore) Run(_ context.Context, fn func(
	stockRepo repository.StockRepository,
	transactionRepo repository.TransactionRepository,
) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memTx{store: s, balances: map[pair]int64{}}
	for k, v := range s.balances {
		tx.balances[k] = v
	}
	if err := fn(&memStockRepo{tx: tx}, &memTransactionRepo{tx: tx}); err != nil {
		return err // rollback: no se publica nada
	}
	s.balances = tx.balances
	s.transactions = append(s.transactions, tx.inserted...)
	return nil
}

type memTx struct {
	store    *memStore
	balances map[pair]int64
	inserted []*entity.Transaction
}

type memStockRepo struct{ tx *memTx }

func (r *memStockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	return r.GetForUpdate(productID, warehouseID)
}

func (r *memStockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	q := r.tx.balances[pair{productID, warehouseID}]
	return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: q}, nil
}

func (r *memStockRepo) ApplyDelta(productID, warehouseID string, delta int64) error {
	r.tx.balances[pair{productID, warehouseID}] += delta
	return nil
}

func (r *memStockRepo) List(repository.StockFilter) ([]repository.StockRecord, error) {
	return nil, nil
}

type memTransactionRepo struct{ tx *memTx }

func (r *memTransactionRepo) Create(trx *entity.Transaction) error {
	r.tx.inserted = append(r.tx.inserted, trx)
	return nil
}

func (r *memTransactionRepo) List(repository.TransactionFilter) ([]repository.TransactionRecord, error) {
	return nil, nil
}

// memProductRepo / memWarehouseRepo: catálogos fijos para validar referencias.

type memProductRepo struct{ ids map[string]bool }

func (r *memProductRepo) Create(*entity.Product) error { return nil }
func (r *memProductRepo) GetByID(id string) (*entity.Product, error) {
	if !r.ids[id] {
		return nil, nil
	}
	return &entity.Product{ID: id, Code: "P-" + id, Unit: "pz"}, nil
}
func (r *memProductRepo) GetByCode(string) (*entity.Product, error) { return nil, nil }
func (r *memProductRepo) Update(*entity.Product) error              { return nil }
func (r *memProductRepo) List(repository.ProductFilter) ([]*entity.Product, error) {
	return nil, nil
}
func (r *memProductRepo) Delete(string) error { return nil }

type memWarehouseRepo struct{ ids map[string]bool }

func (r *memWarehouseRepo) Create(*entity.Warehouse) error { return nil }
func (r *memWarehouseRepo) GetByID(id string) (*entity.Warehouse, error) {
	if !r.ids[id] {
		return nil, nil
	}
	return &entity.Warehouse{ID: id, Name: "Bodega " + id}, nil
}
func (r *memWarehouseRepo) Update(*entity.Warehouse) error       { return nil }
func (r *memWarehouseRepo) List() ([]*entity.Warehouse, error)   { return nil, nil }
func (r *memWarehouseRepo) Delete(string) error                  { return nil }

const (
	testProduct   = "11111111-1111-1111-1111-111111111111"
	testWarehouse = "22222222-2222-2222-2222-222222222222"
	testUser      = "33333333-3333-3333-3333-333333333333"
)

func buildUseCase(store *memStore) *inventory.StockUseCase {
	return inventory.NewStockUseCase(
		store,
		&memStockRepo{tx: &memTx{balances: store.balances}},
		&memTransactionRepo{tx: &memTx{}},
		&memProductRepo{ids: map[string]bool{testProduct: true}},
		&memWarehouseRepo{ids: map[string]bool{testWarehouse: true}},
	)
}

func movement(qty int64) inventory.MovementInput {
	return inventory.MovementInput{
		ProductID:   testProduct,
		WarehouseID: testWarehouse,
		Quantity:    qty,
		Note:        "test",
		UserID:      testUser,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestStockIn_CreaSaldoYAsiento(t *testing.T) {
	store := newMemStore()
	uc := buildUseCase(store)

	trx, err := uc.StockIn(context.Background(), movement(50))
	require.NoError(t, err)
	require.NotNil(t, trx)

	assert.Equal(t, entity.TransactionTypeIn, trx.Type)
	assert.Equal(t, int64(50), trx.Quantity)
	assert.NotEmpty(t, trx.ID)
	assert.WithinDuration(t, time.Now(), trx.CreatedAt, time.Minute)

	assert.Equal(t, int64(50), store.balances[pair{testProduct, testWarehouse}],
		"la primera entrada debe crear la fila de saldo")
	assert.Len(t, store.transactions, 1, "cada movimiento produce exactamente un asiento")
}

func TestStockIn_CantidadInvalida(t *testing.T) {
	store := newMemStore()
	uc := buildUseCase(store)

	for _, qty := range []int64{0, -5} {
		_, err := uc.StockIn(context.Background(), movement(qty))
		assert.ErrorIs(t, err, domain.ErrInvalidQuantity)
	}
	assert.Empty(t, store.transactions, "una cantidad inválida no debe escribir nada")
}

func TestStockIn_ProductoInexistente(t *testing.T) {
	store := newMemStore()
	uc := buildUseCase(store)

	in := movement(10)
	in.ProductID = "99999999-9999-9999-9999-999999999999"
	_, err := uc.StockIn(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockOut_BodegaInexistente(t *testing.T) {
	store := newMemStore()
	uc := buildUseCase(store)

	in := movement(10)
	in.WarehouseID = "99999999-9999-9999-9999-999999999999"
	_, err := uc.StockOut(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStockOut_SinSaldo_NoEscribe(t *testing.T) {
	store := newMemStore()
	uc := buildUseCase(store)

	// Sin fila de saldo, el saldo se trata como 0.
	_, err := uc.StockOut(context.Background(), movement(1))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Empty(t, store.transactions)
	assert.Zero(t, store.balances[pair{testProduct, testWarehouse}])
}

// Secuencia del ejemplo de referencia: 0 → in 50 → out 20 → out 40 (falla).
func TestSecuencia_SaldoEsSumaDelLibro(t *testing.T) {
	store := newMemStore()
	uc := buildUseCase(store)
	ctx := context.Background()

	_, err := uc.StockIn(ctx, movement(50))
	require.NoError(t, err)
	assert.Equal(t, int64(50), store.balances[pair{testProduct, testWarehouse}])

	_, err = uc.StockOut(ctx, movement(20))
	require.NoError(t, err)
	assert.Equal(t, int64(30), store.balances[pair{testProduct, testWarehouse}])

	_, err = uc.StockOut(ctx, movement(40))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, int64(30), store.balances[pair{testProduct, testWarehouse}],
		"una salida rechazada no debe tocar el saldo")
	assert.Len(t, store.transactions, 2, "la salida rechazada no deja asiento")

	// El saldo siempre es la suma con signo del libro.
	var sum int64
	for _, trx := range store.transactions {
		if trx.Type == entity.TransactionTypeIn {
			sum += trx.Quantity
		} else {
			sum -= trx.Quantity
		}
	}
	assert.Equal(t, sum, store.balances[pair{testProduct, testWarehouse}])
}

// Carrera clásica de check-then-act: N salidas concurrentes piden en conjunto
// más de lo que hay. Deben tener éxito exactamente las que agotan el saldo a
// cero; el resto falla con stock insuficiente y el saldo nunca es negativo.
func TestStockOut_Concurrente_NuncaNegativo(t *testing.T) {
	store := newMemStore()
	uc := buildUseCase(store)
	ctx := context.Background()

	const initial = 10
	const callers = 25

	_, err := uc.StockIn(ctx, movement(initial))
	require.NoError(t, err)

	var wg sync.WaitGroup
	errs := make(chan error, callers)
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.StockOut(ctx, movement(1))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	var ok, insufficient int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrInsufficientStock):
			insufficient++
		}
	}

	assert.Equal(t, initial, ok, "deben tener éxito exactamente las salidas que agotan el saldo")
	assert.Equal(t, callers-initial, insufficient)
	assert.Zero(t, store.balances[pair{testProduct, testWarehouse}])
	assert.Len(t, store.transactions, 1+initial, "solo las salidas exitosas dejan asiento")
}
