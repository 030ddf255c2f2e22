package analytics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/almacen-api/internal/application/analytics"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

type fakeAnalyticsRepo struct {
	result    *repository.SummaryResult
	err       error
	gotLimit  int
}

func (f *fakeAnalyticsRepo) Summary(_ context.Context, recentLimit int) (*repository.SummaryResult, error) {
	f.gotLimit = recentLimit
	return f.result, f.err
}

func TestGetSummary_MapeaElSnapshot(t *testing.T) {
	now := time.Now()
	repo := &fakeAnalyticsRepo{result: &repository.SummaryResult{
		TotalProducts:   12,
		TotalWarehouses: 3,
		TotalStock:      480,
		LowStockItems:   2,
		ByWarehouse: []repository.WarehouseStockResult{
			{WarehouseID: "w1", WarehouseName: "Central", TotalItems: 8, TotalQuantity: 300},
			{WarehouseID: "w2", WarehouseName: "Norte", TotalItems: 5, TotalQuantity: 180},
		},
		ByCategory: []repository.CategoryStockResult{
			{CategoryID: "c1", CategoryName: "Electrónica", TotalItems: 4, TotalQuantity: 120},
		},
		Recent: []repository.TransactionRecord{
			{
				Transaction: entity.Transaction{
					ID: "t1", ProductID: "p1", WarehouseID: "w1",
					Type: entity.TransactionTypeIn, Quantity: 50, CreatedAt: now,
				},
				ProductCode: "SKU-1", ProductName: "Teclado", WarehouseName: "Central", Username: "admin",
			},
		},
	}}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 10, repo.gotLimit, "el widget de actividad pide los últimos 10 asientos")
	assert.Equal(t, int64(12), out.TotalProducts)
	assert.Equal(t, int64(3), out.TotalWarehouses)
	assert.Equal(t, int64(480), out.TotalStockValue,
		"total_stock_value es la suma de todos los saldos del snapshot")
	assert.Equal(t, int64(2), out.LowStockItems)

	require.Len(t, out.StockByWarehouse, 2)
	assert.Equal(t, "Central", out.StockByWarehouse[0].WarehouseName)
	assert.Equal(t, int64(300), out.StockByWarehouse[0].TotalQuantity)

	require.Len(t, out.RecentTransactions, 1)
	assert.Equal(t, "SKU-1", out.RecentTransactions[0].ProductCode)
	assert.Equal(t, "admin", out.RecentTransactions[0].Username)
	assert.Equal(t, entity.TransactionTypeIn, out.RecentTransactions[0].Type)
}

func TestGetSummary_SnapshotVacio(t *testing.T) {
	repo := &fakeAnalyticsRepo{result: &repository.SummaryResult{}}
	uc := analytics.NewDashboardUseCase(repo)

	out, err := uc.GetSummary(context.Background())
	require.NoError(t, err)

	// Listas vacías, nunca null en el JSON.
	assert.NotNil(t, out.RecentTransactions)
	assert.NotNil(t, out.StockByWarehouse)
	assert.NotNil(t, out.StockByCategory)
	assert.Empty(t, out.RecentTransactions)
}

func TestGetSummary_PropagaError(t *testing.T) {
	repo := &fakeAnalyticsRepo{err: errors.New("conexión perdida")}
	uc := analytics.NewDashboardUseCase(repo)

	_, err := uc.GetSummary(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dashboard")
}
