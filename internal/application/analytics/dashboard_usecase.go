// Package analytics contiene el lector de agregados del dashboard.
package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

const recentTransactionsLimit = 10 // asientos en el widget de actividad reciente

// DashboardUseCase arma el resumen del inventario: totales, stock bajo,
// agrupados por bodega y por categoría, y actividad reciente.
//
// Es de solo lectura y sin efectos. Todos los sub-agregados provienen de
// una única transacción de lectura del repositorio, así el resumen es una
// foto consistente aunque haya movimientos en vuelo.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// GetSummary construye el DashboardSummaryDTO.
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	res, err := uc.analyticsRepo.Summary(ctx, recentTransactionsLimit)
	if err != nil {
		return nil, fmt.Errorf("dashboard: resumen: %w", err)
	}

	recent := make([]dto.TransactionDTO, 0, len(res.Recent))
	for _, r := range res.Recent {
		recent = append(recent, inventory.ToTransactionDTO(r))
	}

	byWarehouse := make([]dto.WarehouseStockSummaryDTO, 0, len(res.ByWarehouse))
	for _, w := range res.ByWarehouse {
		byWarehouse = append(byWarehouse, dto.WarehouseStockSummaryDTO{
			WarehouseID:   w.WarehouseID,
			WarehouseName: w.WarehouseName,
			TotalItems:    w.TotalItems,
			TotalQuantity: w.TotalQuantity,
		})
	}

	byCategory := make([]dto.CategoryStockSummaryDTO, 0, len(res.ByCategory))
	for _, c := range res.ByCategory {
		byCategory = append(byCategory, dto.CategoryStockSummaryDTO{
			CategoryID:    c.CategoryID,
			CategoryName:  c.CategoryName,
			TotalItems:    c.TotalItems,
			TotalQuantity: c.TotalQuantity,
		})
	}

	return &dto.DashboardSummaryDTO{
		TotalProducts:      res.TotalProducts,
		TotalWarehouses:    res.TotalWarehouses,
		TotalStockValue:    res.TotalStock,
		LowStockItems:      res.LowStockItems,
		RecentTransactions: recent,
		StockByWarehouse:   byWarehouse,
		StockByCategory:    byCategory,
	}, nil
}
