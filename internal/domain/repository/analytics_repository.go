package repository

import "context"

// WarehouseStockResult totales de stock de una bodega.
type WarehouseStockResult struct {
	WarehouseID   string
	WarehouseName string
	TotalItems    int64 // productos distintos con saldo en la bodega
	TotalQuantity int64
}

// CategoryStockResult totales de stock de una categoría de productos.
type CategoryStockResult struct {
	CategoryID    string
	CategoryName  string
	TotalItems    int64
	TotalQuantity int64
}

// SummaryResult es la foto completa que alimenta el dashboard.
type SummaryResult struct {
	TotalProducts   int64
	TotalWarehouses int64
	TotalStock      int64 // suma de todos los saldos
	LowStockItems   int64 // productos con saldo <= su min_quantity
	ByWarehouse     []WarehouseStockResult
	ByCategory      []CategoryStockResult
	Recent          []TransactionRecord
}

// AnalyticsRepository define el puerto de consultas de solo lectura del
// dashboard. La implementación debe calcular todos los agregados sobre un
// mismo snapshot (una sola transacción de lectura), para que un movimiento
// en vuelo no deje el resumen a medio contar.
type AnalyticsRepository interface {
	Summary(ctx context.Context, recentLimit int) (*SummaryResult, error)
}
