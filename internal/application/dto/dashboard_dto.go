package dto

// DashboardSummaryDTO respuesta de GET /api/dashboard/summary.
// Todos los agregados provienen del mismo snapshot de lectura.
type DashboardSummaryDTO struct {
	TotalProducts      int64                      `json:"total_products"`
	TotalWarehouses    int64                      `json:"total_warehouses"`
	TotalStockValue    int64                      `json:"total_stock_value"` // suma de todos los saldos
	LowStockItems      int64                      `json:"low_stock_items"`
	RecentTransactions []TransactionDTO           `json:"recent_transactions"`
	StockByWarehouse   []WarehouseStockSummaryDTO `json:"stock_by_warehouse"`
	StockByCategory    []CategoryStockSummaryDTO  `json:"stock_by_category"`
}

// WarehouseStockSummaryDTO totales por bodega.
type WarehouseStockSummaryDTO struct {
	WarehouseID   string `json:"warehouse_id"`
	WarehouseName string `json:"warehouse_name"`
	TotalItems    int64  `json:"total_items"`
	TotalQuantity int64  `json:"total_quantity"`
}

// CategoryStockSummaryDTO totales por categoría.
type CategoryStockSummaryDTO struct {
	CategoryID    string `json:"category_id"`
	CategoryName  string `json:"category_name"`
	TotalItems    int64  `json:"total_items"`
	TotalQuantity int64  `json:"total_quantity"`
}
