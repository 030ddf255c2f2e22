package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/almacen-api/internal/domain/entity"
)

// StockFilter filtros para listar saldos.
type StockFilter struct {
	ProductID   string
	WarehouseID string
	Search      string // busca en code y name del producto
}

// StockRecord es un saldo junto con los datos de presentación del
// producto y la bodega (lectura con JOIN).
type StockRecord struct {
	Stock         entity.Stock
	ProductCode   string
	ProductName   string
	ProductUnit   string
	ProductPrice  decimal.Decimal
	MinQuantity   int64
	WarehouseName string
}

// StockRepository define el puerto para consultar/actualizar saldos por
// (producto, bodega). Las escrituras solo se usan dentro de la transacción
// del motor de movimientos.
type StockRepository interface {
	Get(productID, warehouseID string) (*entity.Stock, error)
	// GetForUpdate bloquea la fila del saldo (SELECT FOR UPDATE); es el
	// punto de serialización por par (producto, bodega).
	GetForUpdate(productID, warehouseID string) (*entity.Stock, error)
	// ApplyDelta suma delta al saldo, creando la fila si no existe.
	ApplyDelta(productID, warehouseID string, delta int64) error
	List(filter StockFilter) ([]StockRecord, error)
}
