package repository

import "github.com/jhoicas/almacen-api/internal/domain/entity"

// TransactionFilter filtros para listar transacciones del libro.
type TransactionFilter struct {
	ProductID   string
	WarehouseID string
	Type        string // "in" | "out" | vacío
	Limit       int    // 0 = sin límite
}

// TransactionRecord es una transacción junto con los nombres de
// presentación de producto, bodega y usuario (lectura con JOIN).
type TransactionRecord struct {
	Transaction   entity.Transaction
	ProductCode   string
	ProductName   string
	WarehouseName string
	Username      string
}

// TransactionRepository define el puerto del libro de transacciones.
// Solo inserta y lee: el libro es append-only.
type TransactionRepository interface {
	Create(transaction *entity.Transaction) error
	List(filter TransactionFilter) ([]TransactionRecord, error)
}
