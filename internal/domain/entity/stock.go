package entity

import "time"

// Stock representa el saldo actual de un producto en una bodega.
// Es estado derivado: siempre debe ser igual a la suma con signo de las
// transacciones de ese par (producto, bodega), y nunca negativo.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	UpdatedAt   time.Time
}
