package entity

import "time"

// Tipos de transacción de stock.
const (
	TransactionTypeIn  = "in"  // entrada
	TransactionTypeOut = "out" // salida
)

// Transaction es un asiento del libro de movimientos (append-only).
// Una vez escrita nunca se actualiza ni se borra: es la fuente de verdad
// de los saldos. Quantity siempre es positiva; el signo lo da Type.
type Transaction struct {
	ID          string
	ProductID   string
	WarehouseID string
	Type        string
	Quantity    int64
	Note        string
	UserID      string
	CreatedAt   time.Time
}
