package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockMovementRequest body para POST /api/stock/in y /api/stock/out.
type StockMovementRequest struct {
	ProductID   string `json:"product_id"`
	WarehouseID string `json:"warehouse_id"`
	Quantity    int64  `json:"quantity"`
	Note        string `json:"note"`
}

// StockItemDTO saldo actual con datos de presentación.
type StockItemDTO struct {
	ProductID     string          `json:"product_id"`
	ProductCode   string          `json:"product_code"`
	ProductName   string          `json:"product_name"`
	Unit          string          `json:"unit"`
	Price         decimal.Decimal `json:"price"`
	WarehouseID   string          `json:"warehouse_id"`
	WarehouseName string          `json:"warehouse_name"`
	Quantity      int64           `json:"quantity"`
	MinQuantity   int64           `json:"min_quantity"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// TransactionDTO asiento del libro con nombres de presentación.
type TransactionDTO struct {
	ID            string    `json:"id"`
	ProductID     string    `json:"product_id"`
	ProductCode   string    `json:"product_code,omitempty"`
	ProductName   string    `json:"product_name,omitempty"`
	WarehouseID   string    `json:"warehouse_id"`
	WarehouseName string    `json:"warehouse_name,omitempty"`
	Type          string    `json:"type"`
	Quantity      int64     `json:"quantity"`
	Note          string    `json:"note"`
	UserID        string    `json:"user_id,omitempty"`
	Username      string    `json:"username,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// MovementResponse respuesta de un movimiento registrado.
type MovementResponse struct {
	Message     string         `json:"message"`
	Transaction TransactionDTO `json:"transaction"`
}
