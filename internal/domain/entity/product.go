package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Code es único en todo el catálogo. La existencia por bodega vive en Stock;
// el producto nunca guarda cantidades.
type Product struct {
	ID          string
	Code        string // código único del producto
	Name        string
	Description string
	CategoryID  string // vacío si no tiene categoría
	Unit        string // unidad de medida (ej. "pz", "caja")
	Price       decimal.Decimal
	MinQuantity int64 // umbral de stock bajo por producto
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
