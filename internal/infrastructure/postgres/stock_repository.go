package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el saldo actual de un producto en una bodega.
// Si la fila no existe el saldo es cero: ausencia de fila y cantidad 0 son
// equivalentes para el dominio.
func (r *StockRepo) Get(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: 0}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el saldo y bloquea la fila (SELECT FOR UPDATE).
// Es el punto de serialización por par (producto, bodega): dos movimientos
// concurrentes sobre el mismo par se encolan aquí.
func (r *StockRepo) GetForUpdate(productID, warehouseID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, warehouse_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND warehouse_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, warehouseID).Scan(
		&s.ProductID, &s.WarehouseID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: 0}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// ApplyDelta suma delta al saldo del par (producto, bodega), creando la fila
// si no existe. El upsert es aditivo (quantity = stock.quantity + delta), no
// un overwrite: dos entradas concurrentes al mismo par no se pisan.
// El CHECK quantity >= 0 de la tabla dispara si el delta dejara saldo
// negativo; se traduce a ErrInsufficientStock.
func (r *StockRepo) ApplyDelta(productID, warehouseID string, delta int64) error {
	query := `
		INSERT INTO stock (product_id, warehouse_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, warehouse_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, productID, warehouseID, delta)
	if err != nil {
		if isCheckViolation(err) {
			return domain.ErrInsufficientStock
		}
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// List devuelve los saldos con los datos de presentación del producto y la
// bodega. Incluye solo pares con fila de stock (saldo alguna vez movido).
func (r *StockRepo) List(filter repository.StockFilter) ([]repository.StockRecord, error) {
	query := `
		SELECT s.product_id, s.warehouse_id, s.quantity, s.updated_at,
		       p.code, p.name, p.unit, p.price, p.min_quantity,
		       w.name
		FROM stock s
		JOIN products   p ON p.id = s.product_id
		JOIN warehouses w ON w.id = s.warehouse_id
		WHERE 1=1`
	args := []any{}
	i := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND s.product_id = $%d", i)
		args = append(args, filter.ProductID)
		i++
	}
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND s.warehouse_id = $%d", i)
		args = append(args, filter.WarehouseID)
		i++
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (p.code ILIKE $%d OR p.name ILIKE $%d)", i, i)
		args = append(args, "%"+filter.Search+"%")
		i++
	}
	query += " ORDER BY p.code, w.name"

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock: %w", err)
	}
	defer rows.Close()

	var records []repository.StockRecord
	for rows.Next() {
		var rec repository.StockRecord
		if err := rows.Scan(
			&rec.Stock.ProductID, &rec.Stock.WarehouseID, &rec.Stock.Quantity, &rec.Stock.UpdatedAt,
			&rec.ProductCode, &rec.ProductName, &rec.ProductUnit, &rec.ProductPrice, &rec.MinQuantity,
			&rec.WarehouseName,
		); err != nil {
			return nil, fmt.Errorf("list stock scan: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
