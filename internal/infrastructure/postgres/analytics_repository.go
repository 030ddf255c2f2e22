package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para el dashboard.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// Summary calcula todos los agregados del dashboard dentro de una única
// transacción de solo lectura: los totales, los desgloses y las
// transacciones recientes salen del mismo snapshot, así un movimiento en
// vuelo no deja el resumen a medio contar.
func (r *AnalyticsRepo) Summary(ctx context.Context, recentLimit int) (*repository.SummaryResult, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadOnly})
	if err != nil {
		return nil, fmt.Errorf("analytics.Summary begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	result := &repository.SummaryResult{}

	if err := r.totals(ctx, tx, result); err != nil {
		return nil, err
	}
	if result.ByWarehouse, err = r.byWarehouse(ctx, tx); err != nil {
		return nil, err
	}
	if result.ByCategory, err = r.byCategory(ctx, tx); err != nil {
		return nil, err
	}

	// Reusar el repo del libro atado a la misma tx para las recientes.
	result.Recent, err = NewTransactionRepository(tx).List(repository.TransactionFilter{Limit: recentLimit})
	if err != nil {
		return nil, fmt.Errorf("analytics.Summary recent: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("analytics.Summary commit: %w", err)
	}
	return result, nil
}

// totals llena los contadores globales del resumen.
// Low stock es por producto agregando sus saldos de todas las bodegas y
// comparando contra su min_quantity; productos sin filas de stock cuentan
// con saldo cero.
func (r *AnalyticsRepo) totals(ctx context.Context, tx pgx.Tx, out *repository.SummaryResult) error {
	const totalsQuery = `
	SELECT
	    (SELECT COUNT(*) FROM products),
	    (SELECT COUNT(*) FROM warehouses),
	    (SELECT COALESCE(SUM(quantity), 0) FROM stock)`
	if err := tx.QueryRow(ctx, totalsQuery).Scan(
		&out.TotalProducts, &out.TotalWarehouses, &out.TotalStock,
	); err != nil {
		return fmt.Errorf("analytics.Summary totals: %w", err)
	}

	const lowStockQuery = `
	SELECT COUNT(*)
	FROM (
	    SELECT p.id
	    FROM products p
	    LEFT JOIN stock s ON s.product_id = p.id
	    GROUP BY p.id, p.min_quantity
	    HAVING COALESCE(SUM(s.quantity), 0) <= p.min_quantity
	) low`
	if err := tx.QueryRow(ctx, lowStockQuery).Scan(&out.LowStockItems); err != nil {
		return fmt.Errorf("analytics.Summary low stock: %w", err)
	}
	return nil
}

// byWarehouse agrupa productos distintos y unidades totales por bodega.
// Incluye bodegas sin stock con totales en cero.
func (r *AnalyticsRepo) byWarehouse(ctx context.Context, tx pgx.Tx) ([]repository.WarehouseStockResult, error) {
	const query = `
	SELECT
	    w.id,
	    w.name,
	    COUNT(s.product_id) FILTER (WHERE s.quantity > 0)  AS total_items,
	    COALESCE(SUM(s.quantity), 0)                       AS total_quantity
	FROM warehouses w
	LEFT JOIN stock s ON s.warehouse_id = w.id
	GROUP BY w.id, w.name
	ORDER BY w.name`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.Summary by warehouse: %w", err)
	}
	defer rows.Close()

	var results []repository.WarehouseStockResult
	for rows.Next() {
		var row repository.WarehouseStockResult
		if err := rows.Scan(&row.WarehouseID, &row.WarehouseName, &row.TotalItems, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("analytics.Summary by warehouse scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// byCategory agrupa productos distintos y unidades totales por categoría.
// Los productos sin categoría se consolidan en el grupo "Sin categoría".
func (r *AnalyticsRepo) byCategory(ctx context.Context, tx pgx.Tx) ([]repository.CategoryStockResult, error) {
	const query = `
	SELECT
	    COALESCE(c.id::TEXT, 'none')            AS category_id,
	    COALESCE(c.name, 'Sin categoría')       AS category_name,
	    COUNT(DISTINCT p.id)                    AS total_items,
	    COALESCE(SUM(s.quantity), 0)            AS total_quantity
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN stock s      ON s.product_id = p.id
	GROUP BY c.id, c.name
	ORDER BY total_quantity DESC`

	rows, err := tx.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.Summary by category: %w", err)
	}
	defer rows.Close()

	var results []repository.CategoryStockResult
	for rows.Next() {
		var row repository.CategoryStockResult
		if err := rows.Scan(&row.CategoryID, &row.CategoryName, &row.TotalItems, &row.TotalQuantity); err != nil {
			return nil, fmt.Errorf("analytics.Summary by category scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
