package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

var _ repository.TransactionRepository = (*TransactionRepo)(nil)

// TransactionRepo implementación del libro de transacciones sobre PostgreSQL
// (usable con pool o tx). Solo inserta y lee: el libro es append-only y no
// hay Update ni Delete.
type TransactionRepo struct {
	q Querier
}

// NewTransactionRepository construye el adaptador del libro. Pasar pool o tx (Querier).
func NewTransactionRepository(q Querier) *TransactionRepo {
	return &TransactionRepo{q: q}
}

// Create inserta un asiento en el libro.
func (r *TransactionRepo) Create(transaction *entity.Transaction) error {
	if transaction.ID == "" {
		transaction.ID = uuid.New().String()
	}
	if transaction.Type != entity.TransactionTypeIn && transaction.Type != entity.TransactionTypeOut {
		return domain.ErrInvalidInput
	}
	query := `
		INSERT INTO transactions (id, product_id, warehouse_id, type, quantity, note, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		transaction.ID, transaction.ProductID, transaction.WarehouseID,
		transaction.Type, transaction.Quantity, nullIfEmpty(transaction.Note),
		nullIfEmpty(transaction.UserID), transaction.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

// List devuelve los asientos más recientes primero, con los nombres de
// presentación de producto, bodega y usuario.
func (r *TransactionRepo) List(filter repository.TransactionFilter) ([]repository.TransactionRecord, error) {
	query := `
		SELECT t.id, t.product_id, t.warehouse_id, t.type, t.quantity,
		       COALESCE(t.note, ''), COALESCE(t.user_id::TEXT, ''), t.created_at,
		       p.code, p.name, w.name, COALESCE(u.username, '')
		FROM transactions t
		JOIN products   p ON p.id = t.product_id
		JOIN warehouses w ON w.id = t.warehouse_id
		LEFT JOIN users u ON u.id = t.user_id
		WHERE 1=1`
	args := []any{}
	i := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND t.product_id = $%d", i)
		args = append(args, filter.ProductID)
		i++
	}
	if filter.WarehouseID != "" {
		query += fmt.Sprintf(" AND t.warehouse_id = $%d", i)
		args = append(args, filter.WarehouseID)
		i++
	}
	if filter.Type != "" {
		if filter.Type != entity.TransactionTypeIn && filter.Type != entity.TransactionTypeOut {
			return nil, domain.ErrInvalidInput
		}
		query += fmt.Sprintf(" AND t.type = $%d", i)
		args = append(args, filter.Type)
		i++
	}
	query += " ORDER BY t.created_at DESC, t.id DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d", i)
		args = append(args, filter.Limit)
		i++
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var records []repository.TransactionRecord
	for rows.Next() {
		var rec repository.TransactionRecord
		if err := rows.Scan(
			&rec.Transaction.ID, &rec.Transaction.ProductID, &rec.Transaction.WarehouseID,
			&rec.Transaction.Type, &rec.Transaction.Quantity,
			&rec.Transaction.Note, &rec.Transaction.UserID, &rec.Transaction.CreatedAt,
			&rec.ProductCode, &rec.ProductName, &rec.WarehouseName, &rec.Username,
		); err != nil {
			return nil, fmt.Errorf("list transactions scan: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions rows: %w", err)
	}
	return records, nil
}
