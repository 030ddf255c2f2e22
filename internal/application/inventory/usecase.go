package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/domain"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockUseCase es el motor del libro de stock: registra entradas y salidas
// de forma transaccional (bloqueo de fila + Commit/Rollback) y expone las
// lecturas de saldos y transacciones.
//
// Invariante: cada mutación de un saldo va acompañada, en la misma
// transacción, de exactamente una inserción en el libro. Si algo falla no
// queda visible ni el saldo nuevo ni el asiento.
type StockUseCase struct {
	txRunner        TxRunner
	stockRepo       repository.StockRepository
	transactionRepo repository.TransactionRepository
	productRepo     repository.ProductRepository
	warehouseRepo   repository.WarehouseRepository
}

// NewStockUseCase construye el motor de stock.
func NewStockUseCase(
	txRunner TxRunner,
	stockRepo repository.StockRepository,
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
) *StockUseCase {
	return &StockUseCase{
		txRunner:        txRunner,
		stockRepo:       stockRepo,
		transactionRepo: transactionRepo,
		productRepo:     productRepo,
		warehouseRepo:   warehouseRepo,
	}
}

// MovementInput entrada para registrar un movimiento de stock.
type MovementInput struct {
	ProductID   string
	WarehouseID string
	Quantity    int64
	Note        string
	UserID      string
}

// StockIn registra una entrada: suma Quantity al saldo del par
// (producto, bodega), creando la fila si no existe, e inserta el asiento
// tipo "in". Siempre tiene éxito con entradas válidas.
func (uc *StockUseCase) StockIn(ctx context.Context, in MovementInput) (*entity.Transaction, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	trx := newTransaction(in, entity.TransactionTypeIn)
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		transactionRepo repository.TransactionRepository,
	) error {
		// El upsert aditivo es atómico fila a fila: dos entradas
		// concurrentes sobre un par sin fila no se pierden.
		if err := stockRepo.ApplyDelta(in.ProductID, in.WarehouseID, in.Quantity); err != nil {
			return err
		}
		return transactionRepo.Create(trx)
	})
	if err != nil {
		return nil, err
	}
	return trx, nil
}

// StockOut registra una salida: verifica el saldo bajo bloqueo de fila,
// resta Quantity e inserta el asiento tipo "out". Si la cantidad excede el
// saldo actual (fila ausente = 0) devuelve ErrInsufficientStock y no
// escribe nada.
func (uc *StockUseCase) StockOut(ctx context.Context, in MovementInput) (*entity.Transaction, error) {
	if err := uc.validate(in); err != nil {
		return nil, err
	}
	trx := newTransaction(in, entity.TransactionTypeOut)
	err := uc.txRunner.Run(ctx, func(
		stockRepo repository.StockRepository,
		transactionRepo repository.TransactionRepository,
	) error {
		// SELECT FOR UPDATE: serializa el check-then-act por par, de modo
		// que dos salidas concurrentes no puedan dejar el saldo negativo.
		stock, err := stockRepo.GetForUpdate(in.ProductID, in.WarehouseID)
		if err != nil {
			return err
		}
		if stock.Quantity < in.Quantity {
			return domain.ErrInsufficientStock
		}
		if err := stockRepo.ApplyDelta(in.ProductID, in.WarehouseID, -in.Quantity); err != nil {
			return err
		}
		return transactionRepo.Create(trx)
	})
	if err != nil {
		return nil, err
	}
	return trx, nil
}

// validate revisa cantidad y existencia de producto y bodega.
func (uc *StockUseCase) validate(in MovementInput) error {
	if in.Quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if in.ProductID == "" || in.WarehouseID == "" {
		return domain.ErrInvalidInput
	}
	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	warehouse, err := uc.warehouseRepo.GetByID(in.WarehouseID)
	if err != nil {
		return err
	}
	if warehouse == nil {
		return domain.ErrNotFound
	}
	return nil
}

func newTransaction(in MovementInput, typ string) *entity.Transaction {
	return &entity.Transaction{
		ID:          uuid.New().String(),
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Type:        typ,
		Quantity:    in.Quantity,
		Note:        in.Note,
		UserID:      in.UserID,
		CreatedAt:   time.Now(),
	}
}

// ListBalances lista los saldos actuales con filtros opcionales.
func (uc *StockUseCase) ListBalances(filter repository.StockFilter) ([]dto.StockItemDTO, error) {
	records, err := uc.stockRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItemDTO, 0, len(records))
	for _, r := range records {
		items = append(items, dto.StockItemDTO{
			ProductID:     r.Stock.ProductID,
			ProductCode:   r.ProductCode,
			ProductName:   r.ProductName,
			Unit:          r.ProductUnit,
			Price:         r.ProductPrice,
			WarehouseID:   r.Stock.WarehouseID,
			WarehouseName: r.WarehouseName,
			Quantity:      r.Stock.Quantity,
			MinQuantity:   r.MinQuantity,
			UpdatedAt:     r.Stock.UpdatedAt,
		})
	}
	return items, nil
}

// ListTransactions lista asientos del libro, más recientes primero.
func (uc *StockUseCase) ListTransactions(filter repository.TransactionFilter) ([]dto.TransactionDTO, error) {
	records, err := uc.transactionRepo.List(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.TransactionDTO, 0, len(records))
	for _, r := range records {
		items = append(items, ToTransactionDTO(r))
	}
	return items, nil
}

// ToTransactionDTO convierte un registro del libro a su DTO.
func ToTransactionDTO(r repository.TransactionRecord) dto.TransactionDTO {
	return dto.TransactionDTO{
		ID:            r.Transaction.ID,
		ProductID:     r.Transaction.ProductID,
		ProductCode:   r.ProductCode,
		ProductName:   r.ProductName,
		WarehouseID:   r.Transaction.WarehouseID,
		WarehouseName: r.WarehouseName,
		Type:          r.Transaction.Type,
		Quantity:      r.Transaction.Quantity,
		Note:          r.Transaction.Note,
		UserID:        r.Transaction.UserID,
		Username:      r.Username,
		CreatedAt:     r.Transaction.CreatedAt,
	}
}
