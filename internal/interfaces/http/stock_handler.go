package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/application/dto"
	"github.com/jhoicas/almacen-api/internal/application/inventory"
	"github.com/jhoicas/almacen-api/internal/domain/entity"
	"github.com/jhoicas/almacen-api/internal/domain/repository"
)

// StockHandler maneja las peticiones HTTP de movimientos y saldos (protegido).
type StockHandler struct {
	uc *inventory.StockUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *inventory.StockUseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, warehouse_id, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	return h.movement(c, h.uc.StockIn, "entrada registrada")
}

// StockOut godoc
// @Summary      Registrar salida de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.StockMovementRequest  true  "product_id, warehouse_id, quantity, note"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/out [post]
func (h *StockHandler) StockOut(c *fiber.Ctx) error {
	return h.movement(c, h.uc.StockOut, "salida registrada")
}

// movement parsea el body, registra el movimiento y responde 201 con el
// asiento creado. register es StockIn o StockOut.
func (h *StockHandler) movement(
	c *fiber.Ctx,
	register func(ctx context.Context, in inventory.MovementInput) (*entity.Transaction, error),
	message string,
) error {
	var in dto.StockMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	trx, err := register(c.Context(), inventory.MovementInput{
		ProductID:   in.ProductID,
		WarehouseID: in.WarehouseID,
		Quantity:    in.Quantity,
		Note:        in.Note,
		UserID:      GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.MovementResponse{
		Message: message,
		Transaction: dto.TransactionDTO{
			ID:          trx.ID,
			ProductID:   trx.ProductID,
			WarehouseID: trx.WarehouseID,
			Type:        trx.Type,
			Quantity:    trx.Quantity,
			Note:        trx.Note,
			UserID:      trx.UserID,
			CreatedAt:   trx.CreatedAt,
		},
	})
}

// List godoc
// @Summary      Listar saldos actuales
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        search        query  string  false  "Busca en código y nombre del producto"
// @Success      200  {array}  dto.StockItemDTO
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListBalances(repository.StockFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Search:      c.Query("search"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Transactions godoc
// @Summary      Listar transacciones del libro
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        product_id    query  string  false  "Filtrar por producto"
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Param        type          query  string  false  "in | out"
// @Param        limit         query  int     false  "Máximo de filas (0 = todas)"
// @Success      200  {array}  dto.TransactionDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/transactions [get]
func (h *StockHandler) Transactions(c *fiber.Ctx) error {
	out, err := h.uc.ListTransactions(repository.TransactionFilter{
		ProductID:   c.Query("product_id"),
		WarehouseID: c.Query("warehouse_id"),
		Type:        c.Query("type"),
		Limit:       c.QueryInt("limit"),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
