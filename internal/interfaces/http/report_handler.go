package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/almacen-api/internal/domain/repository"
	"github.com/jhoicas/almacen-api/internal/infrastructure/pdf"
)

// ReportHandler maneja la generación de reportes en PDF (protegido).
type ReportHandler struct {
	stockRepo repository.StockRepository
	generator *pdf.StockReportGenerator
}

// NewReportHandler construye el handler de reportes.
func NewReportHandler(stockRepo repository.StockRepository, generator *pdf.StockReportGenerator) *ReportHandler {
	return &ReportHandler{stockRepo: stockRepo, generator: generator}
}

// StockReport godoc
// @Summary      Reporte de existencias en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        warehouse_id  query  string  false  "Filtrar por bodega"
// @Success      200  {file}  binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/reports/stock/pdf [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	records, err := h.stockRepo.List(repository.StockFilter{
		WarehouseID: c.Query("warehouse_id"),
	})
	if err != nil {
		return respondError(c, err)
	}
	doc, err := h.generator.Generate(records, time.Now())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-existencias.pdf"`)
	return c.Send(doc)
}
