package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/almacen-api/internal/application/reports"
)

// ReportHandler generación de reportes en PDF.
type ReportHandler struct {
	uc *reports.StockReportUseCase
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *reports.StockReportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc}
}

// StockReport godoc
// @Summary      Reporte de stock en PDF (stock bajo + últimos movimientos)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock [get]
func (h *ReportHandler) StockReport(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Generate(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reporte-stock.pdf"`)
	return c.Send(pdfBytes)
}
