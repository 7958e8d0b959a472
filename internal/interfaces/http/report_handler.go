package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/dto"
	"github.com/DonnyDianderas/dcp-inventory-api/internal/application/report"
	"github.com/DonnyDianderas/dcp-inventory-api/pkg/logger"
)

// ReportHandler sirve el reporte de stock en PDF (protegido).
type ReportHandler struct {
	uc  *report.StockReportUseCase
	log *logger.Logger
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.StockReportUseCase, log *logger.Logger) *ReportHandler {
	return &ReportHandler{uc: uc, log: log}
}

// Stock godoc
// @Summary      Reporte de stock del catálogo (PDF)
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/reports/stock [get]
func (h *ReportHandler) Stock(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Generate(c.Context())
	if err != nil {
		h.log.Error().Err(err).Msg("generar reporte de stock")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-report.pdf"`)
	return c.Send(pdfBytes)
}
