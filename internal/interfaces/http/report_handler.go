package http

import (
	"bytes"
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/csvexport"
)

// StockPDFRenderer genera el PDF del reporte de stock.
type StockPDFRenderer interface {
	Generate(ctx context.Context, rep *report.StockReport) ([]byte, error)
}

// ReportHandler exporta el reporte de stock.
type ReportHandler struct {
	uc  *report.StockReportUseCase
	pdf StockPDFRenderer
}

// NewReportHandler construye el handler.
func NewReportHandler(uc *report.StockReportUseCase, pdf StockPDFRenderer) *ReportHandler {
	return &ReportHandler{uc: uc, pdf: pdf}
}

// StockCSV godoc
// @Summary      Reporte de stock en CSV
// @Tags         reports
// @Security     Bearer
// @Produce      text/csv
// @Success      200  {file}  file
// @Router       /api/reports/stock.csv [get]
func (h *ReportHandler) StockCSV(c *fiber.Ctx) error {
	rep, err := h.uc.Build(c.Context())
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := csvexport.WriteStockReport(&buf, rep); err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, attachment("stock", rep, "csv"))
	return c.Send(buf.Bytes())
}

// StockPDF godoc
// @Summary      Reporte de stock en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  file
// @Router       /api/reports/stock.pdf [get]
func (h *ReportHandler) StockPDF(c *fiber.Ctx) error {
	rep, err := h.uc.Build(c.Context())
	if err != nil {
		return err
	}
	content, err := h.pdf.Generate(c.Context(), rep)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, attachment("stock", rep, "pdf"))
	return c.Send(content)
}

func attachment(name string, rep *report.StockReport, ext string) string {
	return fmt.Sprintf(`attachment; filename="%s-%s.%s"`, name, rep.GeneratedAt.UTC().Format("20060102"), ext)
}
