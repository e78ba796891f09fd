// Package csvexport escribe el reporte de stock y lee el CSV de importación de productos.
package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jhoicas/stockflow-api/internal/application/report"
)

var stockHeader = []string{"sku", "name", "category", "quantity", "cost", "price", "stock_value", "supplier"}

// WriteStockReport escribe una fila por producto y una fila final de totales.
func WriteStockReport(w io.Writer, rep *report.StockReport) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(stockHeader); err != nil {
		return fmt.Errorf("csv: encabezado: %w", err)
	}
	for _, r := range rep.Rows {
		rec := []string{
			r.SKU,
			r.Name,
			r.Category,
			strconv.Itoa(r.Quantity),
			r.Cost.StringFixed(2),
			r.Price.StringFixed(2),
			r.StockValue.StringFixed(2),
			r.Supplier,
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("csv: fila %s: %w", r.SKU, err)
		}
	}
	if err := cw.Write([]string{"TOTAL", "", "", strconv.Itoa(rep.TotalUnits), "", "", rep.TotalValue.StringFixed(2), ""}); err != nil {
		return fmt.Errorf("csv: totales: %w", err)
	}
	cw.Flush()
	return cw.Error()
}
