// Package report arma el reporte de stock que se exporta en CSV y PDF.
package report

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// StockRow una línea del reporte por producto.
type StockRow struct {
	SKU        string
	Name       string
	Category   string
	Quantity   int
	Cost       decimal.Decimal
	Price      decimal.Decimal
	StockValue decimal.Decimal // price × quantity
	Supplier   string
}

// StockReport reporte completo con totales.
type StockReport struct {
	GeneratedAt time.Time
	Rows        []StockRow
	TotalUnits  int
	TotalValue  decimal.Decimal
}

// StockReportUseCase construye el reporte a partir del catálogo.
type StockReportUseCase struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
	now       func() time.Time
}

// NewStockReportUseCase construye el caso de uso.
func NewStockReportUseCase(products repository.ProductRepository, suppliers repository.SupplierRepository) *StockReportUseCase {
	return &StockReportUseCase{products: products, suppliers: suppliers, now: time.Now}
}

// Build devuelve todos los productos ordenados por SKU.
func (uc *StockReportUseCase) Build(ctx context.Context) (*StockReport, error) {
	products, err := uc.products.List(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(suppliers))
	for _, s := range suppliers {
		names[s.ID] = s.Name
	}

	out := &StockReport{
		GeneratedAt: uc.now().UTC(),
		Rows:        make([]StockRow, 0, len(products)),
		TotalValue:  decimal.Zero,
	}
	for _, p := range products {
		r := StockRow{
			SKU:        p.SKU,
			Name:       p.Name,
			Category:   p.Category,
			Quantity:   p.Quantity,
			Cost:       p.Cost,
			Price:      p.Price,
			StockValue: p.StockValue(),
		}
		if p.SupplierID != nil {
			r.Supplier = names[*p.SupplierID]
		}
		out.Rows = append(out.Rows, r)
		out.TotalUnits += p.Quantity
		out.TotalValue = out.TotalValue.Add(r.StockValue)
	}
	sort.Slice(out.Rows, func(i, j int) bool { return out.Rows[i].SKU < out.Rows[j].SKU })
	return out, nil
}
