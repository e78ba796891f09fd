package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Quantity solo cambia vía movimientos, recepción de órdenes de compra o importación;
// Cost es el costo promedio ponderado.
type Product struct {
	ID         string
	Name       string
	SKU        string // único
	Category   string
	Quantity   int
	Price      decimal.Decimal // precio de venta
	Cost       decimal.Decimal // costo promedio ponderado
	SupplierID *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// StockValue devuelve price × quantity.
func (p *Product) StockValue() decimal.Decimal {
	return p.Price.Mul(decimal.NewFromInt(int64(p.Quantity)))
}
