package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de stock.
const (
	MovementTypeEntry = "entry" // entrada
	MovementTypeExit  = "exit"  // salida
)

// Tipos de transporte declarados en el movimiento.
const (
	TransportTypeSupplier = "supplier"
	TransportTypeClient   = "client"
	TransportTypeInternal = "internal"
	TransportTypeNone     = "none"
)

// StockMovement representa una entrada o salida de stock de un producto.
// CurrentStock es una foto de la cantidad del producto justo después del movimiento.
type StockMovement struct {
	ID              string
	Type            string
	ProductID       string
	Quantity        int
	Location        string
	Responsible     string
	TransportType   string
	Description     string
	PriceAtMovement decimal.Decimal
	CurrentStock    int
	ClientID        *string
	TransportID     *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsEntry indica si el movimiento suma stock.
func (m *StockMovement) IsEntry() bool { return m.Type == MovementTypeEntry }

// Value devuelve price_at_movement × quantity.
func (m *StockMovement) Value() decimal.Decimal {
	return m.PriceAtMovement.Mul(decimal.NewFromInt(int64(m.Quantity)))
}

// MovementDetail es un movimiento con los resúmenes de producto, cliente y transporte.
type MovementDetail struct {
	StockMovement
	ProductName     string
	ProductSKU      string
	ProductPrice    decimal.Decimal
	ClientName      string
	ClientEmail     string
	TransportKind   string
	TransportStatus string
	TransportDriver string
}

// MovementFilter filtros opcionales para listar movimientos. From es inclusivo y To exclusivo.
type MovementFilter struct {
	Type      string
	ProductID string
	ClientID  string
	From      *time.Time
	To        *time.Time
	Limit     int
	Offset    int
}
