package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// CategoryMarginResult suma cruda de márgenes por categoría.
// El use case calcula el promedio y el redondeo.
type CategoryMarginResult struct {
	Category  string
	MarginSum decimal.Decimal // Σ (price - cost) / price * 100
	Count     int
}

// DailyMovementResult cantidades de entradas y salidas de un día (UTC, YYYY-MM-DD).
type DailyMovementResult struct {
	Day     string
	Entries int64
	Exits   int64
}

// SupplierTotalsResult productos agrupados por nombre de proveedor.
type SupplierTotalsResult struct {
	Name       string // "Unknown Supplier" si el producto no tiene proveedor
	Products   int
	TotalValue decimal.Decimal // Σ price × quantity
}

// MovementValueResult datos mínimos de un movimiento para la serie de valor acumulado.
type MovementValueResult struct {
	CreatedAt       time.Time
	Type            string
	Quantity        int
	PriceAtMovement decimal.Decimal
}

// AnalyticsRepository define las consultas de lectura para los dashboards.
// Las implementaciones son read-only (no modifican datos).
type AnalyticsRepository interface {
	// GetCategoryMargins agrupa productos con price > 0, cost >= 0 y categoría no vacía.
	GetCategoryMargins(ctx context.Context) ([]CategoryMarginResult, error)

	// GetDailyMovements agrupa cantidades por día de creación y tipo.
	GetDailyMovements(ctx context.Context) ([]DailyMovementResult, error)

	// GetSupplierTotals agrupa productos por nombre de proveedor resuelto.
	GetSupplierTotals(ctx context.Context) ([]SupplierTotalsResult, error)

	// ListMovementValues devuelve todos los movimientos en orden cronológico ascendente.
	ListMovementValues(ctx context.Context) ([]MovementValueResult, error)
}
