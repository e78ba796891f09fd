package dto

import "github.com/shopspring/decimal"

// CategoryMarginDTO margen promedio de una categoría (porcentaje, 1 decimal).
type CategoryMarginDTO struct {
	Category string          `json:"category"`
	Margin   decimal.Decimal `json:"margin"`
	Count    int             `json:"count"`
}

// DailyMovementDTO entradas y salidas de un día.
type DailyMovementDTO struct {
	Day     string `json:"day"`
	Entries int64  `json:"entries"`
	Exits   int64  `json:"exits"`
}

// SupplierPerformanceDTO desempeño de un proveedor.
// Reliability es un valor sintético en [80, 100); no proviene de datos reales.
type SupplierPerformanceDTO struct {
	Name        string          `json:"name"`
	Products    int             `json:"products"`
	TotalValue  decimal.Decimal `json:"total_value"`
	Reliability float64         `json:"reliability"`
}

// StockValuePointDTO valor acumulado al cierre de un día.
type StockValuePointDTO struct {
	Day   string `json:"day"`
	Value int64  `json:"value"`
}

// StockValueDTO serie de valor acumulado del inventario.
type StockValueDTO struct {
	TotalValue int64                `json:"total_value"`
	History    []StockValuePointDTO `json:"history"`
}

// AnalyticsOverviewDTO las cuatro vistas analíticas en una sola respuesta.
type AnalyticsOverviewDTO struct {
	Margins   []CategoryMarginDTO      `json:"margins"`
	Movements []DailyMovementDTO       `json:"movements"`
	Suppliers []SupplierPerformanceDTO `json:"suppliers"`
	Value     StockValueDTO            `json:"value"`
}
