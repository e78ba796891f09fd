package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/report"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "25.000,00", formatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "1.234,50", formatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-1.000.000,00", formatMoney(decimal.NewFromInt(-1000000)))
}

func TestStockReportGenerator_Generate(t *testing.T) {
	rep := &report.StockReport{
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Rows: []report.StockRow{
			{SKU: "A-1", Name: "Café", Category: "Bebidas", Quantity: 4, Cost: decimal.NewFromInt(6), Price: decimal.NewFromInt(10), StockValue: decimal.NewFromInt(40)},
			{SKU: "B-2", Name: "Jabón", Quantity: 1, Cost: decimal.NewFromInt(1), Price: decimal.NewFromInt(2), StockValue: decimal.NewFromInt(2)},
		},
		TotalUnits: 5,
		TotalValue: decimal.NewFromInt(42),
	}

	out, err := NewStockReportGenerator("StockFlow").Generate(context.Background(), rep)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}
