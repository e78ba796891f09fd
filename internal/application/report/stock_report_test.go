package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
)

func TestStockReport_Build(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	now := time.Now().UTC()

	s := &entity.Supplier{ID: uuid.NewString(), Name: "Acme", CreatedAt: now}
	require.NoError(t, repos.Suppliers.Create(ctx, s))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: uuid.NewString(), Name: "Bravo", SKU: "B-2", Quantity: 3,
		Price: decimal.RequireFromString("2.50"), Cost: decimal.NewFromInt(1), SupplierID: &s.ID, CreatedAt: now,
	}))
	require.NoError(t, repos.Products.Create(ctx, &entity.Product{
		ID: uuid.NewString(), Name: "Alfa", SKU: "A-1", Quantity: 4,
		Price: decimal.NewFromInt(10), Cost: decimal.NewFromInt(6), CreatedAt: now,
	}))

	out, err := report.NewStockReportUseCase(repos.Products, repos.Suppliers).Build(ctx)
	require.NoError(t, err)

	require.Len(t, out.Rows, 2)
	assert.Equal(t, "A-1", out.Rows[0].SKU)
	assert.Empty(t, out.Rows[0].Supplier)
	assert.Equal(t, "Acme", out.Rows[1].Supplier)
	assert.True(t, out.Rows[1].StockValue.Equal(decimal.RequireFromString("7.5")))
	assert.Equal(t, 7, out.TotalUnits)
	assert.True(t, out.TotalValue.Equal(decimal.RequireFromString("47.5")))
}
