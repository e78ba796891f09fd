package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/analytics"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

type fakeRepo struct {
	mu        sync.Mutex
	calls     int
	margins   []repository.CategoryMarginResult
	daily     []repository.DailyMovementResult
	suppliers []repository.SupplierTotalsResult
	values    []repository.MovementValueResult
	err       error
}

func (f *fakeRepo) hit() {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
}

func (f *fakeRepo) GetCategoryMargins(context.Context) ([]repository.CategoryMarginResult, error) {
	f.hit()
	return f.margins, f.err
}

func (f *fakeRepo) GetDailyMovements(context.Context) ([]repository.DailyMovementResult, error) {
	f.hit()
	return f.daily, f.err
}

func (f *fakeRepo) GetSupplierTotals(context.Context) ([]repository.SupplierTotalsResult, error) {
	f.hit()
	return f.suppliers, f.err
}

func (f *fakeRepo) ListMovementValues(context.Context) ([]repository.MovementValueResult, error) {
	f.hit()
	return f.values, f.err
}

// mapCache guarda JSON como lo haría Redis.
type mapCache struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newMapCache() *mapCache { return &mapCache{data: map[string][]byte{}} }

func (c *mapCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *mapCache) Set(_ context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = raw
	return nil
}

func (c *mapCache) DeletePrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.data {
		if strings.HasPrefix(k, prefix) {
			delete(c.data, k)
		}
	}
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestMargins_PromedioRedondeadoYOrdenado(t *testing.T) {
	repo := &fakeRepo{margins: []repository.CategoryMarginResult{
		{Category: "Limpieza", MarginSum: dec("20"), Count: 1},
		{Category: "Bebidas", MarginSum: dec("65"), Count: 2}, // 40% y 25%
		{Category: "Vacía", MarginSum: dec("0"), Count: 0},
	}}
	uc := analytics.NewUseCase(repo, nil, zerolog.Nop())

	out, err := uc.Margins(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Bebidas", out[0].Category)
	assert.True(t, out[0].Margin.Equal(dec("32.5")), out[0].Margin.String())
	assert.Equal(t, 2, out[0].Count)
	assert.Equal(t, "Limpieza", out[1].Category)
}

func TestMargins_EmpatesRedondeanAlPar(t *testing.T) {
	repo := &fakeRepo{margins: []repository.CategoryMarginResult{
		{Category: "A", MarginSum: dec("24.5"), Count: 2},  // 12.25
		{Category: "B", MarginSum: dec("24.7"), Count: 2},  // 12.35
		{Category: "C", MarginSum: dec("-24.5"), Count: 2}, // -12.25
	}}
	uc := analytics.NewUseCase(repo, nil, zerolog.Nop())

	out, err := uc.Margins(context.Background())
	require.NoError(t, err)
	got := map[string]string{}
	for _, m := range out {
		got[m.Category] = m.Margin.String()
	}
	assert.Equal(t, map[string]string{"A": "12.2", "B": "12.4", "C": "-12.2"}, got)
}

func TestSuppliers_ValorRedondeaAlPar(t *testing.T) {
	repo := &fakeRepo{suppliers: []repository.SupplierTotalsResult{{Name: "Acme", Products: 1, TotalValue: dec("100.125")}}}
	out, err := analytics.NewUseCase(repo, nil, zerolog.Nop()).Suppliers(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "100.12", out[0].TotalValue.String())
}

func TestStockValue_AcumuladoPorDia(t *testing.T) {
	day1 := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	repo := &fakeRepo{values: []repository.MovementValueResult{
		{CreatedAt: day1, Type: entity.MovementTypeEntry, Quantity: 10, PriceAtMovement: dec("5")},
		{CreatedAt: day2, Type: entity.MovementTypeExit, Quantity: 2, PriceAtMovement: dec("5")},
		{CreatedAt: day2.Add(time.Hour), Type: entity.MovementTypeExit, Quantity: 2, PriceAtMovement: dec("5")},
	}}
	uc := analytics.NewUseCase(repo, nil, zerolog.Nop())

	out, err := uc.StockValue(context.Background())
	require.NoError(t, err)
	require.Len(t, out.History, 2)
	assert.Equal(t, "2024-01-01", out.History[0].Day)
	assert.Equal(t, int64(50), out.History[0].Value)
	assert.Equal(t, "2024-01-02", out.History[1].Day)
	assert.Equal(t, int64(30), out.History[1].Value)
	assert.Equal(t, int64(30), out.TotalValue)
}

func TestStockValue_NoBajaDeCero(t *testing.T) {
	repo := &fakeRepo{values: []repository.MovementValueResult{
		{CreatedAt: time.Now(), Type: entity.MovementTypeExit, Quantity: 3, PriceAtMovement: dec("7")},
	}}
	out, err := analytics.NewUseCase(repo, nil, zerolog.Nop()).StockValue(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.TotalValue)
}

func TestStockValue_SinMovimientos(t *testing.T) {
	out, err := analytics.NewUseCase(&fakeRepo{}, nil, zerolog.Nop()).StockValue(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.History)
	assert.Zero(t, out.TotalValue)
}

func TestSuppliers_ConfiabilidadDeterministaConSemilla(t *testing.T) {
	repo := &fakeRepo{suppliers: []repository.SupplierTotalsResult{
		{Name: "Acme", Products: 2, TotalValue: dec("100.456")},
		{Name: "Unknown Supplier", Products: 1, TotalValue: dec("250")},
	}}
	first, err := analytics.NewUseCase(repo, nil, zerolog.Nop(), analytics.WithRandSource(rand.NewSource(7))).Suppliers(context.Background())
	require.NoError(t, err)
	second, err := analytics.NewUseCase(repo, nil, zerolog.Nop(), analytics.WithRandSource(rand.NewSource(7))).Suppliers(context.Background())
	require.NoError(t, err)

	require.Len(t, first, 2)
	assert.Equal(t, "Unknown Supplier", first[0].Name)
	assert.True(t, first[1].TotalValue.Equal(dec("100.46")))
	for i, s := range first {
		assert.GreaterOrEqual(t, s.Reliability, 80.0)
		assert.Less(t, s.Reliability, 100.0)
		assert.Equal(t, s.Reliability, second[i].Reliability)
	}
}

func TestMovements_OrdenAscendente(t *testing.T) {
	repo := &fakeRepo{daily: []repository.DailyMovementResult{
		{Day: "2024-01-02", Entries: 1},
		{Day: "2024-01-01", Exits: 4},
	}}
	out, err := analytics.NewUseCase(repo, nil, zerolog.Nop()).Movements(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "2024-01-01", out[0].Day)
	assert.Equal(t, int64(4), out[0].Exits)
}

func TestCache_HitEInvalidate(t *testing.T) {
	ctx := context.Background()
	repo := &fakeRepo{margins: []repository.CategoryMarginResult{{Category: "A", MarginSum: dec("10"), Count: 1}}}
	uc := analytics.NewUseCase(repo, newMapCache(), zerolog.Nop())

	_, err := uc.Margins(ctx)
	require.NoError(t, err)
	out, err := uc.Margins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.calls)
	assert.True(t, out[0].Margin.Equal(dec("10")))

	uc.Invalidate(ctx)
	_, err = uc.Margins(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.calls)
}

func TestOverview_CombinaLasCuatroVistas(t *testing.T) {
	repo := &fakeRepo{
		margins:   []repository.CategoryMarginResult{{Category: "A", MarginSum: dec("10"), Count: 1}},
		daily:     []repository.DailyMovementResult{{Day: "2024-01-01", Entries: 3}},
		suppliers: []repository.SupplierTotalsResult{{Name: "Acme", Products: 1, TotalValue: dec("9")}},
	}
	out, err := analytics.NewUseCase(repo, nil, zerolog.Nop()).Overview(context.Background())
	require.NoError(t, err)
	assert.Len(t, out.Margins, 1)
	assert.Len(t, out.Movements, 1)
	assert.Len(t, out.Suppliers, 1)
	assert.Empty(t, out.Value.History)
}

func TestOverview_PropagaError(t *testing.T) {
	boom := errors.New("db caída")
	_, err := analytics.NewUseCase(&fakeRepo{err: boom}, nil, zerolog.Nop()).Overview(context.Background())
	assert.ErrorIs(t, err, boom)
}
