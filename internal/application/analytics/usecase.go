// Package analytics contiene los casos de uso de las vistas analíticas del inventario.
// Los repositorios devuelven agregados crudos; aquí se calculan promedios, redondeos y orden.
package analytics

import (
	"context"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// Claves de caché. Todas comparten el prefijo KeyPrefix para poder invalidarlas juntas.
const (
	KeyPrefix    = "analytics:"
	keyMargins   = KeyPrefix + "margins"
	keyMovements = KeyPrefix + "movements"
	keySuppliers = KeyPrefix + "suppliers"
	keyValue     = KeyPrefix + "value"
)

var hundred = decimal.NewFromInt(100)

// Cache almacena resultados serializables. Get devuelve false si la clave no existe.
type Cache interface {
	Get(ctx context.Context, key string, dst any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	DeletePrefix(ctx context.Context, prefix string) error
}

// UseCase calcula las vistas analíticas, opcionalmente cacheadas.
type UseCase struct {
	repo  repository.AnalyticsRepository
	cache Cache
	log   zerolog.Logger

	mu  sync.Mutex
	rnd *rand.Rand
}

// Option configura el UseCase.
type Option func(*UseCase)

// WithRandSource fija la fuente aleatoria de la confiabilidad de proveedores (tests).
func WithRandSource(src rand.Source) Option {
	return func(uc *UseCase) { uc.rnd = rand.New(src) }
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(repo repository.AnalyticsRepository, cache Cache, log zerolog.Logger, opts ...Option) *UseCase {
	uc := &UseCase{
		repo:  repo,
		cache: cache,
		log:   log,
		rnd:   rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(uc)
	}
	return uc
}

// Invalidate descarta todas las vistas cacheadas. Un fallo solo se registra.
func (uc *UseCase) Invalidate(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.DeletePrefix(ctx, KeyPrefix); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar la caché de analítica")
	}
}

// Margins margen promedio por categoría (1 decimal, redondeo al par), de mayor a menor.
func (uc *UseCase) Margins(ctx context.Context) ([]dto.CategoryMarginDTO, error) {
	return cached(ctx, uc, keyMargins, func() ([]dto.CategoryMarginDTO, error) {
		rows, err := uc.repo.GetCategoryMargins(ctx)
		if err != nil {
			return nil, fmt.Errorf("analytics: márgenes: %w", err)
		}
		return buildMargins(rows), nil
	})
}

func buildMargins(rows []repository.CategoryMarginResult) []dto.CategoryMarginDTO {
	out := make([]dto.CategoryMarginDTO, 0, len(rows))
	for _, r := range rows {
		if r.Count == 0 {
			continue
		}
		avg := r.MarginSum.Div(decimal.NewFromInt(int64(r.Count))).RoundBank(1)
		out = append(out, dto.CategoryMarginDTO{Category: r.Category, Margin: avg, Count: r.Count})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Margin.Equal(out[j].Margin) {
			return out[i].Margin.GreaterThan(out[j].Margin)
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// Movements cantidades de entradas y salidas por día UTC, ascendente.
func (uc *UseCase) Movements(ctx context.Context) ([]dto.DailyMovementDTO, error) {
	return cached(ctx, uc, keyMovements, func() ([]dto.DailyMovementDTO, error) {
		rows, err := uc.repo.GetDailyMovements(ctx)
		if err != nil {
			return nil, fmt.Errorf("analytics: movimientos: %w", err)
		}
		out := make([]dto.DailyMovementDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.DailyMovementDTO{Day: r.Day, Entries: r.Entries, Exits: r.Exits})
		}
		sort.SliceStable(out, func(i, j int) bool { return out[i].Day < out[j].Day })
		return out, nil
	})
}

// Suppliers desempeño por proveedor, de mayor a menor valor en stock.
// La confiabilidad es sintética: 80 + U[0,1)·20.
func (uc *UseCase) Suppliers(ctx context.Context) ([]dto.SupplierPerformanceDTO, error) {
	return cached(ctx, uc, keySuppliers, func() ([]dto.SupplierPerformanceDTO, error) {
		rows, err := uc.repo.GetSupplierTotals(ctx)
		if err != nil {
			return nil, fmt.Errorf("analytics: proveedores: %w", err)
		}
		out := make([]dto.SupplierPerformanceDTO, 0, len(rows))
		for _, r := range rows {
			out = append(out, dto.SupplierPerformanceDTO{
				Name:        r.Name,
				Products:    r.Products,
				TotalValue:  r.TotalValue.RoundBank(2),
				Reliability: uc.reliability(),
			})
		}
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].TotalValue.GreaterThan(out[j].TotalValue)
		})
		return out, nil
	})
}

func (uc *UseCase) reliability() float64 {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return 80 + uc.rnd.Float64()*20
}

// StockValue serie del valor acumulado (entradas suman, salidas restan) con una muestra por día.
func (uc *UseCase) StockValue(ctx context.Context) (*dto.StockValueDTO, error) {
	return cached(ctx, uc, keyValue, func() (*dto.StockValueDTO, error) {
		rows, err := uc.repo.ListMovementValues(ctx)
		if err != nil {
			return nil, fmt.Errorf("analytics: valor: %w", err)
		}
		return buildStockValue(rows), nil
	})
}

func buildStockValue(rows []repository.MovementValueResult) *dto.StockValueDTO {
	out := &dto.StockValueDTO{History: []dto.StockValuePointDTO{}}
	running := decimal.Zero
	for _, r := range rows {
		change := r.PriceAtMovement.Mul(decimal.NewFromInt(int64(r.Quantity)))
		switch r.Type {
		case entity.MovementTypeEntry:
			running = running.Add(change)
		case entity.MovementTypeExit:
			running = running.Sub(change)
		}
		day := r.CreatedAt.UTC().Format("2006-01-02")
		value := running.Round(0).IntPart()
		if value < 0 {
			value = 0
		}
		n := len(out.History)
		if n > 0 && out.History[n-1].Day == day {
			out.History[n-1].Value = value
			continue
		}
		out.History = append(out.History, dto.StockValuePointDTO{Day: day, Value: value})
	}
	if n := len(out.History); n > 0 {
		out.TotalValue = out.History[n-1].Value
	}
	return out
}

// Overview calcula las cuatro vistas en paralelo.
func (uc *UseCase) Overview(ctx context.Context) (*dto.AnalyticsOverviewDTO, error) {
	type marginsResult struct {
		rows []dto.CategoryMarginDTO
		err  error
	}
	type movementsResult struct {
		rows []dto.DailyMovementDTO
		err  error
	}
	type suppliersResult struct {
		rows []dto.SupplierPerformanceDTO
		err  error
	}
	type valueResult struct {
		value *dto.StockValueDTO
		err   error
	}

	mChan := make(chan marginsResult, 1)
	mvChan := make(chan movementsResult, 1)
	sChan := make(chan suppliersResult, 1)
	vChan := make(chan valueResult, 1)

	go func() {
		rows, err := uc.Margins(ctx)
		mChan <- marginsResult{rows, err}
	}()
	go func() {
		rows, err := uc.Movements(ctx)
		mvChan <- movementsResult{rows, err}
	}()
	go func() {
		rows, err := uc.Suppliers(ctx)
		sChan <- suppliersResult{rows, err}
	}()
	go func() {
		v, err := uc.StockValue(ctx)
		vChan <- valueResult{v, err}
	}()

	mRes, mvRes, sRes, vRes := <-mChan, <-mvChan, <-sChan, <-vChan
	for _, err := range []error{mRes.err, mvRes.err, sRes.err, vRes.err} {
		if err != nil {
			return nil, err
		}
	}
	return &dto.AnalyticsOverviewDTO{
		Margins:   mRes.rows,
		Movements: mvRes.rows,
		Suppliers: sRes.rows,
		Value:     *vRes.value,
	}, nil
}

// cached lee la clave de la caché o calcula y guarda el resultado. Los errores de caché no fallan la consulta.
func cached[T any](ctx context.Context, uc *UseCase, key string, compute func() (T, error)) (T, error) {
	if uc.cache != nil {
		var hit T
		ok, err := uc.cache.Get(ctx, key, &hit)
		if err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("lectura de caché fallida")
		} else if ok {
			return hit, nil
		}
	}
	v, err := compute()
	if err != nil {
		return v, err
	}
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, key, v); err != nil {
			uc.log.Warn().Err(err).Str("key", key).Msg("escritura de caché fallida")
		}
	}
	return v, nil
}
