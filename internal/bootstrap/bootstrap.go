// Package bootstrap arma el almacenamiento y los casos de uso compartidos por cmd/api y cmd/inventoryctl.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/jhoicas/stockflow-api/internal/application/analytics"
	"github.com/jhoicas/stockflow-api/internal/application/audit"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/report"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/cache"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/pdf"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/stockflow-api/internal/interfaces/http"
	"github.com/jhoicas/stockflow-api/pkg/config"
)

// Backend almacenamiento seleccionado por STORE_DRIVER.
type Backend struct {
	Repos     repository.Repos
	Tx        inventory.TxRunner
	Analytics repository.AnalyticsRepository
	Ping      func(ctx context.Context) error
	Close     func()
}

// OpenBackend abre PostgreSQL (aplicando migraciones si DB_AUTO_MIGRATE) o el almacenamiento en memoria.
func OpenBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*Backend, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		return MemoryBackend(memory.NewStore()), nil
	}

	if cfg.DB.AutoMigrate {
		if err := postgres.MigrateUp(cfg.DB.ConnectionString()); err != nil {
			return nil, fmt.Errorf("migraciones: %w", err)
		}
		log.Info().Msg("migraciones aplicadas")
	}
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	return &Backend{
		Repos:     postgres.NewRepos(pool),
		Tx:        postgres.NewTxRunner(pool),
		Analytics: postgres.NewAnalyticsRepository(pool),
		Ping:      pool.Ping,
		Close:     pool.Close,
	}, nil
}

// MemoryBackend envuelve un memory.Store.
func MemoryBackend(store *memory.Store) *Backend {
	return &Backend{
		Repos:     store.Repos(),
		Tx:        store,
		Analytics: store.Analytics(),
		Close:     func() {},
	}
}

// OpenAnalyticsCache conecta Redis si está configurado; sin REDIS_ADDR devuelve nil.
func OpenAnalyticsCache(ctx context.Context, cfg config.RedisConfig) (analytics.Cache, func(), error) {
	if !cfg.Enabled() {
		return nil, func() {}, nil
	}
	client, err := cache.NewRedisClient(ctx, cfg.Addr, cfg.Password, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return cache.NewRedisCache(client, cfg.CacheTTL), func() { _ = client.Close() }, nil
}

// Services casos de uso construidos sobre un Backend.
type Services struct {
	Products       *usecase.ProductUseCase
	ImportProducts *inventory.ImportProductsUseCase
	Suppliers      *usecase.SupplierUseCase
	Clients        *usecase.ClientUseCase
	Movements      *inventory.RegisterMovementUseCase
	MovementQuery  *usecase.MovementQueryUseCase
	Transports     *usecase.TransportUseCase
	PurchaseOrders *inventory.PurchaseOrderUseCase
	Logs           *usecase.LogUseCase
	Analytics      *analytics.UseCase
	StockReport    *report.StockReportUseCase
}

// NewServices arma los casos de uso. analyticsCache puede ser nil.
func NewServices(b *Backend, analyticsCache analytics.Cache, log zerolog.Logger, opts ...analytics.Option) *Services {
	auditLog := audit.NewLogger(b.Repos.Logs, log)
	analyticsUC := analytics.NewUseCase(b.Analytics, analyticsCache, log, opts...)

	return &Services{
		Products:       usecase.NewProductUseCase(b.Repos.Products, b.Repos.Suppliers, auditLog, analyticsUC),
		ImportProducts: inventory.NewImportProductsUseCase(b.Tx, analyticsUC, log),
		Suppliers:      usecase.NewSupplierUseCase(b.Repos.Suppliers, analyticsUC),
		Clients:        usecase.NewClientUseCase(b.Repos.Clients, b.Repos.Movements),
		Movements:      inventory.NewRegisterMovementUseCase(b.Tx, auditLog, analyticsUC, log),
		MovementQuery:  usecase.NewMovementQueryUseCase(b.Repos.Movements),
		Transports:     usecase.NewTransportUseCase(b.Tx, b.Repos),
		PurchaseOrders: inventory.NewPurchaseOrderUseCase(b.Tx, b.Repos, auditLog, analyticsUC, log),
		Logs:           usecase.NewLogUseCase(b.Repos.Logs, auditLog),
		Analytics:      analyticsUC,
		StockReport:    report.NewStockReportUseCase(b.Repos.Products, b.Repos.Suppliers),
	}
}

// RouterDeps conecta los casos de uso con las rutas HTTP.
func (s *Services) RouterDeps(cfg *config.Config, ping func(ctx context.Context) error) httpRouter.RouterDeps {
	deps := httpRouter.RouterDeps{
		AppName:          cfg.App.Name,
		ProductUC:        s.Products,
		ImportProducts:   s.ImportProducts,
		SupplierUC:       s.Suppliers,
		ClientUC:         s.Clients,
		RegisterMovement: s.Movements,
		MovementQuery:    s.MovementQuery,
		TransportUC:      s.Transports,
		PurchaseOrders:   s.PurchaseOrders,
		LogUC:            s.Logs,
		AnalyticsUC:      s.Analytics,
		StockReport:      s.StockReport,
		StockPDF:         pdf.NewStockReportGenerator(cfg.App.Name),
		Ping:             ping,
	}
	if cfg.JWT.Enabled() {
		deps.JWTSecret = cfg.JWT.Secret
		deps.JWTIssuer = cfg.JWT.Issuer
	}
	return deps
}
