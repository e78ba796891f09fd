package inventory

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción, pasando repositorios atados a esa tx.
// Si fn devuelve error se hace Rollback de todas las escrituras.
type TxRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repos) error) error
}

// AnalyticsInvalidator descarta las vistas analíticas cacheadas tras una escritura.
type AnalyticsInvalidator interface {
	Invalidate(ctx context.Context)
}

type noopInvalidator struct{}

func (noopInvalidator) Invalidate(context.Context) {}

func invalidatorOrNoop(inv AnalyticsInvalidator) AnalyticsInvalidator {
	if inv == nil {
		return noopInvalidator{}
	}
	return inv
}
