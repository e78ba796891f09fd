package usecase

import (
	"context"
	"strings"

	"github.com/jhoicas/stockflow-api/internal/domain"
)

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

// requiredText recorta s y rechaza el valor si queda vacío.
func requiredText(field, s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", domain.NewValidationError(field, "required", "es obligatorio")
	}
	return s, nil
}
