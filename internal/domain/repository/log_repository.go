package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// LogRepository registro de auditoría: solo inserción y lectura.
type LogRepository interface {
	Create(ctx context.Context, log *entity.Log) error
	ListRecent(ctx context.Context, limit int) ([]*entity.Log, error)
}
