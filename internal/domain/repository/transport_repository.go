package repository

import (
	"context"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// TransportRepository define el puerto de persistencia para Transport.
type TransportRepository interface {
	Create(ctx context.Context, transport *entity.Transport) error
	GetByID(ctx context.Context, id string) (*entity.Transport, error)
	List(ctx context.Context) ([]*entity.Transport, error)
	Update(ctx context.Context, transport *entity.Transport) error
	Delete(ctx context.Context, id string) error
}
