package repository

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// ClientRepository define el puerto de persistencia para Client.
type ClientRepository interface {
	Create(ctx context.Context, client *entity.Client) error
	GetByID(ctx context.Context, id string) (*entity.Client, error)
	ListByIDs(ctx context.Context, ids []string) ([]*entity.Client, error)
	List(ctx context.Context) ([]*entity.Client, error)
	Update(ctx context.Context, client *entity.Client) error
	// RecordPurchase acumula una salida en los totales derivados del cliente.
	RecordPurchase(ctx context.Context, id string, quantity int, at time.Time) error
	Delete(ctx context.Context, id string) error
}
