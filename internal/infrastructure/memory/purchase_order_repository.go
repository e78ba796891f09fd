package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra en memoria.
type PurchaseOrderRepo struct {
	db db
}

func cloneOrder(o entity.PurchaseOrder) *entity.PurchaseOrder {
	o.Items = slices.Clone(o.Items)
	o.ExpectedDate = copyTime(o.ExpectedDate)
	return &o
}

func (r *PurchaseOrderRepo) Create(ctx context.Context, o *entity.PurchaseOrder) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.orders[o.ID]; ok {
			return domain.ErrDuplicate
		}
		if _, ok := t.suppliers[o.SupplierID]; !ok {
			return domain.ErrNotFound
		}
		t.orders[o.ID] = record[entity.PurchaseOrder]{v: *cloneOrder(*o), seq: t.next()}
		return nil
	})
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	var out *entity.PurchaseOrder
	err := r.db.do(ctx, func(t *tables) error {
		if rec, ok := t.orders[id]; ok {
			out = cloneOrder(rec.v)
		}
		return nil
	})
	return out, err
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) List(ctx context.Context) ([]*entity.PurchaseOrder, error) {
	out := []*entity.PurchaseOrder{}
	err := r.db.do(ctx, func(t *tables) error {
		for _, o := range newestFirst(t.orders, func(o entity.PurchaseOrder) time.Time { return o.CreatedAt }) {
			out = append(out, cloneOrder(o))
		}
		return nil
	})
	return out, err
}

// UpdateStatus solo cambia status y updated_at.
func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, o *entity.PurchaseOrder) error {
	return r.db.do(ctx, func(t *tables) error {
		rec, ok := t.orders[o.ID]
		if !ok {
			return domain.ErrNotFound
		}
		rec.v.Status = o.Status
		rec.v.UpdatedAt = o.UpdatedAt
		t.orders[o.ID] = rec
		return nil
	})
}
