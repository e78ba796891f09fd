package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo proveedores en memoria.
type SupplierRepo struct {
	db db
}

func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.suppliers[s.ID]; ok {
			return domain.ErrDuplicate
		}
		t.suppliers[s.ID] = record[entity.Supplier]{v: *s, seq: t.next()}
		return nil
	})
}

func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.db.do(ctx, func(t *tables) error {
		if rec, ok := t.suppliers[id]; ok {
			out = ptr(rec.v)
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) List(ctx context.Context) ([]*entity.Supplier, error) {
	out := []*entity.Supplier{}
	err := r.db.do(ctx, func(t *tables) error {
		for _, s := range newestFirst(t.suppliers, func(s entity.Supplier) time.Time { return s.CreatedAt }) {
			out = append(out, ptr(s))
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(ctx context.Context, s *entity.Supplier) error {
	return r.db.do(ctx, func(t *tables) error {
		rec, ok := t.suppliers[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		updated := *s
		updated.CreatedAt = rec.v.CreatedAt
		t.suppliers[s.ID] = record[entity.Supplier]{v: updated, seq: rec.seq}
		return nil
	})
}

// Delete desvincula los productos del proveedor; con órdenes de compra devuelve domain.ErrConflict.
func (r *SupplierRepo) Delete(ctx context.Context, id string) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		for _, o := range t.orders {
			if o.v.SupplierID == id {
				return fmt.Errorf("proveedor con órdenes de compra: %w", domain.ErrConflict)
			}
		}
		for pid, rec := range t.products {
			if rec.v.SupplierID != nil && *rec.v.SupplierID == id {
				rec.v.SupplierID = nil
				t.products[pid] = rec
			}
		}
		delete(t.suppliers, id)
		return nil
	})
}
