package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria. El SKU es único.
type ProductRepo struct {
	db db
}

func cloneProduct(p entity.Product) *entity.Product {
	p.SupplierID = copyStr(p.SupplierID)
	return &p
}

func skuTaken(t *tables, sku, exceptID string) bool {
	for id, r := range t.products {
		if id != exceptID && r.v.SKU == sku {
			return true
		}
	}
	return false
}

func checkProductSupplier(t *tables, p *entity.Product) error {
	if p.SupplierID == nil {
		return nil
	}
	if _, ok := t.suppliers[*p.SupplierID]; !ok {
		return domain.NewValidationError("supplier_id", "exists", "el proveedor no existe")
	}
	return nil
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.products[p.ID]; ok || skuTaken(t, p.SKU, "") {
			return domain.ErrDuplicate
		}
		if err := checkProductSupplier(t, p); err != nil {
			return err
		}
		t.products[p.ID] = record[entity.Product]{v: *cloneProduct(*p), seq: t.next()}
		return nil
	})
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.do(ctx, func(t *tables) error {
		if rec, ok := t.products[id]; ok {
			out = cloneProduct(rec.v)
		}
		return nil
	})
	return out, err
}

// GetForUpdate equivale a GetByID: el aislamiento lo da el mutex de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.do(ctx, func(t *tables) error {
		for _, rec := range t.products {
			if rec.v.SKU == sku {
				out = cloneProduct(rec.v)
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Product, error) {
	out := []*entity.Product{}
	err := r.db.do(ctx, func(t *tables) error {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if rec, ok := t.products[id]; ok {
				out = append(out, cloneProduct(rec.v))
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	out := []*entity.Product{}
	err := r.db.do(ctx, func(t *tables) error {
		for _, p := range newestFirst(t.products, func(p entity.Product) time.Time { return p.CreatedAt }) {
			out = append(out, cloneProduct(p))
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	return r.db.do(ctx, func(t *tables) error {
		rec, ok := t.products[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if skuTaken(t, p.SKU, p.ID) {
			return domain.ErrDuplicate
		}
		if err := checkProductSupplier(t, p); err != nil {
			return err
		}
		updated := *cloneProduct(*p)
		updated.CreatedAt = rec.v.CreatedAt
		t.products[p.ID] = record[entity.Product]{v: updated, seq: rec.seq}
		return nil
	})
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(t.products, id)
		return nil
	})
}

func (r *ProductRepo) DeleteAll(ctx context.Context) error {
	return r.db.do(ctx, func(t *tables) error {
		t.products = map[string]record[entity.Product]{}
		return nil
	})
}
