package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.ClientRepository = (*ClientRepo)(nil)

// ClientRepo clientes en memoria.
type ClientRepo struct {
	db db
}

func cloneClient(c entity.Client) *entity.Client {
	c.LastPurchaseAt = copyTime(c.LastPurchaseAt)
	return &c
}

func (r *ClientRepo) Create(ctx context.Context, c *entity.Client) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.clients[c.ID]; ok {
			return domain.ErrDuplicate
		}
		t.clients[c.ID] = record[entity.Client]{v: *cloneClient(*c), seq: t.next()}
		return nil
	})
}

func (r *ClientRepo) GetByID(ctx context.Context, id string) (*entity.Client, error) {
	var out *entity.Client
	err := r.db.do(ctx, func(t *tables) error {
		if rec, ok := t.clients[id]; ok {
			out = cloneClient(rec.v)
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.Client, error) {
	out := []*entity.Client{}
	err := r.db.do(ctx, func(t *tables) error {
		seen := make(map[string]bool, len(ids))
		for _, id := range ids {
			if seen[id] {
				continue
			}
			seen[id] = true
			if rec, ok := t.clients[id]; ok {
				out = append(out, cloneClient(rec.v))
			}
		}
		return nil
	})
	return out, err
}

func (r *ClientRepo) List(ctx context.Context) ([]*entity.Client, error) {
	out := []*entity.Client{}
	err := r.db.do(ctx, func(t *tables) error {
		for _, c := range newestFirst(t.clients, func(c entity.Client) time.Time { return c.CreatedAt }) {
			out = append(out, cloneClient(c))
		}
		return nil
	})
	return out, err
}

// Update no toca los totales derivados.
func (r *ClientRepo) Update(ctx context.Context, c *entity.Client) error {
	return r.db.do(ctx, func(t *tables) error {
		rec, ok := t.clients[c.ID]
		if !ok {
			return domain.ErrNotFound
		}
		updated := rec.v
		updated.Name = c.Name
		updated.Email = c.Email
		updated.Phone = c.Phone
		updated.Address = c.Address
		updated.NIF = c.NIF
		updated.Notes = c.Notes
		updated.UpdatedAt = c.UpdatedAt
		t.clients[c.ID] = record[entity.Client]{v: updated, seq: rec.seq}
		return nil
	})
}

func (r *ClientRepo) RecordPurchase(ctx context.Context, id string, quantity int, at time.Time) error {
	return r.db.do(ctx, func(t *tables) error {
		rec, ok := t.clients[id]
		if !ok {
			return domain.ErrNotFound
		}
		rec.v.TotalPurchases++
		rec.v.TotalQuantity += quantity
		rec.v.LastPurchaseAt = ptr(at)
		rec.v.UpdatedAt = at
		t.clients[id] = rec
		return nil
	})
}

// Delete deja en nil las referencias desde movimientos y transportes.
func (r *ClientRepo) Delete(ctx context.Context, id string) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.clients[id]; !ok {
			return domain.ErrNotFound
		}
		for mid, rec := range t.movements {
			if rec.v.ClientID != nil && *rec.v.ClientID == id {
				rec.v.ClientID = nil
				t.movements[mid] = rec
			}
		}
		for tid, rec := range t.transports {
			changed := false
			if rec.v.OriginClientID != nil && *rec.v.OriginClientID == id {
				rec.v.OriginClientID = nil
				changed = true
			}
			if rec.v.DestinationClientID != nil && *rec.v.DestinationClientID == id {
				rec.v.DestinationClientID = nil
				changed = true
			}
			if changed {
				t.transports[tid] = rec
			}
		}
		delete(t.clients, id)
		return nil
	})
}
