package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// StockMovementRepo libro de movimientos en memoria.
type StockMovementRepo struct {
	db db
}

func cloneMovement(m entity.StockMovement) entity.StockMovement {
	m.ClientID = copyStr(m.ClientID)
	m.TransportID = copyStr(m.TransportID)
	return m
}

// detail arma el movimiento con los datos de producto, cliente y transporte que sigan existiendo.
func detail(t *tables, m entity.StockMovement) *entity.MovementDetail {
	d := &entity.MovementDetail{StockMovement: cloneMovement(m)}
	if p, ok := t.products[m.ProductID]; ok {
		d.ProductName = p.v.Name
		d.ProductSKU = p.v.SKU
		d.ProductPrice = p.v.Price
	}
	if m.ClientID != nil {
		if c, ok := t.clients[*m.ClientID]; ok {
			d.ClientName = c.v.Name
			d.ClientEmail = c.v.Email
		}
	}
	if m.TransportID != nil {
		if tr, ok := t.transports[*m.TransportID]; ok {
			d.TransportKind = tr.v.Type
			d.TransportStatus = tr.v.Status
			d.TransportDriver = tr.v.Driver
		}
	}
	return d
}

func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.movements[m.ID]; ok {
			return domain.ErrDuplicate
		}
		if m.ClientID != nil {
			if _, ok := t.clients[*m.ClientID]; !ok {
				return domain.ErrNotFound
			}
		}
		if m.TransportID != nil {
			if _, ok := t.transports[*m.TransportID]; !ok {
				return domain.ErrNotFound
			}
		}
		t.movements[m.ID] = record[entity.StockMovement]{v: cloneMovement(*m), seq: t.next()}
		return nil
	})
}

func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.MovementDetail, error) {
	var out *entity.MovementDetail
	err := r.db.do(ctx, func(t *tables) error {
		if rec, ok := t.movements[id]; ok {
			out = detail(t, rec.v)
		}
		return nil
	})
	return out, err
}

func matches(m entity.StockMovement, f entity.MovementFilter) bool {
	if f.Type != "" && m.Type != f.Type {
		return false
	}
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.ClientID != "" && (m.ClientID == nil || *m.ClientID != f.ClientID) {
		return false
	}
	if f.From != nil && m.CreatedAt.Before(*f.From) {
		return false
	}
	if f.To != nil && !m.CreatedAt.Before(*f.To) {
		return false
	}
	return true
}

// List aplica los filtros presentes; más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, f entity.MovementFilter) ([]*entity.MovementDetail, error) {
	out := []*entity.MovementDetail{}
	err := r.db.do(ctx, func(t *tables) error {
		all := newestFirst(t.movements, func(m entity.StockMovement) time.Time { return m.CreatedAt })
		skipped := 0
		for _, m := range all {
			if !matches(m, f) {
				continue
			}
			if skipped < f.Offset {
				skipped++
				continue
			}
			if f.Limit > 0 && len(out) >= f.Limit {
				break
			}
			out = append(out, detail(t, m))
		}
		return nil
	})
	return out, err
}

func (r *StockMovementRepo) SetTransport(ctx context.Context, movementID string, transportID *string) error {
	return r.db.do(ctx, func(t *tables) error {
		rec, ok := t.movements[movementID]
		if !ok {
			return domain.ErrNotFound
		}
		if transportID != nil {
			if _, ok := t.transports[*transportID]; !ok {
				return domain.ErrNotFound
			}
		}
		rec.v.TransportID = copyStr(transportID)
		rec.v.UpdatedAt = time.Now().UTC()
		t.movements[movementID] = rec
		return nil
	})
}
