package memory

import (
	"context"
	"slices"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.TransportRepository = (*TransportRepo)(nil)

// TransportRepo transportes en memoria.
type TransportRepo struct {
	db db
}

func cloneTransport(tr entity.Transport) entity.Transport {
	tr.OriginClientID = copyStr(tr.OriginClientID)
	tr.DestinationClientID = copyStr(tr.DestinationClientID)
	tr.RelatedMovementID = copyStr(tr.RelatedMovementID)
	tr.Items = slices.Clone(tr.Items)
	if tr.Items == nil {
		tr.Items = []entity.TransportItem{}
	}
	return tr
}

func checkTransportRefs(t *tables, tr *entity.Transport) error {
	for _, id := range []*string{tr.OriginClientID, tr.DestinationClientID} {
		if id == nil {
			continue
		}
		if _, ok := t.clients[*id]; !ok {
			return domain.ErrNotFound
		}
	}
	if tr.RelatedMovementID != nil {
		if _, ok := t.movements[*tr.RelatedMovementID]; !ok {
			return domain.ErrNotFound
		}
	}
	return nil
}

func (r *TransportRepo) Create(ctx context.Context, tr *entity.Transport) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.transports[tr.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := checkTransportRefs(t, tr); err != nil {
			return err
		}
		t.transports[tr.ID] = record[entity.Transport]{v: cloneTransport(*tr), seq: t.next()}
		return nil
	})
}

func (r *TransportRepo) GetByID(ctx context.Context, id string) (*entity.Transport, error) {
	var out *entity.Transport
	err := r.db.do(ctx, func(t *tables) error {
		if rec, ok := t.transports[id]; ok {
			out = ptr(cloneTransport(rec.v))
		}
		return nil
	})
	return out, err
}

func (r *TransportRepo) List(ctx context.Context) ([]*entity.Transport, error) {
	out := []*entity.Transport{}
	err := r.db.do(ctx, func(t *tables) error {
		for _, tr := range newestFirst(t.transports, func(tr entity.Transport) time.Time { return tr.CreatedAt }) {
			out = append(out, ptr(cloneTransport(tr)))
		}
		return nil
	})
	return out, err
}

func (r *TransportRepo) Update(ctx context.Context, tr *entity.Transport) error {
	return r.db.do(ctx, func(t *tables) error {
		rec, ok := t.transports[tr.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if err := checkTransportRefs(t, tr); err != nil {
			return err
		}
		updated := cloneTransport(*tr)
		updated.CreatedAt = rec.v.CreatedAt
		t.transports[tr.ID] = record[entity.Transport]{v: updated, seq: rec.seq}
		return nil
	})
}

// Delete deja en nil el transporte de los movimientos que lo referencian.
func (r *TransportRepo) Delete(ctx context.Context, id string) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.transports[id]; !ok {
			return domain.ErrNotFound
		}
		for mid, rec := range t.movements {
			if rec.v.TransportID != nil && *rec.v.TransportID == id {
				rec.v.TransportID = nil
				t.movements[mid] = rec
			}
		}
		delete(t.transports, id)
		return nil
	})
}
