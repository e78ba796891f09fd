package memory

import (
	"context"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.LogRepository = (*LogRepo)(nil)

// LogRepo registro de auditoría en memoria.
type LogRepo struct {
	db db
}

func (r *LogRepo) Create(ctx context.Context, l *entity.Log) error {
	return r.db.do(ctx, func(t *tables) error {
		if _, ok := t.logs[l.ID]; ok {
			return domain.ErrDuplicate
		}
		v := *l
		v.ProductID = copyStr(l.ProductID)
		t.logs[l.ID] = record[entity.Log]{v: v, seq: t.next()}
		return nil
	})
}

func (r *LogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Log, error) {
	out := []*entity.Log{}
	err := r.db.do(ctx, func(t *tables) error {
		for _, l := range newestFirst(t.logs, func(l entity.Log) time.Time { return l.Timestamp }) {
			if limit > 0 && len(out) >= limit {
				break
			}
			l.ProductID = copyStr(l.ProductID)
			out = append(out, ptr(l))
		}
		return nil
	})
	return out, err
}
