package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.LogRepository = (*LogRepo)(nil)

// LogRepo implementación de LogRepository sobre PostgreSQL.
type LogRepo struct {
	q Querier
}

// NewLogRepository construye el repositorio.
func NewLogRepository(q Querier) *LogRepo {
	return &LogRepo{q: q}
}

func (r *LogRepo) Create(ctx context.Context, l *entity.Log) error {
	productID := l.ProductID
	if productID != nil && !validUUID(*productID) {
		productID = nil
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO logs (id, action, product_id, product_name, details, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		l.ID, l.Action, productID, l.ProductName, l.Details, l.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("insert log: %w", err)
	}
	return nil
}

func (r *LogRepo) ListRecent(ctx context.Context, limit int) ([]*entity.Log, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, action, product_id, product_name, details, timestamp
		FROM logs ORDER BY timestamp DESC, id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("list logs: %w", err)
	}
	defer rows.Close()
	out := []*entity.Log{}
	for rows.Next() {
		var l entity.Log
		if err := rows.Scan(&l.ID, &l.Action, &l.ProductID, &l.ProductName, &l.Details, &l.Timestamp); err != nil {
			return nil, fmt.Errorf("scan log: %w", err)
		}
		out = append(out, &l)
	}
	return out, rows.Err()
}
