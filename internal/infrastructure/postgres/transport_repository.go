package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.TransportRepository = (*TransportRepo)(nil)

const transportColumns = `id, type, status, date, driver, vehicle, origin_client_id, destination_client_id,
	origin_location, destination_location, items, related_movement_id, notes, created_at, updated_at`

// TransportRepo implementación de TransportRepository sobre PostgreSQL. Items se guarda como JSONB.
type TransportRepo struct {
	q Querier
}

// NewTransportRepository construye el repositorio.
func NewTransportRepository(q Querier) *TransportRepo {
	return &TransportRepo{q: q}
}

func scanTransport(row pgx.Row) (*entity.Transport, error) {
	var t entity.Transport
	err := row.Scan(&t.ID, &t.Type, &t.Status, &t.Date, &t.Driver, &t.Vehicle, &t.OriginClientID, &t.DestinationClientID,
		&t.OriginLocation, &t.DestinationLocation, &t.Items, &t.RelatedMovementID, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if t.Items == nil {
		t.Items = []entity.TransportItem{}
	}
	return &t, nil
}

func (r *TransportRepo) Create(ctx context.Context, t *entity.Transport) error {
	items := t.Items
	if items == nil {
		items = []entity.TransportItem{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO transports (`+transportColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		t.ID, t.Type, t.Status, t.Date, t.Driver, t.Vehicle, t.OriginClientID, t.DestinationClientID,
		t.OriginLocation, t.DestinationLocation, items, t.RelatedMovementID, t.Notes, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert transport: %w", err)
	}
	return nil
}

func (r *TransportRepo) GetByID(ctx context.Context, id string) (*entity.Transport, error) {
	if !validUUID(id) {
		return nil, nil
	}
	t, err := scanTransport(r.q.QueryRow(ctx, `SELECT `+transportColumns+` FROM transports WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get transport: %w", err)
	}
	return t, nil
}

func (r *TransportRepo) List(ctx context.Context) ([]*entity.Transport, error) {
	rows, err := r.q.Query(ctx, `SELECT `+transportColumns+` FROM transports ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("list transports: %w", err)
	}
	defer rows.Close()
	out := []*entity.Transport{}
	for rows.Next() {
		t, err := scanTransport(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transport: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

func (r *TransportRepo) Update(ctx context.Context, t *entity.Transport) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE transports
		SET type = $2, status = $3, date = $4, driver = $5, vehicle = $6, origin_client_id = $7,
		    destination_client_id = $8, origin_location = $9, destination_location = $10, items = $11,
		    related_movement_id = $12, notes = $13, updated_at = $14
		WHERE id = $1`,
		t.ID, t.Type, t.Status, t.Date, t.Driver, t.Vehicle, t.OriginClientID,
		t.DestinationClientID, t.OriginLocation, t.DestinationLocation, t.Items,
		t.RelatedMovementID, t.Notes, t.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("update transport: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TransportRepo) Delete(ctx context.Context, id string) error {
	if !validUUID(id) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx, `DELETE FROM transports WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transport: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
