package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

// Los LEFT JOIN conservan movimientos de productos, clientes o transportes eliminados.
const movementDetailSelect = `
	SELECT m.id, m.type, m.product_id, m.quantity, m.location, m.responsible, m.transport_type,
	       m.description, m.price_at_movement, m.current_stock, m.client_id, m.transport_id,
	       m.created_at, m.updated_at,
	       COALESCE(p.name, ''), COALESCE(p.sku, ''), p.price,
	       COALESCE(c.name, ''), COALESCE(c.email, ''),
	       COALESCE(t.type, ''), COALESCE(t.status, ''), COALESCE(t.driver, '')
	FROM stock_movements m
	LEFT JOIN products p ON p.id = m.product_id
	LEFT JOIN clients c ON c.id = m.client_id
	LEFT JOIN transports t ON t.id = m.transport_id`

// StockMovementRepo implementación de StockMovementRepository sobre PostgreSQL.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el repositorio.
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

func scanMovementDetail(row pgx.Row) (*entity.MovementDetail, error) {
	var m entity.MovementDetail
	var productPrice *decimal.Decimal
	err := row.Scan(
		&m.ID, &m.Type, &m.ProductID, &m.Quantity, &m.Location, &m.Responsible, &m.TransportType,
		&m.Description, &m.PriceAtMovement, &m.CurrentStock, &m.ClientID, &m.TransportID,
		&m.CreatedAt, &m.UpdatedAt,
		&m.ProductName, &m.ProductSKU, &productPrice,
		&m.ClientName, &m.ClientEmail,
		&m.TransportKind, &m.TransportStatus, &m.TransportDriver,
	)
	if err != nil {
		return nil, err
	}
	if productPrice != nil {
		m.ProductPrice = *productPrice
	}
	return &m, nil
}

// Create inserta el movimiento. transport_id se enlaza después con SetTransport.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO stock_movements (
			id, type, product_id, quantity, location, responsible, transport_type, description,
			price_at_movement, current_stock, client_id, transport_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.ID, m.Type, m.ProductID, m.Quantity, m.Location, m.Responsible, m.TransportType, m.Description,
		m.PriceAtMovement, m.CurrentStock, m.ClientID, m.TransportID, m.CreatedAt, m.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("insert stock movement: %w", err)
	}
	return nil
}

func (r *StockMovementRepo) GetByID(ctx context.Context, id string) (*entity.MovementDetail, error) {
	if !validUUID(id) {
		return nil, nil
	}
	m, err := scanMovementDetail(r.q.QueryRow(ctx, movementDetailSelect+` WHERE m.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock movement: %w", err)
	}
	return m, nil
}

// List aplica los filtros presentes; más recientes primero.
func (r *StockMovementRepo) List(ctx context.Context, f entity.MovementFilter) ([]*entity.MovementDetail, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Type != "" {
		add("m.type = $%d", f.Type)
	}
	if f.ProductID != "" {
		if !validUUID(f.ProductID) {
			return []*entity.MovementDetail{}, nil
		}
		add("m.product_id = $%d", f.ProductID)
	}
	if f.ClientID != "" {
		if !validUUID(f.ClientID) {
			return []*entity.MovementDetail{}, nil
		}
		add("m.client_id = $%d", f.ClientID)
	}
	if f.From != nil {
		add("m.created_at >= $%d", *f.From)
	}
	if f.To != nil {
		add("m.created_at < $%d", *f.To)
	}

	var sb strings.Builder
	sb.WriteString(movementDetailSelect)
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY m.created_at DESC, m.id")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	out := []*entity.MovementDetail{}
	for rows.Next() {
		m, err := scanMovementDetail(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *StockMovementRepo) SetTransport(ctx context.Context, movementID string, transportID *string) error {
	if !validUUID(movementID) {
		return domain.ErrNotFound
	}
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_movements SET transport_id = $2, updated_at = now() WHERE id = $1`,
		movementID, transportID,
	)
	if err != nil {
		return fmt.Errorf("link movement transport: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
