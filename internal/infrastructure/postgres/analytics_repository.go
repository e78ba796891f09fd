package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// UnknownSupplier nombre del grupo de productos sin proveedor.
const UnknownSupplier = "Unknown Supplier"

// AnalyticsRepo consultas de solo lectura para las vistas analíticas.
type AnalyticsRepo struct {
	pool *pgxpool.Pool
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(pool *pgxpool.Pool) *AnalyticsRepo {
	return &AnalyticsRepo{pool: pool}
}

// GetCategoryMargins suma el margen porcentual por categoría. El promedio lo calcula el use case.
func (r *AnalyticsRepo) GetCategoryMargins(ctx context.Context) ([]repository.CategoryMarginResult, error) {
	const query = `
	SELECT
	    category,
	    SUM((price - cost) / price * 100) AS margin_sum,
	    COUNT(*)                          AS product_count
	FROM products
	WHERE price > 0
	  AND cost >= 0
	  AND category <> ''
	GROUP BY category`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics margins: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryMarginResult
	for rows.Next() {
		var res repository.CategoryMarginResult
		if err := rows.Scan(&res.Category, &res.MarginSum, &res.Count); err != nil {
			return nil, fmt.Errorf("scan margins: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetDailyMovements agrupa cantidades por día UTC de creación y tipo.
func (r *AnalyticsRepo) GetDailyMovements(ctx context.Context) ([]repository.DailyMovementResult, error) {
	const query = `
	SELECT
	    to_char(created_at AT TIME ZONE 'UTC', 'YYYY-MM-DD')          AS day,
	    COALESCE(SUM(quantity) FILTER (WHERE type = 'entry'), 0)      AS entries,
	    COALESCE(SUM(quantity) FILTER (WHERE type = 'exit'), 0)       AS exits
	FROM stock_movements
	GROUP BY day
	ORDER BY day`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics movements: %w", err)
	}
	defer rows.Close()

	var out []repository.DailyMovementResult
	for rows.Next() {
		var res repository.DailyMovementResult
		if err := rows.Scan(&res.Day, &res.Entries, &res.Exits); err != nil {
			return nil, fmt.Errorf("scan movements: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// GetSupplierTotals agrupa productos por nombre de proveedor; sin proveedor van a UnknownSupplier.
func (r *AnalyticsRepo) GetSupplierTotals(ctx context.Context) ([]repository.SupplierTotalsResult, error) {
	const query = `
	SELECT
	    COALESCE(s.name, $1)             AS supplier_name,
	    COUNT(*)                         AS products,
	    COALESCE(SUM(p.price * p.quantity), 0) AS total_value
	FROM products p
	LEFT JOIN suppliers s ON s.id = p.supplier_id
	GROUP BY supplier_name`

	rows, err := r.pool.Query(ctx, query, UnknownSupplier)
	if err != nil {
		return nil, fmt.Errorf("analytics suppliers: %w", err)
	}
	defer rows.Close()

	var out []repository.SupplierTotalsResult
	for rows.Next() {
		var res repository.SupplierTotalsResult
		if err := rows.Scan(&res.Name, &res.Products, &res.TotalValue); err != nil {
			return nil, fmt.Errorf("scan suppliers: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}

// ListMovementValues devuelve los movimientos en orden cronológico ascendente.
func (r *AnalyticsRepo) ListMovementValues(ctx context.Context) ([]repository.MovementValueResult, error) {
	const query = `
	SELECT created_at, type, quantity, price_at_movement
	FROM stock_movements
	ORDER BY created_at, id`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics value: %w", err)
	}
	defer rows.Close()

	var out []repository.MovementValueResult
	for rows.Next() {
		var res repository.MovementValueResult
		if err := rows.Scan(&res.CreatedAt, &res.Type, &res.Quantity, &res.PriceAtMovement); err != nil {
			return nil, fmt.Errorf("scan value: %w", err)
		}
		out = append(out, res)
	}
	return out, rows.Err()
}
