package memory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// UnknownSupplier nombre del grupo de productos sin proveedor.
const UnknownSupplier = "Unknown Supplier"

var hundred = decimal.NewFromInt(100)

// AnalyticsRepo agregados de lectura sobre el store en memoria.
type AnalyticsRepo struct {
	db db
}

func (r *AnalyticsRepo) GetCategoryMargins(ctx context.Context) ([]repository.CategoryMarginResult, error) {
	var out []repository.CategoryMarginResult
	err := r.db.do(ctx, func(t *tables) error {
		byCategory := map[string]*repository.CategoryMarginResult{}
		for _, rec := range t.products {
			p := rec.v
			if !p.Price.IsPositive() || p.Cost.IsNegative() || p.Category == "" {
				continue
			}
			res, ok := byCategory[p.Category]
			if !ok {
				res = &repository.CategoryMarginResult{Category: p.Category}
				byCategory[p.Category] = res
			}
			margin := p.Price.Sub(p.Cost).Div(p.Price).Mul(hundred)
			res.MarginSum = res.MarginSum.Add(margin)
			res.Count++
		}
		for _, res := range byCategory {
			out = append(out, *res)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) GetDailyMovements(ctx context.Context) ([]repository.DailyMovementResult, error) {
	var out []repository.DailyMovementResult
	err := r.db.do(ctx, func(t *tables) error {
		byDay := map[string]*repository.DailyMovementResult{}
		for _, rec := range t.movements {
			m := rec.v
			day := m.CreatedAt.UTC().Format("2006-01-02")
			res, ok := byDay[day]
			if !ok {
				res = &repository.DailyMovementResult{Day: day}
				byDay[day] = res
			}
			switch m.Type {
			case entity.MovementTypeEntry:
				res.Entries += int64(m.Quantity)
			case entity.MovementTypeExit:
				res.Exits += int64(m.Quantity)
			}
		}
		for _, res := range byDay {
			out = append(out, *res)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Day < out[j].Day })
		return nil
	})
	return out, err
}

func (r *AnalyticsRepo) GetSupplierTotals(ctx context.Context) ([]repository.SupplierTotalsResult, error) {
	var out []repository.SupplierTotalsResult
	err := r.db.do(ctx, func(t *tables) error {
		byName := map[string]*repository.SupplierTotalsResult{}
		for _, rec := range t.products {
			p := rec.v
			name := UnknownSupplier
			if p.SupplierID != nil {
				if s, ok := t.suppliers[*p.SupplierID]; ok {
					name = s.v.Name
				}
			}
			res, ok := byName[name]
			if !ok {
				res = &repository.SupplierTotalsResult{Name: name}
				byName[name] = res
			}
			res.Products++
			res.TotalValue = res.TotalValue.Add(p.StockValue())
		}
		for _, res := range byName {
			out = append(out, *res)
		}
		sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
		return nil
	})
	return out, err
}

// ListMovementValues devuelve los movimientos en orden cronológico ascendente.
func (r *AnalyticsRepo) ListMovementValues(ctx context.Context) ([]repository.MovementValueResult, error) {
	var out []repository.MovementValueResult
	err := r.db.do(ctx, func(t *tables) error {
		recs := make([]record[entity.StockMovement], 0, len(t.movements))
		for _, rec := range t.movements {
			recs = append(recs, rec)
		}
		sort.Slice(recs, func(i, j int) bool {
			ci, cj := recs[i].v.CreatedAt, recs[j].v.CreatedAt
			if !ci.Equal(cj) {
				return ci.Before(cj)
			}
			return recs[i].seq < recs[j].seq
		})
		for _, rec := range recs {
			out = append(out, repository.MovementValueResult{
				CreatedAt:       rec.v.CreatedAt,
				Type:            rec.v.Type,
				Quantity:        rec.v.Quantity,
				PriceAtMovement: rec.v.PriceAtMovement,
			})
		}
		return nil
	})
	return out, err
}
