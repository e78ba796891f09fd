package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ImportProductsUseCase hace upsert por SKU de filas de CSV en una sola transacción.
type ImportProductsUseCase struct {
	txRunner TxRunner
	cache    AnalyticsInvalidator
	log      zerolog.Logger
	now      func() time.Time
}

// NewImportProductsUseCase construye el caso de uso. cache puede ser nil.
func NewImportProductsUseCase(txRunner TxRunner, cache AnalyticsInvalidator, log zerolog.Logger) *ImportProductsUseCase {
	return &ImportProductsUseCase{
		txRunner: txRunner,
		cache:    invalidatorOrNoop(cache),
		log:      log,
		now:      time.Now,
	}
}

// Import aplica las filas. Un producto existente solo cambia en los campos presentes y no nulos;
// un valor numérico vacío, 0 o no numérico conserva el valor actual.
// Las filas sin SKU (o nuevas sin nombre) se omiten y se reportan.
func (uc *ImportProductsUseCase) Import(ctx context.Context, rows []dto.ImportProductRow) (*dto.ImportProductsResponse, error) {
	out := &dto.ImportProductsResponse{}
	now := uc.now().UTC()

	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		suppliers, err := newSupplierResolver(ctx, repos.Suppliers, now)
		if err != nil {
			return err
		}

		for i, row := range rows {
			sku := row.SKU.String()
			if sku == "" {
				out.Skipped++
				out.Errors = append(out.Errors, fmt.Sprintf("fila %d: sin sku", i+1))
				continue
			}

			existing, err := repos.Products.GetBySKU(ctx, sku)
			if err != nil {
				return err
			}
			if existing == nil && row.Name.String() == "" {
				out.Skipped++
				out.Errors = append(out.Errors, fmt.Sprintf("fila %d: sku %s sin nombre", i+1, sku))
				continue
			}

			supplierID, err := suppliers.resolve(ctx, row.Supplier.String())
			if err != nil {
				return err
			}

			if existing != nil {
				applyImportRow(existing, row, supplierID)
				existing.UpdatedAt = now
				if err := repos.Products.Update(ctx, existing); err != nil {
					return err
				}
				out.Updated++
				continue
			}

			p := &entity.Product{
				ID:         uuid.New().String(),
				Name:       row.Name.String(),
				SKU:        sku,
				Category:   row.Category.String(),
				Price:      decimal.Zero,
				Cost:       decimal.Zero,
				SupplierID: supplierID,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			applyImportRow(p, row, supplierID)
			if err := repos.Products.Create(ctx, p); err != nil {
				return fmt.Errorf("fila %d: %w", i+1, err)
			}
			out.Created++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx)
	out.Message = fmt.Sprintf("Import complete: %d new, %d updated", out.Created, out.Updated)
	uc.log.Info().Int("created", out.Created).Int("updated", out.Updated).Int("skipped", out.Skipped).Msg("importación de productos")
	return out, nil
}

func applyImportRow(p *entity.Product, row dto.ImportProductRow, supplierID *string) {
	if v := row.Name.String(); v != "" {
		p.Name = v
	}
	if v := row.Category.String(); v != "" {
		p.Category = v
	}
	if v, ok := coerceNumber(row.Quantity); ok && v.IsPositive() {
		p.Quantity = int(v.IntPart())
	}
	if v, ok := coerceNumber(row.Price); ok {
		p.Price = v
	}
	if v, ok := coerceNumber(row.Cost); ok {
		p.Cost = v
	}
	if supplierID != nil {
		p.SupplierID = supplierID
	}
}

// coerceNumber devuelve (v, true) solo si el texto es un número distinto de cero.
func coerceNumber(s dto.FlexString) (decimal.Decimal, bool) {
	raw := strings.TrimSpace(string(s))
	if raw == "" {
		return decimal.Zero, false
	}
	v, err := decimal.NewFromString(raw)
	if err != nil || v.IsZero() {
		return decimal.Zero, false
	}
	return v, true
}

// supplierResolver resuelve nombres de proveedor a IDs por nombre normalizado, creando los que faltan.
// Carga los proveedores existentes una vez por importación; ante duplicados gana el más antiguo.
type supplierResolver struct {
	repo  repository.SupplierRepository
	now   time.Time
	byKey map[string]string
}

func newSupplierResolver(ctx context.Context, repo repository.SupplierRepository, now time.Time) (*supplierResolver, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return nil, err
	}
	r := &supplierResolver{repo: repo, now: now, byKey: make(map[string]string, len(existing))}
	// List viene del más reciente al más antiguo
	for _, s := range existing {
		r.byKey[inventory.NormalizeSupplierName(s.Name)] = s.ID
	}
	return r, nil
}

func (r *supplierResolver) resolve(ctx context.Context, name string) (*string, error) {
	key := inventory.NormalizeSupplierName(name)
	if key == "" {
		return nil, nil
	}
	if id, ok := r.byKey[key]; ok {
		return &id, nil
	}
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      inventory.CollapseSpaces(name),
		CreatedAt: r.now,
		UpdatedAt: r.now,
	}
	if err := r.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	r.byKey[key] = s.ID
	id := s.ID
	return &id, nil
}
