package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/audit"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD para productos. Cada escritura deja una entrada de auditoría.
type ProductUseCase struct {
	repo      repository.ProductRepository
	suppliers repository.SupplierRepository
	audit     *audit.Logger
	cache     AnalyticsInvalidator
	now       func() time.Time
}

// NewProductUseCase construye el caso de uso. cache puede ser nil.
func NewProductUseCase(repo repository.ProductRepository, suppliers repository.SupplierRepository, auditLog *audit.Logger, cache AnalyticsInvalidator) *ProductUseCase {
	return &ProductUseCase{
		repo:      repo,
		suppliers: suppliers,
		audit:     auditLog,
		cache:     invalidatorOrNoop(cache),
		now:       time.Now,
	}
}

// List devuelve todos los productos, más recientes primero.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	products, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.ProductFromEntity(p))
	}
	return out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// Create crea un producto. Sin cost explícito el costo inicia en 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	sku, err := requiredText("sku", in.SKU)
	if err != nil {
		return nil, err
	}
	name, err := requiredText("name", in.Name)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
		return nil, err
	}
	cost := decimal.Zero
	if in.Cost != nil {
		cost = *in.Cost
	}
	now := uc.now().UTC()
	product := &entity.Product{
		ID:         uuid.New().String(),
		Name:       name,
		SKU:        sku,
		Category:   strings.TrimSpace(in.Category),
		Quantity:   in.Quantity,
		Price:      in.Price,
		Cost:       cost,
		SupplierID: emptyToNil(in.SupplierID),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.audit.RecordBestEffort(ctx, audit.Entry{
		Action:      entity.LogActionCreate,
		ProductID:   product.ID,
		ProductName: product.Name,
		Details:     fmt.Sprintf("Product created with %d units", product.Quantity),
	})
	uc.cache.Invalidate(ctx)
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// Update aplica los campos presentes en el request.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.SKU != nil {
		sku, err := requiredText("sku", *in.SKU)
		if err != nil {
			return nil, err
		}
		if sku != product.SKU {
			other, err := uc.repo.GetBySKU(ctx, sku)
			if err != nil {
				return nil, err
			}
			if other != nil {
				return nil, domain.ErrDuplicate
			}
			product.SKU = sku
		}
	}
	if in.Name != nil {
		if product.Name, err = requiredText("name", *in.Name); err != nil {
			return nil, err
		}
	}
	if in.Category != nil {
		product.Category = strings.TrimSpace(*in.Category)
	}
	if in.Quantity != nil {
		product.Quantity = *in.Quantity
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Cost != nil {
		product.Cost = *in.Cost
	}
	if in.SupplierID != nil {
		if err := uc.checkSupplier(ctx, in.SupplierID); err != nil {
			return nil, err
		}
		product.SupplierID = emptyToNil(in.SupplierID)
	}
	product.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.audit.RecordBestEffort(ctx, audit.Entry{
		Action:      entity.LogActionUpdate,
		ProductID:   product.ID,
		ProductName: product.Name,
		Details:     "Product updated",
	})
	uc.cache.Invalidate(ctx)
	out := dto.ProductFromEntity(product)
	return &out, nil
}

// Delete elimina un producto. Los movimientos históricos se conservan.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.audit.RecordBestEffort(ctx, audit.Entry{
		Action:      entity.LogActionDelete,
		ProductID:   product.ID,
		ProductName: product.Name,
		Details:     "Product deleted",
	})
	uc.cache.Invalidate(ctx)
	return nil
}

func (uc *ProductUseCase) checkSupplier(ctx context.Context, id *string) error {
	if id == nil || *id == "" {
		return nil
	}
	s, err := uc.suppliers.GetByID(ctx, *id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.NewValidationError("supplier_id", "exists", "el proveedor no existe")
	}
	return nil
}

func emptyToNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
