package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo  repository.SupplierRepository
	cache AnalyticsInvalidator
	now   func() time.Time
}

// NewSupplierUseCase construye el caso de uso. cache puede ser nil.
func NewSupplierUseCase(repo repository.SupplierRepository, cache AnalyticsInvalidator) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, cache: invalidatorOrNoop(cache), now: time.Now}
}

// List devuelve los proveedores, más recientes primero.
func (uc *SupplierUseCase) List(ctx context.Context) ([]dto.SupplierResponse, error) {
	suppliers, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplierResponse, 0, len(suppliers))
	for _, s := range suppliers {
		out = append(out, dto.SupplierFromEntity(s))
	}
	return out, nil
}

// GetByID obtiene un proveedor.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	out := dto.SupplierFromEntity(s)
	return &out, nil
}

// Create crea un proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name, err := requiredText("name", in.Name)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      name,
		Contact:   strings.TrimSpace(in.Contact),
		Email:     strings.TrimSpace(in.Email),
		NIF:       strings.TrimSpace(in.NIF),
		Location:  strings.TrimSpace(in.Location),
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.SupplierFromEntity(s)
	return &out, nil
}

// Update aplica los campos presentes.
func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if s.Name, err = requiredText("name", *in.Name); err != nil {
			return nil, err
		}
	}
	if in.Contact != nil {
		s.Contact = strings.TrimSpace(*in.Contact)
	}
	if in.Email != nil {
		s.Email = strings.TrimSpace(*in.Email)
	}
	if in.NIF != nil {
		s.NIF = strings.TrimSpace(*in.NIF)
	}
	if in.Location != nil {
		s.Location = strings.TrimSpace(*in.Location)
	}
	if in.Notes != nil {
		s.Notes = *in.Notes
	}
	s.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	// El nombre del proveedor agrupa la analítica de proveedores.
	uc.cache.Invalidate(ctx)
	out := dto.SupplierFromEntity(s)
	return &out, nil
}

// Delete elimina un proveedor; los productos quedan sin proveedor.
func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.Invalidate(ctx)
	return nil
}
