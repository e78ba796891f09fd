package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

const topProductsLimit = 3

// ClientUseCase CRUD de clientes y estadísticas de sus movimientos.
type ClientUseCase struct {
	repo      repository.ClientRepository
	movements repository.StockMovementRepository
	now       func() time.Time
}

// NewClientUseCase construye el caso de uso.
func NewClientUseCase(repo repository.ClientRepository, movements repository.StockMovementRepository) *ClientUseCase {
	return &ClientUseCase{repo: repo, movements: movements, now: time.Now}
}

// List devuelve los clientes, más recientes primero.
func (uc *ClientUseCase) List(ctx context.Context) ([]dto.ClientResponse, error) {
	clients, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ClientResponse, 0, len(clients))
	for _, c := range clients {
		out = append(out, dto.ClientFromEntity(c))
	}
	return out, nil
}

// Create crea un cliente. Los totales derivados inician en cero.
func (uc *ClientUseCase) Create(ctx context.Context, in dto.CreateClientRequest) (*dto.ClientResponse, error) {
	name, err := requiredText("name", in.Name)
	if err != nil {
		return nil, err
	}
	now := uc.now().UTC()
	c := &entity.Client{
		ID:        uuid.New().String(),
		Name:      name,
		Email:     strings.TrimSpace(in.Email),
		Phone:     strings.TrimSpace(in.Phone),
		Address:   strings.TrimSpace(in.Address),
		NIF:       strings.TrimSpace(in.NIF),
		Notes:     in.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	out := dto.ClientFromEntity(c)
	return &out, nil
}

// GetDetail devuelve el cliente con sus movimientos (más recientes primero) y estadísticas.
func (uc *ClientUseCase) GetDetail(ctx context.Context, id string) (*dto.ClientDetailResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	movements, err := uc.movements.List(ctx, entity.MovementFilter{ClientID: id})
	if err != nil {
		return nil, err
	}
	out := &dto.ClientDetailResponse{
		Client:    dto.ClientFromEntity(c),
		Stats:     clientStats(movements),
		Movements: make([]dto.MovementResponse, 0, len(movements)),
	}
	for _, m := range movements {
		out.Movements = append(out.Movements, dto.MovementFromDetail(m))
	}
	return out, nil
}

// clientStats espera los movimientos ordenados del más reciente al más antiguo.
func clientStats(movements []*entity.MovementDetail) dto.ClientStatsDTO {
	stats := dto.ClientStatsDTO{
		TotalMovements: len(movements),
		TotalValue:     decimal.Zero,
		TopProducts:    []dto.TopProductDTO{},
	}
	if len(movements) > 0 {
		last := movements[0].CreatedAt
		stats.LastPurchaseAt = &last
	}
	byProduct := map[string]int{}
	for _, m := range movements {
		stats.TotalQuantity += m.Quantity
		stats.TotalValue = stats.TotalValue.Add(m.Value())
		name := m.ProductName
		if name == "" {
			name = "Unknown"
		}
		byProduct[name] += m.Quantity
	}
	for name, qty := range byProduct {
		stats.TopProducts = append(stats.TopProducts, dto.TopProductDTO{Name: name, Qty: qty})
	}
	sort.Slice(stats.TopProducts, func(i, j int) bool {
		a, b := stats.TopProducts[i], stats.TopProducts[j]
		if a.Qty != b.Qty {
			return a.Qty > b.Qty
		}
		return a.Name < b.Name
	})
	if len(stats.TopProducts) > topProductsLimit {
		stats.TopProducts = stats.TopProducts[:topProductsLimit]
	}
	return stats
}

// Update aplica los campos presentes. Los totales derivados no se editan.
func (uc *ClientUseCase) Update(ctx context.Context, id string, in dto.UpdateClientRequest) (*dto.ClientResponse, error) {
	c, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if c.Name, err = requiredText("name", *in.Name); err != nil {
			return nil, err
		}
	}
	if in.Email != nil {
		c.Email = strings.TrimSpace(*in.Email)
	}
	if in.Phone != nil {
		c.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Address != nil {
		c.Address = strings.TrimSpace(*in.Address)
	}
	if in.NIF != nil {
		c.NIF = strings.TrimSpace(*in.NIF)
	}
	if in.Notes != nil {
		c.Notes = *in.Notes
	}
	c.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, c); err != nil {
		return nil, err
	}
	out := dto.ClientFromEntity(c)
	return &out, nil
}

// Delete elimina un cliente; sus movimientos y transportes quedan sin cliente.
func (uc *ClientUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.Delete(ctx, id)
}
