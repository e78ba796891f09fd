package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// TransportUseCase CRUD de transportes. Crear y eliminar mantienen el enlace con el movimiento.
type TransportUseCase struct {
	txRunner inventory.TxRunner
	repos    repository.Repos
	now      func() time.Time
}

// NewTransportUseCase construye el caso de uso. repos son los repositorios fuera de transacción.
func NewTransportUseCase(txRunner inventory.TxRunner, repos repository.Repos) *TransportUseCase {
	return &TransportUseCase{txRunner: txRunner, repos: repos, now: time.Now}
}

// List devuelve los transportes, más recientes primero, con clientes y productos resumidos.
func (uc *TransportUseCase) List(ctx context.Context) ([]dto.TransportResponse, error) {
	transports, err := uc.repos.Transports.List(ctx)
	if err != nil {
		return nil, err
	}
	refs, err := uc.loadRefs(ctx, uc.repos, transports...)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TransportResponse, 0, len(transports))
	for _, t := range transports {
		out = append(out, refs.toResponse(t))
	}
	return out, nil
}

// GetByID devuelve el transporte con el movimiento relacionado.
func (uc *TransportUseCase) GetByID(ctx context.Context, id string) (*dto.TransportResponse, error) {
	t, err := uc.repos.Transports.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, domain.ErrNotFound
	}
	refs, err := uc.loadRefs(ctx, uc.repos, t)
	if err != nil {
		return nil, err
	}
	out := refs.toResponse(t)
	if t.RelatedMovementID != nil {
		m, err := uc.repos.Movements.GetByID(ctx, *t.RelatedMovementID)
		if err != nil {
			return nil, err
		}
		if m != nil {
			mov := dto.MovementFromDetail(m)
			out.RelatedMovement = &mov
		}
	}
	return &out, nil
}

// Create registra un transporte manual. Si trae movimiento relacionado, el movimiento queda enlazado.
func (uc *TransportUseCase) Create(ctx context.Context, in dto.CreateTransportRequest) (*dto.TransportResponse, error) {
	now := uc.now().UTC()
	t := &entity.Transport{
		ID:                  uuid.New().String(),
		Type:                in.Type,
		Status:              in.Status,
		Driver:              strings.TrimSpace(in.Driver),
		Vehicle:             strings.TrimSpace(in.Vehicle),
		OriginClientID:      optional(in.OriginClientID),
		DestinationClientID: optional(in.DestinationClientID),
		OriginLocation:      strings.TrimSpace(in.OriginLocation),
		DestinationLocation: strings.TrimSpace(in.DestinationLocation),
		Items:               toTransportItems(in.Items),
		RelatedMovementID:   optional(in.RelatedMovementID),
		Notes:               in.Notes,
		Date:                now,
		CreatedAt:           now,
		UpdatedAt:           now,
	}
	if t.Status == "" {
		t.Status = entity.TransportStatusPending
	}
	if in.Date != nil {
		t.Date = in.Date.UTC()
	}
	if t.Driver == "" {
		return nil, domain.NewValidationError("driver", "required", "es obligatorio")
	}

	var out dto.TransportResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		if err := uc.checkReferences(ctx, repos, t); err != nil {
			return err
		}
		if err := repos.Transports.Create(ctx, t); err != nil {
			return err
		}
		if t.RelatedMovementID != nil {
			id := t.ID
			if err := repos.Movements.SetTransport(ctx, *t.RelatedMovementID, &id); err != nil {
				return err
			}
		}
		refs, err := uc.loadRefs(ctx, repos, t)
		if err != nil {
			return err
		}
		out = refs.toResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Update aplica los campos presentes. Un ID de cliente vacío desasocia el cliente.
func (uc *TransportUseCase) Update(ctx context.Context, id string, in dto.UpdateTransportRequest) (*dto.TransportResponse, error) {
	var out dto.TransportResponse
	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		t, err := repos.Transports.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if in.Type != nil {
			t.Type = *in.Type
		}
		if in.Status != nil {
			t.Status = *in.Status
		}
		if in.Date != nil {
			t.Date = in.Date.UTC()
		}
		if in.Driver != nil {
			t.Driver = strings.TrimSpace(*in.Driver)
		}
		if in.Vehicle != nil {
			t.Vehicle = strings.TrimSpace(*in.Vehicle)
		}
		if in.OriginClientID != nil {
			t.OriginClientID = optional(*in.OriginClientID)
		}
		if in.DestinationClientID != nil {
			t.DestinationClientID = optional(*in.DestinationClientID)
		}
		if in.OriginLocation != nil {
			t.OriginLocation = strings.TrimSpace(*in.OriginLocation)
		}
		if in.DestinationLocation != nil {
			t.DestinationLocation = strings.TrimSpace(*in.DestinationLocation)
		}
		if in.Items != nil {
			t.Items = toTransportItems(in.Items)
		}
		if in.Notes != nil {
			t.Notes = *in.Notes
		}
		if err := uc.checkReferences(ctx, repos, t); err != nil {
			return err
		}
		t.UpdatedAt = uc.now().UTC()
		if err := repos.Transports.Update(ctx, t); err != nil {
			return err
		}
		refs, err := uc.loadRefs(ctx, repos, t)
		if err != nil {
			return err
		}
		out = refs.toResponse(t)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete elimina el transporte y limpia el enlace del movimiento relacionado.
func (uc *TransportUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		t, err := repos.Transports.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if t == nil {
			return domain.ErrNotFound
		}
		if t.RelatedMovementID != nil {
			m, err := repos.Movements.GetByID(ctx, *t.RelatedMovementID)
			if err != nil {
				return err
			}
			if m != nil && m.TransportID != nil && *m.TransportID == t.ID {
				if err := repos.Movements.SetTransport(ctx, m.ID, nil); err != nil {
					return err
				}
			}
		}
		return repos.Transports.Delete(ctx, id)
	})
}

// checkReferences verifica que clientes, productos y movimiento referenciados existan.
func (uc *TransportUseCase) checkReferences(ctx context.Context, repos repository.Repos, t *entity.Transport) error {
	for field, id := range map[string]*string{"origin_client_id": t.OriginClientID, "destination_client_id": t.DestinationClientID} {
		if id == nil {
			continue
		}
		c, err := repos.Clients.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.NewValidationError(field, "exists", "el cliente no existe")
		}
	}
	if len(t.Items) > 0 {
		ids := make([]string, 0, len(t.Items))
		for _, it := range t.Items {
			ids = append(ids, it.ProductID)
		}
		products, err := repos.Products.ListByIDs(ctx, ids)
		if err != nil {
			return err
		}
		found := make(map[string]bool, len(products))
		for _, p := range products {
			found[p.ID] = true
		}
		for _, id := range ids {
			if !found[id] {
				return domain.NewValidationError("items.product_id", "exists", "el producto no existe")
			}
		}
	}
	if t.RelatedMovementID != nil {
		m, err := repos.Movements.GetByID(ctx, *t.RelatedMovementID)
		if err != nil {
			return err
		}
		if m == nil {
			return domain.NewValidationError("related_movement_id", "exists", "el movimiento no existe")
		}
	}
	return nil
}

type transportRefs struct {
	clients  map[string]*entity.Client
	products map[string]*entity.Product
}

func (uc *TransportUseCase) loadRefs(ctx context.Context, repos repository.Repos, transports ...*entity.Transport) (*transportRefs, error) {
	var clientIDs, productIDs []string
	for _, t := range transports {
		if t.OriginClientID != nil {
			clientIDs = append(clientIDs, *t.OriginClientID)
		}
		if t.DestinationClientID != nil {
			clientIDs = append(clientIDs, *t.DestinationClientID)
		}
		for _, it := range t.Items {
			productIDs = append(productIDs, it.ProductID)
		}
	}
	refs := &transportRefs{
		clients:  make(map[string]*entity.Client),
		products: make(map[string]*entity.Product),
	}
	if len(clientIDs) > 0 {
		clients, err := repos.Clients.ListByIDs(ctx, clientIDs)
		if err != nil {
			return nil, err
		}
		for _, c := range clients {
			refs.clients[c.ID] = c
		}
	}
	if len(productIDs) > 0 {
		products, err := repos.Products.ListByIDs(ctx, productIDs)
		if err != nil {
			return nil, err
		}
		for _, p := range products {
			refs.products[p.ID] = p
		}
	}
	return refs, nil
}

func (r *transportRefs) toResponse(t *entity.Transport) dto.TransportResponse {
	out := dto.TransportResponse{
		ID:                  t.ID,
		Type:                t.Type,
		Status:              t.Status,
		Date:                t.Date,
		Driver:              t.Driver,
		Vehicle:             t.Vehicle,
		OriginLocation:      t.OriginLocation,
		DestinationLocation: t.DestinationLocation,
		Items:               make([]dto.TransportItemResponse, 0, len(t.Items)),
		RelatedMovementID:   t.RelatedMovementID,
		Notes:               t.Notes,
		CreatedAt:           t.CreatedAt,
		UpdatedAt:           t.UpdatedAt,
	}
	if t.OriginClientID != nil {
		out.OriginClient = dto.ClientRef(r.clients[*t.OriginClientID])
	}
	if t.DestinationClientID != nil {
		out.DestinationClient = dto.ClientRef(r.clients[*t.DestinationClientID])
	}
	for _, it := range t.Items {
		out.Items = append(out.Items, dto.TransportItemResponse{
			Product:  dto.ProductRef(r.products[it.ProductID]),
			Quantity: it.Quantity,
		})
	}
	return out
}

func toTransportItems(in []dto.TransportItemRequest) []entity.TransportItem {
	items := make([]entity.TransportItem, 0, len(in))
	for _, it := range in {
		items = append(items, entity.TransportItem{ProductID: it.ProductID, Quantity: it.Quantity})
	}
	return items
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
