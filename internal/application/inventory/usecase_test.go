package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/application/audit"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
)

type invalidatorSpy struct{ calls int }

func (s *invalidatorSpy) Invalidate(context.Context) { s.calls++ }

type fixture struct {
	store *memory.Store
	audit *audit.Logger
	cache *invalidatorSpy
}

func newFixture() *fixture {
	store := memory.NewStore()
	return &fixture{
		store: store,
		audit: audit.NewLogger(store.Repos().Logs, zerolog.Nop()),
		cache: &invalidatorSpy{},
	}
}

func (f *fixture) product(t *testing.T, sku string, qty int, price, cost string) *entity.Product {
	t.Helper()
	now := time.Now().UTC()
	p := &entity.Product{
		ID: uuid.NewString(), Name: "Producto " + sku, SKU: sku, Category: "General", Quantity: qty,
		Price: decimal.RequireFromString(price), Cost: decimal.RequireFromString(cost),
		CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, f.store.Repos().Products.Create(context.Background(), p))
	return p
}

func (f *fixture) client(t *testing.T, name string) *entity.Client {
	t.Helper()
	now := time.Now().UTC()
	c := &entity.Client{ID: uuid.NewString(), Name: name, Email: "compras@example.com", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.store.Repos().Clients.Create(context.Background(), c))
	return c
}

func (f *fixture) movementUC() *inventory.RegisterMovementUseCase {
	return inventory.NewRegisterMovementUseCase(f.store, f.audit, f.cache, zerolog.Nop())
}

func TestRegisterMovement_EntradaSumaStock(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "A-1", 10, "8.50", "5")

	out, err := f.movementUC().RegisterMovement(ctx, inventory.MovementInputDTO{
		Type: entity.MovementTypeEntry, ProductID: p.ID, Quantity: 5,
		Location: "Depósito", Responsible: "ana", TransportType: entity.TransportTypeNone,
	})
	require.NoError(t, err)

	assert.Equal(t, 15, out.CurrentStock)
	assert.True(t, out.PriceAtMovement.Equal(decimal.RequireFromString("8.50")))
	assert.Equal(t, "A-1", out.Product.SKU)
	assert.Nil(t, out.Transport, "transport_type none no genera transporte")

	stored, err := f.store.Repos().Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 15, stored.Quantity)

	logs, err := f.store.Repos().Logs.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.LogActionStockEntry, logs[0].Action)
	assert.Equal(t, 1, f.cache.calls)
}

func TestRegisterMovement_SalidaMayorQueStockQuedaEnCero(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "A-1", 3, "10", "5")

	out, err := f.movementUC().RegisterMovement(ctx, inventory.MovementInputDTO{
		Type: entity.MovementTypeExit, ProductID: p.ID, Quantity: 5,
		Location: "Tienda", Responsible: "ana", TransportType: entity.TransportTypeNone,
	})
	require.NoError(t, err)
	assert.Equal(t, 0, out.CurrentStock)
	assert.Equal(t, 5, out.Quantity)
}

func TestRegisterMovement_SalidaAClienteGeneraEntrega(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "A-1", 10, "10", "5")
	c := f.client(t, "Mercado Central")

	out, err := f.movementUC().RegisterMovement(ctx, inventory.MovementInputDTO{
		Type: entity.MovementTypeExit, ProductID: p.ID, Quantity: 4,
		Location: "Depósito", Responsible: "ana", TransportType: entity.TransportTypeClient, ClientID: &c.ID,
	})
	require.NoError(t, err)

	assert.Equal(t, "Mercado Central", out.Location)
	require.NotNil(t, out.Client)
	assert.Equal(t, c.ID, out.Client.ID)
	require.NotNil(t, out.Transport)
	assert.Equal(t, entity.TransportDelivery, out.Transport.Type)
	assert.Equal(t, entity.TransportStatusPending, out.Transport.Status)

	tr, err := f.store.Repos().Transports.GetByID(ctx, out.Transport.ID)
	require.NoError(t, err)
	require.NotNil(t, tr.DestinationClientID)
	assert.Equal(t, c.ID, *tr.DestinationClientID)
	assert.Equal(t, "Depósito", tr.OriginLocation)
	require.NotNil(t, tr.RelatedMovementID)
	assert.Equal(t, out.ID, *tr.RelatedMovementID)

	updated, err := f.store.Repos().Clients.GetByID(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.TotalPurchases)
	assert.Equal(t, 4, updated.TotalQuantity)
	assert.NotNil(t, updated.LastPurchaseAt)
}

func TestRegisterMovement_ClienteInexistenteNoDejaEscrituras(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "A-1", 10, "10", "5")
	missing := uuid.NewString()

	_, err := f.movementUC().RegisterMovement(ctx, inventory.MovementInputDTO{
		Type: entity.MovementTypeExit, ProductID: p.ID, Quantity: 4,
		Responsible: "ana", TransportType: entity.TransportTypeClient, ClientID: &missing,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	stored, err := f.store.Repos().Products.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 10, stored.Quantity)

	movements, err := f.store.Repos().Movements.List(ctx, entity.MovementFilter{})
	require.NoError(t, err)
	assert.Empty(t, movements)
	logs, err := f.store.Repos().Logs.ListRecent(ctx, 10)
	require.NoError(t, err)
	assert.Empty(t, logs)
	assert.Zero(t, f.cache.calls)
}

func TestRegisterMovement_ProductoInexistente(t *testing.T) {
	f := newFixture()
	_, err := f.movementUC().RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Type: entity.MovementTypeEntry, ProductID: uuid.NewString(), Quantity: 1,
		Location: "Depósito", Responsible: "ana", TransportType: entity.TransportTypeNone,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRegisterMovement_Validacion(t *testing.T) {
	f := newFixture()
	_, err := f.movementUC().RegisterMovement(context.Background(), inventory.MovementInputDTO{
		Type: "transfer", Quantity: 0, TransportType: "plane",
	})

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	fields := map[string]bool{}
	for _, fe := range verr.Fields {
		fields[fe.Field] = true
	}
	for _, name := range []string{"type", "product_id", "quantity", "responsible", "transport_type", "location"} {
		assert.True(t, fields[name], name)
	}
}

func TestRegisterMovementFromRequest_ResponsablePorDefecto(t *testing.T) {
	ctx := context.Background()
	f := newFixture()
	p := f.product(t, "A-1", 1, "10", "5")

	out, err := f.movementUC().RegisterMovementFromRequest(ctx, "operador", dto.RegisterMovementRequest{
		Type: entity.MovementTypeEntry, ProductID: p.ID, Quantity: 2,
		Location: "Depósito", TransportType: entity.TransportTypeInternal,
	})
	require.NoError(t, err)
	assert.Equal(t, "operador", out.Responsible)
	require.NotNil(t, out.Transport)
	assert.Equal(t, entity.TransportInternal, out.Transport.Type)
	assert.Equal(t, "operador", out.Transport.Driver)
}
