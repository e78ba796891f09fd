package usecase_test

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
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/infrastructure/memory"
)

type invalidatorSpy struct{ calls int }

func (s *invalidatorSpy) Invalidate(context.Context) { s.calls++ }

func strPtr(s string) *string { return &s }

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup() (*memory.Store, *audit.Logger) {
	store := memory.NewStore()
	return store, audit.NewLogger(store.Repos().Logs, zerolog.Nop())
}

func TestProductUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	store, auditLog := setup()
	repos := store.Repos()
	spy := &invalidatorSpy{}
	uc := usecase.NewProductUseCase(repos.Products, repos.Suppliers, auditLog, spy)

	created, err := uc.Create(ctx, dto.CreateProductRequest{Name: " Café ", SKU: "CAF-1", Quantity: 4, Price: dec("12")})
	require.NoError(t, err)
	assert.Equal(t, "Café", created.Name)
	assert.True(t, created.Cost.IsZero())

	_, err = uc.Create(ctx, dto.CreateProductRequest{Name: "Otro", SKU: "CAF-1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	updated, err := uc.Update(ctx, created.ID, dto.UpdateProductRequest{Price: ptrDec("15.5")})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(dec("15.5")))
	assert.Equal(t, "CAF-1", updated.SKU)
	assert.Equal(t, 4, updated.Quantity)

	require.NoError(t, uc.Delete(ctx, created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrNotFound)

	_, err = uc.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	logs, err := repos.Logs.ListRecent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, entity.LogActionDelete, logs[0].Action)
	assert.Equal(t, entity.LogActionCreate, logs[2].Action)
	assert.Equal(t, 3, spy.calls)
}

func ptrDec(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestProductUseCase_ProveedorInexistente(t *testing.T) {
	store, auditLog := setup()
	repos := store.Repos()
	uc := usecase.NewProductUseCase(repos.Products, repos.Suppliers, auditLog, nil)

	_, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name: "X", SKU: "X", SupplierID: strPtr(uuid.NewString()),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "supplier_id", verr.Fields[0].Field)
}

func TestProductUseCase_UpdateSKUDeOtroProducto(t *testing.T) {
	ctx := context.Background()
	store, auditLog := setup()
	repos := store.Repos()
	uc := usecase.NewProductUseCase(repos.Products, repos.Suppliers, auditLog, nil)

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "A", SKU: "A"})
	require.NoError(t, err)
	b, err := uc.Create(ctx, dto.CreateProductRequest{Name: "B", SKU: "B"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, b.ID, dto.UpdateProductRequest{SKU: strPtr("A")})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestSupplierUseCase_DeleteConOrdenes(t *testing.T) {
	ctx := context.Background()
	store, auditLog := setup()
	repos := store.Repos()
	suppliers := usecase.NewSupplierUseCase(repos.Suppliers, nil)
	products := usecase.NewProductUseCase(repos.Products, repos.Suppliers, auditLog, nil)
	orders := inventory.NewPurchaseOrderUseCase(store, repos, auditLog, nil, zerolog.Nop())

	s, err := suppliers.Create(ctx, dto.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)
	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "A", SKU: "A", SupplierID: &s.ID})
	require.NoError(t, err)
	_, err = orders.Create(ctx, dto.CreatePurchaseOrderRequest{
		SupplierID: s.ID,
		Items:      []dto.PurchaseOrderItemRequest{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.ErrorIs(t, suppliers.Delete(ctx, s.ID), domain.ErrConflict)
	assert.ErrorIs(t, suppliers.Delete(ctx, uuid.NewString()), domain.ErrNotFound)
}

func TestSupplierUseCase_UpdateYDeleteInvalidanAnalitica(t *testing.T) {
	ctx := context.Background()
	store, _ := setup()
	spy := &invalidatorSpy{}
	uc := usecase.NewSupplierUseCase(store.Repos().Suppliers, spy)

	s, err := uc.Create(ctx, dto.CreateSupplierRequest{Name: "Acme"})
	require.NoError(t, err)

	_, err = uc.Update(ctx, s.ID, dto.UpdateSupplierRequest{Name: strPtr("  ")})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Fields[0].Field)
	assert.Equal(t, 0, spy.calls)

	got, err := uc.Update(ctx, s.ID, dto.UpdateSupplierRequest{Name: strPtr(" Acme Renamed ")})
	require.NoError(t, err)
	assert.Equal(t, "Acme Renamed", got.Name)
	assert.Equal(t, 1, spy.calls)

	require.NoError(t, uc.Delete(ctx, s.ID))
	assert.Equal(t, 2, spy.calls)

	assert.ErrorIs(t, uc.Delete(ctx, s.ID), domain.ErrNotFound)
	assert.Equal(t, 2, spy.calls)
}

func TestProductUseCase_NombreEnBlanco(t *testing.T) {
	ctx := context.Background()
	store, auditLog := setup()
	repos := store.Repos()
	uc := usecase.NewProductUseCase(repos.Products, repos.Suppliers, auditLog, nil)

	_, err := uc.Create(ctx, dto.CreateProductRequest{Name: "   ", SKU: "S2", Price: dec("10")})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Fields[0].Field)

	p, err := uc.Create(ctx, dto.CreateProductRequest{Name: "Tornillo", SKU: "S2", Price: dec("10")})
	require.NoError(t, err)
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{Name: strPtr("\t ")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Fields[0].Field)
	_, err = uc.Update(ctx, p.ID, dto.UpdateProductRequest{SKU: strPtr(" ")})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "sku", verr.Fields[0].Field)

	got, err := uc.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Tornillo", got.Name)
}

func TestClientUseCase_DetalleConEstadisticas(t *testing.T) {
	ctx := context.Background()
	store, auditLog := setup()
	repos := store.Repos()
	clients := usecase.NewClientUseCase(repos.Clients, repos.Movements)
	products := usecase.NewProductUseCase(repos.Products, repos.Suppliers, auditLog, nil)
	movements := inventory.NewRegisterMovementUseCase(store, auditLog, nil, zerolog.Nop())

	c, err := clients.Create(ctx, dto.CreateClientRequest{Name: "Mercado"})
	require.NoError(t, err)

	type line struct {
		sku   string
		price string
		qty   int
	}
	ids := map[string]string{}
	for _, l := range []line{{"A", "2", 5}, {"B", "10", 1}, {"C", "1", 3}, {"D", "1", 3}} {
		p, err := products.Create(ctx, dto.CreateProductRequest{Name: "Prod " + l.sku, SKU: l.sku, Quantity: 100, Price: dec(l.price)})
		require.NoError(t, err)
		ids[l.sku] = p.ID
		_, err = movements.RegisterMovement(ctx, inventory.MovementInputDTO{
			Type: entity.MovementTypeExit, ProductID: p.ID, Quantity: l.qty, Responsible: "ana",
			TransportType: entity.TransportTypeNone, ClientID: &c.ID,
		})
		require.NoError(t, err)
	}

	detail, err := clients.GetDetail(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, detail.Stats.TotalMovements)
	assert.Equal(t, 12, detail.Stats.TotalQuantity)
	assert.True(t, detail.Stats.TotalValue.Equal(dec("26")), detail.Stats.TotalValue.String())
	require.Len(t, detail.Stats.TopProducts, 3)
	assert.Equal(t, dto.TopProductDTO{Name: "Prod A", Qty: 5}, detail.Stats.TopProducts[0])
	assert.Equal(t, "Prod C", detail.Stats.TopProducts[1].Name)
	assert.Equal(t, "Prod D", detail.Stats.TopProducts[2].Name)
	assert.Equal(t, 4, detail.Client.TotalPurchases)
	assert.Equal(t, "Mercado", detail.Movements[0].Location)

	_, err = clients.GetDetail(ctx, uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestMovementQueryUseCase_FiltroPorFechasIncluyeDiaFinal(t *testing.T) {
	ctx := context.Background()
	store, _ := setup()
	repos := store.Repos()
	day := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)
	for i, at := range []time.Time{day.Add(-time.Minute), day.Add(23 * time.Hour), day.Add(24 * time.Hour)} {
		require.NoError(t, repos.Movements.Create(ctx, &entity.StockMovement{
			ID: uuid.NewString(), Type: entity.MovementTypeEntry, ProductID: uuid.NewString(),
			Quantity: i + 1, CreatedAt: at, UpdatedAt: at,
		}))
	}
	uc := usecase.NewMovementQueryUseCase(repos.Movements)

	out, err := uc.List(ctx, dto.MovementListRequest{From: "2024-05-10", To: "2024-05-10"})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, 2, out[0].Quantity)

	_, err = uc.List(ctx, dto.MovementListRequest{From: "2024-05-11", To: "2024-05-10"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTransportUseCase_CreateEnlazaYDeleteDesenlaza(t *testing.T) {
	ctx := context.Background()
	store, auditLog := setup()
	repos := store.Repos()
	products := usecase.NewProductUseCase(repos.Products, repos.Suppliers, auditLog, nil)
	movements := inventory.NewRegisterMovementUseCase(store, auditLog, nil, zerolog.Nop())
	transports := usecase.NewTransportUseCase(store, repos)

	p, err := products.Create(ctx, dto.CreateProductRequest{Name: "A", SKU: "A", Quantity: 5})
	require.NoError(t, err)
	mov, err := movements.RegisterMovement(ctx, inventory.MovementInputDTO{
		Type: entity.MovementTypeEntry, ProductID: p.ID, Quantity: 1, Location: "Depósito",
		Responsible: "ana", TransportType: entity.TransportTypeNone,
	})
	require.NoError(t, err)

	tr, err := transports.Create(ctx, dto.CreateTransportRequest{
		Type: entity.TransportPickup, Driver: "Luis", RelatedMovementID: mov.ID,
		Items: []dto.TransportItemRequest{{ProductID: p.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.TransportStatusPending, tr.Status)

	linked, err := repos.Movements.GetByID(ctx, mov.ID)
	require.NoError(t, err)
	require.NotNil(t, linked.TransportID)
	assert.Equal(t, tr.ID, *linked.TransportID)

	got, err := transports.GetByID(ctx, tr.ID)
	require.NoError(t, err)
	require.NotNil(t, got.RelatedMovement)
	assert.Equal(t, mov.ID, got.RelatedMovement.ID)

	require.NoError(t, transports.Delete(ctx, tr.ID))
	unlinked, err := repos.Movements.GetByID(ctx, mov.ID)
	require.NoError(t, err)
	assert.Nil(t, unlinked.TransportID)
	assert.ErrorIs(t, transports.Delete(ctx, tr.ID), domain.ErrNotFound)
}

func TestTransportUseCase_ClienteInexistente(t *testing.T) {
	store, _ := setup()
	transports := usecase.NewTransportUseCase(store, store.Repos())

	_, err := transports.Create(context.Background(), dto.CreateTransportRequest{
		Type: entity.TransportDelivery, Driver: "Luis", DestinationClientID: uuid.NewString(),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "destination_client_id", verr.Fields[0].Field)
}

func TestLogUseCase_CreateYListRecent(t *testing.T) {
	ctx := context.Background()
	store, auditLog := setup()
	uc := usecase.NewLogUseCase(store.Repos().Logs, auditLog)

	require.NoError(t, uc.Create(ctx, dto.CreateLogRequest{Action: entity.LogActionUpdate, ProductName: "A", Details: "manual"}))
	assert.ErrorIs(t, uc.Create(ctx, dto.CreateLogRequest{Action: "PURGE"}), domain.ErrInvalidInput)

	logs, err := uc.ListRecent(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Nil(t, logs[0].ProductID)
	assert.Equal(t, "manual", logs[0].Details)
}
