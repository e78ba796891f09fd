package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestCostCalculator_SinStockPrevioUsaCostoEntrada(t *testing.T) {
	got := inventory.CostCalculator(decimal.Zero, dec("3"), dec("10"), dec("5"))
	assert.True(t, got.Equal(dec("5")), "got %s", got)
}

func TestCostCalculator_PromedioPonderado(t *testing.T) {
	got := inventory.CostCalculator(dec("10"), dec("4"), dec("10"), dec("6"))
	assert.True(t, got.Equal(dec("5")), "(10×4+10×6)/20 debe ser 5, got %s", got)
}

func TestCostCalculator_PesosDistintos(t *testing.T) {
	got := inventory.CostCalculator(dec("30"), dec("2"), dec("10"), dec("6"))
	assert.True(t, got.Equal(dec("3")), "got %s", got)
}

func TestApplyMovement(t *testing.T) {
	cases := []struct {
		name    string
		current int
		typ     string
		qty     int
		want    int
	}{
		{"entrada suma", 5, entity.MovementTypeEntry, 3, 8},
		{"salida resta", 5, entity.MovementTypeExit, 3, 2},
		{"salida exacta", 5, entity.MovementTypeExit, 5, 0},
		{"salida mayor que stock queda en cero", 5, entity.MovementTypeExit, 12, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, inventory.ApplyMovement(tc.current, tc.typ, tc.qty))
		})
	}
}

func TestRequiresTransport(t *testing.T) {
	assert.True(t, inventory.RequiresTransport(entity.TransportTypeSupplier))
	assert.True(t, inventory.RequiresTransport(entity.TransportTypeClient))
	assert.True(t, inventory.RequiresTransport(entity.TransportTypeInternal))
	assert.False(t, inventory.RequiresTransport(entity.TransportTypeNone))
	assert.False(t, inventory.RequiresTransport(""))
}

func movement(typ, transportType string, clientID *string) *entity.StockMovement {
	return &entity.StockMovement{
		ID:            "mov-1",
		Type:          typ,
		ProductID:     "prod-1",
		Quantity:      4,
		Responsible:   "Ana",
		TransportType: transportType,
		Description:   "pedido 12",
		ClientID:      clientID,
	}
}

func TestTransportForMovement_ClienteSalidaEsEntrega(t *testing.T) {
	clientID := "cli-1"
	tr := inventory.TransportForMovement(movement(entity.MovementTypeExit, entity.TransportTypeClient, &clientID), "Bodega A", time.Now())

	assert.Equal(t, entity.TransportDelivery, tr.Type)
	assert.Equal(t, entity.TransportStatusPending, tr.Status)
	assert.Equal(t, "Bodega A", tr.OriginLocation)
	require.NotNil(t, tr.DestinationClientID)
	assert.Equal(t, "cli-1", *tr.DestinationClientID)
	assert.Nil(t, tr.OriginClientID)
	require.NotNil(t, tr.RelatedMovementID)
	assert.Equal(t, "mov-1", *tr.RelatedMovementID)
	assert.Equal(t, []entity.TransportItem{{ProductID: "prod-1", Quantity: 4}}, tr.Items)
	assert.Equal(t, "Ana", tr.Driver)
	assert.Equal(t, "pedido 12", tr.Notes)
}

func TestTransportForMovement_ClienteEntradaEsRecogida(t *testing.T) {
	clientID := "cli-1"
	tr := inventory.TransportForMovement(movement(entity.MovementTypeEntry, entity.TransportTypeClient, &clientID), "Bodega A", time.Now())

	assert.Equal(t, entity.TransportPickup, tr.Type)
	require.NotNil(t, tr.OriginClientID)
	assert.Equal(t, "cli-1", *tr.OriginClientID)
	assert.Equal(t, "Bodega A", tr.DestinationLocation)
	assert.Nil(t, tr.DestinationClientID)
}

func TestTransportForMovement_Interno(t *testing.T) {
	tr := inventory.TransportForMovement(movement(entity.MovementTypeExit, entity.TransportTypeInternal, nil), "Bodega A", time.Now())

	assert.Equal(t, entity.TransportInternal, tr.Type)
	assert.Equal(t, "Bodega A", tr.OriginLocation)
	assert.Equal(t, inventory.InternalDestination, tr.DestinationLocation)
}

func TestTransportForMovement_ProveedorSinOrigenNiDestino(t *testing.T) {
	m := movement(entity.MovementTypeEntry, entity.TransportTypeSupplier, nil)
	m.Responsible = ""
	tr := inventory.TransportForMovement(m, "Bodega A", time.Now())

	assert.Equal(t, entity.TransportInternal, tr.Type)
	assert.Empty(t, tr.OriginLocation)
	assert.Empty(t, tr.DestinationLocation)
	assert.Equal(t, "N/A", tr.Driver)
}

func TestNormalizeSupplierName(t *testing.T) {
	assert.Equal(t, "jose silva", inventory.NormalizeSupplierName("  José   Silva "))
	assert.Equal(t, "jose silva", inventory.NormalizeSupplierName("JOSE SILVA"))
	assert.Equal(t, "acores lda", inventory.NormalizeSupplierName("Açores\tLda"))
	assert.Equal(t, "José Silva", inventory.CollapseSpaces("  José   Silva "))
}
