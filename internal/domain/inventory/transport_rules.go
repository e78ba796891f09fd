package inventory

import (
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// InternalDestination destino fijo de los traslados internos.
const InternalDestination = "Armazém Secundário"

// TransportForMovement construye el transporte pendiente asociado a un movimiento.
//
// Tabla de reglas:
//   - client + exit:  delivery, origen = location, destino = cliente
//   - client + entry: pickup, origen = cliente, destino = location
//   - internal:       internal, origen = location, destino = InternalDestination
//   - supplier:       internal, sin origen ni destino
//
// location es la ubicación enviada en el request (no la etiqueta resuelta del cliente).
func TransportForMovement(mov *entity.StockMovement, location string, now time.Time) *entity.Transport {
	movementID := mov.ID
	t := &entity.Transport{
		Type:              entity.TransportInternal,
		Status:            entity.TransportStatusPending,
		Date:              now,
		Driver:            mov.Responsible,
		Items:             []entity.TransportItem{{ProductID: mov.ProductID, Quantity: mov.Quantity}},
		RelatedMovementID: &movementID,
		Notes:             mov.Description,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if t.Driver == "" {
		t.Driver = "N/A"
	}

	switch mov.TransportType {
	case entity.TransportTypeClient:
		if mov.Type == entity.MovementTypeExit {
			t.Type = entity.TransportDelivery
		} else {
			t.Type = entity.TransportPickup
		}
		if mov.ClientID == nil {
			break
		}
		clientID := *mov.ClientID
		if mov.Type == entity.MovementTypeExit {
			t.OriginLocation = location
			t.DestinationClientID = &clientID
		} else {
			t.OriginClientID = &clientID
			t.DestinationLocation = location
		}
	case entity.TransportTypeInternal:
		t.OriginLocation = location
		t.DestinationLocation = InternalDestination
	}
	return t
}
