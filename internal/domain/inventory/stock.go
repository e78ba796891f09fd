package inventory

import "github.com/jhoicas/stockflow-api/internal/domain/entity"

// ApplyMovement devuelve la cantidad resultante de aplicar el movimiento.
// Una salida mayor que el stock deja el producto en 0; nunca se rechaza.
func ApplyMovement(current int, movementType string, quantity int) int {
	next := current + quantity
	if movementType == entity.MovementTypeExit {
		next = current - quantity
	}
	if next < 0 {
		return 0
	}
	return next
}

// RequiresTransport indica si el tipo de transporte del movimiento genera un Transport.
func RequiresTransport(transportType string) bool {
	switch transportType {
	case entity.TransportTypeSupplier, entity.TransportTypeClient, entity.TransportTypeInternal:
		return true
	}
	return false
}
