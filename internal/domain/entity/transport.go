package entity

import "time"

// Tipos de transporte.
const (
	TransportDelivery = "delivery"
	TransportPickup   = "pickup"
	TransportInternal = "internal"
)

// Estados de transporte.
const (
	TransportStatusPending    = "pending"
	TransportStatusInProgress = "in_progress"
	TransportStatusCompleted  = "completed"
)

// TransportItem línea de producto transportada.
type TransportItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Transport representa una entrega, recogida o traslado interno.
type Transport struct {
	ID                  string
	Type                string
	Status              string
	Date                time.Time
	Driver              string
	Vehicle             string
	OriginClientID      *string
	DestinationClientID *string
	OriginLocation      string
	DestinationLocation string
	Items               []TransportItem
	RelatedMovementID   *string
	Notes               string
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
