package dto

import "time"

// TransportItemRequest línea de un transporte.
type TransportItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateTransportRequest entrada para crear un transporte manual.
// Los strings vacíos se tratan como ausentes.
type CreateTransportRequest struct {
	Type                string                 `json:"type" validate:"required,oneof=delivery pickup internal"`
	Status              string                 `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Date                *time.Time             `json:"date"`
	Driver              string                 `json:"driver" validate:"required,max=200"`
	Vehicle             string                 `json:"vehicle" validate:"max=100"`
	OriginClientID      string                 `json:"origin_client_id" validate:"omitempty,uuid"`
	DestinationClientID string                 `json:"destination_client_id" validate:"omitempty,uuid"`
	OriginLocation      string                 `json:"origin_location" validate:"max=200"`
	DestinationLocation string                 `json:"destination_location" validate:"max=200"`
	Items               []TransportItemRequest `json:"items" validate:"dive"`
	RelatedMovementID   string                 `json:"related_movement_id" validate:"omitempty,uuid"`
	Notes               string                 `json:"notes"`
}

// UpdateTransportRequest actualización parcial. Un string vacío en un campo de cliente lo desasocia.
type UpdateTransportRequest struct {
	Type                *string                `json:"type" validate:"omitempty,oneof=delivery pickup internal"`
	Status              *string                `json:"status" validate:"omitempty,oneof=pending in_progress completed"`
	Date                *time.Time             `json:"date"`
	Driver              *string                `json:"driver" validate:"omitempty,min=1,max=200"`
	Vehicle             *string                `json:"vehicle" validate:"omitempty,max=100"`
	OriginClientID      *string                `json:"origin_client_id" validate:"omitempty,uuid"`
	DestinationClientID *string                `json:"destination_client_id" validate:"omitempty,uuid"`
	OriginLocation      *string                `json:"origin_location" validate:"omitempty,max=200"`
	DestinationLocation *string                `json:"destination_location" validate:"omitempty,max=200"`
	Items               []TransportItemRequest `json:"items" validate:"omitempty,dive"`
	Notes               *string                `json:"notes"`
}

// TransportItemResponse línea con el producto resumido.
type TransportItemResponse struct {
	Product  *ProductRefDTO `json:"product"`
	Quantity int            `json:"quantity"`
}

// TransportResponse salida de un transporte.
type TransportResponse struct {
	ID                  string                  `json:"id"`
	Type                string                  `json:"type"`
	Status              string                  `json:"status"`
	Date                time.Time               `json:"date"`
	Driver              string                  `json:"driver"`
	Vehicle             string                  `json:"vehicle"`
	OriginClient        *ClientRefDTO           `json:"origin_client"`
	DestinationClient   *ClientRefDTO           `json:"destination_client"`
	OriginLocation      string                  `json:"origin_location"`
	DestinationLocation string                  `json:"destination_location"`
	Items               []TransportItemResponse `json:"items"`
	RelatedMovementID   *string                 `json:"related_movement_id"`
	RelatedMovement     *MovementResponse       `json:"related_movement,omitempty"`
	Notes               string                  `json:"notes"`
	CreatedAt           time.Time               `json:"created_at"`
	UpdatedAt           time.Time               `json:"updated_at"`
}
