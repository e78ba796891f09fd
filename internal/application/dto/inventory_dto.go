package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RegisterMovementRequest body para POST /api/movements.
type RegisterMovementRequest struct {
	Type          string  `json:"type" validate:"required,oneof=entry exit"`
	ProductID     string  `json:"product_id" validate:"required,uuid"`
	Quantity      int     `json:"quantity" validate:"required,min=1"`
	Location      string  `json:"location" validate:"max=200"`
	Responsible   string  `json:"responsible" validate:"max=200"`
	TransportType string  `json:"transport_type" validate:"required,oneof=supplier client internal none"`
	ClientID      *string `json:"client_id" validate:"omitempty,uuid"`
	Description   string  `json:"description" validate:"max=1000"`
}

// MovementListRequest filtros de GET /api/movements.
type MovementListRequest struct {
	Type      string `query:"type" validate:"omitempty,oneof=entry exit"`
	ProductID string `query:"product_id" validate:"omitempty,uuid"`
	ClientID  string `query:"client_id" validate:"omitempty,uuid"`
	From      string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To        string `query:"to" validate:"omitempty,datetime=2006-01-02"`
	PageRequest
}

// TransportRefDTO resumen del transporte asociado a un movimiento.
type TransportRefDTO struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Status string `json:"status"`
	Driver string `json:"driver"`
}

// MovementResponse movimiento con producto, cliente y transporte resumidos.
type MovementResponse struct {
	ID              string           `json:"id"`
	Type            string           `json:"type"`
	Product         ProductRefDTO    `json:"product"`
	Quantity        int              `json:"quantity"`
	Location        string           `json:"location"`
	Responsible     string           `json:"responsible"`
	TransportType   string           `json:"transport_type"`
	Description     string           `json:"description"`
	PriceAtMovement decimal.Decimal  `json:"price_at_movement"`
	CurrentStock    int              `json:"current_stock"`
	Client          *ClientRefDTO    `json:"client"`
	Transport       *TransportRefDTO `json:"transport"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}
