package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateClientRequest entrada para crear un cliente.
type CreateClientRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=200"`
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"max=50"`
	Address string `json:"address" validate:"max=300"`
	NIF     string `json:"nif" validate:"max=50"`
	Notes   string `json:"notes"`
}

// UpdateClientRequest actualización parcial de un cliente.
type UpdateClientRequest struct {
	Name    *string `json:"name" validate:"omitempty,min=1,max=200"`
	Email   *string `json:"email" validate:"omitempty,email"`
	Phone   *string `json:"phone" validate:"omitempty,max=50"`
	Address *string `json:"address" validate:"omitempty,max=300"`
	NIF     *string `json:"nif" validate:"omitempty,max=50"`
	Notes   *string `json:"notes"`
}

// ClientResponse salida de un cliente.
type ClientResponse struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	Email          string     `json:"email"`
	Phone          string     `json:"phone"`
	Address        string     `json:"address"`
	NIF            string     `json:"nif"`
	Notes          string     `json:"notes"`
	TotalPurchases int        `json:"total_purchases"`
	TotalQuantity  int        `json:"total_quantity"`
	LastPurchaseAt *time.Time `json:"last_purchase_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

// TopProductDTO producto más movido por un cliente.
type TopProductDTO struct {
	Name string `json:"name"`
	Qty  int    `json:"qty"`
}

// ClientStatsDTO estadísticas calculadas de los movimientos del cliente.
type ClientStatsDTO struct {
	TotalMovements int             `json:"total_movements"`
	TotalQuantity  int             `json:"total_quantity"`
	TotalValue     decimal.Decimal `json:"total_value"`
	LastPurchaseAt *time.Time      `json:"last_purchase_at"`
	TopProducts    []TopProductDTO `json:"top_products"`
}

// ClientDetailResponse cliente con estadísticas y movimientos.
type ClientDetailResponse struct {
	Client    ClientResponse     `json:"client"`
	Stats     ClientStatsDTO     `json:"stats"`
	Movements []MovementResponse `json:"movements"`
}
