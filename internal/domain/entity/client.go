package entity

import "time"

// Client representa un cliente. Los totales derivados se actualizan al registrar
// salidas asociadas al cliente.
type Client struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Address        string
	NIF            string
	Notes          string
	TotalPurchases int
	TotalQuantity  int
	LastPurchaseAt *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}
