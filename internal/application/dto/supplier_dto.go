package dto

import "time"

// CreateSupplierRequest entrada para crear un proveedor.
type CreateSupplierRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=200"`
	Contact  string `json:"contact" validate:"max=200"`
	Email    string `json:"email" validate:"omitempty,email"`
	NIF      string `json:"nif" validate:"max=50"`
	Location string `json:"location" validate:"max=200"`
	Notes    string `json:"notes"`
}

// UpdateSupplierRequest actualización parcial de un proveedor.
type UpdateSupplierRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=200"`
	Contact  *string `json:"contact" validate:"omitempty,max=200"`
	Email    *string `json:"email" validate:"omitempty,email"`
	NIF      *string `json:"nif" validate:"omitempty,max=50"`
	Location *string `json:"location" validate:"omitempty,max=200"`
	Notes    *string `json:"notes"`
}

// SupplierResponse salida de un proveedor.
type SupplierResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Email     string    `json:"email"`
	NIF       string    `json:"nif"`
	Location  string    `json:"location"`
	Notes     string    `json:"notes"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
