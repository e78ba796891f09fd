package entity

import "time"

// Supplier representa un proveedor.
// El nombre no es único en BD; la importación lo resuelve sin distinguir mayúsculas.
type Supplier struct {
	ID        string
	Name      string
	Contact   string
	Email     string
	NIF       string
	Location  string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
