package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name       string           `json:"name" validate:"required,min=1,max=200"`
	SKU        string           `json:"sku" validate:"required,min=1,max=100"`
	Category   string           `json:"category" validate:"max=100"`
	Quantity   int              `json:"quantity" validate:"min=0"`
	Price      decimal.Decimal  `json:"price" validate:"gte=0"`
	Cost       *decimal.Decimal `json:"cost" validate:"omitempty,gte=0"`
	SupplierID *string          `json:"supplier_id" validate:"omitempty,uuid"`
}

// UpdateProductRequest entrada para actualizar un producto; solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name       *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU        *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Category   *string          `json:"category" validate:"omitempty,max=100"`
	Quantity   *int             `json:"quantity" validate:"omitempty,min=0"`
	Price      *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
	Cost       *decimal.Decimal `json:"cost" validate:"omitempty,gte=0"`
	SupplierID *string          `json:"supplier_id" validate:"omitempty,uuid"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Category   string          `json:"category"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	SupplierID *string         `json:"supplier_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// ImportProductsRequest body de POST /api/products/import (filas ya parseadas del CSV).
type ImportProductsRequest struct {
	Products []ImportProductRow `json:"products" validate:"required"`
}

// ImportProductRow fila del CSV. Los valores numéricos pueden llegar como texto o número.
type ImportProductRow struct {
	Name     FlexString `json:"name"`
	SKU      FlexString `json:"sku"`
	Category FlexString `json:"category"`
	Quantity FlexString `json:"quantity"`
	Price    FlexString `json:"price"`
	Cost     FlexString `json:"cost"`
	Supplier FlexString `json:"supplier"`
}

// ImportProductsResponse resultado de la importación.
type ImportProductsResponse struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped int      `json:"skipped"`
	Errors  []string `json:"errors,omitempty"`
	Message string   `json:"message"`
}
