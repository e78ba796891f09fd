package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemRequest línea de una orden. Sin unit_cost se usa el costo actual del producto.
type PurchaseOrderItemRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  int              `json:"quantity" validate:"required,min=1"`
	UnitCost  *decimal.Decimal `json:"unit_cost" validate:"omitempty,gte=0"`
}

// CreatePurchaseOrderRequest body de POST /api/purchase-orders.
type CreatePurchaseOrderRequest struct {
	SupplierID   string                     `json:"supplier_id" validate:"required,uuid"`
	Items        []PurchaseOrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ExpectedDate *time.Time                 `json:"expected_date"`
}

// UpdatePurchaseOrderStatusRequest body de PATCH /api/purchase-orders.
type UpdatePurchaseOrderStatusRequest struct {
	ID     string `json:"id" validate:"required,uuid"`
	Status string `json:"status" validate:"required,oneof=ordered received cancelled"`
}

// SupplierRefDTO resumen de proveedor.
type SupplierRefDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// PurchaseOrderItemResponse línea con producto resumido.
type PurchaseOrderItemResponse struct {
	Product  *ProductRefDTO  `json:"product"`
	Quantity int             `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
	Subtotal decimal.Decimal `json:"subtotal"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID           string                      `json:"id"`
	Supplier     *SupplierRefDTO             `json:"supplier"`
	Items        []PurchaseOrderItemResponse `json:"items"`
	Status       string                      `json:"status"`
	ExpectedDate *time.Time                  `json:"expected_date"`
	Total        decimal.Decimal             `json:"total"`
	CreatedAt    time.Time                   `json:"created_at"`
	UpdatedAt    time.Time                   `json:"updated_at"`
}
