package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden de compra: ordered -> received | cancelled.
const (
	PurchaseOrderOrdered   = "ordered"
	PurchaseOrderReceived  = "received"
	PurchaseOrderCancelled = "cancelled"
)

// PurchaseOrderItem línea de la orden.
type PurchaseOrderItem struct {
	ProductID string          `json:"product_id"`
	Quantity  int             `json:"quantity"`
	UnitCost  decimal.Decimal `json:"unit_cost"`
}

// Subtotal devuelve quantity × unit_cost.
func (i PurchaseOrderItem) Subtotal() decimal.Decimal {
	return i.UnitCost.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// PurchaseOrder orden de compra a un proveedor. Total se calcula al crear.
type PurchaseOrder struct {
	ID           string
	SupplierID   string
	Items        []PurchaseOrderItem
	Status       string
	ExpectedDate *time.Time
	Total        decimal.Decimal
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CanTransitionTo indica si el cambio de estado es válido. Los estados received y cancelled son terminales.
func (po *PurchaseOrder) CanTransitionTo(status string) bool {
	if po.Status != PurchaseOrderOrdered {
		return false
	}
	return status == PurchaseOrderReceived || status == PurchaseOrderCancelled
}
