package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockflow-api/internal/application/audit"
	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/domain"
	"github.com/jhoicas/stockflow-api/internal/domain/entity"
	"github.com/jhoicas/stockflow-api/internal/domain/inventory"
	"github.com/jhoicas/stockflow-api/internal/domain/repository"
)

// Valores fijos del movimiento generado al recibir una orden.
const (
	receiptLocation    = "warehouse"
	receiptResponsible = "system"
)

// PurchaseOrderUseCase crea órdenes de compra y gestiona su ciclo ordered -> received | cancelled.
// La recepción suma stock y recalcula el costo promedio ponderado en una sola transacción.
type PurchaseOrderUseCase struct {
	txRunner TxRunner
	repos    repository.Repos
	audit    *audit.Logger
	cache    AnalyticsInvalidator
	log      zerolog.Logger
	now      func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso. repos son los repositorios fuera de transacción.
func NewPurchaseOrderUseCase(txRunner TxRunner, repos repository.Repos, auditLog *audit.Logger, cache AnalyticsInvalidator, log zerolog.Logger) *PurchaseOrderUseCase {
	return &PurchaseOrderUseCase{
		txRunner: txRunner,
		repos:    repos,
		audit:    auditLog,
		cache:    invalidatorOrNoop(cache),
		log:      log,
		now:      time.Now,
	}
}

// Create registra una orden en estado ordered. Sin unit_cost se toma el costo actual del producto.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.NewValidationError("items", "min", "la orden necesita al menos un ítem")
	}
	supplier, err := uc.repos.Suppliers.GetByID(ctx, in.SupplierID)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}

	ids := make([]string, 0, len(in.Items))
	for _, it := range in.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := uc.productsByID(ctx, ids)
	if err != nil {
		return nil, err
	}

	now := uc.now().UTC()
	order := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		SupplierID:   supplier.ID,
		Status:       entity.PurchaseOrderOrdered,
		ExpectedDate: in.ExpectedDate,
		Total:        decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	for _, it := range in.Items {
		p, ok := products[it.ProductID]
		if !ok {
			return nil, domain.ErrNotFound
		}
		if it.Quantity < 1 {
			return nil, domain.NewValidationError("items.quantity", "min", "debe ser al menos 1")
		}
		unitCost := p.Cost
		if it.UnitCost != nil {
			unitCost = *it.UnitCost
		}
		item := entity.PurchaseOrderItem{ProductID: p.ID, Quantity: it.Quantity, UnitCost: unitCost}
		order.Items = append(order.Items, item)
		order.Total = order.Total.Add(item.Subtotal())
	}

	if err := uc.repos.Orders.Create(ctx, order); err != nil {
		return nil, err
	}
	out := toPurchaseOrderResponse(order, map[string]*entity.Supplier{supplier.ID: supplier}, products)
	return &out, nil
}

// List devuelve las órdenes (más recientes primero) con proveedor y productos resumidos.
func (uc *PurchaseOrderUseCase) List(ctx context.Context) ([]dto.PurchaseOrderResponse, error) {
	orders, err := uc.repos.Orders.List(ctx)
	if err != nil {
		return nil, err
	}
	suppliers, err := uc.repos.Suppliers.List(ctx)
	if err != nil {
		return nil, err
	}
	supplierByID := make(map[string]*entity.Supplier, len(suppliers))
	for _, s := range suppliers {
		supplierByID[s.ID] = s
	}
	var ids []string
	for _, o := range orders {
		for _, it := range o.Items {
			ids = append(ids, it.ProductID)
		}
	}
	products, err := uc.productsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(orders))
	for _, o := range orders {
		out = append(out, toPurchaseOrderResponse(o, supplierByID, products))
	}
	return out, nil
}

// UpdateStatus aplica la transición pedida. Solo ordered admite cambios; el resto es domain.ErrConflict.
// Al recibir, cada ítem genera una entrada de stock; los productos eliminados desde el pedido se omiten.
func (uc *PurchaseOrderUseCase) UpdateStatus(ctx context.Context, in dto.UpdatePurchaseOrderStatusRequest) (*dto.PurchaseOrderResponse, error) {
	now := uc.now().UTC()
	var order *entity.PurchaseOrder

	err := uc.txRunner.Run(ctx, func(repos repository.Repos) error {
		var err error
		order, err = repos.Orders.GetForUpdate(ctx, in.ID)
		if err != nil {
			return err
		}
		if order == nil {
			return domain.ErrNotFound
		}
		if !order.CanTransitionTo(in.Status) {
			return fmt.Errorf("orden %s: %s -> %s: %w", order.ID, order.Status, in.Status, domain.ErrConflict)
		}
		if in.Status == entity.PurchaseOrderReceived {
			if err := uc.receive(ctx, repos, order, now); err != nil {
				return err
			}
		}
		order.Status = in.Status
		order.UpdatedAt = now
		return repos.Orders.UpdateStatus(ctx, order)
	})
	if err != nil {
		return nil, err
	}

	if in.Status == entity.PurchaseOrderReceived {
		uc.cache.Invalidate(ctx)
	}
	uc.log.Info().Str("purchase_order_id", order.ID).Str("status", order.Status).Msg("orden de compra actualizada")

	supplier, err := uc.repos.Suppliers.GetByID(ctx, order.SupplierID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(order.Items))
	for _, it := range order.Items {
		ids = append(ids, it.ProductID)
	}
	products, err := uc.productsByID(ctx, ids)
	if err != nil {
		return nil, err
	}
	suppliers := map[string]*entity.Supplier{}
	if supplier != nil {
		suppliers[supplier.ID] = supplier
	}
	out := toPurchaseOrderResponse(order, suppliers, products)
	return &out, nil
}

// receive: bloquea cada producto, CostCalculator, suma cantidad, guarda movimiento de entrada y auditoría.
func (uc *PurchaseOrderUseCase) receive(ctx context.Context, repos repository.Repos, order *entity.PurchaseOrder, now time.Time) error {
	for _, it := range order.Items {
		product, err := repos.Products.GetForUpdate(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			uc.log.Warn().Str("purchase_order_id", order.ID).Str("product_id", it.ProductID).Msg("producto eliminado, ítem omitido")
			continue
		}
		product.Cost = inventory.CostCalculator(
			decimal.NewFromInt(int64(product.Quantity)), product.Cost,
			decimal.NewFromInt(int64(it.Quantity)), it.UnitCost,
		)
		product.Quantity += it.Quantity
		product.UpdatedAt = now
		if err := repos.Products.Update(ctx, product); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:              uuid.New().String(),
			Type:            entity.MovementTypeEntry,
			ProductID:       product.ID,
			Quantity:        it.Quantity,
			Location:        receiptLocation,
			Responsible:     receiptResponsible,
			TransportType:   entity.TransportTypeSupplier,
			Description:     fmt.Sprintf("Purchase order %s received", order.ID),
			PriceAtMovement: product.Price,
			CurrentStock:    product.Quantity,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := repos.Movements.Create(ctx, mov); err != nil {
			return err
		}
		if err := uc.audit.Record(ctx, repos.Logs, audit.Entry{
			Action:      entity.LogActionStockEntry,
			ProductID:   product.ID,
			ProductName: product.Name,
			Details:     fmt.Sprintf("Received %d units from purchase order %s", it.Quantity, order.ID),
		}); err != nil {
			return err
		}
	}
	return nil
}

func (uc *PurchaseOrderUseCase) productsByID(ctx context.Context, ids []string) (map[string]*entity.Product, error) {
	out := make(map[string]*entity.Product, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	products, err := uc.repos.Products.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, p := range products {
		out[p.ID] = p
	}
	return out, nil
}

func toPurchaseOrderResponse(o *entity.PurchaseOrder, suppliers map[string]*entity.Supplier, products map[string]*entity.Product) dto.PurchaseOrderResponse {
	out := dto.PurchaseOrderResponse{
		ID:           o.ID,
		Status:       o.Status,
		ExpectedDate: o.ExpectedDate,
		Total:        o.Total,
		Items:        make([]dto.PurchaseOrderItemResponse, 0, len(o.Items)),
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}
	if s, ok := suppliers[o.SupplierID]; ok {
		out.Supplier = &dto.SupplierRefDTO{ID: s.ID, Name: s.Name}
	}
	for _, it := range o.Items {
		out.Items = append(out.Items, dto.PurchaseOrderItemResponse{
			Product:  dto.ProductRef(products[it.ProductID]),
			Quantity: it.Quantity,
			UnitCost: it.UnitCost,
			Subtotal: it.Subtotal(),
		})
	}
	return out
}
