package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/inventory"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// InventoryHandler maneja las peticiones HTTP de movimientos de stock y órdenes de compra.
type InventoryHandler struct {
	register *inventory.RegisterMovementUseCase
	query    *usecase.MovementQueryUseCase
	orders   *inventory.PurchaseOrderUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(register *inventory.RegisterMovementUseCase, query *usecase.MovementQueryUseCase, orders *inventory.PurchaseOrderUseCase) *InventoryHandler {
	return &InventoryHandler{register: register, query: query, orders: orders}
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Entrada o salida. Una salida mayor al stock deja la cantidad en 0.
// @Description  transport_type=client con client_id crea una entrega; internal crea un transporte interno.
// @Tags         movements
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "type, product_id, quantity, transport_type, client_id"
// @Success      201   {object}  dto.MovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.register.RegisterMovementFromRequest(c.Context(), GetSubject(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListMovements godoc
// @Summary      Listar movimientos
// @Description  Más recientes primero. from/to en formato YYYY-MM-DD; to incluye el día completo.
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "entry | exit"
// @Param        product_id  query  string  false  "ID del producto"
// @Param        client_id   query  string  false  "ID del cliente"
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        limit       query  int     false  "Límite"  default(100)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {array}   dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var in dto.MovementListRequest
	if err := parseQuery(c, &in); err != nil {
		return err
	}
	out, err := h.query.List(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetMovement godoc
// @Summary      Obtener movimiento
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/movements/{id} [get]
func (h *InventoryHandler) GetMovement(c *fiber.Ctx) error {
	out, err := h.query.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListPurchaseOrders godoc
// @Summary      Listar órdenes de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.PurchaseOrderResponse
// @Router       /api/purchase-orders [get]
func (h *InventoryHandler) ListPurchaseOrders(c *fiber.Ctx) error {
	out, err := h.orders.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreatePurchaseOrder godoc
// @Summary      Crear orden de compra
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseOrderRequest  true  "supplier_id, items"
// @Success      201   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [post]
func (h *InventoryHandler) CreatePurchaseOrder(c *fiber.Ctx) error {
	var in dto.CreatePurchaseOrderRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.orders.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdatePurchaseOrderStatus godoc
// @Summary      Cambiar estado de una orden
// @Description  Al pasar a received se suma el stock y se recalcula el costo promedio ponderado.
// @Tags         purchase-orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdatePurchaseOrderStatusRequest  true  "id, status"
// @Success      200   {object}  dto.PurchaseOrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/purchase-orders [patch]
func (h *InventoryHandler) UpdatePurchaseOrderStatus(c *fiber.Ctx) error {
	var in dto.UpdatePurchaseOrderStatusRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.orders.UpdateStatus(c.Context(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
