package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/analytics"
)

// AnalyticsHandler maneja los endpoints de analítica derivada.
type AnalyticsHandler struct {
	uc *analytics.UseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *analytics.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

// GetMargins godoc
// @Summary      Margen promedio por categoría
// @Description  Solo productos con precio > 0 y costo >= 0. Ordenado por margen descendente.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.CategoryMarginDTO
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/analytics/margins [get]
func (h *AnalyticsHandler) GetMargins(c *fiber.Ctx) error {
	out, err := h.uc.Margins(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetMovements godoc
// @Summary      Entradas y salidas por día
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.DailyMovementDTO
// @Router       /api/analytics/movements [get]
func (h *AnalyticsHandler) GetMovements(c *fiber.Ctx) error {
	out, err := h.uc.Movements(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetSuppliers godoc
// @Summary      Desempeño de proveedores
// @Description  reliability es un valor sintético en [80, 100).
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.SupplierPerformanceDTO
// @Router       /api/analytics/suppliers [get]
func (h *AnalyticsHandler) GetSuppliers(c *fiber.Ctx) error {
	out, err := h.uc.Suppliers(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetValue godoc
// @Summary      Valor acumulado del inventario
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockValueDTO
// @Router       /api/analytics/value [get]
func (h *AnalyticsHandler) GetValue(c *fiber.Ctx) error {
	out, err := h.uc.StockValue(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetOverview godoc
// @Summary      Las cuatro vistas analíticas juntas
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AnalyticsOverviewDTO
// @Router       /api/analytics/overview [get]
func (h *AnalyticsHandler) GetOverview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
