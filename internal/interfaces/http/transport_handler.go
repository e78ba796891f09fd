package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stockflow-api/internal/application/dto"
	"github.com/jhoicas/stockflow-api/internal/application/usecase"
)

// TransportHandler CRUD de transportes.
type TransportHandler struct {
	uc *usecase.TransportUseCase
}

// NewTransportHandler construye el handler.
func NewTransportHandler(uc *usecase.TransportUseCase) *TransportHandler {
	return &TransportHandler{uc: uc}
}

// List godoc
// @Summary      Listar transportes
// @Tags         transports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.TransportResponse
// @Router       /api/transports [get]
func (h *TransportHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear transporte
// @Description  Con movement_id el movimiento queda vinculado al transporte.
// @Tags         transports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransportRequest  true  "Datos del transporte"
// @Success      201   {object}  dto.TransportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/transports [post]
func (h *TransportHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateTransportRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener transporte
// @Tags         transports
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del transporte"
// @Success      200  {object}  dto.TransportResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transports/{id} [get]
func (h *TransportHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar transporte
// @Tags         transports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                       true  "ID del transporte"
// @Param        body  body  dto.UpdateTransportRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.TransportResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/transports/{id} [put]
func (h *TransportHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateTransportRequest
	if err := parseBody(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar transporte
// @Tags         transports
// @Security     Bearer
// @Param        id   path  string  true  "ID del transporte"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transports/{id} [delete]
func (h *TransportHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
