package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/inventory"
)

// InventoryHandler expone el inventario por kiosco.
type InventoryHandler struct {
	uc *inventory.KioskInventoryUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.KioskInventoryUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// List godoc
// @Summary      Inventario de un kiosco
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del kiosco"
// @Success      200  {object}  dto.KioskInventoryListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/kiosks/{id}/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	kioskID := c.Params("id")
	items, err := h.uc.List(c.UserContext(), ActorFrom(c), kioskID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.KioskInventoryListResponse{KioskID: kioskID, Items: items})
}

// Surplus godoc
// @Summary      Productos con excedente (cantidad > umbral)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del kiosco"
// @Success      200  {object}  dto.KioskInventoryListResponse
// @Router       /api/kiosks/{id}/inventory/surplus [get]
func (h *InventoryHandler) Surplus(c *fiber.Ctx) error {
	kioskID := c.Params("id")
	items, err := h.uc.ListSurplus(c.UserContext(), ActorFrom(c), kioskID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.KioskInventoryListResponse{KioskID: kioskID, Items: items})
}

// SetQuantity godoc
// @Summary      Fijar cantidad de un producto en el kiosco
// @Description  Si la cantidad queda bajo el umbral con auto-solicitud activa se crea una solicitud pull.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                  true  "ID del kiosco"
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.SetQuantityRequest  true  "quantity"
// @Success      200        {object}  dto.InventoryWriteResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/kiosks/{id}/inventory/{productId} [put]
func (h *InventoryHandler) SetQuantity(c *fiber.Ctx) error {
	var in dto.SetQuantityRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SetQuantity(c.UserContext(), ActorFrom(c), c.Params("id"), c.Params("productId"), in.Quantity)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// UpdateSettings godoc
// @Summary      Umbral y auto-solicitud de un producto en el kiosco
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id         path  string                              true  "ID del kiosco"
// @Param        productId  path  string                              true  "ID del producto"
// @Param        body       body  dto.UpdateInventorySettingsRequest  true  "threshold, auto_request_enabled"
// @Success      200        {object}  dto.InventoryWriteResponse
// @Failure      400        {object}  dto.ErrorResponse
// @Router       /api/kiosks/{id}/inventory/{productId}/settings [put]
func (h *InventoryHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateInventorySettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateSettings(c.UserContext(), ActorFrom(c), c.Params("id"), c.Params("productId"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
