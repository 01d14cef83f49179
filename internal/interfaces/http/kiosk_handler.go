package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/usecase"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain"
)

// KioskHandler maneja las peticiones HTTP para Kiosk (protegido).
type KioskHandler struct {
	uc *usecase.KioskUseCase
}

// NewKioskHandler construye el handler.
func NewKioskHandler(uc *usecase.KioskUseCase) *KioskHandler {
	return &KioskHandler{uc: uc}
}

// Create godoc
// @Summary      Crear kiosco
// @Tags         kiosks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateKioskRequest  true  "Datos del kiosco"
// @Success      201   {object}  dto.KioskResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/kiosks [post]
func (h *KioskHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateKioskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Code == "" || in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "kiosk_code y name son requeridos"})
	}
	out, err := h.uc.Create(c.UserContext(), GetCompanyID(c), in)
	if err != nil {
		if err == domain.ErrDuplicate {
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "kiosk_code ya existe en esta empresa"})
		}
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Obtener kiosco por ID
// @Tags         kiosks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del kiosco"
// @Success      200  {object}  dto.KioskResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/kiosks/{id} [get]
func (h *KioskHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "kiosco no encontrado")
	}
	return c.JSON(out)
}

// List godoc
// @Summary      Listar kioscos
// @Tags         kiosks
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "active | inactive"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.KioskListResponse
// @Router       /api/kiosks [get]
func (h *KioskHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), GetCompanyID(c), c.Query("status"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar kiosco
// @Tags         kiosks
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del kiosco"
// @Param        body  body  dto.UpdateKioskRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.KioskResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/kiosks/{id} [put]
func (h *KioskHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateKioskRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetCompanyID(c), c.Params("id"), in)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "kiosco no encontrado")
	}
	return c.JSON(out)
}

// Activate godoc
// @Summary      Activar kiosco
// @Tags         kiosks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del kiosco"
// @Success      200  {object}  dto.KioskResponse
// @Router       /api/kiosks/{id}/activate [post]
func (h *KioskHandler) Activate(c *fiber.Ctx) error { return h.setActive(c, true) }

// Deactivate godoc
// @Summary      Desactivar kiosco
// @Tags         kiosks
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del kiosco"
// @Success      200  {object}  dto.KioskResponse
// @Router       /api/kiosks/{id}/deactivate [post]
func (h *KioskHandler) Deactivate(c *fiber.Ctx) error { return h.setActive(c, false) }

func (h *KioskHandler) setActive(c *fiber.Ctx, active bool) error {
	out, err := h.uc.SetActive(c.UserContext(), GetCompanyID(c), c.Params("id"), active)
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "kiosco no encontrado")
	}
	return c.JSON(out)
}
