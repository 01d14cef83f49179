package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/redistribution"
)

// RedistributionHandler ciclo de vida de las solicitudes de redistribución.
type RedistributionHandler struct {
	uc *redistribution.UseCase
}

// NewRedistributionHandler construye el handler.
func NewRedistributionHandler(uc *redistribution.UseCase) *RedistributionHandler {
	return &RedistributionHandler{uc: uc}
}

// Create godoc
// @Summary      Crear solicitud de redistribución
// @Description  kiosk_user: action send (push) o receive (pull) sobre su kiosco. admin: from_kiosk_id o to_kiosk_id.
// @Tags         redistributions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateRedistributionRequest  true  "Solicitud"
// @Success      201   {object}  dto.RedistributionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/redistributions [post]
func (h *RedistributionHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRedistributionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// SubmitSurplus godoc
// @Summary      Ofrecer excedentes del kiosco (varios productos)
// @Tags         redistributions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitSurplusRequest  true  "items"
// @Success      201   {array}   dto.RedistributionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/redistributions/surplus [post]
func (h *RedistributionHandler) SubmitSurplus(c *fiber.Ctx) error {
	var in dto.SubmitSurplusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.SubmitSurplus(c.UserContext(), ActorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar solicitudes
// @Tags         redistributions
// @Security     Bearer
// @Produce      json
// @Param        status  query  string  false  "pending | approved | rejected"
// @Param        limit   query  int     false  "Límite"   default(20)
// @Param        offset  query  int     false  "Offset"   default(0)
// @Success      200     {object}  dto.RedistributionListResponse
// @Router       /api/redistributions [get]
func (h *RedistributionHandler) List(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	out, err := h.uc.List(c.UserContext(), ActorFrom(c), c.Query("status"), limit, offset)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener solicitud
// @Tags         redistributions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RedistributionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/redistributions/{id} [get]
func (h *RedistributionHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Approve godoc
// @Summary      Aprobar solicitud y liquidar el traslado
// @Tags         redistributions
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                            true   "ID de la solicitud"
// @Param        body  body  dto.ApproveRedistributionRequest  false  "counterparty_kiosk_id"
// @Success      200   {object}  dto.RedistributionDecisionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/redistributions/{id}/approve [post]
func (h *RedistributionHandler) Approve(c *fiber.Ctx) error {
	var in dto.ApproveRedistributionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&in); err != nil {
			return badBody(c)
		}
	}
	out, err := h.uc.Approve(c.UserContext(), ActorFrom(c), c.Params("id"), in.CounterpartyKioskID)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Reject godoc
// @Summary      Rechazar solicitud
// @Tags         redistributions
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la solicitud"
// @Success      200  {object}  dto.RedistributionDecisionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/redistributions/{id}/reject [post]
func (h *RedistributionHandler) Reject(c *fiber.Ctx) error {
	out, err := h.uc.Reject(c.UserContext(), ActorFrom(c), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Stats godoc
// @Summary      Contadores del tablero de redistribución
// @Tags         redistributions
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RedistributionStatsResponse
// @Router       /api/redistributions/stats [get]
func (h *RedistributionHandler) Stats(c *fiber.Ctx) error {
	out, err := h.uc.Stats(c.UserContext(), ActorFrom(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
