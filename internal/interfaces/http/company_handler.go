package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/auth"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/dto"
	"github.com/jhoicas/kiosk-redistribution-api/internal/application/usecase"
	"github.com/jhoicas/kiosk-redistribution-api/internal/domain/entity"
)

// CompanyHandler maneja las peticiones HTTP para el recurso Company.
type CompanyHandler struct {
	uc     *usecase.CompanyUseCase
	authUC *auth.AuthUseCase
}

// NewCompanyHandler construye el handler inyectando los casos de uso.
func NewCompanyHandler(uc *usecase.CompanyUseCase, authUC *auth.AuthUseCase) *CompanyHandler {
	return &CompanyHandler{uc: uc, authUC: authUC}
}

// Create godoc
// @Summary      Crear empresa (y opcionalmente su primer admin)
// @Tags         companies
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCompanyRequest  true  "Datos de la empresa"
// @Success      201   {object}  dto.CompanySetupResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/companies [post]
func (h *CompanyHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCompanyRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	if in.Name == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "name es requerido"})
	}
	if (in.AdminEmail == "") != (in.AdminPassword == "") || (in.AdminPassword != "" && len(in.AdminPassword) < 8) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "admin_email y admin_password (mín. 8) van juntos"})
	}
	company, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	out := dto.CompanySetupResponse{Company: *company}
	if in.AdminEmail != "" {
		admin, err := h.authUC.RegisterUser(c.UserContext(), dto.RegisterRequest{
			Email:     in.AdminEmail,
			Password:  in.AdminPassword,
			Name:      in.AdminName,
			CompanyID: company.ID,
			Role:      entity.RoleAdmin,
		})
		if err != nil {
			return writeError(c, err)
		}
		out.Admin = admin
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Me godoc
// @Summary      Empresa del usuario autenticado
// @Tags         companies
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.CompanyResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/companies/me [get]
func (h *CompanyHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), GetCompanyID(c))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "empresa no encontrada")
	}
	return c.JSON(out)
}
