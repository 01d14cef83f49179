package dto

import "time"

// CreateCompanyRequest entrada para crear una empresa (tenant).
// Si se envía admin_email y admin_password se registra también el primer administrador.
type CreateCompanyRequest struct {
	Name          string `json:"name" validate:"required,min=1,max=200"`
	Email         string `json:"email" validate:"omitempty,email"`
	AdminEmail    string `json:"admin_email,omitempty" validate:"omitempty,email"`
	AdminPassword string `json:"admin_password,omitempty" validate:"omitempty,min=8"`
	AdminName     string `json:"admin_name,omitempty"`
}

// CompanyResponse salida de una empresa.
type CompanyResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CompanySetupResponse empresa creada y, si se pidió, su primer administrador.
type CompanySetupResponse struct {
	Company CompanyResponse `json:"company"`
	Admin   *UserResponse   `json:"admin,omitempty"`
}
