package dto

import "time"

// CreateKioskRequest entrada para registrar un kiosco.
type CreateKioskRequest struct {
	Code        string `json:"kiosk_code" validate:"required,min=1,max=50"`
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Address     string `json:"address" validate:"required"`
	ManagerName string `json:"manager_name"`
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone"`
}

// UpdateKioskRequest entrada para editar un kiosco (campos opcionales).
type UpdateKioskRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Address     *string `json:"address"`
	ManagerName *string `json:"manager_name"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Phone       *string `json:"phone"`
	Status      *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// KioskResponse salida de un kiosco.
type KioskResponse struct {
	ID          string    `json:"id"`
	CompanyID   string    `json:"company_id"`
	Code        string    `json:"kiosk_code"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	ManagerName string    `json:"manager_name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// KioskListResponse lista paginada de kioscos.
type KioskListResponse struct {
	Items []KioskResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
