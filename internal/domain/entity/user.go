package entity

import "time"

// Roles válidos para User (tabla user_roles).
const (
	RoleAdmin     = "admin"
	RoleKioskUser = "kiosk_user"
)

// User representa un usuario del sistema (pertenece a una Company).
// KioskID solo aplica a usuarios con rol kiosk_user.
type User struct {
	ID           string
	CompanyID    string
	KioskID      string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin, kiosk_user
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin indica si el usuario administra todos los kioscos de la empresa.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
