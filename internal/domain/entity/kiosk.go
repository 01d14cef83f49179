package entity

import "time"

// Estados de un kiosco.
const (
	KioskStatusActive   = "active"
	KioskStatusInactive = "inactive"
)

// Kiosk representa un punto de venta físico. Code es único por empresa.
type Kiosk struct {
	ID          string
	CompanyID   string
	Code        string
	Name        string
	Address     string
	ManagerName string
	Email       string
	Phone       string
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive indica si el kiosco puede participar en redistribuciones.
func (k *Kiosk) IsActive() bool { return k != nil && k.Status == KioskStatusActive }
